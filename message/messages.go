package message

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Dir 额外语言文件所在目录
var Dir = "message"

// Messages 国际化消息
type Messages struct {
	LangCode string            `json:"lang_code"`
	Messages map[string]string `json:"messages"`
}

var zhCN = map[string]string{
	"welcome":          "欢迎使用 MapArt!",
	"input_file":       "请输入图片文件路径",
	"output_file":      "输出文件",
	"choose_format":    "请选择输出格式",
	"choose_dither":    "请选择抖动算法",
	"target_width":     "目标宽度（0 表示保持原尺寸）",
	"target_height":    "目标高度（0 表示按比例）",
	"conversion_start": "开始转换...",
	"conversion_done":  "转换完成!",
	"verify_ok":        "文件验证通过",
	"verify_fail":      "文件验证失败",
	"error":            "错误",
	"success":          "成功",
	"image_load_fail":  "图片加载失败",
	"continue":         "是否继续转换其他图片",
}

var enUS = map[string]string{
	"welcome":          "Welcome to MapArt!",
	"input_file":       "Image file path",
	"output_file":      "Output file",
	"choose_format":    "Choose an output format",
	"choose_dither":    "Choose a dithering algorithm",
	"target_width":     "Target width (0 keeps the original size)",
	"target_height":    "Target height (0 keeps the aspect ratio)",
	"conversion_start": "Converting...",
	"conversion_done":  "Done!",
	"verify_ok":        "File verified",
	"verify_fail":      "File verification failed",
	"error":            "Error",
	"success":          "Success",
	"image_load_fail":  "Failed to load image",
	"continue":         "Convert another image",
}

// LoadMessages 加载指定语言的消息，Dir 下的 <lang>.json 覆盖内置文本
func LoadMessages(langCode string) (*Messages, error) {
	base := zhCN
	if langCode == "en_US" {
		base = enUS
	}
	msg := &Messages{LangCode: langCode, Messages: make(map[string]string, len(base))}
	for k, v := range base {
		msg.Messages[k] = v
	}

	data, err := os.ReadFile(filepath.Join(Dir, langCode+".json"))
	if os.IsNotExist(err) {
		return msg, nil
	}
	if err != nil {
		return nil, err
	}
	var fileMsg map[string]string
	if err := json.Unmarshal(data, &fileMsg); err != nil {
		return nil, err
	}
	for k, v := range fileMsg {
		msg.Messages[k] = v
	}
	return msg, nil
}

// Get 获取指定键的消息
func (m *Messages) Get(key string) string {
	if msg, exists := m.Messages[key]; exists {
		return msg
	}
	return key // 返回键名作为默认值
}
