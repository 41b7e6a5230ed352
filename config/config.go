package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

// Config 应用配置
type Config struct {
	General   GeneralConfig   `json:"general" yaml:"general"`
	UI        UIConfig        `json:"ui" yaml:"ui"`
	Art       ArtConfig       `json:"art" yaml:"art"`
	Schematic SchematicConfig `json:"schematic" yaml:"schematic"`
	Map       MapConfig       `json:"map" yaml:"map"`
}

// GeneralConfig 通用设置
type GeneralConfig struct {
	Language        string `json:"language" yaml:"language"`
	OutputDirectory string `json:"output_directory" yaml:"output_directory"`
}

// UIConfig 终端输出设置
type UIConfig struct {
	ColoredOutput bool `json:"colored_output" yaml:"colored_output"`
	ProgressBar   bool `json:"progress_bar" yaml:"progress_bar"`
}

// ArtConfig 量化与抖动设置
type ArtConfig struct {
	Dither        string  `json:"dither" yaml:"dither"`
	DitherAlpha   bool    `json:"dither_alpha" yaml:"dither_alpha"`
	OrderedSpread float64 `json:"ordered_spread" yaml:"ordered_spread"`
	Metric        string  `json:"metric" yaml:"metric"`
	Tones         string  `json:"tones" yaml:"tones"`
	// ExcludeColors 不参与量化的基础色名称，例如 WATER
	ExcludeColors []string `json:"exclude_colors" yaml:"exclude_colors"`
	Workers       int      `json:"workers" yaml:"workers"`
}

// SchematicConfig 投影文件设置
type SchematicConfig struct {
	Author      string `json:"author" yaml:"author"`
	Description string `json:"description" yaml:"description"`
	Packing     string `json:"packing" yaml:"packing"`
	FillerBlock string `json:"filler_block" yaml:"filler_block"`
	Support     bool   `json:"support" yaml:"support"`
}

// MapConfig 地图数据文件设置
type MapConfig struct {
	Dimension string `json:"dimension" yaml:"dimension"`
	XCenter   int32  `json:"x_center" yaml:"x_center"`
	ZCenter   int32  `json:"z_center" yaml:"z_center"`
	Locked    bool   `json:"locked" yaml:"locked"`
}

// Default 默认配置
func Default() *Config {
	return &Config{
		General: GeneralConfig{
			Language:        "zh_CN",
			OutputDirectory: "output",
		},
		UI: UIConfig{
			ColoredOutput: true,
			ProgressBar:   true,
		},
		Art: ArtConfig{
			Dither:        "floyd-steinberg",
			OrderedSpread: 0.2,
			Metric:        "rgba",
			Tones:         "dark,normal,light",
			// 水的地图颜色由深度决定，无法靠阶梯高度控制
			ExcludeColors: []string{"WATER"},
		},
		Schematic: SchematicConfig{
			Packing:     "padded",
			FillerBlock: "minecraft:cobblestone",
		},
		Map: MapConfig{
			Dimension: "minecraft:overworld",
			Locked:    true,
		},
	}
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// LoadConfig 从文件加载配置，文件不存在时返回默认配置。
// .yaml/.yml 按 YAML 解析，其余按 JSON 解析；文件中缺失的字段保留默认值
func LoadConfig(configPath string) (*Config, error) {
	config := Default()
	if configPath == "" {
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	if isYAML(configPath) {
		err = yaml.Unmarshal(data, config)
	} else {
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("解析配置文件 %s 失败: %w", configPath, err)
	}
	return config, nil
}

// SaveConfig 保存配置到文件
func (c *Config) SaveConfig(configPath string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(configPath) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return err
	}
	return os.WriteFile(configPath, data, 0644)
}
