package interactive

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mapart/config"
	"mapart/format"
	"mapart/message"
	"mapart/src/dither"
	"mapart/utils"
)

// Request 一次交互收集到的转换参数
type Request struct {
	Format     string
	InputPath  string
	OutputPath string
	Width      int
	Height     int
}

// DisplayLogo 显示程序logo
func DisplayLogo(useColor bool) {
	logo := []string{
		"╔══════════════════════════════════════╗",
		"║   ███╗   ███╗ █████╗ ██████╗         ║",
		"║   ████╗ ████║██╔══██╗██╔══██╗        ║",
		"║   ██╔████╔██║███████║██████╔╝ ART    ║",
		"║   ██║╚██╔╝██║██╔══██║██╔═══╝         ║",
		"║   ██║ ╚═╝ ██║██║  ██║██║             ║",
		"║   ╚═╝     ╚═╝╚═╝  ╚═╝╚═╝             ║",
		"╚══════════════════════════════════════╝",
	}
	start, end := utils.RGBColor{R: 255, G: 170, B: 0}, utils.RGBColor{R: 30, G: 144, B: 255}
	for _, line := range logo {
		fmt.Println(utils.GradientText(line, start, end, useColor))
	}
}

// OutputPathFor 输出目录下与输入同名、扩展名替换后的路径
func OutputPathFor(cfg *config.Config, inputPath, ext string) string {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	return filepath.Join(cfg.General.OutputDirectory, base+ext)
}

// AskRequest 逐项询问转换参数
func AskRequest(cfg *config.Config, msgs *message.Messages, manager *format.ConverterManager, useColor bool) (Request, error) {
	var req Request

	formats := manager.GetAvailableFormats()
	options := make([]string, len(formats))
	for i, name := range formats {
		c, _ := manager.GetConverter(name)
		options[i] = fmt.Sprintf("%s (%s)", name, c.GetExtension())
	}
	req.Format = formats[utils.GetUserChoice("📁 "+msgs.Get("choose_format"), options, 0, useColor)]

	for {
		req.InputPath = strings.Trim(utils.GetUserInput("🖼️  "+msgs.Get("input_file"), "", useColor), `"'`)
		if _, err := os.Stat(req.InputPath); err == nil {
			break
		}
		fmt.Println(utils.ColoredPrintf(utils.Red, "❌ %s: %s", useColor, msgs.Get("image_load_fail"), req.InputPath))
	}

	req.Width = utils.GetUserInputInt("📐 "+msgs.Get("target_width"), 0, useColor)
	req.Height = utils.GetUserInputInt("📐 "+msgs.Get("target_height"), 0, useColor)
	if req.Width < 0 || req.Height < 0 {
		return req, fmt.Errorf("尺寸不能为负数: %d × %d", req.Width, req.Height)
	}

	names := dither.Names()
	current := 0
	for i, name := range names {
		if name == cfg.Art.Dither {
			current = i
		}
	}
	cfg.Art.Dither = names[utils.GetUserChoice("🎨 "+msgs.Get("choose_dither"), names, current, useColor)]

	c, err := manager.GetConverter(req.Format)
	if err != nil {
		return req, err
	}
	req.OutputPath = utils.GetUserInput("💾 "+msgs.Get("output_file"), OutputPathFor(cfg, req.InputPath, c.GetExtension()), useColor)
	return req, nil
}

// Run 执行一次转换并在可能时验证输出
func Run(cfg *config.Config, req Request, manager *format.ConverterManager, msgs *message.Messages) error {
	useColor := utils.ColorEnabled(cfg.UI.ColoredOutput)
	settings, err := format.SettingsFromConfig(cfg)
	if err != nil {
		return err
	}
	converter, err := manager.GetConverter(req.Format)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(req.OutputPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("创建输出目录失败: %w", err)
		}
	}

	progress := utils.NewProgress(cfg.UI.ProgressBar, useColor)
	converter.SetProgressCallback(progress.Update)

	fmt.Println(utils.ColoredPrint(utils.Blue, "🔄 "+msgs.Get("conversion_start"), useColor))
	start := time.Now()
	if err := converter.Convert(req.InputPath, req.OutputPath, req.Width, req.Height, settings); err != nil {
		return err
	}
	fmt.Println(utils.ColoredPrintf(utils.Green, "✅ %s 耗时: %.2f秒", useColor, msgs.Get("conversion_done"), time.Since(start).Seconds()))

	var (
		ok     = true
		detail string
	)
	switch req.Format {
	case "litematic":
		ok, detail = format.VerifyLitematicFile(req.OutputPath)
	case "map":
		ok, detail = format.VerifyMapFile(format.MapFilePath(req.OutputPath, 0, 0))
	}
	if !ok {
		return fmt.Errorf("%s: %s", msgs.Get("verify_fail"), detail)
	}
	if detail != "" {
		fmt.Println(utils.ColoredPrintf(utils.Green, "🔍 %s: %s", useColor, msgs.Get("verify_ok"), detail))
	}
	return nil
}

// RunInteractiveMode 交互模式主循环
func RunInteractiveMode(cfg *config.Config, monitor *utils.ResourceMonitor) error {
	useColor := utils.ColorEnabled(cfg.UI.ColoredOutput)
	msgs, err := message.LoadMessages(cfg.General.Language)
	if err != nil {
		return err
	}

	DisplayLogo(useColor)
	utils.PrintSectionTitle("🎉 "+msgs.Get("welcome"), useColor)
	fmt.Println(utils.ColoredPrintf(utils.Cyan, "⚙️  使用配置: 语言=%s, 输出目录=%s", useColor, cfg.General.Language, cfg.General.OutputDirectory))

	manager := format.NewConverterManager()
	start := time.Now()
	for {
		req, err := AskRequest(cfg, msgs, manager, useColor)
		if err == nil {
			err = Run(cfg, req, manager, msgs)
		}
		if err != nil {
			fmt.Println(utils.ColoredPrintf(utils.Red, "❌ %s: %v", useColor, msgs.Get("error"), err))
		}
		if !utils.GetUserInputBool("🔁 "+msgs.Get("continue"), false, useColor) {
			break
		}
	}
	monitor.Report(time.Since(start), useColor)
	return nil
}
