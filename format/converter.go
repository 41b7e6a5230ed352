package format

import (
	"fmt"
	"strings"

	"mapart/config"
	"mapart/src/bitpack"
	"mapart/src/dither"
	"mapart/src/litematic"
	"mapart/src/mapart"
	"mapart/src/pixel"
	"mapart/utils"
)

// ProgressCallback 定义进度回调函数类型
type ProgressCallback func(current, total int, message string)

// Converter 定义转换器接口
type Converter interface {
	// Convert width/height 为 0 时保持原尺寸或按比例缩放
	Convert(inputPath, outputPath string, width, height int, settings Settings) error
	GetFormatName() string
	GetExtension() string
	// SetProgressCallback 设置进度回调函数
	SetProgressCallback(callback ProgressCallback)
}

// Settings 一次转换使用的全部参数
type Settings struct {
	Palette     *pixel.Palette
	Ditherer    dither.Ditherer
	Workers     int
	Author      string
	Description string
	Layout      bitpack.Layout
	Filler      litematic.Block
	Support     bool
	Map         mapart.MapMeta
	// Color 步骤信息是否带 ANSI 颜色
	Color bool
	// Quiet 为 true 时不打印步骤信息
	Quiet bool
}

// DefaultSettings 默认配置对应的参数
func DefaultSettings() Settings {
	s, _ := SettingsFromConfig(config.Default())
	return s
}

// SettingsFromConfig 解析配置中的名称字段
func SettingsFromConfig(cfg *config.Config) (Settings, error) {
	var s Settings

	tones, err := mapart.ParseTones(cfg.Art.Tones)
	if err != nil {
		return s, err
	}
	metric, err := pixel.MetricByName(cfg.Art.Metric)
	if err != nil {
		return s, err
	}
	pal := mapart.NewPalette(tones)
	for _, name := range cfg.Art.ExcludeColors {
		bc, ok := mapart.BaseByName(strings.ToUpper(strings.TrimSpace(name)))
		if !ok {
			return s, fmt.Errorf("未知的地图基础色: %s", name)
		}
		if err := mapart.ExcludeBase(pal, bc.ID); err != nil {
			return s, err
		}
	}
	s.Palette = pal.WithMetric(metric)

	s.Ditherer, err = dither.ByName(cfg.Art.Dither, cfg.Art.DitherAlpha, cfg.Art.OrderedSpread)
	if err != nil {
		return s, err
	}

	mode, err := bitpack.ParseMode(cfg.Schematic.Packing)
	if err != nil {
		return s, err
	}
	s.Layout = bitpack.LitematicPadded
	if mode == bitpack.Split {
		s.Layout = bitpack.LitematicSplit
	}

	s.Workers = cfg.Art.Workers
	s.Author = cfg.Schematic.Author
	s.Description = cfg.Schematic.Description
	s.Support = cfg.Schematic.Support
	s.Color = utils.ColorEnabled(cfg.UI.ColoredOutput)
	if cfg.Schematic.FillerBlock != "" {
		s.Filler = litematic.NewBlock(cfg.Schematic.FillerBlock)
	}
	s.Map = mapart.MapMeta{
		Dimension: cfg.Map.Dimension,
		XCenter:   cfg.Map.XCenter,
		ZCenter:   cfg.Map.ZCenter,
		Locked:    cfg.Map.Locked,
	}
	return s, nil
}
