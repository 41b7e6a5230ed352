package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"mapart/config"
	"mapart/format"
	"mapart/interactive"
	"mapart/message"
	"mapart/src/dither"
	"mapart/src/mapart"
	"mapart/utils"
)

type options struct {
	configPath      string
	inputFile       string
	outputFile      string
	outputFormat    string
	width, height   int
	interactiveMode bool

	dither  string
	metric  string
	tones   string
	workers int
	packing string
	author  string
	support bool
	exclude []string
}

// applyFlags 命令行显式给出的参数覆盖配置文件
func applyFlags(cmd *cobra.Command, opts *options, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("dither") {
		cfg.Art.Dither = opts.dither
	}
	if flags.Changed("metric") {
		cfg.Art.Metric = opts.metric
	}
	if flags.Changed("tones") {
		cfg.Art.Tones = opts.tones
	}
	if flags.Changed("workers") {
		cfg.Art.Workers = opts.workers
	}
	if flags.Changed("packing") {
		cfg.Schematic.Packing = opts.packing
	}
	if flags.Changed("author") {
		cfg.Schematic.Author = opts.author
	}
	if flags.Changed("support") {
		cfg.Schematic.Support = opts.support
	}
	if flags.Changed("exclude") {
		cfg.Art.ExcludeColors = opts.exclude
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "mapart",
		Short:         "MapArt - 将图片转换为Minecraft地图画",
		Long:          `MapArt 把图片量化到地图调色板，输出阶梯式 litematic 投影、地图数据文件或预览图`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(opts.configPath)
			if err != nil {
				return err
			}
			applyFlags(cmd, opts, cfg)
			useColor := utils.ColorEnabled(cfg.UI.ColoredOutput)

			monitor := utils.NewResourceMonitor()
			monitor.Start()

			if opts.interactiveMode || opts.inputFile == "" {
				return interactive.RunInteractiveMode(cfg, monitor)
			}

			if _, err := os.Stat(opts.inputFile); err != nil {
				return fmt.Errorf("输入文件不存在: %s", opts.inputFile)
			}

			manager := format.NewConverterManager()
			converter, err := manager.GetConverter(opts.outputFormat)
			if err != nil {
				return err
			}
			if opts.outputFile == "" {
				opts.outputFile = interactive.OutputPathFor(cfg, opts.inputFile, converter.GetExtension())
			}
			msgs, err := message.LoadMessages(cfg.General.Language)
			if err != nil {
				return err
			}

			start := time.Now()
			err = interactive.Run(cfg, interactive.Request{
				Format:     opts.outputFormat,
				InputPath:  opts.inputFile,
				OutputPath: opts.outputFile,
				Width:      opts.width,
				Height:     opts.height,
			}, manager, msgs)
			if err != nil {
				return err
			}
			fmt.Println(utils.ColoredPrintf(utils.Green, "📁 %s", useColor, opts.outputFile))
			monitor.Report(time.Since(start), useColor)
			return nil
		},
	}

	flags := rootCmd.Flags()
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "config.json", "配置文件 (.json / .yaml)")
	flags.StringVarP(&opts.inputFile, "input", "i", "", "输入图片文件路径")
	flags.StringVarP(&opts.outputFile, "output", "o", "", "输出文件路径")
	flags.StringVarP(&opts.outputFormat, "format", "f", "litematic", "输出格式 (litematic, map, preview)")
	flags.IntVarP(&opts.width, "width", "w", 0, "输出宽度，0 表示按比例")
	flags.IntVarP(&opts.height, "height", "H", 0, "输出高度，0 表示按比例")
	flags.BoolVarP(&opts.interactiveMode, "interactive", "I", false, "启用交互式模式")
	flags.StringVar(&opts.dither, "dither", "", "抖动算法 ("+strings.Join(dither.Names(), ", ")+")")
	flags.StringVar(&opts.metric, "metric", "", "颜色距离 (rgba, lab)")
	flags.StringVar(&opts.tones, "tones", "", "可用色调，逗号分隔 (dark,normal,light)")
	flags.IntVar(&opts.workers, "workers", 0, "并行量化的地图数，0 表示 CPU 核数")
	flags.StringVar(&opts.packing, "packing", "", "BlockStates 打包方式 (padded, split)")
	flags.StringVar(&opts.author, "author", "", "投影作者")
	flags.BoolVar(&opts.support, "support", false, "在每个方块下放置支撑方块")
	flags.StringSliceVar(&opts.exclude, "exclude", nil, "排除的基础色，如 WATER,PLANT")

	rootCmd.AddCommand(newPaletteCmd(opts), newVerifyCmd(), newInitConfigCmd(opts))
	return rootCmd
}

func newPaletteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "palette",
		Short: "列出地图基础色、方块和可用色调",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(opts.configPath)
			if err != nil {
				return err
			}
			tones, err := mapart.ParseTones(cfg.Art.Tones)
			if err != nil {
				return err
			}
			for _, bc := range mapart.BaseColors[1:] {
				var swatches []string
				for _, t := range tones {
					c := bc.Shade(t).NRGBA()
					swatches = append(swatches, utils.Swatch(c.R, c.G, c.B, 4, fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)))
				}
				fmt.Printf("%3d %-18s %s  %s\n", bc.ID, bc.Name, strings.Join(swatches, " "), bc.Block)
			}
			return nil
		},
	}
}

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <file>...",
		Short: "验证 .litematic 或地图 .dat 文件",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				var (
					ok     bool
					detail string
				)
				if strings.EqualFold(filepath.Ext(path), ".dat") {
					ok, detail = format.VerifyMapFile(path)
				} else {
					ok, detail = format.VerifyLitematicFile(path)
				}
				if ok {
					fmt.Printf("%s✅ %s: %s%s\n", utils.Green, path, detail, utils.Reset)
				} else {
					fmt.Printf("%s❌ %s: %s%s\n", utils.Red, path, detail, utils.Reset)
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d 个文件验证失败", failed)
			}
			return nil
		},
	}
}

func newInitConfigCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "init-config",
		Short: "写出默认配置文件",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(opts.configPath); err == nil {
				return fmt.Errorf("配置文件已存在: %s", opts.configPath)
			}
			if err := config.Default().SaveConfig(opts.configPath); err != nil {
				return err
			}
			fmt.Printf("%s✅ 已写出默认配置: %s%s\n", utils.Green, opts.configPath, utils.Reset)
			return nil
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Printf("%s❌ 命令执行失败: %v%s\n", utils.Red, err, utils.Reset)
		os.Exit(1)
	}
}
