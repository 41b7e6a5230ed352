package utils

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
)

// ANSI颜色代码
const (
	Reset           = "\033[0m"
	Red             = "\033[31m"
	Green           = "\033[32m"
	Yellow          = "\033[33m"
	Blue            = "\033[34m"
	Magenta         = "\033[35m"
	Cyan            = "\033[36m"
	White           = "\033[37m"
	Bold            = "\033[1m"
	BackgroundReset = "\033[49m"
)

// RGBColor 表示RGB颜色
type RGBColor struct {
	R, G, B uint8
}

var stdin = bufio.NewReader(os.Stdin)

// IsTerminal 标准输出是否连接到终端
func IsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// ColorEnabled 配置允许且输出是终端时才使用颜色
func ColorEnabled(configured bool) bool {
	return configured && IsTerminal() && os.Getenv("NO_COLOR") == ""
}

// RGBToANSIColor 将RGB颜色转换为ANSI颜色代码
func RGBToANSIColor(r, g, b uint8) string {
	return fmt.Sprintf("\033[38;2;%d;%d;%dm", r, g, b)
}

// ColoredPrint 使用指定颜色输出文本
func ColoredPrint(colorCode, text string, useColor bool) string {
	if useColor {
		return colorCode + text + Reset
	}
	return text
}

// ColoredPrintf 使用颜色格式化输出
func ColoredPrintf(colorCode, format string, useColor bool, a ...interface{}) string {
	return ColoredPrint(colorCode, fmt.Sprintf(format, a...), useColor)
}

// GradientText 逐字符渐变着色
func GradientText(text string, start, end RGBColor, useColor bool) string {
	if !useColor {
		return text
	}
	runes := []rune(text)
	var b strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		b.WriteString(RGBToANSIColor(
			lerp(start.R, end.R, t),
			lerp(start.G, end.G, t),
			lerp(start.B, end.B, t),
		))
		b.WriteRune(r)
	}
	b.WriteString(Reset)
	return b.String()
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}

// GetUserInput 获取用户输入，带有默认值
func GetUserInput(prompt string, defaultValue string, useColor bool) string {
	fmt.Print(GradientText(prompt, RGBColor{135, 206, 250}, RGBColor{70, 130, 180}, useColor))
	if defaultValue != "" {
		fmt.Print(ColoredPrintf(White, " (默认: %s)", useColor, defaultValue))
	}
	fmt.Print(": ")

	line, _ := stdin.ReadString('\n')
	input := strings.TrimSpace(line)
	if input == "" {
		return defaultValue
	}
	return input
}

// GetUserInputInt 获取用户输入的整数，带有默认值
func GetUserInputInt(prompt string, defaultValue int, useColor bool) int {
	for {
		value, err := strconv.Atoi(GetUserInput(prompt, strconv.Itoa(defaultValue), useColor))
		if err == nil {
			return value
		}
		fmt.Println(ColoredPrint(Red, "输入无效，请输入一个整数", useColor))
	}
}

// GetUserInputBool 获取用户输入的布尔值
func GetUserInputBool(prompt string, defaultValue bool, useColor bool) bool {
	defaultStr := "n"
	if defaultValue {
		defaultStr = "y"
	}
	for {
		switch strings.ToLower(GetUserInput(prompt, defaultStr, useColor)) {
		case "y", "yes", "是", "1", "true":
			return true
		case "n", "no", "否", "0", "false":
			return false
		}
		fmt.Println(ColoredPrint(Red, "输入无效，请输入 y(是) 或 n(否)", useColor))
	}
}

// PrintSectionTitle 打印带渐变色的章节标题
func PrintSectionTitle(title string, useColor bool) {
	start, end := RGBColor{50, 205, 50}, RGBColor{34, 139, 34}
	line := strings.Repeat("═", 40)
	fmt.Println()
	fmt.Println(GradientText(line, start, end, useColor))
	fmt.Println(GradientText(title, start, end, useColor))
	fmt.Println(GradientText(line, start, end, useColor))
}

// GetUserChoice 让用户从多个选项中选择一个，返回从 0 开始的下标
func GetUserChoice(prompt string, options []string, defaultValue int, useColor bool) int {
	fmt.Println(ColoredPrint(Yellow, prompt, useColor))
	for i, option := range options {
		fmt.Println(ColoredPrintf(Cyan, "%d. %s", useColor, i+1, option))
	}
	def := ""
	if defaultValue >= 0 && defaultValue < len(options) {
		def = strconv.Itoa(defaultValue + 1)
	}
	for {
		choice, err := strconv.Atoi(GetUserInput("请输入选项编号", def, useColor))
		if err == nil && choice >= 1 && choice <= len(options) {
			return choice - 1
		}
		fmt.Println(ColoredPrint(Red, "输入无效，请输入一个有效的选项编号", useColor))
	}
}
