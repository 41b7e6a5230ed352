package utils

import "github.com/fatih/color"

// Swatch 以背景色显示一小块颜色，非终端时返回 fallback
func Swatch(r, g, b uint8, width int, fallback string) string {
	if color.NoColor {
		return fallback
	}
	block := make([]byte, width)
	for i := range block {
		block[i] = ' '
	}
	return color.BgRGB(int(r), int(g), int(b)).Sprint(string(block))
}
