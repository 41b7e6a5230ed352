package pixel

import (
	"image/color"
	"math"
)

// AlphaWeight 透明通道在距离计算中的权重
const AlphaWeight = 2.0

// Color 归一化的 RGBA 颜色，分量通常位于 [0,1]，误差扩散过程中允许越界
type Color struct {
	R, G, B, A float64
}

// RGBA 构造颜色
func RGBA(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Add 逐分量相加
func (c Color) Add(o Color) Color {
	return Color{c.R + o.R, c.G + o.G, c.B + o.B, c.A + o.A}
}

// Sub 逐分量相减
func (c Color) Sub(o Color) Color {
	return Color{c.R - o.R, c.G - o.G, c.B - o.B, c.A - o.A}
}

// Mul 按标量缩放
func (c Color) Mul(k float64) Color {
	return Color{c.R * k, c.G * k, c.B * k, c.A * k}
}

// Div 按标量缩小
func (c Color) Div(k float64) Color {
	return Color{c.R / k, c.G / k, c.B / k, c.A / k}
}

// Distance 加权欧氏距离，透明通道差值乘以 AlphaWeight
func Distance(a, b Color) float64 {
	dr := a.R - b.R
	dg := a.G - b.G
	db := a.B - b.B
	da := (a.A - b.A) * AlphaWeight
	return math.Sqrt(dr*dr + dg*dg + db*db + da*da)
}

// Clamp 把每个分量限制到 [0,1]
func (c Color) Clamp() Color {
	return Color{clamp01(c.R), clamp01(c.G), clamp01(c.B), clamp01(c.A)}
}

// NRGBA 转换为 8 位非预乘颜色
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: to8(c.A)}
}

// FromNRGBA 从 8 位非预乘颜色构造
func FromNRGBA(c color.NRGBA) Color {
	return Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
		A: float64(c.A) / 255,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func to8(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}
