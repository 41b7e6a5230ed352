package pixel

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Metric 两个颜色之间的距离函数
type Metric func(a, b Color) float64

// MetricRGBA 默认度量，即 Distance
func MetricRGBA(a, b Color) float64 {
	return Distance(a, b)
}

// MetricLab 在 CIE Lab 空间比较 RGB，透明通道仍按 AlphaWeight 计入
func MetricLab(a, b Color) float64 {
	ca := colorful.Color{R: a.R, G: a.G, B: a.B}
	cb := colorful.Color{R: b.R, G: b.G, B: b.B}
	d := ca.DistanceLab(cb)
	da := (a.A - b.A) * AlphaWeight
	return math.Sqrt(d*d + da*da)
}

// MetricByName 按名称查找度量，支持 rgba 与 lab
func MetricByName(name string) (Metric, error) {
	switch name {
	case "", "rgba":
		return MetricRGBA, nil
	case "lab":
		return MetricLab, nil
	}
	return nil, fmt.Errorf("unknown color metric %q", name)
}

// Palette 有序颜色表，索引是颜色的唯一标识。
// 量化只读，可在多个 goroutine 间共享；Set、Exclude 和 ClearAlpha 不是并发安全的。
type Palette struct {
	colors   []Color
	excluded []bool
	metric   Metric
}

// NewPalette 以给定颜色创建调色板
func NewPalette(colors []Color) *Palette {
	p := &Palette{
		colors:   append([]Color(nil), colors...),
		excluded: make([]bool, len(colors)),
		metric:   MetricRGBA,
	}
	return p
}

// NewSizedPalette 创建 n 个不透明黑色条目的调色板
func NewSizedPalette(n int) *Palette {
	colors := make([]Color, n)
	for i := range colors {
		colors[i] = Color{A: 1}
	}
	return NewPalette(colors)
}

// WithMetric 返回使用另一种度量的拷贝，之后修改任一方都不影响另一方
func (p *Palette) WithMetric(m Metric) *Palette {
	if m == nil {
		m = MetricRGBA
	}
	return &Palette{
		colors:   append([]Color(nil), p.colors...),
		excluded: append([]bool(nil), p.excluded...),
		metric:   m,
	}
}

// Len 条目数量，包括被排除的条目
func (p *Palette) Len() int {
	return len(p.colors)
}

// Get 读取索引处的颜色
func (p *Palette) Get(i int) (Color, error) {
	if i < 0 || i >= len(p.colors) {
		return Color{}, fmt.Errorf("%w: palette index %d of %d", ErrOutOfBounds, i, len(p.colors))
	}
	return p.colors[i], nil
}

// Set 替换索引处的颜色
func (p *Palette) Set(i int, c Color) error {
	if i < 0 || i >= len(p.colors) {
		return fmt.Errorf("%w: palette index %d of %d", ErrOutOfBounds, i, len(p.colors))
	}
	p.colors[i] = c
	return nil
}

// Exclude 让量化跳过某个索引，索引本身仍然保留
func (p *Palette) Exclude(i int, excluded bool) error {
	if i < 0 || i >= len(p.colors) {
		return fmt.Errorf("%w: palette index %d of %d", ErrOutOfBounds, i, len(p.colors))
	}
	p.excluded[i] = excluded
	return nil
}

// Excluded 报告索引是否被排除
func (p *Palette) Excluded(i int) bool {
	return i >= 0 && i < len(p.excluded) && p.excluded[i]
}

// ClearAlpha 把所有条目设为完全不透明
func (p *Palette) ClearAlpha() {
	for i := range p.colors {
		p.colors[i].A = 1
	}
}

// Colors 返回条目的拷贝
func (p *Palette) Colors() []Color {
	return append([]Color(nil), p.colors...)
}

// Quantize 返回距离最近的条目索引，距离相同时取最小索引
func (p *Palette) Quantize(c Color) (int, error) {
	best := -1
	bestDist := math.Inf(1)
	for i, pc := range p.colors {
		if p.excluded[i] {
			continue
		}
		if d := p.metric(c, pc); best < 0 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	if best < 0 {
		return 0, ErrEmptyPalette
	}
	return best, nil
}
