package mapart

import "mapart/src/pixel"

// PaletteSize 调色板条目数，与地图颜色字节的取值范围一致
const PaletteSize = 128

// NewPalette 创建 128 色地图调色板，条目索引就是地图颜色字节。
// 未启用的色调被排除但仍占位；透明色只保留索引 0
func NewPalette(tones []Tone) *pixel.Palette {
	if len(tones) == 0 {
		tones = DefaultTones
	}
	enabled := map[Tone]bool{}
	for _, t := range tones {
		enabled[t] = true
	}

	colors := make([]pixel.Color, PaletteSize)
	for _, bc := range BaseColors {
		for t := Dark; t <= Lowest; t++ {
			colors[ColorIndex(bc.ID, t)] = bc.Shade(t)
		}
	}
	p := pixel.NewPalette(colors)
	for _, bc := range BaseColors {
		for t := Dark; t <= Lowest; t++ {
			i := ColorIndex(bc.ID, t)
			if bc.Transparent() {
				_ = p.Exclude(i, i != 0)
				continue
			}
			_ = p.Exclude(i, !enabled[t])
		}
	}
	return p
}

// ExcludeBase 让量化跳过某个基础色的所有色调
func ExcludeBase(p *pixel.Palette, id int) error {
	for t := Dark; t <= Lowest; t++ {
		if err := p.Exclude(ColorIndex(id, t), true); err != nil {
			return err
		}
	}
	return nil
}
