package mapart

import (
	"fmt"

	"mapart/src/litematic"
	"mapart/src/pixel"
)

// DefaultFiller 北侧参考行和支撑使用的方块
var DefaultFiller = litematic.NewBlock("minecraft:cobblestone")

// BuildOptions 阶梯生成参数
type BuildOptions struct {
	Origin litematic.Vec3
	// Filler 为零值时使用 DefaultFiller
	Filler litematic.Block
	// Support 在每个方块下方放置 Filler
	Support bool
}

// BuildRegion 把地图索引图像转换为阶梯式方块区域。
// 图像第 z 行放在区域的 z+1 处，z=0 是每列的北侧参考方块；
// Dark 比北侧低一格，Normal 同高，Light 高一格。每列最低点对齐到 y=0（Support 时为 1）
func BuildRegion(img *pixel.PalettedImage, opts BuildOptions) (*litematic.Region, error) {
	filler := opts.Filler
	if filler.Name == "" {
		filler = DefaultFiller
	}
	base := 0
	if opts.Support {
		base = 1
	}

	w, h := img.Width(), img.Height()
	columns := make([][]int, w)
	maxY := 0
	for x := 0; x < w; x++ {
		heights := make([]int, h+1)
		lowest := 0
		for z := 0; z < h; z++ {
			idx, err := img.Index(x, z)
			if err != nil {
				return nil, err
			}
			if idx >= PaletteSize {
				return nil, fmt.Errorf("%w: %d at (%d,%d)", ErrColorOutOfRange, idx, x, z)
			}
			id, tone := SplitIndex(idx)
			next := heights[z]
			if id != 0 {
				switch tone {
				case Dark:
					next--
				case Light:
					next++
				case Lowest:
					return nil, fmt.Errorf("%w: (%d,%d)", ErrUnobtainableTone, x, z)
				}
			}
			heights[z+1] = next
			lowest = min(lowest, next)
		}
		for i := range heights {
			heights[i] += base - lowest
			maxY = max(maxY, heights[i])
		}
		columns[x] = heights
	}

	r, err := litematic.NewRegion(opts.Origin, litematic.Vec3{X: w, Y: maxY + 1, Z: h + 1})
	if err != nil {
		return nil, err
	}
	put := func(x, y, z int, b litematic.Block) error {
		if err := r.Set(opts.Origin.Add(litematic.Vec3{X: x, Y: y, Z: z}), b); err != nil {
			return err
		}
		if opts.Support {
			return r.Set(opts.Origin.Add(litematic.Vec3{X: x, Y: y - 1, Z: z}), filler)
		}
		return nil
	}

	for x, heights := range columns {
		if err := put(x, heights[0], 0, filler); err != nil {
			return nil, err
		}
		for z := 0; z < h; z++ {
			idx, _ := img.Index(x, z)
			id, _ := SplitIndex(idx)
			if id == 0 {
				continue
			}
			if err := put(x, heights[z+1], z+1, BaseColors[id].Block); err != nil {
				return nil, err
			}
		}
	}
	return r, nil
}
