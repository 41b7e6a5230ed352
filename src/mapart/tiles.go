package mapart

import (
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"mapart/src/dither"
	"mapart/src/nbt"
	"mapart/src/pixel"
)

const (
	TileSize    = 128
	TileBytes   = TileSize * TileSize
	DataVersion = 3578
)

// Tile 一张地图对应的量化结果，Col/Row 是以地图为单位的坐标
type Tile struct {
	Col, Row int
	Image    *pixel.PalettedImage
}

// Colors 行优先的地图颜色字节
func (t *Tile) Colors() ([]byte, error) {
	out := make([]byte, len(t.Image.Indices()))
	for i, idx := range t.Image.Indices() {
		if idx >= PaletteSize {
			return nil, fmt.Errorf("%w: %d at pixel %d", ErrColorOutOfRange, idx, i)
		}
		out[i] = byte(idx)
	}
	return out, nil
}

// Document 构建地图数据文件
func (t *Tile) Document(meta MapMeta) (*nbt.Compound, error) {
	colors, err := t.Colors()
	if err != nil {
		return nil, err
	}
	return MapDocument(colors, meta)
}

// MapMeta 地图数据中与颜色无关的字段
type MapMeta struct {
	Dimension         string
	XCenter, ZCenter  int32
	Scale             int8
	Locked            bool
	TrackingPosition  bool
	UnlimitedTracking bool
}

// DefaultMapMeta 主世界、锁定、比例 0
func DefaultMapMeta() MapMeta {
	return MapMeta{Dimension: "minecraft:overworld", Locked: true}
}

// MapDocument 由 16384 个颜色字节构建地图文件的根标签
func MapDocument(colors []byte, meta MapMeta) (*nbt.Compound, error) {
	if len(colors) != TileBytes {
		return nil, fmt.Errorf("%w: %d colors, want %d", pixel.ErrInvalidDimensions, len(colors), TileBytes)
	}
	for i, c := range colors {
		if c >= PaletteSize {
			return nil, fmt.Errorf("%w: %d at pixel %d", ErrColorOutOfRange, c, i)
		}
	}
	if meta.Dimension == "" {
		meta.Dimension = "minecraft:overworld"
	}
	data := nbt.NewCompound().
		Set("unlimitedTracking", nbt.Bool(meta.UnlimitedTracking)).
		Set("frames", nbt.EmptyList(nbt.TagCompound)).
		Set("banners", nbt.EmptyList(nbt.TagCompound)).
		Set("trackingPosition", nbt.Bool(meta.TrackingPosition)).
		Set("zCenter", nbt.Int(meta.ZCenter)).
		Set("locked", nbt.Bool(meta.Locked)).
		Set("xCenter", nbt.Int(meta.XCenter)).
		Set("dimension", nbt.String(meta.Dimension)).
		Set("scale", nbt.Byte(meta.Scale)).
		Set("colors", nbt.ByteArray(append([]byte(nil), colors...)))
	return nbt.NewCompound().
		Set("DataVersion", nbt.Int(DataVersion)).
		Set("data", data), nil
}

// Grid 覆盖 width×height 所需的地图列数和行数
func Grid(width, height int) (cols, rows int) {
	return (width + TileSize - 1) / TileSize, (height + TileSize - 1) / TileSize
}

// Options 切图参数
type Options struct {
	// Palette 为 nil 时使用 NewPalette(DefaultTones)
	Palette  *pixel.Palette
	Ditherer dither.Ditherer
	// Workers <=0 时使用 CPU 核数
	Workers int
	// Progress 每完成一张地图调用一次，调用是串行的
	Progress func(done, total int)
}

// EncodeTiles 把图像切成 128×128 的地图并分别量化。
// 结果按列优先排列：tiles[col*rows+row]。图像之外的区域为透明
func EncodeTiles(img *pixel.FloatImage, opts Options) ([]*Tile, error) {
	pal := opts.Palette
	if pal == nil {
		pal = NewPalette(DefaultTones)
	}
	if pal.Len() > PaletteSize {
		return nil, fmt.Errorf("%w: palette has %d entries", ErrColorOutOfRange, pal.Len())
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	cols, rows := Grid(img.Width(), img.Height())
	tiles := make([]*Tile, cols*rows)

	var (
		mu   sync.Mutex
		done int
	)
	var g errgroup.Group
	g.SetLimit(workers)
	for col := 0; col < cols; col++ {
		for row := 0; row < rows; row++ {
			col, row := col, row
			g.Go(func() error {
				section, err := img.Section(col*TileSize, row*TileSize, TileSize, TileSize)
				if err != nil {
					return err
				}
				out, err := dither.Quantize(section, pal, opts.Ditherer)
				if err != nil {
					return fmt.Errorf("map %d,%d: %w", col, row, err)
				}
				tiles[col*rows+row] = &Tile{Col: col, Row: row, Image: out}

				if opts.Progress != nil {
					mu.Lock()
					done++
					opts.Progress(done, len(tiles))
					mu.Unlock()
				}
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tiles, nil
}
