package pixel

import (
	"fmt"
	"image"
)

// PalettedImage 每个像素保存调色板索引的图像
type PalettedImage struct {
	width, height int
	palette       *Palette
	indices       []uint16
}

// NewPalettedImage 创建所有像素为索引 0 的图像
func NewPalettedImage(p *Palette, width, height int) (*PalettedImage, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if p.Len() == 0 || p.Len() > 1<<16 {
		return nil, fmt.Errorf("%w: %d entries", ErrEmptyPalette, p.Len())
	}
	return &PalettedImage{
		width:   width,
		height:  height,
		palette: p,
		indices: make([]uint16, width*height),
	}, nil
}

func (img *PalettedImage) Width() int        { return img.width }
func (img *PalettedImage) Height() int       { return img.height }
func (img *PalettedImage) Palette() *Palette { return img.palette }

// Indices 行优先的索引切片，调用方不应修改
func (img *PalettedImage) Indices() []uint16 {
	return img.indices
}

func (img *PalettedImage) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < img.width && y < img.height
}

// Index 读取像素的调色板索引
func (img *PalettedImage) Index(x, y int) (int, error) {
	if !img.inBounds(x, y) {
		return 0, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfBounds, x, y, img.width, img.height)
	}
	return int(img.indices[y*img.width+x]), nil
}

// SetIndex 直接写入调色板索引
func (img *PalettedImage) SetIndex(x, y, i int) error {
	if !img.inBounds(x, y) {
		return fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfBounds, x, y, img.width, img.height)
	}
	if i < 0 || i >= img.palette.Len() {
		return fmt.Errorf("%w: palette index %d of %d", ErrOutOfBounds, i, img.palette.Len())
	}
	img.indices[y*img.width+x] = uint16(i)
	return nil
}

// At 返回像素索引对应的调色板颜色
func (img *PalettedImage) At(x, y int) (Color, error) {
	i, err := img.Index(x, y)
	if err != nil {
		return Color{}, err
	}
	return img.palette.Get(i)
}

// Set 把颜色量化到调色板后写入
func (img *PalettedImage) Set(x, y int, c Color) error {
	i, err := img.palette.Quantize(c)
	if err != nil {
		return err
	}
	return img.SetIndex(x, y, i)
}

// ClearAlpha 作用于共享的调色板
func (img *PalettedImage) ClearAlpha() {
	img.palette.ClearAlpha()
}

func (img *PalettedImage) Bytes() []byte {
	out := make([]byte, 0, len(img.indices)*4)
	for _, i := range img.indices {
		c := img.palette.colors[i].NRGBA()
		out = append(out, c.R, c.G, c.B, c.A)
	}
	return out
}

// NRGBA 转换为标准库图像
func (img *PalettedImage) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    img.Bytes(),
		Stride: img.width * 4,
		Rect:   image.Rect(0, 0, img.width, img.height),
	}
}

var (
	_ Image = (*FloatImage)(nil)
	_ Image = (*PalettedImage)(nil)
)
