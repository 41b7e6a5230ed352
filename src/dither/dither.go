package dither

import (
	"fmt"
	"strings"

	"mapart/src/pixel"
)

// DefaultSpread 有序抖动默认的扰动幅度
const DefaultSpread = 0.2

// Ditherer 把浮点图像转换为调色板图像。输入图像不会被修改
type Ditherer interface {
	Dither(img *pixel.FloatImage, pal *pixel.Palette) (*pixel.PalettedImage, error)
}

// None 逐像素取最近色
type None struct{}

func (None) Dither(img *pixel.FloatImage, pal *pixel.Palette) (*pixel.PalettedImage, error) {
	out, err := pixel.NewPalettedImage(pal, img.Width(), img.Height())
	if err != nil {
		return nil, err
	}
	for y := 0; y < img.Height(); y++ {
		for x := 0; x < img.Width(); x++ {
			c, err := img.At(x, y)
			if err != nil {
				return nil, err
			}
			if err := out.Set(x, y, c); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// Diffusion 按行扫描的误差扩散
type Diffusion struct {
	Kernel Kernel
	// IncludeAlpha 为 false 时误差的透明分量被丢弃
	IncludeAlpha bool
}

func (d Diffusion) Dither(img *pixel.FloatImage, pal *pixel.Palette) (*pixel.PalettedImage, error) {
	if err := d.Kernel.Validate(); err != nil {
		return nil, err
	}
	out, err := pixel.NewPalettedImage(pal, img.Width(), img.Height())
	if err != nil {
		return nil, err
	}
	work := img.Clone()
	div := float64(d.Kernel.Divisor())

	for y := 0; y < work.Height(); y++ {
		for x := 0; x < work.Width(); x++ {
			old, err := work.At(x, y)
			if err != nil {
				return nil, err
			}
			idx, err := pal.Quantize(old)
			if err != nil {
				return nil, err
			}
			if err := out.SetIndex(x, y, idx); err != nil {
				return nil, err
			}
			chosen, _ := pal.Get(idx)
			diff := old.Sub(chosen)
			if !d.IncludeAlpha {
				diff.A = 0
			}
			for dy, row := range d.Kernel.Matrix {
				for dx, w := range row {
					if w == 0 {
						continue
					}
					tx := x + dx - d.Kernel.OffsetX
					ty := y + dy - d.Kernel.OffsetY
					if !work.InBounds(tx, ty) {
						continue
					}
					c, _ := work.At(tx, ty)
					_ = work.Set(tx, ty, c.Add(diff.Mul(float64(w)/div)))
				}
			}
		}
	}
	return out, nil
}

// Ordered 阈值矩阵抖动，矩阵取值应为 1..行数×列数
type Ordered struct {
	Matrix [][]int
	// Spread 阈值扰动幅度，<=0 时使用 DefaultSpread
	Spread float64
}

func (o Ordered) Dither(img *pixel.FloatImage, pal *pixel.Palette) (*pixel.PalettedImage, error) {
	if err := validateMatrix(o.Matrix); err != nil {
		return nil, err
	}
	spread := o.Spread
	if spread <= 0 {
		spread = DefaultSpread
	}
	out, err := pixel.NewPalettedImage(pal, img.Width(), img.Height())
	if err != nil {
		return nil, err
	}
	mh, mw := len(o.Matrix), len(o.Matrix[0])
	n := float64(mh * mw)

	for y := 0; y < img.Height(); y++ {
		for x := 0; x < img.Width(); x++ {
			c, err := img.At(x, y)
			if err != nil {
				return nil, err
			}
			t := ((float64(o.Matrix[y%mh][x%mw])-0.5)/n - 0.5) * spread
			c.R += t
			c.G += t
			c.B += t
			if err := out.Set(x, y, c); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// Quantize 使用 d 转换图像，d 为 nil 时等同 None
func Quantize(img *pixel.FloatImage, pal *pixel.Palette, d Ditherer) (*pixel.PalettedImage, error) {
	if d == nil {
		d = None{}
	}
	return d.Dither(img, pal)
}

// ByName 解析 none、扩散核名称或有序矩阵名称
func ByName(name string, includeAlpha bool, spread float64) (Ditherer, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "none" {
		return None{}, nil
	}
	if k, ok := KernelByName(name); ok {
		return Diffusion{Kernel: k, IncludeAlpha: includeAlpha}, nil
	}
	if m, ok := OrderedByName(name); ok {
		return Ordered{Matrix: m, Spread: spread}, nil
	}
	return nil, fmt.Errorf("unknown dither %q", name)
}

// Names 所有可用的抖动名称
func Names() []string {
	names := []string{"none"}
	names = append(names, KernelNames()...)
	return append(names, "ordered3x3", "bayer2", "bayer4", "bayer8", "bayer16")
}
