package pixel

import (
	"fmt"
	"image"
	"image/color"
)

// Image 二维像素网格的公共接口
type Image interface {
	Width() int
	Height() int
	At(x, y int) (Color, error)
	Set(x, y int, c Color) error
	// ClearAlpha 把所有像素设为不透明
	ClearAlpha()
	// Bytes 行优先的 8 位 RGBA，越界分量被截断
	Bytes() []byte
}

// FloatImage 每像素 4 个 float64 的可写图像
type FloatImage struct {
	width, height int
	data          []float64
}

// NewFloatImage 创建全零（透明黑）图像
func NewFloatImage(width, height int) (*FloatImage, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return &FloatImage{width: width, height: height, data: make([]float64, width*height*4)}, nil
}

// FromRGBA8 从行优先的 8 位 RGBA 数据创建图像
func FromRGBA8(data []byte, width, height int) (*FloatImage, error) {
	img, err := NewFloatImage(width, height)
	if err != nil {
		return nil, err
	}
	if len(data) != width*height*4 {
		return nil, fmt.Errorf("%w: %d bytes for %dx%d", ErrInvalidDimensions, len(data), width, height)
	}
	for i, b := range data {
		img.data[i] = float64(b) / 255
	}
	return img, nil
}

// FromImage 从标准库图像转换
func FromImage(src image.Image) (*FloatImage, error) {
	b := src.Bounds()
	img, err := NewFloatImage(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			img.put(x, y, FromNRGBA(c))
		}
	}
	return img, nil
}

func (img *FloatImage) Width() int  { return img.width }
func (img *FloatImage) Height() int { return img.height }

// InBounds 报告坐标是否在图像内
func (img *FloatImage) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < img.width && y < img.height
}

func (img *FloatImage) At(x, y int) (Color, error) {
	if !img.InBounds(x, y) {
		return Color{}, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfBounds, x, y, img.width, img.height)
	}
	i := (y*img.width + x) * 4
	return Color{img.data[i], img.data[i+1], img.data[i+2], img.data[i+3]}, nil
}

func (img *FloatImage) Set(x, y int, c Color) error {
	if !img.InBounds(x, y) {
		return fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfBounds, x, y, img.width, img.height)
	}
	img.put(x, y, c)
	return nil
}

func (img *FloatImage) put(x, y int, c Color) {
	i := (y*img.width + x) * 4
	img.data[i] = c.R
	img.data[i+1] = c.G
	img.data[i+2] = c.B
	img.data[i+3] = c.A
}

func (img *FloatImage) ClearAlpha() {
	for i := 3; i < len(img.data); i += 4 {
		img.data[i] = 1
	}
}

func (img *FloatImage) Bytes() []byte {
	out := make([]byte, len(img.data))
	for i, v := range img.data {
		out[i] = to8(v)
	}
	return out
}

// Clone 深拷贝
func (img *FloatImage) Clone() *FloatImage {
	return &FloatImage{
		width:  img.width,
		height: img.height,
		data:   append([]float64(nil), img.data...),
	}
}

// Section 复制以 (x,y) 为左上角的 w×h 区域，超出源图像的部分为透明黑
func (img *FloatImage) Section(x, y, w, h int) (*FloatImage, error) {
	out, err := NewFloatImage(w, h)
	if err != nil {
		return nil, err
	}
	for dy := 0; dy < h; dy++ {
		sy := y + dy
		if sy < 0 || sy >= img.height {
			continue
		}
		for dx := 0; dx < w; dx++ {
			sx := x + dx
			if sx < 0 || sx >= img.width {
				continue
			}
			si := (sy*img.width + sx) * 4
			di := (dy*w + dx) * 4
			copy(out.data[di:di+4], img.data[si:si+4])
		}
	}
	return out, nil
}

// NRGBA 转换为标准库图像
func (img *FloatImage) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    img.Bytes(),
		Stride: img.width * 4,
		Rect:   image.Rect(0, 0, img.width, img.height),
	}
}
