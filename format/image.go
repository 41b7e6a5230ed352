package format

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"os"

	"github.com/disintegration/imaging"
	"golang.org/x/image/webp"

	"mapart/src/pixel"
)

// DecodeImage 按文件内容而不是扩展名识别格式
func DecodeImage(imagePath string) (image.Image, error) {
	file, err := os.Open(imagePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	// 读取文件头部以确定实际格式
	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("读取文件头部失败: %w", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("重置文件指针失败: %w", err)
	}

	var img image.Image
	actualFormat := http.DetectContentType(buffer[:n])
	switch actualFormat {
	case "image/png":
		img, err = png.Decode(file)
	case "image/jpeg":
		img, err = jpeg.Decode(file)
	case "image/webp":
		img, err = webp.Decode(file)
	default:
		img, err = imaging.Decode(file)
	}
	if err != nil {
		return nil, fmt.Errorf("解码图片失败: %w (文件路径: %s, 检测格式: %s)", err, imagePath, actualFormat)
	}
	return img, nil
}

// LoadImage 解码并缩放图片。width 或 height 为 0 时按比例计算，两者都为 0 时保持原尺寸
func LoadImage(imagePath string, width, height int) (*pixel.FloatImage, error) {
	img, err := DecodeImage(imagePath)
	if err != nil {
		return nil, err
	}
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: %dx%d", pixel.ErrInvalidDimensions, width, height)
	}
	if width > 0 || height > 0 {
		img = imaging.Resize(img, width, height, imaging.Lanczos)
	}
	return pixel.FromImage(img)
}
