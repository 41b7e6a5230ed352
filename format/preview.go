package format

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"

	"github.com/disintegration/imaging"

	"mapart/src/mapart"
	"mapart/utils"
)

// PreviewConverter 输出量化后的效果图，便于在搭建前检查
type PreviewConverter struct {
	converterBase
}

// NewPreviewConverter 创建新的预览转换器
func NewPreviewConverter() *PreviewConverter {
	return &PreviewConverter{}
}

// GetFormatName 获取格式名称
func (c *PreviewConverter) GetFormatName() string {
	return "preview"
}

// GetExtension 获取文件扩展名
func (c *PreviewConverter) GetExtension() string {
	return ".png"
}

// Convert 执行转换
func (c *PreviewConverter) Convert(inputPath, outputPath string, width, height int, s Settings) error {
	img, tiles, err := c.loadTiles(inputPath, width, height, s)
	if err != nil {
		return err
	}

	canvas := image.NewNRGBA(image.Rect(0, 0, img.Width(), img.Height()))
	for _, tile := range tiles {
		at := image.Pt(tile.Col*mapart.TileSize, tile.Row*mapart.TileSize)
		draw.Draw(canvas, image.Rectangle{Min: at, Max: at.Add(image.Pt(mapart.TileSize, mapart.TileSize))}, tile.Image.NRGBA(), image.Point{}, draw.Src)
	}
	f, err := imaging.FormatFromFilename(outputPath)
	if err != nil {
		return fmt.Errorf("保存预览失败: %w", err)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, canvas, f); err != nil {
		return fmt.Errorf("编码预览失败: %w", err)
	}
	if err := writeFile(outputPath, buf.Bytes()); err != nil {
		return err
	}
	logf(s, utils.Green, "✅ 预览图保存完成: %s", outputPath)
	return nil
}
