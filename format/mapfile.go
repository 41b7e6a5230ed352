package format

import (
	"fmt"
	"os"
	"path/filepath"

	"mapart/src/mapart"
	"mapart/utils"
)

// MapConverter 为每张地图写出一个 map_<列>_<行>.dat
type MapConverter struct {
	converterBase
}

// NewMapConverter 创建新的地图数据转换器
func NewMapConverter() *MapConverter {
	return &MapConverter{}
}

// GetFormatName 获取格式名称
func (c *MapConverter) GetFormatName() string {
	return "map"
}

// GetExtension 获取文件扩展名
func (c *MapConverter) GetExtension() string {
	return ".dat"
}

// MapFilePath 切片对应的输出路径，outputPath 的扩展名会被替换
func MapFilePath(outputPath string, col, row int) string {
	return filepath.Join(filepath.Dir(outputPath), fmt.Sprintf("%s_%d_%d.dat", baseName(outputPath), col, row))
}

// Convert 执行转换
func (c *MapConverter) Convert(inputPath, outputPath string, width, height int, s Settings) error {
	logf(s, utils.Blue, "🚀 开始转换流程...")
	_, tiles, err := c.loadTiles(inputPath, width, height, s)
	if err != nil {
		return err
	}

	// 所有地图都编码成功后才开始写文件
	files := make([][]byte, len(tiles))
	for i, tile := range tiles {
		meta := s.Map
		meta.XCenter += int32(tile.Col * mapart.TileSize)
		meta.ZCenter += int32(tile.Row * mapart.TileSize)
		doc, err := tile.Document(meta)
		if err != nil {
			return fmt.Errorf("地图 %d,%d: %w", tile.Col, tile.Row, err)
		}
		if files[i], err = gzipDocument(doc); err != nil {
			return fmt.Errorf("地图 %d,%d: %w", tile.Col, tile.Row, err)
		}
	}

	for i, tile := range tiles {
		if err := writeFile(MapFilePath(outputPath, tile.Col, tile.Row), files[i]); err != nil {
			for _, written := range tiles[:i] {
				os.Remove(MapFilePath(outputPath, written.Col, written.Row))
			}
			return err
		}
		c.report(i+1, len(tiles), "写入地图")
	}
	logf(s, utils.Green, "✅ 已写出 %d 个地图文件: %s", len(tiles), MapFilePath(outputPath, 0, 0))
	return nil
}
