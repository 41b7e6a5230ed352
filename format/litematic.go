package format

import (
	"fmt"

	"mapart/src/litematic"
	"mapart/src/mapart"
	"mapart/utils"
)

// LitematicConverter 生成阶梯式地图画投影，每张地图一个区域
type LitematicConverter struct {
	converterBase
}

// NewLitematicConverter 创建新的Litematic转换器
func NewLitematicConverter() *LitematicConverter {
	return &LitematicConverter{}
}

// GetFormatName 获取格式名称
func (c *LitematicConverter) GetFormatName() string {
	return "litematic"
}

// GetExtension 获取文件扩展名
func (c *LitematicConverter) GetExtension() string {
	return ".litematic"
}

// Convert 执行转换
func (c *LitematicConverter) Convert(inputPath, outputPath string, width, height int, s Settings) error {
	logf(s, utils.Blue, "🚀 开始转换流程...")
	_, tiles, err := c.loadTiles(inputPath, width, height, s)
	if err != nil {
		return err
	}

	schem := litematic.New(baseName(outputPath), s.Author, s.Description)
	schem.Layout = s.Layout
	for i, tile := range tiles {
		region, err := mapart.BuildRegion(tile.Image, mapart.BuildOptions{
			Origin:  litematic.Vec3{X: tile.Col * mapart.TileSize, Z: tile.Row * (mapart.TileSize + 1)},
			Filler:  s.Filler,
			Support: s.Support,
		})
		if err != nil {
			return fmt.Errorf("生成地图 %d,%d 的阶梯失败: %w", tile.Col, tile.Row, err)
		}
		if err := schem.AddRegion(fmt.Sprintf("map_%d_%d", tile.Col, tile.Row), region); err != nil {
			return err
		}
		c.report(i+1, len(tiles), "生成区域")
	}

	root, err := schem.NBT()
	if err != nil {
		return fmt.Errorf("生成litematic失败: %w", err)
	}
	data, err := gzipDocument(root)
	if err != nil {
		return fmt.Errorf("编码litematic失败: %w", err)
	}

	logf(s, utils.Cyan, "💾 正在保存litematic文件...")
	if err := writeFile(outputPath, data); err != nil {
		return err
	}
	logf(s, utils.Green, "✅ litematic文件保存完成: %s (%d 个区域, %d 个方块)", outputPath, len(tiles), schem.TotalBlocks())
	return nil
}
