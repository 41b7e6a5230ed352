package format

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mapart/src/mapart"
	"mapart/src/nbt"
	"mapart/src/pixel"
	"mapart/utils"
)

// converterBase 各转换器共用的进度与日志
type converterBase struct {
	progressCallback ProgressCallback
}

// SetProgressCallback 设置进度回调函数
func (b *converterBase) SetProgressCallback(callback ProgressCallback) {
	b.progressCallback = callback
}

func (b *converterBase) report(current, total int, message string) {
	if b.progressCallback != nil {
		b.progressCallback(current, total, message)
	}
}

func logf(s Settings, colorCode, format string, a ...interface{}) {
	if s.Quiet {
		return
	}
	fmt.Println(utils.ColoredPrintf(colorCode, format, s.Color, a...))
}

// loadTiles 读取图片并量化为地图切片
func (b *converterBase) loadTiles(inputPath string, width, height int, s Settings) (*pixel.FloatImage, []*mapart.Tile, error) {
	img, err := LoadImage(inputPath, width, height)
	if err != nil {
		return nil, nil, err
	}
	cols, rows := mapart.Grid(img.Width(), img.Height())
	logf(s, utils.Green, "✅ 图片加载完成: %d × %d 像素, %d × %d 张地图", img.Width(), img.Height(), cols, rows)

	tiles, err := mapart.EncodeTiles(img, mapart.Options{
		Palette:  s.Palette,
		Ditherer: s.Ditherer,
		Workers:  s.Workers,
		Progress: func(done, total int) {
			b.report(done, total, "量化地图")
		},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("量化失败: %w", err)
	}
	return img, tiles, nil
}

// baseName 去掉目录和扩展名的文件名
func baseName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// gzipDocument 在内存中编码并压缩文档
func gzipDocument(root *nbt.Compound) ([]byte, error) {
	var buf bytes.Buffer
	if err := nbt.WriteGzip(&buf, root); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeFile 先写同目录的临时文件再改名，失败时不留下残缺的输出
func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("创建文件失败: %w", err)
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return fmt.Errorf("写入 %s 失败: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return fmt.Errorf("写入 %s 失败: %w", path, err)
	}
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return fmt.Errorf("保存 %s 失败: %w", path, err)
	}
	return nil
}
