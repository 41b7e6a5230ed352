package format

import (
	"errors"
	"fmt"
	"os"

	"mapart/src/bitpack"
	"mapart/src/litematic"
	"mapart/src/mapart"
	"mapart/src/nbt"
)

// VerifyLitematicFile 检查投影文件结构，并确认每个区域的 BlockStates 能按调色板解出
func VerifyLitematicFile(filePath string) (bool, string) {
	file, err := os.Open(filePath)
	if err != nil {
		return false, fmt.Sprintf("无法打开文件: %v", err)
	}
	defer file.Close()

	_, root, err := nbt.ReadGzip(file)
	if err != nil {
		return false, fmt.Sprintf("NBT解析失败: %v", err)
	}

	for _, field := range []string{"MinecraftDataVersion", "Version"} {
		if _, err := root.Int(field); err != nil {
			return false, fmt.Sprintf("文件缺少必要字段: %v", err)
		}
	}
	if v, _ := root.Int("Version"); v != litematic.Version {
		return false, fmt.Sprintf("不支持的版本: %d", v)
	}
	meta, err := root.Compound("Metadata")
	if err != nil {
		return false, fmt.Sprintf("元数据格式错误: %v", err)
	}
	regions, err := root.Compound("Regions")
	if err != nil {
		return false, fmt.Sprintf("区域格式错误: %v", err)
	}
	if count, err := meta.Int("RegionCount"); err != nil || int(count) != regions.Len() {
		return false, fmt.Sprintf("区域数量不一致: 元数据 %d, 实际 %d", count, regions.Len())
	}
	if regions.Len() == 0 {
		return false, "文件没有任何区域"
	}

	declared, err := meta.Int("TotalBlocks")
	if err != nil {
		return false, fmt.Sprintf("文件缺少必要字段: %v", err)
	}

	// 文件里看不出打包方式，逐个布局尝试，全部区域都能解出且方块总数一致才算通过
	var failure error
	for _, layout := range []bitpack.Layout{bitpack.LitematicPadded, bitpack.LitematicSplit} {
		totalBlocks, err := verifyRegions(regions, layout)
		if err == nil && int(declared) != totalBlocks {
			err = fmt.Errorf("方块总数不一致: 元数据 %d, 实际 %d", declared, totalBlocks)
		}
		if err == nil {
			return true, fmt.Sprintf("共 %d 个区域, %d 个方块 (%s)", regions.Len(), totalBlocks, layout.Mode)
		}
		if failure == nil || errors.Is(failure, errWordCount) {
			failure = err
		}
	}
	return false, failure.Error()
}

var errWordCount = errors.New("BlockStates 长度与体积不匹配")

func verifyRegions(regions *nbt.Compound, layout bitpack.Layout) (int, error) {
	total := 0
	for _, name := range regions.Names() {
		region, err := regions.Compound(name)
		if err != nil {
			return 0, fmt.Errorf("区域 %s: %w", name, err)
		}
		nonAir, err := verifyRegion(region, layout)
		if err != nil {
			return 0, fmt.Errorf("区域 %s: %w", name, err)
		}
		total += nonAir
	}
	return total, nil
}

func vec3(c *nbt.Compound, name string) (litematic.Vec3, error) {
	v, err := c.Compound(name)
	if err != nil {
		return litematic.Vec3{}, err
	}
	x, errX := v.Int("x")
	y, errY := v.Int("y")
	z, errZ := v.Int("z")
	for _, err := range []error{errX, errY, errZ} {
		if err != nil {
			return litematic.Vec3{}, err
		}
	}
	return litematic.Vec3{X: int(x), Y: int(y), Z: int(z)}, nil
}

// verifyRegion 按给定布局解码，返回非空气方块数量
func verifyRegion(region *nbt.Compound, layout bitpack.Layout) (int, error) {
	size, err := vec3(region, "Size")
	if err != nil {
		return 0, err
	}
	if _, err := vec3(region, "Position"); err != nil {
		return 0, err
	}
	volume := size.Volume()
	if volume < 0 {
		volume = -volume
	}
	if volume == 0 {
		return 0, fmt.Errorf("尺寸无效: %+v", size)
	}

	v, ok := region.Get("BlockStatePalette")
	palette, isList := v.(*nbt.List)
	if !ok || !isList || palette.Len() == 0 {
		return 0, fmt.Errorf("调色板为空或格式错误")
	}
	airIndex := -1
	for i, item := range palette.Items {
		entry, ok := item.(*nbt.Compound)
		if !ok {
			return 0, fmt.Errorf("调色板条目 %d 格式错误", i)
		}
		name, _ := entry.Get("Name")
		if name == nbt.String(litematic.Air.Name) && airIndex < 0 {
			airIndex = i
		}
	}

	v, ok = region.Get("BlockStates")
	states, isLongs := v.(nbt.LongArray)
	if !ok || !isLongs {
		return 0, fmt.Errorf("缺少 BlockStates")
	}

	width, err := layout.BitsFor(palette.Len())
	if err != nil {
		return 0, err
	}
	if len(states) != bitpack.WordCount(volume, width, layout.Mode) {
		return 0, fmt.Errorf("%w: %d 个字, 体积 %d", errWordCount, len(states), volume)
	}
	indices, err := bitpack.Unpack(states, width, volume, layout.Mode)
	if err != nil {
		return 0, err
	}
	nonAir := 0
	for _, idx := range indices {
		if int(idx) >= palette.Len() {
			return 0, fmt.Errorf("方块ID超出调色板范围: %d", idx)
		}
		if int(idx) != airIndex {
			nonAir++
		}
	}
	return nonAir, nil
}

// VerifyMapFile 检查地图数据文件
func VerifyMapFile(filePath string) (bool, string) {
	file, err := os.Open(filePath)
	if err != nil {
		return false, fmt.Sprintf("无法打开文件: %v", err)
	}
	defer file.Close()

	_, root, err := nbt.ReadGzip(file)
	if err != nil {
		return false, fmt.Sprintf("NBT解析失败: %v", err)
	}
	if _, err := root.Int("DataVersion"); err != nil {
		return false, fmt.Sprintf("文件缺少必要字段: %v", err)
	}
	data, err := root.Compound("data")
	if err != nil {
		return false, fmt.Sprintf("地图数据格式错误: %v", err)
	}
	v, _ := data.Get("colors")
	colors, ok := v.(nbt.ByteArray)
	if !ok || len(colors) != mapart.TileBytes {
		return false, fmt.Sprintf("颜色数据长度错误: %d", len(colors))
	}
	for i, c := range colors {
		if c >= mapart.PaletteSize {
			return false, fmt.Sprintf("像素 %d 的颜色 %d 超出范围", i, c)
		}
	}
	return true, fmt.Sprintf("%d 个像素", len(colors))
}
