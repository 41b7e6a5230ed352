package mapart

import (
	"mapart/src/litematic"
	"mapart/src/pixel"
)

// BaseColor 地图基础色及用来获得它的方块
type BaseColor struct {
	ID      int
	Name    string
	R, G, B uint8
	Block   litematic.Block
}

// BaseColors 地图基础色 0..31，ID 0 为透明
var BaseColors = []BaseColor{
	{0, "NONE", 0, 0, 0, litematic.Air},
	{1, "GRASS", 127, 178, 56, litematic.NewBlock("minecraft:grass_block", "snowy", "false")},
	{2, "SAND", 247, 233, 163, litematic.NewBlock("minecraft:sandstone")},
	{3, "WOOL", 199, 199, 199, litematic.NewBlock("minecraft:mushroom_stem", "down", "true", "east", "true", "north", "true", "south", "true", "up", "true", "west", "true")},
	{4, "FIRE", 255, 0, 0, litematic.NewBlock("minecraft:redstone_block")},
	{5, "ICE", 160, 160, 255, litematic.NewBlock("minecraft:packed_ice")},
	{6, "METAL", 167, 167, 167, litematic.NewBlock("minecraft:iron_block")},
	{7, "PLANT", 0, 124, 0, litematic.NewBlock("minecraft:oak_leaves", "distance", "7", "persistent", "true", "waterlogged", "false")},
	{8, "SNOW", 255, 255, 255, litematic.NewBlock("minecraft:snow_block")},
	{9, "CLAY", 164, 168, 184, litematic.NewBlock("minecraft:clay")},
	{10, "DIRT", 151, 109, 77, litematic.NewBlock("minecraft:dirt")},
	{11, "STONE", 112, 112, 112, litematic.NewBlock("minecraft:stone")},
	{12, "WATER", 64, 64, 255, litematic.NewBlock("minecraft:water", "level", "0")},
	{13, "WOOD", 143, 119, 72, litematic.NewBlock("minecraft:oak_planks")},
	{14, "QUARTZ", 255, 252, 245, litematic.NewBlock("minecraft:quartz_block")},
	{15, "COLOR_ORANGE", 216, 127, 51, litematic.NewBlock("minecraft:orange_wool")},
	{16, "COLOR_MAGENTA", 178, 76, 216, litematic.NewBlock("minecraft:magenta_wool")},
	{17, "COLOR_LIGHT_BLUE", 102, 153, 216, litematic.NewBlock("minecraft:light_blue_wool")},
	{18, "COLOR_YELLOW", 229, 229, 51, litematic.NewBlock("minecraft:yellow_wool")},
	{19, "COLOR_LIGHT_GREEN", 127, 204, 25, litematic.NewBlock("minecraft:lime_wool")},
	{20, "COLOR_PINK", 242, 127, 165, litematic.NewBlock("minecraft:pink_wool")},
	{21, "COLOR_GRAY", 76, 76, 76, litematic.NewBlock("minecraft:gray_wool")},
	{22, "COLOR_LIGHT_GRAY", 153, 153, 153, litematic.NewBlock("minecraft:light_gray_wool")},
	{23, "COLOR_CYAN", 76, 127, 153, litematic.NewBlock("minecraft:cyan_wool")},
	{24, "COLOR_PURPLE", 127, 63, 178, litematic.NewBlock("minecraft:purple_wool")},
	{25, "COLOR_BLUE", 51, 76, 178, litematic.NewBlock("minecraft:blue_wool")},
	{26, "COLOR_BROWN", 102, 76, 51, litematic.NewBlock("minecraft:brown_wool")},
	{27, "COLOR_GREEN", 102, 127, 51, litematic.NewBlock("minecraft:green_wool")},
	{28, "COLOR_RED", 153, 51, 51, litematic.NewBlock("minecraft:red_wool")},
	{29, "COLOR_BLACK", 25, 25, 25, litematic.NewBlock("minecraft:black_wool")},
	{30, "GOLD", 250, 238, 77, litematic.NewBlock("minecraft:gold_block")},
	{31, "DIAMOND", 92, 219, 213, litematic.NewBlock("minecraft:diamond_block")},
}

// Transparent 报告基础色是否为透明
func (bc BaseColor) Transparent() bool {
	return bc.ID == 0
}

// Shade 基础色在某个色调下的颜色，每个分量为 floor(c*m/255)
func (bc BaseColor) Shade(t Tone) pixel.Color {
	if bc.Transparent() {
		return pixel.Color{}
	}
	m := uint32(t.Multiplier())
	return pixel.Color{
		R: float64(uint32(bc.R)*m/255) / 255,
		G: float64(uint32(bc.G)*m/255) / 255,
		B: float64(uint32(bc.B)*m/255) / 255,
		A: 1,
	}
}

// BaseByName 按名称查找基础色，例如 COLOR_RED
func BaseByName(name string) (BaseColor, bool) {
	for _, bc := range BaseColors {
		if bc.Name == name {
			return bc, true
		}
	}
	return BaseColor{}, false
}
