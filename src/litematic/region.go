package litematic

import (
	"errors"
	"fmt"

	"mapart/src/bitpack"
	"mapart/src/nbt"
)

var (
	ErrOutOfBounds     = errors.New("litematic: position outside region")
	ErrInvalidSize     = errors.New("litematic: region size has a zero component")
	ErrNoRegions       = errors.New("litematic: schematic has no regions")
	ErrDuplicateRegion = errors.New("litematic: region name already used")
)

// Vec3 整数三维坐标
type Vec3 struct {
	X, Y, Z int
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Volume 三个分量之积
func (v Vec3) Volume() int { return v.X * v.Y * v.Z }

func (v Vec3) nbt() *nbt.Compound {
	return nbt.NewCompound().
		Set("x", nbt.Int(v.X)).
		Set("y", nbt.Int(v.Y)).
		Set("z", nbt.Int(v.Z))
}

// Region 轴对齐的方块区域，所有格子初始为空气
type Region struct {
	pos     Vec3
	size    Vec3
	palette []Block
	cells   []uint32
}

// NewRegion 创建区域。负的尺寸分量会把位置移到较小的一角并取绝对值
func NewRegion(pos, size Vec3) (*Region, error) {
	if size.X == 0 || size.Y == 0 || size.Z == 0 {
		return nil, fmt.Errorf("%w: %+v", ErrInvalidSize, size)
	}
	if size.X < 0 {
		size.X = -size.X
		pos.X -= size.X
	}
	if size.Y < 0 {
		size.Y = -size.Y
		pos.Y -= size.Y
	}
	if size.Z < 0 {
		size.Z = -size.Z
		pos.Z -= size.Z
	}
	return &Region{
		pos:     pos,
		size:    size,
		palette: []Block{Air},
		cells:   make([]uint32, size.Volume()),
	}, nil
}

func (r *Region) Position() Vec3 { return r.pos }
func (r *Region) Size() Vec3     { return r.size }
func (r *Region) Volume() int    { return len(r.cells) }

// Palette 调色板拷贝，索引 0 为空气
func (r *Region) Palette() []Block {
	return append([]Block(nil), r.palette...)
}

// Contains 报告世界坐标是否在区域内
func (r *Region) Contains(p Vec3) bool {
	l := p.Sub(r.pos)
	return l.X >= 0 && l.Y >= 0 && l.Z >= 0 &&
		l.X < r.size.X && l.Y < r.size.Y && l.Z < r.size.Z
}

func (r *Region) index(l Vec3) int {
	return l.X + (l.Y+l.Z*r.size.Y)*r.size.X
}

// Set 在世界坐标放置方块，相同方块复用调色板条目
func (r *Region) Set(p Vec3, b Block) error {
	if !r.Contains(p) {
		return fmt.Errorf("%w: %+v not in %+v..%+v", ErrOutOfBounds, p, r.pos, r.pos.Add(r.size))
	}
	r.cells[r.index(p.Sub(r.pos))] = r.paletteIndex(b)
	return nil
}

// Get 读取世界坐标处的方块
func (r *Region) Get(p Vec3) (Block, error) {
	if !r.Contains(p) {
		return Block{}, fmt.Errorf("%w: %+v not in %+v..%+v", ErrOutOfBounds, p, r.pos, r.pos.Add(r.size))
	}
	return r.palette[r.cells[r.index(p.Sub(r.pos))]], nil
}

func (r *Region) paletteIndex(b Block) uint32 {
	for i, pb := range r.palette {
		if pb.Equal(b) {
			return uint32(i)
		}
	}
	r.palette = append(r.palette, b)
	return uint32(len(r.palette) - 1)
}

// NonAir 非空气格子数量
func (r *Region) NonAir() int {
	n := 0
	for _, c := range r.cells {
		if c != 0 {
			n++
		}
	}
	return n
}

// Blocks 按 x、y、z（z 最内层）顺序返回调色板索引，这也是打包顺序
func (r *Region) Blocks() []uint32 {
	out := make([]uint32, 0, len(r.cells))
	for x := 0; x < r.size.X; x++ {
		for y := 0; y < r.size.Y; y++ {
			for z := 0; z < r.size.Z; z++ {
				out = append(out, r.cells[r.index(Vec3{x, y, z})])
			}
		}
	}
	return out
}

// NBT 编码区域，BlockStates 按 layout 打包
func (r *Region) NBT(layout bitpack.Layout) (*nbt.Compound, error) {
	width, err := layout.BitsFor(len(r.palette))
	if err != nil {
		return nil, err
	}
	states, err := bitpack.Pack(r.Blocks(), width, layout.Mode)
	if err != nil {
		return nil, err
	}

	palette := nbt.EmptyList(nbt.TagCompound)
	for _, b := range r.palette {
		if err := palette.Append(b.NBT()); err != nil {
			return nil, err
		}
	}

	return nbt.NewCompound().
		Set("Position", r.pos.nbt()).
		Set("Size", r.size.nbt()).
		Set("BlockStatePalette", palette).
		Set("Entities", nbt.EmptyList(nbt.TagCompound)).
		Set("PendingBlockTicks", nbt.EmptyList(nbt.TagCompound)).
		Set("PendingFluidTicks", nbt.EmptyList(nbt.TagCompound)).
		Set("TileEntities", nbt.EmptyList(nbt.TagCompound)).
		Set("BlockStates", nbt.LongArray(states)), nil
}
