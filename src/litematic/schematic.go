package litematic

import (
	"fmt"
	"io"
	"time"

	"mapart/src/bitpack"
	"mapart/src/nbt"
)

const (
	MinecraftDataVersion = 3578
	SubVersion           = 1
	Version              = 6
)

// Schematic 命名区域的集合，区域按加入顺序输出
type Schematic struct {
	Name        string
	Author      string
	Description string
	// Layout BlockStates 的打包方式，零值时使用 bitpack.LitematicPadded
	Layout bitpack.Layout
	// Now 时间来源，nil 时使用 time.Now
	Now func() time.Time

	names   []string
	regions map[string]*Region
}

// New 创建空的投影，名称为空时使用 Unnamed
func New(name, author, description string) *Schematic {
	if name == "" {
		name = "Unnamed"
	}
	return &Schematic{
		Name:        name,
		Author:      author,
		Description: description,
		regions:     make(map[string]*Region),
	}
}

// AddRegion 加入区域，名称必须唯一
func (s *Schematic) AddRegion(name string, r *Region) error {
	if s.regions == nil {
		s.regions = make(map[string]*Region)
	}
	if _, ok := s.regions[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateRegion, name)
	}
	s.regions[name] = r
	s.names = append(s.names, name)
	return nil
}

// Region 按名称查找
func (s *Schematic) Region(name string) (*Region, bool) {
	r, ok := s.regions[name]
	return r, ok
}

// RegionNames 按加入顺序
func (s *Schematic) RegionNames() []string {
	return append([]string(nil), s.names...)
}

// EnclosingSize 所有区域包围盒的尺寸
func (s *Schematic) EnclosingSize() (Vec3, error) {
	if len(s.names) == 0 {
		return Vec3{}, ErrNoRegions
	}
	first := s.regions[s.names[0]]
	lo, hi := first.pos, first.pos.Add(first.size)
	for _, name := range s.names[1:] {
		r := s.regions[name]
		end := r.pos.Add(r.size)
		lo = Vec3{min(lo.X, r.pos.X), min(lo.Y, r.pos.Y), min(lo.Z, r.pos.Z)}
		hi = Vec3{max(hi.X, end.X), max(hi.Y, end.Y), max(hi.Z, end.Z)}
	}
	return hi.Sub(lo), nil
}

// TotalBlocks 所有区域中非空气方块的数量
func (s *Schematic) TotalBlocks() int {
	n := 0
	for _, r := range s.regions {
		n += r.NonAir()
	}
	return n
}

// TotalVolume 所有区域体积之和
func (s *Schematic) TotalVolume() int {
	n := 0
	for _, r := range s.regions {
		n += r.Volume()
	}
	return n
}

func (s *Schematic) layout() bitpack.Layout {
	if s.Layout == (bitpack.Layout{}) {
		return bitpack.LitematicPadded
	}
	return s.Layout
}

// NBT 构建完整的文档
func (s *Schematic) NBT() (*nbt.Compound, error) {
	enclosing, err := s.EnclosingSize()
	if err != nil {
		return nil, err
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	ms := nbt.Long(now().UnixMilli())

	regions := nbt.NewCompound()
	for _, name := range s.names {
		rc, err := s.regions[name].NBT(s.layout())
		if err != nil {
			return nil, fmt.Errorf("region %q: %w", name, err)
		}
		regions.Set(name, rc)
	}

	meta := nbt.NewCompound().
		Set("EnclosingSize", enclosing.nbt()).
		Set("Author", nbt.String(s.Author)).
		Set("Description", nbt.String(s.Description)).
		Set("Name", nbt.String(s.Name)).
		Set("RegionCount", nbt.Int(len(s.names))).
		Set("TimeCreated", ms).
		Set("TimeModified", ms).
		Set("TotalBlocks", nbt.Int(s.TotalBlocks())).
		Set("TotalVolume", nbt.Int(s.TotalVolume()))

	return nbt.NewCompound().
		Set("Metadata", meta).
		Set("Regions", regions).
		Set("MinecraftDataVersion", nbt.Int(MinecraftDataVersion)).
		Set("SubVersion", nbt.Int(SubVersion)).
		Set("Version", nbt.Int(Version)), nil
}

// Encode 未压缩的NBT字节
func (s *Schematic) Encode() ([]byte, error) {
	root, err := s.NBT()
	if err != nil {
		return nil, err
	}
	return nbt.Encode(root)
}

// Write 以 .litematic 文件格式（gzip）写出
func (s *Schematic) Write(w io.Writer) error {
	root, err := s.NBT()
	if err != nil {
		return err
	}
	return nbt.WriteGzip(w, root)
}
