package nbt

import "fmt"

// TagType 表示NBT标签类型
type TagType byte

const (
	TagEnd       TagType = 0x00
	TagByte      TagType = 0x01
	TagShort     TagType = 0x02
	TagInt       TagType = 0x03
	TagLong      TagType = 0x04
	TagFloat     TagType = 0x05
	TagDouble    TagType = 0x06
	TagByteArray TagType = 0x07
	TagString    TagType = 0x08
	TagList      TagType = 0x09
	TagCompound  TagType = 0x0a
	TagIntArray  TagType = 0x0b
	TagLongArray TagType = 0x0c
)

var tagNames = [...]string{
	"End", "Byte", "Short", "Int", "Long", "Float", "Double",
	"ByteArray", "String", "List", "Compound", "IntArray", "LongArray",
}

func (t TagType) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return fmt.Sprintf("TagType(%d)", byte(t))
}

// Value 有类型的NBT值。实现集合是封闭的
type Value interface {
	Tag() TagType
	isValue()
}

type (
	Byte      int8
	Short     int16
	Int       int32
	Long      int64
	Float     float32
	Double    float64
	String    string
	ByteArray []byte
	IntArray  []int32
	LongArray []int64
)

func (Byte) Tag() TagType      { return TagByte }
func (Short) Tag() TagType     { return TagShort }
func (Int) Tag() TagType       { return TagInt }
func (Long) Tag() TagType      { return TagLong }
func (Float) Tag() TagType     { return TagFloat }
func (Double) Tag() TagType    { return TagDouble }
func (String) Tag() TagType    { return TagString }
func (ByteArray) Tag() TagType { return TagByteArray }
func (IntArray) Tag() TagType  { return TagIntArray }
func (LongArray) Tag() TagType { return TagLongArray }
func (*List) Tag() TagType     { return TagList }
func (*Compound) Tag() TagType { return TagCompound }

func (Byte) isValue()      {}
func (Short) isValue()     {}
func (Int) isValue()       {}
func (Long) isValue()      {}
func (Float) isValue()     {}
func (Double) isValue()    {}
func (String) isValue()    {}
func (ByteArray) isValue() {}
func (IntArray) isValue()  {}
func (LongArray) isValue() {}
func (*List) isValue()     {}
func (*Compound) isValue() {}

// Bool 把布尔值编码为 Byte 0/1
func Bool(b bool) Byte {
	if b {
		return 1
	}
	return 0
}

// List 同类型元素的列表。空列表也必须声明元素类型
type List struct {
	Elem  TagType
	Items []Value
}

// NewList 创建列表，所有元素的类型必须等于 elem
func NewList(elem TagType, items ...Value) (*List, error) {
	l := &List{Elem: elem}
	for _, v := range items {
		if err := l.Append(v); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// EmptyList 创建指定元素类型的空列表
func EmptyList(elem TagType) *List {
	return &List{Elem: elem}
}

// Append 追加元素
func (l *List) Append(v Value) error {
	if isNil(v) {
		return fmt.Errorf("%w: nil item in %s list", ErrUnsupportedType, l.Elem)
	}
	if v.Tag() != l.Elem {
		return fmt.Errorf("%w: %s item in %s list", ErrTagMismatch, tagOf(v), l.Elem)
	}
	l.Items = append(l.Items, v)
	return nil
}

// Len 元素数量
func (l *List) Len() int {
	return len(l.Items)
}

type entry struct {
	name  string
	value Value
}

// Compound 保持插入顺序的命名值集合，名称唯一
type Compound struct {
	entries []entry
	index   map[string]int
}

// NewCompound 创建空复合标签
func NewCompound() *Compound {
	return &Compound{index: make(map[string]int)}
}

// Set 写入或替换名称对应的值，替换时保持原位置
func (c *Compound) Set(name string, v Value) *Compound {
	if c.index == nil {
		c.index = make(map[string]int)
	}
	if i, ok := c.index[name]; ok {
		c.entries[i].value = v
		return c
	}
	c.index[name] = len(c.entries)
	c.entries = append(c.entries, entry{name: name, value: v})
	return c
}

// Get 按名称读取
func (c *Compound) Get(name string) (Value, bool) {
	i, ok := c.index[name]
	if !ok {
		return nil, false
	}
	return c.entries[i].value, true
}

// Len 条目数量
func (c *Compound) Len() int {
	return len(c.entries)
}

// Names 按插入顺序返回名称
func (c *Compound) Names() []string {
	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = e.name
	}
	return names
}

// Compound 读取子复合标签
func (c *Compound) Compound(name string) (*Compound, error) {
	v, ok := c.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: missing %q", ErrTagMismatch, name)
	}
	sub, ok := v.(*Compound)
	if !ok {
		return nil, fmt.Errorf("%w: %q is %s, want Compound", ErrTagMismatch, name, v.Tag())
	}
	return sub, nil
}

// Int 读取 Int 字段
func (c *Compound) Int(name string) (int32, error) {
	v, ok := c.Get(name)
	if !ok {
		return 0, fmt.Errorf("%w: missing %q", ErrTagMismatch, name)
	}
	i, ok := v.(Int)
	if !ok {
		return 0, fmt.Errorf("%w: %q is %s, want Int", ErrTagMismatch, name, v.Tag())
	}
	return int32(i), nil
}

func tagOf(v Value) TagType {
	if v == nil {
		return TagEnd
	}
	return v.Tag()
}
