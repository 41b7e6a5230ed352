package litematic

import (
	"sort"
	"strings"

	"mapart/src/nbt"
)

// Block 方块名称和可选的状态属性。
// Properties 为 nil 表示没有属性，空 map 表示有属性但为空，两者不相等
type Block struct {
	Name       string
	Properties map[string]string
}

// Air 区域的默认方块，总在调色板索引 0
var Air = Block{Name: "minecraft:air"}

// NewBlock 以 key, value 成对的参数创建方块
func NewBlock(name string, kv ...string) Block {
	b := Block{Name: name}
	if len(kv) > 0 {
		b.Properties = make(map[string]string, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			b.Properties[kv[i]] = kv[i+1]
		}
	}
	return b
}

// Equal 名称相同且属性在两个方向上完全一致
func (b Block) Equal(o Block) bool {
	if b.Name != o.Name {
		return false
	}
	if (b.Properties == nil) != (o.Properties == nil) {
		return false
	}
	if len(b.Properties) != len(o.Properties) {
		return false
	}
	for k, v := range b.Properties {
		if ov, ok := o.Properties[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// String 形如 minecraft:water[level=0]
func (b Block) String() string {
	if b.Properties == nil {
		return b.Name
	}
	keys := b.propertyKeys()
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + b.Properties[k]
	}
	return b.Name + "[" + strings.Join(parts, ",") + "]"
}

func (b Block) propertyKeys() []string {
	keys := make([]string, 0, len(b.Properties))
	for k := range b.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// NBT 调色板条目，属性按键名排序
func (b Block) NBT() *nbt.Compound {
	c := nbt.NewCompound().Set("Name", nbt.String(b.Name))
	if b.Properties != nil {
		props := nbt.NewCompound()
		for _, k := range b.propertyKeys() {
			props.Set(k, nbt.String(b.Properties[k]))
		}
		c.Set("Properties", props)
	}
	return c
}
