// Package bitpack 把小整数序列按固定位宽打包进 64 位字，低位优先。
package bitpack

import (
	"errors"
	"fmt"
	"math/bits"
)

var (
	ErrUnsupportedArity = errors.New("bitpack: palette size needs an unsupported bit width")
	ErrValueOverflow    = errors.New("bitpack: value does not fit the bit width")
	ErrShortInput       = errors.New("bitpack: not enough words for the requested values")
)

// Mode 值跨越字边界时的处理方式
type Mode int

const (
	// Padded 每个字容纳 floor(64/bits) 个值，剩余高位补零
	Padded Mode = iota
	// Split 连续位流，值可以跨两个字
	Split
)

func (m Mode) String() string {
	switch m {
	case Padded:
		return "padded"
	case Split:
		return "split"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode 解析 padded / split
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "padded":
		return Padded, nil
	case "split":
		return Split, nil
	}
	return 0, fmt.Errorf("unknown packing mode %q", s)
}

// Layout 位宽约束与打包方式
type Layout struct {
	MinBits int
	MaxBits int
	Mode    Mode
}

var (
	// LitematicPadded 当前 Litematica 读取的布局
	LitematicPadded = Layout{MinBits: 4, MaxBits: 32, Mode: Padded}
	// LitematicSplit 旧版 Litematica 的连续位流布局
	LitematicSplit = Layout{MinBits: 2, MaxBits: 32, Mode: Split}
)

// BitsFor 计算容纳 [0, paletteSize) 所需的位宽，结果不小于 MinBits
func (l Layout) BitsFor(paletteSize int) (int, error) {
	if paletteSize < 1 {
		return 0, fmt.Errorf("%w: palette size %d", ErrUnsupportedArity, paletteSize)
	}
	n := bits.Len(uint(paletteSize - 1))
	if n < l.MinBits {
		n = l.MinBits
	}
	if n < 1 {
		n = 1
	}
	max := l.MaxBits
	if max <= 0 || max > 64 {
		max = 64
	}
	if n > max {
		return 0, fmt.Errorf("%w: %d entries need %d bits, max %d", ErrUnsupportedArity, paletteSize, n, max)
	}
	return n, nil
}

// WordCount n 个 width 位的值需要的字数
func WordCount(n, width int, mode Mode) int {
	if n <= 0 || width <= 0 {
		return 0
	}
	if mode == Padded {
		per := 64 / width
		return (n + per - 1) / per
	}
	return (n*width + 63) / 64
}

// Pack 打包 values，任何值超出位宽都会报错
func Pack(values []uint32, width int, mode Mode) ([]int64, error) {
	words := make([]int64, 0, WordCount(len(values), width, mode))
	w, err := NewWriter(width, mode, func(word uint64) error {
		words = append(words, int64(word))
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, v := range values {
		if err := w.Write(v); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return words, nil
}

// Unpack 从 words 中读取 n 个值
func Unpack(words []int64, width, n int, mode Mode) ([]uint32, error) {
	if need := WordCount(n, width, mode); len(words) < need {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrShortInput, len(words), need)
	}
	r, err := NewReader(words, width, mode)
	if err != nil {
		return nil, err
	}
	out := make([]uint32, n)
	for i := range out {
		v, err := r.Read()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
