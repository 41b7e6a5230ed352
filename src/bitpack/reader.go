package bitpack

import (
	"fmt"
	"io"
)

// Reader 按写入顺序解出值
type Reader struct {
	words []int64
	width uint
	mode  Mode
	next  int
	curr  uint64
	left  uint
}

// NewReader 创建读取器，width 取 1..32
func NewReader(words []int64, width int, mode Mode) (*Reader, error) {
	if width < 1 || width > 32 {
		return nil, fmt.Errorf("%w: width %d", ErrUnsupportedArity, width)
	}
	return &Reader{words: words, width: uint(width), mode: mode}, nil
}

func (r *Reader) load() error {
	if r.next >= len(r.words) {
		r.curr, r.left = 0, 0
		return io.ErrUnexpectedEOF
	}
	r.curr = uint64(r.words[r.next])
	r.left = 64
	r.next++
	return nil
}

// Read 读取下一个值
func (r *Reader) Read() (uint32, error) {
	if r.mode == Padded && r.left < r.width {
		if err := r.load(); err != nil {
			return 0, err
		}
	}
	var val uint64
	var have uint
	for have < r.width {
		if r.left == 0 {
			if err := r.load(); err != nil {
				return 0, err
			}
		}
		need := r.width - have
		if need > r.left {
			need = r.left
		}
		val |= (r.curr & (uint64(1)<<need - 1)) << have
		r.curr >>= need
		r.left -= need
		have += need
	}
	return uint32(val), nil
}
