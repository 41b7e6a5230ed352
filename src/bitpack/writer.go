package bitpack

import "fmt"

// Writer 流式打包，写满一个字就交给 emit
type Writer struct {
	width   uint
	mode    Mode
	limit   uint64
	current uint64
	filled  uint
	words   int
	emit    func(uint64) error
}

// NewWriter 创建写入器，width 取 1..32
func NewWriter(width int, mode Mode, emit func(uint64) error) (*Writer, error) {
	if width < 1 || width > 32 {
		return nil, fmt.Errorf("%w: width %d", ErrUnsupportedArity, width)
	}
	return &Writer{
		width: uint(width),
		mode:  mode,
		limit: uint64(1) << uint(width),
		emit:  emit,
	}, nil
}

// Write 追加一个值
func (w *Writer) Write(v uint32) error {
	value := uint64(v)
	if value >= w.limit {
		return fmt.Errorf("%w: %d in %d bits", ErrValueOverflow, v, w.width)
	}
	if w.mode == Padded && w.filled+w.width > 64 {
		if err := w.flush(); err != nil {
			return err
		}
	}
	remaining := w.width
	for remaining > 0 {
		available := 64 - w.filled
		if remaining <= available {
			w.current |= value << w.filled
			w.filled += remaining
			remaining = 0
		} else {
			w.current |= (value & (uint64(1)<<available - 1)) << w.filled
			value >>= available
			remaining -= available
			w.filled = 64
		}
		if w.filled == 64 {
			if err := w.flush(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *Writer) flush() error {
	if w.filled == 0 {
		return nil
	}
	if err := w.emit(w.current); err != nil {
		return err
	}
	w.words++
	w.current = 0
	w.filled = 0
	return nil
}

// Close 写出未满的最后一个字
func (w *Writer) Close() error {
	return w.flush()
}

// Words 已写出的字数
func (w *Writer) Words() int {
	return w.words
}
