package nbt

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

// maxDepth 嵌套上限，防止恶意数据耗尽栈
const maxDepth = 512

// ReadGzip 从gzip压缩的数据中读取根复合标签
func ReadGzip(r io.Reader) (string, *Compound, error) {
	gzReader, err := gzip.NewReader(r)
	if err != nil {
		return "", nil, err
	}
	defer gzReader.Close()
	return Read(gzReader)
}

// Read 读取未压缩的根复合标签，返回根名称
func Read(r io.Reader) (string, *Compound, error) {
	br := bufio.NewReader(r)
	tag, err := br.ReadByte()
	if err != nil {
		return "", nil, err
	}
	if TagType(tag) != TagCompound {
		return "", nil, fmt.Errorf("%w: root is %s, want Compound", ErrTagMismatch, TagType(tag))
	}
	name, err := readString(br)
	if err != nil {
		return "", nil, err
	}
	root, err := readCompound(br, 0)
	if err != nil {
		return "", nil, err
	}
	return name, root, nil
}

func readString(r io.Reader) (string, error) {
	var n uint16
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func readLength(r io.Reader) (int, error) {
	var n int32
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative length: %d", n)
	}
	return int(n), nil
}

// arrayChunk 数组按块读取，声明的长度只有在数据真的存在时才会分配
const arrayChunk = 1 << 14

func readArray[T byte | int32 | int64](r io.Reader, n int) ([]T, error) {
	arr := make([]T, 0, min(n, arrayChunk))
	buf := make([]T, min(n, arrayChunk))
	for len(arr) < n {
		k := min(n-len(arr), len(buf))
		if err := binary.Read(r, binary.BigEndian, buf[:k]); err != nil {
			return nil, err
		}
		arr = append(arr, buf[:k]...)
	}
	return arr, nil
}

// readCompound 读取复合标签的条目直到 TagEnd
func readCompound(r io.Reader, depth int) (*Compound, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("nbt: nesting deeper than %d", maxDepth)
	}
	c := NewCompound()
	var tag [1]byte
	for {
		if _, err := io.ReadFull(r, tag[:]); err != nil {
			return nil, err
		}
		if TagType(tag[0]) == TagEnd {
			return c, nil
		}
		name, err := readString(r)
		if err != nil {
			return nil, err
		}
		v, err := readPayload(r, TagType(tag[0]), depth+1)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", name, err)
		}
		c.Set(name, v)
	}
}

// readPayload 读取某个类型的值
func readPayload(r io.Reader, tag TagType, depth int) (Value, error) {
	switch tag {
	case TagByte:
		var v int8
		err := binary.Read(r, binary.BigEndian, &v)
		return Byte(v), err
	case TagShort:
		var v int16
		err := binary.Read(r, binary.BigEndian, &v)
		return Short(v), err
	case TagInt:
		var v int32
		err := binary.Read(r, binary.BigEndian, &v)
		return Int(v), err
	case TagLong:
		var v int64
		err := binary.Read(r, binary.BigEndian, &v)
		return Long(v), err
	case TagFloat:
		var v float32
		err := binary.Read(r, binary.BigEndian, &v)
		return Float(v), err
	case TagDouble:
		var v float64
		err := binary.Read(r, binary.BigEndian, &v)
		return Double(v), err
	case TagString:
		s, err := readString(r)
		return String(s), err
	case TagByteArray:
		n, err := readLength(r)
		if err != nil {
			return nil, err
		}
		arr, err := readArray[byte](r, n)
		return ByteArray(arr), err
	case TagIntArray:
		n, err := readLength(r)
		if err != nil {
			return nil, err
		}
		arr, err := readArray[int32](r, n)
		return IntArray(arr), err
	case TagLongArray:
		n, err := readLength(r)
		if err != nil {
			return nil, err
		}
		arr, err := readArray[int64](r, n)
		return LongArray(arr), err
	case TagList:
		var elem [1]byte
		if _, err := io.ReadFull(r, elem[:]); err != nil {
			return nil, err
		}
		n, err := readLength(r)
		if err != nil {
			return nil, err
		}
		l := &List{Elem: TagType(elem[0]), Items: make([]Value, 0, min(n, 1024))}
		for i := 0; i < n; i++ {
			v, err := readPayload(r, l.Elem, depth+1)
			if err != nil {
				return nil, err
			}
			l.Items = append(l.Items, v)
		}
		return l, nil
	case TagCompound:
		return readCompound(r, depth)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, tag)
	}
}
