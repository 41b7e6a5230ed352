package nbt

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/klauspost/compress/gzip"
)

var (
	ErrStringTooLong     = errors.New("nbt: string too long")
	ErrArrayTooLong      = errors.New("nbt: array or list too long")
	ErrAmbiguousEncoding = errors.New("nbt: cannot infer tag for value")
	ErrUnsupportedType   = errors.New("nbt: unsupported type")
	ErrTagMismatch       = errors.New("nbt: unexpected tag")
)

// writeString 写入 u16 长度前缀的 UTF-8 字符串
func writeString(w io.Writer, s string) error {
	if len(s) > math.MaxUint16 {
		return fmt.Errorf("%w: %d bytes", ErrStringTooLong, len(s))
	}
	if err := binary.Write(w, binary.BigEndian, uint16(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func writeLength(w io.Writer, n int) error {
	if n > math.MaxInt32 {
		return fmt.Errorf("%w: %d", ErrArrayTooLong, n)
	}
	return binary.Write(w, binary.BigEndian, int32(n))
}

// writePayload 只写入值本身，不含标签类型和名称
func writePayload(w io.Writer, v Value) error {
	switch v := v.(type) {
	case Byte:
		return binary.Write(w, binary.BigEndian, int8(v))
	case Short:
		return binary.Write(w, binary.BigEndian, int16(v))
	case Int:
		return binary.Write(w, binary.BigEndian, int32(v))
	case Long:
		return binary.Write(w, binary.BigEndian, int64(v))
	case Float:
		return binary.Write(w, binary.BigEndian, float32(v))
	case Double:
		return binary.Write(w, binary.BigEndian, float64(v))
	case String:
		return writeString(w, string(v))
	case ByteArray:
		if err := writeLength(w, len(v)); err != nil {
			return err
		}
		_, err := w.Write(v)
		return err
	case IntArray:
		if err := writeLength(w, len(v)); err != nil {
			return err
		}
		return binary.Write(w, binary.BigEndian, []int32(v))
	case LongArray:
		if err := writeLength(w, len(v)); err != nil {
			return err
		}
		return binary.Write(w, binary.BigEndian, []int64(v))
	case *List:
		if v == nil {
			return fmt.Errorf("%w: nil *List", ErrUnsupportedType)
		}
		if _, err := w.Write([]byte{byte(v.Elem)}); err != nil {
			return err
		}
		if err := writeLength(w, len(v.Items)); err != nil {
			return err
		}
		for _, item := range v.Items {
			if tagOf(item) != v.Elem {
				return fmt.Errorf("%w: %s item in %s list", ErrTagMismatch, tagOf(item), v.Elem)
			}
			if err := writePayload(w, item); err != nil {
				return err
			}
		}
		return nil
	case *Compound:
		if v == nil {
			return fmt.Errorf("%w: nil *Compound", ErrUnsupportedType)
		}
		for _, e := range v.entries {
			if err := writeNamed(w, e.name, e.value); err != nil {
				return err
			}
		}
		_, err := w.Write([]byte{byte(TagEnd)})
		return err
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}
}

// isNil 也识别接口中包着的空指针
func isNil(v Value) bool {
	switch v := v.(type) {
	case nil:
		return true
	case *List:
		return v == nil
	case *Compound:
		return v == nil
	}
	return false
}

// writeNamed 写入标签类型、名称和值
func writeNamed(w io.Writer, name string, v Value) error {
	if isNil(v) {
		return fmt.Errorf("%w: nil value for %q", ErrUnsupportedType, name)
	}
	if _, err := w.Write([]byte{byte(v.Tag())}); err != nil {
		return err
	}
	if err := writeString(w, name); err != nil {
		return err
	}
	return writePayload(w, v)
}

// Write 写入带名称的根复合标签
func Write(w io.Writer, name string, root *Compound) error {
	return writeNamed(w, name, root)
}

// Encode 以空名称编码根复合标签，不压缩
func Encode(root *Compound) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, "", root); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGzip 编码根复合标签并以 gzip 写出
func WriteGzip(w io.Writer, root *Compound) error {
	data, err := Encode(root)
	if err != nil {
		return err
	}
	gz := gzip.NewWriter(w)
	if _, err := gz.Write(data); err != nil {
		gz.Close()
		return err
	}
	return gz.Close()
}

// FromAny 把 Go 值转换为NBT值。
// bool 变为 Byte，[]interface{} 按第一个元素推断列表类型，map 的键按字典序排列
func FromAny(value interface{}) (Value, error) {
	switch v := value.(type) {
	case Value:
		if isNil(v) {
			return nil, fmt.Errorf("%w: nil %T", ErrUnsupportedType, v)
		}
		return v, nil
	case bool:
		return Bool(v), nil
	case int8:
		return Byte(v), nil
	case uint8:
		return Byte(int8(v)), nil
	case int16:
		return Short(v), nil
	case int32:
		return Int(v), nil
	case int:
		if v < math.MinInt32 || v > math.MaxInt32 {
			return Long(v), nil
		}
		return Int(v), nil
	case int64:
		return Long(v), nil
	case float32:
		return Float(v), nil
	case float64:
		return Double(v), nil
	case string:
		return String(v), nil
	case []byte:
		return ByteArray(v), nil
	case []int8:
		arr := make(ByteArray, len(v))
		for i, b := range v {
			arr[i] = byte(b)
		}
		return arr, nil
	case []int32:
		return IntArray(v), nil
	case []int64:
		return LongArray(v), nil
	case []interface{}:
		if len(v) == 0 {
			return nil, fmt.Errorf("%w: empty list has no element tag", ErrAmbiguousEncoding)
		}
		items := make([]Value, len(v))
		for i, item := range v {
			nv, err := FromAny(item)
			if err != nil {
				return nil, err
			}
			items[i] = nv
		}
		l, err := NewList(items[0].Tag(), items...)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrAmbiguousEncoding, err)
		}
		return l, nil
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		c := NewCompound()
		for _, k := range keys {
			nv, err := FromAny(v[k])
			if err != nil {
				return nil, fmt.Errorf("%q: %w", k, err)
			}
			c.Set(k, nv)
		}
		return c, nil
	case map[string]string:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		c := NewCompound()
		for _, k := range keys {
			c.Set(k, String(v[k]))
		}
		return c, nil
	case nil:
		return nil, fmt.Errorf("%w: nil", ErrAmbiguousEncoding)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, value)
	}
}
