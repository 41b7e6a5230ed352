package nbt

import (
	"bytes"
	"errors"
	"runtime"
	"strings"
	"testing"

	mcnbt "github.com/Tnze/go-mc/nbt"
	"github.com/google/go-cmp/cmp"
)

func TestEncodeRootFraming(t *testing.T) {
	data, err := Encode(NewCompound())
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0x0a, 0x00, 0x00, 0x00}
	if !bytes.Equal(data, want) {
		t.Fatalf("got % x, want % x", data, want)
	}
}

func TestEncodeScalars(t *testing.T) {
	root := NewCompound().
		Set("b", Byte(-1)).
		Set("i", Int(258)).
		Set("s", String("hi"))
	data, err := Encode(root)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{
		0x0a, 0x00, 0x00,
		0x01, 0x00, 0x01, 'b', 0xff,
		0x03, 0x00, 0x01, 'i', 0x00, 0x00, 0x01, 0x02,
		0x08, 0x00, 0x01, 's', 0x00, 0x02, 'h', 'i',
		0x00,
	}
	if diff := cmp.Diff(want, data); diff != "" {
		t.Fatalf("encoding mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeEmptyListKeepsElementTag(t *testing.T) {
	root := NewCompound().Set("l", EmptyList(TagCompound))
	data, err := Encode(root)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{
		0x0a, 0x00, 0x00,
		0x09, 0x00, 0x01, 'l', 0x0a, 0x00, 0x00, 0x00, 0x00,
		0x00,
	}
	if !bytes.Equal(data, want) {
		t.Fatalf("got % x, want % x", data, want)
	}
}

func TestEncodeLongArray(t *testing.T) {
	root := NewCompound().Set("a", LongArray{1, -1})
	data, err := Encode(root)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{
		0x0a, 0x00, 0x00,
		0x0c, 0x00, 0x01, 'a', 0x00, 0x00, 0x00, 0x02,
		0, 0, 0, 0, 0, 0, 0, 1,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0x00,
	}
	if !bytes.Equal(data, want) {
		t.Fatalf("got % x, want % x", data, want)
	}
}

func TestStringTooLong(t *testing.T) {
	root := NewCompound().Set("s", String(strings.Repeat("x", 70000)))
	if _, err := Encode(root); !errors.Is(err, ErrStringTooLong) {
		t.Fatalf("err = %v, want ErrStringTooLong", err)
	}
}

func TestListRejectsMixedTags(t *testing.T) {
	if _, err := NewList(TagInt, Int(1), Byte(2)); !errors.Is(err, ErrTagMismatch) {
		t.Fatalf("err = %v", err)
	}
	l := &List{Elem: TagInt, Items: []Value{Int(1), String("x")}}
	if _, err := Encode(NewCompound().Set("l", l)); !errors.Is(err, ErrTagMismatch) {
		t.Fatalf("encode mixed list err = %v", err)
	}
}

func TestCompoundSetReplacesInPlace(t *testing.T) {
	c := NewCompound().Set("a", Int(1)).Set("b", Int(2)).Set("a", Int(3))
	if diff := cmp.Diff([]string{"a", "b"}, c.Names()); diff != "" {
		t.Fatalf("names (-want +got):\n%s", diff)
	}
	if v, _ := c.Int("a"); v != 3 {
		t.Fatalf("a = %d", v)
	}
	if _, err := c.Int("missing"); !errors.Is(err, ErrTagMismatch) {
		t.Fatalf("missing err = %v", err)
	}
}

func TestFromAny(t *testing.T) {
	v, err := FromAny(map[string]interface{}{
		"z":     true,
		"a":     int32(5),
		"list":  []interface{}{"x", "y"},
		"bytes": []byte{1, 2},
	})
	if err != nil {
		t.Fatal(err)
	}
	c := v.(*Compound)
	if diff := cmp.Diff([]string{"a", "bytes", "list", "z"}, c.Names()); diff != "" {
		t.Fatalf("keys not sorted (-want +got):\n%s", diff)
	}
	if z, _ := c.Get("z"); z != Byte(1) {
		t.Fatalf("bool encoded as %#v", z)
	}
	if l, _ := c.Get("list"); l.(*List).Elem != TagString {
		t.Fatalf("list elem = %s", l.(*List).Elem)
	}

	ambiguous := []interface{}{
		[]interface{}{},
		[]interface{}{int32(1), "x"},
		nil,
	}
	for _, a := range ambiguous {
		if _, err := FromAny(a); !errors.Is(err, ErrAmbiguousEncoding) {
			t.Fatalf("FromAny(%#v) err = %v", a, err)
		}
	}
	if _, err := FromAny(struct{}{}); !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("struct err = %v", err)
	}

	b, err := FromAny([]int8{1, -2})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(ByteArray{1, 0xfe}, b); diff != "" {
		t.Fatalf("[]int8 (-want +got):\n%s", diff)
	}
}

func TestNilPointersAreErrors(t *testing.T) {
	if _, err := Encode(NewCompound().Set("x", (*Compound)(nil))); !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("nil compound err = %v", err)
	}
	if _, err := Encode(NewCompound().Set("x", (*List)(nil))); !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("nil list err = %v", err)
	}
	if _, err := Encode(nil); !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("nil root err = %v", err)
	}
	l := EmptyList(TagCompound)
	if err := l.Append((*Compound)(nil)); !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("Append err = %v", err)
	}
	l.Items = append(l.Items, (*Compound)(nil))
	if _, err := Encode(NewCompound().Set("l", l)); !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("nil list item err = %v", err)
	}
	if _, err := FromAny((*Compound)(nil)); !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("FromAny err = %v", err)
	}
}

func TestReadHugeArrayLengthFailsCheaply(t *testing.T) {
	tags := []TagType{TagByteArray, TagIntArray, TagLongArray}
	for _, tag := range tags {
		// 声明 0x7fffffff 个元素，但只有两个字节的数据
		data := []byte{0x0a, 0x00, 0x00, byte(tag), 0x00, 0x01, 'a', 0x7f, 0xff, 0xff, 0xff, 0x01, 0x02}
		var before, after runtime.MemStats
		runtime.ReadMemStats(&before)
		if _, _, err := Read(bytes.NewReader(data)); err == nil {
			t.Fatalf("%s: truncated array accepted", tag)
		}
		runtime.ReadMemStats(&after)
		if n := after.TotalAlloc - before.TotalAlloc; n > 4<<20 {
			t.Fatalf("%s: allocated %d bytes", tag, n)
		}
	}
}

func TestReadLargeArrayAcrossChunks(t *testing.T) {
	longs := make(LongArray, arrayChunk*2+3)
	for i := range longs {
		longs[i] = int64(i) * -7
	}
	data, err := Encode(NewCompound().Set("L", longs))
	if err != nil {
		t.Fatal(err)
	}
	_, root, err := Read(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	got, _ := root.Get("L")
	if diff := cmp.Diff(longs, got); diff != "" {
		t.Fatalf("long array (-want +got):\n%s", diff)
	}
}

func sampleDocument() *Compound {
	inner := NewCompound().Set("Name", String("minecraft:stone"))
	blocks, _ := NewList(TagCompound, inner)
	return NewCompound().
		Set("Version", Int(6)).
		Set("Time", Long(1700000000000)).
		Set("Scale", Byte(0)).
		Set("Ratio", Double(0.5)).
		Set("Colors", ByteArray{0, 4, 127}).
		Set("States", LongArray{0x1111, -2}).
		Set("Ids", IntArray{7, 8}).
		Set("Palette", blocks).
		Set("Empty", EmptyList(TagCompound))
}

func TestReadRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteGzip(&buf, sampleDocument()); err != nil {
		t.Fatal(err)
	}
	name, root, err := ReadGzip(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if name != "" {
		t.Fatalf("root name = %q", name)
	}
	want, _ := Encode(sampleDocument())
	got, err := Encode(root)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(want, got) {
		t.Fatalf("re-encoded document differs")
	}
}

func TestReadRejectsNonCompoundRoot(t *testing.T) {
	_, _, err := Read(bytes.NewReader([]byte{0x03, 0x00, 0x00, 0, 0, 0, 1}))
	if !errors.Is(err, ErrTagMismatch) {
		t.Fatalf("err = %v", err)
	}
}

// 与 go-mc 的解码器交叉验证
func TestDecodesWithGoMC(t *testing.T) {
	data, err := Encode(sampleDocument())
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Version int32   `nbt:"Version"`
		Time    int64   `nbt:"Time"`
		Scale   int8    `nbt:"Scale"`
		Ratio   float64 `nbt:"Ratio"`
		Colors  []byte  `nbt:"Colors"`
		States  []int64 `nbt:"States"`
		Ids     []int32 `nbt:"Ids"`
		Palette []struct {
			Name string `nbt:"Name"`
		} `nbt:"Palette"`
	}
	if _, err := mcnbt.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
		t.Fatalf("go-mc decode: %v", err)
	}
	if doc.Version != 6 || doc.Time != 1700000000000 || doc.Ratio != 0.5 {
		t.Fatalf("scalars = %+v", doc)
	}
	if diff := cmp.Diff([]int64{0x1111, -2}, doc.States); diff != "" {
		t.Fatalf("States (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]byte{0, 4, 127}, doc.Colors); diff != "" {
		t.Fatalf("Colors (-want +got):\n%s", diff)
	}
	if len(doc.Palette) != 1 || doc.Palette[0].Name != "minecraft:stone" {
		t.Fatalf("Palette = %+v", doc.Palette)
	}
}
