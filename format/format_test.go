package format

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"

	"mapart/config"
	"mapart/src/bitpack"
	"mapart/src/litematic"
	"mapart/src/mapart"
)

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 90, A: 255})
		}
	}
	img.SetNRGBA(0, 0, color.NRGBA{})
	path := filepath.Join(t.TempDir(), "art.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func quietSettings(t *testing.T) Settings {
	t.Helper()
	s, err := SettingsFromConfig(config.Default())
	require.NoError(t, err)
	s.Quiet = true
	s.Workers = 2
	return s
}

func TestManagerFormats(t *testing.T) {
	m := NewConverterManager()
	require.Equal(t, []string{"litematic", "map", "preview"}, m.GetAvailableFormats())
	c, err := m.GetConverter("map")
	require.NoError(t, err)
	require.Equal(t, ".dat", c.GetExtension())
	_, err = m.GetConverter("schem")
	require.Error(t, err)
}

func TestSettingsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Schematic.Packing = "split"
	cfg.Art.ExcludeColors = []string{"water"}
	s, err := SettingsFromConfig(cfg)
	require.NoError(t, err)
	require.Equal(t, bitpack.LitematicSplit, s.Layout)
	require.True(t, s.Palette.Excluded(mapart.ColorIndex(12, mapart.Normal)))

	cfg.Art.Dither = "nope"
	_, err = SettingsFromConfig(cfg)
	require.Error(t, err)

	cfg = config.Default()
	cfg.Art.ExcludeColors = []string{"PURPLEISH"}
	_, err = SettingsFromConfig(cfg)
	require.Error(t, err)
}

func TestLoadImageResize(t *testing.T) {
	path := writePNG(t, 40, 20)
	img, err := LoadImage(path, 10, 0)
	require.NoError(t, err)
	require.Equal(t, 10, img.Width())
	require.Equal(t, 5, img.Height())

	_, err = LoadImage(filepath.Join(t.TempDir(), "missing.png"), 0, 0)
	require.Error(t, err)
}

func TestLitematicConvertVerifies(t *testing.T) {
	in := writePNG(t, 130, 20)
	out := filepath.Join(t.TempDir(), "art.litematic")

	c := NewLitematicConverter()
	var calls int
	c.SetProgressCallback(func(current, total int, message string) { calls++ })
	require.NoError(t, c.Convert(in, out, 0, 0, quietSettings(t)))
	require.Greater(t, calls, 0)

	ok, msg := VerifyLitematicFile(out)
	require.True(t, ok, msg)
}

func TestMapConvertWritesTiles(t *testing.T) {
	in := writePNG(t, 200, 130)
	out := filepath.Join(t.TempDir(), "art.dat")
	require.NoError(t, NewMapConverter().Convert(in, out, 0, 0, quietSettings(t)))

	for col := 0; col < 2; col++ {
		for row := 0; row < 2; row++ {
			path := MapFilePath(out, col, row)
			ok, msg := VerifyMapFile(path)
			require.True(t, ok, "%s: %s", path, msg)
		}
	}
	_, err := os.Stat(MapFilePath(out, 2, 0))
	require.True(t, os.IsNotExist(err))
}

func TestPreviewConvert(t *testing.T) {
	in := writePNG(t, 50, 30)
	out := filepath.Join(t.TempDir(), "preview.png")
	require.NoError(t, NewPreviewConverter().Convert(in, out, 0, 0, quietSettings(t)))

	img, err := imaging.Open(out)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 50, 30), img.Bounds())
}

func TestVerifyRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.litematic")
	require.NoError(t, os.WriteFile(path, []byte("not gzip"), 0644))
	ok, _ := VerifyLitematicFile(path)
	require.False(t, ok)
	ok, _ = VerifyMapFile(path)
	require.False(t, ok)
}

// writeSchematic 写出 13 个方块、17 个调色板条目的区域：5 位宽时两种布局都需要 2 个字
func writeSchematic(t *testing.T, layout bitpack.Layout) string {
	t.Helper()
	region, err := litematic.NewRegion(litematic.Vec3{}, litematic.Vec3{X: 13, Y: 1, Z: 1})
	require.NoError(t, err)
	for i := 0; i < 16; i++ {
		b := litematic.NewBlock("minecraft:wool", "color", string(rune('a'+i)))
		require.NoError(t, region.Set(litematic.Vec3{X: i % 13}, b))
	}
	require.Len(t, region.Palette(), 17)

	schem := litematic.New("split", "", "")
	schem.Layout = layout
	require.NoError(t, schem.AddRegion("main", region))
	path := filepath.Join(t.TempDir(), layout.Mode.String()+".litematic")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, schem.Write(f))
	require.NoError(t, f.Close())
	return path
}

func TestVerifyBothLayoutsWithEqualWordCount(t *testing.T) {
	width, err := bitpack.LitematicSplit.BitsFor(17)
	require.NoError(t, err)
	require.Equal(t, bitpack.WordCount(13, width, bitpack.Padded), bitpack.WordCount(13, width, bitpack.Split))

	for _, layout := range []bitpack.Layout{bitpack.LitematicPadded, bitpack.LitematicSplit} {
		ok, msg := VerifyLitematicFile(writeSchematic(t, layout))
		require.True(t, ok, "%s: %s", layout.Mode, msg)
		require.Contains(t, msg, layout.Mode.String())
	}
}

func TestLitematicConvertSplitVerifies(t *testing.T) {
	in := writePNG(t, 60, 40)
	out := filepath.Join(t.TempDir(), "split.litematic")
	s := quietSettings(t)
	s.Layout = bitpack.LitematicSplit
	require.NoError(t, NewLitematicConverter().Convert(in, out, 0, 0, s))

	ok, msg := VerifyLitematicFile(out)
	require.True(t, ok, msg)
}

func TestFailedConvertLeavesNoFile(t *testing.T) {
	in := writePNG(t, 20, 20)
	dir := t.TempDir()

	s := quietSettings(t)
	s.Author = strings.Repeat("a", 70000)
	out := filepath.Join(dir, "art.litematic")
	require.Error(t, NewLitematicConverter().Convert(in, out, 0, 0, s))

	s = quietSettings(t)
	s.Map.Dimension = strings.Repeat("a", 70000)
	require.Error(t, NewMapConverter().Convert(in, filepath.Join(dir, "art.dat"), 0, 0, s))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}
