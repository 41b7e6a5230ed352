package mapart

import (
	"bytes"
	"errors"
	"testing"

	mcnbt "github.com/Tnze/go-mc/nbt"
	"github.com/stretchr/testify/require"

	"mapart/src/dither"
	"mapart/src/litematic"
	"mapart/src/nbt"
	"mapart/src/pixel"
)

func TestShadeMultipliers(t *testing.T) {
	grass := BaseColors[1]
	tests := []struct {
		tone    Tone
		r, g, b uint8
	}{
		{Dark, 89, 125, 39},
		{Normal, 109, 153, 48},
		{Light, 127, 178, 56},
		{Lowest, 67, 94, 29},
	}
	for _, tt := range tests {
		got := grass.Shade(tt.tone).NRGBA()
		if got.R != tt.r || got.G != tt.g || got.B != tt.b || got.A != 255 {
			t.Fatalf("%s shade = %v, want %d,%d,%d", tt.tone, got, tt.r, tt.g, tt.b)
		}
	}
	if c := BaseColors[0].Shade(Light); c.A != 0 {
		t.Fatalf("NONE is not transparent: %v", c)
	}
}

func TestBaseColorIDs(t *testing.T) {
	for i, bc := range BaseColors {
		if bc.ID != i {
			t.Fatalf("BaseColors[%d].ID = %d", i, bc.ID)
		}
	}
	if ColorIndex(len(BaseColors)-1, Lowest) != PaletteSize-1 {
		t.Fatalf("palette does not end at %d", PaletteSize-1)
	}
	red, ok := BaseByName("COLOR_RED")
	require.True(t, ok)
	require.Equal(t, "minecraft:red_wool", red.Block.Name)
}

func TestPaletteTones(t *testing.T) {
	p := NewPalette(nil)
	require.Equal(t, PaletteSize, p.Len())
	for i := 0; i < PaletteSize; i++ {
		id, tone := SplitIndex(i)
		want := tone == Lowest || (id == 0 && i != 0)
		require.Equal(t, want, p.Excluded(i), "index %d", i)
	}

	flat := NewPalette([]Tone{Normal})
	c := BaseColors[8].Shade(Light)
	idx, err := flat.Quantize(c)
	require.NoError(t, err)
	require.Equal(t, ColorIndex(8, Normal), idx)

	require.NoError(t, ExcludeBase(flat, 8))
	idx, err = flat.Quantize(c)
	require.NoError(t, err)
	require.NotEqual(t, 8, idx/4)
}

func TestParseTones(t *testing.T) {
	tones, err := ParseTones("")
	require.NoError(t, err)
	require.Equal(t, DefaultTones, tones)

	tones, err = ParseTones("light, flat")
	require.NoError(t, err)
	require.Equal(t, []Tone{Light, Normal}, tones)

	_, err = ParseTones("bright")
	require.Error(t, err)
}

func TestEncodeTilesGrid(t *testing.T) {
	img, err := pixel.NewFloatImage(200, 130)
	require.NoError(t, err)
	for y := 0; y < 130; y++ {
		for x := 0; x < 200; x++ {
			require.NoError(t, img.Set(x, y, BaseColors[11].Shade(Normal)))
		}
	}
	var calls, lastTotal int
	tiles, err := EncodeTiles(img, Options{
		Ditherer: dither.Diffusion{Kernel: dither.FloydSteinberg},
		Workers:  3,
		Progress: func(done, total int) {
			calls++
			lastTotal = total
		},
	})
	require.NoError(t, err)
	require.Len(t, tiles, 4)
	require.Equal(t, 4, calls)
	require.Equal(t, 4, lastTotal)

	stone := byte(ColorIndex(11, Normal))
	for i, tile := range tiles {
		require.Equal(t, i/2, tile.Col)
		require.Equal(t, i%2, tile.Row)
		colors, err := tile.Colors()
		require.NoError(t, err)
		require.Len(t, colors, TileBytes)
		for j, c := range colors {
			x := tile.Col*TileSize + j%TileSize
			y := tile.Row*TileSize + j/TileSize
			if x < 200 && y < 130 {
				require.Equal(t, stone, c, "pixel %d,%d", x, y)
			} else {
				require.Equal(t, byte(0), c, "padding %d,%d", x, y)
			}
		}
	}
}

func TestEncodeTilesAlphaDistance(t *testing.T) {
	img, _ := pixel.NewFloatImage(2, 1)
	require.NoError(t, img.Set(0, 0, pixel.RGBA(1, 1, 1, 0.1)))
	require.NoError(t, img.Set(1, 0, pixel.RGBA(1, 1, 1, 1)))
	tiles, err := EncodeTiles(img, Options{Workers: 1})
	require.NoError(t, err)
	colors, _ := tiles[0].Colors()
	require.Equal(t, byte(0), colors[0])
	require.Equal(t, byte(ColorIndex(8, Light)), colors[1])
}

func TestMapDocument(t *testing.T) {
	colors := make([]byte, TileBytes)
	colors[5] = 127
	doc, err := MapDocument(colors, DefaultMapMeta())
	require.NoError(t, err)
	data, err := nbt.Encode(doc)
	require.NoError(t, err)

	var decoded struct {
		DataVersion int32 `nbt:"DataVersion"`
		Data        struct {
			Locked    int8   `nbt:"locked"`
			Scale     int8   `nbt:"scale"`
			Dimension string `nbt:"dimension"`
			Colors    []byte `nbt:"colors"`
		} `nbt:"data"`
	}
	_, err = mcnbt.NewDecoder(bytes.NewReader(data)).Decode(&decoded)
	require.NoError(t, err)
	require.Equal(t, int32(3578), decoded.DataVersion)
	require.Equal(t, int8(1), decoded.Data.Locked)
	require.Equal(t, "minecraft:overworld", decoded.Data.Dimension)
	require.Len(t, decoded.Data.Colors, TileBytes)
	require.Equal(t, byte(127), decoded.Data.Colors[5])

	sub, err := doc.Compound("data")
	require.NoError(t, err)
	require.Equal(t, []string{
		"unlimitedTracking", "frames", "banners", "trackingPosition", "zCenter",
		"locked", "xCenter", "dimension", "scale", "colors",
	}, sub.Names())

	colors[0] = 128
	_, err = MapDocument(colors, DefaultMapMeta())
	require.True(t, errors.Is(err, ErrColorOutOfRange))
	_, err = MapDocument(colors[:10], DefaultMapMeta())
	require.ErrorIs(t, err, pixel.ErrInvalidDimensions)
}

func column(t *testing.T, indices ...int) *pixel.PalettedImage {
	t.Helper()
	img, err := pixel.NewPalettedImage(NewPalette(nil), 1, len(indices))
	require.NoError(t, err)
	for z, idx := range indices {
		require.NoError(t, img.SetIndex(0, z, idx))
	}
	return img
}

func TestBuildRegionStaircase(t *testing.T) {
	img := column(t,
		ColorIndex(11, Light),
		ColorIndex(11, Light),
		ColorIndex(11, Dark),
		ColorIndex(11, Normal),
	)
	r, err := BuildRegion(img, BuildOptions{})
	require.NoError(t, err)
	require.Equal(t, litematic.Vec3{X: 1, Y: 3, Z: 5}, r.Size())

	want := []int{0, 1, 2, 1, 1}
	for z, y := range want {
		b, err := r.Get(litematic.Vec3{X: 0, Y: y, Z: z})
		require.NoError(t, err)
		if z == 0 {
			require.True(t, b.Equal(DefaultFiller))
		} else {
			require.True(t, b.Equal(BaseColors[11].Block), "z=%d", z)
		}
	}
	require.Equal(t, 5, r.NonAir())
}

func TestBuildRegionFlatAndTransparent(t *testing.T) {
	img := column(t, ColorIndex(5, Normal), 0, ColorIndex(5, Normal))
	r, err := BuildRegion(img, BuildOptions{Origin: litematic.Vec3{X: 10, Y: 64, Z: -3}})
	require.NoError(t, err)
	require.Equal(t, litematic.Vec3{X: 1, Y: 1, Z: 4}, r.Size())
	require.Equal(t, litematic.Vec3{X: 10, Y: 64, Z: -3}, r.Position())
	b, _ := r.Get(litematic.Vec3{X: 10, Y: 64, Z: -1})
	require.True(t, b.Equal(litematic.Air))
	require.Equal(t, 3, r.NonAir())
}

func TestBuildRegionSupportAndErrors(t *testing.T) {
	img := column(t, ColorIndex(2, Dark))
	r, err := BuildRegion(img, BuildOptions{Support: true, Filler: litematic.NewBlock("minecraft:dirt")})
	require.NoError(t, err)
	// 参考方块在 y=2，像素在 y=1，各自下方有支撑
	require.Equal(t, litematic.Vec3{X: 1, Y: 3, Z: 2}, r.Size())
	b, _ := r.Get(litematic.Vec3{X: 0, Y: 0, Z: 1})
	require.Equal(t, "minecraft:dirt", b.Name)

	_, err = BuildRegion(column(t, ColorIndex(2, Lowest)), BuildOptions{})
	require.ErrorIs(t, err, ErrUnobtainableTone)
}
