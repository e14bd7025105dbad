package pnm

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rgbAt(img image.Image, x, y int) [3]uint8 {
	c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
	return [3]uint8{c.R, c.G, c.B}
}

func TestDecode_Formats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  [][3]uint8 // row-major, 2x1 image
	}{
		{"plain pbm", "P1\n# comment\n2 1\n0 1\n", [][3]uint8{{255, 255, 255}, {0, 0, 0}}},
		{"plain pbm packed", "P1\n2 1\n10", [][3]uint8{{0, 0, 0}, {255, 255, 255}}},
		{"plain pgm", "P2\n2 1\n15\n15 0\n", [][3]uint8{{255, 255, 255}, {0, 0, 0}}},
		{"plain ppm", "P3\n2 1\n255\n255 0 0  0 128 255\n", [][3]uint8{{255, 0, 0}, {0, 128, 255}}},
		{"raw pbm", "P4\n2 1\n\x40", [][3]uint8{{255, 255, 255}, {0, 0, 0}}},
		{"raw pgm", "P5\n2 1\n255\n\x10\x20", [][3]uint8{{16, 16, 16}, {32, 32, 32}}},
		{"raw pgm 16 bit", "P5\n2 1\n65535\n\xff\xff\x00\x00", [][3]uint8{{255, 255, 255}, {0, 0, 0}}},
		{"raw ppm", "P6\n2 1\n255\n\x01\x02\x03\x04\x05\x06", [][3]uint8{{1, 2, 3}, {4, 5, 6}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := Decode(strings.NewReader(tt.input))
			require.NoError(t, err)
			require.Equal(t, image.Rect(0, 0, 2, 1), img.Bounds())
			for x, want := range tt.want {
				assert.Equal(t, want, rgbAt(img, x, 0), "pixel %d", x)
			}
		})
	}
}

func TestDecode_Invalid(t *testing.T) {
	for _, input := range []string{
		"",
		"Q6\n1 1\n255\n",
		"P7\n1 1\n255\n",
		"P6\n0 1\n255\n",
		"P6\nx 1\n255\n",
		"P6\n1 1\n0\n",
		"P6\n2 2\n255\n\x00",
		"P1\n1 1\n2",
	} {
		_, err := Decode(strings.NewReader(input))
		assert.Error(t, err, "input %q", input)
	}
}

func TestDecode_OversizedHeader(t *testing.T) {
	for _, input := range []string{
		"P6\n4000000000 4000000000\n255\n",
		"P5\n9223372036854775807 2\n255\n",
		fmt.Sprintf("P4\n%d 1\n", MaxPixels+1),
		"P2\n8193 8193\n255\n",
	} {
		assert.NotPanics(t, func() {
			_, err := Decode(strings.NewReader(input))
			assert.ErrorIs(t, err, ErrFormat, "input %q", input)
		})
		_, err := DecodeConfig(strings.NewReader(input))
		assert.ErrorIs(t, err, ErrFormat, "input %q", input)
	}

	cfg, err := DecodeConfig(strings.NewReader(fmt.Sprintf("P4\n%d 1\n", MaxPixels)))
	require.NoError(t, err)
	assert.Equal(t, MaxPixels, cfg.Width)
}

func TestRegisteredWithImage(t *testing.T) {
	img, format, err := image.Decode(strings.NewReader("P5\n1 1\n255\n\x80"))
	require.NoError(t, err)
	assert.Equal(t, "pgm", format)
	assert.Equal(t, [3]uint8{128, 128, 128}, rgbAt(img, 0, 0))

	cfg, format, err := image.DecodeConfig(strings.NewReader("P3\n4 3\n255\n"))
	require.NoError(t, err)
	assert.Equal(t, "ppm", format)
	assert.Equal(t, 4, cfg.Width)
	assert.Equal(t, 3, cfg.Height)
}

func TestEncodeRoundTrip(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	for i := range src.Pix {
		src.Pix[i] = uint8(i * 7)
	}
	for i := 3; i < len(src.Pix); i += 4 {
		src.Pix[i] = 0xff
	}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, src))
	assert.True(t, strings.HasPrefix(buf.String(), "P6\n3 2\n255\n"))

	got, err := Decode(&buf)
	require.NoError(t, err)
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			assert.Equal(t, rgbAt(src, x, y), rgbAt(got, x, y))
		}
	}
}
