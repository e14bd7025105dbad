// Package imagemaze turns a raster image into a dual-layer maze.
//
// The red channel carries one layer and the green channel the other: a sample
// above 128 is open, anything else is blocked. A pixel whose blue sample is 255
// is the terminal cell on both layers. PNG, BMP, TIFF and PNM inputs are accepted.
package imagemaze

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/pdrpinto/ringmaze"
	_ "github.com/pdrpinto/ringmaze/internal/pnm"
)

const (
	openThreshold = 128
	terminalBlue  = 255
)

// Options controls how channels map to layers.
type Options struct {
	// SwapLayers reads the top layer from green and the bottom layer from red.
	SwapLayers bool
}

// Decode reads an image in any registered format and classifies it.
func Decode(r io.Reader, opts Options) (*ringmaze.Maze, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	maze, err := FromImage(img, opts)
	if err != nil {
		return nil, fmt.Errorf("classify %s image: %w", format, err)
	}
	return maze, nil
}

// Load opens path and decodes it.
func Load(path string, opts Options) (*ringmaze.Maze, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	maze, err := Decode(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return maze, nil
}

// FromImage classifies every pixel of img.
func FromImage(img image.Image, opts Options) (*ringmaze.Maze, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	top := make([]ringmaze.Cell, 0, w*h)
	bottom := make([]ringmaze.Cell, 0, w*h)

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			red, green := classify(c.R), classify(c.G)
			if opts.SwapLayers {
				red, green = green, red
			}
			if c.B == terminalBlue {
				red, green = ringmaze.Terminal, ringmaze.Terminal
			}
			top = append(top, red)
			bottom = append(bottom, green)
		}
	}
	return ringmaze.NewMaze(w, h, top, bottom)
}

func classify(v uint8) ringmaze.Cell {
	if v > openThreshold {
		return ringmaze.Open
	}
	return ringmaze.Blocked
}

var cellLevel = map[ringmaze.Cell]uint8{
	ringmaze.Blocked:  0,
	ringmaze.Open:     255,
	ringmaze.Terminal: 254,
}

// Draw renders maze back into the channel layout Decode reads, with the pins
// of each given state painted pure blue.
func Draw(maze *ringmaze.Maze, pins ...ringmaze.JointState) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, maze.Width(), maze.Height()))
	for pos := ringmaze.Position(0); int(pos) < maze.Size(); pos++ {
		x, y := maze.ToCoords(pos)
		top := maze.CellAt(ringmaze.Top, pos)
		var blue uint8
		if top == ringmaze.Terminal {
			blue = terminalBlue
		}
		img.SetRGBA(x, y, color.RGBA{
			R: cellLevel[top],
			G: cellLevel[maze.CellAt(ringmaze.Bottom, pos)],
			B: blue,
			A: 0xff,
		})
	}
	pin := color.RGBA{B: 0xff, A: 0xff}
	for _, s := range pins {
		for _, pos := range []ringmaze.Position{s.Top, s.Bottom} {
			x, y := maze.ToCoords(pos)
			img.SetRGBA(x, y, pin)
		}
	}
	return img
}
