// Package objmesh exports the walls of a maze as a Wavefront OBJ mesh.
//
// Two sheets of (w+1)*(h+1) vertices span the unit square, the top sheet at
// z=+thickness and the bottom sheet at z=-thickness. Every blocked cell is a
// quad of two triangles on its layer's sheet.
//
// Walls come from the classified maze, not from raw pixels: a Terminal cell is
// never a wall, even when its image channel for that layer is below the open
// threshold.
package objmesh

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pdrpinto/ringmaze"
)

// DefaultThickness is the z offset of each sheet.
const DefaultThickness = 0.05

// Stats counts what Write emitted.
type Stats struct {
	Vertices  int
	Triangles int
}

// Write emits vertices first, then faces with 1-based indices.
func Write(w io.Writer, maze *ringmaze.Maze, thickness float64) (Stats, error) {
	bw := bufio.NewWriter(w)
	var stats Stats
	width, height := maze.Width(), maze.Height()

	for _, z := range []float64{thickness, -thickness} {
		for y := 0; y <= height; y++ {
			for x := 0; x <= width; x++ {
				fmt.Fprintf(bw, "v %g %g %g\n", float64(x)/float64(width), float64(y)/float64(height), z)
				stats.Vertices++
			}
		}
	}

	sheet := (width + 1) * (height + 1)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			a := (width+1)*y + x
			b := (width+1)*(y+1) + x
			c := (width+1)*(y+1) + x + 1
			d := (width+1)*y + x + 1
			pos := maze.ToPosition(x, y)
			for i, layer := range []ringmaze.Layer{ringmaze.Top, ringmaze.Bottom} {
				if maze.CellAt(layer, pos) != ringmaze.Blocked {
					continue
				}
				offset := i * sheet
				fmt.Fprintf(bw, "f %d %d %d\n", a+offset+1, b+offset+1, c+offset+1)
				fmt.Fprintf(bw, "f %d %d %d\n", c+offset+1, d+offset+1, a+offset+1)
				stats.Triangles += 2
			}
		}
	}
	return stats, bw.Flush()
}
