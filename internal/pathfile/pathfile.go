// Package pathfile reads and writes solution paths, one step per line:
//
//	time topX topY bottomX bottomY ringX ringY
//
// Coordinates are normalized to [0,1] by the grid extents.
package pathfile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pdrpinto/ringmaze"
)

// Line is one parsed step.
type Line struct {
	Time   int
	Top    r2.Vec
	Bottom r2.Vec
	Ring   r2.Vec
}

// FromRecords normalizes path records against the maze extents.
func FromRecords(maze *ringmaze.Maze, records []ringmaze.PathRecord) []Line {
	lines := make([]Line, len(records))
	for i, rec := range records {
		lines[i] = Line{
			Time:   rec.Time,
			Top:    maze.Normalize(rec.Top),
			Bottom: maze.Normalize(rec.Bottom),
			Ring:   maze.Normalize(rec.Ring),
		}
	}
	return lines
}

// Write emits lines in the order given.
func Write(w io.Writer, lines []Line) error {
	bw := bufio.NewWriter(w)
	for _, l := range lines {
		_, err := fmt.Fprintf(bw, "%d %s %s %s %s %s %s\n", l.Time,
			format(l.Top.X), format(l.Top.Y),
			format(l.Bottom.X), format(l.Bottom.Y),
			format(l.Ring.X), format(l.Ring.Y))
		if err != nil {
			return err
		}
	}
	return bw.Flush()
}

func format(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Read parses lines written by Write. Blank lines are skipped.
func Read(r io.Reader) ([]Line, error) {
	var lines []Line
	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 7 {
			return nil, fmt.Errorf("line %d: want 7 fields, got %d", n, len(fields))
		}
		t, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: time: %w", n, err)
		}
		var v [6]float64
		for i := range v {
			if v[i], err = strconv.ParseFloat(fields[i+1], 64); err != nil {
				return nil, fmt.Errorf("line %d: field %d: %w", n, i+2, err)
			}
		}
		lines = append(lines, Line{
			Time:   t,
			Top:    r2.Vec{X: v[0], Y: v[1]},
			Bottom: r2.Vec{X: v[2], Y: v[3]},
			Ring:   r2.Vec{X: v[4], Y: v[5]},
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
