package render

import (
	"bytes"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pdrpinto/ringmaze"
	"github.com/pdrpinto/ringmaze/internal/pathfile"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func samplePath() []pathfile.Line {
	return []pathfile.Line{
		{Time: 1, Top: r2.Vec{X: 0.5, Y: 0.5}, Bottom: r2.Vec{X: 0.5, Y: 0.75}, Ring: r2.Vec{X: 0.5, Y: 0.6}},
		{Time: 0, Top: r2.Vec{X: 0, Y: 0}, Bottom: r2.Vec{X: 0, Y: 0.25}, Ring: r2.Vec{X: 0, Y: 0.1}},
	}
}

func TestPlot(t *testing.T) {
	p, err := Plot(samplePath(), "solution")
	require.NoError(t, err)
	assert.Equal(t, "solution", p.Title.Text)

	_, err = Plot(nil, "empty")
	assert.Error(t, err)
}

func TestWritePlot(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePlot(&buf, samplePath(), "solution", "svg"))
	assert.Contains(t, buf.String(), "<svg")
}

func TestSavePlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "path.png")
	require.NoError(t, SavePlot(samplePath(), "solution", path))
	assert.FileExists(t, path)
}

func TestFrame(t *testing.T) {
	maze, err := ringmaze.NewMaze(4, 2,
		[]ringmaze.Cell{
			ringmaze.Open, ringmaze.Blocked, ringmaze.Open, ringmaze.Blocked,
			ringmaze.Open, ringmaze.Open, ringmaze.Open, ringmaze.Terminal,
		},
		[]ringmaze.Cell{
			ringmaze.Open, ringmaze.Open, ringmaze.Blocked, ringmaze.Blocked,
			ringmaze.Open, ringmaze.Open, ringmaze.Open, ringmaze.Terminal,
		})
	require.NoError(t, err)

	node := ringmaze.SearchNode{
		Time:  3,
		State: ringmaze.JointState{Top: maze.ToPosition(0, 1), Bottom: maze.ToPosition(1, 1)},
	}
	got := ansi.ReplaceAllString(Frame(maze, node), "")
	assert.Equal(t, "t=3\n.v^#\nTB.X\n", got)

	both := ringmaze.SearchNode{State: ringmaze.JointState{Top: 0, Bottom: 0}}
	got = ansi.ReplaceAllString(Frame(maze, both), "")
	assert.True(t, strings.HasPrefix(got, "t=0\n@"))
}
