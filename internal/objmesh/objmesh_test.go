package objmesh

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/ringmaze"
)

func TestWrite(t *testing.T) {
	// 2x1: top blocked at x=1, bottom blocked at x=0.
	maze, err := ringmaze.NewMaze(2, 1,
		[]ringmaze.Cell{ringmaze.Open, ringmaze.Blocked},
		[]ringmaze.Cell{ringmaze.Blocked, ringmaze.Terminal})
	require.NoError(t, err)

	var buf bytes.Buffer
	stats, err := Write(&buf, maze, DefaultThickness)
	require.NoError(t, err)
	assert.Equal(t, Stats{Vertices: 12, Triangles: 4}, stats)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 16)
	assert.Equal(t, "v 0 0 0.05", lines[0])
	assert.Equal(t, "v 1 1 0.05", lines[5])
	assert.Equal(t, "v 0 0 -0.05", lines[6])

	// Vertex grid is 3 wide: top quad for cell (1,0) is a=1 b=4 c=5 d=2.
	assert.Equal(t, []string{
		"f 7 10 11", "f 11 8 7", // bottom sheet, cell (0,0), offset 6
		"f 2 5 6", "f 6 3 2", // top sheet, cell (1,0)
	}, lines[12:])
}

func TestWrite_NoWalls(t *testing.T) {
	maze, err := ringmaze.NewMaze(1, 1, []ringmaze.Cell{ringmaze.Open}, []ringmaze.Cell{ringmaze.Open})
	require.NoError(t, err)

	var buf bytes.Buffer
	stats, err := Write(&buf, maze, 1)
	require.NoError(t, err)
	assert.Equal(t, 8, stats.Vertices)
	assert.Zero(t, stats.Triangles)
	assert.NotContains(t, buf.String(), "f ")
}

func TestWrite_TerminalIsNeverAWall(t *testing.T) {
	maze, err := ringmaze.NewMaze(2, 1,
		[]ringmaze.Cell{ringmaze.Terminal, ringmaze.Blocked},
		[]ringmaze.Cell{ringmaze.Terminal, ringmaze.Open})
	require.NoError(t, err)

	var buf bytes.Buffer
	stats, err := Write(&buf, maze, DefaultThickness)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Triangles)
	assert.Contains(t, buf.String(), "f 2 5 6\nf 6 3 2\n")
}
