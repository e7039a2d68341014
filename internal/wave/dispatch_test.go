package wave

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkGroups(t *testing.T) {
	tests := []struct {
		name       string
		nx, ny     int
		size       int
		exact      bool
		gx, gy     int
		mismatched bool
	}{
		{name: "rounded up", nx: 100, ny: 100, size: 32, gx: 4, gy: 4},
		{name: "exact fit", nx: 64, ny: 96, size: 32, exact: true, gx: 2, gy: 3},
		{name: "exact rejects remainder", nx: 100, ny: 100, size: 32, exact: true, mismatched: true},
		{name: "rectangular", nx: 33, ny: 5, size: 16, gx: 3, gy: 1},
		{name: "zero size", nx: 8, ny: 8, size: 0, mismatched: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGrid(tt.nx, tt.ny, 1, 1)
			require.NoError(t, err)
			gx, gy, err := WorkGroups(g, tt.size, tt.exact)
			if tt.mismatched {
				assert.ErrorIs(t, err, ErrWorkGroupMismatch)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.gx, gx)
			assert.Equal(t, tt.gy, gy)
		})
	}
}

func TestTilesCoverGridOnce(t *testing.T) {
	g, err := NewGrid(37, 21, 1, 1)
	require.NoError(t, err)
	gx, gy, err := WorkGroups(g, 8, false)
	require.NoError(t, err)
	p := Params{PointsX: g.PointsX, PointsY: g.PointsY, GroupSize: 8, GroupsX: gx, GroupsY: gy}

	hits := make([]int, g.Len())
	for _, tl := range tiles(p) {
		assert.LessOrEqual(t, tl.x1, g.PointsX)
		assert.LessOrEqual(t, tl.y1, g.PointsY)
		for j := tl.y0; j < tl.y1; j++ {
			for i := tl.x0; i < tl.x1; i++ {
				hits[g.Index(i, j)]++
			}
		}
	}
	for idx, n := range hits {
		assert.Equal(t, 1, n, "sample %d", idx)
	}
}

func TestTilesClipPartialGroups(t *testing.T) {
	p := Params{PointsX: 5, PointsY: 5, GroupSize: 2, GroupsX: 3, GroupsY: 3}
	ts := tiles(p)
	require.Len(t, ts, 9)
	assert.Equal(t, tile{x0: 4, x1: 5, y0: 4, y1: 5}, ts[8])
}

func TestAssignTilesRoundRobin(t *testing.T) {
	ts := make([]tile, 7)
	for i := range ts {
		ts[i] = tile{x0: i, x1: i + 1, y1: 1}
	}
	assigned := assignTiles(3, ts)
	require.Len(t, assigned, 3)
	assert.Len(t, assigned[0], 3)
	assert.Len(t, assigned[1], 2)
	assert.Len(t, assigned[2], 2)
	assert.Equal(t, 3, assigned[0][1].x0)
}

func TestWorkerPoolRunsEveryTile(t *testing.T) {
	wp := newWorkerPool(4)
	defer wp.close()

	ts := make([]tile, 50)
	for i := range ts {
		ts[i] = tile{x0: i, x1: i + 1, y1: 1}
	}
	assigned := assignTiles(4, ts)

	var mu sync.Mutex
	seen := make(map[int]int)
	for round := 0; round < 20; round++ {
		wp.dispatch(assigned, func(tl tile) {
			mu.Lock()
			seen[tl.x0]++
			mu.Unlock()
		})
	}
	wp.wait()
	require.Len(t, seen, 50)
	for x, n := range seen {
		assert.Equal(t, 20, n, "tile %d", x)
	}
}

func TestWorkerPoolDispatchOrdersJobs(t *testing.T) {
	wp := newWorkerPool(3)
	defer wp.close()
	assigned := assignTiles(3, []tile{{x1: 1, y1: 1}, {x1: 1, y1: 1}, {x1: 1, y1: 1}})

	var first, second atomic.Int32
	wp.dispatch(assigned, func(tile) { first.Add(1) })
	wp.dispatch(assigned, func(tile) {
		assert.Equal(t, int32(3), first.Load(), "earlier job finished before the next started")
		second.Add(1)
	})
	wp.wait()
	assert.Equal(t, int32(3), second.Load())
}
