package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rogue-core/pkg/game"
)

func openFloor(w, h int) *game.Floor {
	f := game.NewFloor(1, w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			f.SetTile(x, y, game.NewFloorTile())
		}
	}
	return f
}

func TestBuildDistanceFieldBFSCorrectness(t *testing.T) {
	f := openFloor(10, 10)
	field := BuildDistanceField(f, game.Position{X: 5, Y: 5})

	d, ok := field.DistanceTo(game.Position{X: 5, Y: 5})
	require.True(t, ok)
	assert.Equal(t, 0, d)

	d, ok = field.DistanceTo(game.Position{X: 7, Y: 5})
	require.True(t, ok)
	assert.Equal(t, 2, d)
}

func TestDistanceFieldBoundedAtMaxDistance(t *testing.T) {
	f := openFloor(40, 40)
	field := BuildDistanceField(f, game.Position{X: 20, Y: 20})

	_, ok := field.DistanceTo(game.Position{X: 20, Y: 20 + MaxPathDistance + 5})
	assert.False(t, ok, "tiles beyond MaxPathDistance must not be cached")
}

func TestStepTowardMovesCloser(t *testing.T) {
	f := openFloor(10, 10)
	origin := game.Position{X: 0, Y: 0}
	field := BuildDistanceField(f, origin)

	from := game.Position{X: 5, Y: 5}
	next := field.StepToward(f, from)

	before, _ := field.DistanceTo(from)
	after, _ := field.DistanceTo(next)
	assert.Less(t, after, before)
}
