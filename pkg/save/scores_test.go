package save

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rogue-core/pkg/game"
)

func TestCalculateScoreFormula(t *testing.T) {
	p := game.NewPlayer("p", game.Position{Level: 1})
	p.Level = 3
	p.Gold = 50
	p.DeepestFloor = 5
	p.HP = 10

	assert.Equal(t, 3*100+50*2+5*50+10*10, CalculateScore(p))
}

func TestAppendScoreSortsDescending(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	for i, score := range []int{50, 300, 100} {
		p := game.NewPlayer("p", game.Position{Level: 1})
		p.Level = 1
		p.Gold = score / 2 // CalculateScore derives from stats; set Gold so score lines up roughly
		_ = i
		entry := NewScoreEntry(p, "player", "", "death", "2026-01-01 00:00:00")
		entry.Score = score // override to an exact, test-controlled value
		require.NoError(t, AppendScore(ctx, dir, entry))
	}

	scores, err := LoadScores(ctx, dir)
	require.NoError(t, err)
	require.Len(t, scores, 3)
	assert.Equal(t, 300, scores[0].Score)
	assert.Equal(t, 100, scores[1].Score)
	assert.Equal(t, 50, scores[2].Score)
}

func TestAppendScoreCapsAtMaxEntries(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	for i := 0; i < MaxScoreEntries+5; i++ {
		entry := ScoreEntry{PlayerName: "player", Score: i}
		require.NoError(t, AppendScore(ctx, dir, entry))
	}

	scores, err := LoadScores(ctx, dir)
	require.NoError(t, err)
	assert.Len(t, scores, MaxScoreEntries)
	assert.Equal(t, MaxScoreEntries+4, scores[0].Score, "highest scores must survive the cap")
}

func TestLoadScoresOnMissingFileReturnsEmpty(t *testing.T) {
	scores, err := LoadScores(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, scores)
}

func TestRankAndHighScore(t *testing.T) {
	scores := []ScoreEntry{{Score: 300}, {Score: 100}, {Score: 50}}
	assert.Equal(t, 1, Rank(scores, 500))
	assert.Equal(t, 2, Rank(scores, 100))
	assert.Equal(t, 4, Rank(scores, 1))
	assert.Equal(t, 300, HighScore(scores))
	assert.Equal(t, 0, HighScore(nil))
}
