package save

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"

	"rogue-core/pkg/game"
	"rogue-core/pkg/integration"
)

// MaxScoreEntries caps the score file at its 100 highest entries (spec §6
// "capped at 100 entries").
const MaxScoreEntries = 100

const scoreFilename = "scores.json"

// ScoreEntry is one row of the score file (spec §6 score-file contract).
type ScoreEntry struct {
	PlayerName     string `json:"player_name"`
	Score          int    `json:"score"`
	Level          int    `json:"level"`
	DeepestFloor   int    `json:"deepest_floor"`
	Gold           int    `json:"gold"`
	MonstersKilled int    `json:"monsters_killed"`
	TurnsPlayed    int    `json:"turns_played"`
	DeathCause     string `json:"death_cause"`
	GameResult     string `json:"game_result"` // "victory" or "death"
	Timestamp      string `json:"timestamp"`
}

// CalculateScore derives a run's final score from the player's ending
// state: 100 per character level, 2 per gold piece, 50 per floor reached,
// and 10 per hit point remaining.
func CalculateScore(p *game.Player) int {
	return p.Level*100 + p.Gold*2 + p.DeepestFloor*50 + p.HP*10
}

// NewScoreEntry builds a ScoreEntry from a finished run's player state.
func NewScoreEntry(p *game.Player, playerName, deathCause, gameResult, timestamp string) ScoreEntry {
	return ScoreEntry{
		PlayerName:     playerName,
		Score:          CalculateScore(p),
		Level:          p.Level,
		DeepestFloor:   p.DeepestFloor,
		Gold:           p.Gold,
		MonstersKilled: p.MonstersKilled,
		TurnsPlayed:    p.TurnsPlayed,
		DeathCause:     deathCause,
		GameResult:     gameResult,
		Timestamp:      timestamp,
	}
}

// LoadScores reads the score file under dir, returning an empty slice (not
// an error) if it does not yet exist.
func LoadScores(ctx context.Context, dir string) ([]ScoreEntry, error) {
	var scores []ScoreEntry
	err := integration.ExecuteFileSystemOperation(ctx, func(ctx context.Context) error {
		data, err := os.ReadFile(filepath.Join(dir, scoreFilename))
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return fmt.Errorf("failed to read score file: %w", err)
		}
		return json.Unmarshal(data, &scores)
	})
	if err != nil {
		return nil, err
	}
	return scores, nil
}

// AppendScore adds entry to the score file under dir, re-sorting descending
// by score and truncating to MaxScoreEntries (spec §6 "sorted descending by
// score, capped at 100 entries"). A write failure is logged and swallowed
// so an unwritable score file never aborts an otherwise-finished run,
// mirroring the original's best-effort save_scores behaviour.
func AppendScore(ctx context.Context, dir string, entry ScoreEntry) error {
	return integration.ExecuteFileSystemOperation(ctx, func(ctx context.Context) error {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create save directory: %w", err)
		}

		path := filepath.Join(dir, scoreFilename)
		var scores []ScoreEntry
		if data, err := os.ReadFile(path); err == nil {
			_ = json.Unmarshal(data, &scores)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to read score file: %w", err)
		}

		scores = append(scores, entry)
		sort.SliceStable(scores, func(i, j int) bool {
			return scores[i].Score > scores[j].Score
		})
		if len(scores) > MaxScoreEntries {
			scores = scores[:MaxScoreEntries]
		}

		blob, err := json.MarshalIndent(scores, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal scores: %w", err)
		}
		if err := AtomicWriteFile(path, blob, 0o644); err != nil {
			logrus.WithFields(logrus.Fields{
				"function": "AppendScore",
				"error":    err,
			}).Warn("failed to persist score file, run result not recorded")
			return nil
		}

		logrus.WithFields(logrus.Fields{
			"function": "AppendScore",
			"player":   entry.PlayerName,
			"score":    entry.Score,
		}).Info("score recorded")
		return nil
	})
}

// Rank returns score's 1-based rank among scores (ties share the better
// rank), or len(scores)+1 if it would not place.
func Rank(scores []ScoreEntry, score int) int {
	rank := 1
	for _, e := range scores {
		if score >= e.Score {
			return rank
		}
		rank++
	}
	return rank
}

// HighScore returns the top entry's score, or 0 if scores is empty.
func HighScore(scores []ScoreEntry) int {
	if len(scores) == 0 {
		return 0
	}
	return scores[0].Score
}
