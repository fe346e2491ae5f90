package save

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"rogue-core/pkg/config"
	"rogue-core/pkg/engine"
	"rogue-core/pkg/game"
	"rogue-core/pkg/integration"

	"github.com/sirupsen/logrus"
)

// SaveVersion identifies the on-disk save-file payload shape (spec §6
// "save_version"). Bump when RunSnapshot's field set changes incompatibly.
const SaveVersion = 1

const (
	blobFilename = "run.save"
	metaFilename = "run.meta.json"
	backupSuffix = ".bak"
)

// RunSnapshot is the opaque blob persisted for an in-progress run (spec §6
// "Save file"): the player, every floor visited so far keyed by level (spec
// C11 "backtracking to an earlier level shows it exactly as it was left"),
// and the run seed needed to rebuild RNG streams and the dungeon director
// on reload.
type RunSnapshot struct {
	RunSeed      int64               `json:"run_seed"`
	CurrentFloor int                 `json:"current_floor"`
	TurnCount    int                 `json:"turn_count"`
	Player       *game.Player        `json:"player"`
	Floors       map[int]*game.Floor `json:"floors"`
}

// Metadata is the sidecar JSON alongside the blob (spec §6 "sidecar
// metadata JSON with fields {save_version, player_level, current_floor,
// player_hp, player_max_hp, is_alive, checksum}").
type Metadata struct {
	SaveVersion  int    `json:"save_version"`
	PlayerLevel  int    `json:"player_level"`
	CurrentFloor int    `json:"current_floor"`
	PlayerHP     int    `json:"player_hp"`
	PlayerMaxHP  int    `json:"player_max_hp"`
	IsAlive      bool   `json:"is_alive"`
	Checksum     string `json:"checksum"`
}

// ErrPermadeath is returned by SaveRun when the run has already ended in
// death (spec §6 "Save is refused after permadeath triggers").
var ErrPermadeath = fmt.Errorf("save refused: run has ended in permadeath")

// ErrSaveIntegrity is returned by LoadRun when the primary save and its
// backup both fail to read or verify, or when the save that loaded records
// is_alive=false (spec §7 "SaveIntegrity").
var ErrSaveIntegrity = fmt.Errorf("save integrity check failed")

// SaveRun persists e's current state under dir as an opaque JSON blob plus
// sidecar metadata, refusing once the run has ended in permadeath. Before
// writing, the previous save (if any) is rotated to a backup so a corrupted
// write leaves a recoverable prior version (spec §7 SaveIntegrity fallback).
func SaveRun(ctx context.Context, dir string, e *engine.Engine) error {
	if e.GameOver {
		return ErrPermadeath
	}

	return integration.ExecuteFileSystemOperation(ctx, func(ctx context.Context) error {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create save directory: %w", err)
		}

		snap := RunSnapshot{
			RunSeed:      e.Seeds.RunSeed(),
			CurrentFloor: e.Floor.Level,
			TurnCount:    e.Turns.Count,
			Player:       e.Player,
			Floors:       e.Floors(),
		}
		blob, err := json.Marshal(snap)
		if err != nil {
			return fmt.Errorf("failed to marshal run snapshot: %w", err)
		}

		sum := sha256.Sum256(blob)
		meta := Metadata{
			SaveVersion:  SaveVersion,
			PlayerLevel:  e.Player.Level,
			CurrentFloor: e.Floor.Level,
			PlayerHP:     e.Player.HP,
			PlayerMaxHP:  e.Player.MaxHP,
			IsAlive:      e.Player.HP > 0 && !e.GameOver,
			Checksum:     hex.EncodeToString(sum[:]),
		}
		metaBlob, err := json.Marshal(meta)
		if err != nil {
			return fmt.Errorf("failed to marshal save metadata: %w", err)
		}

		blobPath := filepath.Join(dir, blobFilename)
		metaPath := filepath.Join(dir, metaFilename)
		rotateToBackup(blobPath)
		rotateToBackup(metaPath)

		if err := AtomicWriteFile(blobPath, blob, 0o644); err != nil {
			return fmt.Errorf("failed to write save blob: %w", err)
		}
		if err := AtomicWriteFile(metaPath, metaBlob, 0o644); err != nil {
			return fmt.Errorf("failed to write save metadata: %w", err)
		}

		logrus.WithFields(logrus.Fields{
			"function": "SaveRun",
			"floor":    meta.CurrentFloor,
			"hp":       meta.PlayerHP,
		}).Info("run saved")
		return nil
	})
}

// LoadRun reads a run previously written by SaveRun and rebuilds a live
// Engine. A primary save that cannot be read or fails its checksum falls
// back to the rotated backup; ErrSaveIntegrity is returned when the backup
// fails too, or when the save that loaded has is_alive=false (a dead
// primary does not fall back to the backup). cfg may be nil, in which case
// the dungeon director uses the package's default GenerationRetry policy.
func LoadRun(ctx context.Context, dir string, cfg *config.Config) (*engine.Engine, error) {
	var result *engine.Engine
	err := integration.ExecuteFileSystemOperation(ctx, func(ctx context.Context) error {
		blobPath := filepath.Join(dir, blobFilename)
		metaPath := filepath.Join(dir, metaFilename)

		snap, meta, err := loadAndVerify(blobPath, metaPath)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"function": "LoadRun",
				"error":    err,
			}).Warn("primary save failed integrity check, trying backup")

			snap, meta, err = loadAndVerify(blobPath+backupSuffix, metaPath+backupSuffix)
			if err != nil {
				return ErrSaveIntegrity
			}
		}

		if !meta.IsAlive {
			return ErrSaveIntegrity
		}

		result = engine.NewEngineFromSnapshot(engine.RestoredRun{
			RunSeed:      snap.RunSeed,
			Player:       snap.Player,
			Floors:       snap.Floors,
			CurrentFloor: snap.CurrentFloor,
			TurnCount:    snap.TurnCount,
		}, cfg)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// loadAndVerify reads and validates one blob/metadata pair, returning
// ErrSaveIntegrity on checksum mismatch.
func loadAndVerify(blobPath, metaPath string) (RunSnapshot, Metadata, error) {
	var snap RunSnapshot
	var meta Metadata

	blob, err := os.ReadFile(blobPath)
	if err != nil {
		return snap, meta, fmt.Errorf("failed to read save blob: %w", err)
	}
	metaBlob, err := os.ReadFile(metaPath)
	if err != nil {
		return snap, meta, fmt.Errorf("failed to read save metadata: %w", err)
	}
	if err := json.Unmarshal(metaBlob, &meta); err != nil {
		return snap, meta, fmt.Errorf("failed to unmarshal save metadata: %w", err)
	}

	sum := sha256.Sum256(blob)
	if hex.EncodeToString(sum[:]) != meta.Checksum {
		return snap, meta, fmt.Errorf("%w: checksum mismatch", ErrSaveIntegrity)
	}

	if err := json.Unmarshal(blob, &snap); err != nil {
		return snap, meta, fmt.Errorf("failed to unmarshal save blob: %w", err)
	}
	return snap, meta, nil
}

// DeleteRun removes the save blob, metadata and any backups for dir, called
// on permadeath (spec §6 "the save file and its backups are deleted") and
// on starting a fresh game over an existing save.
func DeleteRun(dir string) error {
	for _, name := range []string{blobFilename, metaFilename} {
		path := filepath.Join(dir, name)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete %s: %w", name, err)
		}
		backup := path + backupSuffix
		if err := os.Remove(backup); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete %s: %w", backup, err)
		}
	}
	return nil
}

// rotateToBackup copies an existing file to path+backupSuffix, overwriting
// any prior backup. Best-effort: a missing source file is not an error.
func rotateToBackup(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	_ = os.WriteFile(path+backupSuffix, data, 0o644)
}
