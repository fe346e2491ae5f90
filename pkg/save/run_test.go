package save

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rogue-core/pkg/engine"
)

func newTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	e, err := engine.NewEngine(7)
	require.NoError(t, err)
	return e
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	e := newTestEngine(t)
	e.Player.Gold = 123
	e.Player.HP = 15

	require.NoError(t, SaveRun(ctx, dir, e))

	loaded, err := LoadRun(ctx, dir, nil)
	require.NoError(t, err)
	assert.Equal(t, 123, loaded.Player.Gold)
	assert.Equal(t, 15, loaded.Player.HP)
	assert.Equal(t, e.Floor.Level, loaded.Floor.Level)
	assert.Equal(t, e.Seeds.RunSeed(), loaded.Seeds.RunSeed())
}

func TestSaveRefusedAfterPermadeath(t *testing.T) {
	dir := t.TempDir()
	e := newTestEngine(t)
	e.GameOver = true

	err := SaveRun(context.Background(), dir, e)
	assert.ErrorIs(t, err, ErrPermadeath)
}

func TestLoadRejectsChecksumMismatch(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	e := newTestEngine(t)
	require.NoError(t, SaveRun(ctx, dir, e))

	blobPath := filepath.Join(dir, blobFilename)
	data, err := os.ReadFile(blobPath)
	require.NoError(t, err)
	data = append(data, ' ') // corrupt the blob without touching its checksum
	require.NoError(t, os.WriteFile(blobPath, data, 0o644))

	_, err = LoadRun(ctx, dir, nil)
	assert.ErrorIs(t, err, ErrSaveIntegrity)
}

func TestLoadFallsBackToBackupOnCorruption(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	e := newTestEngine(t)
	require.NoError(t, SaveRun(ctx, dir, e))
	// A second save rotates the first save to .bak; corrupting the primary
	// then makes LoadRun fall back to a backup that was genuinely valid
	// when written.
	e.Player.Gold = 999
	require.NoError(t, SaveRun(ctx, dir, e))

	blobPath := filepath.Join(dir, blobFilename)
	require.NoError(t, os.WriteFile(blobPath, []byte("not json"), 0o644))

	loaded, err := LoadRun(ctx, dir, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.Player.Gold, "backup predates the gold change")
}

func TestLoadRejectsDeadSave(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	e := newTestEngine(t)
	require.NoError(t, SaveRun(ctx, dir, e))

	metaPath := filepath.Join(dir, metaFilename)
	data, err := os.ReadFile(metaPath)
	require.NoError(t, err)
	var meta Metadata
	require.NoError(t, json.Unmarshal(data, &meta))
	meta.IsAlive = false
	rewritten, err := json.Marshal(meta)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(metaPath, rewritten, 0o644))

	_, err = LoadRun(ctx, dir, nil)
	assert.ErrorIs(t, err, ErrSaveIntegrity)
}

func TestDeleteRunRemovesBlobMetaAndBackups(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	e := newTestEngine(t)
	require.NoError(t, SaveRun(ctx, dir, e))
	require.NoError(t, SaveRun(ctx, dir, e)) // second save produces .bak files

	require.NoError(t, DeleteRun(dir))

	for _, name := range []string{blobFilename, metaFilename, blobFilename + backupSuffix, metaFilename + backupSuffix} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.True(t, os.IsNotExist(err), "%s should have been removed", name)
	}
}

func TestDeleteRunOnEmptyDirIsNotAnError(t *testing.T) {
	assert.NoError(t, DeleteRun(t.TempDir()))
}
