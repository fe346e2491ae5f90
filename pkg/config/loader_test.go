package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rogue-core/pkg/integration"
	"rogue-core/pkg/resilience"
)

// resetCircuitBreakerForTesting resets the circuit breaker state for testing.
func resetCircuitBreakerForTesting() {
	manager := resilience.GetGlobalCircuitBreakerManager()
	manager.Remove("config_loader")
	integration.ResetExecutorsForTesting()
}

func TestLoadSpecialRoomPopulationsValidFile(t *testing.T) {
	resetCircuitBreakerForTesting()

	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "populations.yaml")
	content := `
treasure:
  item_count: 6
  gold_amount: 500
  locked_door: true
shrine:
  item_count: 2
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	err := LoadSpecialRoomPopulations(path)
	assert.NoError(t, err)
}

func TestLoadSpecialRoomPopulationsFileNotFound(t *testing.T) {
	resetCircuitBreakerForTesting()

	err := LoadSpecialRoomPopulations("this_file_does_not_exist.yaml")
	assert.Error(t, err)
}

func TestLoadSpecialRoomPopulationsInvalidYAML(t *testing.T) {
	resetCircuitBreakerForTesting()

	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "invalid.yaml")
	require.NoError(t, os.WriteFile(path, []byte("treasure: [unclosed"), 0o644))

	err := LoadSpecialRoomPopulations(path)
	assert.Error(t, err)
}

func TestLoadSpecialRoomPopulationsEmptyFile(t *testing.T) {
	resetCircuitBreakerForTesting()

	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))

	err := LoadSpecialRoomPopulations(path)
	assert.NoError(t, err)
}
