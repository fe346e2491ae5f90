package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"rogue-core/pkg/integration"
	"rogue-core/pkg/resilience"
)

// TestLoadSpecialRoomPopulationsWithCircuitBreakerProtection tests the
// integration approach for config loading end to end.
func TestLoadSpecialRoomPopulationsWithCircuitBreakerProtection(t *testing.T) {
	resetCircuitBreakerForTesting()
	integration.ResetExecutorsForTesting()

	tempDir := t.TempDir()

	validFile := filepath.Join(tempDir, "valid.yaml")
	validContent := `
treasure:
  item_count: 5
  gold_amount: 300
  locked_door: true
`
	err := os.WriteFile(validFile, []byte(validContent), 0644)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	if err := LoadSpecialRoomPopulations(validFile); err != nil {
		t.Fatalf("Expected successful load, got error: %v", err)
	}

	nonExistentFile := filepath.Join(tempDir, "does_not_exist.yaml")
	err = LoadSpecialRoomPopulations(nonExistentFile)
	if err == nil {
		t.Error("Expected error when loading non-existent file")
	}

	errorStr := strings.ToLower(err.Error())
	if !strings.Contains(errorStr, "no such file") && !strings.Contains(errorStr, "operation failed") {
		t.Errorf("Expected file not found or operation failed error, got: %v", err)
	}

	invalidFile := filepath.Join(tempDir, "invalid.yaml")
	invalidContent := `invalid_yaml: [unclosed_bracket`
	err = os.WriteFile(invalidFile, []byte(invalidContent), 0644)
	if err != nil {
		t.Fatalf("Failed to create invalid test file: %v", err)
	}

	err = LoadSpecialRoomPopulations(invalidFile)
	if err == nil {
		t.Error("Expected error when parsing invalid YAML")
	}

	errorStr = strings.ToLower(err.Error())
	if !strings.Contains(errorStr, "yaml") && !strings.Contains(errorStr, "unmarshal") && !strings.Contains(errorStr, "operation failed") {
		t.Errorf("Expected YAML parsing or operation failed error, got: %v", err)
	}
}

// TestConfigLoaderCircuitBreakerConfiguration tests the circuit breaker configuration
func TestConfigLoaderCircuitBreakerConfiguration(t *testing.T) {
	resetCircuitBreakerForTesting()
	integration.ResetExecutorsForTesting()

	manager := resilience.GetGlobalCircuitBreakerManager()
	cb := manager.GetOrCreate("config_loader", &resilience.ConfigLoaderConfig)
	config := resilience.ConfigLoaderConfig

	if config.MaxFailures != 2 {
		t.Errorf("Expected MaxFailures to be 2, got %d", config.MaxFailures)
	}

	if config.Timeout != 15*time.Second {
		t.Errorf("Expected Timeout to be 15s, got %v", config.Timeout)
	}

	if config.Name != "config_loader" {
		t.Errorf("Expected Name to be 'config_loader', got %s", config.Name)
	}

	if cb.GetState() != resilience.StateClosed {
		t.Errorf("Expected initial state to be closed, got %s", cb.GetState())
	}
}

// TestCircuitBreakerOpensAfterFailures tests that repeated config-loader
// failures open the circuit breaker
func TestCircuitBreakerOpensAfterFailures(t *testing.T) {
	resetCircuitBreakerForTesting()
	integration.ResetExecutorsForTesting()

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_ = resilience.ExecuteWithConfigLoaderCircuitBreaker(ctx, func(ctx context.Context) error {
			return fmt.Errorf("failure %d", i)
		})
	}

	manager := resilience.GetGlobalCircuitBreakerManager()
	cb := manager.GetOrCreate("config_loader", &resilience.ConfigLoaderConfig)

	if cb.GetState() != resilience.StateOpen {
		t.Errorf("Expected circuit breaker to be open, got %s", cb.GetState())
	}

	if cb.GetState() == resilience.StateOpen {
		t.Log("Circuit breaker is open as expected after failures")
	}
}
