package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		envVars     map[string]string
		expectError bool
		validate    func(t *testing.T, config *Config)
	}{
		{
			name:        "default configuration",
			envVars:     map[string]string{},
			expectError: false,
			validate: func(t *testing.T, config *Config) {
				assert.Equal(t, "./saves", config.SaveDirectory)
				assert.Equal(t, false, config.Debug)
				assert.Equal(t, "info", config.LogLevel)
				assert.Equal(t, true, config.AutoSaveEnabled)
				assert.Equal(t, 30, config.FPSLimit)
				assert.Equal(t, true, config.RetryEnabled)
				assert.Equal(t, 3, config.RetryMaxAttempts)
			},
		},
		{
			name: "custom configuration from environment",
			envVars: map[string]string{
				"SAVE_DIRECTORY":    "/custom/saves",
				"DEBUG":             "true",
				"LOG_LEVEL":         "debug",
				"AUTO_SAVE_ENABLED": "false",
				"FPS_LIMIT":         "60",
			},
			expectError: false,
			validate: func(t *testing.T, config *Config) {
				assert.Equal(t, "/custom/saves", config.SaveDirectory)
				assert.Equal(t, true, config.Debug)
				assert.Equal(t, "debug", config.LogLevel)
				assert.Equal(t, false, config.AutoSaveEnabled)
				assert.Equal(t, 60, config.FPSLimit)
			},
		},
		{
			name: "invalid log level",
			envVars: map[string]string{
				"LOG_LEVEL": "invalid",
			},
			expectError: true,
		},
		{
			name: "fps limit too low",
			envVars: map[string]string{
				"FPS_LIMIT": "0",
			},
			expectError: true,
		},
		{
			name: "empty save directory",
			envVars: map[string]string{
				"SAVE_DIRECTORY": "",
			},
			expectError: false, // empty env var falls back to default
			validate: func(t *testing.T, config *Config) {
				assert.Equal(t, "./saves", config.SaveDirectory)
			},
		},
		{
			name: "retry max attempts too low",
			envVars: map[string]string{
				"RETRY_MAX_ATTEMPTS": "0",
			},
			expectError: true,
		},
		{
			name: "retry backoff multiplier too low",
			envVars: map[string]string{
				"RETRY_BACKOFF_MULTIPLIER": "1.0",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearTestEnv()

			for key, value := range tt.envVars {
				os.Setenv(key, value)
				defer os.Unsetenv(key)
			}

			config, err := Load()

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, config)
			} else {
				require.NoError(t, err)
				require.NotNil(t, config)
				if tt.validate != nil {
					tt.validate(t, config)
				}
			}
		})
	}
}

func TestConfig_IsDebug(t *testing.T) {
	cfg := &Config{Debug: true}
	assert.True(t, cfg.IsDebug())

	cfg = &Config{Debug: false}
	assert.False(t, cfg.IsDebug())
}

func TestConfig_GetRetryConfig(t *testing.T) {
	cfg := &Config{
		RetryMaxAttempts:       4,
		RetryInitialDelay:      50 * time.Millisecond,
		RetryMaxDelay:          5 * time.Second,
		RetryBackoffMultiplier: 1.5,
		RetryJitterPercent:     5,
	}

	rc := cfg.GetRetryConfig()
	assert.Equal(t, 4, rc.MaxAttempts)
	assert.Equal(t, 50*time.Millisecond, rc.InitialDelay)
	assert.Equal(t, 5*time.Second, rc.MaxDelay)
	assert.Equal(t, 1.5, rc.BackoffMultiplier)
	assert.Equal(t, 5, rc.JitterMaxPercent)
}

func TestGetEnvHelpers(t *testing.T) {
	clearTestEnv()

	t.Run("getEnvAsString", func(t *testing.T) {
		assert.Equal(t, "default", getEnvAsString("TEST_STRING", "default"))

		os.Setenv("TEST_STRING", "custom")
		defer os.Unsetenv("TEST_STRING")
		assert.Equal(t, "custom", getEnvAsString("TEST_STRING", "default"))
	})

	t.Run("getEnvAsInt", func(t *testing.T) {
		assert.Equal(t, 42, getEnvAsInt("TEST_INT", 42))

		os.Setenv("TEST_INT", "100")
		defer os.Unsetenv("TEST_INT")
		assert.Equal(t, 100, getEnvAsInt("TEST_INT", 42))

		os.Setenv("TEST_INT_INVALID", "not-a-number")
		defer os.Unsetenv("TEST_INT_INVALID")
		assert.Equal(t, 42, getEnvAsInt("TEST_INT_INVALID", 42))
	})

	t.Run("getEnvAsBool", func(t *testing.T) {
		assert.Equal(t, true, getEnvAsBool("TEST_BOOL", true))

		testCases := []struct {
			value    string
			expected bool
		}{
			{"true", true},
			{"false", false},
			{"1", true},
			{"0", false},
			{"TRUE", true},
			{"FALSE", false},
		}

		for _, tc := range testCases {
			os.Setenv("TEST_BOOL", tc.value)
			assert.Equal(t, tc.expected, getEnvAsBool("TEST_BOOL", false), "value: %s", tc.value)
		}
		os.Unsetenv("TEST_BOOL")
	})

	t.Run("getEnvAsDuration", func(t *testing.T) {
		assert.Equal(t, 5*time.Minute, getEnvAsDuration("TEST_DURATION", 5*time.Minute))

		os.Setenv("TEST_DURATION", "2h30m")
		defer os.Unsetenv("TEST_DURATION")
		assert.Equal(t, 2*time.Hour+30*time.Minute, getEnvAsDuration("TEST_DURATION", 5*time.Minute))
	})

	t.Run("getEnvAsFloat64", func(t *testing.T) {
		assert.Equal(t, 2.0, getEnvAsFloat64("TEST_FLOAT", 2.0))

		os.Setenv("TEST_FLOAT", "3.5")
		defer os.Unsetenv("TEST_FLOAT")
		assert.Equal(t, 3.5, getEnvAsFloat64("TEST_FLOAT", 2.0))
	})
}

// clearTestEnv removes all environment variables that might affect tests
func clearTestEnv() {
	testVars := []string{
		"SAVE_DIRECTORY", "DEBUG", "LOG_LEVEL", "AUTO_SAVE_ENABLED", "FPS_LIMIT",
		"RETRY_ENABLED", "RETRY_MAX_ATTEMPTS", "RETRY_INITIAL_DELAY",
		"RETRY_MAX_DELAY", "RETRY_BACKOFF_MULTIPLIER", "RETRY_JITTER_PERCENT",
		"TEST_STRING", "TEST_INT", "TEST_INT_INVALID", "TEST_BOOL",
		"TEST_DURATION", "TEST_FLOAT",
	}

	for _, v := range testVars {
		os.Unsetenv(v)
	}
}
