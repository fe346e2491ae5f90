// Package config provides configuration management for the dungeon crawler.
//
// This package handles environment variable loading with type-safe parsing,
// applies secure defaults for a local single-process run, and validates all
// configuration values.
//
// # Loading Configuration
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Environment Variables
//
//   - SAVE_DIRECTORY: save/score file directory (default: "./saves")
//   - DEBUG: enables the debug console command surface (default: false)
//   - LOG_LEVEL: logging verbosity (default: "info")
//   - AUTO_SAVE_ENABLED: enables save-on-tick persistence (default: true)
//   - FPS_LIMIT: caps the renderer's redraw rate (default: 30)
//
// Retry policy (shared by dungeon generation retry and save/load I/O):
//   - RETRY_ENABLED, RETRY_MAX_ATTEMPTS, RETRY_INITIAL_DELAY,
//     RETRY_MAX_DELAY, RETRY_BACKOFF_MULTIPLIER, RETRY_JITTER_PERCENT
//
// # Retry Configuration
//
// GetRetryConfig returns a retry.RetryConfig that can be used directly
// with the retry package, or passed to dungeon.NewDirectorWithRetry:
//
//	retryConfig := cfg.GetRetryConfig()
//	retrier := retry.NewRetrier(retryConfig)
package config
