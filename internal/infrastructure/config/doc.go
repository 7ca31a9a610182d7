// Package config provides 12-factor configuration management for the client core.
//
// Configuration is loaded from environment variables with sensible defaults.
//
// Configuration Sections:
//   - API: remote endpoint, timeout, bearer attachment, client-side throttle
//   - Vault: keychain service name, token key, storage directory, backend choice
//   - Media: image long-edge limit and lossy quality factor
//   - Logging: log level, output format and optional rotating file
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Talking to %s\n", cfg.API.Endpoint)
//
// Environment Variables:
//   - API_ENDPOINT, API_TIMEOUT, API_ATTACH_TOKEN, API_USER_AGENT, API_RATE_LIMIT_RPS
//   - VAULT_SERVICE, VAULT_TOKEN_KEY, VAULT_DIR, VAULT_BACKEND
//   - MEDIA_MAX_DIMENSION, MEDIA_QUALITY
//   - LOG_LEVEL, LOG_DEV, LOG_FILE
package config
