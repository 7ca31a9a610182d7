// Package paths resolves the local directories used by the client core.
//
// # Directory Structure
//
//	<user config dir>/PatternAssistant/
//	  ├── secrets/   (credentials.enc, master.key)
//	  ├── prefs/     (preferences.yaml)
//	  └── logs/      (core.log when file logging is on)
//
// # Usage
//
//	layout := paths.At(cfg.Vault.Dir)
//	backend := vault.NewEncryptedFileBackend(layout.Secrets())
package paths
