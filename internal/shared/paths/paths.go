package paths

import (
	"os"
	"path/filepath"
)

// AppDirName is the per-user directory name under the OS config root
const AppDirName = "PatternAssistant"

// Subdirectories of the app directory
const (
	SecretsDir = "secrets"
	PrefsDir   = "prefs"
	LogsDir    = "logs"
)

// Layout resolves the local directories the core writes to
type Layout struct {
	Root string
}

// Default returns the layout rooted at the OS per-user config directory,
// or under the temp directory when no home is known
func Default() Layout {
	base, err := os.UserConfigDir()
	if err != nil {
		base = os.TempDir()
	}
	return Layout{Root: filepath.Join(base, AppDirName)}
}

// At returns a layout rooted at dir, or the default when dir is empty
func At(dir string) Layout {
	if dir == "" {
		return Default()
	}
	return Layout{Root: dir}
}

// Secrets holds the encrypted credential file and its master key
func (l Layout) Secrets() string {
	return filepath.Join(l.Root, SecretsDir)
}

// Prefs holds non-secret flags
func (l Layout) Prefs() string {
	return filepath.Join(l.Root, PrefsDir)
}

// LogFile is the default rotating log file
func (l Layout) LogFile() string {
	return filepath.Join(l.Root, LogsDir, "core.log")
}
