package paths

import (
	"os"
	"path/filepath"
)

func home() string {
	h, _ := os.UserHomeDir()
	return h
}

// ConfigDir returns ~/.template-switcher.
func ConfigDir() string {
	return filepath.Join(home(), ".template-switcher")
}

// ConfigFile returns ~/.template-switcher/config.yaml.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// LogFile returns ~/.template-switcher/switcher.log.
func LogFile() string {
	return filepath.Join(ConfigDir(), "switcher.log")
}
