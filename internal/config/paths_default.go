//go:build !drm

package config

import (
	"os"
	"path/filepath"
)

// defaultRoot is the development layout: per-user config directory.
func defaultRoot() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "llz")
}
