// Package config provides the per-plugin key=value store, the plugin
// visibility file, and host-level configuration loaded from YAML with
// environment overrides.
package config

import (
	"os"
	"path/filepath"
)

// EnvConfigRoot overrides the default config directory.
const EnvConfigRoot = "LLZ_CONFIG_ROOT"

// Root returns the directory holding host and per-plugin configuration.
func Root() string {
	if p := os.Getenv(EnvConfigRoot); p != "" {
		return p
	}
	return defaultRoot()
}

// HostConfigPath returns the host-level YAML config path.
func HostConfigPath() string {
	return filepath.Join(Root(), "host.yaml")
}

// VisibilityPath returns the plugin visibility file path.
func VisibilityPath() string {
	return filepath.Join(Root(), "plugin_visibility.ini")
}
