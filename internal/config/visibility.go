package config

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// Visibility controls where a plugin appears in the launcher.
type Visibility int

const (
	VisibilityHome Visibility = iota
	VisibilityFolder
	VisibilityHidden
)

func (v Visibility) String() string {
	switch v {
	case VisibilityHome:
		return "home"
	case VisibilityFolder:
		return "folder"
	case VisibilityHidden:
		return "hidden"
	}
	return "unknown"
}

// ParseVisibility parses one visibility value.
func ParseVisibility(s string) (Visibility, error) {
	switch strings.TrimSpace(s) {
	case "home":
		return VisibilityHome, nil
	case "folder":
		return VisibilityFolder, nil
	case "hidden":
		return VisibilityHidden, nil
	}
	return VisibilityHome, fmt.Errorf("unknown visibility %q", s)
}

// LoadVisibility reads the plugin visibility file. Missing file yields an
// empty map; malformed lines are logged and skipped, the rest of the file
// is honored.
func LoadVisibility(path string) map[string]Visibility {
	out := make(map[string]Visibility)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("config: read %s: %v", path, err)
		}
		return out
	}
	for _, raw := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		name, value, ok := strings.Cut(trimmed, "=")
		if !ok {
			log.Printf("config: %s: ignoring malformed line %q", path, trimmed)
			continue
		}
		vis, err := ParseVisibility(value)
		if err != nil {
			log.Printf("config: %s: %v", path, err)
			continue
		}
		out[strings.TrimSpace(name)] = vis
	}
	return out
}
