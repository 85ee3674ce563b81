package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadVisibility(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plugin_visibility.ini")
	content := "# launcher layout\nclock=home\nnowplaying=home\ndebugstats=hidden\ngames2048=folder\nbadline\nmystery=someplace\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	vis := LoadVisibility(path)
	want := map[string]Visibility{
		"clock":      VisibilityHome,
		"nowplaying": VisibilityHome,
		"debugstats": VisibilityHidden,
		"games2048":  VisibilityFolder,
	}
	if len(vis) != len(want) {
		t.Fatalf("entry count = %d, want %d (%v)", len(vis), len(want), vis)
	}
	for name, v := range want {
		if vis[name] != v {
			t.Fatalf("%s = %v, want %v", name, vis[name], v)
		}
	}
}

func TestLoadVisibilityMissingFile(t *testing.T) {
	vis := LoadVisibility(filepath.Join(t.TempDir(), "nope.ini"))
	if len(vis) != 0 {
		t.Fatalf("missing file should yield empty map, got %v", vis)
	}
}
