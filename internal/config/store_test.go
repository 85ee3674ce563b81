package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetUnsetReturnsDefault(t *testing.T) {
	s := NewStore(t.TempDir())
	c := s.Open("clock")

	if got := c.GetString("theme", "dark"); got != "dark" {
		t.Fatalf("GetString default = %q", got)
	}
	if got := c.GetInt("size", 7); got != 7 {
		t.Fatalf("GetInt default = %d", got)
	}
	if got := c.GetBool("armed", true); got != true {
		t.Fatalf("GetBool default = %v", got)
	}
	if c.Has("theme") {
		t.Fatal("reading an unset key must not allocate an entry")
	}
}

func TestSetSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)

	c := s.Open("clock")
	c.SetString("theme", "light")
	c.SetInt("size", 42)
	c.SetBool("armed", true)
	if err := c.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	c2 := s.Open("clock")
	if got := c2.GetString("theme", ""); got != "light" {
		t.Fatalf("theme = %q", got)
	}
	if got := c2.GetInt("size", 0); got != 42 {
		t.Fatalf("size = %d", got)
	}
	if got := c2.GetBool("armed", false); !got {
		t.Fatal("armed = false")
	}
}

func TestRepeatedSetOverwrites(t *testing.T) {
	s := NewStore(t.TempDir())
	c := s.Open("p")
	c.SetString("k", "a")
	c.SetString("k", "b")
	if err := c.Save(); err != nil {
		t.Fatal(err)
	}

	c2 := s.Open("p")
	if got := c2.GetString("k", ""); got != "b" {
		t.Fatalf("k = %q, want b", got)
	}
	if got := len(c2.Keys()); got != 1 {
		t.Fatalf("entry count = %d, want 1", got)
	}
}

func TestCommentsAndUnknownKeysSurviveResave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "p.ini")
	original := "# tuning knobs\nlegacy_key=kept\n\ntheme=dark\n"
	if err := os.WriteFile(path, []byte(original), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewStore(dir)
	c := s.Open("p")
	c.SetString("theme", "light")
	if err := c.Save(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "# tuning knobs\nlegacy_key=kept\n\ntheme=light\n"
	if string(data) != want {
		t.Fatalf("resaved file:\n%q\nwant:\n%q", data, want)
	}
}

func TestSaveIsIdempotentWhenClean(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)
	c := s.Open("p")
	c.SetString("k", "v")
	if err := c.Save(); err != nil {
		t.Fatal(err)
	}

	// No staged changes: Save must not rewrite the file.
	if err := os.Remove(s.Path("p")); err != nil {
		t.Fatal(err)
	}
	if err := c.Save(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(s.Path("p")); !os.IsNotExist(err) {
		t.Fatal("clean Save rewrote the file")
	}

	// Setting the same value again stays clean.
	c.SetString("k", "v")
	if c.Dirty() {
		t.Fatal("setting an identical value marked the config dirty")
	}
}

func TestWriteFailureRetainsStateAndRetries(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(filepath.Join(dir, "missing"))
	c := s.Open("p")
	c.SetString("k", "v")

	// Make the config root unwritable by occupying it with a file.
	if err := os.WriteFile(filepath.Join(dir, "missing"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := c.Save(); err == nil {
		t.Fatal("expected write failure")
	}
	if got := c.GetString("k", ""); got != "v" {
		t.Fatal("in-memory state lost after write failure")
	}
	if !c.Dirty() {
		t.Fatal("failed save cleared the dirty flag")
	}

	// Unblock and retry.
	if err := os.Remove(filepath.Join(dir, "missing")); err != nil {
		t.Fatal(err)
	}
	if err := c.Save(); err != nil {
		t.Fatalf("retry save: %v", err)
	}
	c2 := s.Open("p")
	if got := c2.GetString("k", ""); got != "v" {
		t.Fatalf("k = %q after retry", got)
	}
}

func TestUnreadableFileStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)
	// A directory where the file should be forces a read error.
	if err := os.MkdirAll(s.Path("p"), 0o755); err != nil {
		t.Fatal(err)
	}
	c := s.Open("p")
	if got := c.GetString("k", "d"); got != "d" {
		t.Fatalf("k = %q, want default", got)
	}
	if len(c.Keys()) != 0 {
		t.Fatal("unreadable config not empty")
	}
}
