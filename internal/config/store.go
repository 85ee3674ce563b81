package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Store hands out per-plugin configs rooted at a single directory. Each
// plugin's config is one `<name>.ini` file of key=value lines.
type Store struct {
	root string

	// loggedRead tracks which plugins already logged a read failure this
	// session, so the failure policy of "log once" holds.
	loggedRead map[string]bool
}

// NewStore creates a store rooted at dir. The directory is created lazily
// on first save.
func NewStore(dir string) *Store {
	return &Store{root: dir, loggedRead: make(map[string]bool)}
}

// Path returns the config file path for a plugin.
func (s *Store) Path(plugin string) string {
	return filepath.Join(s.root, plugin+".ini")
}

// Open loads the config for a plugin. If the file cannot be read the config
// starts empty and the failure is logged once per session.
func (s *Store) Open(plugin string) *PluginConfig {
	c := &PluginConfig{
		name:  plugin,
		path:  s.Path(plugin),
		index: make(map[string]int),
	}
	data, err := os.ReadFile(c.path)
	if err != nil {
		if !os.IsNotExist(err) && !s.loggedRead[plugin] {
			s.loggedRead[plugin] = true
			log.Printf("config: read %s: %v (starting empty)", c.path, err)
		}
		return c
	}
	c.parse(string(data))
	return c
}

type lineKind int

const (
	lineEntry lineKind = iota
	lineComment
	lineBlank
)

type line struct {
	kind  lineKind
	key   string
	value string
	raw   string // comment or blank line verbatim
}

// PluginConfig is an ordered key=value mapping for one plugin. Comments and
// blank lines survive a load/save round trip; unknown keys read from disk
// are retained and written back. Writes stage in memory until Save.
type PluginConfig struct {
	name  string
	path  string
	lines []line
	index map[string]int
	dirty bool

	// warnedWrite limits write-failure logging to once per session.
	warnedWrite bool
}

func (c *PluginConfig) parse(data string) {
	for _, raw := range strings.Split(data, "\n") {
		trimmed := strings.TrimSpace(raw)
		switch {
		case trimmed == "":
			c.lines = append(c.lines, line{kind: lineBlank, raw: raw})
		case strings.HasPrefix(trimmed, "#"):
			c.lines = append(c.lines, line{kind: lineComment, raw: raw})
		default:
			key, value, ok := strings.Cut(trimmed, "=")
			if !ok {
				log.Printf("config: %s: ignoring malformed line %q", c.name, trimmed)
				continue
			}
			key = strings.TrimSpace(key)
			if _, dup := c.index[key]; dup {
				// Later entries win, matching repeated Set semantics.
				c.lines[c.index[key]].value = value
				continue
			}
			c.index[key] = len(c.lines)
			c.lines = append(c.lines, line{kind: lineEntry, key: key, value: value})
		}
	}
	// Drop the trailing blank produced by a final newline.
	if n := len(c.lines); n > 0 && c.lines[n-1].kind == lineBlank && c.lines[n-1].raw == "" {
		c.lines = c.lines[:n-1]
	}
}

// Name returns the owning plugin's name.
func (c *PluginConfig) Name() string { return c.name }

// Has reports whether key is set.
func (c *PluginConfig) Has(key string) bool {
	_, ok := c.index[key]
	return ok
}

// Keys returns all set keys in file order.
func (c *PluginConfig) Keys() []string {
	var keys []string
	for _, l := range c.lines {
		if l.kind == lineEntry {
			keys = append(keys, l.key)
		}
	}
	return keys
}

// GetString returns the value for key, or def when unset. Reading an unset
// key does not allocate an entry.
func (c *PluginConfig) GetString(key, def string) string {
	i, ok := c.index[key]
	if !ok {
		return def
	}
	return c.lines[i].value
}

// GetInt parses the value for key as an integer, returning def when unset
// or unparsable.
func (c *PluginConfig) GetInt(key string, def int) int {
	i, ok := c.index[key]
	if !ok {
		return def
	}
	v, err := strconv.Atoi(strings.TrimSpace(c.lines[i].value))
	if err != nil {
		return def
	}
	return v
}

// GetBool parses the value for key as a boolean, returning def when unset
// or unparsable.
func (c *PluginConfig) GetBool(key string, def bool) bool {
	i, ok := c.index[key]
	if !ok {
		return def
	}
	v, err := strconv.ParseBool(strings.TrimSpace(c.lines[i].value))
	if err != nil {
		return def
	}
	return v
}

// SetString stages a value for key. Repeated sets overwrite in place.
func (c *PluginConfig) SetString(key, value string) {
	if i, ok := c.index[key]; ok {
		if c.lines[i].value == value {
			return
		}
		c.lines[i].value = value
		c.dirty = true
		return
	}
	c.index[key] = len(c.lines)
	c.lines = append(c.lines, line{kind: lineEntry, key: key, value: value})
	c.dirty = true
}

// SetInt stages an integer value for key.
func (c *PluginConfig) SetInt(key string, value int) {
	c.SetString(key, strconv.Itoa(value))
}

// SetBool stages a boolean value for key.
func (c *PluginConfig) SetBool(key string, value bool) {
	c.SetString(key, strconv.FormatBool(value))
}

// Dirty reports whether there are staged changes not yet saved.
func (c *PluginConfig) Dirty() bool { return c.dirty }

// Save serializes to disk by writing a temporary sibling and renaming it
// over the target. It is a no-op when nothing changed since the last load
// or save. On failure the in-memory state is retained, a warning is logged
// once per session, and the next Save retries.
func (c *PluginConfig) Save() error {
	if !c.dirty {
		return nil
	}
	if err := c.writeFile(); err != nil {
		if !c.warnedWrite {
			c.warnedWrite = true
			log.Printf("config: write %s: %v (keeping in-memory state)", c.path, err)
		}
		return err
	}
	c.dirty = false
	return nil
}

func (c *PluginConfig) writeFile() error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	var b strings.Builder
	for _, l := range c.lines {
		switch l.kind {
		case lineEntry:
			b.WriteString(l.key)
			b.WriteByte('=')
			b.WriteString(l.value)
		default:
			b.WriteString(l.raw)
		}
		b.WriteByte('\n')
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(b.String()), 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, c.path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
