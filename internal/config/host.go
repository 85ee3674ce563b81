package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Host holds the host-level configuration, assembled from host.yaml plus
// environment overrides. Environment variables always take precedence.
type Host struct {
	// Brightness is the panel backlight percentage.
	Brightness int `yaml:"brightness"`

	// MediaAddr is the Redis address of the media bridge. Empty disables
	// the bridge.
	MediaAddr string `yaml:"media_addr"`

	// FrameRate is the target frame cadence in Hz.
	FrameRate int `yaml:"frame_rate"`
}

// LoadHost assembles the host configuration. A missing file yields usable
// defaults; a malformed file is an error.
func LoadHost() (*Host, error) {
	cfg := &Host{
		Brightness: 80,
		FrameRate:  60,
	}

	path := HostConfigPath()
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	if v := os.Getenv("LLZ_MEDIA_ADDR"); v != "" {
		cfg.MediaAddr = v
	}
	if v := os.Getenv("LLZ_BRIGHTNESS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Brightness = n
		}
	}

	if cfg.FrameRate <= 0 {
		cfg.FrameRate = 60
	}
	if cfg.Brightness < 0 || cfg.Brightness > 100 {
		cfg.Brightness = 80
	}
	return cfg, nil
}
