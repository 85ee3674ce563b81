//go:build drm

package config

// defaultRoot is the embedded layout: fixed system path on the device.
func defaultRoot() string {
	return "/var/lib/llz"
}
