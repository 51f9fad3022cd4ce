// Package pathutil resolves user-supplied file paths.
package pathutil

import (
	"os"
	"path/filepath"
	"strings"
)

// Expand replaces a leading ~/ with the user's home directory.
func Expand(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// ConfigHome returns $XDG_CONFIG_HOME, falling back to ~/.config.
func ConfigHome() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".config")
}

// DefaultWheelPath is where the wheel file lives unless --file says otherwise.
func DefaultWheelPath() string {
	return filepath.Join(ConfigHome(), "fate", "wheel.yaml")
}
