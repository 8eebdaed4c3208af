package config

import (
	"os"
	"path/filepath"
)

// UserConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/relnotes/config.yml
// - macOS: ~/Library/Application Support/relnotes/config.yml
// - Windows: %APPDATA%\relnotes\config.yml
//
// If XDG_CONFIG_HOME is set, it will be respected on Linux.
func UserConfigPath() (string, error) {
	configDir, err := UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yml"), nil
}

// UserConfigDir returns the path to the user-level config directory.
func UserConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "relnotes"), nil
}

// ProjectConfigPaths returns the candidate project config files in dir,
// in lookup order. The first one that exists is used.
func ProjectConfigPaths(dir string) []string {
	return []string{
		filepath.Join(dir, ".relnotes.yml"),
		filepath.Join(dir, ".relnotes.yaml"),
		filepath.Join(dir, ".relnotes.json"),
	}
}

// ProjectConfigPath returns the first existing project config file in dir,
// or "" if there is none.
func ProjectConfigPath(dir string) string {
	for _, p := range ProjectConfigPaths(dir) {
		if fileExists(p) {
			return p
		}
	}
	return ""
}
