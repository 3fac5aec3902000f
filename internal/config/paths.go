package config

import (
	"os"
	"path/filepath"
	"strings"
)

// baseDir is where relative runtime paths are anchored: the working
// directory, or the executable's directory when the working directory is
// unavailable (e.g. removed under a running service).
func baseDir() string {
	if wd, err := os.Getwd(); err == nil && wd != "" {
		return wd
	}
	if exe, err := os.Executable(); err == nil && exe != "" {
		return filepath.Dir(exe)
	}
	return "."
}

// ResolveRuntimePath returns raw as an absolute, cleaned path, defaulting to
// fallbackSubdir when raw is empty.
func ResolveRuntimePath(raw string, fallbackSubdir string) string {
	target := strings.TrimSpace(raw)
	if target == "" {
		target = strings.TrimSpace(fallbackSubdir)
	}
	if target == "" {
		return baseDir()
	}
	if filepath.IsAbs(target) {
		return filepath.Clean(target)
	}
	return filepath.Join(baseDir(), target)
}
