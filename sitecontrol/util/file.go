package util

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const dirPerm = 0o700

// ErrDirectoryPermission is returned when a directory cannot be created for
// lack of permission.
var ErrDirectoryPermission = errors.New("creating directory failed with permission error")

// ConfigRelativePath resolves a relative path against the directory of the
// config file in use. Empty and absolute paths, and any path when no config
// file was read, are returned unchanged.
func ConfigRelativePath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}

	used := viper.ConfigFileUsed()
	if used == "" {
		return path
	}

	return filepath.Join(filepath.Dir(used), path)
}

// EnsureDir creates dir and any missing parents.
func EnsureDir(dir string) error {
	err := os.MkdirAll(dir, dirPerm)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s", ErrDirectoryPermission, dir)
	default:
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
}
