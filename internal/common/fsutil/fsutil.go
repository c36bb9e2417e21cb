package fsutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExpandHome expands a leading '~' to the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" {
		return path, nil
	}
	if path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	// handle cases like ~/models/wordvec
	return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
}

// PathExists checks if the given path exists. A stat failure other than
// "not exist" (permission denied, for example) counts as existing so the
// caller's open surfaces the real error.
func PathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !errors.Is(err, os.ErrNotExist)
}

// WithTempDir creates a fresh directory under base (os.TempDir when empty),
// runs fn with its path and removes the directory and everything in it before
// returning, whether fn succeeded or not.
//
// An error from fn is returned as is. A removal failure is reported only when
// fn itself succeeded.
func WithTempDir(base, pattern string, fn func(dir string) error) (err error) {
	dir, err := os.MkdirTemp(base, pattern)
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := os.RemoveAll(dir); rmErr != nil && err == nil {
			err = fmt.Errorf("remove temp dir %s: %w", dir, rmErr)
		}
	}()
	return fn(dir)
}
