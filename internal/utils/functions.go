package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// NormalizeRemotePath converts any local separator to the forward slashes the remote host expects.
func NormalizeRemotePath(p string) string {
	return strings.ReplaceAll(filepath.ToSlash(p), "\\", "/")
}

// BuildURL substitutes the access token and the remote relative path into template.
func BuildURL(template, token, remotePath string) string {
	u := strings.ReplaceAll(template, TokenPlaceholder, token)
	return strings.ReplaceAll(u, FilePathPlaceholder, NormalizeRemotePath(remotePath))
}

// WithSuffix replaces the extension of p with suffix, or appends suffix when p has none.
func WithSuffix(p, suffix string) string {
	ext := filepath.Ext(p)
	if ext == filepath.Base(p) {
		ext = ""
	}
	return strings.TrimSuffix(p, ext) + suffix
}

// IsFile reports whether p exists and is a regular file.
func IsFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}

// Exists reports whether p exists as a file or a directory.
func Exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

func RemoveIfExists(p string) error {
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func FormatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
