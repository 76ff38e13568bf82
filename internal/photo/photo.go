// Package photo checks pizza photos on the local file system.
package photo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrMissing      = errors.New("photo file does not exist")
	ErrNotRegular   = errors.New("photo path is not a regular file")
	ErrBadExtension = errors.New("photo extension is not allowed")
)

// AllowedExtensions lists the accepted image extensions, lower case and without the dot
var AllowedExtensions = []string{"jpg", "jpeg", "png", "gif"}

// FileChecker confirms that a path names an existing image file.
// Relative paths are resolved against Root when it is set.
type FileChecker struct {
	Root string
}

func NewFileChecker(root string) *FileChecker {
	return &FileChecker{Root: root}
}

// Check returns nil when path is a regular file with an allowed extension
func (c *FileChecker) Check(path string) error {
	if !HasAllowedExtension(path) {
		return fmt.Errorf("%w: %s", ErrBadExtension, filepath.Ext(path))
	}
	full := path
	if c.Root != "" && !filepath.IsAbs(path) {
		full = filepath.Join(c.Root, path)
	}
	info, err := os.Stat(full)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrMissing
		}
		return err
	}
	if !info.Mode().IsRegular() {
		return ErrNotRegular
	}
	return nil
}

// HasAllowedExtension reports whether path ends in an allowed image extension, ignoring case
func HasAllowedExtension(path string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
