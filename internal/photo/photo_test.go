package photo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasAllowedExtension(t *testing.T) {
	testCases := []struct {
		path     string
		expected bool
	}{
		{"reine.jpg", true},
		{"reine.JPEG", true},
		{"dir/reine.Png", true},
		{"reine.gif", true},
		{"reine.bmp", false},
		{"reine", false},
		{"reine.jpg.txt", false},
	}

	for _, tt := range testCases {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, HasAllowedExtension(tt.path))
		})
	}
}

func TestFileChecker(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "reine.jpg"), []byte("img"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("txt"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "folder.png"), 0o755))

	checker := NewFileChecker("")

	t.Run("existing image is accepted", func(t *testing.T) {
		assert.NoError(t, checker.Check(filepath.Join(dir, "reine.jpg")))
	})

	t.Run("missing file is rejected", func(t *testing.T) {
		assert.ErrorIs(t, checker.Check(filepath.Join(dir, "absent.png")), ErrMissing)
	})

	t.Run("wrong extension is rejected", func(t *testing.T) {
		assert.ErrorIs(t, checker.Check(filepath.Join(dir, "notes.txt")), ErrBadExtension)
	})

	t.Run("directory is rejected", func(t *testing.T) {
		assert.ErrorIs(t, checker.Check(filepath.Join(dir, "folder.png")), ErrNotRegular)
	})

	t.Run("relative path resolves against root", func(t *testing.T) {
		rooted := NewFileChecker(dir)
		assert.NoError(t, rooted.Check("reine.jpg"))
	})
}
