package connection

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/fsproc/pkg/fsproc"
)

func TestConfig_Translate(t *testing.T) {
	root := filepath.FromSlash("/srv/files")
	cfg := Config{
		ParentDirectory: root,
		FileMapping: map[string]string{
			"docs":    "manuals/en",
			"archive": filepath.FromSlash("/srv/files/old"),
		},
	}

	tests := []struct {
		name     string
		location string
		want     string
	}{
		{"relative", "a.txt", "/srv/files/a.txt"},
		{"empty is root", "", "/srv/files"},
		{"nested", "reports/*.csv", "/srv/files/reports/*.csv"},
		{"absolute inside root", "/srv/files/x/y.bin", "/srv/files/x/y.bin"},
		{"mapped relative target", "docs/intro.txt", "/srv/files/manuals/en/intro.txt"},
		{"mapped bare key", "docs", "/srv/files/manuals/en"},
		{"mapped absolute target", "archive/2019", "/srv/files/old/2019"},
		{"only first segment maps", "x/docs/a", "/srv/files/x/docs/a"},
		{"dot dot that stays inside", "a/../b.txt", "/srv/files/b.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cfg.translate(root, tt.location)
			require.NoError(t, err)
			assert.Equal(t, filepath.FromSlash(tt.want), got)
		})
	}
}

func TestConfig_Translate_ParentPaths(t *testing.T) {
	root := filepath.FromSlash("/srv/files")
	escapes := []string{"../etc/passwd", "a/../../b", filepath.FromSlash("/etc/passwd")}

	t.Run("rejected by default", func(t *testing.T) {
		cfg := Config{ParentDirectory: root}
		for _, loc := range escapes {
			_, err := cfg.translate(root, loc)
			assert.ErrorIs(t, err, fsproc.ErrInvalidPath, loc)
		}
	})

	t.Run("allowed when enabled", func(t *testing.T) {
		cfg := Config{ParentDirectory: root, AllowParentPaths: true}
		got, err := cfg.translate(root, "../shared/a.txt")
		require.NoError(t, err)
		assert.Equal(t, filepath.FromSlash("/srv/shared/a.txt"), got)
	})

	t.Run("mapping target outside root is still checked", func(t *testing.T) {
		cfg := Config{ParentDirectory: root, FileMapping: map[string]string{"up": ".."}}
		_, err := cfg.translate(root, "up/secret")
		assert.ErrorIs(t, err, fsproc.ErrInvalidPath)
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{ParentDirectory: "/data", FileMapping: map[string]string{"a": "b"}}, false},
		{"missing parent", Config{}, true},
		{"blank parent", Config{ParentDirectory: "  "}, true},
		{"multi segment key", Config{ParentDirectory: "/data", FileMapping: map[string]string{"a/b": "c"}}, true},
		{"empty target", Config{ParentDirectory: "/data", FileMapping: map[string]string{"a": ""}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, fsproc.ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_IsArchive(t *testing.T) {
	assert.True(t, Config{ParentDirectory: "bundle.zip"}.IsArchive())
	assert.True(t, Config{ParentDirectory: "/tmp/BUNDLE.ZIP"}.IsArchive())
	assert.False(t, Config{ParentDirectory: "/tmp/zip"}.IsArchive())
}
