package connection

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vvka-141/fsproc/pkg/fsproc"
)

// Config describes the directory a connection exposes.
type Config struct {
	// ParentDirectory is the root every relative location is resolved against.
	// A path ending in ".zip" exposes the archive contents instead.
	ParentDirectory string

	// FileMapping replaces a location's first segment with another path.
	FileMapping map[string]string

	// AllowParentPaths permits locations outside ParentDirectory.
	AllowParentPaths bool

	// ExceptionIfFileNotFound turns an empty resolution into fsproc.ErrFileNotFound.
	ExceptionIfFileNotFound bool
}

// IsArchive reports whether ParentDirectory names a zip archive.
func (c Config) IsArchive() bool {
	return strings.EqualFold(filepath.Ext(c.ParentDirectory), ".zip")
}

// Validate checks the configuration before a connection is attempted.
func (c Config) Validate() error {
	if strings.TrimSpace(c.ParentDirectory) == "" {
		return fmt.Errorf("%w: parent directory is required", fsproc.ErrInvalidConfig)
	}
	for key, target := range c.FileMapping {
		if key == "" || strings.ContainsAny(key, `/\`) {
			return fmt.Errorf("%w: file mapping key %q must be a single path segment", fsproc.ErrInvalidConfig, key)
		}
		if target == "" {
			return fmt.Errorf("%w: file mapping %q has an empty target", fsproc.ErrInvalidConfig, key)
		}
	}
	return nil
}

// translate maps a caller-supplied location onto a path under root.
func (c Config) translate(root, location string) (string, error) {
	loc := filepath.FromSlash(location)

	if len(c.FileMapping) > 0 && !filepath.IsAbs(loc) {
		first, rest := splitFirst(loc)
		if target, ok := c.FileMapping[first]; ok {
			loc = filepath.Join(filepath.FromSlash(target), rest)
		}
	}

	if !filepath.IsAbs(loc) {
		loc = filepath.Join(root, loc)
	}
	loc = filepath.Clean(loc)

	if !c.AllowParentPaths && !within(root, loc) {
		return "", fmt.Errorf("%w: %s is outside %s", fsproc.ErrInvalidPath, location, root)
	}
	return loc, nil
}

func splitFirst(p string) (string, string) {
	p = strings.TrimLeft(p, string(filepath.Separator))
	if i := strings.IndexRune(p, filepath.Separator); i >= 0 {
		return p[:i], p[i+1:]
	}
	return p, ""
}

func within(root, p string) bool {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
