package resolver

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/vvka-141/fsproc/internal/files/filesystem"
	"github.com/vvka-141/fsproc/pkg/fsproc"
)

// Options tunes resolution.
type Options struct {
	// ExceptionIfFileNotFound turns an empty match into fsproc.ErrFileNotFound.
	ExceptionIfFileNotFound bool
}

// Resolver resolves locations against one filesystem provider.
// Resolver is safe for concurrent use if the provider is.
type Resolver struct {
	fsProvider filesystem.FileSystemProvider
	opts       Options
}

// NewResolver creates a resolver with default options.
// Panics if fsProvider is nil.
func NewResolver(fsProvider filesystem.FileSystemProvider) *Resolver {
	return NewResolverWithOptions(fsProvider, Options{})
}

// NewResolverWithOptions creates a resolver with explicit options.
// Panics if fsProvider is nil.
func NewResolverWithOptions(fsProvider filesystem.FileSystemProvider, opts Options) *Resolver {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Resolver{fsProvider: fsProvider, opts: opts}
}

// Resolve returns the files designated by location, in the order the
// provider lists them. No file content is read.
func (r *Resolver) Resolve(location string) ([]fsproc.FileHandle, error) {
	files, err := r.resolve(location)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 && r.opts.ExceptionIfFileNotFound {
		return nil, fmt.Errorf("%s: %w", location, fsproc.ErrFileNotFound)
	}
	return files, nil
}

func (r *Resolver) resolve(location string) ([]fsproc.FileHandle, error) {
	info, err := r.fsProvider.Stat(location)
	switch {
	case err == nil && info.IsDir():
		return r.listDirectory(location, nil)
	case err == nil:
		file, err := r.fsProvider.File(location)
		if err != nil {
			return nil, fmt.Errorf("failed to access %s: %w", location, err)
		}
		return []fsproc.FileHandle{newHandle(file)}, nil
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("failed to access %s: %w", location, err)
	}

	pattern := filepath.Base(location)
	if !hasWildcard(pattern) {
		return nil, nil
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("%q: %w", pattern, fsproc.ErrInvalidPattern)
	}

	return r.listDirectory(filepath.Dir(location), func(name string) bool {
		matched, _ := filepath.Match(pattern, name)
		return matched
	})
}

// listDirectory returns the regular files of dir accepted by match (all when nil).
// A missing directory yields no files.
func (r *Resolver) listDirectory(dir string, match func(name string) bool) ([]fsproc.FileHandle, error) {
	entries, err := r.fsProvider.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	files := make([]fsproc.FileHandle, 0, len(entries))
	for _, entry := range entries {
		info := entry.Info()
		if !info.Mode().IsRegular() {
			continue
		}
		if match != nil && !match(info.Name()) {
			continue
		}
		files = append(files, newHandle(entry))
	}
	return files, nil
}

func hasWildcard(name string) bool {
	return strings.ContainsAny(name, "*?[")
}

// fileHandle adapts a filesystem.File to fsproc.FileHandle.
type fileHandle struct {
	file filesystem.File
}

func newHandle(file filesystem.File) *fileHandle {
	return &fileHandle{file: file}
}

func (h *fileHandle) Name() string                 { return h.file.Info().Name() }
func (h *fileHandle) Length() int64                { return h.file.Info().Size() }
func (h *fileHandle) Open() (io.ReadCloser, error) { return h.file.Open() }

// Path returns the provider path of the file.
func (h *fileHandle) Path() string { return h.file.Path() }

var _ fsproc.FileHandle = (*fileHandle)(nil)
