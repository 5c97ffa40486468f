package filesystem

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"path/filepath"
	"strings"
)

// fsFile implements File over an fs.FS entry
type fsFile struct {
	fsys    fs.FS
	absPath string // path within fsys (always uses forward slashes)
	info    fs.FileInfo
}

func (f *fsFile) Path() string   { return f.absPath }
func (f *fsFile) Info() FileInfo { return f.info }

func (f *fsFile) Open() (io.ReadCloser, error) {
	return f.fsys.Open(f.absPath)
}

// FSProvider implements FileSystemProvider over any io/fs.FS, such as an
// embed.FS, an fstest.MapFS or an opened zip archive.
type FSProvider struct {
	fsys fs.FS
}

// NewFSProvider wraps fsys.
func NewFSProvider(fsys fs.FS) *FSProvider {
	return &FSProvider{fsys: fsys}
}

// fsPath converts a provider path into an fs.FS path: unrooted, slash
// separated, "." for the root.
func fsPath(p string) string {
	p = path.Clean("/" + filepath.ToSlash(p))
	p = strings.TrimPrefix(p, "/")
	if p == "" {
		return "."
	}
	return p
}

func (p *FSProvider) Stat(name string) (FileInfo, error) {
	return fs.Stat(p.fsys, fsPath(name))
}

func (p *FSProvider) File(name string) (File, error) {
	fp := fsPath(name)
	info, err := fs.Stat(p.fsys, fp)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", name)
	}
	return &fsFile{fsys: p.fsys, absPath: fp, info: info}, nil
}

func (p *FSProvider) ReadDir(name string) ([]File, error) {
	dir := fsPath(name)
	entries, err := fs.ReadDir(p.fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	result := make([]File, 0, len(entries))
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to get file info for %s: %w", entry.Name(), err)
		}
		result = append(result, &fsFile{
			fsys:    p.fsys,
			absPath: path.Join(dir, entry.Name()),
			info:    info,
		})
	}
	return result, nil
}

func (p *FSProvider) Open(name string) (io.ReadCloser, error) {
	return p.fsys.Open(fsPath(name))
}

var _ FileSystemProvider = (*FSProvider)(nil)
