package filesystem

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory files
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.isDir }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

type memoryEntry struct {
	content []byte
	info    *memoryFileInfo
}

// memoryFile implements File for the in-memory filesystem.
// Open looks the path up again, so removing the entry after the File was
// handed out makes later opens fail.
type memoryFile struct {
	absPath string
	info    fs.FileInfo
	fs      *MemoryFileSystem
}

func (f *memoryFile) Path() string   { return f.absPath }
func (f *memoryFile) Info() FileInfo { return f.info }

func (f *memoryFile) Open() (io.ReadCloser, error) {
	return f.fs.Open(f.absPath)
}

// MemoryFileSystem implements FileSystemProvider for in-memory testing.
// Safe for concurrent use.
type MemoryFileSystem struct {
	mu      sync.RWMutex
	entries map[string]*memoryEntry // absolute path -> entry
	opens   map[string]int          // absolute path -> successful Open calls
	root    string
}

// NewMemoryFileSystem creates a new in-memory filesystem.
// The root path is normalized to use forward slashes for virtual filesystem consistency.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	root = path.Clean(filepath.ToSlash(root))

	mfs := &MemoryFileSystem{
		entries: make(map[string]*memoryEntry),
		opens:   make(map[string]int),
		root:    root,
	}
	mfs.entries[root] = newDirEntry(root)

	return mfs
}

// Root returns the normalized root directory.
func (mfs *MemoryFileSystem) Root() string { return mfs.root }

// AddFile adds a file to the in-memory filesystem
func (mfs *MemoryFileSystem) AddFile(path string, content string) {
	mfs.AddFileWithTime(path, content, time.Now())
}

// AddFileWithTime adds a file with a specific modification time
func (mfs *MemoryFileSystem) AddFileWithTime(filePath string, content string, modTime time.Time) {
	absPath := mfs.absolute(filePath)
	contentBytes := []byte(content)

	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	mfs.entries[absPath] = &memoryEntry{
		content: contentBytes,
		info: &memoryFileInfo{
			name:    path.Base(absPath),
			size:    int64(len(contentBytes)),
			mode:    0644,
			modTime: modTime,
		},
	}
	mfs.ensureDirectoriesExist(absPath)
}

// AddDir adds an empty directory.
func (mfs *MemoryFileSystem) AddDir(dirPath string) {
	absPath := mfs.absolute(dirPath)

	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	if _, exists := mfs.entries[absPath]; !exists {
		mfs.entries[absPath] = newDirEntry(absPath)
	}
	mfs.ensureDirectoriesExist(absPath)
}

// Remove deletes a file or directory entry (not its children).
func (mfs *MemoryFileSystem) Remove(filePath string) {
	absPath := mfs.absolute(filePath)

	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	delete(mfs.entries, absPath)
}

// OpenCount reports how many times the file at filePath was opened.
func (mfs *MemoryFileSystem) OpenCount(filePath string) int {
	absPath := mfs.absolute(filePath)

	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	return mfs.opens[absPath]
}

// TotalOpenCount reports how many file opens happened in total.
func (mfs *MemoryFileSystem) TotalOpenCount() int {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	total := 0
	for _, n := range mfs.opens {
		total += n
	}
	return total
}

func newDirEntry(absPath string) *memoryEntry {
	return &memoryEntry{
		info: &memoryFileInfo{
			name:    path.Base(absPath),
			mode:    0755 | fs.ModeDir,
			modTime: time.Now(),
			isDir:   true,
		},
	}
}

// absolute maps a path into the virtual namespace: forward slashes, cleaned,
// relative paths anchored at the root.
func (mfs *MemoryFileSystem) absolute(p string) string {
	p = filepath.ToSlash(p)
	if p == "" || p == "." {
		return mfs.root
	}
	if !path.IsAbs(p) {
		p = path.Join(mfs.root, p)
	}
	return path.Clean(p)
}

// ensureDirectoriesExist creates directory entries for all parent directories.
// Caller holds the write lock.
func (mfs *MemoryFileSystem) ensureDirectoriesExist(filePath string) {
	dir := path.Dir(filePath)
	if dir == filePath {
		return
	}
	if _, exists := mfs.entries[dir]; !exists {
		mfs.entries[dir] = newDirEntry(dir)
	}
	if dir == "/" || dir == "." || dir == mfs.root {
		return
	}
	mfs.ensureDirectoriesExist(dir)
}

func notExist(op, p string) error {
	return &fs.PathError{Op: op, Path: p, Err: fs.ErrNotExist}
}

// Stat implements FileSystemProvider.Stat
func (mfs *MemoryFileSystem) Stat(statPath string) (FileInfo, error) {
	absPath := mfs.absolute(statPath)

	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	entry, exists := mfs.entries[absPath]
	if !exists {
		return nil, notExist("stat", statPath)
	}
	return entry.info, nil
}

// File implements FileSystemProvider.File
func (mfs *MemoryFileSystem) File(filePath string) (File, error) {
	absPath := mfs.absolute(filePath)

	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	entry, exists := mfs.entries[absPath]
	if !exists {
		return nil, notExist("stat", filePath)
	}
	if entry.info.isDir {
		return nil, &fs.PathError{Op: "open", Path: filePath, Err: errIsDirectory}
	}
	return &memoryFile{absPath: absPath, info: entry.info, fs: mfs}, nil
}

// ReadDir implements FileSystemProvider.ReadDir
func (mfs *MemoryFileSystem) ReadDir(dirPath string) ([]File, error) {
	absPath := mfs.absolute(dirPath)

	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	entry, exists := mfs.entries[absPath]
	if !exists {
		return nil, notExist("readdir", dirPath)
	}
	if !entry.info.isDir {
		return nil, &fs.PathError{Op: "readdir", Path: dirPath, Err: errNotDirectory}
	}

	var files []File
	for p, e := range mfs.entries {
		if p == absPath || path.Dir(p) != absPath {
			continue
		}
		files = append(files, &memoryFile{absPath: p, info: e.info, fs: mfs})
	}

	// Sort by name for deterministic order, matching os.ReadDir
	sort.Slice(files, func(i, j int) bool {
		return files[i].Info().Name() < files[j].Info().Name()
	})

	return files, nil
}

// Open implements FileSystemProvider.Open
func (mfs *MemoryFileSystem) Open(filePath string) (io.ReadCloser, error) {
	absPath := mfs.absolute(filePath)

	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	entry, exists := mfs.entries[absPath]
	if !exists {
		return nil, notExist("open", filePath)
	}
	if entry.info.isDir {
		return nil, &fs.PathError{Op: "open", Path: filePath, Err: errIsDirectory}
	}

	mfs.opens[absPath]++
	return io.NopCloser(bytes.NewReader(entry.content)), nil
}

var (
	errIsDirectory  = errors.New("is a directory")
	errNotDirectory = errors.New("not a directory")
)

var _ FileSystemProvider = (*MemoryFileSystem)(nil)
