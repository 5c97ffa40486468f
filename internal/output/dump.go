package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vvka-141/fsproc/pkg/fsproc"
)

// DirectoryDump copies each row's content to a file of the same name.
type DirectoryDump struct {
	dir     string
	written []string
	bytes   int64
}

// NewDirectoryDump creates dir if needed.
func NewDirectoryDump(dir string) (*DirectoryDump, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return &DirectoryDump{dir: dir}, nil
}

// Add streams the row into <dir>/<name>. Names that are not a single path
// element are rejected.
func (d *DirectoryDump) Add(row *fsproc.Row) error {
	name := row.Name
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: cannot write row named %q", fsproc.ErrInvalidPath, name)
	}

	rc, err := row.Content.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	dest := filepath.Join(d.dir, name)
	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}

	n, err := io.Copy(f, rc)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}

	d.written = append(d.written, dest)
	d.bytes += n
	return nil
}

// Written returns the paths created so far.
func (d *DirectoryDump) Written() []string { return d.written }

// Bytes returns the number of bytes written so far.
func (d *DirectoryDump) Bytes() int64 { return d.bytes }
