package retry

import (
	"errors"
	"io/fs"
	"os"
	"syscall"

	"github.com/vvka-141/fsproc/pkg/fsproc"
)

// FilesystemErrorClassifier treats errno values that network and removable
// filesystems return while recovering as transient. Missing files and
// permission errors are fatal.
type FilesystemErrorClassifier struct{}

var _ fsproc.ErrorClassifier = (*FilesystemErrorClassifier)(nil)

func NewFilesystemErrorClassifier() *FilesystemErrorClassifier {
	return &FilesystemErrorClassifier{}
}

var transientErrnos = []syscall.Errno{
	syscall.EAGAIN,
	syscall.EINTR,
	syscall.EBUSY,
	syscall.ETIMEDOUT,
	syscall.ESTALE,
	syscall.EIO,
}

func (c *FilesystemErrorClassifier) IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) || errors.Is(err, fs.ErrInvalid) {
		return false
	}
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	for _, errno := range transientErrnos {
		if errors.Is(err, errno) {
			return true
		}
	}
	return false
}
