package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/vvka-141/fsproc/pkg/fsproc"
	"golang.org/x/text/transform"
)

// Sum is the digest of one stream.
type Sum struct {
	Hex   string
	Bytes int64
}

// Calculator computes content checksums.
type Calculator interface {
	// CalculateRaw hashes an in-memory value.
	CalculateRaw(content []byte) string

	// Reader hashes everything r yields.
	Reader(r io.Reader) (Sum, error)

	// Object opens lo, hashes its stream and closes it.
	Object(lo fsproc.LargeObject) (Sum, error)
}

// SHA256 is a Calculator, safe for concurrent use. The normalized variant
// hashes CRLF line endings as LF.
type SHA256 struct {
	normalize bool
}

var _ Calculator = SHA256{}

// New returns a calculator over raw content.
func New() SHA256 {
	return SHA256{}
}

// NewNormalized returns a calculator that treats CRLF and LF as equal.
func NewNormalized() SHA256 {
	return SHA256{normalize: true}
}

func (c SHA256) CalculateRaw(content []byte) string {
	if c.normalize {
		content, _, _ = transform.Bytes(NewLineEndingNormalizer(), content)
	}
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

func (c SHA256) Reader(r io.Reader) (Sum, error) {
	if c.normalize {
		r = transform.NewReader(r, NewLineEndingNormalizer())
	}

	h := sha256.New()
	n, err := io.Copy(h, r)
	if err != nil {
		return Sum{}, err
	}
	return Sum{Hex: hex.EncodeToString(h.Sum(nil)), Bytes: n}, nil
}

func (c SHA256) Object(lo fsproc.LargeObject) (Sum, error) {
	rc, err := lo.Open()
	if err != nil {
		return Sum{}, err
	}
	defer rc.Close()

	sum, err := c.Reader(rc)
	if err != nil {
		return Sum{}, fmt.Errorf("failed to hash %s content: %w", lo.Kind(), err)
	}
	return sum, nil
}
