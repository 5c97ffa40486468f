package checksum

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/fsproc/internal/lob"
	"github.com/vvka-141/fsproc/pkg/fsproc"
	"golang.org/x/text/transform"
)

const (
	sumEmpty = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	sumABC   = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
)

type memHandle struct {
	name    string
	content string
	err     error
}

func (h memHandle) Name() string  { return h.name }
func (h memHandle) Length() int64 { return int64(len(h.content)) }
func (h memHandle) Open() (io.ReadCloser, error) {
	if h.err != nil {
		return nil, h.err
	}
	return io.NopCloser(strings.NewReader(h.content)), nil
}

func TestSHA256_CalculateRaw(t *testing.T) {
	c := New()
	assert.Equal(t, sumEmpty, c.CalculateRaw(nil))
	assert.Equal(t, sumABC, c.CalculateRaw([]byte("abc")))
}

func TestSHA256_Reader(t *testing.T) {
	sum, err := New().Reader(strings.NewReader("abc"))
	require.NoError(t, err)
	assert.Equal(t, Sum{Hex: sumABC, Bytes: 3}, sum)
}

func TestSHA256_ReaderError(t *testing.T) {
	boom := errors.New("boom")
	_, err := New().Reader(iotest.ErrReader(boom))
	assert.ErrorIs(t, err, boom)
}

func TestSHA256_Object(t *testing.T) {
	blob := lob.NewBlob(lob.NewStreamFactory(memHandle{name: "a.bin", content: "abc"}))

	sum, err := New().Object(blob)
	require.NoError(t, err)
	assert.Equal(t, sumABC, sum.Hex)
	assert.Equal(t, int64(3), sum.Bytes)
}

func TestSHA256_ObjectClobHashesUTF8(t *testing.T) {
	// "é" is one byte in ISO-8859-1 and two in UTF-8
	clob := lob.NewClob(lob.NewStreamFactory(memHandle{name: "a.txt", content: "\xe9"}), lob.StaticEncoding("ISO-8859-1"))

	sum, err := New().Object(clob)
	require.NoError(t, err)
	assert.Equal(t, New().CalculateRaw([]byte("é")), sum.Hex)
	assert.Equal(t, int64(2), sum.Bytes)
}

func TestSHA256_ObjectOpenError(t *testing.T) {
	blob := lob.NewBlob(lob.NewStreamFactory(memHandle{name: "gone.bin", err: errors.New("vanished")}))

	_, err := New().Object(blob)
	assert.ErrorIs(t, err, fsproc.ErrContentUnavailable)
}

func TestNormalized_TreatsLineEndingsAlike(t *testing.T) {
	c := NewNormalized()
	assert.Equal(t, New().CalculateRaw([]byte("a\nb\n")), c.CalculateRaw([]byte("a\r\nb\r\n")))
	assert.NotEqual(t, New().CalculateRaw([]byte("a\nb")), c.CalculateRaw([]byte("a\rb")))

	unix, err := c.Reader(strings.NewReader("one\ntwo\n"))
	require.NoError(t, err)
	windows, err := c.Reader(iotest.OneByteReader(strings.NewReader("one\r\ntwo\r\n")))
	require.NoError(t, err)
	assert.Equal(t, unix, windows)
}

func TestLineEndingNormalizer(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"plain", "plain"},
		{"a\r\nb", "a\nb"},
		{"a\rb", "a\rb"},
		{"trailing\r", "trailing\r"},
		{"\r\r\n", "\r\n"},
		{"\r\n\r\n", "\n\n"},
	}
	for _, tt := range tests {
		got, _, err := transform.String(NewLineEndingNormalizer(), tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%q", tt.in)

		var buf bytes.Buffer
		_, err = io.Copy(&buf, transform.NewReader(iotest.OneByteReader(strings.NewReader(tt.in)), NewLineEndingNormalizer()))
		require.NoError(t, err)
		assert.Equal(t, tt.want, buf.String(), "one byte at a time: %q", tt.in)
	}
}

func BenchmarkSHA256_Reader(b *testing.B) {
	data := bytes.Repeat([]byte("line of text\r\n"), 4096)
	c := NewNormalized()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.Reader(bytes.NewReader(data)); err != nil {
			b.Fatal(err)
		}
	}
}
