package lob

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"

	"github.com/vvka-141/fsproc/pkg/fsproc"
)

var errUnsupported = fsproc.ErrUnsupportedEncoding

// EncodingSource reports the encoding name to use at the moment a character
// stream is opened.
type EncodingSource func() string

// StaticEncoding returns an EncodingSource that always reports name.
func StaticEncoding(name string) EncodingSource {
	return func() string { return name }
}

// LookupEncoding resolves an encoding by its IANA name (e.g. "UTF-8",
// "ISO-8859-1", "windows-1252"), falling back to WHATWG labels.
func LookupEncoding(name string) (encoding.Encoding, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("empty encoding name: %w", errUnsupported)
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err == nil && enc != nil {
		return enc, nil
	}

	enc, err = htmlindex.Get(name)
	if err == nil && enc != nil {
		return enc, nil
	}

	return nil, fmt.Errorf("%q: %w", name, errUnsupported)
}
