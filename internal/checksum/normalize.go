package checksum

import "golang.org/x/text/transform"

// lineEndingNormalizer drops the CR of every CRLF pair. A lone CR is kept.
type lineEndingNormalizer struct {
	transform.NopResetter
}

// NewLineEndingNormalizer returns a transformer rewriting CRLF to LF.
func NewLineEndingNormalizer() transform.Transformer {
	return lineEndingNormalizer{}
}

func (lineEndingNormalizer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		b := src[nSrc]
		if b == '\r' {
			if nSrc+1 == len(src) && !atEOF {
				// the next chunk decides
				return nDst, nSrc, transform.ErrShortSrc
			}
			if nSrc+1 < len(src) && src[nSrc+1] == '\n' {
				nSrc++
				continue
			}
		}
		if nDst == len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		dst[nDst] = b
		nDst++
		nSrc++
	}
	return nDst, nSrc, nil
}
