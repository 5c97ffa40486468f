// Package checksum computes SHA-256 digests of large-object content without
// buffering it.
//
// Raw digests hash the bytes exactly as the large object yields them: file
// bytes for blobs, UTF-8 text for clobs. Normalized digests additionally
// fold CRLF line endings into LF so that the same text checked out on
// different platforms hashes the same.
//
//	sum, err := checksum.New().Object(row.Content)
//	fmt.Println(sum.Hex, sum.Bytes)
package checksum
