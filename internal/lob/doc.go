// Package lob provides the large-object values produced by file procedures.
//
// A large object never holds content. It carries a StreamFactory bound to one
// resolved file and opens a fresh stream each time the consumer asks for it:
//   - Blob: raw bytes, length known from the file size
//   - Clob: characters decoded to UTF-8 from the connector's configured encoding,
//     looked up when the stream is opened rather than when the row is built
package lob
