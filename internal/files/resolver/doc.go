// Package resolver turns a location argument into the ordered list of files
// a file procedure streams.
//
// A location is resolved as follows:
//   - an existing directory yields its regular files in listing order
//   - an existing regular file yields itself
//   - a last path segment containing wildcards (*, ?, [...]) yields the
//     regular files of the parent directory whose names match
//   - anything else yields no files
//
// The resolver is filesystem-agnostic through filesystem.FileSystemProvider.
package resolver
