// Package catalog holds procedure declarations made through
// fsproc.MetadataSink and renders them for inspection.
//
// A Registry is filled by a connector's GetConnectorMetadata and is then
// read-only in practice: Lookup answers dispatch questions, Validate checks
// the declarations are well formed, and WriteYAML/WriteJSON back the
// "fsproc metadata" command.
package catalog
