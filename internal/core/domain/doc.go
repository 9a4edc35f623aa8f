// Package domain defines the core business entities for docnav.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: a processed corpus document with metadata and outline
//   - TOCItem: one entry of a document's heading outline
//   - NavigationGroup / NavigationLinks: the per-category navigation graph
//   - RawDocument: bytes read from the corpus before normalisation
//   - BuildReport / ScanWarning: the outcome of a corpus rebuild
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
