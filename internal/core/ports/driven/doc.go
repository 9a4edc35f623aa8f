// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - CorpusSource: discovers and reads corpus files (filesystem)
//   - Normaliser: turns raw files into processed documents (markdown)
//   - SearchIndexBuilder / SearchIndex: fuzzy search over a snapshot
//   - DocumentStore: immutable per-snapshot document table
//   - ConfigStore: application configuration (TOML)
//
// # Optional Interfaces
//
//   - Scorer: replaces the default token scoring of the search index.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
