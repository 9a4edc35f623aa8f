// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The content store (CorpusService) owns the served snapshot; search and
// background refresh go through it. The link checker reads pages from the
// corpus source directly.
package services
