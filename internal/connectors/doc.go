// Package connectors provides implementations of the CorpusSource interface.
// A connector knows how to discover, read and watch the documents of a corpus.
//
// The filesystem connector is the only source: the corpus is a directory tree
// whose first-level subdirectories are categories.
package connectors
