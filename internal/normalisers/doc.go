// Package normalisers provides implementations of the Normaliser interface.
// A normaliser turns a raw corpus file into a domain.Document: metadata,
// outline and derived attributes such as reading time.
package normalisers
