// Package kernel holds the value objects shared by every aggregate of the
// logistics domain. Today that is the UUID identifier and helpers for working
// with lists of identifiers in batch operations.
package kernel
