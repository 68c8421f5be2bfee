// Package ident hands out identifiers for tasks and categories.
package ident

import (
	"strconv"

	"github.com/google/uuid"
)

// Generator produces a new unique identifier
type Generator func() string

// New returns a random UUID (v4)
func New() string {
	return uuid.New().String()
}

// Sequence returns a deterministic generator ("prefix-1", "prefix-2", ...)
// for tests and fixtures. Not safe for concurrent use.
func Sequence(prefix string) Generator {
	n := 0
	return func() string {
		n++
		return prefix + "-" + strconv.Itoa(n)
	}
}
