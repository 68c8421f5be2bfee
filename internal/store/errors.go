package store

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrUnknownCategory = errors.New("category does not exist")
	ErrAmbiguousID     = errors.New("ambiguous id prefix")
)

// NotFoundError reports a lookup of an absent task or category
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

// Unwrap returns ErrNotFound.
func (e *NotFoundError) Unwrap() error { return ErrNotFound }

func notFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// minPrefix is the shortest id prefix Resolve accepts
const minPrefix = 4

// resolve finds the single id in ids that equals or starts with prefix
func resolve(entity string, ids []string, prefix string) (string, error) {
	match := ""
	for _, id := range ids {
		if id == prefix {
			return id, nil
		}
		if len(prefix) >= minPrefix && len(id) > len(prefix) && id[:len(prefix)] == prefix {
			if match != "" {
				return "", fmt.Errorf("%w: %s matches more than one %s", ErrAmbiguousID, prefix, entity)
			}
			match = id
		}
	}
	if match == "" {
		return "", notFound(entity, prefix)
	}
	return match, nil
}
