package storage

import (
	"errors"
	"fmt"
)

// ErrNoKey indicates that the passed in key is blank.
var ErrNoKey = errors.New("can't use a blank key")

// ClosedError is returned when a store is used after Close.
type ClosedError struct {
	Backend string
}

func (e *ClosedError) Error() string {
	return fmt.Sprintf("%s store is closed", e.Backend)
}
