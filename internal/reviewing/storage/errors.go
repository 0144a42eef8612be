package storage

import "fmt"

// MalformedError means the stored payload isn't a list of reviews at all.
type MalformedError struct {
	Key string
	Err error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("reviews stored under %q are malformed: %s", e.Key, e.Err)
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}
