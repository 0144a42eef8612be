package a

import (
	"time"

	"github.com/google/uuid"
)

// UUID returns a new random UUID.
func UUID() uuid.UUID {
	return uuid.Must(uuid.NewV7())
}

// Timestamp is a fixed point in time with millisecond precision, the precision reviews are stored with.
func Timestamp() time.Time {
	ts, err := time.Parse(time.RFC3339Nano, "2024-12-17T18:50:02.132Z")
	if err != nil {
		panic("failed to parse example timestamp: " + err.Error())
	}

	return ts
}
