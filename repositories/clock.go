package repositories

import (
	"time"

	"github.com/google/uuid"
)

func newID() string {
	return uuid.NewString()
}

// now is truncated to microseconds so timestamps survive a Postgres round trip unchanged.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// nextStamp returns a timestamp strictly after prev.
func nextStamp(prev time.Time) time.Time {
	t := now()
	if !t.After(prev) {
		t = prev.Add(time.Microsecond)
	}
	return t
}
