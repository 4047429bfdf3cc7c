package entities

import (
	"encoding/json"
	"fmt"
	"time"
)

// Date is a request-side timestamp that also accepts a bare calendar date,
// which is what HTML date inputs submit ("2024-01-15"). Dates are read as UTC midnight.
type Date struct {
	time.Time
}

var dateLayouts = []string{time.RFC3339Nano, time.DateOnly}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if raw == "" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			d.Time = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("invalid date %q: want YYYY-MM-DD or RFC3339", raw)
}

// Ptr returns the time, or nil when d is nil or empty.
func (d *Date) Ptr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}
