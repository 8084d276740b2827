package models

import (
	"encoding/json"
	"strings"
	"time"
)

// Expiration models a lease expiration date that may be unknown.
// GSA prospectuses frequently publish "TBD" instead of a date, so the
// raw value is kept for display even when it cannot be parsed.
type Expiration struct {
	Date  time.Time
	Known bool
	Raw   string
}

var expirationLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"01/02/2006",
}

// ParseExpiration interprets the raw expiration string from a prospectus.
// Empty strings, "TBD" and anything unparseable come back as Unknown.
func ParseExpiration(raw string) Expiration {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.EqualFold(trimmed, "TBD") {
		return Expiration{Raw: trimmed}
	}

	for _, layout := range expirationLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return Expiration{Date: t, Known: true, Raw: trimmed}
		}
	}

	return Expiration{Raw: trimmed}
}

// KnownExpiration builds an Expiration from a concrete date.
func KnownExpiration(t time.Time) Expiration {
	return Expiration{Date: t, Known: true, Raw: t.Format("2006-01-02")}
}

// DaysUntil returns the whole days between today and the expiration.
// The second return value is false when the expiration is unknown.
func (e Expiration) DaysUntil(today time.Time) (int, bool) {
	if !e.Known {
		return 0, false
	}
	return int(e.Date.Sub(today).Hours() / 24), true
}

// String renders the expiration for dashboards: the date when known,
// otherwise the preserved raw value (defaulting to "TBD").
func (e Expiration) String() string {
	if e.Known {
		return e.Date.Format("2006-01-02")
	}
	if e.Raw != "" {
		return e.Raw
	}
	return "TBD"
}

func (e Expiration) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.String())
}

func (e *Expiration) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*e = ParseExpiration(raw)
	return nil
}
