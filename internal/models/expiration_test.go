package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExpiration(t *testing.T) {
	exp := ParseExpiration("2026-12-31")
	assert.True(t, exp.Known)
	assert.Equal(t, 2026, exp.Date.Year())
	assert.Equal(t, time.December, exp.Date.Month())

	exp = ParseExpiration("12/31/2026")
	assert.True(t, exp.Known)
	assert.Equal(t, 31, exp.Date.Day())
}

func TestParseExpirationUnknown(t *testing.T) {
	for _, raw := range []string{"", "TBD", "tbd", "  TBD  ", "pending renewal"} {
		exp := ParseExpiration(raw)
		assert.False(t, exp.Known, "raw=%q", raw)
	}

	// Raw value survives for display
	exp := ParseExpiration("pending renewal")
	assert.Equal(t, "pending renewal", exp.Raw)
	assert.Equal(t, "pending renewal", exp.String())
}

func TestExpirationString(t *testing.T) {
	assert.Equal(t, "TBD", Expiration{}.String())
	assert.Equal(t, "2027-06-30", KnownExpiration(time.Date(2027, 6, 30, 0, 0, 0, 0, time.UTC)).String())
}

func TestExpirationDaysUntil(t *testing.T) {
	today := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	days, known := KnownExpiration(today.AddDate(0, 0, 30)).DaysUntil(today)
	require.True(t, known)
	assert.Equal(t, 30, days)

	days, known = KnownExpiration(today.AddDate(0, 0, -10)).DaysUntil(today)
	require.True(t, known)
	assert.Equal(t, -10, days)

	_, known = ParseExpiration("TBD").DaysUntil(today)
	assert.False(t, known)
}

func TestExpirationJSONRoundTrip(t *testing.T) {
	exp := ParseExpiration("2026-12-31")
	data, err := json.Marshal(exp)
	require.NoError(t, err)
	assert.Equal(t, `"2026-12-31"`, string(data))

	var decoded Expiration
	require.NoError(t, json.Unmarshal([]byte(`"TBD"`), &decoded))
	assert.False(t, decoded.Known)
	assert.Equal(t, "TBD", decoded.String())
}
