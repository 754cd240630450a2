package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	ten := time.Date(2021, 6, 1, 10, 0, 0, 0, time.UTC)
	cases := map[string]time.Time{
		`"2021-06-01T10:00:00Z"`:       ten,
		`"2021-06-01T12:00:00+02:00"`:  ten,
		`"2021-06-01 10:00:00"`:        ten,
		`"2021-06-01 10:00:00.250000"`: ten.Add(250 * time.Millisecond),
	}
	for raw, want := range cases {
		var ts Timestamp
		require.NoError(t, json.Unmarshal([]byte(raw), &ts), raw)
		assert.True(t, want.Equal(ts.Time), "%s parsed as %s", raw, ts.Time)
	}
}

func TestTimestamp_Epoch(t *testing.T) {
	ten := time.Date(2021, 6, 1, 10, 0, 0, 0, time.UTC)
	cases := map[string]time.Time{
		`1622541600`:    ten,
		`1622541600.5`:  ten.Add(500 * time.Millisecond),
		`1622541600000`: ten,
		`12`:            time.Unix(12, 0).UTC(),
	}
	for raw, want := range cases {
		var ts Timestamp
		require.NoError(t, json.Unmarshal([]byte(raw), &ts), raw)
		assert.True(t, want.Equal(ts.Time), "%s parsed as %s", raw, ts.Time)
	}
}

func TestTimestamp_Rejects(t *testing.T) {
	//ambiguous day/month orders and digit strings are not guessed
	for _, raw := range []string{`"06/01/2021"`, `"01.06.2021"`, `"1622541600"`, `"June 1 2021"`, `"not a date"`, `{}`, `true`} {
		var ts Timestamp
		assert.Error(t, json.Unmarshal([]byte(raw), &ts), raw)
	}
}

func TestTimestamp_NullLeavesPointerNil(t *testing.T) {
	var in ProjectInput
	require.NoError(t, json.Unmarshal([]byte(`{"date_range_from": null}`), &in))
	assert.Nil(t, in.DateRangeFrom)
}
