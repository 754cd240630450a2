package model

import (
	"encoding/json"
	"math"
	"regexp"
	"time"

	"github.com/araddon/dateparse"
	"github.com/pkg/errors"
)

//isoDate guards dateparse so slash dates and digit strings are never guessed at
var isoDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}([T ]|$)`)

//numbers above this are unix milliseconds rather than seconds
const unixMillisThreshold = 2e10

//Timestamp accepts RFC 3339, "2006-01-02 15:04:05.999999" and unix epoch numbers. Values without a zone are UTC.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) *Timestamp {
	return &Timestamp{Time: t}
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var epoch float64
	if err := json.Unmarshal(b, &epoch); err == nil {
		t.Time = fromEpoch(epoch)
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return errors.Wrap(err, "timestamp must be a string or a number")
	}
	if !isoDate.MatchString(s) {
		return errors.Errorf("invalid timestamp %q, expected YYYY-MM-DD[THH:MM:SS]", s)
	}
	parsed, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return errors.Wrapf(err, "invalid timestamp %q", s)
	}
	t.Time = parsed
	return nil
}

func fromEpoch(v float64) time.Time {
	if math.Abs(v) > unixMillisThreshold {
		v /= 1000
	}
	sec, frac := math.Modf(v)
	return time.Unix(int64(sec), int64(math.Round(frac*1e9))).UTC()
}
