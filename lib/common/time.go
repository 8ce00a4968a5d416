package common

import "time"

const (
	TIMEFORMAT_ISO8601 string = "2006-01-02T15:04:05.000000000Z07:00"
)

func FormatISO8601(t time.Time) string {
	return t.Format(TIMEFORMAT_ISO8601)
}

func NowISO8601() string {
	return FormatISO8601(time.Now())
}

func ParseISO8601(s string) (time.Time, error) {
	return time.Parse(TIMEFORMAT_ISO8601, s)
}

// Clock returns the current time of the ledger. Tests and the node replace
// it to pin the time or to apply an offset.
type Clock func() time.Time

var DefaultClock Clock = time.Now

// NewFixedClock always returns `t`.
func NewFixedClock(t time.Time) Clock {
	return func() time.Time {
		return t
	}
}

// NewOffsetClock returns the local time shifted by `offset`.
func NewOffsetClock(offset time.Duration) Clock {
	return func() time.Time {
		return time.Now().Add(offset)
	}
}
