package common

import (
	"regexp"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// millisecondTimestampRegexp matches a timestamp expressed as milliseconds
// since the epoch.
var millisecondTimestampRegexp = regexp.MustCompile(`^\d+$`)

// FormatTimestamp formats a timestamp as milliseconds since the epoch, which
// is the representation used on the wire.
func FormatTimestamp(timestamp time.Time) string {
	return strconv.FormatInt(timestamp.UnixNano()/int64(time.Millisecond), 10)
}

// FixTimestamp normalizes a timestamp from an event request. Producers send
// timestamps either as milliseconds since the epoch or in RFC 3339 format;
// the former is passed through unchanged and the latter is converted. An
// empty timestamp remains empty.
func FixTimestamp(timestamp string) (string, error) {
	if timestamp == "" {
		return "", nil
	}
	if millisecondTimestampRegexp.MatchString(timestamp) {
		return timestamp, nil
	}

	parsed, err := time.Parse(time.RFC3339Nano, timestamp)
	if err != nil {
		return "", errors.Wrapf(err, "unable to parse timestamp `%s`", timestamp)
	}
	return FormatTimestamp(parsed), nil
}

// ParseTimestamp converts a normalized millisecond timestamp back to a
// time.Time.
func ParseTimestamp(timestamp string) (time.Time, error) {
	millis, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "unable to parse timestamp `%s`", timestamp)
	}
	return time.Unix(millis/1000, (millis%1000)*int64(time.Millisecond)), nil
}
