package utils

import (
	"strconv"
	"strings"
	"time"
)

const (
	// NeverDate is shown for a zero timestamp.
	NeverDate = "Never"
	// InvalidDate is shown for input that is not a usable Unix timestamp.
	InvalidDate = "Invalid Date"

	dateLayout = "Mon Jan 02 2006"

	// maxUnixSeconds mirrors the upper bound of the ECMAScript time value range (8.64e15 ms).
	maxUnixSeconds = 8_640_000_000_000
)

// TimestampToDate converts Unix seconds into a calendar date string in UTC.
// Example: raw="1751007012" => "Fri Jun 27 2025"
func TimestampToDate(raw string) string {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return InvalidDate
	}
	return FormatUnixDate(n)
}

// FormatUnixDate is TimestampToDate for an already parsed value. Contract timestamps are unsigned,
// so a negative value is reported as invalid.
func FormatUnixDate(seconds int64) string {
	if seconds == 0 {
		return NeverDate
	}
	if seconds < 0 || seconds > maxUnixSeconds {
		return InvalidDate
	}
	return time.Unix(seconds, 0).UTC().Format(dateLayout)
}
