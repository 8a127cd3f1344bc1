package typeutils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// layout used for every timestamp the tap emits (bookmarks, transformed
// mail-event maps); UTC with microsecond precision.
const timestampLayout = "2006-01-02T15:04:05.000000"

var parseLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	timestampLayout + "Z",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

type Time struct {
	time.Time
}

// UnmarshalJSON overrides the default unmarshalling for Time
func (ct *Time) UnmarshalJSON(b []byte) error {
	str := strings.Trim(string(b), "\"")
	parsed, err := ParseTimestamp(str)
	if err != nil {
		return err
	}

	*ct = Time{parsed}
	return nil
}

// ParseTimestamp parses an ISO-8601 style timestamp string
func ParseTimestamp(str string) (time.Time, error) {
	for _, layout := range parseLayouts {
		if parsed, err := time.Parse(layout, str); err == nil {
			return parsed.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("failed to parse timestamp [%s]", str)
}

// UnixMillisToTime converts an integer-unix-milliseconds value in any of the
// representations JSON decoding produces.
func UnixMillisToTime(value any) (time.Time, error) {
	switch v := value.(type) {
	case int64:
		return time.UnixMilli(v).UTC(), nil
	case int:
		return time.UnixMilli(int64(v)).UTC(), nil
	case float64:
		return time.UnixMilli(int64(v)).UTC(), nil
	case json.Number:
		millis, err := v.Int64()
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse unix millis [%s]: %s", v, err)
		}
		return time.UnixMilli(millis).UTC(), nil
	case string:
		millis, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse unix millis [%s]: %s", v, err)
		}
		return time.UnixMilli(millis).UTC(), nil
	default:
		return time.Time{}, fmt.Errorf("unsupported unix millis type %T", value)
	}
}

// FormatTimestamp renders t the way bookmarks are persisted
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout) + "Z"
}

// MaxTime returns the later of the two instants
func MaxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
