package typeutils

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	cases := []struct {
		input    string
		expected time.Time
	}{
		{"2020-09-13T12:26:40.000000Z", time.Date(2020, 9, 13, 12, 26, 40, 0, time.UTC)},
		{"2020-09-13T12:26:40Z", time.Date(2020, 9, 13, 12, 26, 40, 0, time.UTC)},
		{"2020-09-13T12:26:40", time.Date(2020, 9, 13, 12, 26, 40, 0, time.UTC)},
		{"2020-09-13 12:26:40", time.Date(2020, 9, 13, 12, 26, 40, 0, time.UTC)},
		{"2020-09-13", time.Date(2020, 9, 13, 0, 0, 0, 0, time.UTC)},
	}

	for _, c := range cases {
		parsed, err := ParseTimestamp(c.input)
		require.NoError(t, err, c.input)
		assert.Equal(t, c.expected, parsed, c.input)
	}

	_, err := ParseTimestamp("13/09/2020")
	assert.ErrorContains(t, err, "failed to parse timestamp")
}

func TestUnixMillisToTime(t *testing.T) {
	expected := time.Date(2020, 9, 13, 12, 26, 40, 0, time.UTC)

	for _, value := range []any{
		int64(1600000000000),
		int(1600000000000),
		float64(1600000000000),
		json.Number("1600000000000"),
		"1600000000000",
	} {
		parsed, err := UnixMillisToTime(value)
		require.NoError(t, err)
		assert.Equal(t, expected, parsed)
	}

	_, err := UnixMillisToTime("not-a-number")
	assert.Error(t, err)
	_, err = UnixMillisToTime([]any{})
	assert.ErrorContains(t, err, "unsupported unix millis type")
}

func TestFormatTimestamp(t *testing.T) {
	instant := time.Date(2020, 9, 13, 12, 26, 40, 0, time.UTC)
	assert.Equal(t, "2020-09-13T12:26:40.000000Z", FormatTimestamp(instant))

	// round-trips through the parser
	parsed, err := ParseTimestamp(FormatTimestamp(instant))
	require.NoError(t, err)
	assert.Equal(t, instant, parsed)
}

func TestMaxTime(t *testing.T) {
	earlier := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	later := earlier.Add(time.Second)
	assert.Equal(t, later, MaxTime(earlier, later))
	assert.Equal(t, later, MaxTime(later, earlier))
	assert.Equal(t, later, MaxTime(later, later))
}

func TestTimeUnmarshal(t *testing.T) {
	var parsed Time
	require.NoError(t, json.Unmarshal([]byte(`"2020-09-13T12:26:40Z"`), &parsed))
	assert.Equal(t, time.Date(2020, 9, 13, 12, 26, 40, 0, time.UTC), parsed.Time)

	assert.Error(t, json.Unmarshal([]byte(`"garbage"`), &parsed))
}
