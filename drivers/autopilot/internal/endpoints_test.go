package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceURL(t *testing.T) {
	base := "https://api2.autopilothq.com/v1"

	cases := []struct {
		resource  Resource
		segmentID string
		expected  string
	}{
		{ResourceContacts, "", base + "/contacts"},
		{ResourceCustomFields, "", base + "/contacts/custom_fields"},
		{ResourceLists, "", base + "/lists"},
		{ResourceSmartSegments, "", base + "/smart_segments"},
		{ResourceSegmentContacts, "s1", base + "/smart_segments/s1/contacts"},
	}

	for _, c := range cases {
		url, err := resourceURL(base, c.resource, c.segmentID)
		require.NoError(t, err)
		assert.Equal(t, c.expected, url)
	}
}

func TestResourceURLFailsFast(t *testing.T) {
	_, err := resourceURL("https://example.com", Resource("unknown"), "")
	assert.ErrorContains(t, err, `invalid endpoint "unknown"`)

	_, err = resourceURL("https://example.com", ResourceSegmentContacts, "")
	assert.ErrorContains(t, err, "requires a segment id")
}
