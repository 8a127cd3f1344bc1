package driver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataline-io/tap-autopilot/types"
)

// fakeAPI serves a small but complete Autopilot account
func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/contacts/custom_fields", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"custom_fields": [
			{"name": "Plan", "fieldType": "text"},
			{"name": "Seats", "fieldType": "number"},
			{"fieldType": "text"}
		]}`))
	})
	mux.HandleFunc("/contacts", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"total_contacts": 1, "contacts": [
			{"contact_id": "c1", "updated_at": 1600000000000,
			 "mail_opened": {"msg1": 1600000000000}}
		]}`))
	})
	mux.HandleFunc("/lists", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"lists": [{"list_id": "l1", "title": "Newsletter"}]}`))
	})
	mux.HandleFunc("/smart_segments", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"segments": [{"segment_id": "s1", "title": "Active"}]}`))
	})
	mux.HandleFunc("/smart_segments/s1/contacts", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"contacts": [{"contact_id": "c1"}, {"contact_id": "c2"}]}`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server
}

func setupDriver(t *testing.T, serverURL string) *Autopilot {
	t.Helper()

	source := &Autopilot{}
	config := source.GetConfigRef().(*Config)
	config.APIKey = "test-key"
	config.StartDate = "2020-01-01"
	config.BaseURL = serverURL
	require.NoError(t, source.Setup(context.Background()))

	return source
}

func collectRecords(t *testing.T, source *Autopilot, stream string) []map[string]any {
	t.Helper()

	configured := types.NewStream(stream, "").Wrap()
	records := []map[string]any{}
	err := source.Read(context.Background(), configured, func(_ context.Context, record map[string]any) error {
		records = append(records, record)
		return nil
	})
	require.NoError(t, err)

	return records
}

func TestSetupProbesAPI(t *testing.T) {
	source := setupDriver(t, fakeAPI(t).URL)
	assert.Equal(t, "autopilot", source.Type())

	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer broken.Close()

	unreachable := &Autopilot{}
	config := unreachable.GetConfigRef().(*Config)
	config.APIKey = "wrong-key"
	config.StartDate = "2020-01-01"
	config.BaseURL = broken.URL
	assert.ErrorContains(t, unreachable.Setup(context.Background()), "failed to reach the Autopilot API")
}

func TestSetupRejectsInvalidConfig(t *testing.T) {
	source := &Autopilot{}
	config := source.GetConfigRef().(*Config)
	config.APIKey = "test-key"
	assert.ErrorContains(t, source.Setup(context.Background()), "config validation failed")

	config.StartDate = "yesterday"
	assert.ErrorContains(t, source.Setup(context.Background()), "invalid start_date")
}

func TestDiscover(t *testing.T) {
	source := setupDriver(t, fakeAPI(t).URL)

	streams, err := source.Discover(context.Background())
	require.NoError(t, err)
	require.Len(t, streams, 4)

	byName := types.StreamsToMap(streams...)

	contacts := byName["contacts"]
	require.NotNil(t, contacts)
	assert.Equal(t, types.INCREMENTAL, contacts.SyncMode)
	assert.Equal(t, "updated_at", contacts.CursorField)
	assert.Equal(t, []string{"contact_id"}, contacts.SourceDefinedPrimaryKey.Array())
	assert.True(t, contacts.SupportedSyncModes.Exists(types.FULLREFRESH))
	assert.True(t, contacts.SupportedSyncModes.Exists(types.INCREMENTAL))

	// account custom fields land in the contacts schema as nullable props
	properties := contacts.Schema["properties"].(map[string]any)
	assert.Equal(t, map[string]any{"type": []any{"null", "string"}}, properties["Plan"])
	assert.Equal(t, map[string]any{"type": []any{"null", "number"}}, properties["Seats"])

	segmentContacts := byName["smart_segments_contacts"]
	require.NotNil(t, segmentContacts)
	assert.Equal(t, types.FULLREFRESH, segmentContacts.SyncMode)
	assert.Equal(t, []string{"segment_id", "contact_id"}, segmentContacts.SourceDefinedPrimaryKey.Array())

	assert.Equal(t, types.FULLREFRESH, byName["lists"].SyncMode)
	assert.Equal(t, types.FULLREFRESH, byName["smart_segments"].SyncMode)
}

func TestReadContactsTransforms(t *testing.T) {
	source := setupDriver(t, fakeAPI(t).URL)

	records := collectRecords(t, source, "contacts")
	require.Len(t, records, 1)
	assert.Equal(t, "c1", records[0]["contact_id"])
	assert.Equal(t, []map[string]any{
		{"id": "msg1", "timestamp": "2020-09-13T12:26:40.000000Z"},
	}, records[0]["mail_opened"])
}

func TestReadLists(t *testing.T) {
	source := setupDriver(t, fakeAPI(t).URL)

	records := collectRecords(t, source, "lists")
	require.Len(t, records, 1)
	assert.Equal(t, "Newsletter", records[0]["title"])
}

func TestReadSegmentContacts(t *testing.T) {
	source := setupDriver(t, fakeAPI(t).URL)

	records := collectRecords(t, source, "smart_segments_contacts")
	require.Len(t, records, 2)
	assert.Equal(t, map[string]any{"segment_id": "s1", "contact_id": "c1"}, records[0])
	assert.Equal(t, map[string]any{"segment_id": "s1", "contact_id": "c2"}, records[1])
}

func TestReadUnknownStream(t *testing.T) {
	source := setupDriver(t, fakeAPI(t).URL)

	configured := types.NewStream("bogus", "").Wrap()
	err := source.Read(context.Background(), configured, func(_ context.Context, _ map[string]any) error {
		return nil
	})
	assert.ErrorContains(t, err, `unknown stream "bogus"`)
}

func TestSpecCoversRequiredFields(t *testing.T) {
	source := &Autopilot{}
	spec := source.Spec()

	assert.ElementsMatch(t, []string{"api_key", "start_date"}, spec["required"])
	properties := spec["properties"].(map[string]any)
	for _, field := range []string{"api_key", "start_date", "user_agent", "base_url"} {
		assert.Contains(t, properties, field)
	}
}
