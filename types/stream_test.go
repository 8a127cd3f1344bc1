package types

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamBuilder(t *testing.T) {
	stream := NewStream("contacts", "").
		WithSchema(map[string]any{"type": "object"}).
		WithPrimaryKey("contact_id").
		WithSyncMode(FULLREFRESH, INCREMENTAL).
		WithCursorField("updated_at")

	assert.Equal(t, "contacts", stream.ID())
	assert.Equal(t, []string{"contact_id"}, stream.SourceDefinedPrimaryKey.Array())
	assert.True(t, stream.SupportedSyncModes.Exists(INCREMENTAL))
	assert.Equal(t, "updated_at", stream.CursorField)

	// the first cursor field wins
	stream.WithCursorField("created_at")
	assert.Equal(t, "updated_at", stream.CursorField)

	namespaced := NewStream("contacts", "crm")
	assert.Equal(t, "crm.contacts", namespaced.ID())
}

func TestConfiguredStreamValidate(t *testing.T) {
	source := NewStream("contacts", "").
		WithSyncMode(FULLREFRESH, INCREMENTAL).
		WithCursorField("updated_at")

	configured := source.Wrap()
	configured.Stream.SyncMode = INCREMENTAL
	configured.Stream.CursorField = "updated_at"
	assert.NoError(t, configured.Validate(source))

	configured.Stream.CursorField = "created_at"
	assert.ErrorContains(t, configured.Validate(source), "invalid cursor field")

	limited := NewStream("lists", "").WithSyncMode(FULLREFRESH)
	badMode := limited.Wrap()
	badMode.Stream.SyncMode = INCREMENTAL
	assert.ErrorContains(t, badMode.Validate(limited), "invalid sync mode")
}

func TestSetOrderAndSerialization(t *testing.T) {
	set := NewSet("segment_id", "contact_id", "segment_id")
	assert.Equal(t, 2, set.Len())
	assert.Equal(t, []string{"segment_id", "contact_id"}, set.Array())

	data, err := json.Marshal(set)
	require.NoError(t, err)
	assert.Equal(t, `["segment_id","contact_id"]`, string(data))

	restored := NewSet[string]()
	require.NoError(t, json.Unmarshal(data, restored))
	assert.Equal(t, []string{"segment_id", "contact_id"}, restored.Array())

	var nilSet *Set[string]
	assert.False(t, nilSet.Exists("segment_id"))
	assert.Equal(t, 0, nilSet.Len())
}

func TestSyncModeUnmarshal(t *testing.T) {
	var mode SyncMode
	require.NoError(t, json.Unmarshal([]byte(`"incremental"`), &mode))
	assert.Equal(t, INCREMENTAL, mode)

	assert.Error(t, json.Unmarshal([]byte(`"snapshot"`), &mode))
}

func TestCatalogSerialization(t *testing.T) {
	stream := NewStream("contacts", "").
		WithPrimaryKey("contact_id").
		WithSyncMode(FULLREFRESH)
	catalog := GetWrappedCatalog([]*Stream{stream})
	require.Len(t, catalog.Streams, 1)

	data, err := json.Marshal(catalog)
	require.NoError(t, err)

	restored := &Catalog{}
	require.NoError(t, json.Unmarshal(data, restored))
	require.Len(t, restored.Streams, 1)
	assert.Equal(t, "contacts", restored.Streams[0].Name())
	assert.Equal(t, []string{"contact_id"}, restored.Streams[0].GetStream().SourceDefinedPrimaryKey.Array())
}
