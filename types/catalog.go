package types

// Message is a dto for tap output row representation
type Message struct {
	Type               MessageType    `json:"type"`
	Stream             string         `json:"stream,omitempty"`
	Record             map[string]any `json:"record,omitempty"`
	Schema             map[string]any `json:"schema,omitempty"`
	KeyProperties      []string       `json:"key_properties,omitempty"`
	BookmarkProperties []string       `json:"bookmark_properties,omitempty"`
	State              *State         `json:"state,omitempty"`
	Catalog            *Catalog       `json:"catalog,omitempty"`
	ConnectionStatus   *StatusRow     `json:"connectionStatus,omitempty"`
	Spec               map[string]any `json:"spec,omitempty"`
	Log                *Log           `json:"log,omitempty"`
}

// Log is a dto for log row serialization
type Log struct {
	Level   string `json:"level,omitempty"`
	Message string `json:"message,omitempty"`
}

// StatusRow is a dto for connection check result serialization
type StatusRow struct {
	Status  ConnectionStatus `json:"status,omitempty"`
	Message string           `json:"message,omitempty"`
}

// StreamMetadata points to one selected stream inside a catalog
type StreamMetadata struct {
	StreamName string `json:"stream_name"`
}

// Catalog is a dto for formatted stream catalog serialization
//
// SelectedStreams semantics: nil means every stream is selected, an empty
// map selects nothing.
type Catalog struct {
	SelectedStreams map[string][]StreamMetadata `json:"selected_streams,omitempty"`
	Streams         []*ConfiguredStream         `json:"streams,omitempty"`
}

func GetWrappedCatalog(streams []*Stream) *Catalog {
	catalog := &Catalog{
		Streams: []*ConfiguredStream{},
	}

	for _, stream := range streams {
		catalog.Streams = append(catalog.Streams, stream.Wrap())
	}

	return catalog
}
