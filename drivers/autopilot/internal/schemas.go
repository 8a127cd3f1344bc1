package driver

import (
	"embed"
	"fmt"

	"github.com/goccy/go-json"
)

//go:embed schemas/*.json
var schemaFiles embed.FS

// loadSchema returns the bundled JSON schema of the stream
func loadSchema(stream string) (map[string]any, error) {
	data, err := schemaFiles.ReadFile(fmt.Sprintf("schemas/%s.json", stream))
	if err != nil {
		return nil, fmt.Errorf("failed to load schema for %s: %s", stream, err)
	}

	schema := map[string]any{}
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("failed to parse schema for %s: %s", stream, err)
	}

	return schema, nil
}
