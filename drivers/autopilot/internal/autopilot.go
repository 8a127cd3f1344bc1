package driver

import (
	"context"
	"fmt"
	"time"

	"github.com/dataline-io/tap-autopilot/constants"
	"github.com/dataline-io/tap-autopilot/drivers/abstract"
	"github.com/dataline-io/tap-autopilot/types"
	"github.com/dataline-io/tap-autopilot/utils/logger"
)

// streamKeyProperties maps every stream to the field set forming a unique
// record identifier
var streamKeyProperties = map[Resource][]string{
	ResourceContacts:        {"contact_id"},
	ResourceLists:           {"list_id"},
	ResourceSmartSegments:   {"segment_id"},
	ResourceSegmentContacts: {"segment_id", "contact_id"},
}

// catalogOrder fixes the discovery (and therefore sync) order of streams
var catalogOrder = []Resource{ResourceContacts, ResourceLists, ResourceSmartSegments, ResourceSegmentContacts}

type Autopilot struct {
	config *Config
	client *Client
	state  *types.State
}

func (a *Autopilot) GetConfigRef() abstract.Config {
	if a.config == nil {
		a.config = &Config{}
	}

	return a.config
}

func (a *Autopilot) Type() string {
	return "autopilot"
}

func (a *Autopilot) Spec() map[string]any {
	return map[string]any{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type":    "object",
		"required": []string{
			"api_key",
			"start_date",
		},
		"properties": map[string]any{
			"api_key": map[string]any{
				"type":        "string",
				"description": "Autopilot API key, sent as a request header",
				"secret":      true,
			},
			"start_date": map[string]any{
				"type":        "string",
				"format":      "date-time",
				"description": "Default watermark for incremental streams when no bookmark exists",
			},
			"user_agent": map[string]any{
				"type":        "string",
				"description": "Optional user-agent header value",
			},
			"base_url": map[string]any{
				"type":        "string",
				"description": "Override of the production API root",
			},
		},
	}
}

// Setup validates the config and probes the API with the cheapest endpoint
func (a *Autopilot) Setup(ctx context.Context) error {
	if err := a.GetConfigRef().Validate(); err != nil {
		return err
	}
	a.client = NewClient(a.config)

	url, err := resourceURL(a.client.BaseURL(), ResourceCustomFields, "")
	if err != nil {
		return err
	}
	if _, err := a.client.Fetch(ctx, ResourceCustomFields, url, nil); err != nil {
		return fmt.Errorf("failed to reach the Autopilot API: %s", err)
	}

	return nil
}

func (a *Autopilot) SetupState(state *types.State) {
	a.state = state
}

func (a *Autopilot) MaxRetries() int {
	return constants.MaxFetchAttempts
}

func (a *Autopilot) StartDate() time.Time {
	return a.config.StartTime()
}

// Discover builds the four-stream catalog from the bundled schemas; the
// contacts schema is enriched with the account's custom fields.
func (a *Autopilot) Discover(ctx context.Context) ([]*types.Stream, error) {
	streams := make([]*types.Stream, 0, len(catalogOrder))
	for _, resource := range catalogOrder {
		logger.Infof("loading schema for %s", resource)
		schema, err := loadSchema(string(resource))
		if err != nil {
			return nil, err
		}

		stream := types.NewStream(string(resource), "").
			WithSchema(schema).
			WithPrimaryKey(streamKeyProperties[resource]...).
			WithSyncMode(types.FULLREFRESH)
		stream.SyncMode = types.FULLREFRESH

		if resource == ResourceContacts {
			stream.WithSyncMode(types.INCREMENTAL).WithCursorField(constants.ContactsCursorField)
			stream.SyncMode = types.INCREMENTAL
			if err := a.mergeCustomFields(ctx, schema); err != nil {
				return nil, err
			}
		}

		streams = append(streams, stream)
	}

	return streams, nil
}

// mergeCustomFields appends the account's custom contact fields to the
// bundled contacts schema
func (a *Autopilot) mergeCustomFields(ctx context.Context, schema map[string]any) error {
	url, err := resourceURL(a.client.BaseURL(), ResourceCustomFields, "")
	if err != nil {
		return err
	}

	page, err := a.client.Fetch(ctx, ResourceCustomFields, url, nil)
	if err != nil {
		return fmt.Errorf("failed to fetch custom fields: %s", err)
	}

	properties, ok := schema["properties"].(map[string]any)
	if !ok {
		return fmt.Errorf("contacts schema missing properties object")
	}

	for _, field := range page.Records {
		name, ok := field["name"].(string)
		if !ok || name == "" {
			logger.Warnf("skipping custom field without a name: %v", field)
			continue
		}
		if _, exists := properties[name]; exists {
			continue
		}
		properties[name] = map[string]any{
			"type": []any{"null", customFieldType(field)},
		}
	}

	return nil
}

func customFieldType(field map[string]any) string {
	switch field["fieldType"] {
	case "number":
		return "number"
	case "boolean":
		return "boolean"
	default:
		return "string"
	}
}

// Read streams every record of the stream through processFn
func (a *Autopilot) Read(ctx context.Context, stream types.StreamInterface, processFn abstract.MessageFn) error {
	switch Resource(stream.Name()) {
	case ResourceContacts:
		return a.readContacts(ctx, processFn)
	case ResourceLists:
		return a.readResource(ctx, ResourceLists, processFn)
	case ResourceSmartSegments:
		return a.readResource(ctx, ResourceSmartSegments, processFn)
	case ResourceSegmentContacts:
		return a.readSegmentContacts(ctx, processFn)
	default:
		return fmt.Errorf("unknown stream %q", stream.Name())
	}
}

func (a *Autopilot) readResource(ctx context.Context, resource Resource, processFn abstract.MessageFn) error {
	url, err := resourceURL(a.client.BaseURL(), resource, "")
	if err != nil {
		return err
	}

	pages := NewPaginator(ctx, a.client, resource, url, nil)
	for pages.Next() {
		if err := processFn(ctx, pages.Record()); err != nil {
			return err
		}
	}

	return pages.Err()
}

func (a *Autopilot) readContacts(ctx context.Context, processFn abstract.MessageFn) error {
	return a.readResource(ctx, ResourceContacts, func(ctx context.Context, record map[string]any) error {
		transformed, err := TransformContact(record)
		if err != nil {
			return err
		}
		return processFn(ctx, transformed)
	})
}

// readSegmentContacts walks two levels: every smart segment, then every
// member contact of that segment.
func (a *Autopilot) readSegmentContacts(ctx context.Context, processFn abstract.MessageFn) error {
	return a.readResource(ctx, ResourceSmartSegments, func(ctx context.Context, segment map[string]any) error {
		segmentID, ok := segment["segment_id"].(string)
		if !ok || segmentID == "" {
			return fmt.Errorf("smart segment without a segment_id: %v", segment)
		}

		url, err := resourceURL(a.client.BaseURL(), ResourceSegmentContacts, segmentID)
		if err != nil {
			return err
		}

		members := NewPaginator(ctx, a.client, ResourceSegmentContacts, url, nil)
		for members.Next() {
			record := members.Record()
			if err := processFn(ctx, map[string]any{
				"segment_id": segmentID,
				"contact_id": record["contact_id"],
			}); err != nil {
				return err
			}
		}

		return members.Err()
	})
}
