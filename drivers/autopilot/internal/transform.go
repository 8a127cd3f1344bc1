package driver

import (
	"fmt"
	"sort"

	"github.com/dataline-io/tap-autopilot/utils/typeutils"
)

// contact properties the API serves as objects keyed by URL with boolean
// values
var booleanMapProps = []string{"anywhere_page_visits", "anywhere_form_submits", "anywhere_utm"}

// contact properties the API serves as objects keyed by mail id with
// unix-millisecond values
var timestampMapProps = []string{"mail_received", "mail_opened", "mail_clicked", "mail_bounced", "mail_complained", "mail_unsubscribed", "mail_hardbounced"}

// TransformContact reshapes map-valued contact properties into arrays so
// they survive schema-bound destinations: URL-keyed maps become
// {url, value} rows, mail-event maps become {id, timestamp} rows with the
// value parsed as unix milliseconds.
func TransformContact(contact map[string]any) (map[string]any, error) {
	for _, prop := range booleanMapProps {
		raw, found := contact[prop]
		if !found {
			continue
		}
		values, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("contact property %q is not an object: %v", prop, raw)
		}

		formatted := make([]map[string]any, 0, len(values))
		for _, url := range sortedKeys(values) {
			formatted = append(formatted, map[string]any{
				"url":   url,
				"value": values[url],
			})
		}
		contact[prop] = formatted
	}

	for _, prop := range timestampMapProps {
		raw, found := contact[prop]
		if !found {
			continue
		}
		values, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("contact property %q is not an object: %v", prop, raw)
		}

		formatted := make([]map[string]any, 0, len(values))
		for _, id := range sortedKeys(values) {
			timestamp, err := typeutils.UnixMillisToTime(values[id])
			if err != nil {
				return nil, fmt.Errorf("failed to parse %q timestamp of %q: %s", prop, id, err)
			}
			formatted = append(formatted, map[string]any{
				"id":        id,
				"timestamp": typeutils.FormatTimestamp(timestamp),
			})
		}
		contact[prop] = formatted
	}

	return contact, nil
}

// sortedKeys keeps transformed arrays deterministic
func sortedKeys(values map[string]any) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return keys
}
