package driver

import (
	"fmt"
	"strings"
)

// Resource identifies one logical Autopilot API resource
type Resource string

const (
	ResourceContacts        Resource = "contacts"
	ResourceCustomFields    Resource = "custom_fields"
	ResourceLists           Resource = "lists"
	ResourceSmartSegments   Resource = "smart_segments"
	ResourceSegmentContacts Resource = "smart_segments_contacts"
)

const segmentIDPlaceholder = "{segment_id}"

// endpoint describes how one resource is fetched and decoded. accessorKey
// is the property under which the record array nests in a raw page;
// bookmarked resources page via an opaque continuation token appended to
// the URL path.
type endpoint struct {
	path        string
	accessorKey string
	bookmarked  bool
}

var endpoints = map[Resource]endpoint{
	ResourceContacts:        {path: "/contacts", accessorKey: "contacts", bookmarked: true},
	ResourceCustomFields:    {path: "/contacts/custom_fields", accessorKey: "custom_fields"},
	ResourceLists:           {path: "/lists", accessorKey: "lists"},
	ResourceSmartSegments:   {path: "/smart_segments", accessorKey: "segments"},
	ResourceSegmentContacts: {path: "/smart_segments/" + segmentIDPlaceholder + "/contacts", accessorKey: "contacts", bookmarked: true},
}

// resourceURL resolves the absolute URL for the resource; fails before any
// request is made when the resource is unknown or an argument is missing.
func resourceURL(baseURL string, resource Resource, segmentID string) (string, error) {
	descriptor, found := endpoints[resource]
	if !found {
		return "", fmt.Errorf("invalid endpoint %q", resource)
	}

	path := descriptor.path
	if strings.Contains(path, segmentIDPlaceholder) {
		if segmentID == "" {
			return "", fmt.Errorf("endpoint %q requires a segment id", resource)
		}
		path = strings.ReplaceAll(path, segmentIDPlaceholder, segmentID)
	}

	return baseURL + path, nil
}
