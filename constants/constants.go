package constants

import "time"

const (
	// PerPage is the fixed page size exposed by the Autopilot API.
	// A page holding fewer records signals end-of-resource.
	PerPage = 100

	// DefaultBaseURL is the production Autopilot API root.
	DefaultBaseURL = "https://api2.autopilothq.com/v1"

	// APIKeyHeader carries the static API key on every request.
	APIKeyHeader = "autopilotapikey"

	// RequestsPerWindow / RequestWindow define the process-wide rate gate.
	RequestsPerWindow = 20
	RequestWindow     = time.Second

	// MaxFetchAttempts is the retry budget for a single page fetch.
	MaxFetchAttempts = 5

	// ContactsCursorField is the replication key of the contacts stream.
	ContactsCursorField = "updated_at"
)

// viper keys shared between protocol commands, logger and state persistence
const (
	ConfigFolder = "CONFIG_FOLDER"
	StatePath    = "STATE_PATH"
	StreamsPath  = "STREAMS_PATH"
)
