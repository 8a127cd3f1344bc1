package driver

import (
	"fmt"
	"time"

	"github.com/dataline-io/tap-autopilot/utils"
	"github.com/dataline-io/tap-autopilot/utils/typeutils"
)

type Config struct {
	// APIKey is sent as a request header on every call
	APIKey string `json:"api_key" validate:"required"`

	// StartDate is the default watermark (ISO-8601) when no bookmark exists
	StartDate string `json:"start_date" validate:"required"`

	// UserAgent optionally identifies the caller
	UserAgent string `json:"user_agent"`

	// BaseURL overrides the production API root
	BaseURL string `json:"base_url"`

	startDate time.Time
}

func (c *Config) Validate() error {
	if err := utils.Validate(c); err != nil {
		return fmt.Errorf("config validation failed: %s", err)
	}

	parsed, err := typeutils.ParseTimestamp(c.StartDate)
	if err != nil {
		return fmt.Errorf("invalid start_date: %s", err)
	}
	c.startDate = parsed

	return nil
}

// StartTime returns the parsed start date; Validate must have run
func (c *Config) StartTime() time.Time {
	return c.startDate
}
