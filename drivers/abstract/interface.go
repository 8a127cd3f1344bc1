package abstract

import (
	"context"
	"time"

	"github.com/dataline-io/tap-autopilot/types"
)

// MessageFn receives one entity record pulled from the source
type MessageFn func(ctx context.Context, record map[string]any) error

type Config interface {
	Validate() error
}

type DriverInterface interface {
	GetConfigRef() Config
	Spec() map[string]any
	Type() string
	// specific to check & setup
	Setup(ctx context.Context) error
	SetupState(state *types.State)
	// sync artifacts
	MaxRetries() int
	// StartDate is the default watermark when a stream holds no bookmark yet
	StartDate() time.Time
	// specific to discover
	Discover(ctx context.Context) ([]*types.Stream, error)
	// Read streams every record of the stream through processFn; incremental
	// filtering happens above this call
	Read(ctx context.Context, stream types.StreamInterface, processFn MessageFn) error
}
