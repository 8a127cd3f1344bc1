package abstract

import (
	"context"
	"fmt"
	"strings"

	"github.com/dataline-io/tap-autopilot/types"
	"github.com/dataline-io/tap-autopilot/utils"
	"github.com/dataline-io/tap-autopilot/utils/logger"
)

// AbstractDriver walks the selected streams of a catalog in order, resumes
// from the persisted currently-syncing marker and dispatches each stream to
// the sync strategy its mode demands.
type AbstractDriver struct {
	driver  DriverInterface
	state   *types.State
	records int64
}

func NewAbstractDriver(_ context.Context, driver DriverInterface) *AbstractDriver {
	return &AbstractDriver{
		driver: driver,
	}
}

func (a *AbstractDriver) GetConfigRef() Config {
	return a.driver.GetConfigRef()
}

func (a *AbstractDriver) Spec() map[string]any {
	return a.driver.Spec()
}

func (a *AbstractDriver) Type() string {
	return a.driver.Type()
}

func (a *AbstractDriver) Setup(ctx context.Context) error {
	return a.driver.Setup(ctx)
}

func (a *AbstractDriver) Discover(ctx context.Context) ([]*types.Stream, error) {
	return a.driver.Discover(ctx)
}

// TotalRecords emitted across all streams of the run
func (a *AbstractDriver) TotalRecords() int64 {
	return a.records
}

// Sync runs the selected streams of the catalog sequentially. The
// currently-syncing marker is persisted before each stream starts so that a
// crash resumes at that stream, and cleared only after every selected
// stream completed.
func (a *AbstractDriver) Sync(ctx context.Context, catalog *types.Catalog, state *types.State) error {
	a.state = state
	a.driver.SetupState(state)

	streams, err := streamsToSync(catalog, state)
	if err != nil {
		return err
	}

	selected := selectedStreams(catalog, streams)
	if len(selected) == 0 {
		logger.Info("no streams selected; check that the catalog marks a schema as selected")
		return nil
	}

	names := make([]string, 0, len(selected))
	for _, stream := range selected {
		names = append(names, stream.ID())
	}
	logger.Infof("starting sync; will sync streams: %s", strings.Join(names, ", "))

	for _, stream := range selected {
		logger.Infof("syncing stream %s", stream.ID())
		logger.LogSchema(stream.Name(), stream.Schema(), stream.GetStream().SourceDefinedPrimaryKey.Array(), bookmarkProperties(stream))

		state.SetCurrentlySyncing(stream.Name())
		logger.LogState(state)

		switch stream.GetSyncMode() {
		case types.INCREMENTAL:
			err = a.incrementalSync(ctx, stream)
		default:
			err = a.fullRefreshSync(ctx, stream)
		}
		if err != nil {
			return fmt.Errorf("failed to sync stream[%s]: %s", stream.ID(), err)
		}
	}

	state.SetCurrentlySyncing("")
	logger.LogState(state)
	logger.Infof("sync completed; total records emitted: %d", a.records)

	return nil
}

func (a *AbstractDriver) emit(ctx context.Context, stream types.StreamInterface, record map[string]any) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	logger.LogRecord(stream.Name(), record)
	a.records++

	return nil
}

// streamsToSync drops every stream before the currently-syncing marker in
// catalog order; an unknown marker fails fast.
func streamsToSync(catalog *types.Catalog, state *types.State) ([]types.StreamInterface, error) {
	configured := catalog.Streams
	if current := state.CurrentlySyncingStream(); current != "" {
		idx, found := utils.ArrayContains(configured, func(elem *types.ConfiguredStream) bool {
			return elem.Name() == current
		})
		if !found {
			return nil, fmt.Errorf("unknown stream %q set as currently syncing in state", current)
		}
		configured = configured[idx:]
	}

	streams := make([]types.StreamInterface, 0, len(configured))
	for _, stream := range configured {
		streams = append(streams, stream)
	}

	return streams, nil
}

// selectedStreams filters to the streams the catalog marks selected; a nil
// selection map selects everything.
func selectedStreams(catalog *types.Catalog, streams []types.StreamInterface) []types.StreamInterface {
	if catalog.SelectedStreams == nil {
		return streams
	}

	selectedMap := make(map[string]struct{})
	for namespace, metadata := range catalog.SelectedStreams {
		for _, streamMetadata := range metadata {
			name := streamMetadata.StreamName
			if namespace != "" {
				name = fmt.Sprintf("%s.%s", namespace, streamMetadata.StreamName)
			}
			selectedMap[name] = struct{}{}
		}
	}

	selected := []types.StreamInterface{}
	for _, stream := range streams {
		if _, found := selectedMap[stream.ID()]; !found {
			logger.Infof("%s: not selected", stream.ID())
			continue
		}
		selected = append(selected, stream)
	}

	return selected
}

func bookmarkProperties(stream types.StreamInterface) []string {
	if cursor := stream.Cursor(); cursor != "" {
		return []string{cursor}
	}
	return nil
}
