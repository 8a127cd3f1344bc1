package logger

import (
	"io"
	"os"
	"sync"

	"github.com/goccy/go-json"
	"github.com/spf13/viper"

	"github.com/dataline-io/tap-autopilot/constants"
	"github.com/dataline-io/tap-autopilot/types"
)

var (
	outputMutex sync.Mutex
	output      io.Writer = os.Stdout
)

func writeMessage(message types.Message) {
	data, err := json.Marshal(message)
	if err != nil {
		Fatalf("failed to marshal %s message: %s", message.Type, err)
	}

	outputMutex.Lock()
	defer outputMutex.Unlock()

	_, _ = output.Write(append(data, '\n'))
}

func Fatalf(format string, v ...any) {
	instance.Error().Msgf(format, v...)
	os.Exit(1)
}

// LogRecord emits one entity record for the stream
func LogRecord(stream string, record map[string]any) {
	writeMessage(types.Message{
		Type:   types.RecordMessage,
		Stream: stream,
		Record: record,
	})
}

// LogSchema announces the stream's schema before its records
func LogSchema(stream string, schema map[string]any, keyProperties, bookmarkProperties []string) {
	writeMessage(types.Message{
		Type:               types.SchemaMessage,
		Stream:             stream,
		Schema:             schema,
		KeyProperties:      keyProperties,
		BookmarkProperties: bookmarkProperties,
	})
}

// LogState emits the sync state and persists it at STATE_PATH so an
// interrupted sync can resume from the currently-syncing marker.
func LogState(state *types.State) {
	writeMessage(types.Message{
		Type:  types.StateMessage,
		State: state,
	})

	statePath := viper.GetString(constants.StatePath)
	if statePath == "" {
		return
	}

	state.RLock()
	data, err := json.MarshalIndent(state, "", "  ")
	state.RUnlock()
	if err != nil {
		Errorf("failed to marshal state: %s", err)
		return
	}

	if err := os.WriteFile(statePath, data, 0o644); err != nil {
		Errorf("failed to persist state at %s: %s", statePath, err)
	}
}

// LogCatalog emits the discovered catalog and writes streams.json next to
// the source config for later sync runs.
func LogCatalog(streams []*types.Stream) {
	catalog := types.GetWrappedCatalog(streams)
	writeMessage(types.Message{
		Type:    types.CatalogMessage,
		Catalog: catalog,
	})

	streamsPath := viper.GetString(constants.StreamsPath)
	if streamsPath == "" {
		return
	}

	data, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		Errorf("failed to marshal catalog: %s", err)
		return
	}

	if err := os.WriteFile(streamsPath, data, 0o644); err != nil {
		Errorf("failed to persist catalog at %s: %s", streamsPath, err)
	}
}

func LogSpec(spec map[string]any) {
	writeMessage(types.Message{
		Type: types.SpecMessage,
		Spec: spec,
	})
}

func LogConnectionStatus(err error) {
	message := types.Message{
		Type: types.ConnectionStatusMessage,
		ConnectionStatus: &types.StatusRow{
			Status: types.ConnectionSucceed,
		},
	}
	if err != nil {
		message.ConnectionStatus.Status = types.ConnectionFailed
		message.ConnectionStatus.Message = err.Error()
	}

	writeMessage(message)
}

// SetOutput redirects protocol messages; tests capture stdout through it.
func SetOutput(w io.Writer) {
	outputMutex.Lock()
	defer outputMutex.Unlock()
	output = w
}
