package abstract

import (
	"context"

	"github.com/dataline-io/tap-autopilot/types"
	"github.com/dataline-io/tap-autopilot/utils/logger"
)

// fullRefreshSync re-emits every record of the stream unconditionally
func (a *AbstractDriver) fullRefreshSync(ctx context.Context, stream types.StreamInterface) error {
	err := a.driver.Read(ctx, stream, func(ctx context.Context, record map[string]any) error {
		return a.emit(ctx, stream, record)
	})
	if err != nil {
		return err
	}

	logger.Infof("completed %s sync", stream.Name())
	return nil
}
