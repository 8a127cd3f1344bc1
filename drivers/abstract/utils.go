package abstract

import (
	"errors"
	"strings"
	"time"

	"github.com/dataline-io/tap-autopilot/utils/logger"
)

// RetryableError lets a failure opt out of the retry loop; HTTP client
// errors in [400,500) except 408 report false.
type RetryableError interface {
	error
	Retryable() bool
}

func RetryOnBackoff(attempts int, sleep time.Duration, f func() error) (err error) {
	for cur := 0; cur < attempts; cur++ {
		if err = f(); err == nil {
			return nil
		}

		var retryable RetryableError
		if errors.As(err, &retryable) && !retryable.Retryable() {
			break
		}
		if strings.Contains(err.Error(), "context canceled") {
			break
		}

		if attempts > 1 && cur != attempts-1 {
			logger.Infof("retry attempt[%d], retrying after %.2f seconds due to err: %s", cur+1, sleep.Seconds(), err)
			time.Sleep(sleep)
			sleep = sleep * 2
		}
	}

	return err
}
