package tapautopilot

import (
	"os"

	"github.com/dataline-io/tap-autopilot/drivers/abstract"
	"github.com/dataline-io/tap-autopilot/protocol"
	"github.com/dataline-io/tap-autopilot/utils/logger"
	"github.com/dataline-io/tap-autopilot/utils/safego"
)

func RegisterDriver(driver abstract.DriverInterface) {
	defer safego.Recovery(true)

	// Execute the root command
	err := protocol.CreateRootCommand(driver).Execute()
	if err != nil {
		logger.Fatal(err)
	}

	os.Exit(0)
}
