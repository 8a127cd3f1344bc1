package protocol

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dataline-io/tap-autopilot/utils"
	"github.com/dataline-io/tap-autopilot/utils/logger"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "check command",
	PreRunE: func(_ *cobra.Command, _ []string) error {
		if configPath == "not-set" {
			return fmt.Errorf("--config not passed")
		}

		return utils.UnmarshalFile(configPath, connector.GetConfigRef())
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		err := connector.Setup(cmd.Context())
		if err != nil {
			logger.Errorf("connection check failed: %s", err)
		}

		// status message carries the failure; the command itself succeeds
		logger.LogConnectionStatus(err)
		return nil
	},
}
