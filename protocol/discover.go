package protocol

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dataline-io/tap-autopilot/utils"
	"github.com/dataline-io/tap-autopilot/utils/logger"
)

// discoverCmd represents the read command
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "discover command",
	PreRunE: func(_ *cobra.Command, _ []string) error {
		if configPath == "not-set" {
			return fmt.Errorf("--config not passed")
		}

		return utils.UnmarshalFile(configPath, connector.GetConfigRef())
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := connector.Setup(cmd.Context()); err != nil {
			return err
		}

		streams, err := connector.Discover(cmd.Context())
		if err != nil {
			return err
		}
		if len(streams) == 0 {
			return fmt.Errorf("no streams found in the source")
		}

		logger.LogCatalog(streams)
		return nil
	},
}
