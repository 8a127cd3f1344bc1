package main

import (
	tapautopilot "github.com/dataline-io/tap-autopilot"
	driver "github.com/dataline-io/tap-autopilot/drivers/autopilot/internal"
)

func main() {
	tapautopilot.RegisterDriver(&driver.Autopilot{})
}
