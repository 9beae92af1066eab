package main

import (
	"github.com/AIM-Technologies-CO/demoji/internal/cli"
	"github.com/AIM-Technologies-CO/demoji/internal/logging"
)

func main() {
	// Basic logger for anything that runs before the root command's
	// PersistentPreRunE configures logging from the loaded config.
	logging.Setup(logging.Config{Level: "info", Console: true, TimeFormat: "15:04:05"})

	cli.Execute()
}
