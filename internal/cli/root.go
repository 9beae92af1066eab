// Package cli wires the demoji command tree.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	demoji "github.com/AIM-Technologies-CO/demoji"
	"github.com/AIM-Technologies-CO/demoji/internal/config"
	"github.com/AIM-Technologies-CO/demoji/internal/logging"
	"github.com/AIM-Technologies-CO/demoji/internal/textprep"
)

var (
	cfgFile string
	appCfg  *config.AppConfig
)

// RootCmd is the top-level demoji command.
var RootCmd = &cobra.Command{
	Use:     "demoji",
	Short:   "Find and replace emoji within text.",
	Long:    "demoji scans text for emoji sequences using the bundled Unicode emoji dictionary,\nand can list, describe, or replace what it finds.",
	Version: demoji.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}
		appCfg = loaded
		logging.Setup(appCfg.Log)
		return nil
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./config.yaml, $HOME/.config/demoji/config.yaml)")

	RootCmd.AddCommand(NewFindCmd())
	RootCmd.AddCommand(NewReplaceCmd())
	RootCmd.AddCommand(NewRefreshCmd())
	RootCmd.AddCommand(NewServeCmd())
}

// readInput returns the text to scan: the joined positional args, or stdin
// when none are given.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

// prepare applies the optional input transformations shared by find and
// replace.
func prepare(text string, fromHTML, expandAliases bool) string {
	if fromHTML {
		text = textprep.ExtractText(text)
	}
	if expandAliases {
		text = textprep.ExpandAliases(text)
	}
	return text
}
