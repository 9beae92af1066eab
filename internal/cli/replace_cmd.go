package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	demoji "github.com/AIM-Technologies-CO/demoji"
)

// NewReplaceCmd creates the replace command.
func NewReplaceCmd() *cobra.Command {
	var (
		replacement   string
		withDesc      bool
		sep           string
		fromHTML      bool
		expandAliases bool
	)

	cmd := &cobra.Command{
		Use:   "replace [text]",
		Short: "Replace emoji in text (or stdin) and print the result.",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			text = prepare(text, fromHTML, expandAliases)

			scanner, err := demoji.Default()
			if err != nil {
				return err
			}

			var result string
			if withDesc {
				result = scanner.ReplaceWithDesc(text, sep)
			} else {
				result = scanner.Replace(text, replacement)
			}
			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().StringVar(&replacement, "with", "", "replacement string for each emoji (default: remove)")
	cmd.Flags().BoolVar(&withDesc, "desc", false, "replace each emoji with its description")
	cmd.Flags().StringVar(&sep, "sep", ":", "separator wrapped around descriptions with --desc")
	cmd.Flags().BoolVar(&fromHTML, "html", false, "treat input as HTML and process its text content")
	cmd.Flags().BoolVar(&expandAliases, "expand-aliases", false, "expand :shortcode: aliases before scanning")
	return cmd
}
