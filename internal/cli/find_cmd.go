package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	demoji "github.com/AIM-Technologies-CO/demoji"
)

// NewFindCmd creates the find command.
func NewFindCmd() *cobra.Command {
	var (
		asList        bool
		raw           bool
		asJSON        bool
		fromHTML      bool
		expandAliases bool
	)

	cmd := &cobra.Command{
		Use:   "find [text]",
		Short: "Find emoji in text (or stdin) and print what was found.",
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

			if asList {
				occurrences := scanner.FindAllList(text, !raw)
				if occurrences == nil {
					occurrences = []string{}
				}
				if asJSON {
					return printJSON(cmd, occurrences)
				}
				for _, o := range occurrences {
					fmt.Fprintln(cmd.OutOrStdout(), o)
				}
				return nil
			}

			found := scanner.FindAll(text)
			if asJSON {
				return printJSON(cmd, found)
			}
			for _, m := range scanner.Scan(text) {
				if _, dup := found[m.Sequence]; !dup {
					continue
				}
				delete(found, m.Sequence)
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", m.Sequence, m.Description)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asList, "list", false, "print every occurrence in order instead of the unique set")
	cmd.Flags().BoolVar(&raw, "raw", false, "with --list, print raw sequences instead of descriptions")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")
	cmd.Flags().BoolVar(&fromHTML, "html", false, "treat input as HTML and scan its text content")
	cmd.Flags().BoolVar(&expandAliases, "expand-aliases", false, "expand :shortcode: aliases before scanning")
	return cmd
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
