package cli

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/AIM-Technologies-CO/demoji/internal/refresh"
)

// NewRefreshCmd creates the refresh command, which rebuilds the bundled
// emoji data from the Unicode registry. The refreshed resource takes
// effect on the next build; running processes are unaffected.
func NewRefreshCmd() *cobra.Command {
	var (
		url           string
		output        string
		timestampFile string
		timeout       time.Duration
	)

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Rebuild the bundled emoji dictionary from the Unicode registry.",
		RunE: func(cmd *cobra.Command, args []string) error {
			registryURL := url
			if registryURL == "" {
				registryURL = appCfg.RegistryURL
			}
			fetchTimeout := timeout
			if fetchTimeout == 0 {
				fetchTimeout = appCfg.FetchTimeout
			}

			client := refresh.NewClient(registryURL, &http.Client{Timeout: fetchTimeout})
			codes, err := client.Download(cmd.Context())
			if err != nil {
				return fmt.Errorf("refreshing emoji data: %w", err)
			}
			if err := refresh.WriteCodes(codes, output); err != nil {
				return err
			}
			if err := refresh.WriteTimestamp(timestampFile, time.Now()); err != nil {
				return err
			}
			log.Info().Int("sequences", len(codes)).Msg("Emoji data refreshed; rebuild to embed it")
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d emoji sequences to %s\n", len(codes), output)
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "registry URL (default from config)")
	cmd.Flags().StringVar(&output, "output", "internal/dictionary/codes.json", "destination for the JSON resource")
	cmd.Flags().StringVar(&timestampFile, "timestamp-file", "internal/dictionary/timestamp.go", "destination for the generated timestamp source file")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "fetch timeout (default from config)")
	return cmd
}
