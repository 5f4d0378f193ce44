package cli

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
)

type healthcheckOptions struct {
	URL     string
	Timeout time.Duration
}

// NewHealthcheckCommand creates the healthcheck command.
func NewHealthcheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &healthcheckOptions{}

	cmd := &cobra.Command{
		Use:   "healthcheck",
		Short: "Probe a running service",
		Long: `Send one GET to the service health endpoint and print the response.

Exits non-zero when the request fails or the endpoint answers with an
error status. Defaults to the liveness probe on the configured port.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			url := opts.URL
			if url == "" {
				url = fmt.Sprintf("http://localhost:%s/health", rootOpts.Config.Port)
			}
			return runHealthcheck(cmd, url, opts.Timeout)
		},
	}

	cmd.Flags().StringVar(&opts.URL, "url", "", "endpoint to probe (default http://localhost:$PORT/health)")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 5*time.Second, "request timeout")

	return cmd
}

func runHealthcheck(cmd *cobra.Command, url string, timeout time.Duration) error {
	resp, err := resty.New().
		SetTimeout(timeout).
		R().
		SetContext(cmd.Context()).
		SetHeader("Accept", "application/json").
		Get(url)
	if err != nil {
		return fmt.Errorf("healthcheck %s: %w", url, err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), resp.String())
	if resp.IsError() {
		return fmt.Errorf("healthcheck %s: %s", url, resp.Status())
	}
	return nil
}
