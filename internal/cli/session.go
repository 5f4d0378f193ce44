package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stockflow/dashboard/pkg/logger"
)

// NewSessionCommand groups the persisted-session maintenance commands.
func NewSessionCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect or clear the persisted session",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the persisted user, or null",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSessionShow(cmd, rootOpts)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove the persisted user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSessionClear(cmd, rootOpts)
		},
	})

	return cmd
}

func runSessionShow(cmd *cobra.Command, opts *RootOptions) error {
	ctx := cmd.Context()
	be, err := openBackend(ctx, opts.Config, logger.For("storage"))
	if err != nil {
		return err
	}
	defer be.Close()

	user := be.sessionStore(opts.Config, logger.For("session")).Restore(ctx)
	out, err := json.MarshalIndent(user, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

func runSessionClear(cmd *cobra.Command, opts *RootOptions) error {
	ctx := cmd.Context()
	be, err := openBackend(ctx, opts.Config, logger.For("storage"))
	if err != nil {
		return err
	}
	defer be.Close()

	if err := be.sessionStore(opts.Config, logger.For("session")).Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "session cleared")
	return nil
}
