package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/stockflow/dashboard/internal/api"
	"github.com/stockflow/dashboard/internal/core/guard"
	"github.com/stockflow/dashboard/internal/core/navigation"
	"github.com/stockflow/dashboard/internal/core/ports"
	"github.com/stockflow/dashboard/internal/core/service"
	"github.com/stockflow/dashboard/internal/core/shell"
	"github.com/stockflow/dashboard/internal/infrastructure/queue"
	"github.com/stockflow/dashboard/pkg/logger"
)

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service",
		Long: `Run the StockFlow shell service.

Restores the persisted session, then serves page navigation, the auth
endpoints and the probes until SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), rootOpts)
		},
	}
}

func runServe(parent context.Context, opts *RootOptions) error {
	cfg := opts.Config
	log := logger.For("serve")

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	be, err := openBackend(ctx, cfg, logger.For("storage"))
	if err != nil {
		return err
	}
	defer func() {
		if err := be.Close(); err != nil {
			log.Warn().Err(err).Msg("closing storage")
		}
	}()

	labels, err := navigation.LoadLabels(cfg.Nav.LabelSet, cfg.Nav.LabelsFile)
	if err != nil {
		return err
	}

	store := be.sessionStore(cfg, logger.For("session"))
	store.Init(ctx)
	defer store.Teardown()

	accounts := service.NewAuthService(be.accounts, logger.For("accounts"))
	if cfg.Admin.Username != "" {
		if err := accounts.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password, cfg.Admin.Name); err != nil {
			return err
		}
	}

	auditLog := logger.For("audit")
	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, service.NewAuditService(be.events, auditLog), auditLog)
	dispatcher.Start(context.Background())

	g := guard.Default()
	e := api.NewRouter(api.Deps{
		Log:      logger.For("http"),
		Sessions: store,
		Guard:    g,
		Layout:   shell.New(navigation.NewModel(labels), g, store),
		Auth:     accounts,
		Events:   dispatcher,
		Audit:    be.events,
		Health:   map[string]ports.Pinger{"storage": be.kv},
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case err := <-errCh:
		if err != nil {
			dispatcher.Close()
			dispatcher.Wait()
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	err = e.Shutdown(shutdownCtx)
	if errors.Is(err, context.DeadlineExceeded) {
		log.Warn().Dur("timeout", cfg.ShutdownTimeout).Msg("requests still in flight at shutdown")
	}

	dispatcher.Close()
	dispatcher.Wait()
	return err
}
