package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/warehouse-crm/auth-service/internal/api"
	"github.com/warehouse-crm/auth-service/internal/api/handler"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		e := api.NewRouter(api.Deps{
			Sessions: a.sessions,
			Accounts: a.accounts,
			Health: map[string]handler.Pinger{
				"mongodb": handler.PingFunc(func(ctx context.Context) error { return a.mongo.Ping(ctx, nil) }),
				"redis":   handler.PingFunc(func(ctx context.Context) error { return a.redis.Ping(ctx).Err() }),
			},
			Logger: a.log,
		})

		errCh := make(chan error, 1)
		go func() {
			a.log.Info().Str("port", a.cfg.Port).Msg("http server listening")
			if err := e.Start(":" + a.cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		a.log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
