package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	router "github.com/dkeye/arena/internal/adapters/http"
	"github.com/dkeye/arena/internal/app"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var relayCmd = &cobra.Command{
	Use:   "relay",
	Short: "Run the signaling relay",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runRelay(cmd.Context())
	},
}

func init() {
	f := relayCmd.Flags()
	f.Int("port", 8080, "listen port")
	f.String("mode", "release", "gin mode (debug, release, test)")
	f.Int("offer-limit", 5, "offers allowed per peer per window, 0 for no limit")
	f.Duration("offer-window", 10*time.Second, "offer rate limit window")
}

func runRelay(ctx context.Context) error {
	reg := app.NewRegistry()
	r := router.SetupRouter(ctx, cfg, reg, app.HandshakePolicy{})
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	errs := make(chan error, 1)
	go func() {
		log.Info().Str("module", "cmd.relay").Str("addr", addr).Msg("relay started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
		close(errs)
	}()

	select {
	case err := <-errs:
		if err != nil {
			return fmt.Errorf("relay server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Str("module", "cmd.relay").Msg("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Str("module", "cmd.relay").Msg("relay forced to shutdown")
		return err
	}
	log.Info().Str("module", "cmd.relay").Msg("relay exited gracefully")
	return nil
}
