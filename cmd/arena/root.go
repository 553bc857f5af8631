package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dkeye/arena/internal/config"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	cfg       *config.Config
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "arena",
	Short: "Two-player arena shooter over a peer-to-peer WebRTC transport",
	Long: `arena runs either side of a two-player physics shooter. The host runs the
simulation and the guest plays over a direct WebRTC connection. A small relay
server only brokers the handshake.

Examples:
  arena relay --port 8080
  arena host --relay-url ws://localhost:8080/api/ws/signal
  arena join 6f1c...`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		var err error
		cfg, err = config.Load(cmd.Flags())
		if err != nil {
			return err
		}
		logCloser, err = setupLogger(cfg)
		return err
	},
	PersistentPostRun: func(*cobra.Command, []string) {
		if logCloser != nil {
			_ = logCloser.Close()
		}
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "path to a YAML config file")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-file", "", "also write logs to this file, rotated")
	pf.String("relay-url", "ws://localhost:8080/api/ws/signal", "relay WebSocket URL")
	pf.StringSlice("ice-servers", nil, "STUN/TURN server URLs")
	pf.String("codec", "json", "channel codec (json, msgpack, cbor)")
	pf.Duration("handshake-timeout", 30*time.Second, "bound on connection setup, 0 for none")

	rootCmd.AddCommand(relayCmd, hostCmd, joinCmd, roomsCmd)
}

// Execute runs the root command until it returns or the process is
// interrupted.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Str("module", "cmd").Msg("arena failed")
		fmt.Fprintln(os.Stderr, "error:", err)
		cancel()
		os.Exit(1)
	}
}
