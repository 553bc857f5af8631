package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dkeye/arena/internal/app"
	"github.com/dkeye/arena/internal/core"
	"github.com/dkeye/arena/internal/domain"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var hostCmd = &cobra.Command{
	Use:   "host",
	Short: "Open a room and wait for a guest",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runHost(cmd.Context())
	},
}

func init() {
	f := hostCmd.Flags()
	f.Int("step-rate", 60, "physics steps per second")
	f.Int("broadcast-rate", 40, "body updates per second")
}

func runHost(ctx context.Context) error {
	rl, err := dialRelay(ctx, cfg)
	if err != nil {
		return err
	}
	defer rl.Close()

	peerID, err := rl.Announce(ctx)
	if err != nil {
		return fmt.Errorf("announce: %w", err)
	}
	roomID := domain.RoomID(peerID)
	fmt.Printf("room id: %s\nwaiting for a guest...\n", roomID)

	sess, err := newSession(cfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	rooms := core.NewDirectory(core.Options{StepRate: cfg.StepRate, BroadcastRate: cfg.BroadcastRate})
	defer rooms.Remove(roomID)

	// Handlers go in before the guest can reach them.
	con := newConsole(os.Stdout)
	host := app.NewHost(rooms.GetOrCreate(roomID), sess.Channels(), con)

	guest, err := sess.Accept(ctx, rl)
	if err != nil {
		return err
	}
	hctx, cancel := withHandshakeTimeout(ctx, cfg.HandshakeTimeout)
	defer cancel()
	if err := sess.WaitConnected(hctx); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	log.Info().Str("module", "cmd.host").Str("guest", string(guest)).Msg("guest connected")

	if _, err := host.Join(ctx); err != nil {
		return err
	}

	go func() {
		<-sess.Done()
		host.GuestLeft()
		con.printf("guest disconnected\n")
	}()

	return con.run(ctx, os.Stdin, host, sess.Done())
}
