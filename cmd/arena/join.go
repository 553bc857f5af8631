package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dkeye/arena/internal/app"
	"github.com/dkeye/arena/internal/domain"
	"github.com/spf13/cobra"
)

var joinCmd = &cobra.Command{
	Use:   "join <room-id>",
	Short: "Join a hosted room as the guest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		room := strings.TrimSpace(args[0])
		if room == "" {
			return fmt.Errorf("empty room id")
		}
		return runJoin(cmd.Context(), domain.RoomID(room))
	},
}

func runJoin(ctx context.Context, room domain.RoomID) error {
	rl, err := dialRelay(ctx, cfg)
	if err != nil {
		return err
	}
	defer rl.Close()

	sess, err := newSession(cfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	hctx, cancel := withHandshakeTimeout(ctx, cfg.HandshakeTimeout)
	defer cancel()
	if err := sess.Dial(hctx, rl, room); err != nil {
		return err
	}
	if err := sess.WaitConnected(hctx); err != nil {
		return fmt.Errorf("connect: %w", err)
	}

	con := newConsole(os.Stdout)
	guest := app.NewGuest(sess.Channels(), con)
	if _, err := guest.Join(hctx); err != nil {
		return fmt.Errorf("join room %s: %w", room, err)
	}
	return con.run(ctx, os.Stdin, guest, sess.Done())
}
