package main

import (
	"context"
	"fmt"
	"time"

	"github.com/dkeye/arena/internal/adapters/relay"
	"github.com/dkeye/arena/internal/adapters/rtc"
	"github.com/dkeye/arena/internal/config"
)

// withHandshakeTimeout bounds ctx by d; zero means no bound.
func withHandshakeTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

func newSession(cfg *config.Config) (*rtc.Session, error) {
	codec, err := rtc.CodecByName(cfg.Codec)
	if err != nil {
		return nil, err
	}
	return rtc.NewSession(rtc.Config{ICEServers: cfg.ICEServers, Codec: codec})
}

func dialRelay(ctx context.Context, cfg *config.Config) (*relay.WSClient, error) {
	rl, err := relay.Dial(ctx, cfg.RelayURL)
	if err != nil {
		return nil, fmt.Errorf("relay %s: %w", cfg.RelayURL, err)
	}
	return rl, nil
}
