package signal

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/dkeye/arena/internal/adapters/relay"
	"github.com/dkeye/arena/internal/app"
	"github.com/dkeye/arena/internal/domain"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const writeWait = 5 * time.Second

func (ctl *SignalWSController) writePump(ctx context.Context, c *WsSignalConn) {
	ticker := time.NewTicker(ctl.opts.PingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debug().Str("module", "adapters.signal").Msg("writePump ctx done")
			c.Close()
			return
		case data, ok := <-c.send:
			if !ok {
				log.Debug().Str("module", "adapters.signal").Msg("writePump channel closed")
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Error().Err(err).Str("module", "adapters.signal").Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "adapters.signal").Msg("writePump write error")
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				log.Warn().Err(err).Str("module", "adapters.signal").Msg("writePump ping")
				return
			}
		}
	}
}

func (ctl *SignalWSController) readPump(ctx context.Context, cancel context.CancelFunc, id domain.PeerID, c *WsSignalConn) {
	defer func() {
		log.Info().Str("module", "adapters.signal").Str("peer", string(id)).Msg("readPump closing")
		c.Close()
		cancel()
		ctl.disconnect(id)
	}()

	pongWait := ctl.opts.PingPeriod * 2
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		select {
		case <-ctx.Done():
			log.Debug().Str("module", "adapters.signal").Str("peer", string(id)).Msg("readPump ctx done")
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					log.Warn().Err(err).Str("module", "adapters.signal").Str("peer", string(id)).Msg("readPump read error")
				}
				return
			}
			ctl.handleSignal(id, c, data)
		}
	}
}

func (ctl *SignalWSController) handleSignal(id domain.PeerID, c *WsSignalConn, data []byte) {
	var env relay.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		log.Error().Err(err).Str("module", "adapters.signal").Msg("bad json")
		ctl.sendError(id, c, "bad_payload")
		return
	}

	switch env.Type {
	case relay.TypeAnnounce:
		ctl.handleAnnounce(id, c)
	case relay.TypeOffer:
		ctl.handleOffer(id, c, env)
	case relay.TypeAnswer:
		ctl.handleAnswer(id, c, env)
	case relay.TypeCandidates:
		ctl.handleCandidates(id, c, env)
	case relay.TypePing:
		ctl.handlePing(id, c)
	default:
		log.Warn().Str("module", "adapters.signal").Str("type", env.Type).Msg("unknown signal")
		ctl.sendError(id, c, "unknown_type")
	}
}

// disconnect unbinds the peer and tells its partner.
func (ctl *SignalWSController) disconnect(id domain.PeerID) {
	ctl.Limiter.Forget(id)
	partner, ok := ctl.Registry.Unbind(id)
	if !ok {
		return
	}
	if conn, ok := ctl.Registry.Conn(partner); ok {
		ctl.send(partner, conn, relay.Envelope{Type: relay.TypePeerLeft, From: string(id)})
	}
}

func (ctl *SignalWSController) send(to domain.PeerID, c app.SignalConnection, env relay.Envelope) {
	b, err := json.Marshal(env)
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.signal").Msg("send marshal")
		return
	}
	err = c.TrySend(b)
	if !errors.Is(err, ErrBackpressure) {
		return
	}
	switch ctl.Policy.OnBackPressure(to, env.Type) {
	case app.KickPeer:
		log.Warn().Str("module", "adapters.signal").Str("peer", string(to)).Msg("kicking slow peer")
		ctl.Registry.Cancel(to)
		c.Close()
	case app.DropFrame:
		log.Debug().Str("module", "adapters.signal").Str("peer", string(to)).Str("type", env.Type).Msg("dropped frame")
	}
}

func (ctl *SignalWSController) sendError(id domain.PeerID, c app.SignalConnection, msg string) {
	env, err := relay.NewEnvelope(relay.TypeError, "", relay.ErrorPayload{Error: msg})
	if err != nil {
		return
	}
	ctl.send(id, c, env)
}
