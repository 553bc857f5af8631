package relay

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dkeye/arena/internal/domain"
	"github.com/gorilla/websocket"
	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

// WSClient speaks the relay protocol over a WebSocket.
type WSClient struct {
	conn *websocket.Conn

	outgoing   chan Envelope
	assigned   chan domain.PeerID
	offers     chan Offer
	answers    chan Answer
	candidates chan Candidates
	errs       chan error

	done      chan struct{}
	closeOnce sync.Once
}

var _ Relay = (*WSClient)(nil)

// Dial connects to the relay at url, e.g. ws://localhost:8080/api/ws/signal.
func Dial(ctx context.Context, url string) (*WSClient, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}
	conn.SetReadLimit(maxMessageSize)
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	c := &WSClient{
		conn:       conn,
		outgoing:   make(chan Envelope, 16),
		assigned:   make(chan domain.PeerID, 1),
		offers:     make(chan Offer, 8),
		answers:    make(chan Answer, 8),
		candidates: make(chan Candidates, 8),
		errs:       make(chan error, 8),
		done:       make(chan struct{}),
	}
	go c.readPump()
	go c.writePump()
	return c, nil
}

func (c *WSClient) readPump() {
	defer c.shutdown()
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))

	for {
		var env Envelope
		if err := c.conn.ReadJSON(&env); err != nil {
			select {
			case <-c.done:
			default:
				log.Warn().Err(err).Str("module", "adapters.relay").Msg("read failed")
			}
			return
		}
		c.dispatch(env)
	}
}

func (c *WSClient) dispatch(env Envelope) {
	from := domain.PeerID(env.From)
	switch env.Type {
	case TypeAssignedID:
		var id string
		if err := env.Decode(&id); err != nil {
			log.Error().Err(err).Str("module", "adapters.relay").Msg("bad assigned-id payload")
			return
		}
		forward(c, c.assigned, domain.PeerID(id))
	case TypeOffer:
		var sd webrtc.SessionDescription
		if err := env.Decode(&sd); err != nil {
			log.Error().Err(err).Str("module", "adapters.relay").Msg("bad offer payload")
			return
		}
		forward(c, c.offers, Offer{From: from, Description: sd})
	case TypeAnswer:
		var sd webrtc.SessionDescription
		if err := env.Decode(&sd); err != nil {
			log.Error().Err(err).Str("module", "adapters.relay").Msg("bad answer payload")
			return
		}
		forward(c, c.answers, Answer{From: from, Description: sd})
	case TypeCandidates:
		var list []webrtc.ICECandidateInit
		if err := env.Decode(&list); err != nil {
			log.Error().Err(err).Str("module", "adapters.relay").Msg("bad candidates payload")
			return
		}
		forward(c, c.candidates, Candidates{From: from, List: list})
	case TypeError:
		var p ErrorPayload
		_ = env.Decode(&p)
		select {
		case c.errs <- fmt.Errorf("%w: %s", ErrRejected, p.Error):
		default:
			log.Warn().Str("module", "adapters.relay").Str("error", p.Error).Msg("relay error dropped")
		}
	case TypePeerLeft:
		log.Info().Str("module", "adapters.relay").Str("peer", env.From).Msg("peer left relay")
	case TypePong:
	default:
		log.Warn().Str("module", "adapters.relay").Str("type", env.Type).Msg("unknown relay message")
	}
}

func forward[T any](c *WSClient, ch chan T, v T) {
	select {
	case ch <- v:
	case <-c.done:
	}
}

func (c *WSClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case env := <-c.outgoing:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(env); err != nil {
				log.Warn().Err(err).Str("module", "adapters.relay").Msg("write failed")
				c.shutdown()
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.shutdown()
				return
			}
		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

func (c *WSClient) send(ctx context.Context, typ, to string, payload any) error {
	env, err := NewEnvelope(typ, to, payload)
	if err != nil {
		return fmt.Errorf("encode %s: %w", typ, err)
	}
	select {
	case c.outgoing <- env:
		return nil
	case <-c.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *WSClient) Announce(ctx context.Context) (domain.PeerID, error) {
	if err := c.send(ctx, TypeAnnounce, "", nil); err != nil {
		return "", err
	}
	select {
	case id := <-c.assigned:
		return id, nil
	case err := <-c.errs:
		return "", err
	case <-c.done:
		return "", ErrClosed
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (c *WSClient) SendOffer(ctx context.Context, room domain.RoomID, offer webrtc.SessionDescription) error {
	return c.send(ctx, TypeOffer, string(room), offer)
}

func (c *WSClient) SendAnswer(ctx context.Context, to domain.PeerID, answer webrtc.SessionDescription) error {
	return c.send(ctx, TypeAnswer, string(to), answer)
}

func (c *WSClient) SendCandidates(ctx context.Context, to domain.PeerID, list []webrtc.ICECandidateInit) error {
	return c.send(ctx, TypeCandidates, string(to), list)
}

func (c *WSClient) Offers() <-chan Offer { return c.offers }

func (c *WSClient) Answers() <-chan Answer { return c.answers }

func (c *WSClient) Candidates() <-chan Candidates { return c.candidates }

func (c *WSClient) Errors() <-chan error { return c.errs }

// Done is closed once the connection is gone.
func (c *WSClient) Done() <-chan struct{} { return c.done }

func (c *WSClient) shutdown() {
	c.closeOnce.Do(func() { close(c.done) })
}

func (c *WSClient) Close() error {
	c.shutdown()
	return nil
}
