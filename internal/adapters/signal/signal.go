// Package signal is the relay server: it pairs a guest with the host of a
// room and forwards their handshake messages.
package signal

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/dkeye/arena/internal/app"
	"github.com/dkeye/arena/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var (
	ErrBackpressure = errors.New("backpressure")
	ErrConnClosed   = errors.New("connection closed")
)

type Options struct {
	ReadLimit   int64
	PingPeriod  time.Duration
	OfferLimit  int
	OfferWindow time.Duration
	SendQueue   int
}

func DefaultOptions() Options {
	return Options{
		ReadLimit:   64 * 1024,
		PingPeriod:  30 * time.Second,
		OfferLimit:  5,
		OfferWindow: 10 * time.Second,
		SendQueue:   32,
	}
}

type SignalWSController struct {
	Registry *app.Registry
	Policy   app.Policy
	Limiter  *RoomRateLimiter
	opts     Options
}

func NewSignalWSController(reg *app.Registry, policy app.Policy, opts Options) *SignalWSController {
	if policy == nil {
		policy = app.SimplePolicy{}
	}
	return &SignalWSController{
		Registry: reg,
		Policy:   policy,
		Limiter:  NewRoomRateLimiter(opts.OfferLimit, opts.OfferWindow),
		opts:     opts,
	}
}

type WsSignalConn struct {
	conn *websocket.Conn
	send chan app.Frame

	mu     sync.RWMutex
	closed bool
}

var _ app.SignalConnection = (*WsSignalConn)(nil)

func (c *WsSignalConn) TrySend(f app.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrConnClosed
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *WsSignalConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (ctl *SignalWSController) HandleSignal(ctx context.Context, c *gin.Context) {
	id := domain.PeerID(uuid.NewString())
	log.Info().Str("module", "adapters.signal").Str("peer", string(id)).Msg("new WS connection")

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.signal").Msg("ws upgrade")
		return
	}
	ws.SetReadLimit(ctl.opts.ReadLimit)

	conn := &WsSignalConn{
		conn: ws,
		send: make(chan app.Frame, ctl.opts.SendQueue),
	}

	ctx, cancel := context.WithCancel(ctx)
	ctl.Registry.Bind(id, conn, cancel)

	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, cancel, id, conn)
}
