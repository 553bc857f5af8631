package app

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/dkeye/arena/internal/domain"
	"github.com/rs/zerolog/log"
)

var (
	ErrUnknownPeer = errors.New("unknown peer")
	ErrRoomBusy    = errors.New("room is busy")
	ErrNotPaired   = errors.New("peers are not paired")
)

// Frame is one encoded relay message.
type Frame []byte

// SignalConnection is a relay peer's outbound queue.
type SignalConnection interface {
	TrySend(f Frame) error
	Close()
}

type peerEntry struct {
	Conn    SignalConnection
	Cancel  context.CancelFunc
	Host    bool
	Partner domain.PeerID
}

// RoomInfo is a hosted room as listed by the relay.
type RoomInfo struct {
	ID     domain.RoomID `json:"id"`
	Paired bool          `json:"paired"`
}

// Registry tracks the peers connected to the relay and who is paired with
// whom. A room id is the peer id of its host.
type Registry struct {
	mu    sync.RWMutex
	peers map[domain.PeerID]*peerEntry
}

func NewRegistry() *Registry {
	return &Registry{peers: make(map[domain.PeerID]*peerEntry)}
}

func (r *Registry) Bind(id domain.PeerID, conn SignalConnection, cancel context.CancelFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.peers[id] = &peerEntry{Conn: conn, Cancel: cancel}
	log.Info().Str("module", "app.registry").Str("peer", string(id)).Msg("bound peer")
}

// Unbind drops the peer and returns the partner it was paired with.
func (r *Registry) Unbind(id domain.PeerID) (domain.PeerID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.peers[id]
	if !ok {
		return "", false
	}
	delete(r.peers, id)
	log.Info().Str("module", "app.registry").Str("peer", string(id)).Msg("unbind peer")
	if e.Partner == "" {
		return "", false
	}
	if p, ok := r.peers[e.Partner]; ok && p.Partner == id {
		p.Partner = ""
	}
	return e.Partner, true
}

func (r *Registry) Conn(id domain.PeerID) (SignalConnection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.peers[id]; ok {
		return e.Conn, true
	}
	return nil, false
}

// Announce marks the peer as hosting a room.
func (r *Registry) Announce(id domain.PeerID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.peers[id]
	if !ok {
		return ErrUnknownPeer
	}
	e.Host = true
	log.Info().Str("module", "app.registry").Str("room", string(id)).Msg("room announced")
	return nil
}

// Pair binds guest to the host of room. Repeating the pairing for the same
// guest is allowed.
func (r *Registry) Pair(guest domain.PeerID, room domain.RoomID) (SignalConnection, error) {
	host := domain.PeerID(room)
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.peers[guest]
	if !ok {
		return nil, ErrUnknownPeer
	}
	h, ok := r.peers[host]
	if !ok || !h.Host || host == guest {
		return nil, domain.ErrRoomNotFound
	}
	if h.Partner != "" && h.Partner != guest {
		return nil, ErrRoomBusy
	}
	h.Partner, g.Partner = guest, host
	log.Info().Str("module", "app.registry").Str("room", string(room)).Str("guest", string(guest)).Msg("paired")
	return h.Conn, nil
}

// Partner returns the connection of to when from is paired with it.
func (r *Registry) Partner(from, to domain.PeerID) (SignalConnection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.peers[from]
	if !ok || e.Partner != to {
		return nil, ErrNotPaired
	}
	p, ok := r.peers[to]
	if !ok {
		return nil, ErrUnknownPeer
	}
	return p.Conn, nil
}

func (r *Registry) Rooms() []RoomInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]RoomInfo, 0, len(r.peers))
	for id, e := range r.peers {
		if e.Host {
			out = append(out, RoomInfo{ID: domain.RoomID(id), Paired: e.Partner != ""})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *Registry) Cancel(id domain.PeerID) bool {
	r.mu.RLock()
	e, ok := r.peers[id]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	if e.Cancel != nil {
		e.Cancel()
	}
	log.Info().Str("module", "app.registry").Str("peer", string(id)).Msg("canceled peer")
	return true
}
