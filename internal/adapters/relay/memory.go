package relay

import (
	"context"
	"fmt"
	"sync"

	"github.com/dkeye/arena/internal/domain"
	"github.com/google/uuid"
	"github.com/pion/webrtc/v4"
)

// MemoryHub routes relay traffic between peers in the same process with the
// same rules as the relay server.
type MemoryHub struct {
	mu    sync.Mutex
	peers map[domain.PeerID]*MemoryRelay
	hosts map[domain.PeerID]bool
	pairs map[domain.PeerID]domain.PeerID
}

func NewMemoryHub() *MemoryHub {
	return &MemoryHub{
		peers: make(map[domain.PeerID]*MemoryRelay),
		hosts: make(map[domain.PeerID]bool),
		pairs: make(map[domain.PeerID]domain.PeerID),
	}
}

// Connect attaches a new peer to the hub.
func (h *MemoryHub) Connect() *MemoryRelay {
	r := &MemoryRelay{
		hub:        h,
		id:         domain.PeerID(uuid.NewString()),
		offers:     make(chan Offer, 8),
		answers:    make(chan Answer, 8),
		candidates: make(chan Candidates, 8),
		errs:       make(chan error, 8),
		done:       make(chan struct{}),
	}
	h.mu.Lock()
	h.peers[r.id] = r
	h.mu.Unlock()
	return r
}

func (h *MemoryHub) peer(id domain.PeerID) (*MemoryRelay, error) {
	p, ok := h.peers[id]
	if !ok {
		return nil, fmt.Errorf("%w: unknown peer %s", ErrRejected, id)
	}
	return p, nil
}

// partner returns the peer paired with from when it is to.
func (h *MemoryHub) partner(from, to domain.PeerID) (*MemoryRelay, error) {
	if h.pairs[from] != to {
		return nil, fmt.Errorf("%w: %s is not paired with %s", ErrRejected, from, to)
	}
	return h.peer(to)
}

func (h *MemoryHub) leave(id domain.PeerID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.peers, id)
	delete(h.hosts, id)
	if p, ok := h.pairs[id]; ok {
		delete(h.pairs, p)
		delete(h.pairs, id)
	}
}

type MemoryRelay struct {
	hub *MemoryHub
	id  domain.PeerID

	offers     chan Offer
	answers    chan Answer
	candidates chan Candidates
	errs       chan error

	done      chan struct{}
	closeOnce sync.Once
}

var _ Relay = (*MemoryRelay)(nil)

func (r *MemoryRelay) ID() domain.PeerID { return r.id }

func (r *MemoryRelay) Announce(context.Context) (domain.PeerID, error) {
	r.hub.mu.Lock()
	defer r.hub.mu.Unlock()
	r.hub.hosts[r.id] = true
	return r.id, nil
}

func (r *MemoryRelay) SendOffer(ctx context.Context, room domain.RoomID, offer webrtc.SessionDescription) error {
	host := domain.PeerID(room)
	r.hub.mu.Lock()
	if !r.hub.hosts[host] {
		r.hub.mu.Unlock()
		return fmt.Errorf("%w: room %s not found", ErrRejected, room)
	}
	if p, ok := r.hub.pairs[host]; ok && p != r.id {
		r.hub.mu.Unlock()
		return fmt.Errorf("%w: room %s is busy", ErrRejected, room)
	}
	target, err := r.hub.peer(host)
	if err != nil {
		r.hub.mu.Unlock()
		return err
	}
	r.hub.pairs[host] = r.id
	r.hub.pairs[r.id] = host
	r.hub.mu.Unlock()
	return deliver(ctx, target, target.offers, Offer{From: r.id, Description: offer})
}

func (r *MemoryRelay) SendAnswer(ctx context.Context, to domain.PeerID, answer webrtc.SessionDescription) error {
	r.hub.mu.Lock()
	target, err := r.hub.partner(r.id, to)
	r.hub.mu.Unlock()
	if err != nil {
		return err
	}
	return deliver(ctx, target, target.answers, Answer{From: r.id, Description: answer})
}

func (r *MemoryRelay) SendCandidates(ctx context.Context, to domain.PeerID, list []webrtc.ICECandidateInit) error {
	r.hub.mu.Lock()
	target, err := r.hub.partner(r.id, to)
	r.hub.mu.Unlock()
	if err != nil {
		return err
	}
	return deliver(ctx, target, target.candidates, Candidates{From: r.id, List: list})
}

func deliver[T any](ctx context.Context, target *MemoryRelay, ch chan T, v T) error {
	select {
	case ch <- v:
		return nil
	case <-target.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *MemoryRelay) Offers() <-chan Offer { return r.offers }

func (r *MemoryRelay) Answers() <-chan Answer { return r.answers }

func (r *MemoryRelay) Candidates() <-chan Candidates { return r.candidates }

func (r *MemoryRelay) Errors() <-chan error { return r.errs }

func (r *MemoryRelay) Close() error {
	r.closeOnce.Do(func() {
		close(r.done)
		r.hub.leave(r.id)
	})
	return nil
}
