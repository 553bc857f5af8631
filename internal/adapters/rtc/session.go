// Package rtc negotiates the peer-to-peer transport and carries gameplay
// messages over it.
package rtc

import (
	"context"
	"fmt"
	"sync"

	"github.com/dkeye/arena/internal/adapters/relay"
	"github.com/dkeye/arena/internal/domain"
	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"
)

type Config struct {
	ICEServers []string
	Codec      Codec
}

// Session is one side of a peer connection. A guest calls Dial, a host
// calls Accept; either then waits with WaitConnected.
type Session struct {
	pc           *webrtc.PeerConnection
	mux          *Multiplexer
	addCandidate func(webrtc.ICECandidateInit) error

	ctx    context.Context
	cancel context.CancelFunc

	mu         sync.Mutex
	state      State
	claimed    bool
	err        error
	remote     domain.PeerID
	haveRemote bool
	pending    []webrtc.ICECandidateInit
	onState    []func(State)

	// applyMu keeps remote candidates in receipt order.
	applyMu sync.Mutex
	gate    candidateGate

	pcUp      chan struct{}
	upOnce    sync.Once
	handshook chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

func NewSession(cfg Config) (*Session, error) {
	codec := cfg.Codec
	if codec == nil {
		codec = JSON
	}

	se := webrtc.SettingEngine{}
	se.SetIncludeLoopbackCandidate(true)
	api := webrtc.NewAPI(webrtc.WithSettingEngine(se))

	var rc webrtc.Configuration
	if len(cfg.ICEServers) > 0 {
		rc.ICEServers = []webrtc.ICEServer{{URLs: cfg.ICEServers}}
	}
	pc, err := api.NewPeerConnection(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: new peer connection: %w", ErrTransport, err)
	}
	mux, err := newMultiplexer(pc, codec)
	if err != nil {
		_ = pc.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		pc:           pc,
		mux:          mux,
		addCandidate: pc.AddICECandidate,
		ctx:          ctx,
		cancel:       cancel,
		pcUp:         make(chan struct{}),
		handshook:    make(chan struct{}),
		done:         make(chan struct{}),
	}

	pc.OnICECandidate(func(c *webrtc.ICECandidate) {
		if c == nil {
			s.gate.complete()
			return
		}
		s.gate.add(c.ToJSON())
	})
	pc.OnConnectionStateChange(func(st webrtc.PeerConnectionState) {
		log.Debug().Str("module", "adapters.rtc").Str("pc", st.String()).Msg("peer connection state")
		switch st {
		case webrtc.PeerConnectionStateConnected:
			s.upOnce.Do(func() { close(s.pcUp) })
		case webrtc.PeerConnectionStateDisconnected, webrtc.PeerConnectionStateFailed:
			s.failWith(fmt.Errorf("%w: peer connection %s", ErrTransport, st))
		case webrtc.PeerConnectionStateClosed:
			_ = s.advance(StateClosed)
		}
	})
	return s, nil
}

func (s *Session) Channels() *Multiplexer { return s.mux }

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// OnState registers fn for every later state change.
func (s *Session) OnState(fn func(State)) {
	s.mu.Lock()
	s.onState = append(s.onState, fn)
	s.mu.Unlock()
}

// Done is closed once the session reaches Failed or Closed.
func (s *Session) Done() <-chan struct{} { return s.done }

// Err is the reason the session failed, if it did.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Dial offers a connection to the host of room and waits for its answer.
func (s *Session) Dial(ctx context.Context, rl relay.Relay, room domain.RoomID) error {
	if err := s.claim(domain.PeerID(room)); err != nil {
		return err
	}

	offer, err := s.pc.CreateOffer(nil)
	if err != nil {
		return s.fail("create-offer", err)
	}
	if err := s.pc.SetLocalDescription(offer); err != nil {
		return s.fail("set-local", err)
	}
	if err := s.advance(StateOfferCreated); err != nil {
		return err
	}

	go s.pump(rl, false)

	if err := rl.SendOffer(ctx, room, offer); err != nil {
		return s.fail("send-offer", err)
	}
	if err := s.advance(StateOfferSent); err != nil {
		return err
	}

	var answer relay.Answer
	select {
	case answer = <-rl.Answers():
	case err := <-rl.Errors():
		return s.fail("await-answer", err)
	case <-s.done:
		return s.closedErr()
	case <-ctx.Done():
		return s.fail("await-answer", ctx.Err())
	}

	s.mu.Lock()
	s.remote = answer.From
	s.mu.Unlock()

	if err := s.pc.SetRemoteDescription(answer.Description); err != nil {
		return s.fail("set-remote", err)
	}
	if err := s.advance(StateAnswerReceived); err != nil {
		return err
	}
	s.remoteReady()
	s.openGate(rl, answer.From)
	return s.advance(StateCandidateGathering)
}

// Accept answers the first offer relayed to this host and returns the
// guest's peer id. Later offers are refused.
func (s *Session) Accept(ctx context.Context, rl relay.Relay) (domain.PeerID, error) {
	if err := s.claim(""); err != nil {
		return "", err
	}

	var offer relay.Offer
	select {
	case offer = <-rl.Offers():
	case err := <-rl.Errors():
		return "", s.fail("await-offer", err)
	case <-s.done:
		return "", s.closedErr()
	case <-ctx.Done():
		return "", s.fail("await-offer", ctx.Err())
	}

	s.mu.Lock()
	s.remote = offer.From
	s.mu.Unlock()
	if err := s.advance(StateOfferReceived); err != nil {
		return "", err
	}

	go s.pump(rl, true)

	if err := s.pc.SetRemoteDescription(offer.Description); err != nil {
		return "", s.fail("set-remote", err)
	}
	s.remoteReady()

	answer, err := s.pc.CreateAnswer(nil)
	if err != nil {
		return "", s.fail("create-answer", err)
	}
	if err := s.pc.SetLocalDescription(answer); err != nil {
		return "", s.fail("set-local", err)
	}
	if err := s.advance(StateAnswerCreated); err != nil {
		return "", err
	}
	if err := rl.SendAnswer(ctx, offer.From, answer); err != nil {
		return "", s.fail("send-answer", err)
	}
	if err := s.advance(StateAnswerSent); err != nil {
		return "", err
	}
	s.openGate(rl, offer.From)
	return offer.From, s.advance(StateCandidateGathering)
}

// WaitConnected blocks until the transport is up and every channel is open.
func (s *Session) WaitConnected(ctx context.Context) error {
	select {
	case <-s.pcUp:
	case <-s.done:
		return s.closedErr()
	case <-ctx.Done():
		return ctx.Err()
	}

	wctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(s.ctx, cancel)
	defer stop()
	if err := s.mux.WaitOpen(wctx); err != nil {
		if s.ctx.Err() != nil {
			return s.closedErr()
		}
		return err
	}
	if s.State() == StateConnected {
		return nil
	}
	return s.advance(StateConnected)
}

func (s *Session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.cancel()
		_ = s.advance(StateClosed)
		err = s.pc.Close()
	})
	return err
}

func (s *Session) claim(remote domain.PeerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.claimed || s.state != StateIdle {
		return fmt.Errorf("%w: %s", ErrSessionInUse, s.state)
	}
	s.claimed = true
	s.remote = remote
	return nil
}

func (s *Session) openGate(rl relay.Relay, to domain.PeerID) {
	close(s.handshook)
	s.gate.open(func(list []webrtc.ICECandidateInit) {
		if err := rl.SendCandidates(s.ctx, to, list); err != nil {
			log.Warn().Err(err).Str("module", "adapters.rtc").Str("peer", string(to)).Msg("send candidates failed")
			return
		}
		log.Debug().Str("module", "adapters.rtc").Int("count", len(list)).Msg("candidates sent")
	})
}

// pump reads relay traffic that arrives outside the Dial/Accept call.
func (s *Session) pump(rl relay.Relay, host bool) {
	var offers <-chan relay.Offer
	if host {
		offers = rl.Offers()
	}
	var errs <-chan error
	handshook := s.handshook

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-handshook:
			errs = rl.Errors()
			handshook = nil
		case c := <-rl.Candidates():
			s.receive(c)
		case o := <-offers:
			log.Warn().Str("module", "adapters.rtc").Str("peer", string(o.From)).Msg("refusing offer: transport already in use")
		case err := <-errs:
			log.Warn().Err(err).Str("module", "adapters.rtc").Msg("relay error")
		}
	}
}

func (s *Session) receive(c relay.Candidates) {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()

	s.mu.Lock()
	if s.remote != "" && c.From != s.remote {
		s.mu.Unlock()
		log.Warn().Err(ErrUnexpectedPeer).Str("module", "adapters.rtc").Str("peer", string(c.From)).Msg("dropping candidates")
		return
	}
	if !s.haveRemote {
		s.pending = append(s.pending, c.List...)
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	s.apply(c.List)
}

// remoteReady applies the candidates buffered before the remote
// description was installed.
func (s *Session) remoteReady() {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()

	s.mu.Lock()
	s.haveRemote = true
	list := s.pending
	s.pending = nil
	s.mu.Unlock()
	s.apply(list)
}

func (s *Session) apply(list []webrtc.ICECandidateInit) {
	for _, c := range list {
		if err := s.addCandidate(c); err != nil {
			log.Warn().Err(err).Str("module", "adapters.rtc").Str("candidate", c.Candidate).Msg("add candidate failed")
		}
	}
}

func (s *Session) advance(to State) error {
	s.mu.Lock()
	from := s.state
	if !canTransition(from, to) {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s -> %s", ErrBadTransition, from, to)
	}
	s.state = to
	fns := append([]func(State){}, s.onState...)
	s.mu.Unlock()

	if to.Terminal() {
		close(s.done)
		s.cancel()
	}
	log.Debug().Str("module", "adapters.rtc").Str("from", from.String()).Str("to", to.String()).Msg("session state")
	for _, fn := range fns {
		fn(to)
	}
	return nil
}

func (s *Session) fail(step string, err error) error {
	herr := &HandshakeError{Step: step, Err: err}
	s.failWith(herr)
	return herr
}

func (s *Session) failWith(err error) {
	s.mu.Lock()
	if s.state.Terminal() {
		s.mu.Unlock()
		return
	}
	if s.err == nil {
		s.err = err
	}
	s.mu.Unlock()
	if advErr := s.advance(StateFailed); advErr == nil {
		log.Error().Err(err).Str("module", "adapters.rtc").Msg("session failed")
	}
}

func (s *Session) closedErr() error {
	if err := s.Err(); err != nil {
		return err
	}
	return fmt.Errorf("%w: session closed", ErrTransport)
}
