package rtc

import (
	"sync"

	"github.com/pion/webrtc/v4"
)

// candidateGate holds local candidates until gathering is complete and the
// negotiation step that lets this side talk to its peer is done. It flushes
// exactly once.
type candidateGate struct {
	mu       sync.Mutex
	list     []webrtc.ICECandidateInit
	gathered bool
	flush    func([]webrtc.ICECandidateInit)
	flushed  bool
}

func (g *candidateGate) add(c webrtc.ICECandidateInit) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.flushed {
		return
	}
	g.list = append(g.list, c)
}

// complete marks gathering as done.
func (g *candidateGate) complete() {
	g.mu.Lock()
	g.gathered = true
	g.release()
}

// open installs the flush target. The peer can now receive candidates.
func (g *candidateGate) open(flush func([]webrtc.ICECandidateInit)) {
	g.mu.Lock()
	if g.flush == nil {
		g.flush = flush
	}
	g.release()
}

// release unlocks g.mu and runs the flush if both conditions hold.
func (g *candidateGate) release() {
	if g.flushed || !g.gathered || g.flush == nil {
		g.mu.Unlock()
		return
	}
	g.flushed = true
	list, fn := g.list, g.flush
	g.list = nil
	g.mu.Unlock()
	fn(list)
}
