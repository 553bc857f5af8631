package rtc

import (
	"testing"

	"github.com/pion/webrtc/v4"
)

func cand(s string) webrtc.ICECandidateInit { return webrtc.ICECandidateInit{Candidate: s} }

func TestGateWaitsForBothConditions(t *testing.T) {
	var g candidateGate
	var flushes [][]webrtc.ICECandidateInit
	flush := func(l []webrtc.ICECandidateInit) { flushes = append(flushes, l) }

	g.add(cand("a"))
	g.open(flush)
	if len(flushes) != 0 {
		t.Fatal("flushed before gathering completed")
	}
	g.add(cand("b"))
	g.complete()
	if len(flushes) != 1 || len(flushes[0]) != 2 {
		t.Fatalf("flushes = %v", flushes)
	}
	if flushes[0][0].Candidate != "a" || flushes[0][1].Candidate != "b" {
		t.Fatalf("order = %v", flushes[0])
	}
}

func TestGateCompleteThenOpen(t *testing.T) {
	var g candidateGate
	count := 0
	g.add(cand("a"))
	g.complete()
	if count != 0 {
		t.Fatal("flushed before open")
	}
	g.open(func([]webrtc.ICECandidateInit) { count++ })
	if count != 1 {
		t.Fatalf("count = %d", count)
	}
}

func TestGateFlushesOnce(t *testing.T) {
	var g candidateGate
	count := 0
	flush := func([]webrtc.ICECandidateInit) { count++ }
	g.open(flush)
	g.complete()
	g.complete()
	g.open(flush)
	g.add(cand("late"))
	g.complete()
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}
}
