package signal

import (
	"github.com/dkeye/arena/internal/adapters/relay"
	"github.com/dkeye/arena/internal/domain"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) handleAnswer(id domain.PeerID, conn *WsSignalConn, env relay.Envelope) {
	ctl.forward(id, conn, env)
}

func (ctl *SignalWSController) handleCandidates(id domain.PeerID, conn *WsSignalConn, env relay.Envelope) {
	ctl.forward(id, conn, env)
}

// forward relays env to its addressee when the two peers are paired.
func (ctl *SignalWSController) forward(id domain.PeerID, conn *WsSignalConn, env relay.Envelope) {
	to := domain.PeerID(env.To)
	target, err := ctl.Registry.Partner(id, to)
	if err != nil {
		log.Warn().Err(err).Str("module", "adapters.signal").Str("peer", string(id)).Str("to", env.To).Str("type", env.Type).Msg("forward refused")
		ctl.sendError(id, conn, err.Error())
		return
	}
	ctl.send(to, target, relay.Envelope{Type: env.Type, From: string(id), Payload: env.Payload})
}
