package signal

import (
	"github.com/dkeye/arena/internal/adapters/relay"
	"github.com/dkeye/arena/internal/domain"
	"github.com/rs/zerolog/log"
)

// handleAnnounce opens a room named after the host's peer id.
func (ctl *SignalWSController) handleAnnounce(id domain.PeerID, conn *WsSignalConn) {
	if err := ctl.Registry.Announce(id); err != nil {
		ctl.sendError(id, conn, err.Error())
		return
	}
	env, err := relay.NewEnvelope(relay.TypeAssignedID, "", string(id))
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.signal").Msg("assigned-id marshal")
		return
	}
	ctl.send(id, conn, env)
}

func (ctl *SignalWSController) handleOffer(id domain.PeerID, conn *WsSignalConn, env relay.Envelope) {
	if !ctl.Limiter.Allow(id) {
		log.Warn().Str("module", "adapters.signal").Str("peer", string(id)).Msg("offer rate limited")
		ctl.sendError(id, conn, "rate_limited")
		return
	}
	room := domain.RoomID(env.To)
	host, err := ctl.Registry.Pair(id, room)
	if err != nil {
		log.Info().Err(err).Str("module", "adapters.signal").Str("room", string(room)).Msg("offer refused")
		ctl.sendError(id, conn, err.Error())
		return
	}
	log.Info().Str("module", "adapters.signal").Str("peer", string(id)).Str("room", string(room)).Msg("offer")
	ctl.send(domain.PeerID(room), host, relay.Envelope{Type: relay.TypeOffer, From: string(id), Payload: env.Payload})
}
