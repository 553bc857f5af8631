package signal

import (
	"github.com/dkeye/arena/internal/adapters/relay"
	"github.com/dkeye/arena/internal/domain"
)

func (ctl *SignalWSController) handlePing(id domain.PeerID, conn *WsSignalConn) {
	ctl.send(id, conn, relay.Envelope{Type: relay.TypePong})
}
