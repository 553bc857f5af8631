package core

import (
	"sync"

	"github.com/dkeye/arena/internal/domain"
	"github.com/rs/zerolog/log"
)

// Directory maps room ids to rooms. Rooms stay until Remove is called.
type Directory struct {
	opts  Options
	mu    sync.RWMutex
	rooms map[domain.RoomID]RoomService
}

func NewDirectory(opts Options) *Directory {
	return &Directory{opts: opts, rooms: make(map[domain.RoomID]RoomService)}
}

func (d *Directory) GetOrCreate(id domain.RoomID) RoomService {
	d.mu.RLock()
	room, ok := d.rooms[id]
	d.mu.RUnlock()
	if ok {
		return room
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if room, ok = d.rooms[id]; ok {
		return room
	}
	room = NewRoomService(id, d.opts)
	d.rooms[id] = room
	log.Info().Str("module", "core.directory").Str("room", string(id)).Msg("room created")
	return room
}

func (d *Directory) Get(id domain.RoomID) (RoomService, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	room, ok := d.rooms[id]
	return room, ok
}

// Remove stops the room and forgets it.
func (d *Directory) Remove(id domain.RoomID) {
	d.mu.Lock()
	room, ok := d.rooms[id]
	delete(d.rooms, id)
	d.mu.Unlock()
	if ok {
		room.Stop()
		log.Info().Str("module", "core.directory").Str("room", string(id)).Msg("room removed")
	}
}
