package app

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"github.com/dkeye/Arena/internal/core"
	"github.com/dkeye/Arena/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type roomEntry struct {
	room core.RoomService
	seq  uint64
}

type RoomManagerImpl struct {
	mu    sync.RWMutex
	rooms map[domain.RoomID]roomEntry
	seq   uint64
	genID func() domain.RoomID
}

type RoomManagerOption func(*RoomManagerImpl)

// WithIDGenerator replaces the uuid-based room id source.
func WithIDGenerator(gen func() domain.RoomID) RoomManagerOption {
	return func(f *RoomManagerImpl) { f.genID = gen }
}

func NewRoomManager(opts ...RoomManagerOption) core.RoomManager {
	f := &RoomManagerImpl{
		rooms: make(map[domain.RoomID]roomEntry),
		genID: genRoomID,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func genRoomID() domain.RoomID {
	return domain.RoomID(uuid.NewString()[:domain.RoomIDLen])
}

func (f *RoomManagerImpl) CreateRoom(hostID core.SessionID, hostName string, name domain.RoomName) core.RoomService {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.genID()
	for {
		if _, taken := f.rooms[id]; !taken {
			break
		}
		id = f.genID()
	}
	room := core.NewRoomService(&domain.Room{ID: id, Name: name, CreatedAt: time.Now()}, hostID, hostName)
	f.seq++
	f.rooms[id] = roomEntry{room: room, seq: f.seq}
	log.Info().Str("module", "app.rooms").Str("room", string(id)).Str("name", string(name)).Msg("room created")
	return room
}

func (f *RoomManagerImpl) GetRoom(id domain.RoomID) (core.RoomService, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	e, ok := f.rooms[id]
	return e.room, ok
}

// List returns every room, playing ones included, in creation order.
func (f *RoomManagerImpl) List() []domain.RoomSummary {
	f.mu.RLock()
	entries := make([]roomEntry, 0, len(f.rooms))
	for _, e := range f.rooms {
		entries = append(entries, e)
	}
	f.mu.RUnlock()

	slices.SortFunc(entries, func(a, b roomEntry) int { return cmp.Compare(a.seq, b.seq) })
	out := make([]domain.RoomSummary, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.room.Summary())
	}
	return out
}

func (f *RoomManagerImpl) DeleteIfEmpty(id domain.RoomID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.rooms[id]
	if !ok || e.room.MemberCount() > 0 {
		return false
	}
	delete(f.rooms, id)
	log.Info().Str("module", "app.rooms").Str("room", string(id)).Msg("room deleted")
	return true
}

func (f *RoomManagerImpl) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.rooms)
}
