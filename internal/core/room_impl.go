package core

import (
	"fmt"
	"slices"
	"sync"

	"github.com/dkeye/Arena/internal/domain"
	"github.com/rs/zerolog/log"
)

type member struct {
	name string
	team domain.Team
}

// roomImpl is a threadsafe in-memory room.
// It never closes adapter-owned resources.
type roomImpl struct {
	room *domain.Room

	mu      sync.RWMutex
	hostID  SessionID
	status  domain.Status
	members map[SessionID]*member
	order   []SessionID // join order, used for host migration
	rosters map[domain.Team][]SessionID
	bots    map[domain.Team]int
}

// NewRoomService builds a waiting room with the host on the blue team.
func NewRoomService(room *domain.Room, hostID SessionID, hostName string) RoomService {
	r := &roomImpl{
		room:    room,
		hostID:  hostID,
		status:  domain.StatusWaiting,
		members: make(map[SessionID]*member, domain.MaxPlayers),
		rosters: make(map[domain.Team][]SessionID, len(domain.Teams)),
		bots:    make(map[domain.Team]int, len(domain.Teams)),
	}
	for _, t := range domain.Teams {
		r.bots[t] = domain.DefaultBots
	}
	r.add(hostID, hostName, domain.TeamBlue)
	return r
}

func (r *roomImpl) Room() *domain.Room { return r.room }

func (r *roomImpl) Status() domain.Status {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.status
}

func (r *roomImpl) HostID() SessionID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.hostID
}

func (r *roomImpl) MemberCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}

func (r *roomImpl) Has(sid SessionID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.members[sid]
	return ok
}

func (r *roomImpl) TeamOf(sid SessionID) (domain.Team, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.members[sid]
	if !ok {
		return "", false
	}
	return m.team, true
}

// BalancedTeam picks the team with fewer humans; ties favour blue.
func (r *roomImpl) BalancedTeam() domain.Team {
	r.mu.RLock()
	defer r.mu.RUnlock()
	best := domain.Teams[0]
	for _, t := range domain.Teams[1:] {
		if len(r.rosters[t]) < len(r.rosters[best]) {
			best = t
		}
	}
	return best
}

func (r *roomImpl) AddMember(sid SessionID, name string, team domain.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[sid]; ok {
		return nil
	}
	if r.status != domain.StatusWaiting {
		return fmt.Errorf("room %s: %w", r.room.ID, domain.ErrGameAlreadyStarted)
	}
	if len(r.members) >= domain.MaxPlayers {
		return fmt.Errorf("room %s: %w", r.room.ID, domain.ErrRoomFull)
	}
	r.add(sid, name, team)
	return nil
}

func (r *roomImpl) add(sid SessionID, name string, team domain.Team) {
	r.members[sid] = &member{name: name, team: team}
	r.order = append(r.order, sid)
	r.rosters[team] = append(r.rosters[team], sid)
	log.Info().Str("module", "core.room").Str("room", string(r.room.ID)).Str("sid", string(sid)).Str("team", string(team)).Msg("member added")
}

func (r *roomImpl) RemoveMember(sid SessionID) (SessionID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.members[sid]
	if !ok {
		return "", false
	}
	delete(r.members, sid)
	r.rosters[m.team] = slices.DeleteFunc(r.rosters[m.team], func(s SessionID) bool { return s == sid })
	r.order = slices.DeleteFunc(r.order, func(s SessionID) bool { return s == sid })
	log.Info().Str("module", "core.room").Str("room", string(r.room.ID)).Str("sid", string(sid)).Msg("member removed")

	if sid != r.hostID || len(r.order) == 0 {
		return "", false
	}
	r.hostID = r.order[0]
	log.Info().Str("module", "core.room").Str("room", string(r.room.ID)).Str("host", string(r.hostID)).Msg("host migrated")
	return r.hostID, true
}

func (r *roomImpl) ChangeTeam(sid SessionID, team domain.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.members[sid]
	if !ok || m.team == team {
		return domain.ErrNoOp
	}
	r.rosters[m.team] = slices.DeleteFunc(r.rosters[m.team], func(s SessionID) bool { return s == sid })
	r.rosters[team] = append(r.rosters[team], sid)
	m.team = team
	return nil
}

func (r *roomImpl) StartGame(requester SessionID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if requester != r.hostID {
		return domain.ErrUnauthorized
	}
	if r.status != domain.StatusWaiting {
		return domain.ErrGameAlreadyStarted
	}
	r.status = domain.StatusPlaying
	return nil
}

func (r *roomImpl) Summary() domain.RoomSummary {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s := domain.RoomSummary{
		ID:          r.room.ID,
		Name:        r.room.Name,
		HostID:      r.hostID.PlayerID(),
		PlayerCount: len(r.members),
		Status:      r.status,
	}
	for _, t := range domain.Teams {
		ts := s.Team(t)
		ts.Bots = r.bots[t]
		ts.Players = make([]domain.Player, 0, len(r.rosters[t]))
		for _, sid := range r.rosters[t] {
			ts.Players = append(ts.Players, domain.Player{ID: sid.PlayerID(), Name: r.members[sid].name})
		}
	}
	return s
}
