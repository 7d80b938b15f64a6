package core

import (
	"github.com/dkeye/Arena/internal/domain"
)

// RoomService is the core-facing API of a room.
// It owns the membership set but never touches transport resources.
type RoomService interface {
	Room() *domain.Room
	Status() domain.Status
	HostID() SessionID
	MemberCount() int
	Has(sid SessionID) bool
	TeamOf(sid SessionID) (domain.Team, bool)
	BalancedTeam() domain.Team

	AddMember(sid SessionID, name string, team domain.Team) error
	// RemoveMember reports the new host when the departing member held it.
	RemoveMember(sid SessionID) (newHost SessionID, migrated bool)
	ChangeTeam(sid SessionID, team domain.Team) error
	StartGame(requester SessionID) error

	Summary() domain.RoomSummary
}

// RoomManager is the Room Directory: the only owner of room entries.
type RoomManager interface {
	CreateRoom(hostID SessionID, hostName string, name domain.RoomName) RoomService
	GetRoom(id domain.RoomID) (RoomService, bool)
	List() []domain.RoomSummary
	DeleteIfEmpty(id domain.RoomID) bool
	Len() int
}
