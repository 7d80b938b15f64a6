package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	MaxPlayers     = 2
	DefaultBots    = 4
	MaxRoomNameLen = 36
	RoomIDLen      = 8
)

type (
	RoomName string
	RoomID   string
)

type Room struct {
	ID        RoomID
	Name      RoomName
	CreatedAt time.Time
}

type Team string

const (
	TeamBlue Team = "blue"
	TeamRed  Team = "red"
)

// Teams lists teams in balancing order; ties go to the first.
var Teams = [...]Team{TeamBlue, TeamRed}

func ParseTeam(s string) (Team, error) {
	switch t := Team(strings.ToLower(strings.TrimSpace(s))); t {
	case TeamBlue, TeamRed:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTeam, s)
	}
}

type Status string

const (
	StatusWaiting Status = "waiting"
	StatusPlaying Status = "playing"
)

// NormalizeRoomName falls back to "<host>'s room" when nothing usable is given.
func NormalizeRoomName(proposed, hostName string) RoomName {
	name := strings.TrimSpace(truncate(strings.TrimSpace(proposed), MaxRoomNameLen))
	if name == "" {
		return RoomName(hostName + "'s room")
	}
	return RoomName(name)
}

// TeamSummary and RoomSummary are the wire shape clients render lobbies from.
type TeamSummary struct {
	Players []Player `json:"players"`
	Bots    int      `json:"bots"`
}

type RoomSummary struct {
	ID          RoomID   `json:"id"`
	Name        RoomName `json:"name"`
	HostID      PlayerID `json:"hostId"`
	PlayerCount int      `json:"playerCount"`
	Status      Status   `json:"status"`
	Teams       struct {
		Blue TeamSummary `json:"blue"`
		Red  TeamSummary `json:"red"`
	} `json:"teams"`
}

// Team returns the roster summary for t.
func (s *RoomSummary) Team(t Team) *TeamSummary {
	if t == TeamRed {
		return &s.Teams.Red
	}
	return &s.Teams.Blue
}
