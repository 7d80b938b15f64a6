package orch

import (
	"encoding/json"

	"github.com/dkeye/Arena/internal/domain"
)

const (
	EventRoomListUpdated     = "roomListUpdated"
	EventPlayerJoined        = "playerJoined"
	EventPlayerLeft          = "playerLeft"
	EventRoomUpdated         = "roomUpdated"
	EventHostChanged         = "hostChanged"
	EventGameStarted         = "gameStarted"
	EventRemotePlayerState   = "remotePlayerState"
	EventRemotePlayerShoot   = "remotePlayerShoot"
	EventPlayerDamaged       = "playerDamaged"
	EventPlayerKilled        = "playerKilled"
	EventRemotePlayerRespawn = "remotePlayerRespawn"
)

// Ack is the success reply shape; unused fields are omitted.
type Ack struct {
	Success  bool                `json:"success"`
	PlayerID domain.PlayerID     `json:"playerId,omitempty"`
	Name     string              `json:"name,omitempty"`
	Room     *domain.RoomSummary `json:"room,omitempty"`
}

type ErrorAck struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

func NewErrorAck(err error) ErrorAck {
	return ErrorAck{Error: err.Error(), Code: domain.Code(err)}
}

type JoinedPlayer struct {
	ID   domain.PlayerID `json:"id"`
	Name string          `json:"name"`
	Team domain.Team     `json:"team"`
}

type PlayerJoined struct {
	Player JoinedPlayer       `json:"player"`
	Room   domain.RoomSummary `json:"room"`
}

type PlayerLeft struct {
	PlayerID domain.PlayerID     `json:"playerId"`
	Room     *domain.RoomSummary `json:"room"`
}

type HostChanged struct {
	NewHostID domain.PlayerID `json:"newHostId"`
}

type GameStarted struct {
	Room domain.RoomSummary `json:"room"`
}

// HitReport is the playerHit request body; damage is relayed untouched.
type HitReport struct {
	TargetID   string          `json:"targetId"`
	Damage     json.RawMessage `json:"damage"`
	IsHeadshot bool            `json:"isHeadshot"`
}

type PlayerDamaged struct {
	TargetID   string          `json:"targetId"`
	Damage     json.RawMessage `json:"damage"`
	AttackerID domain.PlayerID `json:"attackerId"`
	IsHeadshot bool            `json:"isHeadshot"`
}

type DeathReport struct {
	KillerID   string `json:"killerId"`
	KillerName string `json:"killerName"`
}

type PlayerKilled struct {
	VictimID   domain.PlayerID `json:"victimId"`
	VictimName string          `json:"victimName"`
	KillerID   string          `json:"killerId"`
	KillerName string          `json:"killerName"`
}

type RespawnReport struct {
	Position json.RawMessage `json:"position"`
}

type RemotePlayerRespawn struct {
	PlayerID domain.PlayerID `json:"playerId"`
	Position json.RawMessage `json:"position"`
}
