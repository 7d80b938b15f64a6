package domain

import "errors"

var (
	ErrNotRegistered      = errors.New("set a name first")
	ErrRoomNotFound       = errors.New("room not found")
	ErrRoomFull           = errors.New("room is full")
	ErrGameAlreadyStarted = errors.New("game already started")
	ErrNotInRoom          = errors.New("not in a room")
	ErrUnauthorized       = errors.New("only the host can start the game")
	ErrNoOp               = errors.New("cannot change team")
	ErrInvalidTeam        = errors.New("invalid team")
	ErrNotPlaying         = errors.New("game not in progress")
	ErrBadPayload         = errors.New("bad payload")
	ErrRateLimited        = errors.New("too many requests")
)

var codes = []struct {
	err  error
	code string
}{
	{ErrNotRegistered, "not_registered"},
	{ErrRoomNotFound, "room_not_found"},
	{ErrRoomFull, "room_full"},
	{ErrGameAlreadyStarted, "game_already_started"},
	{ErrNotInRoom, "not_in_room"},
	{ErrUnauthorized, "unauthorized"},
	{ErrNoOp, "no_op"},
	{ErrInvalidTeam, "invalid_team"},
	{ErrNotPlaying, "not_playing"},
	{ErrBadPayload, "bad_payload"},
	{ErrRateLimited, "rate_limited"},
}

// Code maps an error to its stable wire code.
func Code(err error) string {
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return "internal"
}
