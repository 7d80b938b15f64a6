package core

import "github.com/dkeye/Arena/internal/domain"

// SessionID identifies one live transport connection.
type SessionID string

func (sid SessionID) PlayerID() domain.PlayerID { return domain.PlayerID(sid) }
