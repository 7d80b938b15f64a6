package app

import (
	"fmt"

	"github.com/dkeye/Arena/internal/core"
)

type BackpressureAction int

const (
	NoAction BackpressureAction = iota
	KickMember
	DropFrame
)

// Policy decides what happens to a connection whose send buffer is full.
type Policy interface {
	OnBackPressure(sid core.SessionID, event string) BackpressureAction
}

type SimplePolicy struct {
	Action BackpressureAction
}

func (p SimplePolicy) OnBackPressure(core.SessionID, string) BackpressureAction {
	return p.Action
}

// ParsePolicy maps the config value ("drop" or "kick") to a policy.
func ParsePolicy(mode string) (Policy, error) {
	switch mode {
	case "", "drop":
		return SimplePolicy{Action: DropFrame}, nil
	case "kick":
		return SimplePolicy{Action: KickMember}, nil
	default:
		return nil, fmt.Errorf("unknown backpressure policy %q", mode)
	}
}
