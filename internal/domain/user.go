// Package domain holds the relay entities plus the small pure rules on them:
// name normalisation, team parsing and the error codes sent to clients.
package domain

import (
	"strings"
	"unicode/utf8"
)

const (
	MaxPlayerNameLen  = 20
	DefaultPlayerName = "Player"
)

type PlayerID string

type Player struct {
	ID   PlayerID `json:"id"`
	Name string   `json:"name"`
}

// NormalizeName trims and truncates a proposed display name.
// Empty input yields DefaultPlayerName.
func NormalizeName(proposed string) string {
	name := truncate(strings.TrimSpace(proposed), MaxPlayerNameLen)
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultPlayerName
	}
	return name
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max])
}
