package core

import (
	"errors"
	"testing"
	"time"

	"github.com/dkeye/Arena/internal/domain"
)

func newTestRoom(t *testing.T) RoomService {
	t.Helper()
	return NewRoomService(&domain.Room{ID: "r1", Name: "Test", CreatedAt: time.Now()}, "A", "Alice")
}

func TestNewRoomService_HostOnBlue(t *testing.T) {
	r := newTestRoom(t)
	s := r.Summary()

	if s.HostID != "A" || s.Status != domain.StatusWaiting || s.PlayerCount != 1 {
		t.Fatalf("unexpected summary: %+v", s)
	}
	if len(s.Teams.Blue.Players) != 1 || s.Teams.Blue.Players[0] != (domain.Player{ID: "A", Name: "Alice"}) {
		t.Fatalf("host not on blue: %+v", s.Teams.Blue)
	}
	if s.Teams.Red.Players == nil || len(s.Teams.Red.Players) != 0 {
		t.Fatalf("red roster should be empty, got %+v", s.Teams.Red.Players)
	}
	if s.Teams.Blue.Bots != domain.DefaultBots || s.Teams.Red.Bots != domain.DefaultBots {
		t.Fatalf("bot fill = %d/%d", s.Teams.Blue.Bots, s.Teams.Red.Bots)
	}
}

func TestBalancedTeam(t *testing.T) {
	r := newTestRoom(t)
	if got := r.BalancedTeam(); got != domain.TeamRed {
		t.Fatalf("BalancedTeam with host on blue = %s, want red", got)
	}
	if err := r.ChangeTeam("A", domain.TeamRed); err != nil {
		t.Fatal(err)
	}
	if got := r.BalancedTeam(); got != domain.TeamBlue {
		t.Fatalf("BalancedTeam with host on red = %s, want blue", got)
	}
	r.RemoveMember("A")
	if got := r.BalancedTeam(); got != domain.TeamBlue {
		t.Fatalf("tie should favour blue, got %s", got)
	}
}

func TestAddMember_Cap(t *testing.T) {
	r := newTestRoom(t)
	if err := r.AddMember("B", "Bob", domain.TeamRed); err != nil {
		t.Fatal(err)
	}
	before := r.Summary()
	err := r.AddMember("C", "Carol", domain.TeamBlue)
	if !errors.Is(err, domain.ErrRoomFull) {
		t.Fatalf("third member: got %v, want ErrRoomFull", err)
	}
	if r.MemberCount() != 2 || r.Has("C") {
		t.Fatal("room mutated by rejected join")
	}
	after := r.Summary()
	if len(after.Teams.Blue.Players) != len(before.Teams.Blue.Players) {
		t.Fatal("blue roster mutated by rejected join")
	}
}

func TestAddMember_AfterStart(t *testing.T) {
	r := newTestRoom(t)
	if err := r.StartGame("A"); err != nil {
		t.Fatal(err)
	}
	if err := r.AddMember("B", "Bob", domain.TeamRed); !errors.Is(err, domain.ErrGameAlreadyStarted) {
		t.Fatalf("got %v, want ErrGameAlreadyStarted", err)
	}
}

func TestRemoveMember_HostMigration(t *testing.T) {
	r := newTestRoom(t)
	_ = r.AddMember("B", "Bob", domain.TeamRed)

	newHost, migrated := r.RemoveMember("A")
	if !migrated || newHost != "B" || r.HostID() != "B" {
		t.Fatalf("host migration: newHost=%q migrated=%v host=%q", newHost, migrated, r.HostID())
	}
	if _, migrated := r.RemoveMember("B"); migrated {
		t.Fatal("last member leaving should not migrate")
	}
	if r.MemberCount() != 0 {
		t.Fatalf("member count = %d", r.MemberCount())
	}
}

func TestRemoveMember_NonHost(t *testing.T) {
	r := newTestRoom(t)
	_ = r.AddMember("B", "Bob", domain.TeamRed)
	if _, migrated := r.RemoveMember("B"); migrated {
		t.Fatal("non-host leave should not migrate")
	}
	if _, migrated := r.RemoveMember("ghost"); migrated {
		t.Fatal("absent member removal should be a no-op")
	}
	if r.HostID() != "A" || r.MemberCount() != 1 {
		t.Fatalf("host=%q count=%d", r.HostID(), r.MemberCount())
	}
}

func TestChangeTeam(t *testing.T) {
	r := newTestRoom(t)
	_ = r.AddMember("B", "Bob", domain.TeamRed)

	if err := r.ChangeTeam("A", domain.TeamBlue); !errors.Is(err, domain.ErrNoOp) {
		t.Fatalf("same team: got %v", err)
	}
	if err := r.ChangeTeam("ghost", domain.TeamRed); !errors.Is(err, domain.ErrNoOp) {
		t.Fatalf("non-member: got %v", err)
	}
	if err := r.ChangeTeam("A", domain.TeamRed); err != nil {
		t.Fatal(err)
	}
	s := r.Summary()
	if len(s.Teams.Blue.Players) != 0 || len(s.Teams.Red.Players) != 2 {
		t.Fatalf("rosters after change: %+v", s.Teams)
	}
	if s.Teams.Red.Players[0].ID != "B" || s.Teams.Red.Players[1].ID != "A" {
		t.Fatalf("mover should be appended: %+v", s.Teams.Red.Players)
	}
	if s.PlayerCount != len(s.Teams.Blue.Players)+len(s.Teams.Red.Players) {
		t.Fatal("team totals diverge from member count")
	}
}

func TestStartGame(t *testing.T) {
	r := newTestRoom(t)
	_ = r.AddMember("B", "Bob", domain.TeamRed)

	if err := r.StartGame("B"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("non-host start: got %v", err)
	}
	if r.Status() != domain.StatusWaiting {
		t.Fatal("status changed on unauthorized start")
	}
	if err := r.StartGame("A"); err != nil {
		t.Fatal(err)
	}
	if err := r.StartGame("A"); !errors.Is(err, domain.ErrGameAlreadyStarted) {
		t.Fatalf("second start: got %v", err)
	}
	r.RemoveMember("B")
	if r.Status() != domain.StatusPlaying {
		t.Fatal("status must never revert to waiting")
	}
}
