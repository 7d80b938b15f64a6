package app

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/dkeye/Arena/internal/core"
	"github.com/dkeye/Arena/internal/core/mocks"
	"go.uber.org/mock/gomock"
)

func frameEvent(t *testing.T, f core.Frame) string {
	t.Helper()
	var env core.Envelope
	if err := json.Unmarshal(f, &env); err != nil {
		t.Fatalf("bad frame: %v", err)
	}
	return env.Event
}

func TestRelay_RoomScopes(t *testing.T) {
	ctrl := gomock.NewController(t)
	reg := NewRegistry()
	a := mocks.NewMockSignalConnection(ctrl)
	b := mocks.NewMockSignalConnection(ctrl)
	outsider := mocks.NewMockSignalConnection(ctrl)
	reg.BindSignal("A", a, func() {})
	reg.BindSignal("B", b, func() {})
	reg.BindSignal("C", outsider, func() {})

	relay := NewRelay(reg)
	relay.Subscribe("r1", "A")
	relay.Subscribe("r1", "B")

	b.EXPECT().TrySend(gomock.Any()).DoAndReturn(func(f core.Frame) error {
		if ev := frameEvent(t, f); ev != "remotePlayerState" {
			t.Errorf("B got %q", ev)
		}
		return nil
	})
	res := relay.Publish([]Broadcast{{Scope: ScopeOthers, Room: "r1", Except: "A", Event: "remotePlayerState", Data: map[string]int{"health": 80}}})
	if res.SendTo != 1 || len(res.Dropped) != 0 {
		t.Fatalf("others: %+v", res)
	}

	a.EXPECT().TrySend(gomock.Any()).Return(nil)
	b.EXPECT().TrySend(gomock.Any()).Return(nil)
	res = relay.Publish([]Broadcast{{Scope: ScopeRoom, Room: "r1", Except: "A", Event: "playerKilled"}})
	if res.SendTo != 2 {
		t.Fatalf("room: %+v", res)
	}
}

func TestRelay_Global(t *testing.T) {
	ctrl := gomock.NewController(t)
	reg := NewRegistry()
	a := mocks.NewMockSignalConnection(ctrl)
	b := mocks.NewMockSignalConnection(ctrl)
	reg.BindSignal("A", a, func() {})
	reg.BindSignal("B", b, func() {})

	a.EXPECT().TrySend(gomock.Any()).Return(nil)
	b.EXPECT().TrySend(gomock.Any()).Return(errors.New("backpressure"))

	res := NewRelay(reg).Publish([]Broadcast{{Scope: ScopeGlobal, Event: "roomListUpdated"}})
	if res.SendTo != 1 || len(res.Dropped) != 1 || res.Dropped[0].SID != "B" || res.Dropped[0].Event != "roomListUpdated" {
		t.Fatalf("global: %+v", res)
	}
}

func TestRelay_Unsubscribe(t *testing.T) {
	ctrl := gomock.NewController(t)
	reg := NewRegistry()
	a := mocks.NewMockSignalConnection(ctrl)
	reg.BindSignal("A", a, func() {})

	relay := NewRelay(reg)
	relay.Subscribe("r1", "A")
	relay.Unsubscribe("r1", "A")
	relay.Unsubscribe("r1", "A")

	if got := relay.Members("r1"); len(got) != 0 {
		t.Fatalf("members after unsubscribe: %v", got)
	}
	res := relay.Publish([]Broadcast{{Scope: ScopeRoom, Room: "r1", Event: "roomUpdated"}})
	if res.SendTo != 0 {
		t.Fatalf("unsubscribed connection reached: %+v", res)
	}
}

func TestRelay_OrderPreserved(t *testing.T) {
	ctrl := gomock.NewController(t)
	reg := NewRegistry()
	b := mocks.NewMockSignalConnection(ctrl)
	reg.BindSignal("B", b, func() {})
	relay := NewRelay(reg)
	relay.Subscribe("r1", "B")

	var got []string
	b.EXPECT().TrySend(gomock.Any()).DoAndReturn(func(f core.Frame) error {
		got = append(got, frameEvent(t, f))
		return nil
	}).Times(2)

	relay.Publish([]Broadcast{
		{Scope: ScopeRoom, Room: "r1", Event: "hostChanged"},
		{Scope: ScopeRoom, Room: "r1", Event: "playerLeft"},
	})
	if len(got) != 2 || got[0] != "hostChanged" || got[1] != "playerLeft" {
		t.Fatalf("delivery order: %v", got)
	}
}
