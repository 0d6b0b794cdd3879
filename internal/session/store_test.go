package session

import (
	"testing"
	"time"
)

func TestStoreLifecycle(t *testing.T) {
	store := NewStore(200 * time.Millisecond)
	t.Cleanup(store.Close)

	identity := Identity{UID: "u1", DisplayName: "Test User", Email: "u1@example.com"}

	token, err := store.Create(identity)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	got, ok := store.Lookup(token)
	if !ok {
		t.Fatal("expected session to be valid after create")
	}
	if got != identity {
		t.Fatalf("Lookup = %+v, want %+v", got, identity)
	}

	time.Sleep(100 * time.Millisecond)
	store.Refresh(token)

	time.Sleep(120 * time.Millisecond)
	if _, ok := store.Lookup(token); !ok {
		t.Fatal("expected session to be valid after refresh")
	}

	store.Delete(token)
	if _, ok := store.Lookup(token); ok {
		t.Fatal("expected session to be invalid after delete")
	}
}

func TestStoreExpires(t *testing.T) {
	store := NewStore(150 * time.Millisecond)
	t.Cleanup(store.Close)

	token, err := store.Create(Identity{UID: "u1"})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	time.Sleep(200 * time.Millisecond)
	if _, ok := store.Lookup(token); ok {
		t.Fatal("expected session to expire")
	}
}

func TestStoreSubscribe(t *testing.T) {
	store := NewStore(time.Minute)
	t.Cleanup(store.Close)

	var events []Event
	unsubscribe := store.Subscribe(func(ev Event) {
		events = append(events, ev)
	})

	token, err := store.Create(Identity{UID: "u1"})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	store.Delete(token)

	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	if !events[0].SignedIn || events[0].Identity.UID != "u1" {
		t.Errorf("first event = %+v, want sign-in for u1", events[0])
	}
	if events[1].SignedIn {
		t.Errorf("second event = %+v, want sign-out", events[1])
	}

	unsubscribe()
	if _, err := store.Create(Identity{UID: "u2"}); err != nil {
		t.Fatalf("create session: %v", err)
	}
	if len(events) != 2 {
		t.Errorf("events after unsubscribe = %d, want still 2", len(events))
	}
}

func TestStoreDeleteUnknownTokenNoEvent(t *testing.T) {
	store := NewStore(time.Minute)
	t.Cleanup(store.Close)

	fired := false
	store.Subscribe(func(Event) { fired = true })

	store.Delete("no-such-token")
	if fired {
		t.Error("delete of unknown token notified subscribers")
	}
}
