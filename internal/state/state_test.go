package state

import (
	"testing"
	"time"

	"github.com/m3rciful/poetbot/internal/store"
)

func newTestManager(clock *fakeClock) *Manager {
	m := NewManager(300*time.Second, 600*time.Second)
	m.now = clock.Now
	return m
}

type fakeClock struct {
	current time.Time
}

func (c *fakeClock) Now() time.Time { return c.current }

func (c *fakeClock) Advance(d time.Duration) { c.current = c.current.Add(d) }

func TestAdminStateExpiry(t *testing.T) {
	clock := &fakeClock{current: time.Unix(1700000000, 0)}
	m := newTestManager(clock)

	m.SetAdminState(42, AwaitingBlacklistAdd)
	if got := m.AdminState(42); got != AwaitingBlacklistAdd {
		t.Fatalf("AdminState = %q, want %q", got, AwaitingBlacklistAdd)
	}

	clock.Advance(300 * time.Second)
	if got := m.AdminState(42); got != AwaitingBlacklistAdd {
		t.Fatalf("state expired at exactly the timeout, want it still armed")
	}

	clock.Advance(1 * time.Second)
	if got := m.AdminState(42); got != AdminNone {
		t.Fatalf("AdminState after 301s = %q, want none", got)
	}
	// Expired read drops the entry for good.
	clock.Advance(-200 * time.Second)
	if got := m.AdminState(42); got != AdminNone {
		t.Fatalf("expired entry resurfaced: %q", got)
	}
}

func TestEditAndAdminStatesIndependent(t *testing.T) {
	clock := &fakeClock{current: time.Unix(1700000000, 0)}
	m := newTestManager(clock)

	m.SetEditState(7, EditingRules)
	m.SetAdminState(7, AwaitingBroadcast)

	m.ClearAdminState(7)
	if got := m.EditState(7); got != EditingRules {
		t.Fatalf("edit state lost when admin state cleared: %q", got)
	}
	m.ClearEditState(7)
	if got := m.EditState(7); got != EditNone {
		t.Fatalf("EditState after clear = %q", got)
	}
}

func TestSweepIdempotent(t *testing.T) {
	clock := &fakeClock{current: time.Unix(1700000000, 0)}
	m := newTestManager(clock)

	m.SetAdminState(1, AwaitingBroadcast)
	m.SetAdminState(2, AwaitingBlacklistRemove)
	m.SetSnapshot(1, []store.Application{{ApplicationID: 5}})

	if removed := m.Sweep(); removed != 0 {
		t.Fatalf("fresh entries swept: %d", removed)
	}

	clock.Advance(301 * time.Second)
	if removed := m.Sweep(); removed != 2 {
		t.Fatalf("Sweep removed %d, want 2 admin states", removed)
	}
	if removed := m.Sweep(); removed != 0 {
		t.Fatalf("second Sweep removed %d, want 0", removed)
	}

	clock.Advance(300 * time.Second)
	if removed := m.Sweep(); removed != 1 {
		t.Fatalf("Sweep removed %d, want 1 stale snapshot", removed)
	}
}

func TestApplicationSession(t *testing.T) {
	clock := &fakeClock{current: time.Unix(1700000000, 0)}
	m := newTestManager(clock)

	m.StartApplication(9, false)
	if !m.AwaitingPoem(9) {
		t.Fatal("expected awaiting poem after StartApplication")
	}
	if _, ok := m.PoemText(9); ok {
		t.Fatal("unexpected poem text before submission")
	}

	m.PushCleanup(9, MessageRef{ChatID: 9, MessageID: 100})
	m.PushCleanup(9, MessageRef{ChatID: 9, MessageID: 101})

	m.SetPoemText(9, "Roses are red")
	if m.AwaitingPoem(9) {
		t.Fatal("awaiting poem should be disarmed after SetPoemText")
	}
	text, ok := m.PoemText(9)
	if !ok || text != "Roses are red" {
		t.Fatalf("PoemText = %q, %v", text, ok)
	}

	refs := m.DrainCleanup(9)
	if len(refs) != 2 || refs[0].MessageID != 100 || refs[1].MessageID != 101 {
		t.Fatalf("DrainCleanup = %v", refs)
	}
	if again := m.DrainCleanup(9); again != nil {
		t.Fatalf("second drain returned %v, want nil", again)
	}

	m.ClearSession(9)
	if _, ok := m.PoemText(9); ok {
		t.Fatal("poem text survived ClearSession")
	}
}

func TestAdminAsUserFlag(t *testing.T) {
	clock := &fakeClock{current: time.Unix(1700000000, 0)}
	m := newTestManager(clock)

	m.StartApplication(77, true)
	if !m.AdminAsUser(77) {
		t.Fatal("admin-as-user flag not set")
	}
	m.ClearSession(77)
	if m.AdminAsUser(77) {
		t.Fatal("admin-as-user flag survived ClearSession")
	}
}

func TestSnapshotStaleness(t *testing.T) {
	clock := &fakeClock{current: time.Unix(1700000000, 0)}
	m := newTestManager(clock)

	apps := []store.Application{{ApplicationID: 1}, {ApplicationID: 2}, {ApplicationID: 3}}
	m.SetSnapshot(5, apps)

	got, fresh := m.Snapshot(5)
	if !fresh || len(got) != 3 {
		t.Fatalf("Snapshot = %d entries, fresh=%v", len(got), fresh)
	}

	clock.Advance(601 * time.Second)
	if _, fresh := m.Snapshot(5); fresh {
		t.Fatal("snapshot older than TTL reported fresh")
	}

	if remaining := m.RemoveFromSnapshot(5, 2); remaining != 2 {
		t.Fatalf("RemoveFromSnapshot remaining = %d, want 2", remaining)
	}
	got, _ = m.Snapshot(5)
	for _, app := range got {
		if app.ApplicationID == 2 {
			t.Fatal("removed application still in snapshot")
		}
	}

	m.ClearSnapshot(5)
	if got, _ := m.Snapshot(5); got != nil {
		t.Fatalf("snapshot after clear = %v", got)
	}
}
