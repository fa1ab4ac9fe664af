// Package state keeps per-user conversational state in memory: content edit
// mode, timestamped admin input states with expiry, transient application
// session data and the organizer's moderation snapshot. Nothing here is
// persisted; a restart drops all in-flight conversations by design.
package state

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/m3rciful/poetbot/internal/logger"
	"github.com/m3rciful/poetbot/internal/store"
)

// EditState marks which content entry the admin is editing.
type EditState string

const (
	// EditNone means no content edit is in progress.
	EditNone EditState = ""
	// EditingRules marks the rules text as being edited.
	EditingRules EditState = "editing_rules"
	// EditingAbout marks the about-organizer text as being edited.
	EditingAbout EditState = "editing_about"
)

// AdminState marks which free-text input the admin's next message feeds.
type AdminState string

const (
	// AdminNone means the admin has no armed input state.
	AdminNone AdminState = ""
	// AwaitingBroadcast arms capture of the broadcast body.
	AwaitingBroadcast AdminState = "awaiting_broadcast"
	// AwaitingBlacklistAdd arms capture of an id to blacklist.
	AwaitingBlacklistAdd AdminState = "awaiting_blacklist_add"
	// AwaitingBlacklistRemove arms capture of an id to unblacklist.
	AwaitingBlacklistRemove AdminState = "awaiting_blacklist_remove"
)

// MessageRef identifies a previously sent bot message scheduled for cleanup.
type MessageRef struct {
	ChatID    int64
	MessageID int
}

type adminEntry struct {
	state AdminState
	setAt time.Time
}

type session struct {
	awaitingPoem bool
	poemText     string
	adminAsUser  bool
	cleanup      []MessageRef
}

type snapshot struct {
	apps       []store.Application
	capturedAt time.Time
}

// Manager owns all conversational state maps. All operations are total; there
// are no error conditions.
type Manager struct {
	mu          sync.RWMutex
	editStates  map[int64]EditState
	adminStates map[int64]adminEntry
	sessions    map[int64]*session
	snapshots   map[int64]*snapshot

	stateTimeout time.Duration
	snapshotTTL  time.Duration
	now          func() time.Time
}

// NewManager constructs a Manager with the given expiry windows.
func NewManager(stateTimeout, snapshotTTL time.Duration) *Manager {
	return &Manager{
		editStates:   make(map[int64]EditState),
		adminStates:  make(map[int64]adminEntry),
		sessions:     make(map[int64]*session),
		snapshots:    make(map[int64]*snapshot),
		stateTimeout: stateTimeout,
		snapshotTTL:  snapshotTTL,
		now:          time.Now,
	}
}

// SetEditState arms a content edit state for the user.
func (m *Manager) SetEditState(userID int64, st EditState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if st == EditNone {
		delete(m.editStates, userID)
		return
	}
	m.editStates[userID] = st
}

// EditState returns the current edit state, or EditNone.
func (m *Manager) EditState(userID int64) EditState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.editStates[userID]
}

// ClearEditState removes the edit state for the user.
func (m *Manager) ClearEditState(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.editStates, userID)
}

// SetAdminState arms a timestamped admin input state for the user.
func (m *Manager) SetAdminState(userID int64, st AdminState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if st == AdminNone {
		delete(m.adminStates, userID)
		return
	}
	m.adminStates[userID] = adminEntry{state: st, setAt: m.now()}
}

// AdminState returns the current admin state. An entry older than the state
// timeout reads as AdminNone and is dropped on the spot.
func (m *Manager) AdminState(userID int64) AdminState {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.adminStates[userID]
	if !ok {
		return AdminNone
	}
	if m.now().Sub(entry.setAt) > m.stateTimeout {
		delete(m.adminStates, userID)
		return AdminNone
	}
	return entry.state
}

// ClearAdminState removes the admin state for the user.
func (m *Manager) ClearAdminState(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.adminStates, userID)
}

// ClearAll drops every state axis for the user.
func (m *Manager) ClearAll(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.editStates, userID)
	delete(m.adminStates, userID)
	delete(m.sessions, userID)
}

// Sweep proactively removes expired admin states and stale snapshots.
// It is idempotent and side-effect-free when nothing has expired.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	removed := 0
	for id, entry := range m.adminStates {
		if now.Sub(entry.setAt) > m.stateTimeout {
			delete(m.adminStates, id)
			removed++
		}
	}
	for id, snap := range m.snapshots {
		if now.Sub(snap.capturedAt) > m.snapshotTTL {
			delete(m.snapshots, id)
			removed++
		}
	}
	return removed
}

// StartSweeper runs Sweep on the given interval until the context is done.
func (m *Manager) StartSweeper(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := m.Sweep(); removed > 0 {
					logger.Debug(ctx, "state", "sweep",
						slog.Int("removed", removed),
					)
				}
			}
		}
	}()
}

func (m *Manager) session(userID int64) *session {
	sess, ok := m.sessions[userID]
	if !ok {
		sess = &session{}
		m.sessions[userID] = sess
	}
	return sess
}

// StartApplication resets the user's session and arms poem capture.
func (m *Manager) StartApplication(userID int64, adminAsUser bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[userID] = &session{awaitingPoem: true, adminAsUser: adminAsUser}
}

// AwaitingPoem reports whether the user's next text is a poem submission.
func (m *Manager) AwaitingPoem(userID int64) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[userID]
	return ok && sess.awaitingPoem
}

// SetPoemText stores the submitted poem and disarms poem capture.
func (m *Manager) SetPoemText(userID int64, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess := m.session(userID)
	sess.poemText = text
	sess.awaitingPoem = false
}

// PoemText returns the stored poem, if any.
func (m *Manager) PoemText(userID int64) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[userID]
	if !ok || sess.poemText == "" {
		return "", false
	}
	return sess.poemText, true
}

// AdminAsUser reports whether the organizer is exercising the applicant flow.
func (m *Manager) AdminAsUser(userID int64) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[userID]
	return ok && sess.adminAsUser
}

// PushCleanup records a bot message to be retired when the flow ends.
func (m *Manager) PushCleanup(userID int64, ref MessageRef) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess := m.session(userID)
	sess.cleanup = append(sess.cleanup, ref)
}

// DrainCleanup pops and returns all recorded cleanup handles.
func (m *Manager) DrainCleanup(userID int64) []MessageRef {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[userID]
	if !ok || len(sess.cleanup) == 0 {
		return nil
	}
	refs := sess.cleanup
	sess.cleanup = nil
	return refs
}

// ClearSession drops the user's transient application session.
func (m *Manager) ClearSession(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}

// SetSnapshot captures the ordered pending queue for the admin session.
func (m *Manager) SetSnapshot(userID int64, apps []store.Application) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[userID] = &snapshot{apps: apps, capturedAt: m.now()}
}

// Snapshot returns the captured queue and whether it is still fresh. A missing
// snapshot reads as stale with no entries.
func (m *Manager) Snapshot(userID int64) ([]store.Application, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snap, ok := m.snapshots[userID]
	if !ok {
		return nil, false
	}
	fresh := m.now().Sub(snap.capturedAt) <= m.snapshotTTL
	return snap.apps, fresh
}

// RemoveFromSnapshot drops a decided application from the captured queue and
// returns how many entries remain.
func (m *Manager) RemoveFromSnapshot(userID, applicationID int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap, ok := m.snapshots[userID]
	if !ok {
		return 0
	}
	kept := snap.apps[:0]
	for _, app := range snap.apps {
		if app.ApplicationID != applicationID {
			kept = append(kept, app)
		}
	}
	snap.apps = kept
	return len(kept)
}

// ClearSnapshot drops the admin's captured queue.
func (m *Manager) ClearSnapshot(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.snapshots, userID)
}
