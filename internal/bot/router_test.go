package bot

import (
	"testing"

	"github.com/m3rciful/poetbot/internal/state"
)

func TestResolveTotality(t *testing.T) {
	edits := []state.EditState{state.EditNone, state.EditingRules, state.EditingAbout}
	admins := []state.AdminState{
		state.AdminNone,
		state.AwaitingBroadcast,
		state.AwaitingBlacklistAdd,
		state.AwaitingBlacklistRemove,
	}

	for _, isAdmin := range []bool{false, true} {
		for _, asUser := range []bool{false, true} {
			for _, edit := range edits {
				for _, admin := range admins {
					target := resolve(isAdmin, asUser, edit, admin)
					if target < routeApplication || target > routeFallback {
						t.Errorf("resolve(%v,%v,%q,%q) = %d, out of range",
							isAdmin, asUser, edit, admin, target)
					}
				}
			}
		}
	}
}

func TestResolvePriority(t *testing.T) {
	cases := []struct {
		name    string
		isAdmin bool
		asUser  bool
		edit    state.EditState
		admin   state.AdminState
		want    routeTarget
	}{
		{"non-admin always application", false, false, state.EditNone, state.AdminNone, routeApplication},
		{"non-admin ignores armed states", false, false, state.EditingRules, state.AwaitingBroadcast, routeApplication},
		{"admin as user beats edit state", true, true, state.EditingRules, state.AdminNone, routeApplication},
		{"admin as user beats broadcast", true, true, state.EditNone, state.AwaitingBroadcast, routeApplication},
		{"edit rules", true, false, state.EditingRules, state.AdminNone, routeContentEdit},
		{"edit about", true, false, state.EditingAbout, state.AdminNone, routeContentEdit},
		{"edit beats broadcast", true, false, state.EditingRules, state.AwaitingBroadcast, routeContentEdit},
		{"broadcast capture", true, false, state.EditNone, state.AwaitingBroadcast, routeBroadcast},
		{"blacklist add", true, false, state.EditNone, state.AwaitingBlacklistAdd, routeBlacklist},
		{"blacklist remove", true, false, state.EditNone, state.AwaitingBlacklistRemove, routeBlacklist},
		{"idle admin falls through", true, false, state.EditNone, state.AdminNone, routeFallback},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := resolve(tc.isAdmin, tc.asUser, tc.edit, tc.admin); got != tc.want {
				t.Fatalf("resolve = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestResolveExpiredStateFallsThrough(t *testing.T) {
	// An expired admin state reads as AdminNone from the manager, so a stray
	// numeric message lands on the fallback branch, not blacklist handling.
	if got := resolve(true, false, state.EditNone, state.AdminNone); got != routeFallback {
		t.Fatalf("resolve = %d, want routeFallback", got)
	}
}
