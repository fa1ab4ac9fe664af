package bot

import (
	"strings"
	"testing"

	"github.com/m3rciful/poetbot/internal/store"
)

func TestActiveApplicationNotice(t *testing.T) {
	cases := []struct {
		name       string
		app        *store.Application
		wantActive bool
		wantStatus string
	}{
		{"no application", nil, false, ""},
		{"pending blocks with status word", &store.Application{Status: store.StatusPending}, true, "на рассмотрении"},
		{"approved blocks with status word", &store.Application{Status: store.StatusApproved}, true, "принята"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			notice, active := activeApplicationNotice(tc.app)
			if active != tc.wantActive {
				t.Fatalf("active = %v, want %v", active, tc.wantActive)
			}
			if !active {
				if notice != "" {
					t.Fatalf("notice = %q, want empty", notice)
				}
				return
			}
			if !strings.Contains(notice, tc.wantStatus) {
				t.Errorf("notice %q missing status word %q", notice, tc.wantStatus)
			}
			if !strings.Contains(notice, "активная заявка") {
				t.Errorf("notice %q is not the refusal text", notice)
			}
		})
	}
}
