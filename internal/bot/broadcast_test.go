package bot

import "testing"

func TestPreviewWindow(t *testing.T) {
	cases := []struct {
		name      string
		total     int
		limit     int
		wantShown int
		wantRest  int
	}{
		{"empty", 0, 5, 0, 0},
		{"under limit", 3, 5, 3, 0},
		{"exactly limit", 5, 5, 5, 0},
		{"one over", 6, 5, 5, 1},
		{"far over", 42, 5, 5, 37},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			shown, rest := previewWindow(tc.total, tc.limit)
			if shown != tc.wantShown || rest != tc.wantRest {
				t.Fatalf("previewWindow(%d, %d) = (%d, %d), want (%d, %d)",
					tc.total, tc.limit, shown, rest, tc.wantShown, tc.wantRest)
			}
			if shown+rest != tc.total {
				t.Errorf("shown+rest = %d, every recipient must be accounted for (total %d)",
					shown+rest, tc.total)
			}
		})
	}
}
