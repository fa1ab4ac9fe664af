package bot

import "testing"

func TestPageBounds(t *testing.T) {
	cases := []struct {
		name                       string
		n, page, size              int
		wantStart, wantEnd, wantTP int
	}{
		{"single partial page", 10, 0, 50, 0, 10, 1},
		{"exact multiple", 100, 1, 50, 50, 100, 2},
		{"last partial page", 120, 2, 50, 100, 120, 3},
		{"page clamped high", 120, 9, 50, 100, 120, 3},
		{"page clamped low", 120, -1, 50, 0, 50, 3},
		{"empty list", 0, 0, 50, 0, 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, end, tp := pageBounds(tc.n, tc.page, tc.size)
			if start != tc.wantStart || end != tc.wantEnd || tp != tc.wantTP {
				t.Fatalf("pageBounds(%d,%d,%d) = (%d,%d,%d), want (%d,%d,%d)",
					tc.n, tc.page, tc.size, start, end, tp, tc.wantStart, tc.wantEnd, tc.wantTP)
			}
		})
	}
}

func TestPageBoundsCoverEveryEntryOnce(t *testing.T) {
	const size = 50
	for _, n := range []int{1, 49, 50, 51, 100, 137} {
		seen := make(map[int]int)
		_, _, totalPages := pageBounds(n, 0, size)
		for page := 0; page < totalPages; page++ {
			start, end, _ := pageBounds(n, page, size)
			for i := start; i < end; i++ {
				seen[i]++
			}
			if page == totalPages-1 {
				wantLast := n % size
				if wantLast == 0 {
					wantLast = size
				}
				if end-start != wantLast {
					t.Errorf("n=%d last page holds %d entries, want %d", n, end-start, wantLast)
				}
			}
		}
		if len(seen) != n {
			t.Errorf("n=%d visited %d entries", n, len(seen))
		}
		for i, count := range seen {
			if count != 1 {
				t.Errorf("n=%d entry %d visited %d times", n, i, count)
			}
		}
	}
}
