package broadcast

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRecipientsSetDifference(t *testing.T) {
	all := []int64{1, 2, 3, 4, 5}
	blacklist := []int64{2, 4, 99}

	got := Recipients(all, blacklist)
	want := []int64{1, 3, 5}
	if len(got) != len(want) {
		t.Fatalf("Recipients = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Recipients = %v, want %v", got, want)
		}
	}
}

func TestRecipientsEmpty(t *testing.T) {
	if got := Recipients(nil, []int64{1}); got != nil {
		t.Fatalf("Recipients(nil) = %v, want nil", got)
	}
	if got := Recipients([]int64{1}, nil); len(got) != 1 || got[0] != 1 {
		t.Fatalf("Recipients with empty blacklist = %v", got)
	}
}

func TestDispatchAccounting(t *testing.T) {
	failing := map[int64]bool{2: true, 4: true}
	var sent []int64
	d := New(0, func(_ context.Context, userID int64, _ string) error {
		sent = append(sent, userID)
		if failing[userID] {
			return errors.New("bot was blocked by the user")
		}
		return nil
	})

	stats := d.Dispatch(context.Background(), []int64{1, 2, 3, 4, 5}, "hello")
	if stats.Total != 5 || stats.Success != 3 || stats.Failed != 2 {
		t.Fatalf("stats = %+v", stats)
	}
	if stats.Success+stats.Failed != stats.Total {
		t.Fatalf("accounting invariant broken: %+v", stats)
	}
	if len(sent) != 5 {
		t.Fatalf("sent to %d recipients, want all 5 attempted", len(sent))
	}
}

func TestDispatchZeroRecipients(t *testing.T) {
	called := false
	d := New(time.Hour, func(context.Context, int64, string) error {
		called = true
		return nil
	})
	d.sleep = func(time.Duration) { t.Fatal("sleep called for empty dispatch") }

	stats := d.Dispatch(context.Background(), nil, "hello")
	if stats != (Stats{}) {
		t.Fatalf("stats = %+v, want zeroes", stats)
	}
	if called {
		t.Fatal("send called with no recipients")
	}
}

func TestDispatchAppliesDelay(t *testing.T) {
	var slept []time.Duration
	d := New(100*time.Millisecond, func(context.Context, int64, string) error { return nil })
	d.sleep = func(dur time.Duration) { slept = append(slept, dur) }

	d.Dispatch(context.Background(), []int64{1, 2, 3}, "hi")
	if len(slept) != 3 {
		t.Fatalf("slept %d times, want one delay per send", len(slept))
	}
	for _, dur := range slept {
		if dur != 100*time.Millisecond {
			t.Fatalf("delay = %v, want 100ms", dur)
		}
	}
}
