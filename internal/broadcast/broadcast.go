// Package broadcast implements the one-shot fan-out of a text message to all
// non-blacklisted users with per-recipient success/failure accounting.
package broadcast

import (
	"context"
	"log/slog"
	"time"

	"github.com/m3rciful/poetbot/internal/logger"
)

// SendFunc delivers a text to one recipient. Any error counts as a failure
// for that recipient; the dispatch continues.
type SendFunc func(ctx context.Context, userID int64, text string) error

// Stats accumulates the outcome of a dispatch. Success+Failed always equals Total.
type Stats struct {
	Success int
	Failed  int
	Total   int
}

// Dispatcher sends broadcasts sequentially with a courtesy delay between sends.
type Dispatcher struct {
	delay time.Duration
	send  SendFunc
	sleep func(time.Duration)
}

// New constructs a Dispatcher delivering through send with the given delay.
func New(delay time.Duration, send SendFunc) *Dispatcher {
	return &Dispatcher{
		delay: delay,
		send:  send,
		sleep: time.Sleep,
	}
}

// Recipients computes allUsers minus blacklist, preserving storage order.
func Recipients(all, blacklist []int64) []int64 {
	if len(all) == 0 {
		return nil
	}
	blocked := make(map[int64]struct{}, len(blacklist))
	for _, id := range blacklist {
		blocked[id] = struct{}{}
	}
	out := make([]int64, 0, len(all))
	for _, id := range all {
		if _, ok := blocked[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}

// Dispatch sends text to every recipient in order. A failed recipient is
// counted and skipped; there is no retry. A dispatch over zero recipients
// returns immediately with zeroed stats.
func (d *Dispatcher) Dispatch(ctx context.Context, recipients []int64, text string) Stats {
	stats := Stats{Total: len(recipients)}
	if stats.Total == 0 {
		return stats
	}

	logger.Info(ctx, "broadcast", "dispatch.start",
		slog.Int("recipients", stats.Total),
	)

	for _, userID := range recipients {
		if err := d.send(ctx, userID, text); err != nil {
			stats.Failed++
			logger.Warn(ctx, "broadcast", "send.fail",
				slog.Int64("user_id", userID),
				slog.String("err", err.Error()),
			)
		} else {
			stats.Success++
		}
		// Courtesy delay so the transport's flood limits are not tripped.
		if d.delay > 0 {
			d.sleep(d.delay)
		}
	}

	logger.Info(ctx, "broadcast", "dispatch.done",
		slog.Int("success", stats.Success),
		slog.Int("failed", stats.Failed),
		slog.Int("total", stats.Total),
	)
	return stats
}
