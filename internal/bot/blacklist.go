package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/poetbot/internal/logger"
	"github.com/m3rciful/poetbot/internal/state"
	"github.com/m3rciful/poetbot/internal/store"
)

func (b *Bot) showBlacklistMenu(ctx context.Context, c tele.Context) error {
	ids, err := b.store.Blacklist(ctx)
	if err != nil {
		logger.Error(ctx, "bot", "blacklist.load",
			slog.String("err", err.Error()),
		)
		return c.EditOrSend(msgInternalError, adminMenu())
	}

	text := fmt.Sprintf("🚫 Управление черным списком\n\nТекущее количество: %d пользователей", len(ids))
	return c.EditOrSend(text, blacklistMenu())
}

// promptBlacklist arms the add or remove input state and asks for an id.
func (b *Bot) promptBlacklist(ctx context.Context, c tele.Context, st state.AdminState) error {
	prompt := msgBlacklistAddPrompt
	if st == state.AwaitingBlacklistRemove {
		prompt = msgBlacklistRemovePrompt
	}

	b.state.SetAdminState(c.Sender().ID, st)
	logger.Debug(ctx, "bot", "blacklist.armed",
		slog.String("state", string(st)),
	)
	return c.EditOrSend(prompt, backToBlacklistMenu())
}

// handleBlacklistInput consumes the id typed after a prompt. Malformed input
// and unknown users re-issue the prompt and keep the state armed so the
// organizer can retry without restarting the flow.
func (b *Bot) handleBlacklistInput(ctx context.Context, c tele.Context) error {
	adminID := c.Sender().ID
	st := b.state.AdminState(adminID)

	targetID, err := strconv.ParseInt(strings.TrimSpace(c.Text()), 10, 64)
	if err != nil {
		return c.Send(msgBlacklistBadID)
	}

	switch st {
	case state.AwaitingBlacklistAdd:
		if _, err := b.store.GetUser(ctx, targetID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.Send(msgBlacklistUserMissing)
			}
			logger.Error(ctx, "bot", "blacklist.lookup",
				slog.Int64("target_id", targetID),
				slog.String("err", err.Error()),
			)
			b.state.ClearAdminState(adminID)
			return c.Send(msgInternalError, adminMenu())
		}
		if err := b.store.AddToBlacklist(ctx, targetID); err != nil {
			logger.Error(ctx, "bot", "blacklist.add",
				slog.Int64("target_id", targetID),
				slog.String("err", err.Error()),
			)
			b.state.ClearAdminState(adminID)
			return c.Send(msgInternalError, adminMenu())
		}
		b.state.ClearAdminState(adminID)
		logger.Info(ctx, "bot", "blacklist.added",
			slog.Int64("target_id", targetID),
		)
		return c.Send(fmt.Sprintf("✅ Пользователь %d добавлен в черный список", targetID), adminMenu())

	case state.AwaitingBlacklistRemove:
		if err := b.store.RemoveFromBlacklist(ctx, targetID); err != nil {
			logger.Error(ctx, "bot", "blacklist.remove",
				slog.Int64("target_id", targetID),
				slog.String("err", err.Error()),
			)
			b.state.ClearAdminState(adminID)
			return c.Send(msgInternalError, adminMenu())
		}
		b.state.ClearAdminState(adminID)
		logger.Info(ctx, "bot", "blacklist.removed",
			slog.Int64("target_id", targetID),
		)
		return c.Send(fmt.Sprintf("✅ Пользователь %d удален из черного списка", targetID), adminMenu())
	}

	// State expired between routing and handling.
	return c.Send(msgUseMenu, adminMenu())
}

// pageBounds computes the slice bounds of page over n entries and the total
// page count. The page index is clamped into range.
func pageBounds(n, page, size int) (start, end, totalPages int) {
	if n <= 0 || size <= 0 {
		return 0, 0, 0
	}
	totalPages = (n + size - 1) / size
	if page < 0 {
		page = 0
	}
	if page >= totalPages {
		page = totalPages - 1
	}
	start = page * size
	end = start + size
	if end > n {
		end = n
	}
	return start, end, totalPages
}

// showBlacklistPage renders one page of the blacklist with navigation.
func (b *Bot) showBlacklistPage(ctx context.Context, c tele.Context, page int) error {
	ids, err := b.store.Blacklist(ctx)
	if err != nil {
		logger.Error(ctx, "bot", "blacklist.load",
			slog.String("err", err.Error()),
		)
		return c.EditOrSend(msgInternalError, blacklistMenu())
	}
	if len(ids) == 0 {
		return c.EditOrSend(msgBlacklistEmpty, blacklistMenu())
	}

	size := b.cfg.Event.BlacklistPageSize
	start, end, totalPages := pageBounds(len(ids), page, size)
	if page >= totalPages {
		page = totalPages - 1
	}
	if page < 0 {
		page = 0
	}

	var sb strings.Builder
	sb.WriteString("🚫 Черный список:\n\n")
	for i, id := range ids[start:end] {
		user, err := b.store.GetUser(ctx, id)
		if err != nil {
			fmt.Fprintf(&sb, "%d. Пользователь не найден - ID: %d\n", start+i+1, id)
			continue
		}
		fmt.Fprintf(&sb, "%d. %s (%s) - ID: %d\n", start+i+1, user.DisplayName(), user.Handle(), id)
	}

	return c.EditOrSend(sb.String(), blacklistPageKeyboard(page, totalPages))
}
