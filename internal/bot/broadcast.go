package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/poetbot/internal/broadcast"
	"github.com/m3rciful/poetbot/internal/logger"
	"github.com/m3rciful/poetbot/internal/state"
)

const broadcastPreviewLimit = 5

// promptBroadcast arms broadcast capture and shows who will receive the text.
func (b *Bot) promptBroadcast(ctx context.Context, c tele.Context) error {
	recipients, err := b.recipients(ctx)
	if err != nil {
		logger.Error(ctx, "bot", "broadcast.recipients",
			slog.String("err", err.Error()),
		)
		return c.EditOrSend(msgInternalError, adminMenu())
	}

	preview := b.renderRecipientsPreview(ctx, recipients, broadcastPreviewLimit)
	text := fmt.Sprintf(
		"📢 Рассылка для %d пользователей:\n\n"+
			"Пример получателей:\n%s\n\n"+
			"✏️ Отправьте текст для рассылки:",
		len(recipients), preview,
	)

	b.state.SetAdminState(c.Sender().ID, state.AwaitingBroadcast)
	return c.EditOrSend(text, cancelEditKeyboard())
}

func (b *Bot) recipients(ctx context.Context) ([]int64, error) {
	all, err := b.store.AllUserIDs(ctx)
	if err != nil {
		return nil, err
	}
	blacklist, err := b.store.Blacklist(ctx)
	if err != nil {
		return nil, err
	}
	return broadcast.Recipients(all, blacklist), nil
}

// previewWindow splits a recipient count into the part shown in the preview
// and the part folded into the "... и еще N" tail.
func previewWindow(total, limit int) (shown, rest int) {
	if total <= limit {
		return total, 0
	}
	return limit, total - limit
}

func (b *Bot) renderRecipientsPreview(ctx context.Context, recipients []int64, limit int) string {
	shown, rest := previewWindow(len(recipients), limit)

	lines := make([]string, 0, shown)
	for _, id := range recipients[:shown] {
		user, err := b.store.GetUser(ctx, id)
		if err != nil {
			lines = append(lines, fmt.Sprintf("• Пользователь не найден - ID: %d", id))
			continue
		}
		lines = append(lines, fmt.Sprintf("• %s (%s) - ID: %d", user.DisplayName(), user.Handle(), id))
	}

	preview := strings.Join(lines, "\n")
	if rest > 0 {
		preview += fmt.Sprintf("\n... и еще %d пользователей", rest)
	}
	return preview
}

// handleBroadcastInput consumes the broadcast body. The armed state is
// cleared at capture time, before the slow fan-out starts, so a stray message
// during the dispatch cannot start a second broadcast.
func (b *Bot) handleBroadcastInput(ctx context.Context, c tele.Context) error {
	adminID := c.Sender().ID
	body := strings.TrimSpace(c.Text())
	if body == "" {
		return c.Send("❌ Текст рассылки пуст. Отправьте текст для рассылки:")
	}

	b.state.ClearAdminState(adminID)

	recipients, err := b.recipients(ctx)
	if err != nil {
		logger.Error(ctx, "bot", "broadcast.recipients",
			slog.String("err", err.Error()),
		)
		return c.Send(msgInternalError, adminMenu())
	}

	progress, err := c.Bot().Send(c.Chat(), msgBroadcastStarted)
	if err != nil {
		return err
	}

	dispatcher := broadcast.New(
		time.Duration(b.cfg.Event.BroadcastDelayMS)*time.Millisecond,
		func(ctx context.Context, userID int64, text string) error {
			_, err := c.Bot().Send(&tele.User{ID: userID}, text)
			return err
		},
	)
	stats := dispatcher.Dispatch(ctx, recipients, body)

	report := fmt.Sprintf(
		"✅ Рассылка завершена!\n\n"+
			"• ✅ Успешно: %d\n"+
			"• ❌ Не удалось: %d\n"+
			"• 📊 Всего: %d",
		stats.Success, stats.Failed, stats.Total,
	)
	if _, err := c.Bot().Edit(progress, report); err != nil {
		logger.Warn(ctx, "bot", "broadcast.report",
			slog.String("err", err.Error()),
		)
		return c.Send(report)
	}
	return nil
}
