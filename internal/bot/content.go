package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/poetbot/internal/logger"
	"github.com/m3rciful/poetbot/internal/state"
	"github.com/m3rciful/poetbot/internal/store"
)

// showContent renders a content entry for a regular user.
func (b *Bot) showContent(ctx context.Context, c tele.Context, key string) error {
	text, err := b.store.GetContent(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return c.EditOrSend(msgContentMissing, backToMenu())
	}
	if err != nil {
		logger.Error(ctx, "bot", "content.load",
			slog.String("key", key),
			slog.String("err", err.Error()),
		)
		return c.EditOrSend(msgInternalError, backToMenu())
	}
	return c.EditOrSend(text, backToMenu())
}

// startEditing shows the current text and arms the edit state.
func (b *Bot) startEditing(ctx context.Context, c tele.Context, st state.EditState) error {
	key := store.ContentRules
	header := "📝 Редактирование правил:"
	label := "Текущие правила:"
	if st == state.EditingAbout {
		key = store.ContentAbout
		header = "🎭 Редактирование информации об организаторе:"
		label = "Текущая информация:"
	}

	current, err := b.store.GetContent(ctx, key)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		logger.Error(ctx, "bot", "content.load",
			slog.String("key", key),
			slog.String("err", err.Error()),
		)
		return c.EditOrSend(msgInternalError, adminMenu())
	}

	b.state.SetEditState(c.Sender().ID, st)
	logger.Info(ctx, "bot", "content.edit_start",
		slog.String("key", key),
	)

	text := fmt.Sprintf("%s\n\n%s\n%s\n\n✏️ Отправьте новый текст:", header, label, current)
	return c.EditOrSend(text, cancelEditKeyboard())
}

// handleContentInput saves the new text for whichever entry is being edited.
func (b *Bot) handleContentInput(ctx context.Context, c tele.Context) error {
	adminID := c.Sender().ID
	st := b.state.EditState(adminID)

	key := store.ContentRules
	saved := msgRulesSaved
	if st == state.EditingAbout {
		key = store.ContentAbout
		saved = msgAboutSaved
	}

	if err := b.store.SetContent(ctx, key, c.Text()); err != nil {
		b.state.ClearEditState(adminID)
		logger.Error(ctx, "bot", "content.save",
			slog.String("key", key),
			slog.String("err", err.Error()),
		)
		return c.Send(msgInternalError, adminMenu())
	}

	b.state.ClearEditState(adminID)
	logger.Info(ctx, "bot", "content.saved",
		slog.String("key", key),
		slog.Int("length", len(c.Text())),
	)
	return c.Send(saved, adminMenu())
}

// cancelEditing disarms any pending admin input, both edit and broadcast or
// blacklist states, and returns to the admin menu.
func (b *Bot) cancelEditing(ctx context.Context, c tele.Context) error {
	adminID := c.Sender().ID
	b.state.ClearEditState(adminID)
	b.state.ClearAdminState(adminID)

	logger.Debug(ctx, "bot", "content.edit_cancelled",
		slog.Int64("user_id", adminID),
	)
	return c.EditOrSend(msgEditCancelled, adminMenu())
}
