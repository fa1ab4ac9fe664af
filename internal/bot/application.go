package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/poetbot/internal/export"
	"github.com/m3rciful/poetbot/internal/logger"
	"github.com/m3rciful/poetbot/internal/state"
	"github.com/m3rciful/poetbot/internal/store"
)

// activeApplicationNotice implements the at-most-one-active rule: it returns
// the refusal text when the user already owns an application with status
// pending or approved, including the status word shown to the user.
func activeApplicationNotice(app *store.Application) (string, bool) {
	if app == nil {
		return "", false
	}
	statusText := "на рассмотрении"
	if app.Status == store.StatusApproved {
		statusText = "принята"
	}
	return fmt.Sprintf("⚠️ У вас уже есть активная заявка (статус: %s).", statusText), true
}

// startApplication enters the submission flow. A user with an application
// still pending or already approved is turned away.
func (b *Bot) startApplication(ctx context.Context, c tele.Context) error {
	userID := c.Sender().ID

	existing, err := b.store.ActiveApplication(ctx, userID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		logger.Error(ctx, "bot", "application.check",
			slog.String("err", err.Error()),
		)
		return c.EditOrSend(msgInternalError, backToMenu())
	}
	if notice, active := activeApplicationNotice(existing); active {
		return c.EditOrSend(notice, backToMenu())
	}

	b.state.StartApplication(userID, b.isAdmin(userID))
	logger.Info(ctx, "bot", "application.start",
		slog.Int64("user_id", userID),
		slog.Bool("admin_as_user", b.isAdmin(userID)),
	)

	// Both messages go onto the cleanup list so the chat can be tidied once
	// the poem arrives or the flow is cancelled.
	if err := c.EditOrSend(msgApplicationStarted); err != nil {
		return err
	}
	if msg := c.Message(); msg != nil {
		b.state.PushCleanup(userID, state.MessageRef{ChatID: msg.Chat.ID, MessageID: msg.ID})
	}

	instruction, err := c.Bot().Send(c.Chat(), msgAskPoem, cancelApplicationKeyboard())
	if err != nil {
		return err
	}
	b.state.PushCleanup(userID, state.MessageRef{ChatID: instruction.Chat.ID, MessageID: instruction.ID})
	return nil
}

// handlePoemText consumes the poem while poem capture is armed. Any other
// text is inert so stray messages are never misread as a submission.
func (b *Bot) handlePoemText(ctx context.Context, c tele.Context) error {
	userID := c.Sender().ID

	if !b.state.AwaitingPoem(userID) {
		logger.Debug(ctx, "bot", "application.text_ignored",
			slog.Int64("user_id", userID),
		)
		return nil
	}

	b.state.SetPoemText(userID, c.Text())
	b.retireMessages(ctx, c, userID)

	logger.Info(ctx, "bot", "application.poem_received",
		slog.Int64("user_id", userID),
		slog.Int("length", len(c.Text())),
	)
	return c.Send(msgPoemReceived, secondBlockKeyboard())
}

// finishApplication persists the submission once the second-block choice is
// made. A missing poem means the session broke mid-flow; the user starts over.
func (b *Bot) finishApplication(ctx context.Context, c tele.Context, secondBlock bool) error {
	userID := c.Sender().ID

	poem, ok := b.state.PoemText(userID)
	if !ok {
		b.state.ClearSession(userID)
		logger.Warn(ctx, "bot", "application.no_poem",
			slog.Int64("user_id", userID),
		)
		return c.EditOrSend(msgApplicationError, mainMenu(b.isAdmin(userID)))
	}

	applicationID, err := b.store.CreateApplication(ctx, userID, poem, secondBlock)
	if err != nil {
		b.state.ClearSession(userID)
		logger.Error(ctx, "bot", "application.create",
			slog.String("err", err.Error()),
		)
		return c.EditOrSend(msgApplicationError, mainMenu(b.isAdmin(userID)))
	}

	// Clears the impersonation flag together with the rest of the session.
	b.state.ClearSession(userID)

	logger.Info(ctx, "bot", "application.submitted",
		slog.Int64("application_id", applicationID),
		slog.Int64("user_id", userID),
		slog.Bool("second_block", secondBlock),
	)

	choiceText := "без участия во втором блоке"
	if secondBlock {
		choiceText = "с участием во втором блоке"
	}
	if err := c.EditOrSend(
		fmt.Sprintf("✅ Ваша заявка %s принята на рассмотрение!\n\nМы свяжемся с вами когда проверим ваше стихотворение.", choiceText),
		backToMenu(),
	); err != nil {
		return err
	}

	if !b.isAdmin(userID) {
		b.notifyAdminAboutApplication(ctx, c, applicationID, poem, secondBlock)
	}
	return nil
}

func (b *Bot) notifyAdminAboutApplication(ctx context.Context, c tele.Context, applicationID int64, poem string, secondBlock bool) {
	sender := c.Sender()
	secondBlockText := "❌ Нет"
	if secondBlock {
		secondBlockText = "✅ Да"
	}
	username := "нет"
	if sender.Username != "" {
		username = sender.Username
	}
	name := sender.FirstName
	if sender.LastName != "" {
		name += " " + sender.LastName
	}

	text := fmt.Sprintf(
		"📨 Новая заявка! (ID: %d)\n\n"+
			"👤 Имя: %s\n"+
			"📛 Username: @%s\n"+
			"🆔 ID: %s\n"+
			"🎭 Второй блок: %s\n\n"+
			"📝 Стихотворение:\n%s",
		applicationID, name, username, strconv.FormatInt(sender.ID, 10),
		secondBlockText, export.Truncate(poem, b.cfg.Event.PoemPreviewLimit),
	)
	b.notifyUser(ctx, c, b.adminID(), text, queueLinkKeyboard())
}

// cancelApplication retires any flow messages and returns to the main menu.
func (b *Bot) cancelApplication(ctx context.Context, c tele.Context) error {
	userID := c.Sender().ID

	b.retireMessages(ctx, c, userID)
	b.state.ClearSession(userID)

	logger.Info(ctx, "bot", "application.cancelled",
		slog.Int64("user_id", userID),
	)
	return c.Send(msgApplicationCancelled, mainMenu(b.isAdmin(userID)))
}

// retireMessages best-effort deletes every message on the cleanup list.
// Deletion can fail for messages past the transport's retention window; that
// never aborts the flow.
func (b *Bot) retireMessages(ctx context.Context, c tele.Context, userID int64) {
	for _, ref := range b.state.DrainCleanup(userID) {
		stored := tele.StoredMessage{
			MessageID: strconv.Itoa(ref.MessageID),
			ChatID:    ref.ChatID,
		}
		if err := c.Bot().Delete(stored); err != nil {
			logger.Warn(ctx, "bot", "cleanup.delete_fail",
				slog.Int("message_id", ref.MessageID),
				slog.String("err", err.Error()),
			)
		}
	}
}
