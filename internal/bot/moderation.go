package bot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/poetbot/internal/export"
	"github.com/m3rciful/poetbot/internal/logger"
	"github.com/m3rciful/poetbot/internal/store"
)

// openQueue captures the ordered pending queue as the organizer's working
// snapshot and shows the first entry.
func (b *Bot) openQueue(ctx context.Context, c tele.Context) error {
	pending, err := b.store.PendingApplications(ctx)
	if err != nil {
		logger.Error(ctx, "bot", "queue.load",
			slog.String("err", err.Error()),
		)
		return c.EditOrSend(msgInternalError, adminMenu())
	}
	if len(pending) == 0 {
		return c.EditOrSend(msgNoPending, adminMenu())
	}

	b.state.SetSnapshot(c.Sender().ID, pending)
	logger.Info(ctx, "bot", "queue.opened",
		slog.Int("pending", len(pending)),
	)
	return b.showApplication(ctx, c, 0)
}

// snapshotApps returns the organizer's snapshot, transparently reloading it
// from the store once it has gone stale.
func (b *Bot) snapshotApps(ctx context.Context, adminID int64) ([]store.Application, error) {
	apps, fresh := b.state.Snapshot(adminID)
	if fresh {
		return apps, nil
	}

	pending, err := b.store.PendingApplications(ctx)
	if err != nil {
		return nil, err
	}
	b.state.SetSnapshot(adminID, pending)
	logger.Debug(ctx, "bot", "queue.reloaded",
		slog.Int("pending", len(pending)),
	)
	return pending, nil
}

// showApplication renders the queue entry at index. An out-of-range index is
// a not-found response, never a crash.
func (b *Bot) showApplication(ctx context.Context, c tele.Context, index int) error {
	apps, err := b.snapshotApps(ctx, c.Sender().ID)
	if err != nil {
		logger.Error(ctx, "bot", "queue.snapshot",
			slog.String("err", err.Error()),
		)
		return c.EditOrSend(msgInternalError, adminMenu())
	}
	if index < 0 || index >= len(apps) {
		return c.EditOrSend(msgNotFound, adminMenu())
	}

	app := apps[index]
	return c.EditOrSend(renderApplication(&app), moderationKeyboard(app.ApplicationID, index, len(apps)))
}

func renderApplication(app *store.Application) string {
	secondBlock := "❌ Нет"
	if app.SecondBlock {
		secondBlock = "✅ Да"
	}
	return fmt.Sprintf(
		"📨 Заявка #%d\n\n"+
			"👤 Автор: %s\n"+
			"📛 Username: %s\n"+
			"🆔 ID: %d\n"+
			"🎭 Второй блок: %s\n"+
			"📅 Дата: %s\n\n"+
			"📝 Стихотворение:\n%s",
		app.ApplicationID,
		app.AuthorName(),
		app.AuthorHandle(),
		app.UserID,
		secondBlock,
		app.CreatedAt.Format("02.01.2006 15:04"),
		app.PoemText,
	)
}

// decide approves or rejects an application. The application may have been
// decided or deleted since the queue was captured; that reads as not-found
// and nothing is mutated.
func (b *Bot) decide(ctx context.Context, c tele.Context, applicationID int64, status string) error {
	app, err := b.store.ApplicationByID(ctx, applicationID)
	if errors.Is(err, store.ErrNotFound) {
		return c.Respond(&tele.CallbackResponse{Text: msgNotFound})
	}
	if err != nil {
		logger.Error(ctx, "bot", "moderation.load",
			slog.Int64("application_id", applicationID),
			slog.String("err", err.Error()),
		)
		return c.Respond(&tele.CallbackResponse{Text: msgInternalError})
	}

	if err := b.store.SetApplicationStatus(ctx, applicationID, status); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Respond(&tele.CallbackResponse{Text: msgNotFound})
		}
		logger.Error(ctx, "bot", "moderation.update",
			slog.Int64("application_id", applicationID),
			slog.String("err", err.Error()),
		)
		return c.Respond(&tele.CallbackResponse{Text: msgInternalError})
	}

	logger.Info(ctx, "bot", "moderation.decided",
		slog.Int64("application_id", applicationID),
		slog.String("status", status),
	)

	toast := msgApproveToast
	outcome := msgApproved
	if status == store.StatusRejected {
		toast = msgRejectToast
		outcome = msgRejected
	}
	b.notifyUser(ctx, c, app.UserID, outcome)

	if err := c.Respond(&tele.CallbackResponse{Text: toast}); err != nil {
		logger.Debug(ctx, "bot", "moderation.respond",
			slog.String("err", err.Error()),
		)
	}

	if remaining := b.state.RemoveFromSnapshot(c.Sender().ID, applicationID); remaining > 0 {
		return b.showApplication(ctx, c, 0)
	}
	return c.EditOrSend(msgAllProcessed, adminMenu())
}

// confirmDeleteAll is the first phase of the irreversible wipe: show the
// current count and demand an explicit confirmation.
func (b *Bot) confirmDeleteAll(ctx context.Context, c tele.Context) error {
	count, err := b.store.CountApplications(ctx)
	if err != nil {
		logger.Error(ctx, "bot", "delete_all.count",
			slog.String("err", err.Error()),
		)
		return c.EditOrSend(msgInternalError, adminMenu())
	}

	text := fmt.Sprintf(
		"⚠️ ВНИМАНИЕ!\n\n"+
			"Вы собираетесь удалить ВСЕ заявки (%d шт.).\n"+
			"Это действие необратимо!\n\n"+
			"Продолжить?",
		count,
	)
	return c.EditOrSend(text, deleteAllConfirmKeyboard())
}

func (b *Bot) deleteAll(ctx context.Context, c tele.Context) error {
	deleted, err := b.store.DeleteAllApplications(ctx)
	if err != nil {
		logger.Error(ctx, "bot", "delete_all.exec",
			slog.String("err", err.Error()),
		)
		return c.EditOrSend(msgInternalError, adminMenu())
	}

	b.state.ClearSnapshot(c.Sender().ID)
	logger.Info(ctx, "bot", "delete_all.done",
		slog.Int64("deleted", deleted),
	)
	return c.EditOrSend(fmt.Sprintf("✅ Удалено %d заявок", deleted), adminMenu())
}

func (b *Bot) exportApproved(ctx context.Context, c tele.Context) error {
	apps, err := b.store.ApprovedApplications(ctx)
	if err != nil {
		logger.Error(ctx, "bot", "export.approved",
			slog.String("err", err.Error()),
		)
		return c.Respond(&tele.CallbackResponse{Text: msgInternalError})
	}

	doc, err := export.ApprovedPoems(apps)
	if errors.Is(err, export.ErrNoData) {
		return c.Respond(&tele.CallbackResponse{Text: msgNoApproved})
	}
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: msgInternalError})
	}
	return b.sendDocument(ctx, c, doc, "📄 Стихи первого блока")
}

func (b *Bot) exportSecondBlock(ctx context.Context, c tele.Context) error {
	apps, err := b.store.SecondBlockApplications(ctx)
	if err != nil {
		logger.Error(ctx, "bot", "export.second_block",
			slog.String("err", err.Error()),
		)
		return c.Respond(&tele.CallbackResponse{Text: msgInternalError})
	}

	doc, err := export.SecondBlockSpeakers(apps)
	if errors.Is(err, export.ErrNoData) {
		return c.Respond(&tele.CallbackResponse{Text: msgNoSecondBlock})
	}
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: msgInternalError})
	}
	return b.sendDocument(ctx, c, doc, "👥 Список выступающих второго блока")
}

func (b *Bot) sendDocument(ctx context.Context, c tele.Context, doc *export.Document, caption string) error {
	file := &tele.Document{
		File:     tele.FromReader(bytes.NewReader(doc.Data)),
		FileName: doc.Name,
		Caption:  caption,
	}
	if _, err := c.Bot().Send(c.Sender(), file); err != nil {
		logger.Error(ctx, "bot", "export.send",
			slog.String("file", doc.Name),
			slog.String("err", err.Error()),
		)
		return c.Respond(&tele.CallbackResponse{Text: msgInternalError})
	}
	logger.Info(ctx, "bot", "export.sent",
		slog.String("file", doc.Name),
		slog.Int("bytes", len(doc.Data)),
	)
	return c.Respond(&tele.CallbackResponse{Text: msgExportSent})
}
