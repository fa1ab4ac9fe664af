// Package bot contains the conversational workflows of the poetry-night bot:
// application submission, the organizer's moderation queue, blacklist
// management, content editing and broadcasts.
package bot

import (
	"context"
	"log/slog"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/poetbot/internal/action"
	"github.com/m3rciful/poetbot/internal/config"
	"github.com/m3rciful/poetbot/internal/logger"
	"github.com/m3rciful/poetbot/internal/state"
	"github.com/m3rciful/poetbot/internal/store"
	"github.com/m3rciful/poetbot/internal/telegram"
	tghelpers "github.com/m3rciful/poetbot/internal/telegram/helpers"
	"github.com/m3rciful/poetbot/internal/telegram/middleware"
)

// Bot wires the store and conversational state into telegram handlers.
type Bot struct {
	cfg   *config.Config
	store *store.Store
	state *state.Manager
}

// New constructs a Bot over the given store and state manager.
func New(cfg *config.Config, st *store.Store, sm *state.Manager) *Bot {
	return &Bot{cfg: cfg, store: st, state: sm}
}

func (b *Bot) adminID() int64 { return b.cfg.Telegram.AdminID }

func (b *Bot) isAdmin(userID int64) bool { return userID == b.adminID() }

// Middlewares returns the global middleware chain in registration order.
func (b *Bot) Middlewares() []telegram.Middleware {
	interval := time.Duration(b.cfg.RateLimit.IntervalMS) * time.Millisecond
	exclude := make(map[string]struct{}, len(b.cfg.RateLimit.ExcludeUpdates))
	for _, kind := range b.cfg.RateLimit.ExcludeUpdates {
		exclude[kind] = struct{}{}
	}

	return []telegram.Middleware{
		{Name: "recover", Use: middleware.RecoverMiddleware},
		{Name: "logger", Use: middleware.LoggerMiddleware},
		{Name: "rate_limit", Use: middleware.RateLimitMiddleware(middleware.RateLimitOptions{
			Interval: interval,
			Exclude:  exclude,
		})},
	}
}

// Routes returns every endpoint handled by the bot. The organizer-only
// /admin route is guarded by the admin middleware; text and callback routing
// stays open because both serve regular applicants too.
func (b *Bot) Routes() []telegram.Route {
	adminGate := middleware.AdminOnlyMiddleware(middleware.AdminOptions{
		AdminID: b.adminID(),
		OnReject: func(c tele.Context) error {
			return c.Send(msgNoAccess)
		},
	})

	return []telegram.Route{
		{Endpoint: "/start", Handler: b.onStart},
		{Endpoint: "/admin", Handler: adminGate(b.onAdmin)},
		{Endpoint: tele.OnText, Handler: b.onText},
		{Endpoint: tele.OnCallback, Handler: b.onCallback},
	}
}

// Commands returns the command list registered with Telegram.
func (b *Bot) Commands() []tele.Command {
	return []tele.Command{
		{Text: "start", Description: "Главное меню"},
	}
}

func (b *Bot) onStart(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	sender := c.Sender()

	blocked, err := b.store.IsBlacklisted(ctx, sender.ID)
	if err != nil {
		logger.Error(ctx, "bot", "start.blacklist_check",
			slog.String("err", err.Error()),
		)
		return c.Send(msgInternalError)
	}
	if blocked && !b.isAdmin(sender.ID) {
		return c.Send(msgBlacklisted)
	}

	if err := b.store.UpsertUser(ctx, sender.ID, optional(sender.Username), optional(sender.LastName), sender.FirstName); err != nil {
		logger.Error(ctx, "bot", "start.upsert_user",
			slog.String("err", err.Error()),
		)
		return c.Send(msgInternalError)
	}

	greeting := "👋 Привет, " + sender.FirstName + "!\n" +
		"Добро пожаловать в бот для подачи заявок на поэтические вечера!"
	return c.Send(greeting, mainMenu(b.isAdmin(sender.ID)))
}

// onAdmin is only reachable through the admin gate in Routes.
func (b *Bot) onAdmin(c tele.Context) error {
	return c.Send(msgAdminMenu, adminMenu())
}

// onCallback decodes the raw token once and dispatches on the typed action.
func (b *Bot) onCallback(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	sender := c.Sender()

	act, err := action.Decode(c.Callback().Data)
	if err != nil {
		logger.Warn(ctx, "bot", "callback.unknown",
			slog.String("payload", logger.SanitizeLimit(c.Callback().Data, 64)),
		)
		return c.Respond(&tele.CallbackResponse{Text: msgUnknownAction})
	}

	if act.Kind == action.Noop {
		return c.Respond()
	}

	if adminOnly(act.Kind) && !b.isAdmin(sender.ID) {
		logger.Warn(ctx, "bot", "callback.denied",
			slog.Int64("user_id", sender.ID),
		)
		if err := c.Respond(); err != nil {
			return err
		}
		return c.EditOrSend(msgNoAccess, backToMenu())
	}

	if !b.isAdmin(sender.ID) {
		blocked, err := b.store.IsBlacklisted(ctx, sender.ID)
		if err != nil {
			logger.Error(ctx, "bot", "callback.blacklist_check",
				slog.String("err", err.Error()),
			)
			return c.Respond(&tele.CallbackResponse{Text: msgInternalError})
		}
		if blocked {
			if err := c.Respond(); err != nil {
				return err
			}
			return c.EditOrSend(msgBlacklisted)
		}
	}

	// Approve/reject and the exports answer the query themselves with a
	// toast; answering twice is an API error.
	if !respondsItself(act.Kind) {
		if err := c.Respond(); err != nil {
			logger.Debug(ctx, "bot", "callback.respond",
				slog.String("err", err.Error()),
			)
		}
	}

	switch act.Kind {
	case action.MainMenu:
		return c.EditOrSend(msgMainMenu, mainMenu(b.isAdmin(sender.ID)))
	case action.Apply:
		return b.startApplication(ctx, c)
	case action.About:
		return b.showContent(ctx, c, store.ContentAbout)
	case action.Rules:
		return b.showContent(ctx, c, store.ContentRules)
	case action.SecondBlockYes:
		return b.finishApplication(ctx, c, true)
	case action.SecondBlockNo:
		return b.finishApplication(ctx, c, false)
	case action.CancelApplication:
		return b.cancelApplication(ctx, c)

	case action.AdminMenu:
		return c.EditOrSend(msgAdminMenu, adminMenu())
	case action.AdminPending:
		return b.openQueue(ctx, c)
	case action.Navigate:
		return b.showApplication(ctx, c, act.Index)
	case action.Approve:
		return b.decide(ctx, c, act.ID, store.StatusApproved)
	case action.Reject:
		return b.decide(ctx, c, act.ID, store.StatusRejected)
	case action.AdminApprovedPoems:
		return b.exportApproved(ctx, c)
	case action.AdminSecondBlock:
		return b.exportSecondBlock(ctx, c)
	case action.AdminDeleteAll:
		return b.confirmDeleteAll(ctx, c)
	case action.ConfirmDeleteAll:
		return b.deleteAll(ctx, c)
	case action.CancelDeleteAll:
		return c.EditOrSend(msgAdminMenu, adminMenu())

	case action.AdminRules:
		return b.startEditing(ctx, c, state.EditingRules)
	case action.AdminAbout:
		return b.startEditing(ctx, c, state.EditingAbout)
	case action.CancelEdit:
		return b.cancelEditing(ctx, c)

	case action.AdminBlacklist:
		return b.showBlacklistMenu(ctx, c)
	case action.BlacklistAdd:
		return b.promptBlacklist(ctx, c, state.AwaitingBlacklistAdd)
	case action.BlacklistRemove:
		return b.promptBlacklist(ctx, c, state.AwaitingBlacklistRemove)
	case action.BlacklistView:
		return b.showBlacklistPage(ctx, c, 0)
	case action.BlacklistPage:
		return b.showBlacklistPage(ctx, c, act.Page)

	case action.AdminBroadcast:
		return b.promptBroadcast(ctx, c)
	}

	logger.Warn(ctx, "bot", "callback.unhandled",
		slog.Int("kind", int(act.Kind)),
	)
	return nil
}

// adminOnly reports whether an action kind belongs to the organizer surface.
func adminOnly(kind action.Kind) bool {
	switch kind {
	case action.AdminMenu, action.AdminPending, action.AdminApprovedPoems,
		action.AdminSecondBlock, action.AdminDeleteAll, action.AdminRules,
		action.AdminAbout, action.AdminBlacklist, action.AdminBroadcast,
		action.BlacklistAdd, action.BlacklistRemove, action.BlacklistView,
		action.BlacklistPage, action.Approve, action.Reject, action.Navigate,
		action.ConfirmDeleteAll, action.CancelDeleteAll, action.CancelEdit:
		return true
	}
	return false
}

// respondsItself reports whether a handler answers the callback query with
// its own toast.
func respondsItself(kind action.Kind) bool {
	switch kind {
	case action.Approve, action.Reject, action.AdminApprovedPoems, action.AdminSecondBlock:
		return true
	}
	return false
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

// notifyUser sends text to a user, swallowing transport failures: the primary
// action must not depend on whether the recipient can still be reached.
func (b *Bot) notifyUser(ctx context.Context, c tele.Context, userID int64, text string, opts ...interface{}) {
	if _, err := c.Bot().Send(&tele.User{ID: userID}, text, opts...); err != nil {
		logger.Warn(ctx, "bot", "notify.fail",
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
	}
}
