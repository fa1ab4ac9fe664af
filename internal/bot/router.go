package bot

import (
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/poetbot/internal/logger"
	"github.com/m3rciful/poetbot/internal/state"
	tghelpers "github.com/m3rciful/poetbot/internal/telegram/helpers"
)

// routeTarget names the single workflow an inbound text message feeds.
type routeTarget int

const (
	routeApplication routeTarget = iota
	routeContentEdit
	routeBroadcast
	routeBlacklist
	routeFallback
)

// resolve picks exactly one target for a text message. The priority order is
// fixed: non-organizer text is always an application attempt, then the
// organizer's impersonation flag, then edit state, then armed admin states.
func resolve(isAdmin, adminAsUser bool, edit state.EditState, admin state.AdminState) routeTarget {
	if !isAdmin {
		return routeApplication
	}
	if adminAsUser {
		return routeApplication
	}
	if edit == state.EditingRules || edit == state.EditingAbout {
		return routeContentEdit
	}
	switch admin {
	case state.AwaitingBroadcast:
		return routeBroadcast
	case state.AwaitingBlacklistAdd, state.AwaitingBlacklistRemove:
		return routeBlacklist
	}
	return routeFallback
}

// onText is the single entry point for free-text input.
func (b *Bot) onText(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	userID := c.Sender().ID
	isAdmin := b.isAdmin(userID)

	if !isAdmin {
		blocked, err := b.store.IsBlacklisted(ctx, userID)
		if err != nil {
			logger.Error(ctx, "bot", "text.blacklist_check",
				slog.String("err", err.Error()),
			)
			return c.Send(msgInternalError)
		}
		if blocked {
			return c.Send(msgBlacklisted)
		}
	}

	target := resolve(isAdmin, b.state.AdminAsUser(userID), b.state.EditState(userID), b.state.AdminState(userID))
	logger.Debug(ctx, "bot", "text.route",
		slog.Int64("user_id", userID),
		slog.Int("target", int(target)),
	)

	switch target {
	case routeApplication:
		return b.handlePoemText(ctx, c)
	case routeContentEdit:
		return b.handleContentInput(ctx, c)
	case routeBroadcast:
		return b.handleBroadcastInput(ctx, c)
	case routeBlacklist:
		return b.handleBlacklistInput(ctx, c)
	}
	return c.Send(msgUseMenu, mainMenu(true))
}
