package middleware

import (
	"fitbot/core/logger"
	tghelpers "fitbot/core/telegram/helpers"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// DialogManager is the minimal interface required from a conversation manager.
type DialogManager interface {
	InProgress(userID int64) bool
	ManagerHandler(c tele.Context) error
}

// DialogPriority returns a middleware that hands the update to the active
// dialogue instead of the wrapped command handler. A user answering a wizard
// question with something that looks like a command must still reach the
// wizard, otherwise numeric answers and typos would be swallowed by command
// matching. Commands marked bypass (profile restart) skip the redirect.
func DialogPriority(mgr DialogManager, bypass bool) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if mgr == nil || bypass || c.Sender() == nil {
				return next(c)
			}
			userID := c.Sender().ID
			if !mgr.InProgress(userID) {
				return next(c)
			}
			ctx := tghelpers.BuildContext(c)
			logger.TG.LogAttrs(ctx, slog.LevelDebug, "dialog.redirect",
				slog.Int64("user_id", userID),
				slog.String("payload", logger.SanitizeLimit(c.Text(), 64)),
			)
			return mgr.ManagerHandler(c)
		}
	}
}
