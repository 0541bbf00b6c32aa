package router

import (
	"strconv"
	"strings"
	"time"

	tg "fitbot/core/telegram"
	"fitbot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

func isBareInt(text string) bool {
	_, err := strconv.Atoi(strings.TrimSpace(text))
	return err == nil
}

func firstToken(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Dialog defines the minimal interface for a conversation manager.
type Dialog interface {
	InProgress(userID int64) bool
	ManagerHandler(c tele.Context) error
}

// PendingReply resolves free-text answers a previous command is waiting for,
// e.g. the gram amount after a food lookup. HasPending reports whether the
// user owes an answer; ReplyHandler consumes it. Only bare-integer messages
// are routed here, anything else falls through to command matching.
type PendingReply interface {
	HasPending(userID int64) bool
	ReplyHandler(c tele.Context) error
}

// TextOptions controls fallback behaviour for plain-text updates.
type TextOptions struct {
	UnknownText tele.HandlerFunc
}

// TextRoutes builds the OnText handler. Priority: an active dialogue first,
// then a pending reply, then command lookup, then the fallback.
func TextRoutes(dialog Dialog, pending PendingReply, reg *tg.Registry, opts TextOptions) []tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		text := c.Text()

		if c.Sender() == nil {
			return nil
		}

		if dialog != nil && dialog.InProgress(c.Sender().ID) {
			return handleWithSummary(c, "dialog", start, "", "", func() error {
				return dialog.ManagerHandler(c)
			})
		}

		if pending != nil && isBareInt(text) && pending.HasPending(c.Sender().ID) {
			return handleWithSummary(c, "pending_reply", start, "", "", func() error {
				return pending.ReplyHandler(c)
			})
		}

		if reg != nil {
			if key, cmd, ok := reg.LookupCommand(firstToken(text)); ok && cmd.Handler != nil {
				name := normalizeHandlerName(key)
				return handleWithSummary(c, name, start, "", "", func() error {
					return cmd.Handler(c)
				})
			}
		}

		if reg != nil {
			if fb := reg.TextFallback(); fb != nil {
				return handleWithSummary(c, "fallback", start, "", "", func() error {
					return fb(c)
				})
			}
		}

		if opts.UnknownText != nil {
			return handleWithSummary(c, "unknown_text", start, "", "", func() error {
				return opts.UnknownText(c)
			})
		}

		logHandlerSummary(c, "unknown_text", start, "skip", "ok", nil)
		return nil
	}

	return []tg.Route{
		{
			Endpoint: tele.OnText,
			Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
		},
	}
}
