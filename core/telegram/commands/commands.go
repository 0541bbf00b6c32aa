package commands

import (
	tele "gopkg.in/telebot.v4"
)

// Command represents a bot command with its handler, description, and metadata.
type Command struct {
	Handler     tele.HandlerFunc
	Description string
	Hidden      bool
	Aliases     []string
	// BypassDialog marks commands that must run even while the user is in
	// an active dialogue (e.g. a restart of the profile wizard).
	BypassDialog bool
}
