package commands

import (
	tele "gopkg.in/telebot.v4"
)

// Command declares a slash command: its handler plus the metadata used for
// menu registration and admin gating.
type Command struct {
	Handler     tele.HandlerFunc
	Description string
	AdminOnly   bool
	Hidden      bool
	Aliases     []string
}
