package bot

import (
	"fmt"
	"time"

	"contratobot/core/buildinfo"
	tghelpers "contratobot/core/telegram/helpers"
	"contratobot/internal/history"

	tele "gopkg.in/telebot.v4"
)

// handleStart resets the chat's authorization and asks for the user's name.
func (a *App) handleStart(c tele.Context) error {
	a.recordInbound(c)

	d, err := a.flow.Greet(tghelpers.BuildContext(c), c.Chat().ID)
	if err != nil {
		return err
	}
	return a.apply(c, d)
}

// handleText runs the conversation flow for plain text messages and button
// presses.
func (a *App) handleText(c tele.Context) error {
	a.recordInbound(c)

	d, err := a.flow.HandleText(tghelpers.BuildContext(c), c.Chat().ID, c.Text())
	if err != nil {
		return err
	}
	return a.apply(c, d)
}

// handleStatus reports runtime details to the admin.
func (a *App) handleStatus(c tele.Context) error {
	a.recordInbound(c)

	uptime := time.Since(a.startedAt).Round(time.Second)
	text := fmt.Sprintf(
		"🤖 contratobot %s (%s)\nUptime: %s\nStore: %s\nModelo: %s\nIntervalo: %s\nMensagens rastreadas neste chat: %d",
		buildinfo.Version,
		buildinfo.Commit,
		uptime,
		a.cfg.Auth.Store,
		a.cfg.Gemini.Model,
		a.cfg.Sheets.ReadRange,
		a.tracker.Len(c.Chat().ID),
	)
	return tghelpers.SendText(c, text)
}

func (a *App) apply(c tele.Context, d Decision) error {
	switch d.Action {
	case ActionReplyMenu:
		return tghelpers.SendKeyboard(c, d.Text, MenuKeyboard())
	case ActionClearHistory:
		return a.clearHistory(c)
	default:
		return tghelpers.SendText(c, d.Text)
	}
}

// clearHistory deletes every tracked message of the chat, including the
// progress notice sent here, then confirms with a fresh menu. Sends bypass
// the async dispatcher so deletion runs strictly after the notice exists.
func (a *App) clearHistory(c tele.Context) error {
	if err := c.Send(MsgClearing); err != nil {
		return err
	}

	res := history.NewCleaner(c.Bot(), a.tracker).Clear(tghelpers.BuildContext(c), c.Chat().ID)

	text := MsgCleared
	if res.Deleted == 0 && res.Failed > 0 {
		text = MsgClearFailed
	}
	return c.Send(text, MenuKeyboard())
}

// recordInbound tracks the user's own message so history cleanup can remove
// it later. Outbound messages are tracked by the metrics middleware.
func (a *App) recordInbound(c tele.Context) {
	msg := c.Message()
	if msg == nil || msg.Chat == nil {
		return
	}
	a.tracker.Record(msg.Chat.ID, msg.ID)
}
