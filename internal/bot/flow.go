// Package bot implements the conversation: an identification gate, the menu
// buttons, and the spreadsheet question pipeline.
package bot

import (
	"context"
	"errors"
	"strings"

	"contratobot/core/logger"
	"contratobot/internal/auth"
	"contratobot/internal/sheets"

	"log/slog"
)

// Fetcher reads the contract spreadsheet.
type Fetcher interface {
	Fetch(ctx context.Context) (*sheets.Snapshot, error)
}

// Generator answers a question grounded on spreadsheet rows.
type Generator interface {
	Answer(ctx context.Context, rows [][]string, question string) (string, error)
}

// Action tells the handler what to do with a Decision.
type Action int

const (
	// ActionReply sends Text as a plain message.
	ActionReply Action = iota
	// ActionReplyMenu sends Text together with the menu keyboard.
	ActionReplyMenu
	// ActionClearHistory runs the history cleanup for the chat.
	ActionClearHistory
)

// Decision is the flow's verdict for one inbound message.
type Decision struct {
	Action Action
	Text   string
}

// Flow holds the conversation logic, free of any Telegram transport types so
// it can be tested directly.
type Flow struct {
	store     auth.Store
	allowed   map[string]struct{}
	fetcher   Fetcher
	generator Generator
}

// NewFlow builds the conversation flow. Allowed names are matched
// case-insensitively; callers pass them already lowercased.
func NewFlow(store auth.Store, allowedNames []string, fetcher Fetcher, generator Generator) *Flow {
	allowed := make(map[string]struct{}, len(allowedNames))
	for _, name := range allowedNames {
		allowed[strings.ToLower(strings.TrimSpace(name))] = struct{}{}
	}
	return &Flow{
		store:     store,
		allowed:   allowed,
		fetcher:   fetcher,
		generator: generator,
	}
}

// Greet resets the chat's authorization and returns the welcome prompt, so a
// restarted conversation always goes through the name gate again.
func (f *Flow) Greet(ctx context.Context, chatID int64) (Decision, error) {
	if err := f.store.Revoke(ctx, chatID); err != nil {
		return Decision{}, err
	}
	return Decision{Action: ActionReply, Text: MsgWelcome}, nil
}

// HandleText routes one inbound text message. Unauthorized chats are gated on
// their name; authorized chats get the menu buttons or the question pipeline.
func (f *Flow) HandleText(ctx context.Context, chatID int64, text string) (Decision, error) {
	normalized := strings.ToLower(strings.TrimSpace(text))

	authorized, err := f.store.Authorized(ctx, chatID)
	if err != nil {
		return Decision{}, err
	}

	if !authorized {
		if _, ok := f.allowed[normalized]; !ok {
			logger.Info(ctx, "auth", "gate.denied",
				slog.Int64("chat_id", chatID),
			)
			return Decision{Action: ActionReply, Text: MsgUnauthorized}, nil
		}
		if err := f.store.Authorize(ctx, chatID, normalized); err != nil {
			return Decision{}, err
		}
		logger.Info(ctx, "auth", "gate.granted",
			slog.Int64("chat_id", chatID),
			slog.String("username", normalized),
		)
		return Decision{Action: ActionReplyMenu, Text: MsgAuthorized}, nil
	}

	switch normalized {
	case strings.ToLower(BtnContractTerm):
		return Decision{Action: ActionReply, Text: MsgContractTerm}, nil
	case strings.ToLower(BtnClearHistory):
		return Decision{Action: ActionClearHistory}, nil
	}

	return f.answerQuestion(ctx, normalized)
}

func (f *Flow) answerQuestion(ctx context.Context, question string) (Decision, error) {
	snap, err := f.fetcher.Fetch(ctx)
	if err != nil {
		return Decision{Action: ActionReply, Text: fetchErrorMessage(err)}, nil
	}
	if len(snap.Rows) == 0 {
		return Decision{Action: ActionReply, Text: MsgSheetEmpty}, nil
	}

	answer, err := f.generator.Answer(ctx, snap.Rows, question)
	if err != nil {
		return Decision{Action: ActionReply, Text: MsgAnswerFailed}, nil
	}
	return Decision{Action: ActionReply, Text: answer}, nil
}

func fetchErrorMessage(err error) string {
	var fe *sheets.FetchError
	if !errors.As(err, &fe) {
		return MsgSheetNetwork
	}
	switch fe.Kind {
	case sheets.KindAuth:
		return MsgSheetAuth
	case sheets.KindRateLimited:
		return MsgSheetRateLimited
	case sheets.KindNotFound:
		return MsgSheetNotFound
	default:
		return MsgSheetNetwork
	}
}
