package history

import (
	"context"
	"strconv"
	"time"

	"contratobot/core/logger"

	tele "gopkg.in/telebot.v4"
	"log/slog"
)

// Deleter is the slice of the bot API the cleaner needs. *tele.Bot satisfies
// it.
type Deleter interface {
	Delete(msg tele.Editable) error
}

// Result accounts for one cleanup run. Failed counts messages Telegram
// refused to delete, typically because they are older than 48 hours or were
// already removed.
type Result struct {
	Tracked int
	Deleted int
	Failed  int
}

// Cleaner deletes every tracked message of a chat.
type Cleaner struct {
	deleter Deleter
	tracker *Tracker
}

func NewCleaner(deleter Deleter, tracker *Tracker) *Cleaner {
	return &Cleaner{deleter: deleter, tracker: tracker}
}

// Clear drains the chat's tracked IDs and deletes them one by one. A context
// cancellation stops the run early; already-drained but undeleted messages
// count as failed.
func (c *Cleaner) Clear(ctx context.Context, chatID int64) Result {
	start := time.Now()
	ids := c.tracker.Drain(chatID)
	res := Result{Tracked: len(ids)}

	for i, id := range ids {
		if ctx.Err() != nil {
			res.Failed += len(ids) - i
			break
		}
		msg := tele.StoredMessage{
			MessageID: strconv.Itoa(id),
			ChatID:    chatID,
		}
		if err := c.deleter.Delete(msg); err != nil {
			res.Failed++
			logger.Debug(ctx, "history", "clear.delete",
				slog.Int("message_id", id),
				slog.String("err", err.Error()),
			)
			continue
		}
		res.Deleted++
	}

	logger.Info(ctx, "history", "clear.done",
		slog.Int("tracked", res.Tracked),
		slog.Int("deleted", res.Deleted),
		slog.Int("failed", res.Failed),
		slog.Duration("duration", logger.Took(start)),
	)

	return res
}
