// Package history remembers which messages the bot saw or sent per chat, so
// the conversation can be wiped on request. The Bot API cannot enumerate a
// chat's history, so deletion only covers messages recorded here.
package history

import "sync"

// Tracker accumulates message IDs per chat. Record matches the
// middleware.MessageObserver signature so outbound messages are captured
// automatically; inbound IDs are recorded by the update pipeline.
type Tracker struct {
	mu    sync.Mutex
	order map[int64][]int
	seen  map[int64]map[int]struct{}
}

func NewTracker() *Tracker {
	return &Tracker{
		order: make(map[int64][]int),
		seen:  make(map[int64]map[int]struct{}),
	}
}

// Record stores a message ID for the chat, ignoring duplicates.
func (t *Tracker) Record(chatID int64, messageID int) {
	if messageID == 0 {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	ids, ok := t.seen[chatID]
	if !ok {
		ids = make(map[int]struct{})
		t.seen[chatID] = ids
	}
	if _, dup := ids[messageID]; dup {
		return
	}
	ids[messageID] = struct{}{}
	t.order[chatID] = append(t.order[chatID], messageID)
}

// Drain returns all tracked IDs for the chat in recording order and forgets
// them. The caller owns the returned slice.
func (t *Tracker) Drain(chatID int64) []int {
	t.mu.Lock()
	defer t.mu.Unlock()

	ids := t.order[chatID]
	delete(t.order, chatID)
	delete(t.seen, chatID)
	return ids
}

// Len reports how many messages are currently tracked for the chat.
func (t *Tracker) Len(chatID int64) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.order[chatID])
}
