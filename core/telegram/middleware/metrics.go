package middleware

import (
	tele "gopkg.in/telebot.v4"
)

// MessageObserver is notified about every message the bot successfully sends,
// so callers can keep per-chat message inventories.
type MessageObserver func(chatID int64, messageID int)

// observedContext wraps tele.Context to count sent messages, detect keyboard
// usage, and report sent message IDs to an observer. Sends go through
// Bot().Send so the resulting message is available for observation.
type observedContext struct {
	tele.Context
	observe MessageObserver
}

func (m observedContext) record(msg *tele.Message, hasKB bool) {
	// Update messages counter
	n := 0
	if v := m.Get("messages"); v != nil {
		if nv, ok := v.(int); ok {
			n = nv
		}
	}
	m.Set("messages", n+1)
	if hasKB {
		m.Set("kb", true)
	}
	if m.observe != nil && msg != nil && msg.Chat != nil {
		m.observe(msg.Chat.ID, msg.ID)
	}
}

func hasKeyboard(opts []interface{}) bool {
	for _, o := range opts {
		switch v := o.(type) {
		case *tele.SendOptions:
			if v != nil && v.ReplyMarkup != nil {
				return true
			}
		case *tele.ReplyMarkup:
			if v != nil {
				return true
			}
		}
	}
	return false
}

// Send proxies the send through the bot to capture the sent message.
func (m observedContext) Send(what interface{}, opts ...interface{}) error {
	msg, err := m.Bot().Send(m.Recipient(), what, opts...)
	if err == nil {
		m.record(msg, hasKeyboard(opts))
	}
	return err
}

// Reply proxies the reply through the bot to capture the sent message.
func (m observedContext) Reply(what interface{}, opts ...interface{}) error {
	sendOpts := append(append([]interface{}(nil), opts...), &tele.SendOptions{ReplyTo: m.Message()})
	msg, err := m.Bot().Send(m.Recipient(), what, sendOpts...)
	if err == nil {
		m.record(msg, hasKeyboard(opts))
	}
	return err
}

// EditOrSend edits the callback-bound message or sends a new one.
func (m observedContext) EditOrSend(what interface{}, opts ...interface{}) error {
	err := m.Context.EditOrSend(what, opts...)
	if err == nil {
		// Count edits as responses as well; edited messages are already tracked.
		m.record(nil, hasKeyboard(opts))
	}
	return err
}

// MessageMetricsMiddleware instruments the context to track the number of sent
// messages, keyboard usage, and, when obs is non-nil, the IDs of sent messages.
func MessageMetricsMiddleware(obs MessageObserver) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			// Initialize counters
			c.Set("messages", 0)
			c.Set("kb", false)
			return next(observedContext{Context: c, observe: obs})
		}
	}
}

// GetCounters reads message count and keyboard presence flags from context.
func GetCounters(c tele.Context) (int, bool) {
	msgs := 0
	if v := c.Get("messages"); v != nil {
		if n, ok := v.(int); ok {
			msgs = n
		}
	}
	kb := false
	if v := c.Get("kb"); v != nil {
		if b, ok := v.(bool); ok {
			kb = b
		}
	}
	return msgs, kb
}
