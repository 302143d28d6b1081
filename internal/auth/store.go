// Package auth decides who may talk to the bot and remembers who already
// identified themselves.
package auth

import "context"

// Store persists which chats have completed identification and under which
// name. Implementations must be safe for concurrent use.
type Store interface {
	// Authorize records that the chat identified itself with the given name.
	Authorize(ctx context.Context, chatID int64, name string) error

	// Authorized reports whether the chat has already identified itself.
	Authorized(ctx context.Context, chatID int64) (bool, error)

	// Revoke forgets the chat's authorization, forcing re-identification.
	Revoke(ctx context.Context, chatID int64) error
}
