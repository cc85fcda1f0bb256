// Package messages persists cached per-thread message sequences. Threads are
// created lazily on first append and grow append-only: rows are never edited
// in place.
package messages

import (
	"context"

	"github.com/ndemidova/chattr/internal/client/models"
)

// Repository stores and reads one conversation's message rows.
type Repository interface {
	// Append inserts a message into the thread identified by chatID,
	// creating the thread implicitly if this is its first message.
	Append(ctx context.Context, chatID string, m *models.Message) error

	// ListByChat returns the thread's messages newest-first. A chat id with
	// no cached entry yields a nil slice and no error.
	ListByChat(ctx context.Context, chatID string) ([]models.Message, error)

	// CountByChat returns the number of cached messages for the thread.
	CountByChat(ctx context.Context, chatID string) (int, error)

	// TrimToNewest deletes all but the limit newest rows of the thread.
	TrimToNewest(ctx context.Context, chatID string, limit int) error
}
