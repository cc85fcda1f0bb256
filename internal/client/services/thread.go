package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ndemidova/chattr/internal/client/models"
	"github.com/ndemidova/chattr/internal/client/repositories/messages"
	"github.com/ndemidova/chattr/internal/logging"
)

// ThreadService is the cache for per-conversation message state. There is no
// remote delivery behind it: threads are purely local, reconciled with
// nothing. Sequences are append-only and read newest-first.
type ThreadService interface {
	// Messages returns the cached sequence for chatID, newest first.
	// An unknown chat id yields a nil slice, never an error.
	Messages(ctx context.Context, chatID string) ([]models.Message, error)

	// Append stores a new message at the head of the thread and returns it.
	// The thread is created lazily on its first message. When a retention
	// limit is configured, the oldest rows beyond it are dropped.
	Append(ctx context.Context, chatID, text string, author models.Author) (*models.Message, error)
}

type threadService struct {
	repo messages.Repository
	log  logging.Logger

	// maxCached bounds the per-thread cache; 0 keeps everything, matching
	// the historical unbounded behavior.
	maxCached int
}

// NewThreadService constructs a ThreadService over the given repository.
func NewThreadService(repo messages.Repository, maxCached int, log logging.Logger) ThreadService {
	return &threadService{repo: repo, maxCached: maxCached, log: log.With("component", "thread")}
}

func (s *threadService) Messages(ctx context.Context, chatID string) ([]models.Message, error) {
	return s.repo.ListByChat(ctx, chatID)
}

func (s *threadService) Append(ctx context.Context, chatID, text string, author models.Author) (*models.Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("refusing to append empty message to chat %s", chatID)
	}

	m := &models.Message{
		ID:        uuid.NewString(),
		Text:      text,
		CreatedAt: time.Now().UTC(),
		Author:    author,
	}

	if err := s.repo.Append(ctx, chatID, m); err != nil {
		return nil, err
	}

	if s.maxCached > 0 {
		if err := s.repo.TrimToNewest(ctx, chatID, s.maxCached); err != nil {
			// The append itself landed; a failed trim only delays retention.
			s.log.Warn(ctx, "message retention trim failed", "chatID", chatID, "error", err)
		}
	}

	return m, nil
}
