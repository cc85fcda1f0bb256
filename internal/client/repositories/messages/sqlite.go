package messages

import (
	"context"
	"fmt"

	"github.com/ndemidova/chattr/internal/client/models"
	"github.com/ndemidova/chattr/internal/dbx"
)

// SQLiteRepository implements Repository over a DBTX. Insertion order is the
// display order: reads sort on rowid descending, so the latest append always
// comes back first regardless of message timestamps.
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a repository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Append(ctx context.Context, chatID string, m *models.Message) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO messages (id, chat_id, author, body, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, m.ID, chatID, string(m.Author), m.Text, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append message to chat %s: %w", chatID, err)
	}
	return nil
}

func (r *SQLiteRepository) ListByChat(ctx context.Context, chatID string) ([]models.Message, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, author, body, created_at FROM messages
		WHERE chat_id = ? ORDER BY rowid DESC
	`, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages of chat %s: %w", chatID, err)
	}
	defer rows.Close()

	var result []models.Message
	for rows.Next() {
		var m models.Message
		var author string
		if err := rows.Scan(&m.ID, &author, &m.Text, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message row: %w", err)
		}
		m.Author = models.Author(author)
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate message rows: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) CountByChat(ctx context.Context, chatID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM messages WHERE chat_id = ?`, chatID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count messages of chat %s: %w", chatID, err)
	}
	return n, nil
}

func (r *SQLiteRepository) TrimToNewest(ctx context.Context, chatID string, limit int) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM messages WHERE chat_id = ? AND rowid NOT IN (
			SELECT rowid FROM messages WHERE chat_id = ? ORDER BY rowid DESC LIMIT ?
		)
	`, chatID, chatID, limit)
	if err != nil {
		return fmt.Errorf("failed to trim messages of chat %s: %w", chatID, err)
	}
	return nil
}
