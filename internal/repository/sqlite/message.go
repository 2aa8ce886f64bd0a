package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"adboard/internal/domain"
)

// MessageRepository implements domain.MessageRepository using SQLite.
type MessageRepository struct {
	db *sql.DB
}

// Create inserts a new message. The cross-entity checks (both parties
// and the product) run in the service; the foreign key constraints
// reject rows whose references disappeared in between.
func (r *MessageRepository) Create(ctx context.Context, message *domain.Message) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO messages (body, sent_by, sent_to, product_id, sent_at)
		 VALUES (?, ?, ?, ?, ?)`,
		message.Body, message.SentBy, message.SentTo, message.ProductID, now,
	)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	message.ID = id
	message.SentAt = now
	return nil
}

func (r *MessageRepository) GetByID(ctx context.Context, id int64) (*domain.Message, error) {
	message, err := scanMessage(r.db.QueryRowContext(ctx, selectMessage+" WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: message id %d", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("query message by id: %w", err)
	}
	return message, nil
}

func (r *MessageRepository) List(ctx context.Context) ([]domain.Message, error) {
	return r.queryMessages(ctx, selectMessage+" ORDER BY id")
}

func (r *MessageRepository) ListConversation(ctx context.Context, sentBy, sentTo int64) ([]domain.Message, error) {
	return r.queryMessages(ctx, selectMessage+" WHERE sent_by = ? AND sent_to = ? ORDER BY id", sentBy, sentTo)
}

// UpdateBody replaces the message text after verifying the claimed
// sender, all in one transaction.
func (r *MessageRepository) UpdateBody(ctx context.Context, id, senderID int64, body string) (*domain.Message, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	message, err := lockSent(ctx, tx, id, senderID)
	if err != nil {
		return nil, err
	}

	message.Body = body
	if _, err := tx.ExecContext(ctx,
		"UPDATE messages SET body = ? WHERE id = ?", body, id,
	); err != nil {
		return nil, fmt.Errorf("update message: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return message, nil
}

// Delete removes a message sent by senderID and returns the
// pre-deletion record.
func (r *MessageRepository) Delete(ctx context.Context, id, senderID int64) (*domain.Message, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	message, err := lockSent(ctx, tx, id, senderID)
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM messages WHERE id = ?", id); err != nil {
		return nil, fmt.Errorf("delete message: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return message, nil
}

// lockSent loads a message inside tx and verifies the claimed sender.
func lockSent(ctx context.Context, tx *sql.Tx, id, senderID int64) (*domain.Message, error) {
	message, err := scanMessage(tx.QueryRowContext(ctx, selectMessage+" WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: message id %d", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("query message: %w", err)
	}
	if message.SentBy != senderID {
		return nil, fmt.Errorf("%w: user id %d", domain.ErrNotSender, senderID)
	}
	return message, nil
}

func (r *MessageRepository) queryMessages(ctx context.Context, query string, args ...any) ([]domain.Message, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.Body, &m.SentBy, &m.SentTo, &m.ProductID, &m.SentAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

const selectMessage = "SELECT id, body, sent_by, sent_to, product_id, sent_at FROM messages"

func scanMessage(row *sql.Row) (*domain.Message, error) {
	m := &domain.Message{}
	if err := row.Scan(&m.ID, &m.Body, &m.SentBy, &m.SentTo, &m.ProductID, &m.SentAt); err != nil {
		return nil, err
	}
	return m, nil
}
