package domain

import (
	"context"
	"time"
)

// Message is one chat line between two users about one product.
// The product's owner is always the recipient: a buyer messages the
// seller on the seller's own listing. SentAt is immutable.
type Message struct {
	ID        int64
	Body      string
	SentBy    int64
	SentTo    int64
	ProductID int64
	SentAt    time.Time
}

// MessageRepository defines persistence operations for messages.
// UpdateBody and Delete verify the claimed sender and perform the
// write in one transaction; a mismatch gets ErrNotSender.
type MessageRepository interface {
	Create(ctx context.Context, message *Message) error
	GetByID(ctx context.Context, id int64) (*Message, error)
	List(ctx context.Context) ([]Message, error)
	ListConversation(ctx context.Context, sentBy, sentTo int64) ([]Message, error)
	UpdateBody(ctx context.Context, id, senderID int64, body string) (*Message, error)
	// Delete returns the pre-deletion record.
	Delete(ctx context.Context, id, senderID int64) (*Message, error)
}
