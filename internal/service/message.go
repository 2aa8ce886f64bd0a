package service

import (
	"context"
	"fmt"

	"adboard/internal/domain"
)

// MessageService handles per-product chat messages. A message always
// goes to the owner of the product it is about; the sender is the only
// party allowed to edit or delete it afterwards.
type MessageService struct {
	messages domain.MessageRepository
	users    domain.UserRepository
	products domain.ProductRepository
	strict   bool
}

// NewMessageService creates a new MessageService.
func NewMessageService(messages domain.MessageRepository, users domain.UserRepository, products domain.ProductRepository, strictEmptyResults bool) *MessageService {
	return &MessageService{messages: messages, users: users, products: products, strict: strictEmptyResults}
}

type messageInput struct {
	Body string `validate:"required,max=500"`
}

// Create sends a message. Validation order: sender exists, recipient
// exists, sender differs from recipient, product exists, product owner
// is the recipient.
func (s *MessageService) Create(ctx context.Context, body string, sentBy, sentTo, productID int64) (*domain.Message, error) {
	if err := checkInput(messageInput{Body: body}); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByID(ctx, sentBy); err != nil {
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, sentTo); err != nil {
		return nil, err
	}
	if sentBy == sentTo {
		return nil, fmt.Errorf("%w: user id %d", domain.ErrSelfMessage, sentBy)
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.PostedBy != sentTo {
		return nil, fmt.Errorf("%w: product %d is posted by user %d", domain.ErrInvalidRecipient, productID, product.PostedBy)
	}

	message := &domain.Message{
		Body:      body,
		SentBy:    sentBy,
		SentTo:    sentTo,
		ProductID: productID,
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

// Update replaces the text when a non-empty value is supplied; an empty
// body leaves the message unchanged. The claimed sender and the product
// are validated either way.
func (s *MessageService) Update(ctx context.Context, id int64, body string, userID, productID int64) (*domain.Message, error) {
	if len(body) > 500 {
		return nil, fmt.Errorf("%w: message exceeds 500 characters", domain.ErrInvalidInput)
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	// The product reference is checked for existence only.
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}

	if body == "" {
		message, err := s.messages.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if message.SentBy != userID {
			return nil, fmt.Errorf("%w: user id %d", domain.ErrNotSender, userID)
		}
		return message, nil
	}

	return s.messages.UpdateBody(ctx, id, userID, body)
}

// Delete removes a message after the sender check.
func (s *MessageService) Delete(ctx context.Context, id, userID int64) (*domain.Message, error) {
	return s.messages.Delete(ctx, id, userID)
}

// List returns all messages; empty is an error under the strict policy.
func (s *MessageService) List(ctx context.Context) ([]domain.Message, error) {
	messages, err := s.messages.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 && s.strict {
		return nil, fmt.Errorf("%w: no messages registered", domain.ErrEmptyResult)
	}
	return messages, nil
}

// ListConversation returns the messages sent by one user to another.
// Under the strict policy an empty result names both parties, so both
// are looked up; either lookup failing surfaces as not found.
func (s *MessageService) ListConversation(ctx context.Context, sentBy, sentTo int64) ([]domain.Message, error) {
	messages, err := s.messages.ListConversation(ctx, sentBy, sentTo)
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 && s.strict {
		from, err := s.users.GetByID(ctx, sentBy)
		if err != nil {
			return nil, err
		}
		to, err := s.users.GetByID(ctx, sentTo)
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: no messages sent by the user: %s to the user: %s", domain.ErrEmptyResult, from.Username, to.Username)
	}
	return messages, nil
}

// GetByID returns one message.
func (s *MessageService) GetByID(ctx context.Context, id int64) (*domain.Message, error) {
	return s.messages.GetByID(ctx, id)
}
