package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"adboard/internal/domain"
)

// UserService handles account registration, full-replacement updates,
// deletion, and reads. Passwords are stored only as bcrypt hashes.
type UserService struct {
	users      domain.UserRepository
	bcryptCost int
	strict     bool
}

// NewUserService creates a new UserService. strictEmptyResults selects
// the empty-list policy for List: error (the historical contract) or an
// empty slice.
func NewUserService(users domain.UserRepository, bcryptCost int, strictEmptyResults bool) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost, strict: strictEmptyResults}
}

type userInput struct {
	Username string `validate:"required,max=150"`
	Email    string `validate:"required,email,max=254"`
	Password string `validate:"required,min=8,max=72"`
}

// Create registers a new account. Username and email collisions fail
// before anything is written.
func (s *UserService) Create(ctx context.Context, username, email, password string) (*domain.User, error) {
	if err := checkInput(userInput{Username: username, Email: email, Password: password}); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update overwrites all three fields unconditionally and re-hashes the
// password, the full-replacement contract the API has always had.
// Duplicate checks exclude the account itself.
func (s *UserService) Update(ctx context.Context, id int64, username, email, password string) (*domain.User, error) {
	if err := checkInput(userInput{Username: username, Email: email, Password: password}); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           id,
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, id)
}

// Delete removes an account; its products and messages go with it.
func (s *UserService) Delete(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.Delete(ctx, id)
}

// List returns all accounts. Under the strict policy an empty system
// is reported as an error rather than an empty slice.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 && s.strict {
		return nil, fmt.Errorf("%w: no users registered", domain.ErrEmptyResult)
	}
	return users, nil
}

// GetByID returns one account.
func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}
