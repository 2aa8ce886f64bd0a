package domain

import (
	"context"
	"time"
)

// Product is a for-sale listing owned by exactly one user.
// PostedOn is set at creation and never changes.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       int64
	PostedBy    int64
	PostedOn    time.Time
}

// ProductPatch describes a partial update. Nil fields are left unchanged.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *int64
}

// ProductRepository defines persistence operations for products.
// Update and Delete verify ownership and perform the write in one
// transaction; a claimant that is not the owner gets ErrNotOwner.
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	GetByID(ctx context.Context, id int64) (*Product, error)
	List(ctx context.Context) ([]Product, error)
	ListByOwner(ctx context.Context, userID int64) ([]Product, error)
	Update(ctx context.Context, id, ownerID int64, patch ProductPatch) (*Product, error)
	// Delete removes a product and, through cascade, its messages.
	// It returns the pre-deletion record.
	Delete(ctx context.Context, id, ownerID int64) (*Product, error)
}
