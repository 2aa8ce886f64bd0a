package service

import (
	"context"
	"fmt"

	"adboard/internal/domain"
)

// ProductService handles product CRUD. Updates and deletes require the
// caller to pass the claimed owner, which is checked against the row.
type ProductService struct {
	products domain.ProductRepository
	users    domain.UserRepository
	strict   bool
}

// NewProductService creates a new ProductService.
func NewProductService(products domain.ProductRepository, users domain.UserRepository, strictEmptyResults bool) *ProductService {
	return &ProductService{products: products, users: users, strict: strictEmptyResults}
}

type productInput struct {
	Name        string `validate:"required,max=100"`
	Description string `validate:"max=250"`
}

// Create posts a new product owned by postedBy, which must exist.
func (s *ProductService) Create(ctx context.Context, name, description string, price, postedBy int64) (*domain.Product, error) {
	if err := checkInput(productInput{Name: name, Description: description}); err != nil {
		return nil, err
	}

	product := &domain.Product{
		Name:        name,
		Description: description,
		Price:       price,
		PostedBy:    postedBy,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update applies the supplied fields only. Unlike user updates this is
// a true partial update; nil patch fields keep their current values.
func (s *ProductService) Update(ctx context.Context, id, ownerID int64, patch domain.ProductPatch) (*domain.Product, error) {
	in := productInput{Name: "unchanged"}
	if patch.Name != nil {
		in.Name = *patch.Name
	}
	if patch.Description != nil {
		in.Description = *patch.Description
	}
	if err := checkInput(in); err != nil {
		return nil, err
	}

	return s.products.Update(ctx, id, ownerID, patch)
}

// Delete removes a product and its messages after the ownership check.
func (s *ProductService) Delete(ctx context.Context, id, ownerID int64) (*domain.Product, error) {
	return s.products.Delete(ctx, id, ownerID)
}

// List returns all products; empty is an error under the strict policy.
func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 && s.strict {
		return nil, fmt.Errorf("%w: no products posted for any users", domain.ErrEmptyResult)
	}
	return products, nil
}

// ListByOwner returns the products posted by one user. Under the strict
// policy an empty result names the owner, which costs a second lookup;
// that lookup failing means the owner does not exist at all.
func (s *ProductService) ListByOwner(ctx context.Context, userID int64) ([]domain.Product, error) {
	products, err := s.products.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 && s.strict {
		owner, err := s.users.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: no products posted by the user: %s", domain.ErrEmptyResult, owner.Username)
	}
	return products, nil
}

// GetByID returns one product.
func (s *ProductService) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}
