package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"adboard/internal/domain"
)

// ProductRepository implements domain.ProductRepository using SQLite.
type ProductRepository struct {
	db *sql.DB
}

// Create inserts a new product after verifying the owner exists, both
// inside one transaction. The foreign key constraint is the backstop.
func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)", product.PostedBy,
	).Scan(&exists); err != nil {
		return fmt.Errorf("check owner exists: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: user id %d", domain.ErrNotFound, product.PostedBy)
	}

	now := time.Now().UTC()
	result, err := tx.ExecContext(ctx,
		`INSERT INTO products (name, description, price, posted_by, posted_on)
		 VALUES (?, ?, ?, ?, ?)`,
		product.Name, product.Description, product.Price, product.PostedBy, now,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	product.ID = id
	product.PostedOn = now
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := scanProduct(r.db.QueryRowContext(ctx, selectProduct+" WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: product id %d", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("query product by id: %w", err)
	}
	return product, nil
}

func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	return r.queryProducts(ctx, selectProduct+" ORDER BY id")
}

func (r *ProductRepository) ListByOwner(ctx context.Context, userID int64) ([]domain.Product, error) {
	return r.queryProducts(ctx, selectProduct+" WHERE posted_by = ? ORDER BY id", userID)
}

// Update applies the non-nil patch fields. The ownership check and the
// UPDATE share one transaction. A claimant that is not the owner gets
// ErrNotOwner whether or not the claimed id names a real user.
func (r *ProductRepository) Update(ctx context.Context, id, ownerID int64, patch domain.ProductPatch) (*domain.Product, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	product, err := r.lockOwned(ctx, tx, id, ownerID, domain.ErrNotOwner)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		product.Name = *patch.Name
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE products SET name = ?, description = ?, price = ? WHERE id = ?",
		product.Name, product.Description, product.Price, product.ID,
	); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return product, nil
}

// Delete removes a product owned by ownerID and returns the pre-deletion
// record. Cascade removes the product's messages.
func (r *ProductRepository) Delete(ctx context.Context, id, ownerID int64) (*domain.Product, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	product, err := r.lockOwned(ctx, tx, id, ownerID, domain.ErrNotOwner)
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM products WHERE id = ?", id); err != nil {
		return nil, fmt.Errorf("delete product: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return product, nil
}

// lockOwned loads a product inside tx and verifies the claimed owner.
func (r *ProductRepository) lockOwned(ctx context.Context, tx *sql.Tx, id, ownerID int64, mismatch error) (*domain.Product, error) {
	product, err := scanProduct(tx.QueryRowContext(ctx, selectProduct+" WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: product id %d", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("query product: %w", err)
	}
	if product.PostedBy != ownerID {
		return nil, fmt.Errorf("%w: user id %d", mismatch, ownerID)
	}
	return product, nil
}

func (r *ProductRepository) queryProducts(ctx context.Context, query string, args ...any) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.PostedBy, &p.PostedOn); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

const selectProduct = "SELECT id, name, description, price, posted_by, posted_on FROM products"

func scanProduct(row *sql.Row) (*domain.Product, error) {
	p := &domain.Product{}
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.PostedBy, &p.PostedOn); err != nil {
		return nil, err
	}
	return p, nil
}
