package graph

import (
	"context"
	"strconv"
	"time"

	"github.com/graph-gophers/graphql-go"

	"adboard/internal/domain"
	"adboard/internal/service"
)

// UserResolver resolves the User type. The password field carries the
// bcrypt hash; exposing it is part of the wire contract this API kept.
type UserResolver struct {
	u domain.User
}

func (r *UserResolver) ID() graphql.ID {
	return graphql.ID(strconv.FormatInt(r.u.ID, 10))
}

func (r *UserResolver) Username() string { return r.u.Username }
func (r *UserResolver) Email() string    { return r.u.Email }
func (r *UserResolver) Password() string { return r.u.PasswordHash }

// ProductResolver resolves the Product type. The owner is loaded
// lazily, only when the query selects posted_by.
type ProductResolver struct {
	p     domain.Product
	users *service.UserService
}

func (r *ProductResolver) ID() graphql.ID {
	return graphql.ID(strconv.FormatInt(r.p.ID, 10))
}

func (r *ProductResolver) ProductName() string        { return r.p.Name }
func (r *ProductResolver) ProductDescription() string { return r.p.Description }
func (r *ProductResolver) ProductPrice() int32        { return int32(r.p.Price) }

func (r *ProductResolver) PostedBy(ctx context.Context) (*UserResolver, error) {
	user, err := r.users.GetByID(ctx, r.p.PostedBy)
	if err != nil {
		return nil, err
	}
	return &UserResolver{u: *user}, nil
}

func (r *ProductResolver) PostedOn() string {
	return r.p.PostedOn.UTC().Format(time.RFC3339)
}

// MessageResolver resolves the Message type. Both parties and the
// product are loaded lazily.
type MessageResolver struct {
	m        domain.Message
	users    *service.UserService
	products *service.ProductService
}

func (r *MessageResolver) ID() graphql.ID {
	return graphql.ID(strconv.FormatInt(r.m.ID, 10))
}

func (r *MessageResolver) Message() string { return r.m.Body }

func (r *MessageResolver) SentBy(ctx context.Context) (*UserResolver, error) {
	return r.userResolver(ctx, r.m.SentBy)
}

func (r *MessageResolver) SentTo(ctx context.Context) (*UserResolver, error) {
	return r.userResolver(ctx, r.m.SentTo)
}

func (r *MessageResolver) ProductID(ctx context.Context) (*ProductResolver, error) {
	product, err := r.products.GetByID(ctx, r.m.ProductID)
	if err != nil {
		return nil, err
	}
	return &ProductResolver{p: *product, users: r.users}, nil
}

func (r *MessageResolver) MessageTiming() string {
	return r.m.SentAt.UTC().Format(time.RFC3339)
}

func (r *MessageResolver) userResolver(ctx context.Context, id int64) (*UserResolver, error) {
	user, err := r.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &UserResolver{u: *user}, nil
}
