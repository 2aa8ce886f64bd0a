package graph

import (
	"context"
	"fmt"
	"strconv"

	"github.com/graph-gophers/graphql-go"

	"adboard/internal/domain"
	"adboard/internal/service"
)

// Resolver is the root resolver. Each method backs one named query or
// mutation: it validates through the services and maps records to type
// resolvers. Failures abort the field and surface verbatim in the
// response's errors array.
type Resolver struct {
	users    *service.UserService
	products *service.ProductService
	messages *service.MessageService
}

// NewResolver creates the root resolver.
func NewResolver(users *service.UserService, products *service.ProductService, messages *service.MessageService) *Resolver {
	return &Resolver{users: users, products: products, messages: messages}
}

// parseID converts a GraphQL ID argument into a row identifier.
func parseID(id graphql.ID) (int64, error) {
	n, err := strconv.ParseInt(string(id), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: malformed id %q", domain.ErrInvalidInput, string(id))
	}
	return n, nil
}

// ListUsers resolves list_users. It is the one session-gated field.
func (r *Resolver) ListUsers(ctx context.Context) ([]*UserResolver, error) {
	if ViewerFromContext(ctx) == nil {
		return nil, fmt.Errorf("%w: list_users requires an authenticated session", domain.ErrUnauthorized)
	}

	users, err := r.users.List(ctx)
	if err != nil {
		return nil, err
	}
	resolvers := make([]*UserResolver, len(users))
	for i := range users {
		resolvers[i] = &UserResolver{u: users[i]}
	}
	return resolvers, nil
}

// ListProducts resolves list_products.
func (r *Resolver) ListProducts(ctx context.Context) ([]*ProductResolver, error) {
	products, err := r.products.List(ctx)
	if err != nil {
		return nil, err
	}
	return r.productResolvers(products), nil
}

// ListMessages resolves list_messages.
func (r *Resolver) ListMessages(ctx context.Context) ([]*MessageResolver, error) {
	messages, err := r.messages.List(ctx)
	if err != nil {
		return nil, err
	}
	return r.messageResolvers(messages), nil
}

// ReadProduct resolves read_product: the products posted by one user.
func (r *Resolver) ReadProduct(ctx context.Context, args struct{ Userid int32 }) ([]*ProductResolver, error) {
	products, err := r.products.ListByOwner(ctx, int64(args.Userid))
	if err != nil {
		return nil, err
	}
	return r.productResolvers(products), nil
}

// ReadMessage resolves read_message: one direction of a conversation.
func (r *Resolver) ReadMessage(ctx context.Context, args struct{ Sentby, Sentto int32 }) ([]*MessageResolver, error) {
	messages, err := r.messages.ListConversation(ctx, int64(args.Sentby), int64(args.Sentto))
	if err != nil {
		return nil, err
	}
	return r.messageResolvers(messages), nil
}

// CreateUser resolves create_user.
func (r *Resolver) CreateUser(ctx context.Context, args struct {
	Username string
	Email    string
	Password string
}) (*UserResolver, error) {
	user, err := r.users.Create(ctx, args.Username, args.Email, args.Password)
	if err != nil {
		return nil, err
	}
	return &UserResolver{u: *user}, nil
}

// UpdateUser resolves update_user: a full replacement of all three
// fields, re-hashing the password.
func (r *Resolver) UpdateUser(ctx context.Context, args struct {
	ID       graphql.ID
	Username string
	Email    string
	Password string
}) (*UserResolver, error) {
	id, err := parseID(args.ID)
	if err != nil {
		return nil, err
	}
	user, err := r.users.Update(ctx, id, args.Username, args.Email, args.Password)
	if err != nil {
		return nil, err
	}
	return &UserResolver{u: *user}, nil
}

// DeleteUser resolves delete_user and returns the removed account.
func (r *Resolver) DeleteUser(ctx context.Context, args struct{ ID graphql.ID }) (*UserResolver, error) {
	id, err := parseID(args.ID)
	if err != nil {
		return nil, err
	}
	user, err := r.users.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	return &UserResolver{u: *user}, nil
}

// CreateProduct resolves create_product.
func (r *Resolver) CreateProduct(ctx context.Context, args struct {
	ProductName        string
	ProductDescription string
	ProductPrice       int32
	PostedBy           int32
}) (*ProductResolver, error) {
	product, err := r.products.Create(ctx, args.ProductName, args.ProductDescription, int64(args.ProductPrice), int64(args.PostedBy))
	if err != nil {
		return nil, err
	}
	return &ProductResolver{p: *product, users: r.users}, nil
}

// UpdateProduct resolves update_product: only the supplied fields
// change, and only for the actual owner.
func (r *Resolver) UpdateProduct(ctx context.Context, args struct {
	ProductID          graphql.ID
	ProductName        *string
	ProductDescription *string
	ProductPrice       *int32
	PostedBy           int32
}) (*ProductResolver, error) {
	id, err := parseID(args.ProductID)
	if err != nil {
		return nil, err
	}

	patch := domain.ProductPatch{
		Name:        args.ProductName,
		Description: args.ProductDescription,
	}
	if args.ProductPrice != nil {
		price := int64(*args.ProductPrice)
		patch.Price = &price
	}

	product, err := r.products.Update(ctx, id, int64(args.PostedBy), patch)
	if err != nil {
		return nil, err
	}
	return &ProductResolver{p: *product, users: r.users}, nil
}

// DeleteProduct resolves delete_product and returns the removed listing.
func (r *Resolver) DeleteProduct(ctx context.Context, args struct {
	ID     graphql.ID
	UserID int32
}) (*ProductResolver, error) {
	id, err := parseID(args.ID)
	if err != nil {
		return nil, err
	}
	product, err := r.products.Delete(ctx, id, int64(args.UserID))
	if err != nil {
		return nil, err
	}
	return &ProductResolver{p: *product, users: r.users}, nil
}

// CreateMessage resolves create_message.
func (r *Resolver) CreateMessage(ctx context.Context, args struct {
	Message   string
	SentBy    int32
	SentTo    int32
	ProductID int32
}) (*MessageResolver, error) {
	message, err := r.messages.Create(ctx, args.Message, int64(args.SentBy), int64(args.SentTo), int64(args.ProductID))
	if err != nil {
		return nil, err
	}
	return r.messageResolver(message), nil
}

// UpdateMessage resolves update_message; an empty text leaves the
// message unchanged.
func (r *Resolver) UpdateMessage(ctx context.Context, args struct {
	ID        graphql.ID
	Message   string
	UserID    int32
	ProductID int32
}) (*MessageResolver, error) {
	id, err := parseID(args.ID)
	if err != nil {
		return nil, err
	}
	message, err := r.messages.Update(ctx, id, args.Message, int64(args.UserID), int64(args.ProductID))
	if err != nil {
		return nil, err
	}
	return r.messageResolver(message), nil
}

// DeleteMessage resolves delete_message and returns the removed message.
func (r *Resolver) DeleteMessage(ctx context.Context, args struct {
	ID     graphql.ID
	UserID int32
}) (*MessageResolver, error) {
	id, err := parseID(args.ID)
	if err != nil {
		return nil, err
	}
	message, err := r.messages.Delete(ctx, id, int64(args.UserID))
	if err != nil {
		return nil, err
	}
	return r.messageResolver(message), nil
}

func (r *Resolver) productResolvers(products []domain.Product) []*ProductResolver {
	resolvers := make([]*ProductResolver, len(products))
	for i := range products {
		resolvers[i] = &ProductResolver{p: products[i], users: r.users}
	}
	return resolvers
}

func (r *Resolver) messageResolver(m *domain.Message) *MessageResolver {
	return &MessageResolver{m: *m, users: r.users, products: r.products}
}

func (r *Resolver) messageResolvers(messages []domain.Message) []*MessageResolver {
	resolvers := make([]*MessageResolver, len(messages))
	for i := range messages {
		resolvers[i] = &MessageResolver{m: messages[i], users: r.users, products: r.products}
	}
	return resolvers
}
