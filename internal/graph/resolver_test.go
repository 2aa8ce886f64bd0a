package graph_test

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/graph-gophers/graphql-go"

	"adboard/internal/domain"
	"adboard/internal/graph"
	"adboard/internal/repository/sqlite"
	"adboard/internal/service"
)

const testBcryptCost = 4

func newTestSchema(t *testing.T, strict bool) *graphql.Schema {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	users := service.NewUserService(db.Users(), testBcryptCost, strict)
	products := service.NewProductService(db.Products(), db.Users(), strict)
	messages := service.NewMessageService(db.Messages(), db.Users(), db.Products(), strict)

	schema, err := graph.NewSchema(users, products, messages)
	if err != nil {
		t.Fatalf("NewSchema: %v", err)
	}
	return schema
}

// exec runs a query and fails the test on any resolver error.
func exec(t *testing.T, schema *graphql.Schema, ctx context.Context, query string) map[string]json.RawMessage {
	t.Helper()
	resp := schema.Exec(ctx, query, "", nil)
	if len(resp.Errors) > 0 {
		t.Fatalf("query failed: %v\nquery: %s", resp.Errors, query)
	}
	var data map[string]json.RawMessage
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	return data
}

// execErr runs a query expected to fail and returns the first error
// message.
func execErr(t *testing.T, schema *graphql.Schema, ctx context.Context, query string) string {
	t.Helper()
	resp := schema.Exec(ctx, query, "", nil)
	if len(resp.Errors) == 0 {
		t.Fatalf("expected a resolver error\nquery: %s", query)
	}
	return resp.Errors[0].Message
}

func seedUser(t *testing.T, schema *graphql.Schema, username string) {
	t.Helper()
	exec(t, schema, context.Background(), `mutation {
		create_user(username: "`+username+`", email: "`+username+`@example.com", password: "password123") { id username }
	}`)
}

func TestSchema_Parses(t *testing.T) {
	newTestSchema(t, true)
}

func TestCreateUser(t *testing.T) {
	schema := newTestSchema(t, true)
	ctx := context.Background()

	data := exec(t, schema, ctx, `mutation {
		create_user(username: "alice", email: "alice@example.com", password: "password123") {
			id
			username
			email
			password
		}
	}`)

	var user struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.Unmarshal(data["create_user"], &user); err != nil {
		t.Fatalf("unmarshal user: %v", err)
	}
	if user.ID != "1" || user.Username != "alice" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.Password == "password123" {
		t.Fatal("password field must expose the hash, not the plaintext")
	}
}

func TestCreateUser_Duplicate(t *testing.T) {
	schema := newTestSchema(t, true)
	ctx := context.Background()
	seedUser(t, schema, "alice")

	msg := execErr(t, schema, ctx, `mutation {
		create_user(username: "alice", email: "other@example.com", password: "password123") { id }
	}`)
	if !strings.Contains(msg, "username") {
		t.Fatalf("expected a duplicate-username error, got %q", msg)
	}

	msg = execErr(t, schema, ctx, `mutation {
		create_user(username: "bob", email: "alice@example.com", password: "password123") { id }
	}`)
	if !strings.Contains(msg, "email") {
		t.Fatalf("expected a duplicate-email error, got %q", msg)
	}
}

func TestListUsers_RequiresSession(t *testing.T) {
	schema := newTestSchema(t, true)
	seedUser(t, schema, "alice")

	msg := execErr(t, schema, context.Background(), `{ list_users { id username } }`)
	if !strings.Contains(msg, "authenticated") {
		t.Fatalf("expected an authentication error, got %q", msg)
	}

	viewer := &domain.User{ID: 1, Username: "alice"}
	data := exec(t, schema, graph.WithViewer(context.Background(), viewer), `{ list_users { id username } }`)

	var users []struct {
		Username string `json:"username"`
	}
	if err := json.Unmarshal(data["list_users"], &users); err != nil {
		t.Fatalf("unmarshal users: %v", err)
	}
	if len(users) != 1 || users[0].Username != "alice" {
		t.Fatalf("unexpected users: %+v", users)
	}
}

func TestProductLifecycle(t *testing.T) {
	schema := newTestSchema(t, true)
	ctx := context.Background()
	seedUser(t, schema, "seller")
	seedUser(t, schema, "rival")

	data := exec(t, schema, ctx, `mutation {
		create_product(product_name: "Bike", product_description: "Red bike", product_price: 100, posted_by: 1) {
			id
			product_name
			product_price
			posted_by { username }
		}
	}`)
	var product struct {
		ID       string `json:"id"`
		Name     string `json:"product_name"`
		Price    int32  `json:"product_price"`
		PostedBy struct {
			Username string `json:"username"`
		} `json:"posted_by"`
	}
	if err := json.Unmarshal(data["create_product"], &product); err != nil {
		t.Fatalf("unmarshal product: %v", err)
	}
	if product.Name != "Bike" || product.Price != 100 || product.PostedBy.Username != "seller" {
		t.Fatalf("unexpected product: %+v", product)
	}

	// Partial update by the owner changes only the price.
	data = exec(t, schema, ctx, `mutation {
		update_product(product_id: "1", product_price: 150, posted_by: 1) {
			product_name
			product_price
		}
	}`)
	if err := json.Unmarshal(data["update_product"], &product); err != nil {
		t.Fatalf("unmarshal product: %v", err)
	}
	if product.Name != "Bike" || product.Price != 150 {
		t.Fatalf("unexpected product after update: %+v", product)
	}

	// Another account cannot update the listing.
	msg := execErr(t, schema, ctx, `mutation {
		update_product(product_id: "1", product_price: 1, posted_by: 2) { id }
	}`)
	if !strings.Contains(msg, "not the product owner") {
		t.Fatalf("expected an ownership error, got %q", msg)
	}

	// The price is unchanged after the rejected update.
	data = exec(t, schema, ctx, `{ read_product(userid: 1) { product_price } }`)
	var listed []struct {
		Price int32 `json:"product_price"`
	}
	if err := json.Unmarshal(data["read_product"], &listed); err != nil {
		t.Fatalf("unmarshal products: %v", err)
	}
	if len(listed) != 1 || listed[0].Price != 150 {
		t.Fatalf("unexpected listings: %+v", listed)
	}

	// Delete returns the removed listing.
	data = exec(t, schema, ctx, `mutation {
		delete_product(id: "1", user_id: 1) { product_name }
	}`)
	if err := json.Unmarshal(data["delete_product"], &product); err != nil {
		t.Fatalf("unmarshal product: %v", err)
	}
	if product.Name != "Bike" {
		t.Fatalf("unexpected deleted product: %+v", product)
	}
}

func TestReadProduct_EmptyStrict(t *testing.T) {
	schema := newTestSchema(t, true)
	seedUser(t, schema, "seller")

	msg := execErr(t, schema, context.Background(), `{ read_product(userid: 1) { id } }`)
	if !strings.Contains(msg, "seller") {
		t.Fatalf("expected the error to name the owner, got %q", msg)
	}
}

func TestReadProduct_EmptyLenient(t *testing.T) {
	schema := newTestSchema(t, false)
	seedUser(t, schema, "seller")

	data := exec(t, schema, context.Background(), `{ read_product(userid: 1) { id } }`)
	var listed []json.RawMessage
	if err := json.Unmarshal(data["read_product"], &listed); err != nil {
		t.Fatalf("unmarshal products: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("expected no listings, got %d", len(listed))
	}
}

func TestMessageLifecycle(t *testing.T) {
	schema := newTestSchema(t, true)
	ctx := context.Background()
	seedUser(t, schema, "buyer")
	seedUser(t, schema, "seller")
	exec(t, schema, ctx, `mutation {
		create_product(product_name: "Bike", product_description: "Red bike", product_price: 100, posted_by: 2) { id }
	}`)

	data := exec(t, schema, ctx, `mutation {
		create_message(message: "interested", sent_by: 1, sent_to: 2, product_id: 1) {
			id
			message
			sent_by { username }
			sent_to { username }
			product_id { product_name }
		}
	}`)
	var message struct {
		Message string `json:"message"`
		SentBy  struct {
			Username string `json:"username"`
		} `json:"sent_by"`
		Product struct {
			Name string `json:"product_name"`
		} `json:"product_id"`
	}
	if err := json.Unmarshal(data["create_message"], &message); err != nil {
		t.Fatalf("unmarshal message: %v", err)
	}
	if message.Message != "interested" || message.SentBy.Username != "buyer" || message.Product.Name != "Bike" {
		t.Fatalf("unexpected message: %+v", message)
	}

	// Messaging anyone but the listing's owner is rejected.
	msg := execErr(t, schema, ctx, `mutation {
		create_message(message: "hi", sent_by: 2, sent_to: 1, product_id: 1) { id }
	}`)
	if !strings.Contains(msg, "posted by") {
		t.Fatalf("expected a recipient error, got %q", msg)
	}

	// read_message is directional.
	data = exec(t, schema, ctx, `{ read_message(sentby: 1, sentto: 2) { message } }`)
	var conversation []struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data["read_message"], &conversation); err != nil {
		t.Fatalf("unmarshal messages: %v", err)
	}
	if len(conversation) != 1 || conversation[0].Message != "interested" {
		t.Fatalf("unexpected conversation: %+v", conversation)
	}

	msg = execErr(t, schema, ctx, `{ read_message(sentby: 2, sentto: 1) { message } }`)
	if !strings.Contains(msg, "seller") || !strings.Contains(msg, "buyer") {
		t.Fatalf("expected the error to name both parties, got %q", msg)
	}

	// Only the sender can edit or delete.
	msg = execErr(t, schema, ctx, `mutation {
		update_message(id: "1", message: "hijacked", user_id: 2, product_id: 1) { id }
	}`)
	if !strings.Contains(msg, "not the message sender") {
		t.Fatalf("expected a sender error, got %q", msg)
	}

	data = exec(t, schema, ctx, `mutation {
		delete_message(id: "1", user_id: 1) { message }
	}`)
	var deleted struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data["delete_message"], &deleted); err != nil {
		t.Fatalf("unmarshal message: %v", err)
	}
	if deleted.Message != "interested" {
		t.Fatalf("unexpected deleted message: %+v", deleted)
	}
}

func TestUpdateUser_FullReplacement(t *testing.T) {
	schema := newTestSchema(t, true)
	ctx := context.Background()
	seedUser(t, schema, "alice")

	data := exec(t, schema, ctx, `mutation {
		update_user(id: "1", username: "alicia", email: "alicia@example.com", password: "newpassword1") {
			username
			email
		}
	}`)
	var user struct {
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	if err := json.Unmarshal(data["update_user"], &user); err != nil {
		t.Fatalf("unmarshal user: %v", err)
	}
	if user.Username != "alicia" || user.Email != "alicia@example.com" {
		t.Fatalf("unexpected user after update: %+v", user)
	}
}

func TestDeleteUser_Cascades(t *testing.T) {
	schema := newTestSchema(t, false)
	ctx := context.Background()
	seedUser(t, schema, "seller")
	exec(t, schema, ctx, `mutation {
		create_product(product_name: "Bike", product_description: "Red bike", product_price: 100, posted_by: 1) { id }
	}`)

	exec(t, schema, ctx, `mutation { delete_user(id: "1") { username } }`)

	data := exec(t, schema, ctx, `{ list_products { id } }`)
	var listed []json.RawMessage
	if err := json.Unmarshal(data["list_products"], &listed); err != nil {
		t.Fatalf("unmarshal products: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("expected listings to cascade, got %d", len(listed))
	}
}

func TestMalformedID(t *testing.T) {
	schema := newTestSchema(t, true)
	seedUser(t, schema, "alice")

	msg := execErr(t, schema, context.Background(), `mutation {
		delete_user(id: "abc") { id }
	}`)
	if !strings.Contains(msg, "malformed id") {
		t.Fatalf("expected a malformed id error, got %q", msg)
	}
}
