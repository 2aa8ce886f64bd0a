package graph

import (
	"github.com/graph-gophers/graphql-go"

	"adboard/internal/service"
)

// SchemaString is the GraphQL SDL for the marketplace API. Field names
// follow the wire contract the clients already speak.
const SchemaString = `
	schema {
		query: Query
		mutation: Mutation
	}

	type Query {
		list_users: [User!]!
		list_products: [Product!]!
		list_messages: [Message!]!
		read_product(userid: Int!): [Product!]!
		read_message(sentby: Int!, sentto: Int!): [Message!]!
	}

	type Mutation {
		create_user(username: String!, email: String!, password: String!): User!
		update_user(id: ID!, username: String!, email: String!, password: String!): User!
		delete_user(id: ID!): User!

		create_product(product_name: String!, product_description: String!, product_price: Int!, posted_by: Int!): Product!
		update_product(product_id: ID!, product_name: String, product_description: String, product_price: Int, posted_by: Int!): Product!
		delete_product(id: ID!, user_id: Int!): Product!

		create_message(message: String!, sent_by: Int!, sent_to: Int!, product_id: Int!): Message!
		update_message(id: ID!, message: String!, user_id: Int!, product_id: Int!): Message!
		delete_message(id: ID!, user_id: Int!): Message!
	}

	type User {
		id: ID!
		username: String!
		email: String!
		password: String!
	}

	type Product {
		id: ID!
		product_name: String!
		product_description: String!
		product_price: Int!
		posted_by: User!
		posted_on: String!
	}

	type Message {
		id: ID!
		message: String!
		sent_by: User!
		sent_to: User!
		product_id: Product!
		message_timing: String!
	}
`

// NewSchema parses the SDL and binds it to a root resolver over the
// given services.
func NewSchema(users *service.UserService, products *service.ProductService, messages *service.MessageService) (*graphql.Schema, error) {
	return graphql.ParseSchema(SchemaString, NewResolver(users, products, messages))
}
