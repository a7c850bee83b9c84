// Package api is the HTTP client for the smartnotes Remote API.
//
// It covers authentication (login, register) and book CRUD. Every book call
// carries the bearer token as "Authorization: Bearer <token>". Response shapes
// that differ between server versions are normalized here, so callers always
// see one canonical type per operation.
//
// Example usage:
//
//	client := api.New(api.Config{BaseURL: "http://localhost:3001/api"}, logger.Default())
//	token, err := client.Login(ctx, "ann@example.com", "secret")
//	if err != nil {
//	    return err
//	}
//	books, err := client.ListBooks(ctx, token)
package api

import (
	"encoding/json"
	"net/http"
	"time"
)

// Book is a server-owned record mirrored by the client.
type Book struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// UnmarshalJSON decodes a book, taking the identifier from "_id" when the
// server omits "id".
func (b *Book) UnmarshalJSON(data []byte) error {
	type plain Book
	var wire struct {
		plain
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	*b = Book(wire.plain)
	if b.ID == "" {
		b.ID = wire.MongoID
	}
	return nil
}

// BookInput is the request body of create and update.
type BookInput struct {
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// Config contains client configuration.
type Config struct {
	// BaseURL is the API origin including its path prefix, e.g. http://localhost:3001/api.
	BaseURL string

	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration

	// HTTPClient overrides the transport; nil uses a new http.Client.
	HTTPClient *http.Client
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authResponse carries either a token or an error message.
type authResponse struct {
	Token string `json:"token"`
	Error string `json:"error"`
}

// errorResponse is the error payload shared by all endpoints.
type errorResponse struct {
	Error string `json:"error"`
}
