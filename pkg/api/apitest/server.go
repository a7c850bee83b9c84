// Package apitest provides an in-memory Remote API for tests.
//
// The server implements the auth and book endpoints with per-user book lists,
// bcrypt password hashes and random bearer tokens. Tests can inject one-shot
// failures and count requests per route.
//
// Example usage:
//
//	srv := apitest.NewServer()
//	defer srv.Close()
//
//	token := srv.SeedUser("ann", "ann@example.com", "secret")
//	srv.SeedBook(token, api.Book{Title: "Dune"})
//	client := api.New(api.Config{BaseURL: srv.URL()}, logger.Noop())
package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"github.com/blessedav/FINALGO/pkg/api"
)

// ListShape selects how GET /books wraps its payload.
type ListShape int

const (
	// ListWrapped responds with {"books": [...]}.
	ListWrapped ListShape = iota

	// ListBare responds with a bare array.
	ListBare
)

type user struct {
	username string
	email    string
	hash     []byte
}

type failure struct {
	method string
	path   string
	status int
	body   string
}

// Server is a fake Remote API served over httptest.
type Server struct {
	srv *httptest.Server

	mu    sync.Mutex
	shape ListShape

	// users and books are keyed by email, tokens map to an email.
	// Books keep creation order.
	users  map[string]*user
	books  map[string][]api.Book
	tokens map[string]string

	failures []failure
	requests map[string]int
}

// NewServer starts a server; call Close when done.
func NewServer() *Server {
	s := &Server{
		users:    make(map[string]*user),
		tokens:   make(map[string]string),
		books:    make(map[string][]api.Book),
		requests: make(map[string]int),
	}

	r := mux.NewRouter()
	r.Use(s.record)

	sub := r.PathPrefix("/api").Subrouter()
	sub.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)
	sub.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)

	books := sub.PathPrefix("/books").Subrouter()
	books.Use(s.authorize)
	books.HandleFunc("", s.handleList).Methods(http.MethodGet)
	books.HandleFunc("", s.handleCreate).Methods(http.MethodPost)
	books.HandleFunc("/{id}", s.handleGet).Methods(http.MethodGet)
	books.HandleFunc("/{id}", s.handleUpdate).Methods(http.MethodPut)
	books.HandleFunc("/{id}", s.handleDelete).Methods(http.MethodDelete)

	s.srv = httptest.NewServer(r)
	return s
}

// URL returns the API origin, including the /api prefix.
func (s *Server) URL() string {
	return s.srv.URL + "/api"
}

// Close shuts the server down.
func (s *Server) Close() {
	s.srv.Close()
}

// SetListShape changes the GET /books payload shape.
func (s *Server) SetListShape(shape ListShape) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shape = shape
}

// Fail makes the next request matching method and path (relative to the API
// origin, e.g. "/books") respond with status and the raw body.
func (s *Server) Fail(method, path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, failure{method: method, path: path, status: status, body: body})
}

// Requests returns how many requests hit method and path.
func (s *Server) Requests(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[method+" "+path]
}

// SeedUser registers a user directly and returns a valid token.
func (s *Server) SeedUser(username, email, password string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, err := s.createUser(username, email, password)
	if err != nil {
		panic(fmt.Sprintf("apitest: seed user: %v", err))
	}
	return token
}

// SeedBook stores book for the owner of token, assigning an id when empty.
func (s *Server) SeedBook(token string, book api.Book) api.Book {
	s.mu.Lock()
	defer s.mu.Unlock()

	email, ok := s.tokens[token]
	if !ok {
		panic("apitest: seed book: unknown token")
	}
	if book.ID == "" {
		book.ID = uuid.NewString()
	}
	s.books[email] = append(s.books[email], book)
	return book
}

// Books returns a copy of the books owned by the user of token.
func (s *Server) Books(token string) []api.Book {
	s.mu.Lock()
	defer s.mu.Unlock()

	owned := s.books[s.tokens[token]]
	out := make([]api.Book, len(owned))
	copy(out, owned)
	return out
}

// HasToken reports whether token is known to the server.
func (s *Server) HasToken(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tokens[token]
	return ok
}

// createUser requires s.mu held.
func (s *Server) createUser(username, email, password string) (string, error) {
	if _, exists := s.users[email]; exists {
		return "", fmt.Errorf("user with email %s already exists", email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	s.users[email] = &user{username: username, email: email, hash: hash}
	token := uuid.NewString()
	s.tokens[token] = email
	return token, nil
}

// record counts requests and serves injected failures.
func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/api")

		s.mu.Lock()
		s.requests[r.Method+" "+path]++
		var injected *failure
		for i, f := range s.failures {
			if f.method == r.Method && f.path == path {
				injected = &s.failures[i]
				s.failures = append(s.failures[:i:i], s.failures[i+1:]...)
				break
			}
		}
		s.mu.Unlock()

		if injected != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(injected.status)
			_, _ = w.Write([]byte(injected.body)) //nolint:errcheck // test server
			return
		}

		next.ServeHTTP(w, r)
	})
}

// authorize resolves the bearer token of book routes.
func (s *Server) authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

		s.mu.Lock()
		email, ok := s.tokens[token]
		s.mu.Unlock()

		if token == "" || !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			return
		}

		r.Header.Set("X-Apitest-Email", email)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "username, email and password are required"})
		return
	}

	s.mu.Lock()
	token, err := s.createUser(req.Username, req.Email, req.Password)
	s.mu.Unlock()

	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"token": token})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[req.Email]
	if !ok || bcrypt.CompareHashAndPassword(u.hash, []byte(req.Password)) != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
		return
	}

	token := uuid.NewString()
	s.tokens[token] = u.email
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	email := r.Header.Get("X-Apitest-Email")

	s.mu.Lock()
	owned := make([]api.Book, len(s.books[email]))
	copy(owned, s.books[email])
	shape := s.shape
	s.mu.Unlock()

	if shape == ListBare {
		writeJSON(w, http.StatusOK, owned)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"books": owned})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeInput(w, r)
	if !ok {
		return
	}

	book := api.Book{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Author:      in.Author,
		Description: in.Description,
		Tags:        in.Tags,
	}

	email := r.Header.Get("X-Apitest-Email")
	s.mu.Lock()
	s.books[email] = append(s.books[email], book)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, book)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	email := r.Header.Get("X-Apitest-Email")
	id := mux.Vars(r)["id"]

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(email, id)
	if i < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Book not found"})
		return
	}
	writeJSON(w, http.StatusOK, s.books[email][i])
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeInput(w, r)
	if !ok {
		return
	}

	email := r.Header.Get("X-Apitest-Email")
	id := mux.Vars(r)["id"]

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(email, id)
	if i < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Book not found"})
		return
	}

	book := api.Book{
		ID:          id,
		Title:       in.Title,
		Author:      in.Author,
		Description: in.Description,
		Tags:        in.Tags,
	}
	s.books[email][i] = book
	writeJSON(w, http.StatusOK, book)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	email := r.Header.Get("X-Apitest-Email")
	id := mux.Vars(r)["id"]

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(email, id)
	if i < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Book not found"})
		return
	}

	owned := s.books[email]
	s.books[email] = append(owned[:i:i], owned[i+1:]...)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Book deleted"})
}

// indexOf requires s.mu held.
func (s *Server) indexOf(email, id string) int {
	for i, b := range s.books[email] {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func decodeInput(w http.ResponseWriter, r *http.Request) (api.BookInput, bool) {
	var in api.BookInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return in, false
	}
	if in.Title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title is required"})
		return in, false
	}
	return in, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck // test server
}
