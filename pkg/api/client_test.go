package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blessedav/FINALGO/pkg/api"
	"github.com/blessedav/FINALGO/pkg/api/apitest"
	"github.com/blessedav/FINALGO/pkg/logger"
)

func newClient(t *testing.T) (*api.Client, *apitest.Server) {
	t.Helper()

	srv := apitest.NewServer()
	t.Cleanup(srv.Close)

	return api.New(api.Config{BaseURL: srv.URL()}, logger.Noop()), srv
}

func TestRegisterAndLogin(t *testing.T) {
	client, srv := newClient(t)
	ctx := context.Background()

	token, err := client.Register(ctx, "ann", "ann@example.com", "secret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, srv.HasToken(token))

	token, err = client.Login(ctx, "ann@example.com", "secret")
	require.NoError(t, err)
	assert.True(t, srv.HasToken(token))
}

func TestLoginRejected(t *testing.T) {
	client, srv := newClient(t)
	srv.SeedUser("ann", "ann@example.com", "secret")

	_, err := client.Login(context.Background(), "ann@example.com", "wrong")
	require.Error(t, err)

	var apiErr *api.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
	assert.False(t, api.IsNetwork(err))
}

func TestLoginWithoutTokenIsFailure(t *testing.T) {
	client, srv := newClient(t)
	srv.Fail(http.MethodPost, "/auth/login", http.StatusOK, `{"message":"welcome"}`)

	_, err := client.Login(context.Background(), "ann@example.com", "secret")
	require.Error(t, err)
	assert.Equal(t, "Auth error", api.MessageOr(err, "Auth error", "net"))
}

func TestLoginTokenWinsOverStatus(t *testing.T) {
	client, srv := newClient(t)
	srv.Fail(http.MethodPost, "/auth/login", http.StatusAccepted, `{"token":"abc"}`)

	token, err := client.Login(context.Background(), "ann@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "abc", token)
}

func TestBookCRUD(t *testing.T) {
	client, srv := newClient(t)
	ctx := context.Background()
	token := srv.SeedUser("ann", "ann@example.com", "secret")

	created, err := client.CreateBook(ctx, token, api.BookInput{
		Title:  "Dune",
		Author: "Frank Herbert",
		Tags:   []string{"sf", "classic"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, []string{"sf", "classic"}, created.Tags)

	got, err := client.GetBook(ctx, token, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	updated, err := client.UpdateBook(ctx, token, created.ID, api.BookInput{
		Title:       "Dune Messiah",
		Author:      "Frank Herbert",
		Description: "sequel",
		Tags:        []string{"sf"},
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Dune Messiah", updated.Title)

	books, err := client.ListBooks(ctx, token)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, updated, books[0])

	require.NoError(t, client.DeleteBook(ctx, token, created.ID))

	books, err = client.ListBooks(ctx, token)
	require.NoError(t, err)
	assert.Empty(t, books)
	assert.NotNil(t, books)
}

func TestListBooksShapes(t *testing.T) {
	client, srv := newClient(t)
	token := srv.SeedUser("ann", "ann@example.com", "secret")
	srv.SeedBook(token, api.Book{ID: "5", Title: "A"})
	srv.SeedBook(token, api.Book{ID: "7", Title: "B"})

	for _, shape := range []apitest.ListShape{apitest.ListWrapped, apitest.ListBare} {
		srv.SetListShape(shape)

		books, err := client.ListBooks(context.Background(), token)
		require.NoError(t, err)
		require.Len(t, books, 2)
		assert.Equal(t, "5", books[0].ID)
		assert.Equal(t, "7", books[1].ID)
	}
}

func TestListBooksServerError(t *testing.T) {
	client, srv := newClient(t)
	token := srv.SeedUser("ann", "ann@example.com", "secret")
	srv.Fail(http.MethodGet, "/books", http.StatusInternalServerError, `{"error":"boom"}`)

	books, err := client.ListBooks(context.Background(), token)
	require.Error(t, err)
	assert.Nil(t, books)
	assert.Equal(t, http.StatusInternalServerError, api.StatusCode(err))
	assert.Equal(t, "boom", api.MessageOr(err, "fallback", "net"))
}

func TestErrorBodyUnparseable(t *testing.T) {
	client, srv := newClient(t)
	token := srv.SeedUser("ann", "ann@example.com", "secret")
	srv.Fail(http.MethodDelete, "/books/1", http.StatusBadGateway, `<html>bad gateway</html>`)

	err := client.DeleteBook(context.Background(), token, "1")
	require.Error(t, err)
	assert.Equal(t, "Failed to delete book", api.MessageOr(err, "Failed to delete book", "net"))
}

func TestUnauthorized(t *testing.T) {
	client, _ := newClient(t)

	_, err := client.ListBooks(context.Background(), "stale-token")
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, api.StatusCode(err))
}

func TestSendsBearerAndJSON(t *testing.T) {
	var (
		gotAuth        string
		gotContentType string
		gotBody        map[string]interface{}
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody) //nolint:errcheck // asserted below
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`not json`)) //nolint:errcheck // test server
	}))
	defer srv.Close()

	client := api.New(api.Config{BaseURL: srv.URL + "/"}, logger.Noop())
	book, err := client.CreateBook(context.Background(), "T", api.BookInput{Title: "X"})

	require.NoError(t, err, "malformed success body is tolerated")
	assert.Equal(t, api.Book{}, book)
	assert.Equal(t, "Bearer T", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, []interface{}{}, gotBody["tags"], "nil tags encode as an empty array")
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := api.New(api.Config{BaseURL: url}, logger.Noop())
	_, err := client.ListBooks(context.Background(), "T")

	require.Error(t, err)
	assert.True(t, api.IsNetwork(err))
	assert.True(t, errors.Is(err, api.ErrNetwork))
	assert.Equal(t, 0, api.StatusCode(err))
	assert.Equal(t, "net", api.MessageOr(err, "fallback", "net"))
}

func TestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := api.New(api.Config{BaseURL: srv.URL, Timeout: 20 * time.Millisecond}, logger.Noop())
	err := client.DeleteBook(context.Background(), "T", "1")

	assert.True(t, api.IsNetwork(err))
}
