package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	products := []map[string]any{
		{"_id": "a1", "name": "Shirt", "description": "Cotton", "price": 12.5, "category": "Clothes"},
		{"_id": "b2", "name": "Shoe", "description": "Leather", "price": 30, "category": "Footwear"},
		{"_id": "c3", "name": "Hat", "description": "Wool", "price": 5, "category": "Clothes"},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/auth/signin":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"token": "tok",
				"user":  map[string]any{"_id": "u1", "name": "Ana", "email": "ana@example.com"},
			})
		case r.Header.Get("Authorization") != "Bearer tok":
			w.WriteHeader(http.StatusUnauthorized)
		case r.Method == http.MethodGet && r.URL.Path == "/products":
			_ = json.NewEncoder(w).Encode(map[string]any{"products": products})
		case r.Method == http.MethodPost && r.URL.Path == "/products":
			var body map[string]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			body["_id"] = "d4"
			_ = json.NewEncoder(w).Encode(map[string]any{"product": body})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func setEnv(t *testing.T, baseURL string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("API_BASE_URL", baseURL)
	t.Setenv("SESSION_DB_PATH", filepath.Join(dir, "session.db"))
	t.Setenv("LOGGER_FILE", filepath.Join(dir, "admin.log"))
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	prev := stdout
	stdout = &out
	defer func() { stdout = prev }()
	err := commands[args[0]](context.Background(), args[1:])
	return out.String(), err
}

func TestListRequiresSession(t *testing.T) {
	setEnv(t, fakeAPI(t).URL)

	_, err := run(t, "list")

	assert.ErrorIs(t, err, errNotSignedIn)
}

func TestSignInThenListFilteredAndSorted(t *testing.T) {
	setEnv(t, fakeAPI(t).URL)

	out, err := run(t, "signin", "-email", "Ana@Example.com", "-password", "secret1")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in as Ana")

	out, err = run(t, "whoami")
	require.NoError(t, err)
	assert.Equal(t, "Ana <ana@example.com>\n", out)

	out, err = run(t, "list", "-column", "category", "-filter", "clo", "-sort", "price")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], "c3"))
	assert.True(t, strings.HasPrefix(lines[2], "a1"))
	assert.Contains(t, lines[2], "R$ 12,50")
	assert.Equal(t, "2 of 3 products", lines[3])
}

func TestCategoriesAndCreate(t *testing.T) {
	setEnv(t, fakeAPI(t).URL)
	_, err := run(t, "signin", "-email", "ana@example.com", "-password", "secret1")
	require.NoError(t, err)

	out, err := run(t, "categories")
	require.NoError(t, err)
	assert.Equal(t, "Clothes\nFootwear\n", out)

	_, err = run(t, "create", "-name", "Sock", "-description", "Cotton", "-price", "0", "-existing-category", "Clothes")
	assert.EqualError(t, err, "Price must be greater than zero")

	out, err = run(t, "create", "-name", "Sock", "-description", "Cotton", "-price", "3,50", "-existing-category", "Clothes")
	require.NoError(t, err)
	assert.Equal(t, "Created Sock (d4)\n", out)
}

func TestLogoutEndsSession(t *testing.T) {
	setEnv(t, fakeAPI(t).URL)
	_, err := run(t, "signin", "-email", "ana@example.com", "-password", "secret1")
	require.NoError(t, err)

	_, err = run(t, "logout")
	require.NoError(t, err)

	_, err = run(t, "whoami")
	assert.ErrorIs(t, err, errNotSignedIn)
}

func TestRejectedTokenExpiresSession(t *testing.T) {
	srv := fakeAPI(t)
	setEnv(t, srv.URL)
	_, err := run(t, "signin", "-email", "ana@example.com", "-password", "secret1")
	require.NoError(t, err)

	a, err := newApp(context.Background())
	require.NoError(t, err)
	require.NoError(t, a.session.Login(context.Background(), "stale", a.session.User()))
	a.close()

	_, err = run(t, "list")
	assert.ErrorIs(t, err, errSessionExpired)

	_, err = run(t, "whoami")
	assert.ErrorIs(t, err, errNotSignedIn)
}

func TestFillStopsAtFirstRejectedEdit(t *testing.T) {
	rejected := errors.New("rejected")
	var applied []string

	err := fill(
		func() error { applied = append(applied, "name"); return nil },
		func() error { return rejected },
		func() error { applied = append(applied, "password"); return nil },
	)

	assert.ErrorIs(t, err, rejected)
	assert.Equal(t, []string{"name"}, applied)
}
