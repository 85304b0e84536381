package authstub

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/layer-3/inkgate/adapters/authapi"
	"github.com/layer-3/inkgate/core"
	"github.com/layer-3/inkgate/internal/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newStub() *Server {
	return New(WithBcryptCost(bcrypt.MinCost), WithLogger(logger.Nop()))
}

func post(t *testing.T, router http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestServer_RegisterThenLogin(t *testing.T) {
	s := newStub()

	token, err := s.Register("user@example.com", "password")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = s.Register("USER@example.com", "other-password")
	assert.ErrorIs(t, err, ErrEmailTaken)

	second, err := s.Login("user@example.com", "password")
	require.NoError(t, err)
	assert.NotEqual(t, token, second)

	id1, ok := s.UserForToken(token)
	require.True(t, ok)
	id2, ok := s.UserForToken(second)
	require.True(t, ok)
	assert.Equal(t, id1, id2)

	_, err = s.Login("user@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = s.Login("nobody@example.com", "password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRouter_Responses(t *testing.T) {
	router := newStub().Router()

	tests := []struct {
		name    string
		path    string
		body    string
		status  int
		message string
	}{
		{"register", "/auth/register", `{"email":"user@example.com","password":"password"}`, http.StatusCreated, ""},
		{"register duplicate", "/auth/register", `{"email":"user@example.com","password":"password"}`, http.StatusConflict, "Email already registered"},
		{"login", "/auth/login", `{"email":"user@example.com","password":"password"}`, http.StatusOK, ""},
		{"login wrong password", "/auth/login", `{"email":"user@example.com","password":"wrong-one"}`, http.StatusUnauthorized, "Invalid credentials"},
		{"short password", "/auth/register", `{"email":"new@example.com","password":"abc"}`, http.StatusBadRequest, "Validation error"},
		{"bad email", "/auth/login", `{"email":"nope","password":"password"}`, http.StatusBadRequest, "Validation error"},
		{"not json", "/auth/login", `email=user`, http.StatusBadRequest, "Validation error"},
	}

	// Cases share one backend and run in order.
	for _, tt := range tests {
		w := post(t, router, tt.path, tt.body)
		assert.Equal(t, tt.status, w.Code, tt.name)
		if tt.message != "" {
			assert.Contains(t, w.Body.String(), `"message":"`+tt.message+`"`, tt.name)
		} else {
			assert.Contains(t, w.Body.String(), `"token":"`, tt.name)
		}
	}
}

func TestRouter_WithHTTPAPI(t *testing.T) {
	srv := httptest.NewServer(newStub().Router())
	defer srv.Close()

	api := authapi.NewHTTPAPI(srv.URL)
	ctx := context.Background()
	creds := core.Credentials{Email: "user@example.com", Password: "password"}

	token, err := api.Register(ctx, creds)
	require.NoError(t, err)
	assert.True(t, token.Present())

	_, err = api.Register(ctx, creds)
	var rejected *core.RejectedError
	require.True(t, errors.As(err, &rejected))
	assert.Equal(t, http.StatusConflict, rejected.Status)
	assert.Equal(t, "Email already registered", rejected.Message)

	token, err = api.Login(ctx, creds)
	require.NoError(t, err)
	assert.True(t, token.Present())
}
