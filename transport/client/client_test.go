package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/layer-3/inkgate/adapters/store"
)

func TestNew_BaseURL(t *testing.T) {
	tests := []struct {
		name   string
		server string
		want   string
	}{
		{"with http prefix", "http://localhost:5000", "http://localhost:5000"},
		{"with https prefix", "https://api.example.com/", "https://api.example.com"},
		{"without prefix", "localhost:5000", "http://localhost:5000"},
		{"empty", "", DefaultBaseURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.server, store.NewMemoryStore()).BaseURL())
		})
	}
}

func TestClient_SignsRequests(t *testing.T) {
	var gotAuth, gotUA []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = append(gotAuth, r.Header.Get("Authorization"))
		gotUA = append(gotUA, r.Header.Get("User-Agent"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx := context.Background()
	s := store.NewMemoryStore()
	c := New(srv.URL, s)

	resp, err := c.Get(ctx, "/projects")
	require.NoError(t, err)
	resp.Body.Close()

	require.NoError(t, s.Set(ctx, "jwt-token"))
	resp, err = c.Get(ctx, "/projects")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, []string{"", "Bearer jwt-token"}, gotAuth)
	assert.Equal(t, []string{"inkgate/1.0", "inkgate/1.0"}, gotUA)
}

func TestClient_Post(t *testing.T) {
	type payload struct {
		Title string `json:"title"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer jwt-token", r.Header.Get("Authorization"))

		var body payload
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Draft one", body.Title)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	s := store.NewMemoryStore()
	require.NoError(t, s.Set(context.Background(), "jwt-token"))

	resp, err := New(srv.URL, s).Post(context.Background(), "/projects", payload{Title: "Draft one"})
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestClient_PostNilBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.Empty(t, body)
	}))
	defer srv.Close()

	resp, err := New(srv.URL, store.NewMemoryStore()).Post(context.Background(), "/trigger", nil)
	require.NoError(t, err)
	resp.Body.Close()
}

func TestClient_DoAndCustomUserAgent(t *testing.T) {
	var ua string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	c := New(srv.URL, store.NewMemoryStore(), WithUserAgent("writer/2"))
	req, err := http.NewRequest(http.MethodDelete, c.BaseURL()+"/x", nil)
	require.NoError(t, err)

	resp, err := c.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "writer/2", ua)
	assert.NotNil(t, c.HTTPClient())
}
