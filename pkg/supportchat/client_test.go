package supportchat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsk(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/chat/query", r.URL.Path)

		var req QueryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "what is the range", req.Query)
		assert.Equal(t, "s1", req.SessionID)

		json.NewEncoder(w).Encode(QueryResponse{
			Response:       "Up to 40 km.",
			Confidence:     0.92,
			ResponseSource: "qa_database",
			MessageID:      "m1",
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)

	resp, err := c.Ask(context.Background(), QueryRequest{
		Query:     "what is the range",
		SessionID: "s1",
		UserID:    "u1",
	})

	require.NoError(t, err)
	assert.Equal(t, "Up to 40 km.", resp.Response)
	assert.Equal(t, 0.92, resp.Confidence)
	assert.Equal(t, "qa_database", resp.ResponseSource)
	assert.Equal(t, "m1", resp.MessageID)
}

func TestAsk_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"query is required"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)

	_, err := c.Ask(context.Background(), QueryRequest{})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "query is required", apiErr.Message)
}

func TestAsk_ConnectionRefused(t *testing.T) {
	c := NewClient("http://127.0.0.1:1")

	_, err := c.Ask(context.Background(), QueryRequest{Query: "q"})

	require.Error(t, err)
}

func TestHealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/ready", r.URL.Path)
		w.Write([]byte(`{"status":"ready"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)

	assert.NoError(t, c.Healthy(context.Background()))
}

func TestHealthy_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":"database unreachable"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)

	err := c.Healthy(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	c := NewClient("http://localhost:8086/")

	assert.Equal(t, "http://localhost:8086", c.baseURL)
}
