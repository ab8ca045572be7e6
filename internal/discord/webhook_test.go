package discord

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostSendsContent(t *testing.T) {
	var got webhookPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewWebhookClient(5 * time.Second)
	err := client.Post(context.Background(), server.URL, "Good morning!")
	require.NoError(t, err)
	assert.Equal(t, "Good morning!", got.Content)
}

func TestPostReportsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewWebhookClient(5 * time.Second)
	err := client.Post(context.Background(), server.URL, "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestPostReportsConnectionError(t *testing.T) {
	client := NewWebhookClient(time.Second)
	err := client.Post(context.Background(), "http://127.0.0.1:1/hook", "hello")
	assert.Error(t, err)
}
