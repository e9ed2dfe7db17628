package aigateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/arjunms/maninventory-api/internal/config"
	"github.com/arjunms/maninventory-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *Client {
	return NewClient(&config.AIConfig{
		GatewayURL: url,
		APIKey:     "test-key",
		Model:      "test-model",
		Timeout:    5 * time.Second,
	})
}

func TestCompleteReturnsContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req completionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		require.Len(t, req.Messages, 1)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"restock rice"}}]}`))
	}))
	defer srv.Close()

	content, err := newTestClient(srv.URL).Complete(context.Background(), []Message{
		{Role: "user", Content: "what should I restock?"},
	})
	require.NoError(t, err)
	assert.Equal(t, "restock rice", content)
}

func TestCompleteUnconfigured(t *testing.T) {
	client := NewClient(&config.AIConfig{Timeout: time.Second})

	_, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}})
	assert.ErrorIs(t, err, apperror.ErrStoreUnavailable)
}

func TestCompleteGatewayStatuses(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{"rate limited", http.StatusTooManyRequests, apperror.ErrUpstreamRateLimited},
		{"payment required", http.StatusPaymentRequired, apperror.ErrUpstreamPaymentRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			_, err := newTestClient(srv.URL).Complete(context.Background(), []Message{{Role: "user", Content: "hi"}})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCompleteMalformedReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Complete(context.Background(), []Message{{Role: "user", Content: "hi"}})
	assert.ErrorIs(t, err, apperror.ErrUpstreamParse)
}

func TestCompleteEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Complete(context.Background(), []Message{{Role: "user", Content: "hi"}})
	assert.ErrorIs(t, err, apperror.ErrUpstreamParse)
}
