package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendText(t *testing.T) {
	var received map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := NewWebhookClient(srv.URL).SendText(context.Background(), "monthly report")
	require.NoError(t, err)
	assert.Equal(t, "monthly report", received["text"])
	assert.Equal(t, "monthly report", received["content"])
}

func TestSendTextReportsProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"invalid webhook token"}`))
	}))
	defer srv.Close()

	err := NewWebhookClient(srv.URL).SendText(context.Background(), "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "code=403")
	assert.Contains(t, err.Error(), "invalid webhook token")
}
