package rpcclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFieldDottedPathTraversal(t *testing.T) {
	result := map[string]any{
		"value": map[string]any{
			"blockhash": "abc123",
		},
	}
	got, err := Field(result, "value.blockhash")
	require.NoError(t, err)
	require.Equal(t, "abc123", got)
}

func TestFieldArrayIndexSegment(t *testing.T) {
	result := map[string]any{
		"items": []any{"first", "second"},
	}
	got, err := Field(result, "items.1")
	require.NoError(t, err)
	require.Equal(t, "second", got)
}

func TestFieldMissingPathErrors(t *testing.T) {
	_, err := Field(map[string]any{"a": 1}, "b.c")
	require.Error(t, err)
}

func TestGetLatestBlockhashFallsBackToGetRecentBlockhash(t *testing.T) {
	var body struct {
		Method string `json:"method"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		if body.Method == "getLatestBlockhash" {
			w.Write([]byte(`{"jsonrpc":"2.0","id":1,"error":{"code":-32601,"message":"method not found"}}`))
			return
		}
		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":{"value":{"blockhash":"fallbackhash"}}}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	bh, err := c.GetLatestBlockhash(context.Background())
	require.NoError(t, err)
	require.Equal(t, "fallbackhash", bh)
}

func TestCallRetriesOn429HonoringRetryAfter(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":"ok"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.sleep = func(time.Duration) {}

	result, err := c.Call(context.Background(), "anything", nil)
	require.NoError(t, err)
	require.Equal(t, "ok", result)
	require.Equal(t, 2, attempts)
}

func TestCallSurfacesRPCError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"error":{"code":-32602,"message":"invalid params"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Call(context.Background(), "anything", nil)
	require.Error(t, err)
}
