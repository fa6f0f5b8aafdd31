// Package rpcclient is a minimal JSON-RPC 2.0 client for the Solana RPC
// methods solxact needs: blockhash lookup, simulation, submission, and
// transaction-status polling. It is grounded on the retry/backoff shape of
// the teacher's tools-solana/pkg/jsonrpc package, simplified to the single
// always-retry-on-429 policy solxact's submit/simulate paths require.
package rpcclient

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bji/solxact/internal/clierr"
)

const defaultRetryAfter = 3 * time.Second

// Client issues JSON-RPC 2.0 calls against a single Solana RPC endpoint.
type Client struct {
	URL        string
	HTTPClient *http.Client

	// sleep is overridable in tests so retry delays don't actually block.
	sleep func(time.Duration)
}

// New builds a Client against url with a 30-second HTTP timeout, matching
// the teacher's default transport posture for RPC calls.
func New(url string) *Client {
	return &Client{
		URL:        url,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		sleep:      time.Sleep,
	}
}

type request struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params,omitempty"`
}

type response struct {
	Result any            `json:"result"`
	Error  *responseError `json:"error"`
}

type responseError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Call issues method with params and returns the raw decoded result, retrying
// indefinitely on HTTP 429 (honoring Retry-After, default 3s when absent or
// unparseable).
func (c *Client) Call(ctx context.Context, method string, params []any) (any, error) {
	body, err := json.Marshal(request{JSONRPC: "2.0", ID: 1, Method: method, Params: params})
	if err != nil {
		return nil, clierr.Wrap(clierr.KindRPC, err, "marshal request for %s", method)
	}

	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
		if err != nil {
			return nil, clierr.Wrap(clierr.KindRPC, err, "build request for %s", method)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			return nil, clierr.Wrap(clierr.KindRPC, err, "%s request failed", method)
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			wait := retryAfter(resp.Header.Get("Retry-After"))
			resp.Body.Close()
			select {
			case <-ctx.Done():
				return nil, clierr.Wrap(clierr.KindRPC, ctx.Err(), "%s: context cancelled while backing off", method)
			default:
			}
			c.sleep(wait)
			continue
		}

		var rpcResp response
		decErr := json.NewDecoder(resp.Body).Decode(&rpcResp)
		resp.Body.Close()
		if decErr != nil {
			return nil, clierr.Wrap(clierr.KindRPC, decErr, "decode %s response", method)
		}
		if rpcResp.Error != nil {
			return nil, clierr.New(clierr.KindRPC, "%s: rpc error %d: %s", method, rpcResp.Error.Code, rpcResp.Error.Message)
		}
		return rpcResp.Result, nil
	}
}

func retryAfter(header string) time.Duration {
	if header == "" {
		return defaultRetryAfter
	}
	if secs, err := strconv.Atoi(header); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	return defaultRetryAfter
}

// Field traverses result along a dot-separated path (e.g. "value.blockhash"),
// descending through maps and, for numeric segments, arrays.
func Field(result any, path string) (any, error) {
	cur := result
	if path == "" {
		return cur, nil
	}
	for _, seg := range strings.Split(path, ".") {
		switch v := cur.(type) {
		case map[string]any:
			next, ok := v[seg]
			if !ok {
				return nil, clierr.New(clierr.KindRPC, "field %q not found in response", path)
			}
			cur = next
		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(v) {
				return nil, clierr.New(clierr.KindRPC, "field %q not found in response", path)
			}
			cur = v[idx]
		default:
			return nil, clierr.New(clierr.KindRPC, "field %q not found in response", path)
		}
	}
	return cur, nil
}

// GetLatestBlockhash calls getLatestBlockhash, falling back to the
// deprecated getRecentBlockhash when the node doesn't implement it.
func (c *Client) GetLatestBlockhash(ctx context.Context) (string, error) {
	result, err := c.Call(ctx, "getLatestBlockhash", []any{map[string]any{"commitment": "finalized"}})
	if err == nil {
		bh, ferr := Field(result, "value.blockhash")
		if ferr == nil {
			if s, ok := bh.(string); ok {
				return s, nil
			}
		}
	}

	result, err = c.Call(ctx, "getRecentBlockhash", []any{map[string]any{"commitment": "finalized"}})
	if err != nil {
		return "", err
	}
	bh, err := Field(result, "value.blockhash")
	if err != nil {
		return "", err
	}
	s, ok := bh.(string)
	if !ok {
		return "", clierr.New(clierr.KindRPC, "getRecentBlockhash: blockhash field is not a string")
	}
	return s, nil
}

// SimulateTransaction calls simulateTransaction with a base64-encoded
// transaction payload.
func (c *Client) SimulateTransaction(ctx context.Context, txBytes []byte) (any, error) {
	payload := base64.StdEncoding.EncodeToString(txBytes)
	return c.Call(ctx, "simulateTransaction", []any{payload, map[string]any{"encoding": "base64"}})
}

// SendTransaction calls sendTransaction with a base64-encoded transaction
// payload and returns the transaction signature.
func (c *Client) SendTransaction(ctx context.Context, txBytes []byte) (string, error) {
	payload := base64.StdEncoding.EncodeToString(txBytes)
	result, err := c.Call(ctx, "sendTransaction", []any{payload, map[string]any{"encoding": "base64"}})
	if err != nil {
		return "", err
	}
	sig, ok := result.(string)
	if !ok {
		return "", clierr.New(clierr.KindRPC, "sendTransaction: unexpected result shape")
	}
	return sig, nil
}

// GetTransaction calls getTransaction for sig, requesting finalized
// commitment the way submit's confirmation poll does.
func (c *Client) GetTransaction(ctx context.Context, sig string) (any, error) {
	return c.Call(ctx, "getTransaction", []any{sig, map[string]any{"commitment": "finalized"}})
}

// PollForConfirmation polls getTransaction every second until a non-nil
// result is returned or ctx is cancelled.
func (c *Client) PollForConfirmation(ctx context.Context, sig string) (any, error) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		result, err := c.GetTransaction(ctx, sig)
		if err != nil {
			return nil, err
		}
		if result != nil {
			return result, nil
		}
		select {
		case <-ctx.Done():
			return nil, clierr.Wrap(clierr.KindRPC, ctx.Err(), "timed out waiting for confirmation of %s", sig)
		case <-ticker.C:
		}
	}
}
