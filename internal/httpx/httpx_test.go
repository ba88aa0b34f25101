package httpx

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnippet(t *testing.T) {
	testCases := []struct {
		input    string
		max      int
		expected string
	}{
		{"short text", 100, "short text"},
		{"", 100, ""},
		{"  trimmed  ", 100, "trimmed"},
		{"long text that should be truncated", 10, "long text …"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, snippet([]byte(tc.input), tc.max), "snippet(%q, %d)", tc.input, tc.max)
	}
}

func TestHTTPError(t *testing.T) {
	err := &HTTPError{
		Method:     "GET",
		URL:        "https://example.com",
		StatusCode: 404,
		Body:       []byte("Not Found"),
	}

	assert.Equal(t, "http error: GET https://example.com status=404 body=Not Found", err.Error())
	assert.True(t, IsNotFound(err))
	assert.True(t, IsNotFound(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, IsNotFound(&HTTPError{StatusCode: 500}))
	assert.False(t, IsNotFound(errors.New("plain")))
}

func TestDefaultRetryConfig(t *testing.T) {
	cfg := DefaultRetryConfig()

	assert.Equal(t, 5, cfg.MaxAttempts)
	assert.Equal(t, 500*time.Millisecond, cfg.BaseDelay)
	assert.Equal(t, 15*time.Second, cfg.MaxDelay)
	assert.Equal(t, 400*time.Millisecond, cfg.Jitter)
	assert.True(t, cfg.Retry5xx)

	for _, status := range []int{429, 408, 425, 503, 502, 504} {
		assert.True(t, cfg.RetryStatuses[status], "status %d should be retryable", status)
	}
}

func TestIsRetryableStatus(t *testing.T) {
	cfg := DefaultRetryConfig()

	for i := 500; i <= 599; i++ {
		assert.True(t, isRetryableStatus(i, cfg), "status %d", i)
	}
	for _, status := range []int{400, 401, 403, 404, 422} {
		assert.False(t, isRetryableStatus(status, cfg), "status %d", status)
	}

	cfg.Retry5xx = false
	assert.False(t, isRetryableStatus(500, cfg))
	assert.True(t, isRetryableStatus(429, cfg))
}

func TestIsRetryableNetErr(t *testing.T) {
	assert.False(t, isRetryableNetErr(context.Canceled))
	assert.True(t, isRetryableNetErr(context.DeadlineExceeded))
	assert.True(t, isRetryableNetErr(&timeoutError{}))
	assert.True(t, isRetryableNetErr(errors.New("connection reset by peer")))
	assert.True(t, isRetryableNetErr(errors.New("write: broken pipe")))
	assert.True(t, isRetryableNetErr(errors.New("unexpected EOF")))
	assert.False(t, isRetryableNetErr(errors.New("some other error")))
}

const retryAfterHeader = "Retry-After"

func TestParseRetryAfter(t *testing.T) {
	resp := &http.Response{Header: http.Header{}}

	resp.Header.Set(retryAfterHeader, "30")
	assert.Equal(t, 30*time.Second, ParseRetryAfter(resp))

	past := time.Now().Add(-60 * time.Second)
	resp.Header.Set(retryAfterHeader, past.UTC().Format(http.TimeFormat))
	assert.Zero(t, ParseRetryAfter(resp))

	resp.Header.Set(retryAfterHeader, "invalid")
	assert.Zero(t, ParseRetryAfter(resp))

	resp.Header.Del(retryAfterHeader)
	assert.Zero(t, ParseRetryAfter(resp))
}

func TestDecodeBody(t *testing.T) {
	payload := []byte(`{"modulecode":"CS2030"}`)

	var br bytes.Buffer
	bw := brotli.NewWriter(&br)
	_, err := bw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, bw.Close())

	var gz bytes.Buffer
	gw := gzip.NewWriter(&gz)
	_, err = gw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, gw.Close())

	out, err := decodeBody("br", br.Bytes())
	require.NoError(t, err)
	assert.Equal(t, payload, out)

	out, err = decodeBody("GZIP", gz.Bytes())
	require.NoError(t, err)
	assert.Equal(t, payload, out)

	out, err = decodeBody("", payload)
	require.NoError(t, err)
	assert.Equal(t, payload, out)

	_, err = decodeBody("compress", payload)
	assert.Error(t, err)

	_, err = decodeBody("gzip", payload)
	assert.Error(t, err)
}

func TestGetJSONBrotliServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, AcceptEncoding, r.Header.Get("Accept-Encoding"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Encoding", "br")
		bw := brotli.NewWriter(w)
		_, _ = bw.Write([]byte(`[{"modulecode":"MA1521","title":"Calculus for Computing"}]`))
		_ = bw.Close()
	}))
	defer srv.Close()

	var out []struct {
		Code  string `json:"modulecode"`
		Title string `json:"title"`
	}
	err := GetJSON(context.Background(), srv.Client(), srv.URL+"/modules.json", &out, DefaultRetryConfig())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "MA1521", out[0].Code)
	assert.Equal(t, "Calculus for Computing", out[0].Title)
}

func TestGetJSONNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	var out map[string]any
	err := GetJSON(context.Background(), srv.Client(), srv.URL+"/missing.json", &out, DefaultRetryConfig())
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

// Mock implementation of net.Error for testing
type timeoutError struct{}

func (e *timeoutError) Error() string   { return "timeout error" }
func (e *timeoutError) Timeout() bool   { return true }
func (e *timeoutError) Temporary() bool { return true }
