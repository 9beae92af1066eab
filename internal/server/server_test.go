package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	demoji "github.com/AIM-Technologies-CO/demoji"
)

func newTestServer(t *testing.T, rps float64, burst int) *httptest.Server {
	t.Helper()
	scanner, err := demoji.New()
	require.NoError(t, err)
	ts := httptest.NewServer(New(scanner, "", rps, burst).Router())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body any) (*http.Response, map[string]any) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, 0, 0)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.Greater(t, body["sequences"], float64(4000))
	assert.NotEmpty(t, body["refreshed"])
}

func TestFindEndpoint(t *testing.T) {
	ts := newTestServer(t, 0, 0)

	resp, body := postJSON(t, ts.URL+"/v1/find", map[string]any{"text": "Hi 😀 world 😀!"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["count"])
	assert.Equal(t, map[string]any{"😀": "grinning face"}, body["matches"])
}

func TestListEndpoint(t *testing.T) {
	ts := newTestServer(t, 0, 0)

	resp, body := postJSON(t, ts.URL+"/v1/list", map[string]any{"text": "Hi 😀 world 😀!", "desc": true})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []any{"grinning face", "grinning face"}, body["occurrences"])

	resp, body = postJSON(t, ts.URL+"/v1/list", map[string]any{"text": "no emoji"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []any{}, body["occurrences"])
	assert.Equal(t, float64(0), body["count"])
}

func TestReplaceEndpoint(t *testing.T) {
	ts := newTestServer(t, 0, 0)

	resp, body := postJSON(t, ts.URL+"/v1/replace", map[string]any{"text": "Hi 😀 world 😀!"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Hi  world !", body["result"])

	resp, body = postJSON(t, ts.URL+"/v1/replace", map[string]any{
		"text":             "Hi 😀 world 😀!",
		"with_description": true,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Hi :grinning face: world :grinning face:!", body["result"])
}

func TestReplaceEndpointCustomReplacement(t *testing.T) {
	ts := newTestServer(t, 0, 0)

	resp, body := postJSON(t, ts.URL+"/v1/replace", map[string]any{"text": "Hi 😀!", "replacement": "X"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Hi X!", body["result"])
}

func TestInvalidBody(t *testing.T) {
	ts := newTestServer(t, 0, 0)

	resp, err := http.Post(ts.URL+"/v1/find", "application/json", bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRateLimit(t *testing.T) {
	// 1 request burst, effectively no refill during the test.
	ts := newTestServer(t, 0.001, 1)

	resp, _ := postJSON(t, ts.URL+"/v1/find", map[string]any{"text": "😀"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := postJSON(t, ts.URL+"/v1/find", map[string]any{"text": "😀"})
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Contains(t, body["error"], "rate limit")

	// Health and metrics stay outside the limiter.
	healthResp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	healthResp.Body.Close()
	assert.Equal(t, http.StatusOK, healthResp.StatusCode)
}
