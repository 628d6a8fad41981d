package testserver

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, s *Server, key, query string) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, s.URL()+searchPath+"?"+query, nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", key)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

func TestServerPages(t *testing.T) {
	s := New("key", 5)
	defer s.Close()

	resp, body := get(t, s, "key", "query=cats&page=2&per_page=3&size=1")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "199", resp.Header.Get("X-Ratelimit-Remaining"))
	photos := body["photos"].([]any)
	require.Len(t, photos, 2)
	assert.Equal(t, float64(1003), photos[0].(map[string]any)["id"])
	assert.Equal(t, 1, s.Requests())
	assert.Equal(t, []string{"cats"}, s.Queries())
}

func TestServerRejectsWrongKey(t *testing.T) {
	s := New("key", 5)
	defer s.Close()

	resp, body := get(t, s, "nope", "query=cats&page=1&per_page=3")

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.NotContains(t, body, "photos")
}

func TestServerFailPage(t *testing.T) {
	s := New("key", 50)
	defer s.Close()
	s.FailPage(2, http.StatusServiceUnavailable)

	resp, _ := get(t, s, "key", "query=cats&page=1&per_page=10")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := get(t, s, "key", "query=cats&page=2&per_page=10")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.NotContains(t, body, "photos")
}
