// Package testserver runs an in-process fake of the Pexels search API
// for tests.
package testserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

const (
	searchPath = "/v1/search"
	quota      = 200
)

// Server simulates the Pexels search endpoint. Every query has Total
// results; photo ids start at IDBase.
type Server struct {
	server *httptest.Server

	APIKey string
	Total  int
	IDBase int

	requestCount int32
	mu           sync.RWMutex
	pageErrors   map[int]int // page → status code
	delay        time.Duration
	queries      []string
}

// New starts a server accepting apiKey with total results per query
func New(apiKey string, total int) *Server {
	s := &Server{
		APIKey:     apiKey,
		Total:      total,
		IDBase:     1000,
		pageErrors: make(map[int]int),
	}

	mux := http.NewServeMux()
	mux.HandleFunc(searchPath, s.handleSearch)
	s.server = httptest.NewServer(mux)
	return s
}

// URL returns the base URL to point a client at
func (s *Server) URL() string {
	return s.server.URL
}

// Close shuts the server down
func (s *Server) Close() {
	s.server.Close()
}

// Requests returns how many search requests were received
func (s *Server) Requests() int {
	return int(atomic.LoadInt32(&s.requestCount))
}

// Queries returns the query parameter of every request, in order
func (s *Server) Queries() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.queries...)
}

// FailPage makes requests for page answer with status
func (s *Server) FailPage(page, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pageErrors[page] = status
}

// SetDelay slows every response down
func (s *Server) SetDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	n := atomic.AddInt32(&s.requestCount, 1)

	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("per_page"))

	s.mu.Lock()
	s.queries = append(s.queries, q.Get("query"))
	delay := s.delay
	failStatus := s.pageErrors[page]
	s.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")

	if r.Header.Get("Authorization") != s.APIKey {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{"error": "Authorization field missing"})
		return
	}

	w.Header().Set("X-Ratelimit-Limit", strconv.Itoa(quota))
	w.Header().Set("X-Ratelimit-Remaining", strconv.Itoa(quota-int(n)))
	w.Header().Set("X-Ratelimit-Reset", "1700000000")

	if failStatus != 0 {
		w.WriteHeader(failStatus)
		_ = json.NewEncoder(w).Encode(map[string]any{"status": failStatus, "code": http.StatusText(failStatus)})
		return
	}

	if q.Get("query") == "" || page < 1 || perPage < 1 {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{"error": "invalid search parameters"})
		return
	}

	photos := []map[string]any{}
	for i := (page - 1) * perPage; i < page*perPage && i < s.Total; i++ {
		id := s.IDBase + i
		photos = append(photos, map[string]any{
			"id":           id,
			"width":        4000,
			"height":       3000,
			"url":          fmt.Sprintf("https://www.pexels.com/photo/%d/", id),
			"photographer": fmt.Sprintf("Author %d", i),
			"src": map[string]any{
				"original": fmt.Sprintf("https://images.pexels.com/photos/%d/original.jpeg", id),
				"medium":   fmt.Sprintf("https://images.pexels.com/photos/%d/medium.jpeg", id),
			},
		})
	}

	_ = json.NewEncoder(w).Encode(map[string]any{
		"page":          page,
		"per_page":      perPage,
		"total_results": s.Total,
		"photos":        photos,
	})
}
