// Package testutils provides a fake leaderboard API and entry fixtures.
package testutils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/openmohaa/diabotical-leaderboard/internal/models"
)

// LeaderboardPath is the route the fake server answers on.
const LeaderboardPath = "/api/v0/stats/leaderboard"

const pageSize = 20

// SampleJSON is a two-entry page as the live API returns it.
const SampleJSON = `[
	{"user_id": "b325363ffe6d46c8840c951b334cc09c", "name": "enesy", "country": "dk", "match_type": 2, "rating": "2246", "rank_tier": 40, "rank_position": 1, "match_count": 48, "match_wins": 42},
	{"user_id": "aee1fba486c54d1d8600b3c82c9264d7", "name": "Cookk1", "country": "", "match_type": 2, "rating": "2216", "rank_tier": 40, "rank_position": 2, "match_count": 34, "match_wins": 30}
]`

// Request is one call received by the fake server.
type Request struct {
	Mode      string
	Offset    int
	RequestID string
}

// LeaderboardServer serves a fixed set of entries in pages of 20.
type LeaderboardServer struct {
	*httptest.Server

	mu       sync.Mutex
	entries  []models.Entry
	requests []Request
	statuses map[int]int
	bodies   map[int]string
}

// NewLeaderboardServer starts a fake API serving entries. It is closed when
// the test ends.
func NewLeaderboardServer(t *testing.T, entries []models.Entry) *LeaderboardServer {
	t.Helper()

	s := &LeaderboardServer{
		entries:  entries,
		statuses: make(map[int]int),
		bodies:   make(map[int]string),
	}

	r := chi.NewRouter()
	r.Get(LeaderboardPath, s.serveLeaderboard)
	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)

	return s
}

// URL returns the full leaderboard endpoint URL.
func (s *LeaderboardServer) URL() string {
	return s.Server.URL + LeaderboardPath
}

// FailAt makes the page at offset respond with status.
func (s *LeaderboardServer) FailAt(offset, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses[offset] = status
}

// BodyAt replaces the body of the page at offset.
func (s *LeaderboardServer) BodyAt(offset int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bodies[offset] = body
}

// Requests returns the calls received so far, in order.
func (s *LeaderboardServer) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Offsets returns the offsets requested so far, in order.
func (s *LeaderboardServer) Offsets() []int {
	reqs := s.Requests()
	offsets := make([]int, len(reqs))
	for i, r := range reqs {
		offsets[i] = r.Offset
	}
	return offsets
}

func (s *LeaderboardServer) serveLeaderboard(w http.ResponseWriter, r *http.Request) {
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		jsonResponse(w, http.StatusBadRequest, map[string]string{"error": "invalid offset"})
		return
	}

	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Mode:      r.URL.Query().Get("mode"),
		Offset:    offset,
		RequestID: r.Header.Get("X-Request-ID"),
	})
	status, failing := s.statuses[offset]
	body, overridden := s.bodies[offset]
	page := s.page(offset)
	s.mu.Unlock()

	switch {
	case failing:
		jsonResponse(w, status, map[string]string{"error": http.StatusText(status)})
	case overridden:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, body)
	default:
		jsonResponse(w, http.StatusOK, map[string]interface{}{"leaderboard": page})
	}
}

func (s *LeaderboardServer) page(offset int) []models.Entry {
	if offset >= len(s.entries) {
		return []models.Entry{}
	}
	end := offset + pageSize
	if end > len(s.entries) {
		end = len(s.entries)
	}
	return s.entries[offset:end]
}

func jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// MustEntries decodes a JSON array of entry objects.
func MustEntries(t *testing.T, data string) []models.Entry {
	t.Helper()
	var entries []models.Entry
	if err := json.Unmarshal([]byte(data), &entries); err != nil {
		t.Fatalf("decode fixture entries: %v", err)
	}
	return entries
}

// SampleEntries returns the two entries of SampleJSON.
func SampleEntries(t *testing.T) []models.Entry {
	t.Helper()
	return MustEntries(t, SampleJSON)
}

var countries = []string{"dk", "ru", "", "de", "us"}

// Players generates n ranked entries. Entry i has user id fmt "%032x" of i,
// rank_position i+1 and a country cycling through dk, ru, "", de, us.
func Players(t *testing.T, n int) []models.Entry {
	t.Helper()
	entries := make([]models.Entry, n)
	for i := range entries {
		e := &entries[i]
		fields := []struct {
			key   string
			value interface{}
		}{
			{models.FieldUserID, UserID(i)},
			{"name", fmt.Sprintf("player%d", i+1)},
			{models.FieldCountry, countries[i%len(countries)]},
			{"match_type", 2},
			{"rating", strconv.Itoa(2500 - i)},
			{"rank_tier", 40},
			{"rank_position", i + 1},
			{"match_count", 50},
			{"match_wins", 25},
		}
		for _, f := range fields {
			if err := e.Set(f.key, f.value); err != nil {
				t.Fatalf("build player %d: %v", i, err)
			}
		}
	}
	return entries
}

// UserID is the id Players assigns to entry i.
func UserID(i int) string {
	return fmt.Sprintf("%032x", i)
}
