package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.PageFetched("r_wo", SourceNetwork)
	m.PageFetched("r_wo", SourceNetwork)
	m.PageFetched("r_wo", SourceCache)
	m.FetchFailed("http")
	m.EntriesReturned(45)
	m.ObserveRequest(150 * time.Millisecond)

	if got := testutil.ToFloat64(m.pagesFetched.WithLabelValues("r_wo", SourceNetwork)); got != 2 {
		t.Errorf("network pages = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.pagesFetched.WithLabelValues("r_wo", SourceCache)); got != 1 {
		t.Errorf("cache pages = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.fetchErrors.WithLabelValues("http")); got != 1 {
		t.Errorf("http errors = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.entriesReturned); got != 45 {
		t.Errorf("entries = %v, want 45", got)
	}
	if n := testutil.CollectAndCount(m.requestDuration); n != 1 {
		t.Errorf("histogram series = %d, want 1", n)
	}
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.PageFetched("r_wo", SourceNetwork)
	m.FetchFailed("decode")
	m.EntriesReturned(1)
	m.ObserveRequest(time.Second)
	if m.Registry() != nil {
		t.Error("nil Metrics returned a registry")
	}
	if err := m.WriteTextfile(filepath.Join(t.TempDir(), "x.prom")); err != nil {
		t.Errorf("WriteTextfile on nil = %v", err)
	}
}

func TestMetrics_WriteTextfile(t *testing.T) {
	m := New()
	m.PageFetched("r_ca_1", SourceNetwork)

	path := filepath.Join(t.TempDir(), "leaderboard.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := `leaderboard_pages_fetched_total{mode="r_ca_1",source="network"} 1`
	if !strings.Contains(string(data), want) {
		t.Errorf("textfile missing %q:\n%s", want, data)
	}
}
