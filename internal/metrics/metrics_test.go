package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordRecommendation(t *testing.T) {
	before := testutil.ToFloat64(RecommendationRequests.WithLabelValues("ok"))

	RecordRecommendation("ok", 3*time.Millisecond, map[string]int{"job": 2, "course": 0})

	after := testutil.ToFloat64(RecommendationRequests.WithLabelValues("ok"))
	if after != before+1 {
		t.Fatalf("expected ok counter to increase by 1, got %v -> %v", before, after)
	}
}

func TestRecordRecommendationSource(t *testing.T) {
	curated := RecommendationSource.WithLabelValues("job", "similarJobs", "curated")
	computed := RecommendationSource.WithLabelValues("job", "similarJobs", "computed")
	c0, p0 := testutil.ToFloat64(curated), testutil.ToFloat64(computed)

	RecordRecommendationSource("job", "similarJobs", true)
	RecordRecommendationSource("job", "similarJobs", false)
	RecordRecommendationSource("job", "similarJobs", false)

	if got := testutil.ToFloat64(curated) - c0; got != 1 {
		t.Fatalf("curated delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(computed) - p0; got != 2 {
		t.Fatalf("computed delta = %v, want 2", got)
	}
}

func TestRecordHTTPRequest(t *testing.T) {
	c := HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/recommendations", "200")
	before := testutil.ToFloat64(c)

	RecordHTTPRequest("GET", "/api/v1/recommendations", 200, 10*time.Millisecond)

	if got := testutil.ToFloat64(c) - before; got != 1 {
		t.Fatalf("http counter delta = %v, want 1", got)
	}
}

func TestRecordCacheLookup(t *testing.T) {
	h0 := testutil.ToFloat64(CacheHits.WithLabelValues("skills"))
	m0 := testutil.ToFloat64(CacheMisses.WithLabelValues("skills"))

	RecordCacheLookup("skills", true)
	RecordCacheLookup("skills", false)

	if testutil.ToFloat64(CacheHits.WithLabelValues("skills")) != h0+1 {
		t.Fatalf("expected one hit")
	}
	if testutil.ToFloat64(CacheMisses.WithLabelValues("skills")) != m0+1 {
		t.Fatalf("expected one miss")
	}
}
