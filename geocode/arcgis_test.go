package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(handler http.HandlerFunc) (*ArcGIS, func()) {
	srv := httptest.NewServer(handler)
	return NewArcGIS(srv.URL, 5*time.Second), srv.Close
}

func TestLookupTopCandidate(t *testing.T) {
	client, done := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("SingleLine"); got != "Eiffel Tower" {
			t.Errorf("SingleLine = %q, want %q", got, "Eiffel Tower")
		}
		if got := r.URL.Query().Get("f"); got != "json" {
			t.Errorf("f = %q, want json", got)
		}
		w.Write([]byte(`{"candidates": [
			{"address": "Eiffel Tower, Paris", "score": 98.5, "location": {"x": 2.2945, "y": 48.8584}},
			{"address": "Eiffel Tower Restaurant, Las Vegas", "score": 80, "location": {"x": -115.17, "y": 36.11}}
		]}`))
	})
	defer done()

	got, err := client.Lookup(context.Background(), "Eiffel Tower")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Latitude != 48.8584 || got.Longitude != 2.2945 {
		t.Errorf("coordinates = (%v, %v), want (48.8584, 2.2945)", got.Latitude, got.Longitude)
	}
	if got.Score != 98.5 {
		t.Errorf("score = %v, want 98.5", got.Score)
	}
	if got.Address != "Eiffel Tower, Paris" {
		t.Errorf("address = %q, want the top candidate's", got.Address)
	}
}

func TestLookupNoCandidates(t *testing.T) {
	client, done := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	})
	defer done()

	_, err := client.Lookup(context.Background(), "xyzzy nowhere")
	if !errors.Is(err, ErrNoCandidates) {
		t.Errorf("error = %v, want ErrNoCandidates", err)
	}
}

func TestLookupHTTPError(t *testing.T) {
	client, done := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	})
	defer done()

	if _, err := client.Lookup(context.Background(), "anywhere"); err == nil {
		t.Fatal("expected error on HTTP 502")
	}
}

func TestLookupMalformedPayload(t *testing.T) {
	client, done := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": [`))
	})
	defer done()

	if _, err := client.Lookup(context.Background(), "anywhere"); err == nil {
		t.Fatal("expected error on malformed payload")
	}
}

func TestLookupServiceError(t *testing.T) {
	client, done := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": {"code": 403, "message": "quota exceeded"}}`))
	})
	defer done()

	if _, err := client.Lookup(context.Background(), "anywhere"); err == nil {
		t.Fatal("expected error on service-level error payload")
	}
}
