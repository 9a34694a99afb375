package resolver_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"grabarr/internal/resolver"
)

// TestResolve checks the happy path against a stub API.
func TestResolve(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/videos/abc/download-url" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}

		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		if body["video_id"] != "abc" {
			t.Errorf("unexpected video_id: %q", body["video_id"])
		}

		fmt.Fprintf(w, `{"download_url": "https://cdn.example/abc.mp4?sig=xyz"}`)
	}))
	defer srv.Close()

	r := resolver.New(srv.URL)

	got, err := r.Resolve(context.Background(), "abc", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "https://cdn.example/abc.mp4?sig=xyz" {
		t.Fatalf("resolved URL = %q", got)
	}
}

// TestResolve_HTTPError checks non-2xx statuses propagate as errors.
func TestResolve_HTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	r := resolver.New(srv.URL)

	if _, err := r.Resolve(context.Background(), "abc", ""); err == nil {
		t.Fatal("expected error for 403 response, got nil")
	}
}

// TestResolve_MissingField checks a body without the URL field errors when no
// share page is available to fall back to.
func TestResolve_MissingField(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status": "ok"}`)
	}))
	defer srv.Close()

	r := resolver.New(srv.URL)

	if _, err := r.Resolve(context.Background(), "abc", ""); err == nil {
		t.Fatal("expected error for missing download_url field, got nil")
	}
}

// TestResolve_ScrapeFallback checks the share page scan kicks in when the API
// response has no URL field.
func TestResolve_ScrapeFallback(t *testing.T) {
	t.Parallel()

	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><video><source src="https://cdn.example/scraped.mp4"></video></body></html>`)
	}))
	defer page.Close()

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer api.Close()

	r := resolver.New(api.URL)

	got, err := r.Resolve(context.Background(), "abc", page.URL+"/share/abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "https://cdn.example/scraped.mp4" {
		t.Fatalf("scraped URL = %q", got)
	}
}

// TestResolve_TransportError checks connection failures surface, never the
// scrape fallback.
func TestResolve_TransportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // immediately closed: connections refused

	r := resolver.New(srv.URL)

	if _, err := r.Resolve(context.Background(), "abc", "https://host/share/abc"); err == nil {
		t.Fatal("expected transport error, got nil")
	}
}
