package ics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/calendar" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", ContentType)
		_, _ = w.Write([]byte(Export(nil)))
	}))
	defer srv.Close()

	f := NewFetcher(srv.Client())

	body, err := f.Fetch(context.Background(), srv.URL+"/calendar")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(body) != Export(nil) {
		t.Errorf("unexpected body %q", body)
	}

	if _, err := f.Fetch(context.Background(), srv.URL+"/missing"); err == nil {
		t.Error("expected error for 404")
	}
	if _, err := f.Fetch(context.Background(), ""); err == nil {
		t.Error("expected error for empty URL")
	}
}

func TestRedactURL(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"https://example.com/path/cal.ics?token=abcd", "https://example.com/...(redacted)"},
		{"http://127.0.0.1:8080?x=1", "http://127.0.0.1:8080/...(redacted)"},
		{"http://host", "http://host/...(redacted)"},
		{"not a url", "ics://...(redacted)"},
	}
	for _, tt := range tests {
		if got := redactURL(tt.in); got != tt.want {
			t.Errorf("redactURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
