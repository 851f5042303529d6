package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHealthURL(t *testing.T) {
	tests := []struct {
		scheme, port string
		want         string
	}{
		{"", "", "http://localhost:8080/health"},
		{"", "8000", "http://localhost:8000/health"},
		{"https", "8443", "https://localhost:8443/health"},
		{"gopher", "8000", "http://localhost:8000/health"},
	}
	for _, tt := range tests {
		if got := healthURL(tt.scheme, tt.port); got != tt.want {
			t.Errorf("healthURL(%q, %q) = %q, want %q", tt.scheme, tt.port, got, tt.want)
		}
	}
}

func TestProbe(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   bool
	}{
		{"ok", http.StatusOK, true},
		{"unavailable", http.StatusServiceUnavailable, false},
		{"not found", http.StatusNotFound, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()
			if got := probe(srv.URL+"/health", time.Second); got != tt.want {
				t.Errorf("probe() = %t, want %t", got, tt.want)
			}
		})
	}

	t.Run("tls with self-signed certificate", func(t *testing.T) {
		srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()
		if !probe(srv.URL+"/health", time.Second) {
			t.Error("probe() of a TLS server = false, want true")
		}
	})

	t.Run("connection refused", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL + "/health"
		srv.Close()
		if probe(url, time.Second) {
			t.Error("probe() of a closed server = true, want false")
		}
	})
}
