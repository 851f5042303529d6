// Container health probe: exits 0 when the local web server answers /health
package main

import (
	"crypto/tls"
	"net/http"
	"os"
	"time"
)

const (
	defaultPort   = "8080"
	defaultScheme = "http"
)

// probe reports whether GET url answers 200 within timeout.
// The certificate is not verified: the probe dials localhost, which the
// served certificate rarely names.
func probe(url string, timeout time.Duration) bool {
	client := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
	}
	resp, err := client.Get(url)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// healthURL builds the probe target. scheme is "https" when the server
// runs with ssl enabled; anything else probes plain http.
func healthURL(scheme, port string) string {
	if scheme != "https" {
		scheme = defaultScheme
	}
	if port == "" {
		port = defaultPort
	}
	return scheme + "://localhost:" + port + "/health"
}

func main() {
	if !probe(healthURL(os.Getenv("HEALTHCHECK_SCHEME"), os.Getenv("PORT")), 2*time.Second) {
		os.Exit(1)
	}
	os.Exit(0)
}
