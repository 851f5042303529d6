package main

import (
	"testing"

	"github.com/go-while/go-mortgagesim/internal/config"
)

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		env     map[string]string
		check   func(t *testing.T, cfg *config.WebConfig)
		wantErr bool
	}{
		{
			name: "defaults",
			check: func(t *testing.T, cfg *config.WebConfig) {
				if cfg.ListenAddr() != "0.0.0.0:8080" {
					t.Errorf("ListenAddr() = %q, want 0.0.0.0:8080", cfg.ListenAddr())
				}
				if cfg.AppVersion != appVersion {
					t.Errorf("AppVersion = %q, want %q", cfg.AppVersion, appVersion)
				}
			},
		},
		{
			name: "env port",
			env:  map[string]string{"PORT": "8000"},
			check: func(t *testing.T, cfg *config.WebConfig) {
				if cfg.ListenPort != 8000 {
					t.Errorf("ListenPort = %d, want 8000", cfg.ListenPort)
				}
			},
		},
		{
			name: "flag beats env",
			args: []string{"-webport", "9000", "-healthformat", "json"},
			env:  map[string]string{"PORT": "8000", "HEALTH_FORMAT": "text"},
			check: func(t *testing.T, cfg *config.WebConfig) {
				if cfg.ListenPort != 9000 {
					t.Errorf("ListenPort = %d, want 9000", cfg.ListenPort)
				}
				if cfg.HealthFormat != config.HealthFormatJSON {
					t.Errorf("HealthFormat = %q, want json", cfg.HealthFormat)
				}
			},
		},
		{
			name: "dirs and debug",
			args: []string{"-imagedir", "/srv/img", "-template", "/srv/index.html", "-debug", "-diagaddr", "127.0.0.1:9100"},
			check: func(t *testing.T, cfg *config.WebConfig) {
				if cfg.ImageDir != "/srv/img" || cfg.TemplatePath != "/srv/index.html" {
					t.Errorf("dirs = %q %q", cfg.ImageDir, cfg.TemplatePath)
				}
				if !cfg.Debug || cfg.DiagAddr != "127.0.0.1:9100" {
					t.Errorf("Debug/DiagAddr = %t/%q", cfg.Debug, cfg.DiagAddr)
				}
			},
		},
		{
			name:    "ssl without cert",
			args:    []string{"-webssl"},
			wantErr: true,
		},
		{
			name:    "invalid env port",
			env:     map[string]string{"PORT": "http"},
			wantErr: true,
		},
		{
			name:    "unknown flag",
			args:    []string{"-nntp"},
			wantErr: true,
		},
		{
			name:    "missing config file",
			args:    []string{"-config", "/nonexistent/web.yaml"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			getenv := func(key string) string { return tt.env[key] }
			cfg, err := loadConfig(tt.args, getenv)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("loadConfig(%v) expected error", tt.args)
				}
				return
			}
			if err != nil {
				t.Fatalf("loadConfig(%v) error = %v", tt.args, err)
			}
			tt.check(t, cfg)
		})
	}
}
