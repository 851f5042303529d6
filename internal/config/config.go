// Package config provides configuration management for go-mortgagesim.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var AppVersion = "-unset-" // will be set at build time

const (
	// Web server defaults
	DefaultListenHost      = "0.0.0.0"
	DefaultListenPort      = 8080
	DefaultTemplatePath    = "web/templates/index.html"
	DefaultTemplateCharset = "utf-8"
	DefaultImageDir        = "web/static/img"
	DefaultSessionSecret   = "default_secret_key"
	DefaultPprofAddr       = "127.0.0.1:6060"

	// Health response shapes
	HealthFormatText = "text"
	HealthFormatJSON = "json"
)

// WebConfig holds web interface configuration
type WebConfig struct {
	ListenHost      string `yaml:"listen_host"`
	ListenPort      int    `yaml:"listen_port"`
	SSL             bool   `yaml:"ssl"`
	CertFile        string `yaml:"cert_file,omitempty"`
	KeyFile         string `yaml:"key_file,omitempty"`
	TemplatePath    string `yaml:"template_path"`
	TemplateCharset string `yaml:"template_charset"`
	ImageDir        string `yaml:"image_dir"`
	// HealthFormat is "text" or "json"
	HealthFormat    string `yaml:"health_format"`
	SessionSecret   string `yaml:"session_secret"`
	Debug           bool   `yaml:"debug"`
	// DiagAddr is the metrics listener address, empty disables it.
	DiagAddr        string `yaml:"diag_addr,omitempty"`
	// PprofAddr is only used together with Debug.
	PprofAddr       string `yaml:"pprof_addr,omitempty"`
	AppVersion      string `yaml:"-"`
}

// NewDefaultConfig returns a configuration with sensible defaults
func NewDefaultConfig() *WebConfig {
	return &WebConfig{
		ListenHost:      DefaultListenHost,
		ListenPort:      DefaultListenPort,
		TemplatePath:    DefaultTemplatePath,
		TemplateCharset: DefaultTemplateCharset,
		ImageDir:        DefaultImageDir,
		HealthFormat:    HealthFormatText,
		SessionSecret:   DefaultSessionSecret,
		PprofAddr:       DefaultPprofAddr,
		AppVersion:      AppVersion,
	}
}

// LoadFile overlays the YAML file at path onto cfg.
// Keys missing from the file keep their current values.
func (cfg *WebConfig) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// LoadEnv overlays environment variables onto cfg.
// getenv is usually os.Getenv; tests pass their own lookup.
func (cfg *WebConfig) LoadEnv(getenv func(string) string) error {
	if v := getenv("PORT"); v != "" {
		port, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.ListenPort = port
	}
	if v := getenv("DEBUG"); v != "" {
		debug, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid DEBUG %q: %w", v, err)
		}
		cfg.Debug = debug
	}
	strVars := []struct {
		key string
		dst *string
	}{
		{"LISTEN_HOST", &cfg.ListenHost},
		{"SESSION_SECRET", &cfg.SessionSecret},
		{"HEALTH_FORMAT", &cfg.HealthFormat},
		{"IMAGE_DIR", &cfg.ImageDir},
		{"TEMPLATE_PATH", &cfg.TemplatePath},
		{"TEMPLATE_CHARSET", &cfg.TemplateCharset},
		{"DIAG_ADDR", &cfg.DiagAddr},
		{"PPROF_ADDR", &cfg.PprofAddr},
	}
	for _, sv := range strVars {
		if v := getenv(sv.key); v != "" {
			*sv.dst = v
		}
	}
	return nil
}

// Validate checks the configuration for values the server cannot run with
func (cfg *WebConfig) Validate() error {
	if cfg.ListenPort < 1 || cfg.ListenPort > 65535 {
		return fmt.Errorf("invalid port number: %d (must be between 1 and 65535)", cfg.ListenPort)
	}
	switch cfg.HealthFormat {
	case HealthFormatText, HealthFormatJSON:
	default:
		return fmt.Errorf("invalid health format %q (want %q or %q)", cfg.HealthFormat, HealthFormatText, HealthFormatJSON)
	}
	if cfg.SSL && (cfg.CertFile == "" || cfg.KeyFile == "") {
		return errors.New("SSL enabled but cert_file or key_file not specified in config")
	}
	if cfg.TemplatePath == "" {
		return errors.New("template_path must not be empty")
	}
	if cfg.ImageDir == "" {
		return errors.New("image_dir must not be empty")
	}
	if cfg.SessionSecret == DefaultSessionSecret && cfg.Debug {
		log.Printf("[CONFIG]: session_secret is the built-in placeholder")
	}
	return nil
}

// ListenAddr returns host:port for the web listener
func (cfg *WebConfig) ListenAddr() string {
	return cfg.ListenHost + ":" + strconv.Itoa(cfg.ListenPort)
}
