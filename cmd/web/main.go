// Web server for the go-mortgagesim simulator page
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	prof "github.com/go-while/go-cpu-mem-profiler"
	"github.com/go-while/go-mortgagesim/internal/config"
	"github.com/go-while/go-mortgagesim/internal/diag"
	"github.com/go-while/go-mortgagesim/internal/web"
)

var appVersion = "-unset-"

// Prof is the debug profiler, nil unless -debug is set
var Prof *prof.Profiler

const shutdownTimeout = 15 * time.Second

// cliFlags holds the command-line overrides; zero values mean "not set"
type cliFlags struct {
	configFile   string
	webport      int
	webhost      string
	webssl       bool
	webcertFile  string
	webkeyFile   string
	templatePath string
	imageDir     string
	healthFormat string
	diagAddr     string
	debug        bool
}

// loadConfig layers defaults, the optional YAML file, the environment and
// the command-line flags, in that order.
func loadConfig(args []string, getenv func(string) string) (*config.WebConfig, error) {
	var f cliFlags
	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	fs.StringVar(&f.configFile, "config", "", "YAML config file (optional)")
	fs.IntVar(&f.webport, "webport", 0, "Web server port (default: $PORT or 8080)")
	fs.StringVar(&f.webhost, "webhost", "", "Web server bind address (default: 0.0.0.0)")
	fs.BoolVar(&f.webssl, "webssl", false, "Enable SSL")
	fs.StringVar(&f.webcertFile, "websslcert", "", "SSL certificate file (/path/to/fullchain.pem)")
	fs.StringVar(&f.webkeyFile, "websslkey", "", "SSL key file (/path/to/privkey.pem)")
	fs.StringVar(&f.templatePath, "template", "", "Page document (default: web/templates/index.html)")
	fs.StringVar(&f.imageDir, "imagedir", "", "Image root directory (default: web/static/img)")
	fs.StringVar(&f.healthFormat, "healthformat", "", "Health response shape: text or json (default: text)")
	fs.StringVar(&f.diagAddr, "diagaddr", "", "Metrics listener address, e.g. 127.0.0.1:9100 (default: off)")
	fs.BoolVar(&f.debug, "debug", false, "Enable verbose diagnostics")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	webConfig := config.NewDefaultConfig()
	webConfig.AppVersion = appVersion

	if f.configFile != "" {
		if err := webConfig.LoadFile(f.configFile); err != nil {
			return nil, err
		}
		log.Printf("[WEB]: Loaded config file %s", f.configFile)
	}
	if err := webConfig.LoadEnv(getenv); err != nil {
		return nil, err
	}

	// Override config with command-line flags if provided
	if f.webport > 0 {
		webConfig.ListenPort = f.webport
		log.Printf("[WEB]: Overriding listen port with command-line flag: %d", webConfig.ListenPort)
	}
	if f.webhost != "" {
		webConfig.ListenHost = f.webhost
	}
	if f.webssl {
		webConfig.SSL = true
		log.Printf("[WEB]: SSL enabled via command-line flag")
	}
	if f.webcertFile != "" {
		webConfig.CertFile = f.webcertFile
	}
	if f.webkeyFile != "" {
		webConfig.KeyFile = f.webkeyFile
	}
	if f.templatePath != "" {
		webConfig.TemplatePath = f.templatePath
	}
	if f.imageDir != "" {
		webConfig.ImageDir = f.imageDir
	}
	if f.healthFormat != "" {
		webConfig.HealthFormat = f.healthFormat
	}
	if f.diagAddr != "" {
		webConfig.DiagAddr = f.diagAddr
	}
	if f.debug {
		webConfig.Debug = true
	}

	if err := webConfig.Validate(); err != nil {
		return nil, err
	}
	return webConfig, nil
}

func main() {
	config.AppVersion = appVersion
	log.Printf("Starting go-mortgagesim web server (version: %s)", appVersion)

	webConfig, err := loadConfig(os.Args[1:], os.Getenv)
	if err != nil {
		log.Fatalf("[WEB]: Invalid configuration: %v", err)
	}
	if webConfig.Debug {
		log.Printf("[WEB]: Using WEB configuration: %#v", *webConfig)
	}

	var metrics *diag.Metrics
	var diagServer *diag.Server
	diagErrChan := make(chan error, 1)
	if webConfig.DiagAddr != "" {
		metrics = diag.NewMetrics()
		diagServer = diag.NewServer(webConfig.DiagAddr, metrics)
		go func() {
			if err := diagServer.Start(); err != nil {
				diagErrChan <- err
			}
		}()
	}
	if webConfig.Debug {
		Prof, err = diag.StartProfiler(webConfig.PprofAddr)
		if err != nil {
			log.Printf("[DIAG]: Profiler not started: %v", err)
		}
	}

	// A missing page document is fatal: every request to / would fail.
	server, err := web.NewServer(webConfig, metrics)
	if err != nil {
		log.Fatalf("[WEB]: Failed to create web server: %v", err)
	}

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	webServerErrChan := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil {
			webServerErrChan <- err
		}
	}()

	log.Printf("[WEB]: Server listening on port %d. Press Ctrl+C to gracefully shutdown...", server.GetPort())

	select {
	case <-sigChan:
		log.Printf("[WEB]: Received shutdown signal, initiating graceful shutdown...")
	case err := <-webServerErrChan:
		log.Fatalf("[WEB]: Failed to start web server: %v", err)
	case err := <-diagErrChan:
		log.Fatalf("[DIAG]: Failed to start metrics server: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("[WEB]: Error during web server shutdown: %v", err)
	}
	if diagServer != nil {
		if err := diagServer.Shutdown(ctx); err != nil {
			log.Printf("[DIAG]: Error during metrics server shutdown: %v", err)
		}
	}

	log.Printf("[WEB]: Graceful shutdown completed")
}
