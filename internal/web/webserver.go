// Package web provides the HTTP front door for go-mortgagesim: the
// simulator page, the image assets under the image root and the health
// endpoint.
package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
	"github.com/go-while/go-mortgagesim/internal/assets"
	"github.com/go-while/go-mortgagesim/internal/config"
	"github.com/go-while/go-mortgagesim/internal/diag"
)

// notFoundBody is shared by unknown routes and unservable images so the two
// cannot be told apart.
const notFoundBody = "404 page not found"

// WebServer represents the web server
type WebServer struct {
	Router  *gin.Engine
	Config  *config.WebConfig
	Metrics *diag.Metrics // nil when diagnostics are off

	page       *template.Template
	httpServer *http.Server
}

// TemplateData represents the data handed to the page document.
// It only carries static values so repeated renders are identical.
type TemplateData struct {
	Title      string
	AppVersion string
}

// NewServer creates a new web server instance. It fails when the page
// document cannot be loaded, since every request to / would fail otherwise.
func NewServer(webconfig *config.WebConfig, metrics *diag.Metrics) (*WebServer, error) {
	if err := webconfig.Validate(); err != nil {
		return nil, err
	}

	page, err := assets.LoadPage(webconfig.TemplatePath, webconfig.TemplateCharset)
	if err != nil {
		return nil, err
	}

	if info, err := os.Stat(webconfig.ImageDir); err != nil || !info.IsDir() {
		log.Printf("[WEB]: Warning: image directory %s is not available, image requests will return 404", webconfig.ImageDir)
	}

	if webconfig.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Configure Gin to trust reverse proxy headers
	if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1", "10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"}); err != nil {
		return nil, fmt.Errorf("set trusted proxies: %w", err)
	}

	server := &WebServer{
		Router:  router,
		Config:  webconfig,
		Metrics: metrics,
		page:    page,
		httpServer: &http.Server{
			Addr:              webconfig.ListenAddr(),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}

	// Metrics go first so requests the later middleware aborts are counted.
	if metrics != nil {
		router.Use(server.MetricsMiddleware())
	}
	router.Use(gin.Recovery())
	router.Use(server.ApacheLogFormat())
	router.Use(secure.New(server.secureConfig()))

	server.setupRoutes()
	return server, nil
}

// secureConfig configures security headers based on SSL setup
func (s *WebServer) secureConfig() secure.Config {
	secureConfig := secure.Config{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}

	// Only add SSL-specific headers if SSL is enabled on the application itself
	// (not when running behind a reverse proxy that terminates TLS)
	if s.Config.SSL {
		secureConfig.SSLRedirect = true
		secureConfig.STSSeconds = 31536000
		secureConfig.STSIncludeSubdomains = true
	}
	return secureConfig
}

// setupRoutes configures all HTTP routes
func (s *WebServer) setupRoutes() {
	methods := []string{http.MethodGet, http.MethodHead}

	s.Router.Match(methods, "/", s.homePage)
	s.Router.Match(methods, "/static/img/*filepath", s.imagePage)
	s.Router.Match(methods, "/health", s.healthCheck)

	s.Router.NoRoute(s.notFound)
}

// Start starts the web server with SSL support if configured.
// It returns nil after Shutdown.
func (s *WebServer) Start() error {
	addr := s.httpServer.Addr
	var err error
	if s.Config.SSL {
		log.Printf("[WEB]: Starting HTTPS server on %s", addr)
		err = s.httpServer.ListenAndServeTLS(s.Config.CertFile, s.Config.KeyFile)
	} else {
		log.Printf("[WEB]: Starting HTTP server on %s", addr)
		err = s.httpServer.ListenAndServe()
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown drains open connections until ctx expires
func (s *WebServer) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *WebServer) ApacheLogFormat() gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf(`%s - - [%s] "%s %s %s" %d %d "%s" "%s"`+"\n",
			param.ClientIP,
			param.TimeStamp.Format("02/Jan/2006:15:04:05 -0700"),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.BodySize,
			param.Request.Referer(),
			param.Request.UserAgent(),
		)
	})
}

// MetricsMiddleware records every request, including unmatched ones
func (s *WebServer) MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.Metrics.Observe(c.FullPath(), c.Request.Method, c.Writer.Status(), time.Since(start))
	}
}
