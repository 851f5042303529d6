package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetPort returns the listening port from the config
func (s *WebServer) GetPort() int {
	return s.Config.ListenPort
}

// getBaseTemplateData creates the TemplateData for the page document
func (s *WebServer) getBaseTemplateData(title string) TemplateData {
	return TemplateData{
		Title:      title,
		AppVersion: s.Config.AppVersion,
	}
}

// notFound is the one 404 answer of the server
func (s *WebServer) notFound(c *gin.Context) {
	c.Data(http.StatusNotFound, "text/plain; charset=utf-8", []byte(notFoundBody))
}

// renderError answers with the plain status text
func (s *WebServer) renderError(c *gin.Context, statusCode int) {
	c.Data(statusCode, "text/plain; charset=utf-8", []byte(http.StatusText(statusCode)))
	c.Abort()
}
