package web

import (
	"bytes"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-while/go-mortgagesim/internal/assets"
)

const pageTitle = "Simulador de Crédito Hipotecario"

// homePage renders the simulator page document.
// The render is buffered so a template failure never leaks a partial 200.
func (s *WebServer) homePage(c *gin.Context) {
	var buf bytes.Buffer
	if err := s.page.ExecuteTemplate(&buf, assets.PageName, s.getBaseTemplateData(pageTitle)); err != nil {
		log.Printf("[WEB]: Template error: %v", err)
		s.renderError(c, http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
