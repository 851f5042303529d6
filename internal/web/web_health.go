package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-while/go-mortgagesim/internal/config"
)

const (
	healthText    = "El simulador de crédito hipotecario está en línea"
	healthMessage = "El Simulador de Crédito Hipotecario está funcionando correctamente"
)

// HealthResponse is the structured liveness answer
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// healthCheck answers 200 for as long as the process serves requests.
// There are no dependency checks.
func (s *WebServer) healthCheck(c *gin.Context) {
	if s.Config.HealthFormat == config.HealthFormatJSON {
		c.JSON(http.StatusOK, HealthResponse{Status: "ok", Message: healthMessage})
		return
	}
	c.String(http.StatusOK, healthText)
}
