package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const Greeting = "Hello from Kanji App Backend!"

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler { return &HealthHandler{} }

// GET /
func (h *HealthHandler) Root(c *gin.Context) {
	c.String(http.StatusOK, Greeting)
}

// GET /healthcheck reports process liveness only; it does not touch the database.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
