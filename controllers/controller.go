package controllers

import (
	"net/http"

	"creava/generation"

	"github.com/gin-gonic/gin"
)

var ai *generation.Service

// SetAIService injects the generation pipeline once at startup.
func SetAIService(service *generation.Service) {
	ai = service
}

// RespondResult serializes a pipeline result into the wire envelope.
// Domain failures are transport successes with success=false; HTTP status
// codes are reserved for authentication and transport problems.
func RespondResult(c *gin.Context, res generation.Result) {
	if res.OK() {
		c.JSON(http.StatusOK, gin.H{"success": true, "content": res.Content})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": false, "message": res.Err.Message})
}

func RespondMessage(c *gin.Context, success bool, message string) {
	c.JSON(http.StatusOK, gin.H{"success": success, "message": message})
}
