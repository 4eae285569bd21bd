package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// getHome reports that the simulator is up and where its API lives.
func getHome(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "Pix simulator API", "basePath": apiBasePath})
}

// getHealth is the liveness probe.
func getHealth(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// registerHomeRoutes registers the routes that live outside the API group
func registerHomeRoutes(r *gin.Engine) {
	r.GET("/", getHome)
	r.GET("/health", getHealth)
}
