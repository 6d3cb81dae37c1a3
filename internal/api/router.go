package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"igdraw/pkg/lottery"
)

// DrawService is the draw orchestration the handlers depend on
type DrawService interface {
	StartDraw(postURL string, mentionThreshold int) (*lottery.DrawOutcome, error)
	CompleteChallenge(token, code, postURL string, mentionThreshold int) (*lottery.DrawOutcome, error)
}

// NewRouter creates the HTTP router with all endpoints
func NewRouter(service DrawService, log zerolog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(log))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "igdraw",
		})
	})

	handler := NewDrawHandler(service, log)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/draws", handler.StartDraw)
		v1.PUT("/draws", handler.CompleteChallenge)
		v1.POST("/draws/manual", handler.ManualDraw)
	}

	return router
}

// requestLogger logs each request with method, path, and status
func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Msg("request handled")
	}
}
