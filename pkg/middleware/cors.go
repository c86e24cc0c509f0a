package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/samber/lo"
)

var defaultCorsOptions = cors.Options{
	AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
	AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Admin", "X-Trace-ID"},
	ExposedHeaders:   []string{"X-Trace-ID"},
	AllowCredentials: true,
}

// CorsMiddleware answers preflight requests itself and decorates every
// other response. "*" in origins allows any origin.
func CorsMiddleware(origins []string) gin.HandlerFunc {
	opts := defaultCorsOptions
	if len(origins) == 0 || lo.Contains(origins, "*") {
		opts.AllowOriginFunc = func(string) bool { return true }
	} else {
		opts.AllowedOrigins = origins
	}

	handler := cors.New(opts)

	return func(c *gin.Context) {
		handler.HandlerFunc(c.Writer, c.Request)

		if c.Request.Method == http.MethodOptions && c.GetHeader("Access-Control-Request-Method") != "" {
			c.Abort()
			return
		}
		c.Next()
	}
}
