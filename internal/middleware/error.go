package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/pageza/dietplan/backend/internal/types"
)

// Recovery turns a panic anywhere in the handler chain into a 500 JSON error
// envelope carrying the panic message.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				var errMsg string
				switch v := rec.(type) {
				case error:
					errMsg = v.Error()
				default:
					errMsg = fmt.Sprintf("%v", v)
				}

				panicRecoveries.Inc()
				log.WithFields(log.Fields{
					"request_id": c.GetString("request_id"),
					"method":     c.Request.Method,
					"path":       c.Request.URL.Path,
					"error":      errMsg,
					"event":      "panic",
				}).Error("Panic recovered")

				c.AbortWithStatusJSON(http.StatusInternalServerError, types.ErrorResponse{
					Error: "An error occurred: " + errMsg,
				})
			}
		}()

		c.Next()
	}
}
