package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorHandler recovers from panics and converts unhandled gin errors into a
// JSON error response so clients never see a half-written body.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("panic recovered: %v", r)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			}
		}()

		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			log.Printf("unhandled request error: %v", c.Errors.Last())
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
	}
}
