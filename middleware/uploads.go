package middleware

import "github.com/gin-gonic/gin"

// AttachmentHeaders makes browsers download user uploads instead of rendering them
// on the API origin.
func AttachmentHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Content-Disposition", "attachment")
		c.Next()
	}
}
