// Package middleware description is Middleware that checks if the user is an admin.
// file: middleware/admin_required.go
package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"gaittrib/logger"
)

// AdminRequired blocks non-admin sessions from the admin surface.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		isAdmin, ok := session.Get("isAdmin").(bool)

		if !ok || !isAdmin {
			logger.Warn.Printf("AdminRequired: unauthorized attempt on %s", c.Request.URL.Path)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		c.Next()
	}
}
