// Package middleware provides request filters and security checks for the application.
// File: middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"gaittrib/logger"
)

// -------------- authentication middleware --------------

// AuthRequired ensures the caller is logged in: the session must carry a
// userID set by the login handler. Anonymous requests are redirected to
// the sign-in page.
func AuthRequired(c *gin.Context) {
	session := sessions.Default(c)
	userID, ok := session.Get("userID").(string)

	if !ok || userID == "" {
		logger.Warn.Printf("AuthRequired: no user in session for %s", c.Request.URL.Path)
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
		return
	}

	// downstream handlers read the caller identity from the context
	c.Set("userID", userID)
	c.Next()
}

// APIAuthRequired is the JSON variant used by the payment API: missing
// identity is a 401, never a redirect.
func APIAuthRequired(c *gin.Context) {
	session := sessions.Default(c)
	userID, ok := session.Get("userID").(string)

	if !ok || userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		c.Abort()
		return
	}

	c.Set("userID", userID)
	c.Next()
}
