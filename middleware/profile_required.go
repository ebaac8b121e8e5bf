// Package middleware file: middleware/profile_required.go
package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// ProfileRequired gates registration behind a completed profile. Users
// whose demographics are still missing get sent to the completion form,
// with the original destination preserved in the `next` query parameter.
func ProfileRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		complete, ok := session.Get("profileComplete").(bool)

		if !ok || !complete {
			next := url.QueryEscape(c.Request.URL.Path)
			c.Redirect(http.StatusFound, "/complete-profile?next="+next)
			c.Abort()
			return
		}

		c.Next()
	}
}
