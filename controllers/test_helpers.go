// file: controllers/test_helpers.go
//go:build unit
// +build unit

package controllers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// setupTestRouter creates a Gin engine with session middleware and minimal
// HTML templates so handlers can render without the real template tree.
func setupTestRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	store := cookie.NewStore([]byte("test-secret"))
	router.Use(sessions.Sessions("testsession", store))

	tmpDir := t.TempDir()
	if err := createDummyTemplates(tmpDir); err != nil {
		t.Fatalf("Failed to create dummy templates: %v", err)
	}
	router.LoadHTMLGlob(filepath.Join(tmpDir, "*.html"))
	return router
}

// createDummyTemplates writes one minimal template per page the
// controllers can render.
func createDummyTemplates(dir string) error {
	templates := []string{
		"index.html",
		"event.html",
		"event_editor.html",
		"signup.html",
		"login.html",
		"complete_profile.html",
		"my_registrations.html",
		"admin_registrations.html",
		"admin_overview.html",
		"leaderboard.html",
		"event_leaderboard.html",
	}

	for _, name := range templates {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(`<html><body>{{.}}</body></html>`), 0644); err != nil {
			return err
		}
	}
	return nil
}

// SetSession stores the given key/value pairs through a helper route and
// returns the session cookie for subsequent test requests.
func SetSession(router *gin.Engine, route string, data map[string]interface{}) *http.Cookie {
	router.GET(route, func(c *gin.Context) {
		session := sessions.Default(c)
		for key, value := range data {
			session.Set(key, value)
		}
		if err := session.Save(); err != nil {
			c.String(http.StatusInternalServerError, "session save failed")
			return
		}
		c.String(http.StatusOK, "session set")
	})

	req, _ := http.NewRequest("GET", route, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "testsession" {
			return cookie
		}
	}
	return nil
}

// withUser wires a fake identity into the context the way the auth
// middleware would.
func withUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	}
}
