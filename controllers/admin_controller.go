// Package controllers controllers/admin_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gaittrib/logger"
	"gaittrib/services"
)

// AdminController serves the admin overview dashboard.
type AdminController struct {
	Leaderboard services.LeaderboardServiceInterface
}

// NewAdminController creates an AdminController.
func NewAdminController(leaderboard services.LeaderboardServiceInterface) *AdminController {
	return &AdminController{Leaderboard: leaderboard}
}

// Overview renders the aggregate dashboard: event and registration counts,
// paid revenue, top player, and recent events with their registrations.
func (ac *AdminController) Overview(c *gin.Context) {
	stats, err := ac.Leaderboard.Overview()
	if err != nil {
		logger.Error.Println("Overview: aggregation failed:", err)
		c.HTML(http.StatusInternalServerError, "admin_overview.html", gin.H{"Error": "Something went wrong, please try again."})
		return
	}
	c.HTML(http.StatusOK, "admin_overview.html", gin.H{"Stats": stats})
}

// Health is the load balancer health check.
func Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}
