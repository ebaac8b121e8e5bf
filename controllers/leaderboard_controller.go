// Package controllers controllers/leaderboard_controller.go
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gaittrib/logger"
	"gaittrib/services"
)

// LeaderboardController serves the ranking pages and the admin result form.
type LeaderboardController struct {
	Leaderboard services.LeaderboardServiceInterface
}

// NewLeaderboardController creates a LeaderboardController.
func NewLeaderboardController(leaderboard services.LeaderboardServiceInterface) *LeaderboardController {
	return &LeaderboardController{Leaderboard: leaderboard}
}

// GlobalLeaderboard renders the cross-event ranking plus the
// most-consistent attendance list.
func (lc *LeaderboardController) GlobalLeaderboard(c *gin.Context) {
	entries, err := lc.Leaderboard.GlobalRanking(30)
	if err != nil {
		logger.Error.Println("GlobalLeaderboard: ranking failed:", err)
		c.HTML(http.StatusInternalServerError, "leaderboard.html", gin.H{"Error": "Something went wrong, please try again."})
		return
	}

	consistent, err := lc.Leaderboard.MostConsistentUsers(5)
	if err != nil {
		logger.Error.Println("GlobalLeaderboard: consistency failed:", err)
		c.HTML(http.StatusInternalServerError, "leaderboard.html", gin.H{"Error": "Something went wrong, please try again."})
		return
	}

	c.HTML(http.StatusOK, "leaderboard.html", gin.H{
		"Entries":        entries,
		"MostConsistent": consistent,
	})
}

// EventLeaderboard renders one event's ranking by admin-entered rank.
func (lc *LeaderboardController) EventLeaderboard(c *gin.Context) {
	eventID := c.Param("eventId")

	entries, err := lc.Leaderboard.EventRanking(eventID)
	if err != nil {
		logger.Error.Println("EventLeaderboard: ranking failed:", err)
		c.HTML(http.StatusInternalServerError, "event_leaderboard.html", gin.H{"Error": "Something went wrong, please try again."})
		return
	}

	c.HTML(http.StatusOK, "event_leaderboard.html", gin.H{
		"EventID": eventID,
		"Entries": entries,
	})
}

// AddResult records an admin-entered (score, rank) result, overwriting any
// previous result for the same (event, user) pair.
func (lc *LeaderboardController) AddResult(c *gin.Context) {
	score, err := strconv.Atoi(c.PostForm("score"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid score"})
		return
	}
	rank, err := strconv.Atoi(c.PostForm("rank"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rank"})
		return
	}

	eventID := c.PostForm("eventId")
	userID := c.PostForm("userId")
	if eventID == "" || userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "eventId and userId are required"})
		return
	}

	if _, err := lc.Leaderboard.UpsertResult(eventID, userID, score, rank); err != nil {
		c.JSON(statusForError(err), gin.H{"error": userMessage(err)})
		return
	}

	c.Redirect(http.StatusFound, "/events/"+eventID+"/leaderboard")
}
