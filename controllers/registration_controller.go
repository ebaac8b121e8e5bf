// Package controllers controllers/registration_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gaittrib/logger"
	"gaittrib/models"
	"gaittrib/services"
)

// RegistrationController serves participant registration and the admin
// review queue.
type RegistrationController struct {
	Registrations services.RegistrationServiceInterface
}

// NewRegistrationController creates a RegistrationController.
func NewRegistrationController(registrations services.RegistrationServiceInterface) *RegistrationController {
	return &RegistrationController{Registrations: registrations}
}

// ------------------ participant actions ------------------

// RegisterForEvent submits or re-submits a registration. Answers arrive
// as the form map answers[<questionID>]=<value>.
func (rc *RegistrationController) RegisterForEvent(c *gin.Context) {
	eventID := c.Param("eventId")
	userID := c.GetString("userID")

	var answers []services.AnswerInput
	for questionID, value := range c.PostFormMap("answers") {
		answers = append(answers, services.AnswerInput{QuestionID: questionID, Answer: value})
	}

	if _, err := rc.Registrations.Register(userID, eventID, answers); err != nil {
		logger.Warn.Printf("RegisterForEvent: user %s event %s: %v", userID, eventID, err)
		c.HTML(statusForError(err), "event.html", gin.H{"Error": userMessage(err)})
		return
	}

	c.Redirect(http.StatusFound, "/my-registrations")
}

// MyRegistrations lists the caller's registrations with payment state.
func (rc *RegistrationController) MyRegistrations(c *gin.Context) {
	registrations, err := rc.Registrations.ListForUser(c.GetString("userID"))
	if err != nil {
		logger.Error.Println("MyRegistrations: list failed:", err)
		c.HTML(http.StatusInternalServerError, "my_registrations.html", gin.H{"Error": "Something went wrong, please try again."})
		return
	}
	c.HTML(http.StatusOK, "my_registrations.html", gin.H{"Registrations": registrations})
}

// ------------------ admin review ------------------

// ListRegistrations renders the full review queue.
func (rc *RegistrationController) ListRegistrations(c *gin.Context) {
	registrations, err := rc.Registrations.ListAll()
	if err != nil {
		logger.Error.Println("ListRegistrations: list failed:", err)
		c.HTML(http.StatusInternalServerError, "admin_registrations.html", gin.H{"Error": "Something went wrong, please try again."})
		return
	}
	c.HTML(http.StatusOK, "admin_registrations.html", gin.H{"Registrations": registrations})
}

// ReviewRegistration applies an admin decision. Approval triggers payment
// order creation inside the service.
func (rc *RegistrationController) ReviewRegistration(c *gin.Context) {
	registrationID := c.Param("registrationId")
	decision := models.RegistrationStatus(c.PostForm("decision"))

	if _, err := rc.Registrations.Decide(registrationID, decision); err != nil {
		logger.Warn.Printf("ReviewRegistration: %s -> %s: %v", registrationID, decision, err)
		c.JSON(statusForError(err), gin.H{"error": userMessage(err)})
		return
	}

	c.Redirect(http.StatusFound, "/admin/registrations")
}
