// Package controllers controllers/event_controller.go
package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"gaittrib/logger"
	"gaittrib/models"
	"gaittrib/services"
)

// EventController serves event pages and the admin event editor.
type EventController struct {
	Events         services.EventServiceInterface
	Uploads        services.UploadServiceInterface
	ApplicationURL string
}

// NewEventController creates an EventController.
func NewEventController(events services.EventServiceInterface, uploads services.UploadServiceInterface, applicationURL string) *EventController {
	return &EventController{Events: events, Uploads: uploads, ApplicationURL: applicationURL}
}

// ------------------ public pages ------------------

// Index lists every event on the home page.
func (ec *EventController) Index(c *gin.Context) {
	events, err := ec.Events.List()
	if err != nil {
		logger.Error.Println("Index: listing events failed:", err)
		c.HTML(http.StatusInternalServerError, "index.html", gin.H{"Error": "Something went wrong, please try again."})
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{"Events": events})
}

// ShowEvent renders one event with its registration form questions and
// remaining capacity.
func (ec *EventController) ShowEvent(c *gin.Context) {
	eventID := c.Param("eventId")

	event, err := ec.Events.Get(eventID)
	if err != nil {
		c.HTML(statusForError(err), "index.html", gin.H{"Error": userMessage(err)})
		return
	}

	count, err := ec.Events.RegistrationCount(eventID)
	if err != nil {
		logger.Error.Println("ShowEvent: registration count failed:", err)
		count = int64(event.Capacity)
	}

	c.HTML(http.StatusOK, "event.html", gin.H{
		"Event":     event,
		"SpotsLeft": int64(event.Capacity) - count,
	})
}

// EventQR serves a PNG QR code pointing at the event page, for sharing.
func (ec *EventController) EventQR(c *gin.Context) {
	eventID := c.Param("eventId")

	if _, err := ec.Events.Get(eventID); err != nil {
		c.JSON(statusForError(err), gin.H{"error": userMessage(err)})
		return
	}

	png, err := services.GenerateEventQR(ec.ApplicationURL, eventID, 256)
	if err != nil {
		logger.Error.Println("EventQR: encode failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate QR code"})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// ------------------ admin editor ------------------

// questionPayload mirrors the JSON the event editor posts in the
// `questions` form field.
type questionPayload struct {
	Label    string   `json:"label"`
	Kind     string   `json:"kind"`
	Required bool     `json:"required"`
	Options  []string `json:"options"`
}

func parseQuestions(raw string) ([]services.QuestionInput, error) {
	if raw == "" {
		return nil, nil
	}

	var payload []questionPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, services.NewValidationError("invalid questions payload")
	}

	questions := make([]services.QuestionInput, 0, len(payload))
	for _, q := range payload {
		options := make([]string, 0, len(q.Options))
		for _, option := range q.Options {
			if option != "" {
				options = append(options, option)
			}
		}
		questions = append(questions, services.QuestionInput{
			Label:    q.Label,
			Kind:     models.QuestionKind(q.Kind),
			Required: q.Required,
			Options:  options,
		})
	}
	return questions, nil
}

// eventInputFromForm collects the editor form into an EventInput,
// uploading the image when one was attached.
func (ec *EventController) eventInputFromForm(c *gin.Context) (services.EventInput, error) {
	var input services.EventInput

	questions, err := parseQuestions(c.PostForm("questions"))
	if err != nil {
		return input, err
	}

	date, err := time.Parse("2006-01-02T15:04", c.PostForm("date"))
	if err != nil {
		return input, services.NewValidationError("invalid event date")
	}

	priceRupees, err := strconv.ParseInt(c.PostForm("price"), 10, 64)
	if err != nil {
		return input, services.NewValidationError("invalid price")
	}
	capacity, err := strconv.Atoi(c.PostForm("capacity"))
	if err != nil {
		return input, services.NewValidationError("invalid capacity")
	}

	imageURL := ""
	if file, err := c.FormFile("image"); err == nil {
		imageURL, err = ec.Uploads.UploadEventImage(file)
		if err != nil {
			return input, err
		}
	}

	input = services.EventInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Type:        models.EventType(c.PostForm("type")),
		Date:        date,
		Location:    c.PostForm("location"),
		PriceRupees: priceRupees,
		Capacity:    capacity,
		ImageURL:    imageURL,
		Questions:   questions,
	}
	return input, nil
}

// ShowCreateEvent renders the admin event editor.
func (ec *EventController) ShowCreateEvent(c *gin.Context) {
	c.HTML(http.StatusOK, "event_editor.html", gin.H{})
}

// CreateEvent persists a new event from the editor form.
func (ec *EventController) CreateEvent(c *gin.Context) {
	input, err := ec.eventInputFromForm(c)
	if err != nil {
		c.HTML(statusForError(err), "event_editor.html", gin.H{"Error": userMessage(err)})
		return
	}

	if _, err := ec.Events.Create(c.GetString("userID"), input); err != nil {
		c.HTML(statusForError(err), "event_editor.html", gin.H{"Error": userMessage(err)})
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// UpdateEvent edits an existing event, replacing its question set.
func (ec *EventController) UpdateEvent(c *gin.Context) {
	input, err := ec.eventInputFromForm(c)
	if err != nil {
		c.HTML(statusForError(err), "event_editor.html", gin.H{"Error": userMessage(err)})
		return
	}

	eventID := c.Param("eventId")
	if _, err := ec.Events.Update(eventID, input); err != nil {
		c.HTML(statusForError(err), "event_editor.html", gin.H{"Error": userMessage(err)})
		return
	}

	c.Redirect(http.StatusFound, "/events/"+eventID)
}
