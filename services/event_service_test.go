// file: services/event_service_test.go
package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gaittrib/models"
	"gaittrib/services"
)

func validEventInput() services.EventInput {
	return services.EventInput{
		Title:       "Sunday 5K Run",
		Description: "Weekly community endurance run.",
		Type:        models.EventFitness,
		Date:        time.Now().Add(72 * time.Hour),
		Location:    "City Park",
		PriceRupees: 250,
		Capacity:    50,
	}
}

func TestCreateEvent_WithQuestions(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewEventService(db)
	admin := seedUser(t, db, "admin@gaittrib.test")

	input := validEventInput()
	input.Questions = []services.QuestionInput{
		{Label: "T-shirt size", Kind: models.QuestionRadio, Required: true, Options: []string{"S", "M", "L"}},
		{Label: "Dietary notes", Kind: models.QuestionText},
	}

	event, err := svc.Create(admin.ID, input)
	require.NoError(t, err)

	loaded, err := svc.Get(event.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Questions, 2)
	assert.Equal(t, "T-shirt size", loaded.Questions[0].Label)
	assert.Equal(t, 0, loaded.Questions[0].Position)
	assert.Equal(t, []string{"S", "M", "L"}, loaded.Questions[0].Options)
	assert.Equal(t, 1, loaded.Questions[1].Position)
}

func TestCreateEvent_ChoiceQuestionNeedsOptions(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewEventService(db)
	admin := seedUser(t, db, "admin@gaittrib.test")

	input := validEventInput()
	input.Questions = []services.QuestionInput{
		{Label: "T-shirt size", Kind: models.QuestionRadio, Required: true},
	}

	_, err := svc.Create(admin.ID, input)
	assert.True(t, services.IsValidation(err))
}

func TestCreateEvent_RejectsBadInput(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewEventService(db)
	admin := seedUser(t, db, "admin@gaittrib.test")

	cases := []struct {
		name   string
		mutate func(*services.EventInput)
	}{
		{"short title", func(in *services.EventInput) { in.Title = "ab" }},
		{"short description", func(in *services.EventInput) { in.Description = "too short" }},
		{"bad type", func(in *services.EventInput) { in.Type = "PARTY" }},
		{"short location", func(in *services.EventInput) { in.Location = "at" }},
		{"negative price", func(in *services.EventInput) { in.PriceRupees = -1 }},
		{"zero capacity", func(in *services.EventInput) { in.Capacity = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validEventInput()
			tc.mutate(&input)
			_, err := svc.Create(admin.ID, input)
			assert.True(t, services.IsValidation(err))
		})
	}
}

func TestUpdateEvent_ReplacesQuestionsAndClearsAnswers(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewEventService(db)
	admin := seedUser(t, db, "admin@gaittrib.test")

	input := validEventInput()
	input.Questions = []services.QuestionInput{
		{Label: "Old question", Kind: models.QuestionText, Required: true},
	}
	event, err := svc.Create(admin.ID, input)
	require.NoError(t, err)

	loaded, err := svc.Get(event.ID)
	require.NoError(t, err)
	oldQuestion := loaded.Questions[0]

	// an answer referencing the soon-to-be-deleted question
	runner := seedUser(t, db, "runner@gaittrib.test")
	registration := seedRegistration(t, db, runner.ID, event.ID, models.RegistrationPending)
	require.NoError(t, db.Create(&models.RegistrationAnswer{
		RegistrationID: registration.ID,
		QuestionID:     oldQuestion.ID,
		Answer:         "stale",
	}).Error)

	update := validEventInput()
	update.Title = "Sunday 10K Run"
	update.Questions = []services.QuestionInput{
		{Label: "New question", Kind: models.QuestionText},
	}
	updated, err := svc.Update(event.ID, update)
	require.NoError(t, err)
	assert.Equal(t, "Sunday 10K Run", updated.Title)
	require.Len(t, updated.Questions, 1)
	assert.Equal(t, "New question", updated.Questions[0].Label)

	var staleAnswers int64
	require.NoError(t, db.Model(&models.RegistrationAnswer{}).
		Where("question_id = ?", oldQuestion.ID).
		Count(&staleAnswers).Error)
	assert.EqualValues(t, 0, staleAnswers, "answers to removed questions must not survive")
}

func TestUpdateEvent_KeepsImageWhenNoneUploaded(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewEventService(db)
	admin := seedUser(t, db, "admin@gaittrib.test")

	input := validEventInput()
	input.ImageURL = "/static/uploads/events/banner.png"
	event, err := svc.Create(admin.ID, input)
	require.NoError(t, err)

	update := validEventInput()
	updated, err := svc.Update(event.ID, update)
	require.NoError(t, err)
	assert.Equal(t, "/static/uploads/events/banner.png", updated.ImageURL)
}

func TestUpdateEvent_Unknown(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewEventService(db)

	_, err := svc.Update("missing", validEventInput())
	assert.ErrorIs(t, err, services.ErrNotFound)
}
