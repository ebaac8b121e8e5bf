// file: controllers/auth_controller_test.go
//go:build unit
// +build unit

package controllers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gaittrib/models"
	"gaittrib/services"
)

func postLoginForm(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, postForm(path, form))
	return w
}

// TestPerformLogin_AdminRedirectsToOverview verifies that an admin login
// lands on the admin dashboard rather than the home page.
func TestPerformLogin_AdminRedirectsToOverview(t *testing.T) {
	users := new(services.MockUserService)
	users.On("Login", "boss@example.com", "sekret-pass").Return(&models.User{
		ID:               "u-1",
		Email:            "boss@example.com",
		Role:             models.RoleAdmin,
		ProfileCompleted: true,
	}, nil)

	router := setupTestRouter(t)
	controller := NewAuthController(users)
	router.POST("/login", controller.PerformLogin)

	form := url.Values{}
	form.Set("email", "boss@example.com")
	form.Set("password", "sekret-pass")
	w := postLoginForm(router, "/login", form)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/overview", w.Header().Get("Location"))
	users.AssertExpectations(t)
}

// TestPerformLogin_RegularUserRedirectsHome verifies the non-admin landing
// page and that the session cookie is issued.
func TestPerformLogin_RegularUserRedirectsHome(t *testing.T) {
	users := new(services.MockUserService)
	users.On("Login", "runner@example.com", "sekret-pass").Return(&models.User{
		ID:               "u-2",
		Email:            "runner@example.com",
		Role:             models.RoleUser,
		ProfileCompleted: true,
	}, nil)

	router := setupTestRouter(t)
	controller := NewAuthController(users)
	router.POST("/login", controller.PerformLogin)

	form := url.Values{}
	form.Set("email", "runner@example.com")
	form.Set("password", "sekret-pass")
	w := postLoginForm(router, "/login", form)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.NotEmpty(t, w.Result().Cookies())
}

// TestPerformLogin_BadCredentials verifies the 401 path renders the login
// page again instead of redirecting.
func TestPerformLogin_BadCredentials(t *testing.T) {
	users := new(services.MockUserService)
	users.On("Login", "runner@example.com", "wrong").Return(nil, services.ErrUnauthorized)

	router := setupTestRouter(t)
	controller := NewAuthController(users)
	router.POST("/login", controller.PerformLogin)

	form := url.Values{}
	form.Set("email", "runner@example.com")
	form.Set("password", "wrong")
	w := postLoginForm(router, "/login", form)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// TestPerformLogin_MissingFields verifies empty credentials never reach the
// user service.
func TestPerformLogin_MissingFields(t *testing.T) {
	users := new(services.MockUserService)

	router := setupTestRouter(t)
	controller := NewAuthController(users)
	router.POST("/login", controller.PerformLogin)

	w := postLoginForm(router, "/login", url.Values{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	users.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
}

// TestPerformSignup_CreatesAccountAndLogsIn verifies the signup form fields
// are passed through and the new user is redirected home.
func TestPerformSignup_CreatesAccountAndLogsIn(t *testing.T) {
	users := new(services.MockUserService)
	users.On("Signup", mock.MatchedBy(func(input services.SignupInput) bool {
		return input.Name == "Asha" &&
			input.Email == "asha@example.com" &&
			input.Gender == models.GenderFemale &&
			input.Age == 28
	})).Return(&models.User{ID: "u-3", Email: "asha@example.com", Role: models.RoleUser}, nil)

	router := setupTestRouter(t)
	controller := NewAuthController(users)
	router.POST("/signup", controller.PerformSignup)

	form := url.Values{}
	form.Set("name", "Asha")
	form.Set("email", "asha@example.com")
	form.Set("password", "long-enough-pass")
	form.Set("gender", "FEMALE")
	form.Set("age", "28")
	form.Set("phone", "9999999999")
	w := postLoginForm(router, "/signup", form)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	users.AssertExpectations(t)
}

// TestPerformSignup_ValidationErrorRendersForm verifies a service-side
// validation failure re-renders the signup page with a 400.
func TestPerformSignup_ValidationErrorRendersForm(t *testing.T) {
	users := new(services.MockUserService)
	users.On("Signup", mock.Anything).Return(nil, services.NewValidationError("Password must be at least 8 characters"))

	router := setupTestRouter(t)
	controller := NewAuthController(users)
	router.POST("/signup", controller.PerformSignup)

	form := url.Values{}
	form.Set("name", "Asha")
	form.Set("email", "asha@example.com")
	form.Set("password", "short")
	form.Set("gender", "FEMALE")
	form.Set("age", "28")
	form.Set("phone", "9999999999")
	w := postLoginForm(router, "/signup", form)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// TestPerformCompleteProfile_RedirectsToNext verifies a completed profile
// sends the user back to the page that triggered the gate.
func TestPerformCompleteProfile_RedirectsToNext(t *testing.T) {
	users := new(services.MockUserService)
	users.On("CompleteProfile", "u-4", mock.MatchedBy(func(input services.ProfileInput) bool {
		return input.Gender == models.GenderMale && input.Age == 31
	})).Return(&models.User{ID: "u-4", ProfileCompleted: true}, nil)

	router := setupTestRouter(t)
	controller := NewAuthController(users)
	router.POST("/complete-profile", withUser("u-4"), controller.PerformCompleteProfile)

	form := url.Values{}
	form.Set("gender", "MALE")
	form.Set("age", "31")
	form.Set("phone", "8888888888")
	form.Set("next", "/events/ev-1")
	w := postLoginForm(router, "/complete-profile", form)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/events/ev-1", w.Header().Get("Location"))
	users.AssertExpectations(t)
}
