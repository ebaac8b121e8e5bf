// Package controllers handles user authentication and session management.
// File: controllers/auth_controller.go
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"gaittrib/logger"
	"gaittrib/models"
	"gaittrib/services"
)

// AuthController serves signup, login, logout and profile completion.
type AuthController struct {
	Users services.UserServiceInterface
}

// NewAuthController creates an AuthController.
func NewAuthController(users services.UserServiceInterface) *AuthController {
	return &AuthController{Users: users}
}

// saveUserSession stores the caller identity the middleware relies on.
func saveUserSession(c *gin.Context, user *models.User) error {
	session := sessions.Default(c)
	session.Set("userID", user.ID)
	session.Set("isAdmin", user.Role == models.RoleAdmin)
	session.Set("profileComplete", user.ProfileCompleted)
	return session.Save()
}

// ------------------ signup ------------------

// ShowSignupPage renders the signup form.
func (ac *AuthController) ShowSignupPage(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", gin.H{})
}

// PerformSignup creates an account from the signup form and logs the new
// user straight in.
func (ac *AuthController) PerformSignup(c *gin.Context) {
	age, _ := strconv.Atoi(c.PostForm("age"))

	user, err := ac.Users.Signup(services.SignupInput{
		Name:     c.PostForm("name"),
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
		Gender:   models.Gender(c.PostForm("gender")),
		Age:      age,
		Phone:    c.PostForm("phone"),
	})
	if err != nil {
		c.HTML(statusForError(err), "signup.html", gin.H{"Error": userMessage(err)})
		return
	}

	if err := saveUserSession(c, user); err != nil {
		logger.Error.Println("PerformSignup: failed to save session:", err)
		c.HTML(http.StatusInternalServerError, "signup.html", gin.H{"Error": "Internal error, please try again."})
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// ------------------ login / logout ------------------

// ShowLoginPage renders the login form.
func (ac *AuthController) ShowLoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

// PerformLogin authenticates the user and stores the session. Admins land
// on the admin overview, everyone else on the home page.
func (ac *AuthController) PerformLogin(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	if email == "" || password == "" {
		c.HTML(http.StatusBadRequest, "login.html", gin.H{"Error": "Email and password are required."})
		return
	}

	user, err := ac.Users.Login(email, password)
	if err != nil {
		logger.Warn.Printf("PerformLogin: failed login for %s", email)
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{"Error": "Invalid email or password."})
		return
	}

	if err := saveUserSession(c, user); err != nil {
		logger.Error.Println("PerformLogin: failed to save session:", err)
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{"Error": "Internal error, please try again."})
		return
	}

	logger.Info.Printf("PerformLogin: %s logged in", user.Email)
	if user.Role == models.RoleAdmin {
		c.Redirect(http.StatusFound, "/admin/overview")
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// Logout clears the session and returns to the home page.
func (ac *AuthController) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		logger.Error.Println("Logout: failed to clear session:", err)
	}
	c.Redirect(http.StatusFound, "/")
}

// ------------------ profile completion ------------------

// ShowCompleteProfile renders the demographics form. The `next` parameter
// carries the page the user was trying to reach.
func (ac *AuthController) ShowCompleteProfile(c *gin.Context) {
	c.HTML(http.StatusOK, "complete_profile.html", gin.H{"Next": c.Query("next")})
}

// PerformCompleteProfile stores the demographics and releases the
// registration gate.
func (ac *AuthController) PerformCompleteProfile(c *gin.Context) {
	userID := c.GetString("userID")
	age, _ := strconv.Atoi(c.PostForm("age"))

	user, err := ac.Users.CompleteProfile(userID, services.ProfileInput{
		Gender: models.Gender(c.PostForm("gender")),
		Age:    age,
		Phone:  c.PostForm("phone"),
	})
	if err != nil {
		c.HTML(statusForError(err), "complete_profile.html", gin.H{
			"Error": userMessage(err),
			"Next":  c.PostForm("next"),
		})
		return
	}

	if err := saveUserSession(c, user); err != nil {
		logger.Error.Println("PerformCompleteProfile: failed to save session:", err)
	}

	next := c.PostForm("next")
	if next == "" {
		next = "/"
	}
	c.Redirect(http.StatusFound, next)
}
