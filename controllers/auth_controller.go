package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"dorm-backend/middleware"
	"dorm-backend/services"
	"dorm-backend/utils"
)

type AuthController struct {
	Users  *services.UserService
	Secret string
}

func NewAuthController(users *services.UserService, secret string) *AuthController {
	return &AuthController{Users: users, Secret: secret}
}

type loginPayload struct {
	StudentCode string `json:"student_code" binding:"required"`
	Password    string `json:"password" binding:"required"`
}

// Register creates a student account.
func (ac *AuthController) Register(c *gin.Context) {
	var in services.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	user, err := ac.Users.Register(in)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// Login exchanges student code + password for an access token.
func (ac *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "student_code and password required")
		return
	}

	user, err := ac.Users.Authenticate(payload.StudentCode, payload.Password)
	if err != nil {
		var ve *services.ValidationError
		if errors.As(err, &ve) {
			utils.JSONError(c, http.StatusUnauthorized, "invalid credentials")
			return
		}
		serviceError(c, err)
		return
	}

	role := "student"
	if user.Staff() {
		role = "staff"
	}
	token, err := utils.GenerateToken(ac.Secret, user.ID, role)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":           user.ID,
			"student_code": user.StudentCode,
			"full_name":    user.FullName(),
			"gender":       user.Gender,
			"is_staff":     user.Staff(),
		},
	})
}

// Me returns the authenticated user's profile.
func (ac *AuthController) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "not authenticated")
		return
	}
	c.JSON(http.StatusOK, user)
}
