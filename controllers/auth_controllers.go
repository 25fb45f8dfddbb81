package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"helpdesk/middlewares"
	"helpdesk/models"
	"helpdesk/utils"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// Register creates a customer account. Email must be unused; comparison
// is an exact match against the stored value.
func (ac *AuthController) Register(c *gin.Context) {
	type request struct {
		FirstName       string `json:"first_name" binding:"required,max=50"`
		LastName        string `json:"last_name" binding:"required,max=50"`
		Email           string `json:"email" binding:"required,email,max=100"`
		Password        string `json:"password" binding:"required,min=6,max=16"`
		ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=Password"`
		Phone           string `json:"phone" binding:"max=20"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var count int64
	if err := ac.DB.Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if count > 0 {
		utils.RespondError(c, http.StatusConflict, errors.New("email is already in use"))
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	user := models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  hashed,
		Phone:     req.Phone,
		Role:      models.RoleCustomer,
	}

	if err := ac.DB.Create(&user).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New user registered: %s", user.Email)

	utils.RespondJSON(c, http.StatusCreated, "User registered", gin.H{
		"user_id": user.ID,
	})
}

// Login verifies credentials and returns a JWT, also set as the session
// cookie.
func (ac *AuthController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var user models.User
	if err := ac.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	if !utils.VerifyPassword(input.Password, user.Password) {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Role, user.FullName(), user.Email)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.SetCookie(middlewares.AuthCookieName, token, int(utils.TokenLifetime.Seconds()), "/", "", false, true)

	utils.InfoLogger.Printf("Login successful: %s (role=%s)", user.Email, user.Role)

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token":     token,
		"user_role": user.Role,
	})
}

// Logout drops the session cookie.
func (ac *AuthController) Logout(c *gin.Context) {
	c.SetCookie(middlewares.AuthCookieName, "", -1, "/", "", false, true)
	utils.RespondJSON(c, http.StatusOK, "Logged out", nil)
}

// GetProfile returns the authenticated user's record.
func (ac *AuthController) GetProfile(c *gin.Context) {
	userID := c.GetUint("user_id")

	var user models.User
	if err := ac.DB.First(&user, userID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("user not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Profile data retrieved successfully", gin.H{
		"id":         user.ID,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"email":      user.Email,
		"phone":      user.Phone,
		"role":       user.Role,
	})
}

// UpdateProfile updates profile fields. The password block is optional:
// either all three password fields come together, or none of them.
func (ac *AuthController) UpdateProfile(c *gin.Context) {
	type request struct {
		FirstName          string `json:"first_name" binding:"required,max=50"`
		LastName           string `json:"last_name" binding:"required,max=50"`
		Email              string `json:"email" binding:"required,email,max=100"`
		Phone              string `json:"phone" binding:"max=20"`
		CurrentPassword    string `json:"current_password"`
		NewPassword        string `json:"new_password"`
		ConfirmNewPassword string `json:"confirm_new_password"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	userID := c.GetUint("user_id")

	var user models.User
	if err := ac.DB.First(&user, userID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("user not found"))
		return
	}

	currentProvided := req.CurrentPassword != ""
	newProvided := req.NewPassword != "" || req.ConfirmNewPassword != ""

	if currentProvided || newProvided {
		if !currentProvided {
			utils.RespondFieldErrors(c, http.StatusBadRequest, map[string]string{
				"current_password": "please enter your current password",
			})
			return
		}
		if !newProvided {
			utils.RespondFieldErrors(c, http.StatusBadRequest, map[string]string{
				"new_password": "please enter the new password and its confirmation",
			})
			return
		}
		if req.NewPassword != req.ConfirmNewPassword {
			utils.RespondFieldErrors(c, http.StatusBadRequest, map[string]string{
				"confirm_new_password": "new passwords do not match",
			})
			return
		}
		if !utils.VerifyPassword(req.CurrentPassword, user.Password) {
			utils.RespondFieldErrors(c, http.StatusBadRequest, map[string]string{
				"current_password": "current password is incorrect",
			})
			return
		}

		hashed, err := utils.HashPassword(req.NewPassword)
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		user.Password = hashed
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Email = req.Email
	user.Phone = req.Phone

	if err := ac.DB.Save(&user).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Profile updated successfully", nil)
}
