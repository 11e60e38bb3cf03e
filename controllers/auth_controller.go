package controllers

import (
	"net/http"
	"strings"

	"github.com/MOON-roa-png/BodegaMati/config"
	"github.com/MOON-roa-png/BodegaMati/models"
	"github.com/MOON-roa-png/BodegaMati/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func Login(c *gin.Context) {
	var in LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid payload", err)
		return
	}

	var user models.User
	if err := config.DB.Where("username = ?", in.Username).First(&user).Error; err != nil {
		utils.Error(c, http.StatusUnauthorized, "Invalid credentials", nil)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		utils.Error(c, http.StatusUnauthorized, "Invalid credentials", nil)
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to issue token", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"role":    user.Role,
	})
}

type CreateUserInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (in *CreateUserInput) validate() error {
	if strings.TrimSpace(in.Username) == "" {
		return &models.ValidationError{Field: "username", Msg: "is required"}
	}
	if len(in.Password) < 6 {
		return &models.ValidationError{Field: "password", Msg: "must be at least 6 characters"}
	}
	if in.Role != "" && in.Role != models.RoleAdmin && in.Role != models.RoleEmployee {
		return &models.ValidationError{Field: "role", Msg: "must be admin or employee"}
	}
	return nil
}

func newUser(in *CreateUserInput, role string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &models.User{
		Username:     strings.TrimSpace(in.Username),
		PasswordHash: string(hash),
		Role:         role,
	}, nil
}

// RegisterInitialAdmin is open only while no admin account exists, so a
// fresh install can bootstrap itself. Afterwards it always refuses.
func RegisterInitialAdmin(c *gin.Context) {
	var in CreateUserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid payload", err)
		return
	}
	if err := in.validate(); err != nil {
		respondError(c, err)
		return
	}

	var cnt int64
	if err := config.DB.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&cnt).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to check existing admins", err)
		return
	}
	if cnt > 0 {
		utils.Error(c, http.StatusForbidden, "An admin account already exists", nil)
		return
	}

	user, err := newUser(&in, models.RoleAdmin)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to hash password", err)
		return
	}
	if err := config.DB.Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			respondError(c, &models.DuplicateNameError{Entity: "user", Name: user.Username})
			return
		}
		utils.Error(c, http.StatusInternalServerError, "Failed to create admin", err)
		return
	}
	utils.Success(c, "Initial admin created", user)
}

// CreateUser lets an admin add employee or admin accounts.
func CreateUser(c *gin.Context) {
	var in CreateUserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid payload", err)
		return
	}
	if err := in.validate(); err != nil {
		respondError(c, err)
		return
	}
	role := in.Role
	if role == "" {
		role = models.RoleEmployee
	}

	user, err := newUser(&in, role)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to hash password", err)
		return
	}
	if err := config.DB.Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			respondError(c, &models.DuplicateNameError{Entity: "user", Name: user.Username})
			return
		}
		utils.Error(c, http.StatusInternalServerError, "Failed to create user", err)
		return
	}
	utils.Success(c, "User created", user)
}

func GetAllUsers(c *gin.Context) {
	var users []models.User
	if err := config.DB.Order("username ASC").Find(&users).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to list users", err)
		return
	}
	utils.Success(c, "Users", users)
}
