package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"restaurant-management-api/config"
	"restaurant-management-api/middleware"
	"restaurant-management-api/models"
	"restaurant-management-api/notify"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Mailer dispatches password-reset emails. Wired in main; nil means resets
// are silently skipped (the reset flow is fail-open).
var Mailer notify.EmailSender

// Log is the handler-level logger, wired in main.
var Log = zap.NewNop()

// invalidCredentials is returned for every authentication failure — unknown
// username, unknown email, wrong password — so login attempts cannot be used
// to enumerate accounts.
const invalidCredentials = "Invalid username/email or password"

type RegisterRequest struct {
	Name     string          `json:"name" binding:"required"`
	Email    string          `json:"email" binding:"required,email"`
	Username string          `json:"username" binding:"required,min=3"`
	Password string          `json:"password" binding:"required,min=6"`
	Role     models.UserRole `json:"role" binding:"required"`
	Phone    string          `json:"phone"`
}

type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"` // email or username
	Password   string `json:"password" binding:"required"`
}

// friendlyAuthError maps backend error strings to user-facing messages by
// substring match; anything unmatched passes through raw.
func friendlyAuthError(err error) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint") && strings.Contains(msg, "email"):
		return "Email already registered"
	case strings.Contains(msg, "UNIQUE constraint") && strings.Contains(msg, "username"):
		return "Username already taken"
	case strings.Contains(msg, "UNIQUE constraint") && strings.Contains(msg, "phone"):
		return "Phone number already registered"
	case strings.Contains(msg, "UNIQUE constraint"):
		return "Account already exists"
	default:
		return msg
	}
}

// Register creates a new user account
func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Validate role
	validRoles := map[models.UserRole]bool{
		models.RoleCustomer: true,
		models.RoleStaff:    true,
		models.RoleOwner:    true,
		models.RoleAdmin:    true,
	}
	if !validRoles[req.Role] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role. Must be: customer, staff, owner, or admin"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        strings.ToLower(req.Email),
		Username:     strings.ToLower(req.Username),
		PasswordHash: string(hash),
		Role:         req.Role,
		Phone:        req.Phone,
	}

	if err := config.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": friendlyAuthError(err)})
		return
	}

	token, err := middleware.GenerateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created successfully",
		"token":   token,
		"user": gin.H{
			"id":       user.ID,
			"name":     user.Name,
			"email":    user.Email,
			"username": user.Username,
			"role":     user.Role,
		},
	})
}

// Login authenticates a user by email or username and returns a JWT
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identifier := strings.ToLower(strings.TrimSpace(req.Identifier))
	column := "username"
	if strings.Contains(identifier, "@") {
		column = "email"
	}

	var user models.User
	if err := config.DB.Where(column+" = ?", identifier).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": invalidCredentials})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": invalidCredentials})
		return
	}

	token, err := middleware.GenerateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user": gin.H{
			"id":       user.ID,
			"name":     user.Name,
			"email":    user.Email,
			"username": user.Username,
			"role":     user.Role,
		},
	})
}

// GetProfile returns the authenticated user's profile. Customers get a
// CustomerProfile row auto-provisioned on first fetch.
func GetProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	resp := gin.H{"user": user}
	if user.Role == models.RoleCustomer {
		var profile models.CustomerProfile
		err := config.DB.Where("user_id = ?", user.ID).First(&profile).Error
		if err != nil {
			profile = models.CustomerProfile{
				UserID: &user.ID,
				Name:   user.Name,
				Email:  user.Email,
			}
			if user.Phone != "" {
				profile.Phone = &user.Phone
			}
			if err := config.DB.Create(&profile).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to provision customer profile"})
				return
			}
			Log.Info("customer profile auto-provisioned", zap.Uint("user_id", user.ID))
		}
		resp["profile"] = profile
	}
	c.JSON(http.StatusOK, resp)
}

type ResetRequestRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// RequestPasswordReset starts the reset flow. Always answers success: the
// response never reveals whether the account exists, and an email failure
// never blocks the caller.
func RequestPasswordReset(c *gin.Context) {
	var req ResetRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg := gin.H{"success": true, "message": "If that account exists, a reset email is on its way"}

	var user models.User
	if err := config.DB.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error; err != nil {
		c.JSON(http.StatusOK, msg)
		return
	}

	token := uuid.NewString()
	expiry := time.Now().Add(time.Hour)
	if err := config.DB.Model(&user).Updates(map[string]interface{}{
		"reset_token":  token,
		"reset_expiry": expiry,
	}).Error; err != nil {
		Log.Warn("failed to store reset token", zap.Error(err))
		c.JSON(http.StatusOK, msg)
		return
	}

	if Mailer == nil {
		Log.Warn("reset email skipped: no mailer configured", zap.Uint("user_id", user.ID))
		c.JSON(http.StatusOK, msg)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := Mailer.Send(ctx, notify.Email{
		From:    config.MailFrom(),
		To:      user.Email,
		Subject: "Reset your password",
		HTML:    "<p>Your password reset code is <strong>" + token + "</strong>. It expires in one hour.</p>",
	})
	if err != nil {
		Log.Warn("reset email skipped", zap.Uint("user_id", user.ID), zap.Error(err))
	}
	c.JSON(http.StatusOK, msg)
}

type ResetConfirmRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// ConfirmPasswordReset sets a new password for a valid, unexpired token.
func ConfirmPasswordReset(c *gin.Context) {
	var req ResetConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.Where("reset_token = ?", req.Token).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired reset token"})
		return
	}
	if user.ResetExpiry == nil || time.Now().After(*user.ResetExpiry) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired reset token"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}
	if err := config.DB.Model(&user).Updates(map[string]interface{}{
		"password_hash": string(hash),
		"reset_token":   "",
		"reset_expiry":  nil,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}
