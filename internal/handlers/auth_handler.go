package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/MaryEddythe/Lustrea/internal/audit"
	"github.com/MaryEddythe/Lustrea/internal/auth"
	"github.com/MaryEddythe/Lustrea/internal/httperr"
	"github.com/MaryEddythe/Lustrea/internal/httpresp"
	"github.com/MaryEddythe/Lustrea/internal/middleware"
	"github.com/MaryEddythe/Lustrea/internal/models"
	"github.com/MaryEddythe/Lustrea/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	tokens *auth.TokenStore
	audit  *audit.Dispatcher
}

func NewAuthHandler(db *gorm.DB, tokens *auth.TokenStore, audit *audit.Dispatcher) *AuthHandler {
	return &AuthHandler{db: db, tokens: tokens, audit: audit}
}

// --------- Requests ---------

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type UpdateProfileRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	CurrentPassword string `json:"current_password"`
	Password        string `json:"password"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.ValidationFailed(c, map[string]string{
			"credentials": "Email and a password of at least 6 characters are required",
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var admin models.Admin
	if err := h.db.
		Where("email = ? AND active = true", email).
		First(&admin).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.Unauthorized(c, "Invalid credentials")
			return
		}
		httperr.Internal(c, "Login failed")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "Invalid credentials")
		return
	}

	ctx := c.Request.Context()

	// Fresh login invalidates anything issued before it.
	if err := h.tokens.RevokeAll(ctx, admin.ID); err != nil {
		httperr.Internal(c, "Login failed")
		return
	}

	token, err := h.tokens.Issue(ctx, &admin)
	if err != nil {
		httperr.Internal(c, "Failed to generate token")
		return
	}

	h.audit.Dispatch(audit.Event{
		AdminID: &admin.ID,
		Action:  "admin_login",
		Entity:  "admin",
	})

	httpresp.OK(c, gin.H{
		"admin": gin.H{
			"id":    admin.ID,
			"name":  admin.Name,
			"email": admin.Email,
			"role":  admin.Role,
		},
		"token": token,
	}, "Login successful")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextAdminID).(uint)
	jti := c.MustGet(middleware.ContextTokenID).(string)

	if err := h.tokens.Revoke(c.Request.Context(), adminID, jti); err != nil {
		httperr.Internal(c, "Logout failed")
		return
	}

	httpresp.OK(c, nil, "Logged out successfully")
}

func (h *AuthHandler) Me(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextAdminID).(uint)

	var admin models.Admin
	if err := h.db.First(&admin, adminID).Error; err != nil {
		httperr.NotFound(c, "Admin not found")
		return
	}

	httpresp.OK(c, gin.H{
		"id":         admin.ID,
		"name":       admin.Name,
		"email":      admin.Email,
		"role":       admin.Role,
		"created_at": admin.CreatedAt,
	}, "Profile retrieved successfully")
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextAdminID).(uint)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.ValidationFailed(c, map[string]string{"body": "Invalid request body"})
		return
	}

	var admin models.Admin
	if err := h.db.First(&admin, adminID).Error; err != nil {
		httperr.NotFound(c, "Admin not found")
		return
	}

	if req.Name != "" {
		admin.Name = req.Name
	}

	if req.Email != "" {
		email := strings.ToLower(strings.TrimSpace(req.Email))
		if !validators.IsEmailDomainValid(email) {
			httperr.ValidationFailed(c, map[string]string{"email": "Email domain does not resolve"})
			return
		}
		admin.Email = email
	}

	if req.Password != "" {
		if len(req.Password) < 6 {
			httperr.ValidationFailed(c, map[string]string{"password": "Password must be at least 6 characters"})
			return
		}
		if err := bcrypt.CompareHashAndPassword(
			[]byte(admin.PasswordHash),
			[]byte(req.CurrentPassword),
		); err != nil {
			httperr.Unprocessable(c, "Current password is incorrect")
			return
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			httperr.Internal(c, "Failed to update password")
			return
		}
		admin.PasswordHash = string(hashed)
	}

	if err := h.db.Save(&admin).Error; err != nil {
		httperr.Internal(c, "Failed to update profile")
		return
	}

	httpresp.OK(c, gin.H{
		"id":    admin.ID,
		"name":  admin.Name,
		"email": admin.Email,
		"role":  admin.Role,
	}, "Profile updated successfully")
}

// RefreshToken rotates the caller's token: the current one is revoked
// and a new one issued.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextAdminID).(uint)
	jti := c.MustGet(middleware.ContextTokenID).(string)

	var admin models.Admin
	if err := h.db.First(&admin, adminID).Error; err != nil {
		httperr.NotFound(c, "Admin not found")
		return
	}

	ctx := c.Request.Context()

	if err := h.tokens.Revoke(ctx, adminID, jti); err != nil {
		httperr.Internal(c, "Failed to refresh token")
		return
	}

	token, err := h.tokens.Issue(ctx, &admin)
	if err != nil {
		httperr.Internal(c, "Failed to refresh token")
		return
	}

	httpresp.OK(c, gin.H{"token": token}, "Token refreshed successfully")
}
