package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"muroom/internal/middleware"
	"muroom/internal/models"
	"muroom/internal/services"
)

type UserHandler struct {
	accounts services.AccountService
}

func NewUserHandler(accounts services.AccountService) *UserHandler {
	return &UserHandler{accounts: accounts}
}

func (h *UserHandler) requireUserID(c *gin.Context) (string, bool) {
	id, ok := middleware.UserIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": services.ErrInvalidToken.Error()})
		return "", false
	}
	return id, true
}

// @Summary      Current user
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]models.User
// @Failure      401  {object}  map[string]string
// @Router       /current-user [get]
func (h *UserHandler) CurrentUser(c *gin.Context) {
	id, ok := h.requireUserID(c)
	if !ok {
		return
	}
	user, err := h.accounts.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// @Summary      Public profile
// @Description  Read-only, unauthenticated lookup by username.
// @Tags         Users
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  map[string]models.User
// @Failure      404       {object}  map[string]string
// @Router       /profile/{username} [get]
func (h *UserHandler) PublicProfile(c *gin.Context) {
	user, err := h.accounts.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// @Summary      Update password
// @Tags         Users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      models.UpdatePasswordRequest  true  "New password"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Router       /update-password [put]
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	id, ok := h.requireUserID(c)
	if !ok {
		return
	}

	var req models.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	if err := h.accounts.UpdatePassword(c.Request.Context(), id, req.Password); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// @Summary      Update profile
// @Description  Mutates the authenticated user's own record only.
// @Tags         Users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      models.UpdateProfileRequest  true  "Profile fields"
// @Success      200   {object}  map[string]models.User
// @Failure      409   {object}  map[string]string
// @Router       /update-profile [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	id, ok := h.requireUserID(c)
	if !ok {
		return
	}

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	user, err := h.accounts.UpdateProfile(c.Request.Context(), id, req.Email, req.Username)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
