package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"muroom/internal/middleware"
	"muroom/internal/models"
	"muroom/internal/services"
)

type AuthHandler struct {
	accounts services.AccountService
	resets   services.PasswordResetService
	tokens   *services.TokenService
}

func NewAuthHandler(accounts services.AccountService, resets services.PasswordResetService, tokens *services.TokenService) *AuthHandler {
	return &AuthHandler{accounts: accounts, resets: resets, tokens: tokens}
}

// respondWithSession issues the session/refresh pair for a persisted user.
// Sensitive fields never serialize (json:"-" on the model).
func (h *AuthHandler) respondWithSession(c *gin.Context, user *models.User) {
	token, err := h.tokens.SignSession(user.ID.Hex())
	if err != nil {
		respondError(c, err)
		return
	}
	refresh, err := h.tokens.SignRefresh(user.ID.Hex())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SessionResponse{
		Token:        token,
		RefreshToken: refresh,
		User:         user,
	})
}

// @Summary      Welcome
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /welcome [get]
func (h *AuthHandler) Welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": "Welcome to Muroom."})
}

// @Summary      Start registration
// @Description  Validates email/password and mails a confirmation link. No account is created yet.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      models.PreRegisterRequest  true  "Credentials"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /pre-register [post]
func (h *AuthHandler) PreRegister(c *gin.Context) {
	var req models.PreRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	err := h.accounts.PreRegister(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// soft failure: the confirmation mail did not go out
		if errors.Is(err, services.ErrMailDelivery) {
			c.JSON(http.StatusOK, gin.H{"ok": false})
			return
		}
		respondError(c, err)
		return
	}
	log.Printf("[auth][pre-register] confirmation mail queued for %s", req.Email)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// @Summary      Complete registration
// @Description  Exchanges the emailed confirmation token for a persisted account and a session.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      models.RegisterRequest  true  "Confirmation token"
// @Success      200   {object}  models.SessionResponse
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	user, err := h.accounts.Register(c.Request.Context(), req.Token)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondWithSession(c, user)
}

// @Summary      Login
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      models.LoginRequest  true  "Credentials"
// @Success      200   {object}  models.SessionResponse
// @Failure      401   {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	user, err := h.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	log.Printf("[auth][login] success userID=%s", user.ID.Hex())
	h.respondWithSession(c, user)
}

// @Summary      Request password reset
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      models.ForgotPasswordRequest  true  "Account email"
// @Success      200   {object}  map[string]interface{}
// @Failure      404   {object}  map[string]string
// @Router       /forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	err := h.resets.RequestReset(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, services.ErrMailDelivery) {
			c.JSON(http.StatusOK, gin.H{"ok": false})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// @Summary      Confirm password reset
// @Description  Consumes the emailed reset token (single-use) and opens a session.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      models.AccessAccountRequest  true  "Reset token"
// @Success      200   {object}  models.SessionResponse
// @Failure      401   {object}  map[string]string
// @Router       /access-account [post]
func (h *AuthHandler) AccessAccount(c *gin.Context) {
	var req models.AccessAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	user, err := h.resets.AccessAccount(c.Request.Context(), req.ResetCode)
	if err != nil {
		respondError(c, err)
		return
	}
	log.Printf("[auth][access-account] reset code consumed for userID=%s", user.ID.Hex())
	h.respondWithSession(c, user)
}

// @Summary      Refresh tokens
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.SessionResponse
// @Failure      401  {object}  map[string]string
// @Router       /refresh-token [get]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	id, ok := middleware.UserIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": services.ErrInvalidToken.Error()})
		return
	}

	user, err := h.accounts.GetByID(c.Request.Context(), id)
	if err != nil {
		// the claim outlived the account
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": services.ErrInvalidToken.Error()})
			return
		}
		respondError(c, err)
		return
	}
	h.respondWithSession(c, user)
}
