package handler

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"qa-checklist-api/internal/client"
	"qa-checklist-api/internal/config"
	"qa-checklist-api/internal/response"
)

// AuthHandler handles the identity-provider callback
type AuthHandler struct {
	authClient client.AuthClientInterface
	cfg        *config.AuthConfig
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authClient client.AuthClientInterface, cfg *config.AuthConfig) *AuthHandler {
	return &AuthHandler{authClient: authClient, cfg: cfg}
}

// Callback godoc
// @Summary      Identity-provider callback
// @Description  Exchanges the authorization code, mints a session token and redirects to the frontend with the token attached.
// @Tags         auth
// @Produce      json
// @Param        code query string true "Authorization code"
// @Success      302 "Redirect to frontend with token"
// @Failure      400 {object} response.ErrorResponse "Missing code"
// @Failure      401 {object} response.ErrorResponse "Code exchange rejected"
// @Failure      500 {object} response.ErrorResponse
// @Router       /auth/callback [get]
func (h *AuthHandler) Callback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Authorization code is required")
		return
	}

	user, err := h.authClient.ExchangeCode(c.Request.Context(), code)
	if err != nil {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authorization code was rejected")
		return
	}

	token, err := h.mintSessionToken(user)
	if err != nil {
		response.SendError(c, http.StatusInternalServerError, response.ErrCodeInternal, "Failed to create session token")
		return
	}

	redirect := h.cfg.FrontendURL + "/auth/complete?token=" + url.QueryEscape(token)
	c.Redirect(http.StatusFound, redirect)
}

// mintSessionToken signs a session JWT for the authenticated user
func (h *AuthHandler) mintSessionToken(user *client.AuthUserInfo) (string, error) {
	ttl := h.cfg.SessionTTL
	if ttl == 0 {
		ttl = 24 * time.Hour
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": user.UserID.String(),
		"email":   user.Email,
		"name":    user.Name,
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.JWTSecret))
}
