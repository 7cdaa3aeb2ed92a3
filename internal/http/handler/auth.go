package handler

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"fractal.app/api/internal/http/dto"
	"fractal.app/api/internal/http/middleware"
	"fractal.app/api/internal/service"
)

const (
	stateCookieName = "fractal_oauth_state"
	stateMaxAge     = 600
)

type AuthHandler struct {
	authService  service.AuthService
	userService  service.UserService
	frontendURL  string
	isProduction bool
	sessionTTL   time.Duration
}

func NewAuthHandler(
	authService service.AuthService,
	userService service.UserService,
	frontendURL string,
	isProduction bool,
	sessionTTL time.Duration,
) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		userService:  userService,
		frontendURL:  frontendURL,
		isProduction: isProduction,
		sessionTTL:   sessionTTL,
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	state, err := generateState()
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "failed to generate state", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to initiate login"})
		return
	}

	authURL, err := h.authService.AuthorizationURL(state)
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "failed to get authorization URL", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to initiate login"})
		return
	}

	h.setCookie(c, stateCookieName, state, stateMaxAge)
	c.Redirect(http.StatusTemporaryRedirect, authURL)
}

type loginResponse struct {
	Token     string            `json:"token"`
	ExpiresIn int               `json:"expires_in"`
	User      *dto.UserResponse `json:"user"`
}

// Callback finishes the OAuth flow. Browsers are redirected back to the
// frontend with the session cookie set; API clients asking for JSON get the
// bearer token in the body.
func (h *AuthHandler) Callback(c *gin.Context) {
	ctx := c.Request.Context()

	if errorParam := c.Query("error"); errorParam != "" {
		slog.WarnContext(ctx, "OAuth error", "error", errorParam, "description", c.Query("error_description"))
		h.failLogin(c, errorParam)
		return
	}

	storedState, err := c.Cookie(stateCookieName)
	if err != nil || storedState == "" || c.Query("state") != storedState {
		slog.WarnContext(ctx, "state mismatch")
		h.failLogin(c, "invalid_state")
		return
	}
	h.setCookie(c, stateCookieName, "", -1)

	code := c.Query("code")
	if code == "" {
		h.failLogin(c, "no_code")
		return
	}

	result, err := h.authService.HandleCallback(ctx, code)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCode) {
			h.failLogin(c, "invalid_code")
			return
		}
		slog.ErrorContext(ctx, "failed to handle callback", "error", err)
		h.failLogin(c, "callback_failed")
		return
	}

	h.setCookie(c, middleware.SessionCookieName, result.Token, int(h.sessionTTL.Seconds()))

	if wantsJSON(c) {
		c.JSON(http.StatusOK, loginResponse{
			Token:     result.Token,
			ExpiresIn: int(h.sessionTTL.Seconds()),
			User:      dto.ToUserResponse(result.User),
		})
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, h.frontendURL+"/")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := c.Request.Context()

	if p, ok := middleware.GetPrincipal(c); ok {
		if err := h.authService.Logout(ctx, p.SessionID); err != nil {
			slog.WarnContext(ctx, "failed to delete session", "error", err, "session_id", p.SessionID)
		}
	}

	h.setCookie(c, middleware.SessionCookieName, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	user, workspaces, err := h.userService.Profile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
			return
		}
		respondError(c, err, "failed to load profile")
		return
	}

	c.JSON(http.StatusOK, dto.MeResponse{
		User:       dto.ToUserResponse(user),
		Workspaces: dto.ToWorkspaceListResponse(workspaces),
	})
}

func (h *AuthHandler) failLogin(c *gin.Context, code string) {
	if wantsJSON(c) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "login failed", "code": code})
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, h.frontendURL+"/login?auth_error="+url.QueryEscape(code))
}

func (h *AuthHandler) setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", h.isProduction, true)
}

func wantsJSON(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "application/json")
}

func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
