package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"poinku/config"
	"poinku/internal/domain"
	"poinku/internal/middleware"
	"poinku/internal/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	youtubeapi "google.golang.org/api/youtube/v3"
)

type GoogleOAuthHandler struct {
	cfg     *config.Config
	authSvc *service.AuthService
}

func NewGoogleOAuthHandler(cfg *config.Config, authSvc *service.AuthService) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{cfg: cfg, authSvc: authSvc}
}

func (h *GoogleOAuthHandler) OAuth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.cfg.OAuth.GoogleClientID,
		ClientSecret: h.cfg.OAuth.GoogleClientSecret,
		RedirectURL:  h.cfg.OAuth.GoogleRedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
			"https://www.googleapis.com/auth/youtube.readonly",
		},
		Endpoint: google.Endpoint,
	}
}

// Redirect sends the user to the Google consent screen.
func (h *GoogleOAuthHandler) Redirect(c *gin.Context) {
	if h.cfg.OAuth.GoogleClientID == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Google OAuth not configured"})
		return
	}
	url := h.OAuth2Config().AuthCodeURL("state", oauth2.AccessTypeOffline)
	c.Redirect(http.StatusFound, url)
}

type googleUserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// identity exchanges an authorization code and resolves the Google identity
// plus the account's YouTube channel ID (empty when the account has none).
func (h *GoogleOAuthHandler) identity(ctx context.Context, code string) (*googleUserInfo, string, error) {
	conf := h.OAuth2Config()
	tok, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, "", err
	}
	client := conf.Client(ctx, tok)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, "", errors.New("userinfo request failed")
	}
	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, "", err
	}

	channelID := ""
	yt, err := youtubeapi.NewService(ctx, option.WithTokenSource(conf.TokenSource(ctx, tok)))
	if err == nil {
		channels, err := yt.Channels.List([]string{"id"}).Mine(true).Context(ctx).Do()
		if err == nil && len(channels.Items) > 0 {
			channelID = channels.Items[0].Id
		}
	}
	return &info, channelID, nil
}

// Callback signs the user in (creating or linking an account) from the
// authorization code.
func (h *GoogleOAuthHandler) Callback(c *gin.Context) {
	if h.cfg.OAuth.GoogleClientID == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Google OAuth not configured"})
		return
	}
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing code"})
		return
	}
	info, channelID, err := h.identity(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "google exchange failed"})
		return
	}
	u, access, refresh, err := h.authSvc.LoginWithGoogle(info.ID, info.Email, info.Name, channelID)
	if err != nil {
		if errors.Is(err, domain.ErrBanned) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tokenResponse(u, access, refresh))
}

type LinkGoogleRequest struct {
	Code string `json:"code" binding:"required"`
}

// Link attaches a Google account (and its YouTube channel) to the
// authenticated user.
func (h *GoogleOAuthHandler) Link(c *gin.Context) {
	if h.cfg.OAuth.GoogleClientID == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Google OAuth not configured"})
		return
	}
	var req LinkGoogleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	info, channelID, err := h.identity(c.Request.Context(), req.Code)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "google exchange failed"})
		return
	}
	userID := middleware.GetUserID(c)
	if err := h.authSvc.LinkGoogle(userID, info.ID, channelID); err != nil {
		if errors.Is(err, service.ErrGoogleIDTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "google account linked", "channel_id": channelID})
}
