package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/workos/workos-go/v6/pkg/usermanagement"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"fractal.app/api/core/config"
)

// Identity is the verified profile an identity provider returns for a login.
type Identity struct {
	Email     string
	Name      string
	AvatarURL *string
}

// IdentityProvider runs the authorization code flow against an external IdP.
type IdentityProvider interface {
	AuthorizationURL(state string) (string, error)
	Exchange(ctx context.Context, code string) (*Identity, error)
}

// NewIdentityProvider builds the provider selected by AUTH_PROVIDER.
func NewIdentityProvider(cfg config.Config) (IdentityProvider, error) {
	switch cfg.Auth.Provider {
	case config.AuthProviderGoogle:
		return NewGoogleProvider(cfg.Google, google.Endpoint), nil
	case config.AuthProviderWorkOS:
		return NewWorkOSProvider(cfg.WorkOS), nil
	default:
		return nil, fmt.Errorf("unknown auth provider %q", cfg.Auth.Provider)
	}
}

type googleProvider struct {
	oauth       *oauth2.Config
	userInfoURL string
}

func NewGoogleProvider(cfg config.GoogleConfig, endpoint oauth2.Endpoint) IdentityProvider {
	return &googleProvider{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes: []string{
				"openid",
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: endpoint,
		},
		userInfoURL: cfg.UserInfoURL,
	}
}

func (p *googleProvider) AuthorizationURL(state string) (string, error) {
	return p.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline), nil
}

type googleUserInfo struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified *bool  `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

func (p *googleProvider) Exchange(ctx context.Context, code string) (*Identity, error) {
	token, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchanging code: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building userinfo request: %w", err)
	}
	resp, err := p.oauth.Client(ctx, token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching userinfo: unexpected status %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decoding userinfo: %w", err)
	}
	if info.Email == "" {
		return nil, errors.New("userinfo has no email")
	}
	if info.EmailVerified != nil && !*info.EmailVerified {
		return nil, errors.New("email is not verified")
	}

	identity := &Identity{
		Email: strings.ToLower(info.Email),
		Name:  info.Name,
	}
	if identity.Name == "" {
		identity.Name = identity.Email
	}
	if info.Picture != "" {
		identity.AvatarURL = &info.Picture
	}
	return identity, nil
}

type workosProvider struct {
	cfg config.WorkOSConfig
}

func NewWorkOSProvider(cfg config.WorkOSConfig) IdentityProvider {
	usermanagement.SetAPIKey(cfg.APIKey)
	return &workosProvider{cfg: cfg}
}

func (p *workosProvider) AuthorizationURL(state string) (string, error) {
	u, err := usermanagement.GetAuthorizationURL(usermanagement.GetAuthorizationURLOpts{
		ClientID:    p.cfg.ClientID,
		RedirectURI: p.cfg.RedirectURI,
		State:       state,
		Provider:    "GoogleOAuth",
	})
	if err != nil {
		return "", fmt.Errorf("generating authorization URL: %w", err)
	}
	return u.String(), nil
}

func (p *workosProvider) Exchange(ctx context.Context, code string) (*Identity, error) {
	resp, err := usermanagement.AuthenticateWithCode(ctx, usermanagement.AuthenticateWithCodeOpts{
		ClientID: p.cfg.ClientID,
		Code:     code,
	})
	if err != nil {
		return nil, fmt.Errorf("authenticating with code: %w", err)
	}

	identity := &Identity{
		Email: strings.ToLower(resp.User.Email),
		Name:  buildUserName(resp.User),
	}
	if resp.User.ProfilePictureURL != "" {
		identity.AvatarURL = &resp.User.ProfilePictureURL
	}
	return identity, nil
}

func buildUserName(user usermanagement.User) string {
	if user.FirstName != "" && user.LastName != "" {
		return user.FirstName + " " + user.LastName
	}
	if user.FirstName != "" {
		return user.FirstName
	}
	if user.LastName != "" {
		return user.LastName
	}
	return user.Email
}
