package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dreamworldhq/storefront/internal/config"
	"github.com/dreamworldhq/storefront/internal/errors"
	"github.com/dreamworldhq/storefront/internal/models"
	repository "github.com/dreamworldhq/storefront/internal/repositories"
	"golang.org/x/oauth2"
	githuboauth "golang.org/x/oauth2/github"
)

const (
	defaultGitHubAPIURL      = "https://api.github.com"
	defaultGoogleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	oauthRequestTimeout      = 10 * time.Second
	oauthStateEntropyBytes   = 16
)

// OAuthService implements the two social sign-in flows: the GitHub
// authorization-code flow (state round-tripped for CSRF protection) and the
// Google Identity Services token flow (the client hands over an access
// token, we verify it against the userinfo endpoint). Both end in a local
// user record and a session JWT.
type OAuthService interface {
	BeginGitHub(ctx context.Context) (string, error)
	CompleteGitHub(ctx context.Context, code, state string) (*models.LoginResponse, error)
	GoogleSignIn(ctx context.Context, accessToken string) (*models.LoginResponse, error)
}

type oauthService struct {
	users  repository.UserRepository
	states repository.OAuthStateRepository

	githubConfig *oauth2.Config
	jwtKey       []byte

	// overridable in tests
	githubAPIURL      string
	googleUserInfoURL string
	httpClient        *http.Client
}

func NewOAuthService(users repository.UserRepository, states repository.OAuthStateRepository, cfg *config.OAuth, jwtKey []byte) OAuthService {
	return &oauthService{
		users:  users,
		states: states,
		githubConfig: &oauth2.Config{
			ClientID:     cfg.GitHub.ClientID,
			ClientSecret: cfg.GitHub.ClientSecret,
			RedirectURL:  cfg.GitHub.RedirectURL,
			Scopes:       []string{"user:email"},
			Endpoint:     githuboauth.Endpoint,
		},
		jwtKey:            jwtKey,
		githubAPIURL:      defaultGitHubAPIURL,
		googleUserInfoURL: defaultGoogleUserInfoURL,
		httpClient:        &http.Client{Timeout: oauthRequestTimeout},
	}
}

// BeginGitHub stores a fresh anti-CSRF state and returns the provider
// authorization URL to redirect the user to.
func (s *oauthService) BeginGitHub(ctx context.Context) (string, error) {

	buf := make([]byte, oauthStateEntropyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.InternalError("Failed to generate oauth state").WithError(err)
	}

	state := hex.EncodeToString(buf)

	if err := s.states.Put(ctx, state); err != nil {
		return "", errors.ThirdPartyError("Failed to store oauth state").WithError(err)
	}

	return s.githubConfig.AuthCodeURL(state), nil
}

func (s *oauthService) CompleteGitHub(ctx context.Context, code, state string) (*models.LoginResponse, error) {

	if code == "" {
		return nil, errors.AuthExchangeError("Missing authorization code")
	}

	ok, err := s.states.Take(ctx, state)
	if err != nil {
		return nil, errors.ThirdPartyError("Failed to verify oauth state").WithError(err)
	}

	if !ok {
		return nil, errors.StateMismatchError("Invalid state parameter")
	}

	token, err := s.githubConfig.Exchange(ctx, code)
	if err != nil {
		return nil, errors.AuthExchangeError("GitHub token exchange failed").WithError(err)
	}

	oauthUser, err := s.fetchGitHubUser(ctx, token.AccessToken)
	if err != nil {
		return nil, errors.AuthExchangeError("Failed to fetch GitHub user info").WithError(err)
	}

	return s.signInOAuthUser(ctx, oauthUser)
}

// GoogleSignIn verifies the access token handed out by the client-side
// Google token flow by fetching the userinfo payload with it.
func (s *oauthService) GoogleSignIn(ctx context.Context, accessToken string) (*models.LoginResponse, error) {

	if accessToken == "" {
		return nil, errors.AuthExchangeError("Missing access token")
	}

	var info struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Picture string `json:"picture"`
	}

	if err := s.getJSON(ctx, s.googleUserInfoURL, accessToken, &info); err != nil {
		return nil, errors.AuthExchangeError("Failed to fetch Google user info").WithError(err)
	}

	if info.Email == "" {
		return nil, errors.AuthExchangeError("Google account has no email")
	}

	return s.signInOAuthUser(ctx, &models.OAuthUser{
		Provider:  models.AuthProviderGoogle,
		Name:      info.Name,
		Email:     info.Email,
		AvatarURL: info.Picture,
	})
}

func (s *oauthService) fetchGitHubUser(ctx context.Context, accessToken string) (*models.OAuthUser, error) {

	var info struct {
		Login     string `json:"login"`
		Name      string `json:"name"`
		Email     string `json:"email"`
		AvatarURL string `json:"avatar_url"`
	}

	if err := s.getJSON(ctx, s.githubAPIURL+"/user", accessToken, &info); err != nil {
		return nil, err
	}

	name := info.Name
	if name == "" {
		name = info.Login
	}

	email := info.Email

	// the profile email can be private; the emails endpoint carries the
	// primary one
	if email == "" {

		var emails []struct {
			Email   string `json:"email"`
			Primary bool   `json:"primary"`
		}

		if err := s.getJSON(ctx, s.githubAPIURL+"/user/emails", accessToken, &emails); err != nil {
			return nil, err
		}

		for _, e := range emails {
			if e.Primary {
				email = e.Email

				break
			}
		}

		if email == "" && len(emails) > 0 {
			email = emails[0].Email
		}
	}

	if email == "" {
		return nil, fmt.Errorf("github account has no usable email")
	}

	return &models.OAuthUser{
		Provider:  models.AuthProviderGitHub,
		Name:      name,
		Email:     email,
		AvatarURL: info.AvatarURL,
	}, nil
}

func (s *oauthService) signInOAuthUser(ctx context.Context, oauthUser *models.OAuthUser) (*models.LoginResponse, error) {

	user := &models.User{
		Name:      oauthUser.Name,
		Email:     oauthUser.Email,
		Provider:  oauthUser.Provider,
		AvatarURL: oauthUser.AvatarURL,
	}

	if err := s.users.UpsertOAuthUser(ctx, user); err != nil {
		return nil, errors.DatabaseError("Failed to store user").WithError(err)
	}

	return issueToken(s.jwtKey, user)
}

func (s *oauthService) getJSON(ctx context.Context, url, accessToken string, dest any) error {

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(dest)
}
