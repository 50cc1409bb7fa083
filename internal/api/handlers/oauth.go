package handlers

import (
	"log/slog"
	"net/http"

	"github.com/dreamworldhq/storefront/internal/api/middleware"
	"github.com/dreamworldhq/storefront/internal/models"
	service "github.com/dreamworldhq/storefront/internal/services"
	"github.com/dreamworldhq/storefront/internal/utils"
	"github.com/dreamworldhq/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type OAuthHandler struct {
	oauthService service.OAuthService
	validator    *validator.Validate
}

func NewOAuthHandler(oauthService service.OAuthService) *OAuthHandler {
	return &OAuthHandler{oauthService: oauthService, validator: validator.New()}
}

// BeginGitHub issues a fresh state token and redirects the browser to the
// GitHub consent screen.
func (h *OAuthHandler) BeginGitHub() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		authURL, err := h.oauthService.BeginGitHub(r.Context())
		if err != nil {
			logger.Error("Failed to begin GitHub sign-in", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		http.Redirect(w, r, authURL, http.StatusTemporaryRedirect)
	}
}

// CompleteGitHub handles the provider callback. The code/state pair arrives
// as query parameters.
func (h *OAuthHandler) CompleteGitHub() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		code := r.URL.Query().Get("code")
		state := r.URL.Query().Get("state")

		resp, err := h.oauthService.CompleteGitHub(r.Context(), code, state)
		if err != nil {
			logger.Warn("GitHub sign-in failed", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("GitHub sign-in completed")
		response.WriteJson(w, http.StatusOK, resp)
	}
}

func (h *OAuthHandler) GoogleSignIn() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.GoogleSignInRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := h.oauthService.GoogleSignIn(r.Context(), req.AccessToken)
		if err != nil {
			logger.Warn("Google sign-in failed", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Google sign-in completed")
		response.WriteJson(w, http.StatusOK, resp)
	}
}
