package testutils

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/dreamworldhq/storefront/internal/api/middleware"
	"github.com/dreamworldhq/storefront/internal/models"
	"github.com/google/uuid"
)

// NewShopperRequest builds a request as the auth middleware would hand it to
// a handler: session claims and a discard logger in the context, path values
// set, and a JSON content type whenever a body is present.
func NewShopperRequest(method, target string, body io.Reader, userID uuid.UUID, pathParams map[string]string) *http.Request {
	req := NewAnonymousRequest(method, target, body, pathParams)

	claims := &models.Claims{UserID: userID, Email: "shopper@example.com"}
	ctx := context.WithValue(req.Context(), middleware.UserContextKey, claims)

	return req.WithContext(ctx)
}

// NewAnonymousRequest is NewShopperRequest without session claims, for
// exercising the unauthenticated paths of a handler.
func NewAnonymousRequest(method, target string, body io.Reader, pathParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for key, value := range pathParams {
		req.SetPathValue(key, value)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.WithValue(req.Context(), middleware.LoggerKey, logger)

	return req.WithContext(ctx)
}
