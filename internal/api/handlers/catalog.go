package handlers

import (
	"log/slog"
	"net/http"

	"github.com/dreamworldhq/storefront/internal/api/middleware"
	"github.com/dreamworldhq/storefront/internal/errors"
	"github.com/dreamworldhq/storefront/internal/utils/response"
	"github.com/dreamworldhq/storefront/pkg/backoffice"
)

// CatalogHandler serves the public product listing straight off the
// back-office API. The storefront does not own product data.
type CatalogHandler struct {
	backOffice backoffice.Client
}

func NewCatalogHandler(backOffice backoffice.Client) *CatalogHandler {
	return &CatalogHandler{backOffice: backOffice}
}

func (h *CatalogHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		products, err := h.backOffice.ListProducts(r.Context())
		if err != nil {
			logger.Error("Failed to list products", slog.String("error", err.Error()))
			response.Error(w, errors.ThirdPartyError("Product catalog is unavailable"))

			return
		}

		response.Success(w, http.StatusOK, products)
	}
}

func (h *CatalogHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id := r.PathValue("id")
		if id == "" {
			response.Error(w, errors.BadRequestError("Product id is required"))

			return
		}

		product, err := h.backOffice.GetProduct(r.Context(), id)
		if err != nil {
			logger.Warn("Product lookup failed", slog.String("productId", id), slog.String("error", err.Error()))
			response.Error(w, errors.NotFoundError("Product not found"))

			return
		}

		response.Success(w, http.StatusOK, product)
	}
}
