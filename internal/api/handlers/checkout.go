package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dreamworldhq/storefront/internal/api/middleware"
	"github.com/dreamworldhq/storefront/internal/errors"
	"github.com/dreamworldhq/storefront/internal/invoice"
	"github.com/dreamworldhq/storefront/internal/metrics"
	"github.com/dreamworldhq/storefront/internal/models"
	service "github.com/dreamworldhq/storefront/internal/services"
	"github.com/dreamworldhq/storefront/internal/utils"
	"github.com/dreamworldhq/storefront/internal/utils/response"
	"github.com/google/uuid"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
	generator       *invoice.Generator
}

func NewCheckoutHandler(checkoutService service.CheckoutService, generator *invoice.Generator) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		generator:       generator,
	}
}

// Submit runs the checkout for the authenticated shopper's cart. A rejected
// form comes back as an inline validation error; an accepted one returns the
// frozen snapshot plus the URL the invoice can be downloaded from.
func (h *CheckoutHandler) Submit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		var form models.PaymentForm

		if err := utils.DecodeJSONBody(r, &form); err != nil {
			response.Error(w, errors.BadRequestError(err.Error()))

			return
		}

		if form.Method == "" {
			form.Method = models.PaymentMethodCard
		}

		snapshot, err := h.checkoutService.Submit(r.Context(), claims.UserID, &form)
		if err != nil {
			logger.Warn("Checkout rejected", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusCreated, models.CheckoutResponse{
			Snapshot:   snapshot,
			InvoiceURL: fmt.Sprintf("/api/v1/checkout/%s/invoice", snapshot.ID),
		})

	}
}

// DownloadInvoice renders the invoice for a retained snapshot and serves it
// as a file download. Each call produces a fresh invoice number.
func (h *CheckoutHandler) DownloadInvoice() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		snapshotID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid snapshot ID"))

			return
		}

		snapshot, err := h.checkoutService.GetSnapshot(r.Context(), claims.UserID, snapshotID)
		if err != nil {
			response.Error(w, err)

			return
		}

		doc, err := h.generator.Generate(snapshot)
		if err != nil {
			logger.Error("Invoice generation failed", slog.String("snapshotId", snapshotID.String()), slog.String("error", err.Error()))
			response.Error(w, errors.InternalError("Failed to generate invoice").WithError(err))

			return
		}

		metrics.InvoicesGeneratedTotal.Inc()
		logger.Info("Invoice generated",
			slog.String("snapshotId", snapshotID.String()),
			slog.String("invoiceNumber", doc.Number))

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName))
		w.WriteHeader(http.StatusOK)
		w.Write(doc.Content)

	}
}
