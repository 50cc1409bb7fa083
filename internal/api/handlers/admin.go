package handlers

import (
	"log/slog"
	"net/http"

	"github.com/dreamworldhq/storefront/internal/api/middleware"
	"github.com/dreamworldhq/storefront/internal/errors"
	"github.com/dreamworldhq/storefront/internal/utils"
	"github.com/dreamworldhq/storefront/internal/utils/response"
	"github.com/dreamworldhq/storefront/pkg/backoffice"
)

// AdminHandler proxies the back-office CRUD screens. Every admin resource
// follows the same list/get/create/update/delete conventions, so one handler
// covers orders, products, applicants, staff and projects; the resource name
// comes from the route.
type AdminHandler struct {
	backOffice backoffice.Client
}

func NewAdminHandler(backOffice backoffice.Client) *AdminHandler {
	return &AdminHandler{backOffice: backOffice}
}

var adminResources = map[string]bool{
	backoffice.ResourceOrders:     true,
	backoffice.ResourceProducts:   true,
	backoffice.ResourceApplicants: true,
	backoffice.ResourceStaff:      true,
	backoffice.ResourceProjects:   true,
}

func resourceFromRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	resource := r.PathValue("resource")
	if !adminResources[resource] {
		response.Error(w, errors.NotFoundError("Unknown admin resource"))

		return "", false
	}

	return resource, true
}

func (h *AdminHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		resource, ok := resourceFromRequest(w, r)
		if !ok {
			return
		}

		records, err := h.backOffice.List(r.Context(), resource)
		if err != nil {
			logger.Error("Admin list failed", slog.String("resource", resource), slog.String("error", err.Error()))
			response.Error(w, errors.ThirdPartyError("Back office is unavailable"))

			return
		}

		response.Success(w, http.StatusOK, records)
	}
}

func (h *AdminHandler) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		resource, ok := resourceFromRequest(w, r)
		if !ok {
			return
		}

		id := r.PathValue("id")

		record, err := h.backOffice.Get(r.Context(), resource, id)
		if err != nil {
			logger.Warn("Admin record lookup failed", slog.String("resource", resource), slog.String("id", id), slog.String("error", err.Error()))
			response.Error(w, errors.NotFoundError("Record not found"))

			return
		}

		response.Success(w, http.StatusOK, record)
	}
}

func (h *AdminHandler) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		resource, ok := resourceFromRequest(w, r)
		if !ok {
			return
		}

		var record map[string]any

		if err := utils.DecodeJSONBody(r, &record); err != nil {
			response.Error(w, err)

			return
		}

		created, err := h.backOffice.Create(r.Context(), resource, record)
		if err != nil {
			logger.Error("Admin create failed", slog.String("resource", resource), slog.String("error", err.Error()))
			response.Error(w, errors.ThirdPartyError("Back office is unavailable"))

			return
		}

		logger.Info("Admin record created", slog.String("resource", resource))
		response.Success(w, http.StatusCreated, created)
	}
}

func (h *AdminHandler) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		resource, ok := resourceFromRequest(w, r)
		if !ok {
			return
		}

		id := r.PathValue("id")

		var record map[string]any

		if err := utils.DecodeJSONBody(r, &record); err != nil {
			response.Error(w, err)

			return
		}

		updated, err := h.backOffice.Update(r.Context(), resource, id, record)
		if err != nil {
			logger.Error("Admin update failed", slog.String("resource", resource), slog.String("id", id), slog.String("error", err.Error()))
			response.Error(w, errors.ThirdPartyError("Back office is unavailable"))

			return
		}

		logger.Info("Admin record updated", slog.String("resource", resource), slog.String("id", id))
		response.Success(w, http.StatusOK, updated)
	}
}

func (h *AdminHandler) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		resource, ok := resourceFromRequest(w, r)
		if !ok {
			return
		}

		id := r.PathValue("id")

		if err := h.backOffice.Delete(r.Context(), resource, id); err != nil {
			logger.Error("Admin delete failed", slog.String("resource", resource), slog.String("id", id), slog.String("error", err.Error()))
			response.Error(w, errors.ThirdPartyError("Back office is unavailable"))

			return
		}

		logger.Info("Admin record deleted", slog.String("resource", resource), slog.String("id", id))
		response.Success(w, http.StatusOK, map[string]string{"id": id, "status": "deleted"})
	}
}
