package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dreamworldhq/storefront/internal/api/handlers"
	appErrors "github.com/dreamworldhq/storefront/internal/errors"
	"github.com/dreamworldhq/storefront/internal/invoice"
	"github.com/dreamworldhq/storefront/internal/models"
	"github.com/dreamworldhq/storefront/internal/services/mocks"
	"github.com/dreamworldhq/storefront/internal/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupCheckoutTest() (*mocks.CheckoutService, *handlers.CheckoutHandler) {
	mockService := new(mocks.CheckoutService)
	generator := invoice.NewGenerator(invoice.Company{Name: "DreamWorld", Email: "billing@dreamworld.com"})
	handler := handlers.NewCheckoutHandler(mockService, generator)

	return mockService, handler
}

func sampleSnapshot() *models.OrderSnapshot {
	return &models.OrderSnapshot{
		ID:            uuid.New(),
		CustomerName:  "Jane Shopper",
		Address:       "1 Main St",
		PaymentMethod: "Credit Card",
		Items: []models.LineItem{
			{ProductID: "p1", Name: "Widget", UnitPrice: 100, Quantity: 2},
		},
		Totals:      models.Totals{Subtotal: 200, Tax: 16, Total: 216},
		SubmittedAt: time.Now(),
	}
}

func TestSubmitHandler(t *testing.T) {
	userID := uuid.New()

	t.Run("Success - Returns Snapshot And Invoice URL", func(t *testing.T) {
		// Arrange
		mockService, handler := setupCheckoutTest()
		body, _ := json.Marshal(models.PaymentForm{
			Name:    "Jane Shopper",
			Card:    "4242 4242 4242 4242",
			Expiry:  "12/27",
			CVC:     "123",
			Address: "1 Main St",
		})
		req := testutils.NewShopperRequest(http.MethodPost, "/api/v1/checkout", bytes.NewReader(body), userID, nil)
		recorder := httptest.NewRecorder()

		snapshot := sampleSnapshot()
		mockService.On("Submit", mock.Anything, userID, mock.MatchedBy(func(form *models.PaymentForm) bool {
			// an omitted method defaults to card
			return form.Method == models.PaymentMethodCard
		})).Return(snapshot, nil).Once()

		// Act
		handler.Submit()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusCreated, recorder.Code)

		var resp struct {
			Success bool                    `json:"success"`
			Data    models.CheckoutResponse `json:"data"`
		}
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
		assert.True(t, resp.Success)
		assert.Equal(t, snapshot.ID, resp.Data.Snapshot.ID)
		assert.Equal(t, "/api/v1/checkout/"+snapshot.ID.String()+"/invoice", resp.Data.InvoiceURL)
		mockService.AssertExpectations(t)
	})

	t.Run("Failure - Validation Rejection Passes Through", func(t *testing.T) {
		// Arrange
		mockService, handler := setupCheckoutTest()
		body := []byte(`{"name":"Jane","card":"1234"}`)
		req := testutils.NewShopperRequest(http.MethodPost, "/api/v1/checkout", bytes.NewReader(body), userID, nil)
		recorder := httptest.NewRecorder()
		mockService.On("Submit", mock.Anything, userID, mock.Anything).Return(nil, appErrors.InvalidCardError("Invalid card details")).Once()

		// Act
		handler.Submit()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		resp := decodeAPIResponse(t, recorder)
		assert.False(t, resp.Success)
		assert.Equal(t, appErrors.ErrCodeInvalidCard, resp.Error.Code)
	})

	t.Run("Failure - No Claims", func(t *testing.T) {
		// Arrange
		mockService, handler := setupCheckoutTest()
		req := testutils.NewAnonymousRequest(http.MethodPost, "/api/v1/checkout", bytes.NewReader([]byte(`{}`)), nil)
		recorder := httptest.NewRecorder()

		// Act
		handler.Submit()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		mockService.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDownloadInvoiceHandler(t *testing.T) {
	userID := uuid.New()

	t.Run("Success - Serves PDF Attachment", func(t *testing.T) {
		// Arrange
		mockService, handler := setupCheckoutTest()
		snapshot := sampleSnapshot()
		req := testutils.NewShopperRequest(http.MethodGet, "/api/v1/checkout/"+snapshot.ID.String()+"/invoice", nil, userID, map[string]string{"id": snapshot.ID.String()})
		recorder := httptest.NewRecorder()
		mockService.On("GetSnapshot", mock.Anything, userID, snapshot.ID).Return(snapshot, nil).Once()

		// Act
		handler.DownloadInvoice()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "application/pdf", recorder.Header().Get("Content-Type"))
		assert.Contains(t, recorder.Header().Get("Content-Disposition"), "attachment")
		assert.Contains(t, recorder.Header().Get("Content-Disposition"), "DreamWorld_Bill_Jane_Shopper_")
		assert.True(t, bytes.HasPrefix(recorder.Body.Bytes(), []byte("%PDF")))
		mockService.AssertExpectations(t)
	})

	t.Run("Failure - Malformed Snapshot ID", func(t *testing.T) {
		// Arrange
		mockService, handler := setupCheckoutTest()
		req := testutils.NewShopperRequest(http.MethodGet, "/api/v1/checkout/not-a-uuid/invoice", nil, userID, map[string]string{"id": "not-a-uuid"})
		recorder := httptest.NewRecorder()

		// Act
		handler.DownloadInvoice()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		mockService.AssertNotCalled(t, "GetSnapshot", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Snapshot Expired", func(t *testing.T) {
		// Arrange
		mockService, handler := setupCheckoutTest()
		snapshotID := uuid.New()
		req := testutils.NewShopperRequest(http.MethodGet, "/api/v1/checkout/"+snapshotID.String()+"/invoice", nil, userID, map[string]string{"id": snapshotID.String()})
		recorder := httptest.NewRecorder()
		mockService.On("GetSnapshot", mock.Anything, userID, snapshotID).Return(nil, appErrors.NotFoundError("Order snapshot not found")).Once()

		// Act
		handler.DownloadInvoice()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, recorder.Code)
		resp := decodeAPIResponse(t, recorder)
		assert.Equal(t, appErrors.ErrCodeNotFound, resp.Error.Code)
	})
}
