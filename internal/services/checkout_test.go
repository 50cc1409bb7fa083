package service

import (
	"context"
	"errors"
	"testing"
	"time"

	appErrors "github.com/dreamworldhq/storefront/internal/errors"
	"github.com/dreamworldhq/storefront/internal/models"
	"github.com/dreamworldhq/storefront/internal/repositories/mocks"
	"github.com/dreamworldhq/storefront/pkg/backoffice"
	backofficeMocks "github.com/dreamworldhq/storefront/pkg/backoffice/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockEmailService struct {
	mock.Mock
}

func (m *mockEmailService) Send(ctx context.Context, req *models.EmailNotificationRequest) error {
	args := m.Called(ctx, req)

	return args.Error(0)
}

type checkoutFixture struct {
	cartRepo     *mocks.CartRepository
	snapshotRepo *mocks.SnapshotRepository
	journalRepo  *mocks.OrderJournalRepository
	backOffice   *backofficeMocks.Client
	email        *mockEmailService
	service      *checkoutService
}

// newCheckoutFixture wires a checkout service whose fire-and-forget work
// runs inline and whose clock is frozen, so every side effect is observable
// before the test asserts.
func newCheckoutFixture() *checkoutFixture {
	f := &checkoutFixture{
		cartRepo:     &mocks.CartRepository{},
		snapshotRepo: &mocks.SnapshotRepository{},
		journalRepo:  &mocks.OrderJournalRepository{},
		backOffice:   &backofficeMocks.Client{},
		email:        &mockEmailService{},
	}

	svc := NewCheckoutService(f.cartRepo, f.snapshotRepo, f.journalRepo, f.backOffice, f.email, DefaultTaxRate, time.Second, "billing@dreamworld.com")
	f.service = svc.(*checkoutService)
	f.service.now = func() time.Time { return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC) }
	f.service.async = func(fn func()) { fn() }

	return f
}

func checkoutForm() *models.PaymentForm {
	return &models.PaymentForm{
		Name:    "Jane Shopper",
		Email:   "jane@example.com",
		Phone:   "555-0100",
		Card:    "4242 4242 4242 4242",
		Expiry:  "12/27",
		CVC:     "123",
		Address: "1 Main St",
		Method:  models.PaymentMethodCard,
	}
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	filledCart := func() *models.Cart {
		cart := models.NewCart()
		cart.Items = []models.LineItem{
			{ProductID: "p1", Name: "Widget", UnitPrice: 100, Quantity: 2},
			{ProductID: "p2", Name: "Gadget", UnitPrice: 50, Quantity: 1},
		}

		return cart
	}

	t.Run("Success - Full Flow", func(t *testing.T) {
		// Arrange
		f := newCheckoutFixture()
		f.cartRepo.On("Load", ctx, userID).Return(filledCart(), nil).Once()
		f.journalRepo.On("Create", ctx, mock.AnythingOfType("*models.JournalEntry")).Return(nil).Once()
		f.backOffice.On("CreateOrder", mock.Anything, mock.AnythingOfType("*backoffice.Order")).Return(&backoffice.Order{ID: "42"}, nil).Once()
		f.journalRepo.On("UpdateRemoteStatus", mock.Anything, mock.AnythingOfType("uuid.UUID"), models.RemoteStatusDelivered).Return(nil).Once()
		f.cartRepo.On("Save", ctx, userID, mock.MatchedBy(func(cart *models.Cart) bool {
			return len(cart.Items) == 0
		})).Return(nil).Once()
		f.snapshotRepo.On("Store", ctx, userID, mock.AnythingOfType("*models.OrderSnapshot")).Return(nil).Once()
		f.email.On("Send", mock.Anything, mock.AnythingOfType("*models.EmailNotificationRequest")).Return(nil).Once()

		// Act
		snapshot, err := f.service.Submit(ctx, userID, checkoutForm())

		// Assert
		assert.NoError(t, err)
		assert.NotNil(t, snapshot)
		assert.Equal(t, "Jane Shopper", snapshot.CustomerName)
		assert.Equal(t, "Credit Card", snapshot.PaymentMethod)
		assert.Len(t, snapshot.Items, 2)
		assert.InDelta(t, 250.0, snapshot.Totals.Subtotal, 1e-9)
		assert.InDelta(t, 20.0, snapshot.Totals.Tax, 1e-9)
		assert.InDelta(t, 270.0, snapshot.Totals.Total, 1e-9)
		assert.Equal(t, time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC), snapshot.SubmittedAt)
		f.cartRepo.AssertExpectations(t)
		f.journalRepo.AssertExpectations(t)
		f.backOffice.AssertExpectations(t)
		f.snapshotRepo.AssertExpectations(t)
		f.email.AssertExpectations(t)
	})

	t.Run("Success - Remote Order Payload", func(t *testing.T) {
		// Arrange
		f := newCheckoutFixture()
		f.cartRepo.On("Load", ctx, userID).Return(filledCart(), nil).Once()
		f.journalRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		f.backOffice.On("CreateOrder", mock.Anything, mock.MatchedBy(func(order *backoffice.Order) bool {
			return order.Customer == "Jane Shopper" &&
				order.Status == "pending" &&
				order.Date == "2026-08-30" &&
				order.PaymentMethod == "Credit Card" &&
				len(order.Items) == 2 &&
				order.Items[0].Name == "Widget" && order.Items[0].Qty == 2
		})).Return(&backoffice.Order{ID: "42"}, nil).Once()
		f.journalRepo.On("UpdateRemoteStatus", mock.Anything, mock.Anything, models.RemoteStatusDelivered).Return(nil).Once()
		f.cartRepo.On("Save", ctx, userID, mock.Anything).Return(nil).Once()
		f.snapshotRepo.On("Store", ctx, userID, mock.Anything).Return(nil).Once()
		f.email.On("Send", mock.Anything, mock.Anything).Return(nil).Once()

		// Act
		_, err := f.service.Submit(ctx, userID, checkoutForm())

		// Assert
		assert.NoError(t, err)
		f.backOffice.AssertExpectations(t)
	})

	t.Run("Success - Remote Failure Does Not Surface", func(t *testing.T) {
		// Arrange
		f := newCheckoutFixture()
		f.cartRepo.On("Load", ctx, userID).Return(filledCart(), nil).Once()
		f.journalRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		f.backOffice.On("CreateOrder", mock.Anything, mock.Anything).Return(nil, errors.New("back office down")).Once()
		f.journalRepo.On("UpdateRemoteStatus", mock.Anything, mock.Anything, models.RemoteStatusFailed).Return(nil).Once()
		f.cartRepo.On("Save", ctx, userID, mock.Anything).Return(nil).Once()
		f.snapshotRepo.On("Store", ctx, userID, mock.Anything).Return(nil).Once()
		f.email.On("Send", mock.Anything, mock.Anything).Return(nil).Once()

		// Act
		snapshot, err := f.service.Submit(ctx, userID, checkoutForm())

		// Assert
		assert.NoError(t, err)
		assert.NotNil(t, snapshot)
		f.journalRepo.AssertExpectations(t)
	})

	t.Run("Success - Snapshot Isolated From Cart Clear", func(t *testing.T) {
		// Arrange
		f := newCheckoutFixture()
		cart := filledCart()
		f.cartRepo.On("Load", ctx, userID).Return(cart, nil).Once()
		f.journalRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		f.backOffice.On("CreateOrder", mock.Anything, mock.Anything).Return(&backoffice.Order{ID: "42"}, nil).Once()
		f.journalRepo.On("UpdateRemoteStatus", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
		f.cartRepo.On("Save", ctx, userID, mock.Anything).Return(nil).Once()
		f.snapshotRepo.On("Store", ctx, userID, mock.Anything).Return(nil).Once()
		f.email.On("Send", mock.Anything, mock.Anything).Return(nil).Once()

		// Act
		snapshot, err := f.service.Submit(ctx, userID, checkoutForm())
		cart.Items[0].Quantity = 99
		cart.Items = cart.Items[:0]

		// Assert
		assert.NoError(t, err)
		assert.Len(t, snapshot.Items, 2)
		assert.Equal(t, 2, snapshot.Items[0].Quantity)
	})

	t.Run("Success - No Email Means No Confirmation", func(t *testing.T) {
		// Arrange
		f := newCheckoutFixture()
		form := checkoutForm()
		form.Email = ""
		f.cartRepo.On("Load", ctx, userID).Return(filledCart(), nil).Once()
		f.journalRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		f.backOffice.On("CreateOrder", mock.Anything, mock.Anything).Return(&backoffice.Order{ID: "42"}, nil).Once()
		f.journalRepo.On("UpdateRemoteStatus", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
		f.cartRepo.On("Save", ctx, userID, mock.Anything).Return(nil).Once()
		f.snapshotRepo.On("Store", ctx, userID, mock.Anything).Return(nil).Once()

		// Act
		_, err := f.service.Submit(ctx, userID, form)

		// Assert
		assert.NoError(t, err)
		f.email.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Invalid Form Leaves Cart Untouched", func(t *testing.T) {
		// Arrange
		f := newCheckoutFixture()
		form := checkoutForm()
		form.Card = "1234"

		// Act
		snapshot, err := f.service.Submit(ctx, userID, form)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, snapshot)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeInvalidCard, appErr.Code)
		f.cartRepo.AssertNotCalled(t, "Load", mock.Anything, mock.Anything)
		f.cartRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
		f.backOffice.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Empty Cart", func(t *testing.T) {
		// Arrange
		f := newCheckoutFixture()
		f.cartRepo.On("Load", ctx, userID).Return(models.NewCart(), nil).Once()

		// Act
		snapshot, err := f.service.Submit(ctx, userID, checkoutForm())

		// Assert
		assert.Error(t, err)
		assert.Nil(t, snapshot)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeBadRequest, appErr.Code)
		f.cartRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Success - Confirmation Uses Configured Sender", func(t *testing.T) {
		// Arrange
		f := newCheckoutFixture()
		f.cartRepo.On("Load", ctx, userID).Return(filledCart(), nil).Once()
		f.journalRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		f.backOffice.On("CreateOrder", mock.Anything, mock.Anything).Return(&backoffice.Order{ID: "42"}, nil).Once()
		f.journalRepo.On("UpdateRemoteStatus", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
		f.cartRepo.On("Save", ctx, userID, mock.Anything).Return(nil).Once()
		f.snapshotRepo.On("Store", ctx, userID, mock.Anything).Return(nil).Once()
		f.email.On("Send", mock.Anything, mock.MatchedBy(func(req *models.EmailNotificationRequest) bool {
			return req.From == "billing@dreamworld.com"
		})).Return(nil).Once()

		// Act
		_, err := f.service.Submit(ctx, userID, checkoutForm())

		// Assert
		assert.NoError(t, err)
		f.email.AssertExpectations(t)
	})

	t.Run("Success - Journal Failure Does Not Block Checkout", func(t *testing.T) {
		// Arrange
		f := newCheckoutFixture()
		f.cartRepo.On("Load", ctx, userID).Return(filledCart(), nil).Once()
		f.journalRepo.On("Create", ctx, mock.Anything).Return(errors.New("db down")).Once()
		f.backOffice.On("CreateOrder", mock.Anything, mock.Anything).Return(&backoffice.Order{ID: "42"}, nil).Once()
		f.journalRepo.On("UpdateRemoteStatus", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
		f.cartRepo.On("Save", ctx, userID, mock.Anything).Return(nil).Once()
		f.snapshotRepo.On("Store", ctx, userID, mock.Anything).Return(nil).Once()
		f.email.On("Send", mock.Anything, mock.Anything).Return(nil).Once()

		// Act
		snapshot, err := f.service.Submit(ctx, userID, checkoutForm())

		// Assert
		assert.NoError(t, err)
		assert.NotNil(t, snapshot)
	})
}

func TestGetSnapshot(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	snapshotID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		f := newCheckoutFixture()
		expected := &models.OrderSnapshot{ID: snapshotID, CustomerName: "Jane Shopper"}
		f.snapshotRepo.On("Get", ctx, userID, snapshotID).Return(expected, nil).Once()

		// Act
		snapshot, err := f.service.GetSnapshot(ctx, userID, snapshotID)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, expected, snapshot)
		f.snapshotRepo.AssertExpectations(t)
	})

	t.Run("Failure - Expired Or Unknown", func(t *testing.T) {
		// Arrange
		f := newCheckoutFixture()
		f.snapshotRepo.On("Get", ctx, userID, snapshotID).Return(nil, errors.New("not found")).Once()

		// Act
		snapshot, err := f.service.GetSnapshot(ctx, userID, snapshotID)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, snapshot)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}
