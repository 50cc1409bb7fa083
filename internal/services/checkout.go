package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dreamworldhq/storefront/internal/errors"
	"github.com/dreamworldhq/storefront/internal/metrics"
	"github.com/dreamworldhq/storefront/internal/models"
	repository "github.com/dreamworldhq/storefront/internal/repositories"
	"github.com/dreamworldhq/storefront/pkg/backoffice"
	"github.com/dreamworldhq/storefront/pkg/sendgrid"
	"github.com/google/uuid"
)

// CheckoutService turns a cart plus a validated payment form into an
// immutable order snapshot. The snapshot drives the remote order write, the
// confirmation email and every invoice rendered for the purchase.
type CheckoutService interface {
	Submit(ctx context.Context, userID uuid.UUID, form *models.PaymentForm) (*models.OrderSnapshot, error)
	GetSnapshot(ctx context.Context, userID, snapshotID uuid.UUID) (*models.OrderSnapshot, error)
}

type checkoutService struct {
	cartRepo     repository.CartRepository
	snapshotRepo repository.SnapshotRepository
	journalRepo  repository.OrderJournalRepository
	backOffice   backoffice.Client
	email        sendgrid.EmailService

	taxRate          float64
	submitTimeout    time.Duration
	confirmationFrom string

	now   func() time.Time
	async func(fn func())
}

func NewCheckoutService(
	cartRepo repository.CartRepository,
	snapshotRepo repository.SnapshotRepository,
	journalRepo repository.OrderJournalRepository,
	backOffice backoffice.Client,
	email sendgrid.EmailService,
	taxRate float64,
	submitTimeout time.Duration,
	confirmationFrom string,
) CheckoutService {
	return &checkoutService{
		cartRepo:         cartRepo,
		snapshotRepo:     snapshotRepo,
		journalRepo:      journalRepo,
		backOffice:       backOffice,
		email:            email,
		taxRate:          taxRate,
		submitTimeout:    submitTimeout,
		confirmationFrom: confirmationFrom,
		now:              time.Now,
		async:            func(fn func()) { go fn() },
	}
}

// Submit runs the checkout flow:
//
//  1. validate the payment form; a rejection leaves the cart untouched,
//  2. freeze the cart into an OrderSnapshot with recomputed totals,
//  3. journal the snapshot locally, then send it to the back-office API
//     without blocking on the outcome; a failed remote write is recorded
//     in the journal and logged, never surfaced to the shopper,
//  4. clear the cart,
//  5. retain the snapshot for invoice regeneration and return it.
func (s *checkoutService) Submit(ctx context.Context, userID uuid.UUID, form *models.PaymentForm) (*models.OrderSnapshot, error) {

	logger := slog.Default().With(slog.String("userId", userID.String()))

	if err := ValidatePaymentForm(form); err != nil {
		metrics.CheckoutsTotal.WithLabelValues("rejected").Inc()

		return nil, err
	}

	cart, err := s.cartRepo.Load(ctx, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to load cart").WithError(err)
	}

	if len(cart.Items) == 0 {
		metrics.CheckoutsTotal.WithLabelValues("rejected").Inc()

		return nil, errors.BadRequestError("Cannot check out an empty cart")
	}

	// freeze the cart: the snapshot owns its own copy of the items, so the
	// clear below (or any later mutation) cannot reach it
	items := make([]models.LineItem, len(cart.Items))
	copy(items, cart.Items)

	snapshot := &models.OrderSnapshot{
		ID:            uuid.New(),
		CustomerName:  form.Name,
		Email:         form.Email,
		Phone:         form.Phone,
		Address:       form.Address,
		PaymentMethod: form.Method.Label(),
		Items:         items,
		Totals:        ComputeTotals(items, s.taxRate),
		SubmittedAt:   s.now(),
	}

	s.journalSnapshot(ctx, logger, userID, snapshot)

	s.async(func() { s.submitRemote(snapshot) })

	if err := s.cartRepo.Save(ctx, userID, models.NewCart()); err != nil {
		// the order is already frozen and journaled; a stale cart is the
		// lesser failure and the shopper can clear it by hand
		logger.Error("Failed to clear cart after checkout", slog.String("error", err.Error()))
	}

	if err := s.snapshotRepo.Store(ctx, userID, snapshot); err != nil {
		logger.Error("Failed to retain order snapshot", slog.String("error", err.Error()))
	}

	if form.Email != "" {
		s.async(func() { s.sendConfirmation(snapshot) })
	}

	metrics.CheckoutsTotal.WithLabelValues("accepted").Inc()
	logger.Info("Checkout accepted",
		slog.String("snapshotId", snapshot.ID.String()),
		slog.Int("items", len(snapshot.Items)),
		slog.Float64("total", snapshot.Totals.Total))

	return snapshot, nil
}

func (s *checkoutService) GetSnapshot(ctx context.Context, userID, snapshotID uuid.UUID) (*models.OrderSnapshot, error) {

	snapshot, err := s.snapshotRepo.Get(ctx, userID, snapshotID)
	if err != nil {
		return nil, errors.NotFoundError("Order snapshot not found").WithError(err)
	}

	return snapshot, nil
}

func (s *checkoutService) journalSnapshot(ctx context.Context, logger *slog.Logger, userID uuid.UUID, snapshot *models.OrderSnapshot) {

	data, err := json.Marshal(snapshot)
	if err != nil {
		logger.Error("Failed to marshal snapshot for journal", slog.String("error", err.Error()))

		return
	}

	entry := &models.JournalEntry{
		SnapshotID:   snapshot.ID,
		UserID:       userID,
		Snapshot:     data,
		RemoteStatus: models.RemoteStatusPending,
	}

	if err := s.journalRepo.Create(ctx, entry); err != nil {
		logger.Error("Failed to journal order", slog.String("error", err.Error()))
	}
}

// submitRemote performs the non-blocking order write. It runs detached from
// the request with its own bounded context.
func (s *checkoutService) submitRemote(snapshot *models.OrderSnapshot) {

	ctx, cancel := context.WithTimeout(context.Background(), s.submitTimeout)
	defer cancel()

	order := &backoffice.Order{
		Customer:      snapshot.CustomerName,
		Email:         snapshot.Email,
		Phone:         snapshot.Phone,
		Address:       snapshot.Address,
		Items:         make([]backoffice.OrderItem, 0, len(snapshot.Items)),
		Total:         snapshot.Totals.Total,
		Date:          snapshot.SubmittedAt.Format("2006-01-02"),
		Status:        "pending",
		PaymentMethod: snapshot.PaymentMethod,
	}

	for _, item := range snapshot.Items {
		order.Items = append(order.Items, backoffice.OrderItem{Name: item.Name, Qty: item.Quantity})
	}

	status := models.RemoteStatusDelivered
	outcome := "delivered"

	if _, err := s.backOffice.CreateOrder(ctx, order); err != nil {
		slog.Error("Remote order write failed",
			slog.String("snapshotId", snapshot.ID.String()),
			slog.String("error", err.Error()))

		status = models.RemoteStatusFailed
		outcome = "failed"
	}

	metrics.RemoteOrderWritesTotal.WithLabelValues(outcome).Inc()

	if err := s.journalRepo.UpdateRemoteStatus(ctx, snapshot.ID, status); err != nil {
		slog.Error("Failed to update journal status",
			slog.String("snapshotId", snapshot.ID.String()),
			slog.String("error", err.Error()))
	}
}

func (s *checkoutService) sendConfirmation(snapshot *models.OrderSnapshot) {

	ctx, cancel := context.WithTimeout(context.Background(), s.submitTimeout)
	defer cancel()

	req := &models.EmailNotificationRequest{
		From:    s.confirmationFrom,
		To:      snapshot.Email,
		Subject: "Your order confirmation",
		Content: fmt.Sprintf("Thank you for your purchase, %s! Your order total is $%.2f.",
			snapshot.CustomerName, snapshot.Totals.Total),
	}

	if err := s.email.Send(ctx, req); err != nil {
		slog.Warn("Failed to send order confirmation email",
			slog.String("snapshotId", snapshot.ID.String()),
			slog.String("error", err.Error()))
	}
}
