package models

import (
	"time"

	"github.com/google/uuid"
)

type PaymentMethod string

const (
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodPayPal PaymentMethod = "paypal"
	PaymentMethodCrypto PaymentMethod = "crypto"
)

// Label returns the human-readable form used on order records and invoices.
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentMethodPayPal:
		return "PayPal"
	case PaymentMethodCrypto:
		return "Cryptocurrency"
	default:
		return "Credit Card"
	}
}

// PaymentForm is the transient checkout input. It exists only for the
// duration of one checkout interaction and is never persisted.
type PaymentForm struct {
	Name    string        `json:"name"`
	Email   string        `json:"email"`
	Phone   string        `json:"phone"`
	Card    string        `json:"card"`
	Expiry  string        `json:"expiry"`
	CVC     string        `json:"cvc"`
	Address string        `json:"address"`
	City    string        `json:"city"`
	State   string        `json:"state"`
	ZipCode string        `json:"zip_code"`
	Country string        `json:"country"`
	Method  PaymentMethod `json:"payment_method"`
}

type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// OrderSnapshot is the immutable copy of the cart taken at the moment a
// checkout is submitted. Later cart mutations, including the clear that
// follows submission, cannot affect it. It feeds both the remote order
// payload and every invoice rendered for the purchase.
type OrderSnapshot struct {
	ID            uuid.UUID  `json:"id"`
	CustomerName  string     `json:"customer_name"`
	Email         string     `json:"email,omitempty"`
	Phone         string     `json:"phone,omitempty"`
	Address       string     `json:"address"`
	PaymentMethod string     `json:"payment_method"`
	Items         []LineItem `json:"items"`
	Totals        Totals     `json:"totals"`
	SubmittedAt   time.Time  `json:"submitted_at"`
}

type RemoteStatus string

const (
	RemoteStatusPending   RemoteStatus = "pending"
	RemoteStatusDelivered RemoteStatus = "delivered"
	RemoteStatusFailed    RemoteStatus = "failed"
)

// JournalEntry is the local record of a submitted order. The remote write to
// the back-office API is non-blocking; this row is what keeps a failed write
// from disappearing without trace.
type JournalEntry struct {
	ID           uuid.UUID    `json:"id"`
	SnapshotID   uuid.UUID    `json:"snapshot_id"`
	UserID       uuid.UUID    `json:"user_id"`
	Snapshot     []byte       `json:"-"`
	RemoteStatus RemoteStatus `json:"remote_status"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

type CheckoutResponse struct {
	Snapshot   *OrderSnapshot `json:"snapshot"`
	InvoiceURL string         `json:"invoice_url"`
}
