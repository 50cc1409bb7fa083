package service

import (
	"unicode"

	"github.com/dreamworldhq/storefront/internal/errors"
	"github.com/dreamworldhq/storefront/internal/models"
)

const (
	minCardDigits = 16
	minCVCDigits  = 3
)

// ValidatePaymentForm is the advisory client-side gate before submission.
// It checks presence and length only; no Luhn check or issuer lookup is
// performed. A nil return means the caller may proceed.
func ValidatePaymentForm(form *models.PaymentForm) error {

	if form.Method == models.PaymentMethodCard {

		required := []struct {
			name  string
			value string
		}{
			{"name", form.Name},
			{"card", form.Card},
			{"expiry", form.Expiry},
			{"cvc", form.CVC},
			{"address", form.Address},
		}

		for _, field := range required {
			if field.value == "" {
				return errors.MissingFieldError("Please fill in all fields").WithDetail("missing field: " + field.name)
			}
		}

		if countDigits(form.Card) < minCardDigits {
			return errors.InvalidCardError("Invalid card details")
		}

		if countDigits(form.CVC) < minCVCDigits {
			return errors.InvalidCVCError("Invalid card details")
		}

		return nil
	}

	// paypal and crypto collect no card fields
	if form.Name == "" {
		return errors.MissingFieldError("Please fill in all fields").WithDetail("missing field: name")
	}

	if form.Address == "" {
		return errors.MissingFieldError("Please fill in all fields").WithDetail("missing field: address")
	}

	return nil
}

func countDigits(s string) int {
	n := 0

	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}

	return n
}
