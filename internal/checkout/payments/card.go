package payments

import (
	"strings"

	pkgerrors "github.com/buyfrescapp/frescapp-backend/pkg/errors"
)

const (
	minCardDigits = 13
	minCVCDigits  = 3
)

// CardInput is what the client typed into the payment form.
type CardInput struct {
	Number string `json:"number"`
	Expiry string `json:"expiry"`
	CVC    string `json:"cvc"`
}

// Card is a validated, normalized card ready for the gateway.
type Card struct {
	Number      string
	ExpiryMonth string
	ExpiryYear  string
	CVC         string
}

// Last4 returns the trailing digits used for receipts and logs.
func (c Card) Last4() string {
	if len(c.Number) < 4 {
		return c.Number
	}
	return c.Number[len(c.Number)-4:]
}

// NormalizeCard validates the raw form input. The number must carry at least
// thirteen digits after stripping spaces and dashes, the expiry must be
// MM/YY, and the CVC at least three digits. Out-of-range expiry months are
// clamped rather than rejected: 00 becomes 01 and anything above 12 becomes
// 12, matching how the storefront form has always behaved.
func NormalizeCard(input CardInput) (Card, error) {
	number := stripSeparators(input.Number)
	if len(number) < minCardDigits || !digitsOnly(number) {
		return Card{}, pkgerrors.New(pkgerrors.CodeValidation, "card number is invalid")
	}

	expiry := strings.TrimSpace(input.Expiry)
	parts := strings.Split(expiry, "/")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return Card{}, pkgerrors.New(pkgerrors.CodeValidation, "expiry must be MM/YY")
	}
	month, year := parts[0], parts[1]
	if !digitsOnly(month) || !digitsOnly(year) {
		return Card{}, pkgerrors.New(pkgerrors.CodeValidation, "expiry must be MM/YY")
	}
	switch {
	case month == "00":
		month = "01"
	case month > "12":
		month = "12"
	}

	cvc := strings.TrimSpace(input.CVC)
	if len(cvc) < minCVCDigits || !digitsOnly(cvc) {
		return Card{}, pkgerrors.New(pkgerrors.CodeValidation, "security code is invalid")
	}

	return Card{
		Number:      number,
		ExpiryMonth: month,
		ExpiryYear:  year,
		CVC:         cvc,
	}, nil
}

func stripSeparators(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r == ' ' || r == '-' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func digitsOnly(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
