package enums

import "fmt"

// CheckoutPhase tracks where a checkout session sits in its linear flow.
type CheckoutPhase string

const (
	CheckoutPhaseIdle       CheckoutPhase = "idle"
	CheckoutPhaseSubmitting CheckoutPhase = "submitting"
	CheckoutPhaseSuccess    CheckoutPhase = "success"
	CheckoutPhaseClosed     CheckoutPhase = "closed"
)

var validCheckoutPhases = []CheckoutPhase{
	CheckoutPhaseIdle,
	CheckoutPhaseSubmitting,
	CheckoutPhaseSuccess,
	CheckoutPhaseClosed,
}

// String implements fmt.Stringer.
func (c CheckoutPhase) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CheckoutPhase.
func (c CheckoutPhase) IsValid() bool {
	for _, candidate := range validCheckoutPhases {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCheckoutPhase converts raw input into a CheckoutPhase.
func ParseCheckoutPhase(value string) (CheckoutPhase, error) {
	for _, candidate := range validCheckoutPhases {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid checkout phase %q", value)
}
