package payments

import (
	"context"

	"github.com/buyfrescapp/frescapp-backend/pkg/enums"
	"github.com/google/uuid"
)

// ChargeRequest carries everything the gateway needs to attempt a payment.
// Card is nil for cash on delivery.
type ChargeRequest struct {
	UserID      uuid.UUID
	AmountPesos int64
	Method      enums.PaymentMethod
	Card        *Card
}

// ChargeResult reports the outcome of a successful charge attempt.
type ChargeResult struct {
	Reference string
}

// Gateway abstracts the payment processor so checkout does not care which
// one is wired in.
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (ChargeResult, error)
}
