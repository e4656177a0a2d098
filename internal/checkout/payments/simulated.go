package payments

import (
	"context"
	"errors"
	"time"

	"github.com/buyfrescapp/frescapp-backend/pkg/enums"
	"github.com/google/uuid"
)

// SimulatedGateway approves every well-formed charge after a configurable
// delay. It stands in until a real processor is wired up and keeps the
// checkout path honest about latency.
type SimulatedGateway struct {
	delay time.Duration
}

// NewSimulatedGateway builds the stub gateway.
func NewSimulatedGateway(delay time.Duration) *SimulatedGateway {
	return &SimulatedGateway{delay: delay}
}

// Charge waits out the configured delay and approves the payment. It fails
// only on malformed requests or a canceled context.
func (g *SimulatedGateway) Charge(ctx context.Context, req ChargeRequest) (ChargeResult, error) {
	if req.AmountPesos <= 0 {
		return ChargeResult{}, errors.New("charge amount must be positive")
	}
	if !req.Method.IsValid() {
		return ChargeResult{}, errors.New("unknown payment method")
	}
	if req.Method == enums.PaymentMethodCard && req.Card == nil {
		return ChargeResult{}, errors.New("card details required for card payments")
	}

	if g.delay > 0 {
		timer := time.NewTimer(g.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ChargeResult{}, ctx.Err()
		case <-timer.C:
		}
	}

	return ChargeResult{Reference: "sim-" + uuid.NewString()}, nil
}
