package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/buyfrescapp/frescapp-backend/internal/address"
	"github.com/buyfrescapp/frescapp-backend/internal/cart"
	"github.com/buyfrescapp/frescapp-backend/internal/checkout/payments"
	"github.com/buyfrescapp/frescapp-backend/internal/orders"
	"github.com/buyfrescapp/frescapp-backend/pkg/db/models"
	"github.com/buyfrescapp/frescapp-backend/pkg/enums"
	pkgerrors "github.com/buyfrescapp/frescapp-backend/pkg/errors"
	"github.com/buyfrescapp/frescapp-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubmitRequest carries everything needed to place an order.
type SubmitRequest struct {
	UserID         uuid.UUID
	AddressID      *uuid.UUID
	PaymentMethod  enums.PaymentMethod
	Card           *payments.CardInput
	IdempotencyKey string
}

// Confirmation is returned once an order has been placed.
type Confirmation struct {
	OrderID       uuid.UUID         `json:"order_id"`
	Status        enums.OrderStatus `json:"status"`
	SubtotalPesos int64             `json:"subtotal_pesos"`
	ItemCount     int               `json:"item_count"`
	Reference     string            `json:"payment_reference,omitempty"`
}

// ServiceParams groups dependencies for the checkout service.
type ServiceParams struct {
	Cart      cart.Service
	Addresses address.Service
	Orders    *orders.Repository
	Gateway   payments.Gateway
	Logger    *logger.Logger
}

// Service runs the checkout flow: validate the cart against the order
// minimum, resolve the delivery address, charge the payment and persist the
// order. A failed charge leaves the cart untouched so the shopper can retry.
type Service interface {
	Submit(ctx context.Context, req SubmitRequest) (Confirmation, error)
	Phase(userID uuid.UUID) enums.CheckoutPhase
	Close(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	cart      cart.Service
	addresses address.Service
	orders    *orders.Repository
	gateway   payments.Gateway
	logg      *logger.Logger
	sessions  *sessions
}

// NewService builds a checkout service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Cart == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart service is required")
	}
	if params.Addresses == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "address service is required")
	}
	if params.Orders == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "orders repo is required")
	}
	if params.Gateway == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment gateway is required")
	}
	return &service{
		cart:      params.Cart,
		addresses: params.Addresses,
		orders:    params.Orders,
		gateway:   params.Gateway,
		logg:      params.Logger,
		sessions:  newSessions(),
	}, nil
}

// Phase reports where the user's checkout session currently sits.
func (s *service) Phase(userID uuid.UUID) enums.CheckoutPhase {
	return s.sessions.phase(userID.String())
}

// Close acknowledges a successful checkout.
func (s *service) Close(_ context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	return s.sessions.close(userID.String())
}

// Submit places the order. Replays of an idempotency key that already
// produced an order return the original confirmation without charging again.
func (s *service) Submit(ctx context.Context, req SubmitRequest) (Confirmation, error) {
	if req.UserID == uuid.Nil {
		return Confirmation{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if req.IdempotencyKey == "" {
		return Confirmation{}, pkgerrors.New(pkgerrors.CodeValidation, "idempotency key is required")
	}
	if !req.PaymentMethod.IsValid() {
		return Confirmation{}, pkgerrors.New(pkgerrors.CodeValidation, "payment method is invalid")
	}

	if existing, err := s.orders.FindByIdempotencyKey(ctx, req.IdempotencyKey); err == nil {
		return confirmationFrom(existing), nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return Confirmation{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "idempotency lookup")
	}

	userKey := req.UserID.String()
	if err := s.sessions.beginSubmit(userKey); err != nil {
		return Confirmation{}, err
	}

	confirmation, err := s.submit(ctx, req)
	s.sessions.finishSubmit(userKey, err == nil)
	return confirmation, err
}

func (s *service) submit(ctx context.Context, req SubmitRequest) (Confirmation, error) {
	summary, err := s.cart.View(ctx, req.UserID.String())
	if err != nil {
		return Confirmation{}, err
	}
	if summary.ItemCount == 0 {
		return Confirmation{}, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	if !summary.MinimumMet {
		return Confirmation{}, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("order minimum of %d pesos not reached", summary.MinimumPesos))
	}

	if err := s.resolveAddress(ctx, req); err != nil {
		return Confirmation{}, err
	}

	var card *payments.Card
	if req.PaymentMethod == enums.PaymentMethodCard {
		if req.Card == nil {
			return Confirmation{}, pkgerrors.New(pkgerrors.CodeValidation, "card details are required")
		}
		normalized, err := payments.NormalizeCard(*req.Card)
		if err != nil {
			return Confirmation{}, err
		}
		card = &normalized
	}

	result, err := s.gateway.Charge(ctx, payments.ChargeRequest{
		UserID:      req.UserID,
		AmountPesos: summary.SubtotalPesos,
		Method:      req.PaymentMethod,
		Card:        card,
	})
	if err != nil {
		s.warn(ctx, req.UserID, "payment charge failed: "+err.Error())
		return Confirmation{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "payment failed")
	}

	order := buildOrder(req, summary)
	if err := s.orders.Create(ctx, &order); err != nil {
		// A unique violation here means a concurrent replay beat us to the
		// insert; surface the stored order instead of failing.
		if existing, lookupErr := s.orders.FindByIdempotencyKey(ctx, req.IdempotencyKey); lookupErr == nil {
			return confirmationFrom(existing), nil
		}
		return Confirmation{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist order")
	}

	if _, err := s.cart.Clear(ctx, req.UserID.String()); err != nil {
		s.warn(ctx, req.UserID, "cart clear after checkout failed: "+err.Error())
	}

	confirmation := confirmationFrom(order)
	confirmation.Reference = result.Reference
	return confirmation, nil
}

// resolveAddress enforces the address rule: shoppers with saved addresses
// must pick one, while a first-time shopper with an empty address book may
// check out without a selection.
func (s *service) resolveAddress(ctx context.Context, req SubmitRequest) error {
	if req.AddressID != nil {
		_, err := s.addresses.Get(ctx, req.UserID, *req.AddressID)
		return err
	}
	hasAny, err := s.addresses.HasAny(ctx, req.UserID)
	if err != nil {
		return err
	}
	if hasAny {
		return pkgerrors.New(pkgerrors.CodeValidation, "delivery address is required")
	}
	return nil
}

func (s *service) warn(ctx context.Context, userID uuid.UUID, msg string) {
	if s.logg == nil {
		return
	}
	ctx = s.logg.WithUserID(ctx, userID.String())
	s.logg.Warn(ctx, msg)
}

func buildOrder(req SubmitRequest, summary cart.Summary) models.Order {
	order := models.Order{
		ID:             uuid.New(),
		UserID:         req.UserID,
		AddressID:      req.AddressID,
		PaymentMethod:  req.PaymentMethod,
		Status:         enums.OrderStatusPlaced,
		SubtotalPesos:  summary.SubtotalPesos,
		ItemCount:      summary.ItemCount,
		IdempotencyKey: req.IdempotencyKey,
	}
	for _, line := range summary.Items {
		order.Items = append(order.Items, models.OrderLineItem{
			ID:             uuid.New(),
			OrderID:        order.ID,
			ProductID:      line.ProductID,
			Name:           line.Name,
			UnitPricePesos: line.UnitPricePesos,
			Quantity:       line.Quantity,
			LineTotalPesos: line.UnitPricePesos * int64(line.Quantity),
		})
	}
	return order
}

func confirmationFrom(order models.Order) Confirmation {
	return Confirmation{
		OrderID:       order.ID,
		Status:        order.Status,
		SubtotalPesos: order.SubtotalPesos,
		ItemCount:     order.ItemCount,
	}
}
