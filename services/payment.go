package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/charge"
)

// StripeGateway charges card tokens through the Stripe charges API.
type StripeGateway struct {
	client *charge.Client
}

func NewStripeGateway(secretKey string) *StripeGateway {
	return &StripeGateway{
		client: &charge.Client{B: stripe.GetBackend(stripe.APIBackend), Key: secretKey},
	}
}

func (g *StripeGateway) Charge(ctx context.Context, req ChargeRequest) (string, error) {
	if req.Amount <= 0 {
		return "", fmt.Errorf("%w: order total must be positive", ErrValidation)
	}
	params := &stripe.ChargeParams{
		Amount:      stripe.Int64(minorUnits(req.Amount)),
		Currency:    stripe.String(strings.ToLower(req.Currency)),
		Source:      &stripe.SourceParams{Token: stripe.String(req.SourceToken)},
		Description: stripe.String("Order " + req.OrderNumber),
	}
	params.Context = ctx
	// Retries with the same token replay the original charge.
	params.SetIdempotencyKey(idempotencyKey(req))
	params.AddMetadata("order_id", req.OrderID)
	params.AddMetadata("order_number", req.OrderNumber)

	ch, err := g.client.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Type == stripe.ErrorTypeCard {
			return "", fmt.Errorf("%w: %s", ErrPaymentFailed, stripeErr.Msg)
		}
		return "", fmt.Errorf("stripe charge: %w", err)
	}
	return ch.ID, nil
}

func idempotencyKey(req ChargeRequest) string {
	return "order-" + req.OrderID + "-" + req.SourceToken
}

// minorUnits converts an amount to cents, rounding to the nearest unit.
func minorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
