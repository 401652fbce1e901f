package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/charge"
	"github.com/stripe/stripe-go/v72/form"
)

// stripeBackend answers charge creation without the network.
type stripeBackend struct {
	err   error
	calls []*stripe.ChargeParams
}

func (b *stripeBackend) Call(_, _, _ string, params stripe.ParamsContainer, v stripe.LastResponseSetter) error {
	b.calls = append(b.calls, params.(*stripe.ChargeParams))
	if b.err != nil {
		return b.err
	}
	v.(*stripe.Charge).ID = "ch_test"
	return nil
}

func (b *stripeBackend) CallStreaming(_, _, _ string, _ stripe.ParamsContainer, _ stripe.StreamingLastResponseSetter) error {
	return nil
}

func (b *stripeBackend) CallRaw(_, _, _ string, _ *form.Values, _ *stripe.Params, _ stripe.LastResponseSetter) error {
	return nil
}

func (b *stripeBackend) CallMultipart(_, _, _, _ string, _ *bytes.Buffer, _ *stripe.Params, _ stripe.LastResponseSetter) error {
	return nil
}

func (b *stripeBackend) SetMaxNetworkRetries(int64) {}

func newTestGateway(err error) (*StripeGateway, *stripeBackend) {
	backend := &stripeBackend{err: err}
	return &StripeGateway{client: &charge.Client{B: backend, Key: "sk_test_123"}}, backend
}

func TestMinorUnits(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   int64
	}{
		{name: "whole", amount: 245, want: 24500},
		{name: "cents", amount: 19.99, want: 1999},
		{name: "float_sum", amount: 0.1 + 0.2, want: 30},
		{name: "thirds", amount: 33.33, want: 3333},
		{name: "one_cent", amount: 0.01, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, minorUnits(tt.amount))
		})
	}
}

func TestStripeGateway_Charge(t *testing.T) {
	req := ChargeRequest{OrderID: "65f0c0ffee", OrderNumber: "ORD-20240315-0001", Amount: 19.99, Currency: "USD", SourceToken: "tok_visa"}

	t.Run("success", func(t *testing.T) {
		g, backend := newTestGateway(nil)

		ref, err := g.Charge(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "ch_test", ref)

		require.Len(t, backend.calls, 1)
		params := backend.calls[0]
		assert.Equal(t, int64(1999), *params.Amount)
		assert.Equal(t, "usd", *params.Currency)
		require.NotNil(t, params.IdempotencyKey)
		assert.Equal(t, "order-65f0c0ffee-tok_visa", *params.IdempotencyKey)
		assert.Equal(t, "ORD-20240315-0001", params.Metadata["order_number"])
	})

	t.Run("card_declined", func(t *testing.T) {
		g, _ := newTestGateway(&stripe.Error{Type: stripe.ErrorTypeCard, Code: stripe.ErrorCodeCardDeclined, Msg: "Your card was declined."})

		_, err := g.Charge(context.Background(), req)
		assert.ErrorIs(t, err, ErrPaymentFailed)
		assert.Contains(t, err.Error(), "Your card was declined.")
	})

	t.Run("api_error", func(t *testing.T) {
		g, _ := newTestGateway(&stripe.Error{Type: stripe.ErrorTypeAPI, Msg: "internal"})

		_, err := g.Charge(context.Background(), req)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrPaymentFailed)
	})

	t.Run("non_positive_amount", func(t *testing.T) {
		g, backend := newTestGateway(nil)
		zero := req
		zero.Amount = 0

		_, err := g.Charge(context.Background(), zero)
		assert.ErrorIs(t, err, ErrValidation)
		assert.Empty(t, backend.calls)
	})
}
