package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"go_trial/foodhub/models"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var fixedNow = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

type orderFixture struct {
	svc        *OrderService
	orders     *fakeOrders
	menu       *fakeMenu
	notifier   *mockNotifier
	gateway    *mockGateway
	restaurant models.Restaurant
	customer   models.User
	burger     models.MenuItem
	salad      models.MenuItem
	soldOut    models.MenuItem
	foreign    models.MenuItem
}

func newOrderFixture(t *testing.T, notifyErr error) *orderFixture {
	t.Helper()

	f := &orderFixture{
		restaurant: models.Restaurant{ID: primitive.NewObjectID(), Name: "Pho 24", Owner: primitive.NewObjectID(), Status: models.RestaurantActive},
		customer:   models.User{ID: primitive.NewObjectID(), Username: "alice", Email: "alice@example.com", Status: true},
	}
	f.burger = models.MenuItem{ID: primitive.NewObjectID(), Name: "Burger", Price: 100, Restaurant: f.restaurant.ID, IsAvailable: true}
	f.salad = models.MenuItem{ID: primitive.NewObjectID(), Name: "Salad", Price: 50, DiscountPercent: 10, Restaurant: f.restaurant.ID, IsAvailable: true}
	f.soldOut = models.MenuItem{ID: primitive.NewObjectID(), Name: "Lobster", Price: 300, Restaurant: f.restaurant.ID, IsAvailable: false}
	f.foreign = models.MenuItem{ID: primitive.NewObjectID(), Name: "Taco", Price: 20, Restaurant: primitive.NewObjectID(), IsAvailable: true}

	users := newFakeUsers()
	require.NoError(t, users.Create(context.Background(), &f.customer))

	f.orders = newFakeOrders()
	f.menu = newFakeMenu(f.burger, f.salad, f.soldOut, f.foreign)
	f.notifier = &mockNotifier{}
	for _, method := range []string{"OrderConfirmation", "OrderStatusUpdate"} {
		f.notifier.On(method, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(notifyErr).Maybe()
	}
	f.notifier.On("OrderCancellation", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(notifyErr).Maybe()
	f.gateway = &mockGateway{}

	f.svc = NewOrderService(OrderDeps{
		Orders:      f.orders,
		Menu:        f.menu,
		Restaurants: newFakeRestaurants(f.restaurant),
		Users:       users,
		Sequencer:   newFakeSequencer(),
		Notifier:    f.notifier,
		Events:      quietPublisher(),
		Payments:    f.gateway,
		Tickets:     stubTickets{},
	})
	f.svc.now = func() time.Time { return fixedNow }
	return f
}

func (f *orderFixture) placeStandard(t *testing.T) *models.Order {
	t.Helper()
	order, err := f.svc.Create(context.Background(), f.customer.ID, CreateOrderInput{
		Restaurant: f.restaurant.ID,
		Items: []OrderItemInput{
			{MenuItem: f.burger.ID, Quantity: 2},
			{MenuItem: f.salad.ID, Quantity: 1, Note: "no onions"},
		},
		SpecialRequests: "ring the bell",
	})
	require.NoError(t, err)
	return order
}

type stubTickets struct{}

func (stubTickets) Encode(content string) ([]byte, error) { return []byte("qr:" + content), nil }

func TestOrderService_Create(t *testing.T) {
	f := newOrderFixture(t, nil)

	order := f.placeStandard(t)

	assert.InDelta(t, 245.0, order.TotalAmount, 1e-9)
	assert.Equal(t, "ORD-20240315-0001", order.OrderNumber)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, models.PaymentPending, order.PaymentStatus)
	assert.Equal(t, models.PaymentCash, order.PaymentMethod)
	assert.Equal(t, models.DeliveryPickup, order.DeliveryMethod)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Salad", order.Items[1].Name)
	assert.Equal(t, 10.0, order.Items[1].Discount)

	second := f.placeStandard(t)
	assert.Equal(t, "ORD-20240315-0002", second.OrderNumber)

	f.notifier.AssertCalled(t, "OrderConfirmation", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_Create_Rejects(t *testing.T) {
	f := newOrderFixture(t, nil)

	tests := []struct {
		name        string
		input       CreateOrderInput
		expectedErr error
	}{
		{
			name:        "missing_menu_item",
			input:       CreateOrderInput{Restaurant: f.restaurant.ID, Items: []OrderItemInput{{MenuItem: primitive.NewObjectID(), Quantity: 1}}},
			expectedErr: ErrNotFound,
		},
		{
			name:        "unavailable_menu_item",
			input:       CreateOrderInput{Restaurant: f.restaurant.ID, Items: []OrderItemInput{{MenuItem: f.burger.ID, Quantity: 1}, {MenuItem: f.soldOut.ID, Quantity: 1}}},
			expectedErr: ErrUnavailable,
		},
		{
			name:        "item_from_other_restaurant",
			input:       CreateOrderInput{Restaurant: f.restaurant.ID, Items: []OrderItemInput{{MenuItem: f.foreign.ID, Quantity: 1}}},
			expectedErr: ErrValidation,
		},
		{
			name:        "unknown_restaurant",
			input:       CreateOrderInput{Restaurant: primitive.NewObjectID(), Items: []OrderItemInput{{MenuItem: f.burger.ID, Quantity: 1}}},
			expectedErr: ErrNotFound,
		},
		{
			name:        "no_items",
			input:       CreateOrderInput{Restaurant: f.restaurant.ID},
			expectedErr: ErrValidation,
		},
		{
			name:        "zero_quantity",
			input:       CreateOrderInput{Restaurant: f.restaurant.ID, Items: []OrderItemInput{{MenuItem: f.burger.ID}}},
			expectedErr: ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(context.Background(), f.customer.ID, tt.input)
			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}
	assert.Empty(t, f.orders.orders)
}

func TestOrderService_TotalIsFrozen(t *testing.T) {
	f := newOrderFixture(t, nil)
	order := f.placeStandard(t)

	price := 999.0
	_, err := f.menu.Update(context.Background(), f.burger.ID, models.MenuItemUpdate{Price: &price})
	require.NoError(t, err)

	stored, err := f.svc.Get(context.Background(), order.ID)
	require.NoError(t, err)
	assert.InDelta(t, 245.0, stored.TotalAmount, 1e-9)
	assert.Equal(t, 100.0, stored.Items[0].Price)
}

func TestOrderService_NotificationFailureIsSwallowed(t *testing.T) {
	f := newOrderFixture(t, errors.New("smtp down"))

	order := f.placeStandard(t)
	assert.NotEmpty(t, order.OrderNumber)

	_, err := f.svc.UpdateStatus(context.Background(), order.ID, models.OrderConfirmed)
	assert.NoError(t, err)
	_, err = f.svc.Cancel(context.Background(), order.ID, "")
	assert.NoError(t, err)
}

func TestOrderService_UpdateStatus(t *testing.T) {
	f := newOrderFixture(t, nil)
	order := f.placeStandard(t)

	preparing, err := f.svc.UpdateStatus(context.Background(), order.ID, models.OrderPreparing)
	require.NoError(t, err)
	assert.Equal(t, models.OrderPreparing, preparing.Status)
	assert.Nil(t, preparing.CompletedAt)

	delivered, err := f.svc.UpdateStatus(context.Background(), order.ID, models.OrderDelivered)
	require.NoError(t, err)
	require.NotNil(t, delivered.CompletedAt)
	assert.True(t, delivered.CompletedAt.Equal(fixedNow))

	_, err = f.svc.UpdateStatus(context.Background(), order.ID, "teleported")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.UpdateStatus(context.Background(), primitive.NewObjectID(), models.OrderReady)
	assert.ErrorIs(t, err, ErrNotFound)

	f.notifier.AssertNumberOfCalls(t, "OrderStatusUpdate", 2)
}

func TestOrderService_Cancel(t *testing.T) {
	f := newOrderFixture(t, nil)
	order := f.placeStandard(t)

	cancelled, err := f.svc.Cancel(context.Background(), order.ID, "changed my mind")
	require.NoError(t, err)

	assert.Equal(t, models.OrderCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CompletedAt)
	assert.Equal(t, "changed my mind | ring the bell", cancelled.SpecialRequests)
	assert.Equal(t, order.Items, cancelled.Items)
	assert.Equal(t, order.TotalAmount, cancelled.TotalAmount)

	f.notifier.AssertCalled(t, "OrderCancellation", mock.Anything, mock.Anything, mock.Anything, mock.Anything, "changed my mind")

	_, err = f.svc.Cancel(context.Background(), primitive.NewObjectID(), "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOrderService_Pay(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newOrderFixture(t, nil)
		order := f.placeStandard(t)
		f.gateway.On("Charge", mock.Anything, mock.MatchedBy(func(req ChargeRequest) bool {
			return req.Amount == 245 && req.Currency == "usd" && req.OrderNumber == order.OrderNumber
		})).Return("ch_123", nil).Once()

		paid, err := f.svc.Pay(context.Background(), order.ID, PayOrderInput{SourceToken: "tok_visa"})
		require.NoError(t, err)
		assert.Equal(t, models.PaymentPaid, paid.PaymentStatus)
		assert.Equal(t, "ch_123", paid.PaymentRef)

		_, err = f.svc.Pay(context.Background(), order.ID, PayOrderInput{SourceToken: "tok_visa"})
		assert.ErrorIs(t, err, ErrConflict)
		f.gateway.AssertExpectations(t)
	})

	t.Run("declined", func(t *testing.T) {
		f := newOrderFixture(t, nil)
		order := f.placeStandard(t)
		f.gateway.On("Charge", mock.Anything, mock.Anything).Return("", ErrPaymentFailed).Once()

		_, err := f.svc.Pay(context.Background(), order.ID, PayOrderInput{SourceToken: "tok_chargeDeclined"})
		assert.ErrorIs(t, err, ErrPaymentFailed)

		stored, err := f.svc.Get(context.Background(), order.ID)
		require.NoError(t, err)
		assert.Equal(t, models.PaymentFailed, stored.PaymentStatus)
	})

	t.Run("gateway_outage_keeps_status", func(t *testing.T) {
		f := newOrderFixture(t, nil)
		order := f.placeStandard(t)
		f.gateway.On("Charge", mock.Anything, mock.Anything).Return("", errors.New("timeout")).Once()

		_, err := f.svc.Pay(context.Background(), order.ID, PayOrderInput{SourceToken: "tok_visa"})
		assert.Error(t, err)

		stored, err := f.svc.Get(context.Background(), order.ID)
		require.NoError(t, err)
		assert.Equal(t, models.PaymentPending, stored.PaymentStatus)
	})

	t.Run("cancelled_order", func(t *testing.T) {
		f := newOrderFixture(t, nil)
		order := f.placeStandard(t)
		_, err := f.svc.Cancel(context.Background(), order.ID, "")
		require.NoError(t, err)

		_, err = f.svc.Pay(context.Background(), order.ID, PayOrderInput{SourceToken: "tok_visa"})
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("disabled", func(t *testing.T) {
		f := newOrderFixture(t, nil)
		order := f.placeStandard(t)
		f.svc.Payments = nil

		_, err := f.svc.Pay(context.Background(), order.ID, PayOrderInput{SourceToken: "tok_visa"})
		assert.ErrorIs(t, err, ErrPaymentDisabled)
	})

	t.Run("record_fails_after_charge", func(t *testing.T) {
		f := newOrderFixture(t, nil)
		order := f.placeStandard(t)
		f.svc.Orders = &unrecordedPayments{fakeOrders: f.orders, err: errors.New("write concern timeout")}
		f.gateway.On("Charge", mock.Anything, mock.Anything).Return("ch_456", nil).Once()
		hook := logtest.NewGlobal()
		defer hook.Reset()

		_, err := f.svc.Pay(context.Background(), order.ID, PayOrderInput{SourceToken: "tok_visa"})
		require.Error(t, err)
		f.gateway.AssertNumberOfCalls(t, "Charge", 1)

		entry := hook.LastEntry()
		require.NotNil(t, entry)
		assert.Equal(t, logrus.ErrorLevel, entry.Level)
		assert.Equal(t, "ch_456", entry.Data["charge"])
		assert.Equal(t, order.OrderNumber, entry.Data["order"])
	})
}

// unrecordedPayments fails every attempt to mark an order paid.
type unrecordedPayments struct {
	*fakeOrders
	err error
}

func (u *unrecordedPayments) SetPayment(ctx context.Context, id primitive.ObjectID, status models.PaymentStatus, ref string) (*models.Order, error) {
	if status == models.PaymentPaid {
		return nil, u.err
	}
	return u.fakeOrders.SetPayment(ctx, id, status, ref)
}

func TestOrderService_Queries(t *testing.T) {
	f := newOrderFixture(t, nil)
	first := f.placeStandard(t)
	f.svc.now = func() time.Time { return fixedNow.Add(time.Hour) }
	second := f.placeStandard(t)
	f.svc.now = func() time.Time { return fixedNow.Add(24 * time.Hour) }
	third := f.placeStandard(t)
	_, err := f.svc.Cancel(context.Background(), third.ID, "")
	require.NoError(t, err)

	mine, err := f.svc.ListByCustomer(context.Background(), f.customer.ID)
	require.NoError(t, err)
	require.Len(t, mine, 3)
	assert.Equal(t, second.ID, mine[1].ID)
	assert.Equal(t, first.ID, mine[2].ID)

	cancelled, err := f.svc.ListByStatus(context.Background(), f.restaurant.ID, models.OrderCancelled)
	require.NoError(t, err)
	require.Len(t, cancelled, 1)
	assert.Equal(t, third.ID, cancelled[0].ID)

	stats, err := f.svc.DailyStats(context.Background(), f.restaurant.ID, fixedNow.Add(-time.Hour), fixedNow.Add(48*time.Hour))
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, "2024-03-15", stats[0].Date)
	assert.Equal(t, int64(2), stats[0].Count)
	assert.InDelta(t, 490.0, stats[0].Revenue, 1e-9)

	_, err = f.svc.DailyStats(context.Background(), f.restaurant.ID, fixedNow, fixedNow.Add(-time.Hour))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestOrderService_Ticket(t *testing.T) {
	f := newOrderFixture(t, nil)
	order := f.placeStandard(t)

	png, err := f.svc.Ticket(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, "qr:"+order.OrderNumber, string(png))
}
