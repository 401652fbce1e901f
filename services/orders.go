package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go_trial/foodhub/events"
	"go_trial/foodhub/models"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

type OrderItemInput struct {
	MenuItem primitive.ObjectID `json:"menuItem" validate:"required"`
	Quantity int                `json:"quantity" validate:"required,min=1"`
	Note     string             `json:"note"`
}

type CreateOrderInput struct {
	Restaurant      primitive.ObjectID    `json:"restaurant" validate:"required"`
	Items           []OrderItemInput      `json:"items" validate:"required,min=1,dive"`
	DeliveryMethod  models.DeliveryMethod `json:"deliveryMethod" validate:"omitempty,oneof=pickup delivery"`
	DeliveryAddress string                `json:"deliveryAddress" validate:"required_if=DeliveryMethod delivery"`
	PaymentMethod   models.PaymentMethod  `json:"paymentMethod" validate:"omitempty,oneof=cash credit_card momo zalopay banking"`
	SpecialRequests string                `json:"specialRequests"`
}

type PayOrderInput struct {
	Currency    string `json:"currency" validate:"omitempty,len=3"`
	SourceToken string `json:"sourceToken" validate:"required"`
}

// TicketEncoder renders an order number as an image.
type TicketEncoder interface {
	Encode(content string) ([]byte, error)
}

type OrderDeps struct {
	Orders      OrderRepository
	Menu        MenuItemRepository
	Restaurants RestaurantRepository
	Users       UserRepository
	Sequencer   Sequencer
	Notifier    Notifier
	Events      EventPublisher
	Payments    PaymentGateway
	Tickets     TicketEncoder
	Currency    string
}

type OrderService struct {
	OrderDeps
	now func() time.Time
}

func NewOrderService(deps OrderDeps) *OrderService {
	if deps.Currency == "" {
		deps.Currency = "usd"
	}
	return &OrderService{OrderDeps: deps, now: time.Now}
}

// Create prices every line from the current menu and freezes the total on the order.
func (s *OrderService) Create(ctx context.Context, customer primitive.ObjectID, in CreateOrderInput) (*models.Order, error) {
	ctx, span := tracer.Start(ctx, "OrderService.Create")
	defer span.End()

	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: an order needs at least one item", ErrValidation)
	}

	restaurant, err := s.Restaurants.GetByID(ctx, in.Restaurant)
	if err != nil {
		return nil, notFound(err, "restaurant "+in.Restaurant.Hex())
	}

	items := make([]models.OrderItem, 0, len(in.Items))
	var total float64
	for _, requested := range in.Items {
		if requested.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
		}
		menuItem, err := s.Menu.GetByID(ctx, requested.MenuItem)
		if err != nil {
			return nil, notFound(err, "menu item "+requested.MenuItem.Hex())
		}
		if menuItem.Restaurant != restaurant.ID {
			return nil, fmt.Errorf("%w: menu item %q is not served by this restaurant", ErrValidation, menuItem.Name)
		}
		if !menuItem.IsAvailable {
			return nil, fmt.Errorf("%w: menu item %q is not available", ErrUnavailable, menuItem.Name)
		}

		line := models.OrderItem{
			MenuItem: menuItem.ID,
			Name:     menuItem.Name,
			Price:    menuItem.Price,
			Quantity: requested.Quantity,
			Note:     requested.Note,
			Discount: menuItem.DiscountPercent,
		}
		total += line.LineTotal()
		items = append(items, line)
	}

	now := s.now()
	number, err := dayNumber(ctx, s.Sequencer, orderSequence, "ORD", now)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		OrderNumber:     number,
		Customer:        customer,
		Restaurant:      restaurant.ID,
		Items:           items,
		Status:          models.OrderPending,
		TotalAmount:     total,
		PaymentMethod:   in.PaymentMethod,
		PaymentStatus:   models.PaymentPending,
		DeliveryAddress: in.DeliveryAddress,
		DeliveryMethod:  in.DeliveryMethod,
		SpecialRequests: in.SpecialRequests,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if order.PaymentMethod == "" {
		order.PaymentMethod = models.PaymentCash
	}
	if order.DeliveryMethod == "" {
		order.DeliveryMethod = models.DeliveryPickup
	}

	if err := s.Orders.Create(ctx, order); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("order.number", order.OrderNumber))

	attrs := metric.WithAttributes(attribute.String("restaurant", restaurant.ID.Hex()))
	ordersCreated.Add(ctx, 1, attrs)
	orderRevenue.Add(ctx, order.TotalAmount, attrs)

	fields := logrus.Fields{"order": order.OrderNumber}
	bestEffort(ctx, "order_confirmation_email", fields, func(ctx context.Context) error {
		user, err := s.Users.GetByID(ctx, customer)
		if err != nil {
			return err
		}
		return s.Notifier.OrderConfirmation(ctx, order, user, restaurant)
	})
	s.publish(ctx, events.OrderCreated, order)

	return order, nil
}

func (s *OrderService) Get(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	order, err := s.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "order "+id.Hex())
	}
	return order, nil
}

// UpdateStatus sets the status without checking the predecessor state.
func (s *OrderService) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) (*models.Order, error) {
	ctx, span := tracer.Start(ctx, "OrderService.UpdateStatus", trace.WithAttributes(attribute.String("order.status", string(status))))
	defer span.End()

	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown order status %q", ErrValidation, status)
	}
	var completedAt *time.Time
	if status.Terminal() {
		now := s.now()
		completedAt = &now
	}

	order, err := s.Orders.SetStatus(ctx, id, status, completedAt)
	if err != nil {
		return nil, notFound(err, "order "+id.Hex())
	}

	bestEffort(ctx, "order_status_email", logrus.Fields{"order": order.OrderNumber}, func(ctx context.Context) error {
		customer, restaurant, err := s.parties(ctx, order)
		if err != nil {
			return err
		}
		return s.Notifier.OrderStatusUpdate(ctx, order, customer, restaurant)
	})
	s.publish(ctx, events.OrderStatusChanged, order)

	return order, nil
}

func (s *OrderService) UpdatePaymentStatus(ctx context.Context, id primitive.ObjectID, status models.PaymentStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown payment status %q", ErrValidation, status)
	}
	order, err := s.Orders.SetPayment(ctx, id, status, "")
	if err != nil {
		return nil, notFound(err, "order "+id.Hex())
	}
	return order, nil
}

// Cancel keeps the items and total untouched and prefixes the reason to the special requests.
func (s *OrderService) Cancel(ctx context.Context, id primitive.ObjectID, reason string) (*models.Order, error) {
	ctx, span := tracer.Start(ctx, "OrderService.Cancel")
	defer span.End()

	prior, err := s.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "order "+id.Hex())
	}

	requests := prior.SpecialRequests
	if reason != "" {
		if requests == "" {
			requests = reason
		} else {
			requests = reason + " | " + requests
		}
	}

	order, err := s.Orders.Cancel(ctx, id, requests, s.now())
	if err != nil {
		return nil, notFound(err, "order "+id.Hex())
	}

	bestEffort(ctx, "order_cancellation_email", logrus.Fields{"order": order.OrderNumber}, func(ctx context.Context) error {
		customer, restaurant, err := s.parties(ctx, order)
		if err != nil {
			return err
		}
		return s.Notifier.OrderCancellation(ctx, order, customer, restaurant, reason)
	})
	s.publish(ctx, events.OrderCancelled, order)

	return order, nil
}

// Pay charges the frozen order total through the payment gateway.
func (s *OrderService) Pay(ctx context.Context, id primitive.ObjectID, in PayOrderInput) (*models.Order, error) {
	ctx, span := tracer.Start(ctx, "OrderService.Pay")
	defer span.End()

	if s.Payments == nil {
		return nil, ErrPaymentDisabled
	}
	order, err := s.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "order "+id.Hex())
	}
	switch {
	case order.PaymentStatus == models.PaymentPaid:
		return nil, fmt.Errorf("%w: order %s is already paid", ErrConflict, order.OrderNumber)
	case order.Status == models.OrderCancelled:
		return nil, fmt.Errorf("%w: order %s is cancelled", ErrConflict, order.OrderNumber)
	}

	currency := in.Currency
	if currency == "" {
		currency = s.Currency
	}
	ref, err := s.Payments.Charge(ctx, ChargeRequest{
		OrderID:     order.ID.Hex(),
		OrderNumber: order.OrderNumber,
		Amount:      order.TotalAmount,
		Currency:    currency,
		SourceToken: in.SourceToken,
	})
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, ErrPaymentFailed) {
			if _, markErr := s.Orders.SetPayment(ctx, id, models.PaymentFailed, ""); markErr != nil {
				logrus.WithError(markErr).WithField("order", order.OrderNumber).Error("could not record failed payment")
			}
		}
		return nil, err
	}

	paid, err := s.Orders.SetPayment(ctx, id, models.PaymentPaid, ref)
	if err != nil {
		span.RecordError(err)
		logrus.WithError(err).WithFields(logrus.Fields{
			"order":  order.OrderNumber,
			"charge": ref,
		}).Error("charge succeeded but payment was not recorded")
		return nil, err
	}
	s.publish(ctx, events.OrderPaid, paid)
	return paid, nil
}

func (s *OrderService) ListByCustomer(ctx context.Context, customer primitive.ObjectID) ([]models.Order, error) {
	return s.Orders.List(ctx, models.OrderFilter{Customer: &customer})
}

// ListByRestaurant returns newest orders first, optionally narrowed to one status.
func (s *OrderService) ListByRestaurant(ctx context.Context, restaurant primitive.ObjectID, status models.OrderStatus) ([]models.Order, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: unknown order status %q", ErrValidation, status)
	}
	return s.Orders.List(ctx, models.OrderFilter{Restaurant: &restaurant, Status: status})
}

func (s *OrderService) ListByStatus(ctx context.Context, restaurant primitive.ObjectID, status models.OrderStatus) ([]models.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown order status %q", ErrValidation, status)
	}
	return s.Orders.List(ctx, models.OrderFilter{Restaurant: &restaurant, Status: status})
}

// DailyStats reports per-day order count and revenue, cancelled orders excluded.
func (s *OrderService) DailyStats(ctx context.Context, restaurant primitive.ObjectID, from, to time.Time) ([]models.OrderDayStats, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: end date is before start date", ErrValidation)
	}
	return s.Orders.DailyStats(ctx, restaurant, from, to)
}

func (s *OrderService) Ticket(ctx context.Context, id primitive.ObjectID) ([]byte, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Tickets.Encode(order.OrderNumber)
}

func (s *OrderService) parties(ctx context.Context, order *models.Order) (*models.User, *models.Restaurant, error) {
	customer, err := s.Users.GetByID(ctx, order.Customer)
	if err != nil {
		return nil, nil, err
	}
	restaurant, err := s.Restaurants.GetByID(ctx, order.Restaurant)
	if err != nil {
		return nil, nil, err
	}
	return customer, restaurant, nil
}

func (s *OrderService) publish(ctx context.Context, kind string, order *models.Order) {
	bestEffort(ctx, "event", logrus.Fields{"event": kind}, func(ctx context.Context) error {
		return s.Events.Publish(ctx, events.Event{
			Type:       kind,
			ID:         order.ID.Hex(),
			Number:     order.OrderNumber,
			Restaurant: order.Restaurant.Hex(),
			Customer:   order.Customer.Hex(),
			Status:     string(order.Status),
			Amount:     order.TotalAmount,
			Timestamp:  s.now().UTC(),
		})
	})
}
