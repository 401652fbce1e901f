package models

import "time"

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderPreparing, OrderReady, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// Terminal reports whether reaching s stamps the order's completion time.
func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

// Label is the customer-facing wording used in emails.
func (s OrderStatus) Label() string {
	switch s {
	case OrderPending:
		return "Awaiting confirmation"
	case OrderConfirmed:
		return "Confirmed"
	case OrderPreparing:
		return "Being prepared"
	case OrderReady:
		return "Ready for pickup or delivery"
	case OrderDelivered:
		return "Delivered"
	case OrderCancelled:
		return "Cancelled"
	}
	return string(s)
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "cash"
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentMomo       PaymentMethod = "momo"
	PaymentZaloPay    PaymentMethod = "zalopay"
	PaymentBanking    PaymentMethod = "banking"
)

func (m PaymentMethod) Label() string {
	switch m {
	case PaymentCash:
		return "Cash"
	case PaymentCreditCard:
		return "Credit card"
	case PaymentMomo:
		return "MoMo wallet"
	case PaymentZaloPay:
		return "ZaloPay"
	case PaymentBanking:
		return "Bank transfer"
	}
	return string(m)
}

type DeliveryMethod string

const (
	DeliveryPickup   DeliveryMethod = "pickup"
	DeliveryDelivery DeliveryMethod = "delivery"
)

func (m DeliveryMethod) Label() string {
	if m == DeliveryDelivery {
		return "Delivery"
	}
	return "Pickup"
}

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
	ReservationCompleted ReservationStatus = "completed"
	ReservationNoShow    ReservationStatus = "no-show"
)

func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationCancelled, ReservationCompleted, ReservationNoShow:
		return true
	}
	return false
}

// Terminal reports whether reaching s stamps the reservation's completion time.
func (s ReservationStatus) Terminal() bool {
	return s == ReservationCompleted || s == ReservationCancelled
}

var (
	// ReservationReleasedOnCreate lists statuses that do not block a new booking of the same slot.
	ReservationReleasedOnCreate = []ReservationStatus{ReservationCancelled, ReservationCompleted}
	// ReservationReleasedOnLookup lists statuses ignored by the availability check.
	ReservationReleasedOnLookup = []ReservationStatus{ReservationCancelled, ReservationCompleted, ReservationNoShow}
	// ReservationUncounted lists statuses excluded from the per-day reservation count.
	ReservationUncounted = []ReservationStatus{ReservationCancelled, ReservationNoShow}
)

type RestaurantStatus string

const (
	RestaurantActive   RestaurantStatus = "active"
	RestaurantInactive RestaurantStatus = "inactive"
	RestaurantPending  RestaurantStatus = "pending"
)

type PriceRange string

const (
	PriceBudget   PriceRange = "$"
	PriceModerate PriceRange = "$$"
	PriceUpscale  PriceRange = "$$$"
	PriceFine     PriceRange = "$$$$"
)

// DayLayout is the wire format of calendar days.
const DayLayout = "2006-01-02"

// ParseDay reads a calendar day as UTC midnight.
func ParseDay(value string) (time.Time, error) {
	return time.ParseInLocation(DayLayout, value, time.UTC)
}

// StartOfDay truncates t to UTC midnight.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
