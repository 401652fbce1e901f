package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Restaurant is owned by exactly one user and never hard-deleted.
type Restaurant struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Address      string             `json:"address" bson:"address"`
	Phone        string             `json:"phone" bson:"phone"`
	Email        string             `json:"email" bson:"email"`
	OpeningHours string             `json:"openingHours" bson:"openingHours"`
	Description  string             `json:"description" bson:"description"`
	ImageURL     string             `json:"imageUrl" bson:"imageUrl"`
	CuisineType  string             `json:"cuisineType" bson:"cuisineType"`
	PriceRange   PriceRange         `json:"priceRange" bson:"priceRange"`
	Owner        primitive.ObjectID `json:"owner" bson:"owner"`
	Status       RestaurantStatus   `json:"status" bson:"status"`
	Rating       float64            `json:"rating" bson:"rating"`
	ReviewCount  int64              `json:"reviewCount" bson:"reviewCount"`
	IsDeleted    bool               `json:"isDeleted" bson:"isDeleted"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type Category struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Slug        string             `json:"slug" bson:"slug"`
	Description string             `json:"description" bson:"description"`
	IsDeleted   bool               `json:"isDeleted" bson:"isDeleted"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type MenuItem struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name            string             `json:"name" bson:"name"`
	Slug            string             `json:"slug" bson:"slug"`
	Description     string             `json:"description" bson:"description"`
	Price           float64            `json:"price" bson:"price"`
	ImageURL        string             `json:"imageUrl" bson:"imageUrl"`
	Category        primitive.ObjectID `json:"category" bson:"category"`
	Restaurant      primitive.ObjectID `json:"restaurant" bson:"restaurant"`
	IsAvailable     bool               `json:"isAvailable" bson:"isAvailable"`
	IsSpecial       bool               `json:"isSpecial" bson:"isSpecial"`
	DiscountPercent float64            `json:"discountPercent" bson:"discountPercent"`
	PreparationTime int                `json:"preparationTime" bson:"preparationTime"`
	IsDeleted       bool               `json:"isDeleted" bson:"isDeleted"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// DiscountedPrice is the unit price after the item's percentage discount.
func (m MenuItem) DiscountedPrice() float64 {
	return DiscountedPrice(m.Price, m.DiscountPercent)
}

// DiscountedPrice reduces price by percent/100 of itself.
func DiscountedPrice(price, percent float64) float64 {
	return price - price*percent/100
}

// OrderItem is a copy of the menu item taken when the order was placed.
type OrderItem struct {
	MenuItem primitive.ObjectID `json:"menuItem" bson:"menuItem"`
	Name     string             `json:"name" bson:"name"`
	Price    float64            `json:"price" bson:"price"`
	Quantity int                `json:"quantity" bson:"quantity"`
	Note     string             `json:"note" bson:"note"`
	Discount float64            `json:"discount" bson:"discount"`
}

// LineTotal is quantity times the discounted unit price.
func (i OrderItem) LineTotal() float64 {
	return DiscountedPrice(i.Price, i.Discount) * float64(i.Quantity)
}

type Order struct {
	ID                    primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	OrderNumber           string             `json:"orderNumber" bson:"orderNumber"`
	Customer              primitive.ObjectID `json:"customer" bson:"customer"`
	Restaurant            primitive.ObjectID `json:"restaurant" bson:"restaurant"`
	Items                 []OrderItem        `json:"items" bson:"items"`
	Status                OrderStatus        `json:"status" bson:"status"`
	TotalAmount           float64            `json:"totalAmount" bson:"totalAmount"`
	PaymentMethod         PaymentMethod      `json:"paymentMethod" bson:"paymentMethod"`
	PaymentStatus         PaymentStatus      `json:"paymentStatus" bson:"paymentStatus"`
	PaymentRef            string             `json:"paymentRef,omitempty" bson:"paymentRef,omitempty"`
	DeliveryAddress       string             `json:"deliveryAddress" bson:"deliveryAddress"`
	DeliveryMethod        DeliveryMethod     `json:"deliveryMethod" bson:"deliveryMethod"`
	SpecialRequests       string             `json:"specialRequests" bson:"specialRequests"`
	EstimatedDeliveryTime *time.Time         `json:"estimatedDeliveryTime,omitempty" bson:"estimatedDeliveryTime,omitempty"`
	CompletedAt           *time.Time         `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
	CreatedAt             time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt             time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// OrderDayStats is one row of the per-day revenue report.
type OrderDayStats struct {
	Date    string  `json:"date" bson:"_id"`
	Count   int64   `json:"count" bson:"count"`
	Revenue float64 `json:"revenue" bson:"revenue"`
}

type Reservation struct {
	ID                primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ReservationNumber string             `json:"reservationNumber" bson:"reservationNumber"`
	Customer          primitive.ObjectID `json:"customer" bson:"customer"`
	Restaurant        primitive.ObjectID `json:"restaurant" bson:"restaurant"`
	Date              time.Time          `json:"date" bson:"date"`
	Time              string             `json:"time" bson:"time"`
	PartySize         int                `json:"partySize" bson:"partySize"`
	Status            ReservationStatus  `json:"status" bson:"status"`
	SpecialRequests   string             `json:"specialRequests" bson:"specialRequests"`
	TableNumber       string             `json:"tableNumber" bson:"tableNumber"`
	Duration          int                `json:"duration" bson:"duration"`
	ReminderSent      bool               `json:"reminderSent" bson:"reminderSent"`
	CancelReason      string             `json:"cancelReason" bson:"cancelReason"`
	CompletedAt       *time.Time         `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
	IsDeleted         bool               `json:"isDeleted" bson:"isDeleted"`
	CreatedAt         time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type ReviewResponse struct {
	Text      string    `json:"text" bson:"text"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

type Review struct {
	ID             primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Customer       primitive.ObjectID  `json:"customer" bson:"customer"`
	Restaurant     primitive.ObjectID  `json:"restaurant" bson:"restaurant"`
	Order          *primitive.ObjectID `json:"order,omitempty" bson:"order,omitempty"`
	Rating         int                 `json:"rating" bson:"rating"`
	Comment        string              `json:"comment" bson:"comment"`
	FoodRating     *int                `json:"foodRating,omitempty" bson:"foodRating,omitempty"`
	ServiceRating  *int                `json:"serviceRating,omitempty" bson:"serviceRating,omitempty"`
	AmbienceRating *int                `json:"ambienceRating,omitempty" bson:"ambienceRating,omitempty"`
	ValueRating    *int                `json:"valueRating,omitempty" bson:"valueRating,omitempty"`
	Photos         []string            `json:"photos" bson:"photos"`
	IsVerified     bool                `json:"isVerified" bson:"isVerified"`
	Response       *ReviewResponse     `json:"response,omitempty" bson:"response,omitempty"`
	IsDeleted      bool                `json:"isDeleted" bson:"isDeleted"`
	CreatedAt      time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt" bson:"updatedAt"`
}

// RatingBucket is one bar of a restaurant's star histogram.
type RatingBucket struct {
	Rating int   `json:"rating" bson:"_id"`
	Count  int64 `json:"count" bson:"count"`
}

// RatingSummary is the derived aggregate stored on a restaurant.
type RatingSummary struct {
	Average float64 `bson:"avgRating"`
	Count   int64   `bson:"totalReviews"`
}
