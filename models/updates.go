package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Update types carry only the fields a caller may change; nil means unchanged.

type RestaurantUpdate struct {
	Name         *string           `json:"name" validate:"omitempty,min=1"`
	Address      *string           `json:"address" validate:"omitempty,min=1"`
	Phone        *string           `json:"phone" validate:"omitempty,phone"`
	Email        *string           `json:"email" validate:"omitempty,email"`
	OpeningHours *string           `json:"openingHours"`
	Description  *string           `json:"description"`
	ImageURL     *string           `json:"imageUrl" validate:"omitempty,url"`
	CuisineType  *string           `json:"cuisineType"`
	PriceRange   *PriceRange       `json:"priceRange" validate:"omitempty,oneof=$ $$ $$$ $$$$"`
	Status       *RestaurantStatus `json:"status" validate:"omitempty,oneof=active inactive pending"`
}

type MenuItemUpdate struct {
	Name            *string             `json:"name" validate:"omitempty,min=1"`
	Description     *string             `json:"description"`
	Price           *float64            `json:"price" validate:"omitempty,gt=0"`
	ImageURL        *string             `json:"imageUrl" validate:"omitempty,url"`
	Category        *primitive.ObjectID `json:"category"`
	IsAvailable     *bool               `json:"isAvailable"`
	IsSpecial       *bool               `json:"isSpecial"`
	DiscountPercent *float64            `json:"discountPercent" validate:"omitempty,min=0,max=100"`
	PreparationTime *int                `json:"preparationTime" validate:"omitempty,min=1"`
	Slug            *string             `json:"-"`
}

type CategoryUpdate struct {
	Name        *string `json:"name" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	Slug        *string `json:"-"`
}

type ReservationUpdate struct {
	Date            *time.Time         `json:"-"`
	Time            *string            `json:"time" validate:"omitempty,clock"`
	PartySize       *int               `json:"partySize" validate:"omitempty,min=1"`
	SpecialRequests *string            `json:"specialRequests"`
	Status          *ReservationStatus `json:"status" validate:"omitempty,oneof=pending confirmed cancelled completed no-show"`
}

type ReviewUpdate struct {
	Rating  *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Comment *string `json:"comment"`
}

type RestaurantFilter struct {
	Owner       *primitive.ObjectID
	ActiveOnly  bool
	Search      string
	CuisineType string
	PriceRange  string
}

type MenuFilter struct {
	Restaurant *primitive.ObjectID
	Category   *primitive.ObjectID
	Search     string
}

type OrderFilter struct {
	Customer   *primitive.ObjectID
	Restaurant *primitive.ObjectID
	Status     OrderStatus
}

type ReservationFilter struct {
	Customer   *primitive.ObjectID
	Restaurant *primitive.ObjectID
	Status     ReservationStatus
	Day        *time.Time
}

type ReviewFilter struct {
	Customer   *primitive.ObjectID
	Restaurant *primitive.ObjectID
}
