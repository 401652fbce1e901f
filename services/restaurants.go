package services

import (
	"context"
	"fmt"
	"time"

	"go_trial/foodhub/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CreateRestaurantInput struct {
	Name         string            `json:"name" validate:"required"`
	Address      string            `json:"address" validate:"required"`
	Phone        string            `json:"phone" validate:"required,phone"`
	Email        string            `json:"email" validate:"omitempty,email"`
	OpeningHours string            `json:"openingHours"`
	Description  string            `json:"description"`
	ImageURL     string            `json:"imageUrl" validate:"omitempty,url"`
	CuisineType  string            `json:"cuisineType"`
	PriceRange   models.PriceRange `json:"priceRange" validate:"omitempty,oneof=$ $$ $$$ $$$$"`
}

type RestaurantService struct {
	restaurants RestaurantRepository
	now         func() time.Time
}

func NewRestaurantService(restaurants RestaurantRepository) *RestaurantService {
	return &RestaurantService{restaurants: restaurants, now: time.Now}
}

func (s *RestaurantService) Create(ctx context.Context, owner primitive.ObjectID, in CreateRestaurantInput) (*models.Restaurant, error) {
	now := s.now()
	restaurant := &models.Restaurant{
		Name:         in.Name,
		Address:      in.Address,
		Phone:        in.Phone,
		Email:        in.Email,
		OpeningHours: in.OpeningHours,
		Description:  in.Description,
		ImageURL:     in.ImageURL,
		CuisineType:  in.CuisineType,
		PriceRange:   in.PriceRange,
		Owner:        owner,
		Status:       models.RestaurantActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if restaurant.OpeningHours == "" {
		restaurant.OpeningHours = "08:00 - 22:00"
	}
	if restaurant.PriceRange == "" {
		restaurant.PriceRange = models.PriceModerate
	}
	if err := s.restaurants.Create(ctx, restaurant); err != nil {
		return nil, err
	}
	return restaurant, nil
}

func (s *RestaurantService) Get(ctx context.Context, id primitive.ObjectID) (*models.Restaurant, error) {
	restaurant, err := s.restaurants.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "restaurant "+id.Hex())
	}
	return restaurant, nil
}

// List returns active restaurants, narrowed by search text, cuisine and price range when given.
func (s *RestaurantService) List(ctx context.Context, filter models.RestaurantFilter) ([]models.Restaurant, error) {
	filter.ActiveOnly = true
	filter.Owner = nil
	return s.restaurants.List(ctx, filter)
}

func (s *RestaurantService) ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Restaurant, error) {
	return s.restaurants.List(ctx, models.RestaurantFilter{Owner: &owner})
}

func (s *RestaurantService) Update(ctx context.Context, id primitive.ObjectID, update models.RestaurantUpdate) (*models.Restaurant, error) {
	if update.Name != nil && *update.Name == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrValidation)
	}
	restaurant, err := s.restaurants.Update(ctx, id, update)
	if err != nil {
		return nil, notFound(err, "restaurant "+id.Hex())
	}
	return restaurant, nil
}

// Delete hides the restaurant and marks it inactive.
func (s *RestaurantService) Delete(ctx context.Context, id primitive.ObjectID) (*models.Restaurant, error) {
	restaurant, err := s.restaurants.SoftDelete(ctx, id)
	if err != nil {
		return nil, notFound(err, "restaurant "+id.Hex())
	}
	return restaurant, nil
}
