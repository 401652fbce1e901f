package services

import (
	"context"
	"fmt"
	"time"

	"go_trial/foodhub/events"
	"go_trial/foodhub/models"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type CreateReviewInput struct {
	Restaurant     primitive.ObjectID  `json:"restaurant" validate:"required"`
	Order          *primitive.ObjectID `json:"order"`
	Rating         int                 `json:"rating" validate:"required,min=1,max=5"`
	Comment        string              `json:"comment" validate:"max=2000"`
	FoodRating     *int                `json:"foodRating" validate:"omitempty,min=1,max=5"`
	ServiceRating  *int                `json:"serviceRating" validate:"omitempty,min=1,max=5"`
	AmbienceRating *int                `json:"ambienceRating" validate:"omitempty,min=1,max=5"`
	ValueRating    *int                `json:"valueRating" validate:"omitempty,min=1,max=5"`
	Photos         []string            `json:"photos" validate:"omitempty,dive,url"`
}

type ReviewService struct {
	reviews     ReviewRepository
	restaurants RestaurantRepository
	events      EventPublisher
	now         func() time.Time
}

func NewReviewService(reviews ReviewRepository, restaurants RestaurantRepository, publisher EventPublisher) *ReviewService {
	return &ReviewService{reviews: reviews, restaurants: restaurants, events: publisher, now: time.Now}
}

// Create allows one live review per customer and restaurant.
func (s *ReviewService) Create(ctx context.Context, customer primitive.ObjectID, in CreateReviewInput) (*models.Review, error) {
	ctx, span := tracer.Start(ctx, "ReviewService.Create")
	defer span.End()

	if in.Rating < 1 || in.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	if _, err := s.restaurants.GetByID(ctx, in.Restaurant); err != nil {
		return nil, notFound(err, "restaurant "+in.Restaurant.Hex())
	}

	exists, err := s.reviews.ExistsActive(ctx, customer, in.Restaurant)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: you have already reviewed this restaurant", ErrConflict)
	}

	now := s.now()
	review := &models.Review{
		Customer:       customer,
		Restaurant:     in.Restaurant,
		Order:          in.Order,
		Rating:         in.Rating,
		Comment:        in.Comment,
		FoodRating:     in.FoodRating,
		ServiceRating:  in.ServiceRating,
		AmbienceRating: in.AmbienceRating,
		ValueRating:    in.ValueRating,
		Photos:         in.Photos,
		IsVerified:     in.Order != nil,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if review.Photos == nil {
		review.Photos = []string{}
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: you have already reviewed this restaurant", ErrConflict)
		}
		return nil, err
	}
	if err := s.recompute(ctx, review.Restaurant); err != nil {
		return nil, err
	}
	reviewsCreated.Add(ctx, 1, metric.WithAttributes(attribute.String("restaurant", review.Restaurant.Hex())))

	s.publish(ctx, events.ReviewCreated, review)
	return review, nil
}

func (s *ReviewService) Get(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "review "+id.Hex())
	}
	return review, nil
}

// Update changes rating and comment only.
func (s *ReviewService) Update(ctx context.Context, id primitive.ObjectID, update models.ReviewUpdate) (*models.Review, error) {
	if update.Rating != nil && (*update.Rating < 1 || *update.Rating > 5) {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	review, err := s.reviews.Update(ctx, id, update)
	if err != nil {
		return nil, notFound(err, "review "+id.Hex())
	}
	if err := s.recompute(ctx, review.Restaurant); err != nil {
		return nil, err
	}
	s.publish(ctx, events.ReviewUpdated, review)
	return review, nil
}

func (s *ReviewService) Delete(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	review, err := s.reviews.SoftDelete(ctx, id)
	if err != nil {
		return nil, notFound(err, "review "+id.Hex())
	}
	if err := s.recompute(ctx, review.Restaurant); err != nil {
		return nil, err
	}
	s.publish(ctx, events.ReviewDeleted, review)
	return review, nil
}

// Respond sets the owner's reply, keeping the first reply time on later edits.
func (s *ReviewService) Respond(ctx context.Context, id primitive.ObjectID, text string) (*models.Review, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: response text is required", ErrValidation)
	}
	review, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	response := models.ReviewResponse{Text: text, CreatedAt: now, UpdatedAt: now}
	if review.Response != nil && !review.Response.CreatedAt.IsZero() {
		response.CreatedAt = review.Response.CreatedAt
	}

	updated, err := s.reviews.SetResponse(ctx, id, response)
	if err != nil {
		return nil, notFound(err, "review "+id.Hex())
	}
	return updated, nil
}

// Analytics is the restaurant's star histogram, highest rating first.
func (s *ReviewService) Analytics(ctx context.Context, restaurant primitive.ObjectID) ([]models.RatingBucket, error) {
	return s.reviews.Histogram(ctx, restaurant)
}

func (s *ReviewService) ListByRestaurant(ctx context.Context, restaurant primitive.ObjectID) ([]models.Review, error) {
	return s.reviews.List(ctx, models.ReviewFilter{Restaurant: &restaurant})
}

func (s *ReviewService) ListByCustomer(ctx context.Context, customer primitive.ObjectID) ([]models.Review, error) {
	return s.reviews.List(ctx, models.ReviewFilter{Customer: &customer})
}

// recompute rewrites the restaurant's rating and review count from its live reviews.
func (s *ReviewService) recompute(ctx context.Context, restaurant primitive.ObjectID) error {
	summary, err := s.reviews.Summary(ctx, restaurant)
	if err != nil {
		return fmt.Errorf("summarize reviews: %w", err)
	}
	if summary.Count == 0 {
		summary.Average = 0
	}
	if err := s.restaurants.SetRating(ctx, restaurant, summary); err != nil {
		return fmt.Errorf("store restaurant rating: %w", err)
	}
	return nil
}

func (s *ReviewService) publish(ctx context.Context, kind string, r *models.Review) {
	bestEffort(ctx, "event", logrus.Fields{"event": kind}, func(ctx context.Context) error {
		return s.events.Publish(ctx, events.Event{
			Type:       kind,
			ID:         r.ID.Hex(),
			Restaurant: r.Restaurant.Hex(),
			Customer:   r.Customer.Hex(),
			Rating:     r.Rating,
			Timestamp:  s.now().UTC(),
		})
	})
}
