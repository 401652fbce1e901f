package services

import (
	"context"
	"time"

	"go_trial/foodhub/events"
	"go_trial/foodhub/models"
	"go_trial/foodhub/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Repositories return mongo.ErrNoDocuments when a lookup matches nothing.

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByResetToken(ctx context.Context, token string) (*models.User, error)
	SetResetToken(ctx context.Context, id primitive.ObjectID, token string, expiry time.Time) error
	SetPassword(ctx context.Context, id primitive.ObjectID, hash string) error
}

// RefreshTokenRepository remembers issued refresh tokens so logout can revoke them.
type RefreshTokenRepository interface {
	Save(ctx context.Context, user primitive.ObjectID, token string, expires time.Time) error
	Exists(ctx context.Context, user primitive.ObjectID, token string) (bool, error)
	DeleteForUser(ctx context.Context, user primitive.ObjectID) error
}

type RestaurantRepository interface {
	Create(ctx context.Context, restaurant *models.Restaurant) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Restaurant, error)
	List(ctx context.Context, filter models.RestaurantFilter) ([]models.Restaurant, error)
	Update(ctx context.Context, id primitive.ObjectID, update models.RestaurantUpdate) (*models.Restaurant, error)
	SoftDelete(ctx context.Context, id primitive.ObjectID) (*models.Restaurant, error)
	SetRating(ctx context.Context, id primitive.ObjectID, summary models.RatingSummary) error
}

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
	Update(ctx context.Context, id primitive.ObjectID, update models.CategoryUpdate) (*models.Category, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
}

type MenuItemRepository interface {
	Create(ctx context.Context, item *models.MenuItem) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.MenuItem, error)
	GetBySlug(ctx context.Context, slug string) (*models.MenuItem, error)
	List(ctx context.Context, filter models.MenuFilter) ([]models.MenuItem, error)
	Update(ctx context.Context, id primitive.ObjectID, update models.MenuItemUpdate) (*models.MenuItem, error)
	SoftDelete(ctx context.Context, id primitive.ObjectID) (*models.MenuItem, error)
	CategoryIDs(ctx context.Context, restaurant primitive.ObjectID) ([]primitive.ObjectID, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
}

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	List(ctx context.Context, filter models.OrderFilter) ([]models.Order, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus, completedAt *time.Time) (*models.Order, error)
	SetPayment(ctx context.Context, id primitive.ObjectID, status models.PaymentStatus, ref string) (*models.Order, error)
	Cancel(ctx context.Context, id primitive.ObjectID, specialRequests string, at time.Time) (*models.Order, error)
	DailyStats(ctx context.Context, restaurant primitive.ObjectID, from, to time.Time) ([]models.OrderDayStats, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, reservation *models.Reservation) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Reservation, error)
	List(ctx context.Context, filter models.ReservationFilter) ([]models.Reservation, error)
	// CountInSlot skips the reservation with id exclude; pass primitive.NilObjectID to count all.
	CountInSlot(ctx context.Context, restaurant primitive.ObjectID, date time.Time, clock string, released []models.ReservationStatus, exclude primitive.ObjectID) (int64, error)
	CountForDay(ctx context.Context, restaurant primitive.ObjectID, day time.Time, excluded []models.ReservationStatus) (int64, error)
	Update(ctx context.Context, id primitive.ObjectID, update models.ReservationUpdate) (*models.Reservation, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.ReservationStatus, completedAt *time.Time) (*models.Reservation, error)
	Cancel(ctx context.Context, id primitive.ObjectID, reason, specialRequests string, at time.Time) (*models.Reservation, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error)
	ExistsActive(ctx context.Context, customer, restaurant primitive.ObjectID) (bool, error)
	List(ctx context.Context, filter models.ReviewFilter) ([]models.Review, error)
	Update(ctx context.Context, id primitive.ObjectID, update models.ReviewUpdate) (*models.Review, error)
	SoftDelete(ctx context.Context, id primitive.ObjectID) (*models.Review, error)
	SetResponse(ctx context.Context, id primitive.ObjectID, response models.ReviewResponse) (*models.Review, error)
	Summary(ctx context.Context, restaurant primitive.ObjectID) (models.RatingSummary, error)
	Histogram(ctx context.Context, restaurant primitive.ObjectID) ([]models.RatingBucket, error)
}

// Sequencer hands out per-day counters atomically; the first call for a day returns 1.
type Sequencer interface {
	Next(ctx context.Context, kind string, day time.Time) (int64, error)
}

// Notifier sends customer emails. Callers treat every error as non-fatal.
type Notifier interface {
	OrderConfirmation(ctx context.Context, order *models.Order, customer *models.User, restaurant *models.Restaurant) error
	OrderStatusUpdate(ctx context.Context, order *models.Order, customer *models.User, restaurant *models.Restaurant) error
	OrderCancellation(ctx context.Context, order *models.Order, customer *models.User, restaurant *models.Restaurant, reason string) error
	PasswordReset(ctx context.Context, user *models.User, resetURL string) error
	PasswordChanged(ctx context.Context, user *models.User) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type TokenIssuer interface {
	Issue(subject string, kind utils.TokenKind) (string, time.Time, error)
	Verify(token string, kind utils.TokenKind) (string, error)
}

type ChargeRequest struct {
	OrderID     string
	OrderNumber string
	Amount      float64
	Currency    string
	SourceToken string
}

type PaymentGateway interface {
	Charge(ctx context.Context, req ChargeRequest) (string, error)
}
