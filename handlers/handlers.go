// Package handlers maps the REST API onto the service layer and enforces
// who may act on which resource.
package handlers

import (
	"context"
	"time"

	"go_trial/foodhub/models"
	"go_trial/foodhub/services"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AuthAPI interface {
	Signup(ctx context.Context, in services.SignupInput) (*models.User, *services.Session, error)
	Login(ctx context.Context, in services.LoginInput) (*services.Session, error)
	Refresh(ctx context.Context, refreshToken string) (*services.Session, error)
	Logout(ctx context.Context, userID primitive.ObjectID) error
	ChangePassword(ctx context.Context, user *models.User, in services.ChangePasswordInput) error
	ForgotPassword(ctx context.Context, in services.ForgotPasswordInput) (*services.ResetRequest, error)
	ResetPassword(ctx context.Context, token string, in services.ResetPasswordInput) (*models.User, error)
}

type RestaurantAPI interface {
	Create(ctx context.Context, owner primitive.ObjectID, in services.CreateRestaurantInput) (*models.Restaurant, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Restaurant, error)
	List(ctx context.Context, filter models.RestaurantFilter) ([]models.Restaurant, error)
	ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Restaurant, error)
	Update(ctx context.Context, id primitive.ObjectID, update models.RestaurantUpdate) (*models.Restaurant, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Restaurant, error)
}

type MenuAPI interface {
	Create(ctx context.Context, in services.CreateMenuItemInput) (*models.MenuItem, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.MenuItem, error)
	ListByRestaurant(ctx context.Context, restaurant primitive.ObjectID) ([]models.MenuItem, error)
	Search(ctx context.Context, term string, restaurant *primitive.ObjectID) ([]models.MenuItem, error)
	ListByCategory(ctx context.Context, restaurant, category primitive.ObjectID) ([]models.MenuItem, error)
	Categories(ctx context.Context, restaurant primitive.ObjectID) ([]primitive.ObjectID, error)
	Update(ctx context.Context, id primitive.ObjectID, update models.MenuItemUpdate) (*models.MenuItem, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.MenuItem, error)
	ByCategorySlug(ctx context.Context, categorySlug string) ([]models.MenuItem, error)
	BySlug(ctx context.Context, categorySlug, itemSlug string) (*models.MenuItem, error)
}

type CategoryAPI interface {
	Create(ctx context.Context, in services.CreateCategoryInput) (*models.Category, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
	Update(ctx context.Context, id primitive.ObjectID, update models.CategoryUpdate) (*models.Category, error)
}

type OrderAPI interface {
	Create(ctx context.Context, customer primitive.ObjectID, in services.CreateOrderInput) (*models.Order, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) (*models.Order, error)
	UpdatePaymentStatus(ctx context.Context, id primitive.ObjectID, status models.PaymentStatus) (*models.Order, error)
	Cancel(ctx context.Context, id primitive.ObjectID, reason string) (*models.Order, error)
	Pay(ctx context.Context, id primitive.ObjectID, in services.PayOrderInput) (*models.Order, error)
	ListByCustomer(ctx context.Context, customer primitive.ObjectID) ([]models.Order, error)
	ListByRestaurant(ctx context.Context, restaurant primitive.ObjectID, status models.OrderStatus) ([]models.Order, error)
	ListByStatus(ctx context.Context, restaurant primitive.ObjectID, status models.OrderStatus) ([]models.Order, error)
	DailyStats(ctx context.Context, restaurant primitive.ObjectID, from, to time.Time) ([]models.OrderDayStats, error)
	Ticket(ctx context.Context, id primitive.ObjectID) ([]byte, error)
}

type ReservationAPI interface {
	Create(ctx context.Context, customer primitive.ObjectID, in services.CreateReservationInput) (*models.Reservation, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Reservation, error)
	Update(ctx context.Context, id primitive.ObjectID, in services.UpdateReservationInput) (*models.Reservation, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.ReservationStatus) (*models.Reservation, error)
	Cancel(ctx context.Context, id primitive.ObjectID, reason string) (*models.Reservation, error)
	Available(ctx context.Context, restaurant primitive.ObjectID, day time.Time, clock string) (bool, error)
	ListByCustomer(ctx context.Context, customer primitive.ObjectID) ([]models.Reservation, error)
	ListByRestaurant(ctx context.Context, restaurant primitive.ObjectID, status models.ReservationStatus, day *time.Time) ([]models.Reservation, error)
	CountForDay(ctx context.Context, restaurant primitive.ObjectID, day time.Time) (int64, error)
}

type ReviewAPI interface {
	Create(ctx context.Context, customer primitive.ObjectID, in services.CreateReviewInput) (*models.Review, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Review, error)
	Update(ctx context.Context, id primitive.ObjectID, update models.ReviewUpdate) (*models.Review, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Review, error)
	Respond(ctx context.Context, id primitive.ObjectID, text string) (*models.Review, error)
	Analytics(ctx context.Context, restaurant primitive.ObjectID) ([]models.RatingBucket, error)
	ListByRestaurant(ctx context.Context, restaurant primitive.ObjectID) ([]models.Review, error)
	ListByCustomer(ctx context.Context, customer primitive.ObjectID) ([]models.Review, error)
}

var (
	_ AuthAPI        = (*services.AuthService)(nil)
	_ RestaurantAPI  = (*services.RestaurantService)(nil)
	_ MenuAPI        = (*services.MenuService)(nil)
	_ CategoryAPI    = (*services.CategoryService)(nil)
	_ OrderAPI       = (*services.OrderService)(nil)
	_ ReservationAPI = (*services.ReservationService)(nil)
	_ ReviewAPI      = (*services.ReviewService)(nil)
)

const healthTimeout = 2 * time.Second

// Handler holds one service per resource group.
type Handler struct {
	Auth         AuthAPI
	Restaurants  RestaurantAPI
	Menu         MenuAPI
	Categories   CategoryAPI
	Orders       OrderAPI
	Reservations ReservationAPI
	Reviews      ReviewAPI
	Ping         func(ctx context.Context) error

	validate *validator.Validate
	now      func() time.Time
}

func New(h Handler) *Handler {
	h.validate = NewValidator()
	h.now = time.Now
	return &h
}
