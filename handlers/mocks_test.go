package handlers

import (
	"context"
	"time"

	"go_trial/foodhub/models"
	"go_trial/foodhub/services"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mockAuth struct{ mock.Mock }

func (m *mockAuth) Signup(ctx context.Context, in services.SignupInput) (*models.User, *services.Session, error) {
	args := m.Called(ctx, in)
	user, _ := args.Get(0).(*models.User)
	session, _ := args.Get(1).(*services.Session)
	return user, session, args.Error(2)
}

func (m *mockAuth) Login(ctx context.Context, in services.LoginInput) (*services.Session, error) {
	args := m.Called(ctx, in)
	session, _ := args.Get(0).(*services.Session)
	return session, args.Error(1)
}

func (m *mockAuth) Refresh(ctx context.Context, refreshToken string) (*services.Session, error) {
	args := m.Called(ctx, refreshToken)
	session, _ := args.Get(0).(*services.Session)
	return session, args.Error(1)
}

func (m *mockAuth) Logout(ctx context.Context, userID primitive.ObjectID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockAuth) ChangePassword(ctx context.Context, user *models.User, in services.ChangePasswordInput) error {
	return m.Called(ctx, user, in).Error(0)
}

func (m *mockAuth) ForgotPassword(ctx context.Context, in services.ForgotPasswordInput) (*services.ResetRequest, error) {
	args := m.Called(ctx, in)
	req, _ := args.Get(0).(*services.ResetRequest)
	return req, args.Error(1)
}

func (m *mockAuth) ResetPassword(ctx context.Context, token string, in services.ResetPasswordInput) (*models.User, error) {
	args := m.Called(ctx, token, in)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

type mockRestaurants struct{ mock.Mock }

func (m *mockRestaurants) Create(ctx context.Context, owner primitive.ObjectID, in services.CreateRestaurantInput) (*models.Restaurant, error) {
	args := m.Called(ctx, owner, in)
	r, _ := args.Get(0).(*models.Restaurant)
	return r, args.Error(1)
}

func (m *mockRestaurants) Get(ctx context.Context, id primitive.ObjectID) (*models.Restaurant, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*models.Restaurant)
	return r, args.Error(1)
}

func (m *mockRestaurants) List(ctx context.Context, filter models.RestaurantFilter) ([]models.Restaurant, error) {
	args := m.Called(ctx, filter)
	rs, _ := args.Get(0).([]models.Restaurant)
	return rs, args.Error(1)
}

func (m *mockRestaurants) ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Restaurant, error) {
	args := m.Called(ctx, owner)
	rs, _ := args.Get(0).([]models.Restaurant)
	return rs, args.Error(1)
}

func (m *mockRestaurants) Update(ctx context.Context, id primitive.ObjectID, update models.RestaurantUpdate) (*models.Restaurant, error) {
	args := m.Called(ctx, id, update)
	r, _ := args.Get(0).(*models.Restaurant)
	return r, args.Error(1)
}

func (m *mockRestaurants) Delete(ctx context.Context, id primitive.ObjectID) (*models.Restaurant, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*models.Restaurant)
	return r, args.Error(1)
}

type mockMenu struct{ mock.Mock }

func (m *mockMenu) Create(ctx context.Context, in services.CreateMenuItemInput) (*models.MenuItem, error) {
	args := m.Called(ctx, in)
	item, _ := args.Get(0).(*models.MenuItem)
	return item, args.Error(1)
}

func (m *mockMenu) Get(ctx context.Context, id primitive.ObjectID) (*models.MenuItem, error) {
	args := m.Called(ctx, id)
	item, _ := args.Get(0).(*models.MenuItem)
	return item, args.Error(1)
}

func (m *mockMenu) ListByRestaurant(ctx context.Context, restaurant primitive.ObjectID) ([]models.MenuItem, error) {
	args := m.Called(ctx, restaurant)
	items, _ := args.Get(0).([]models.MenuItem)
	return items, args.Error(1)
}

func (m *mockMenu) Search(ctx context.Context, term string, restaurant *primitive.ObjectID) ([]models.MenuItem, error) {
	args := m.Called(ctx, term, restaurant)
	items, _ := args.Get(0).([]models.MenuItem)
	return items, args.Error(1)
}

func (m *mockMenu) ListByCategory(ctx context.Context, restaurant, category primitive.ObjectID) ([]models.MenuItem, error) {
	args := m.Called(ctx, restaurant, category)
	items, _ := args.Get(0).([]models.MenuItem)
	return items, args.Error(1)
}

func (m *mockMenu) Categories(ctx context.Context, restaurant primitive.ObjectID) ([]primitive.ObjectID, error) {
	args := m.Called(ctx, restaurant)
	ids, _ := args.Get(0).([]primitive.ObjectID)
	return ids, args.Error(1)
}

func (m *mockMenu) Update(ctx context.Context, id primitive.ObjectID, update models.MenuItemUpdate) (*models.MenuItem, error) {
	args := m.Called(ctx, id, update)
	item, _ := args.Get(0).(*models.MenuItem)
	return item, args.Error(1)
}

func (m *mockMenu) Delete(ctx context.Context, id primitive.ObjectID) (*models.MenuItem, error) {
	args := m.Called(ctx, id)
	item, _ := args.Get(0).(*models.MenuItem)
	return item, args.Error(1)
}

func (m *mockMenu) ByCategorySlug(ctx context.Context, categorySlug string) ([]models.MenuItem, error) {
	args := m.Called(ctx, categorySlug)
	items, _ := args.Get(0).([]models.MenuItem)
	return items, args.Error(1)
}

func (m *mockMenu) BySlug(ctx context.Context, categorySlug, itemSlug string) (*models.MenuItem, error) {
	args := m.Called(ctx, categorySlug, itemSlug)
	item, _ := args.Get(0).(*models.MenuItem)
	return item, args.Error(1)
}

type mockCategories struct{ mock.Mock }

func (m *mockCategories) Create(ctx context.Context, in services.CreateCategoryInput) (*models.Category, error) {
	args := m.Called(ctx, in)
	c, _ := args.Get(0).(*models.Category)
	return c, args.Error(1)
}

func (m *mockCategories) Get(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*models.Category)
	return c, args.Error(1)
}

func (m *mockCategories) List(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	cs, _ := args.Get(0).([]models.Category)
	return cs, args.Error(1)
}

func (m *mockCategories) Update(ctx context.Context, id primitive.ObjectID, update models.CategoryUpdate) (*models.Category, error) {
	args := m.Called(ctx, id, update)
	c, _ := args.Get(0).(*models.Category)
	return c, args.Error(1)
}

type mockOrders struct{ mock.Mock }

func (m *mockOrders) Create(ctx context.Context, customer primitive.ObjectID, in services.CreateOrderInput) (*models.Order, error) {
	args := m.Called(ctx, customer, in)
	o, _ := args.Get(0).(*models.Order)
	return o, args.Error(1)
}

func (m *mockOrders) Get(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*models.Order)
	return o, args.Error(1)
}

func (m *mockOrders) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) (*models.Order, error) {
	args := m.Called(ctx, id, status)
	o, _ := args.Get(0).(*models.Order)
	return o, args.Error(1)
}

func (m *mockOrders) UpdatePaymentStatus(ctx context.Context, id primitive.ObjectID, status models.PaymentStatus) (*models.Order, error) {
	args := m.Called(ctx, id, status)
	o, _ := args.Get(0).(*models.Order)
	return o, args.Error(1)
}

func (m *mockOrders) Cancel(ctx context.Context, id primitive.ObjectID, reason string) (*models.Order, error) {
	args := m.Called(ctx, id, reason)
	o, _ := args.Get(0).(*models.Order)
	return o, args.Error(1)
}

func (m *mockOrders) Pay(ctx context.Context, id primitive.ObjectID, in services.PayOrderInput) (*models.Order, error) {
	args := m.Called(ctx, id, in)
	o, _ := args.Get(0).(*models.Order)
	return o, args.Error(1)
}

func (m *mockOrders) ListByCustomer(ctx context.Context, customer primitive.ObjectID) ([]models.Order, error) {
	args := m.Called(ctx, customer)
	os, _ := args.Get(0).([]models.Order)
	return os, args.Error(1)
}

func (m *mockOrders) ListByRestaurant(ctx context.Context, restaurant primitive.ObjectID, status models.OrderStatus) ([]models.Order, error) {
	args := m.Called(ctx, restaurant, status)
	os, _ := args.Get(0).([]models.Order)
	return os, args.Error(1)
}

func (m *mockOrders) ListByStatus(ctx context.Context, restaurant primitive.ObjectID, status models.OrderStatus) ([]models.Order, error) {
	args := m.Called(ctx, restaurant, status)
	os, _ := args.Get(0).([]models.Order)
	return os, args.Error(1)
}

func (m *mockOrders) DailyStats(ctx context.Context, restaurant primitive.ObjectID, from, to time.Time) ([]models.OrderDayStats, error) {
	args := m.Called(ctx, restaurant, from, to)
	stats, _ := args.Get(0).([]models.OrderDayStats)
	return stats, args.Error(1)
}

func (m *mockOrders) Ticket(ctx context.Context, id primitive.ObjectID) ([]byte, error) {
	args := m.Called(ctx, id)
	png, _ := args.Get(0).([]byte)
	return png, args.Error(1)
}

type mockReservations struct{ mock.Mock }

func (m *mockReservations) Create(ctx context.Context, customer primitive.ObjectID, in services.CreateReservationInput) (*models.Reservation, error) {
	args := m.Called(ctx, customer, in)
	r, _ := args.Get(0).(*models.Reservation)
	return r, args.Error(1)
}

func (m *mockReservations) Get(ctx context.Context, id primitive.ObjectID) (*models.Reservation, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*models.Reservation)
	return r, args.Error(1)
}

func (m *mockReservations) Update(ctx context.Context, id primitive.ObjectID, in services.UpdateReservationInput) (*models.Reservation, error) {
	args := m.Called(ctx, id, in)
	r, _ := args.Get(0).(*models.Reservation)
	return r, args.Error(1)
}

func (m *mockReservations) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.ReservationStatus) (*models.Reservation, error) {
	args := m.Called(ctx, id, status)
	r, _ := args.Get(0).(*models.Reservation)
	return r, args.Error(1)
}

func (m *mockReservations) Cancel(ctx context.Context, id primitive.ObjectID, reason string) (*models.Reservation, error) {
	args := m.Called(ctx, id, reason)
	r, _ := args.Get(0).(*models.Reservation)
	return r, args.Error(1)
}

func (m *mockReservations) Available(ctx context.Context, restaurant primitive.ObjectID, day time.Time, clock string) (bool, error) {
	args := m.Called(ctx, restaurant, day, clock)
	return args.Bool(0), args.Error(1)
}

func (m *mockReservations) ListByCustomer(ctx context.Context, customer primitive.ObjectID) ([]models.Reservation, error) {
	args := m.Called(ctx, customer)
	rs, _ := args.Get(0).([]models.Reservation)
	return rs, args.Error(1)
}

func (m *mockReservations) ListByRestaurant(ctx context.Context, restaurant primitive.ObjectID, status models.ReservationStatus, day *time.Time) ([]models.Reservation, error) {
	args := m.Called(ctx, restaurant, status, day)
	rs, _ := args.Get(0).([]models.Reservation)
	return rs, args.Error(1)
}

func (m *mockReservations) CountForDay(ctx context.Context, restaurant primitive.ObjectID, day time.Time) (int64, error) {
	args := m.Called(ctx, restaurant, day)
	return args.Get(0).(int64), args.Error(1)
}

type mockReviews struct{ mock.Mock }

func (m *mockReviews) Create(ctx context.Context, customer primitive.ObjectID, in services.CreateReviewInput) (*models.Review, error) {
	args := m.Called(ctx, customer, in)
	r, _ := args.Get(0).(*models.Review)
	return r, args.Error(1)
}

func (m *mockReviews) Get(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*models.Review)
	return r, args.Error(1)
}

func (m *mockReviews) Update(ctx context.Context, id primitive.ObjectID, update models.ReviewUpdate) (*models.Review, error) {
	args := m.Called(ctx, id, update)
	r, _ := args.Get(0).(*models.Review)
	return r, args.Error(1)
}

func (m *mockReviews) Delete(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*models.Review)
	return r, args.Error(1)
}

func (m *mockReviews) Respond(ctx context.Context, id primitive.ObjectID, text string) (*models.Review, error) {
	args := m.Called(ctx, id, text)
	r, _ := args.Get(0).(*models.Review)
	return r, args.Error(1)
}

func (m *mockReviews) Analytics(ctx context.Context, restaurant primitive.ObjectID) ([]models.RatingBucket, error) {
	args := m.Called(ctx, restaurant)
	b, _ := args.Get(0).([]models.RatingBucket)
	return b, args.Error(1)
}

func (m *mockReviews) ListByRestaurant(ctx context.Context, restaurant primitive.ObjectID) ([]models.Review, error) {
	args := m.Called(ctx, restaurant)
	rs, _ := args.Get(0).([]models.Review)
	return rs, args.Error(1)
}

func (m *mockReviews) ListByCustomer(ctx context.Context, customer primitive.ObjectID) ([]models.Review, error) {
	args := m.Called(ctx, customer)
	rs, _ := args.Get(0).([]models.Review)
	return rs, args.Error(1)
}

// tokenAuth resolves bearer tokens from a fixed table.
type tokenAuth map[string]*models.User

func (a tokenAuth) Authenticate(_ context.Context, token string) (*models.User, error) {
	if user, ok := a[token]; ok {
		return user, nil
	}
	return nil, services.ErrUnauthorized
}
