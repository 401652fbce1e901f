package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go_trial/foodhub/events"
	"go_trial/foodhub/models"
	"go_trial/foodhub/utils"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// In-memory repositories that behave like the Mongo ones for the cases exercised here.

type fakeUsers struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]models.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: map[primitive.ObjectID]models.User{}}
}

func (f *fakeUsers) Create(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUsers) find(match func(models.User) bool) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if match(u) {
			found := u
			return &found, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUsers) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	return f.find(func(u models.User) bool { return u.ID == id })
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (*models.User, error) {
	return f.find(func(u models.User) bool { return u.Username == username })
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return f.find(func(u models.User) bool { return u.Email == email })
}

func (f *fakeUsers) GetByResetToken(_ context.Context, token string) (*models.User, error) {
	return f.find(func(u models.User) bool { return u.ResetToken != "" && u.ResetToken == token })
}

func (f *fakeUsers) SetResetToken(_ context.Context, id primitive.ObjectID, token string, expiry time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	u.ResetToken = token
	u.ResetTokenExpiry = &expiry
	f.users[id] = u
	return nil
}

func (f *fakeUsers) SetPassword(_ context.Context, id primitive.ObjectID, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	u.PasswordHash = hash
	u.ResetToken = ""
	u.ResetTokenExpiry = nil
	f.users[id] = u
	return nil
}

type fakeRefreshTokens struct {
	tokens map[primitive.ObjectID][]string
}

func newFakeRefreshTokens() *fakeRefreshTokens {
	return &fakeRefreshTokens{tokens: map[primitive.ObjectID][]string{}}
}

func (f *fakeRefreshTokens) Save(_ context.Context, user primitive.ObjectID, token string, _ time.Time) error {
	f.tokens[user] = append(f.tokens[user], token)
	return nil
}

func (f *fakeRefreshTokens) Exists(_ context.Context, user primitive.ObjectID, token string) (bool, error) {
	for _, t := range f.tokens[user] {
		if t == token {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRefreshTokens) DeleteForUser(_ context.Context, user primitive.ObjectID) error {
	delete(f.tokens, user)
	return nil
}

type fakeRestaurants struct {
	mu          sync.Mutex
	restaurants map[primitive.ObjectID]models.Restaurant
}

func newFakeRestaurants(seed ...models.Restaurant) *fakeRestaurants {
	f := &fakeRestaurants{restaurants: map[primitive.ObjectID]models.Restaurant{}}
	for _, r := range seed {
		f.restaurants[r.ID] = r
	}
	return f
}

func (f *fakeRestaurants) Create(_ context.Context, r *models.Restaurant) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	f.restaurants[r.ID] = *r
	return nil
}

func (f *fakeRestaurants) GetByID(_ context.Context, id primitive.ObjectID) (*models.Restaurant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.restaurants[id]
	if !ok || r.IsDeleted {
		return nil, mongo.ErrNoDocuments
	}
	return &r, nil
}

func (f *fakeRestaurants) List(_ context.Context, filter models.RestaurantFilter) ([]models.Restaurant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Restaurant{}
	for _, r := range f.restaurants {
		if r.IsDeleted {
			continue
		}
		if filter.ActiveOnly && r.Status != models.RestaurantActive {
			continue
		}
		if filter.Owner != nil && r.Owner != *filter.Owner {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(r.Name+" "+r.CuisineType+" "+r.Address), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeRestaurants) Update(_ context.Context, id primitive.ObjectID, update models.RestaurantUpdate) (*models.Restaurant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.restaurants[id]
	if !ok || r.IsDeleted {
		return nil, mongo.ErrNoDocuments
	}
	if update.Name != nil {
		r.Name = *update.Name
	}
	if update.Status != nil {
		r.Status = *update.Status
	}
	f.restaurants[id] = r
	return &r, nil
}

func (f *fakeRestaurants) SoftDelete(_ context.Context, id primitive.ObjectID) (*models.Restaurant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.restaurants[id]
	if !ok || r.IsDeleted {
		return nil, mongo.ErrNoDocuments
	}
	r.IsDeleted = true
	r.Status = models.RestaurantInactive
	f.restaurants[id] = r
	return &r, nil
}

func (f *fakeRestaurants) SetRating(_ context.Context, id primitive.ObjectID, summary models.RatingSummary) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.restaurants[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	r.Rating = summary.Average
	r.ReviewCount = summary.Count
	f.restaurants[id] = r
	return nil
}

type fakeCategories struct {
	categories map[primitive.ObjectID]models.Category
}

func newFakeCategories(seed ...models.Category) *fakeCategories {
	f := &fakeCategories{categories: map[primitive.ObjectID]models.Category{}}
	for _, c := range seed {
		f.categories[c.ID] = c
	}
	return f
}

func (f *fakeCategories) Create(_ context.Context, c *models.Category) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	f.categories[c.ID] = *c
	return nil
}

func (f *fakeCategories) GetByID(_ context.Context, id primitive.ObjectID) (*models.Category, error) {
	c, ok := f.categories[id]
	if !ok || c.IsDeleted {
		return nil, mongo.ErrNoDocuments
	}
	return &c, nil
}

func (f *fakeCategories) GetBySlug(_ context.Context, slug string) (*models.Category, error) {
	for _, c := range f.categories {
		if c.Slug == slug && !c.IsDeleted {
			found := c
			return &found, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeCategories) List(_ context.Context) ([]models.Category, error) {
	out := []models.Category{}
	for _, c := range f.categories {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCategories) Update(_ context.Context, id primitive.ObjectID, update models.CategoryUpdate) (*models.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	if update.Name != nil {
		c.Name = *update.Name
	}
	if update.Slug != nil {
		c.Slug = *update.Slug
	}
	if update.Description != nil {
		c.Description = *update.Description
	}
	f.categories[id] = c
	return &c, nil
}

func (f *fakeCategories) SlugExists(_ context.Context, slug string) (bool, error) {
	for _, c := range f.categories {
		if c.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

type fakeMenu struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]models.MenuItem
}

func newFakeMenu(seed ...models.MenuItem) *fakeMenu {
	f := &fakeMenu{items: map[primitive.ObjectID]models.MenuItem{}}
	for _, m := range seed {
		f.items[m.ID] = m
	}
	return f
}

func (f *fakeMenu) Create(_ context.Context, item *models.MenuItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	f.items[item.ID] = *item
	return nil
}

func (f *fakeMenu) GetByID(_ context.Context, id primitive.ObjectID) (*models.MenuItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.items[id]
	if !ok || m.IsDeleted {
		return nil, mongo.ErrNoDocuments
	}
	return &m, nil
}

func (f *fakeMenu) GetBySlug(_ context.Context, slug string) (*models.MenuItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.items {
		if m.Slug == slug && !m.IsDeleted {
			found := m
			return &found, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeMenu) List(_ context.Context, filter models.MenuFilter) ([]models.MenuItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.MenuItem{}
	for _, m := range f.items {
		if m.IsDeleted {
			continue
		}
		if filter.Restaurant != nil && m.Restaurant != *filter.Restaurant {
			continue
		}
		if filter.Category != nil && m.Category != *filter.Category {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(m.Name), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeMenu) Update(_ context.Context, id primitive.ObjectID, update models.MenuItemUpdate) (*models.MenuItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.items[id]
	if !ok || m.IsDeleted {
		return nil, mongo.ErrNoDocuments
	}
	if update.Name != nil {
		m.Name = *update.Name
	}
	if update.Slug != nil {
		m.Slug = *update.Slug
	}
	if update.Price != nil {
		m.Price = *update.Price
	}
	if update.IsAvailable != nil {
		m.IsAvailable = *update.IsAvailable
	}
	if update.DiscountPercent != nil {
		m.DiscountPercent = *update.DiscountPercent
	}
	f.items[id] = m
	return &m, nil
}

func (f *fakeMenu) SoftDelete(_ context.Context, id primitive.ObjectID) (*models.MenuItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.items[id]
	if !ok || m.IsDeleted {
		return nil, mongo.ErrNoDocuments
	}
	m.IsDeleted = true
	f.items[id] = m
	return &m, nil
}

func (f *fakeMenu) CategoryIDs(_ context.Context, restaurant primitive.ObjectID) ([]primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := map[primitive.ObjectID]bool{}
	out := []primitive.ObjectID{}
	for _, m := range f.items {
		if m.Restaurant == restaurant && !m.IsDeleted && !seen[m.Category] {
			seen[m.Category] = true
			out = append(out, m.Category)
		}
	}
	return out, nil
}

func (f *fakeMenu) SlugExists(_ context.Context, slug string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.items {
		if m.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

type fakeOrders struct {
	mu     sync.Mutex
	orders map[primitive.ObjectID]models.Order
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{orders: map[primitive.ObjectID]models.Order{}}
}

func (f *fakeOrders) Create(_ context.Context, order *models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	stored := *order
	stored.Items = append([]models.OrderItem(nil), order.Items...)
	f.orders[order.ID] = stored
	return nil
}

func (f *fakeOrders) GetByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &o, nil
}

func (f *fakeOrders) List(_ context.Context, filter models.OrderFilter) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Order{}
	for _, o := range f.orders {
		if filter.Customer != nil && o.Customer != *filter.Customer {
			continue
		}
		if filter.Restaurant != nil && o.Restaurant != *filter.Restaurant {
			continue
		}
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeOrders) update(id primitive.ObjectID, fn func(*models.Order)) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	fn(&o)
	f.orders[id] = o
	return &o, nil
}

func (f *fakeOrders) SetStatus(_ context.Context, id primitive.ObjectID, status models.OrderStatus, completedAt *time.Time) (*models.Order, error) {
	return f.update(id, func(o *models.Order) {
		o.Status = status
		if completedAt != nil {
			o.CompletedAt = completedAt
		}
	})
}

func (f *fakeOrders) SetPayment(_ context.Context, id primitive.ObjectID, status models.PaymentStatus, ref string) (*models.Order, error) {
	return f.update(id, func(o *models.Order) {
		o.PaymentStatus = status
		if ref != "" {
			o.PaymentRef = ref
		}
	})
}

func (f *fakeOrders) Cancel(_ context.Context, id primitive.ObjectID, specialRequests string, at time.Time) (*models.Order, error) {
	return f.update(id, func(o *models.Order) {
		o.Status = models.OrderCancelled
		o.SpecialRequests = specialRequests
		o.CompletedAt = &at
	})
}

func (f *fakeOrders) DailyStats(_ context.Context, restaurant primitive.ObjectID, from, to time.Time) ([]models.OrderDayStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	byDay := map[string]*models.OrderDayStats{}
	for _, o := range f.orders {
		if o.Restaurant != restaurant || o.Status == models.OrderCancelled {
			continue
		}
		if o.CreatedAt.Before(from) || o.CreatedAt.After(to) {
			continue
		}
		day := o.CreatedAt.UTC().Format(models.DayLayout)
		if byDay[day] == nil {
			byDay[day] = &models.OrderDayStats{Date: day}
		}
		byDay[day].Count++
		byDay[day].Revenue += o.TotalAmount
	}
	out := []models.OrderDayStats{}
	for _, s := range byDay {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

type fakeReservations struct {
	mu           sync.Mutex
	reservations map[primitive.ObjectID]models.Reservation
}

func newFakeReservations() *fakeReservations {
	return &fakeReservations{reservations: map[primitive.ObjectID]models.Reservation{}}
}

func (f *fakeReservations) Create(_ context.Context, r *models.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	f.reservations[r.ID] = *r
	return nil
}

func (f *fakeReservations) GetByID(_ context.Context, id primitive.ObjectID) (*models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reservations[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &r, nil
}

func (f *fakeReservations) List(_ context.Context, filter models.ReservationFilter) ([]models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Reservation{}
	for _, r := range f.reservations {
		if filter.Customer != nil && r.Customer != *filter.Customer {
			continue
		}
		if filter.Restaurant != nil && r.Restaurant != *filter.Restaurant {
			continue
		}
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		if filter.Day != nil && !r.Date.Equal(*filter.Day) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func statusIn(status models.ReservationStatus, set []models.ReservationStatus) bool {
	for _, s := range set {
		if s == status {
			return true
		}
	}
	return false
}

func (f *fakeReservations) CountInSlot(_ context.Context, restaurant primitive.ObjectID, date time.Time, clock string, released []models.ReservationStatus, exclude primitive.ObjectID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, r := range f.reservations {
		if r.ID != exclude && r.Restaurant == restaurant && r.Date.Equal(date) && r.Time == clock && !statusIn(r.Status, released) {
			n++
		}
	}
	return n, nil
}

func (f *fakeReservations) CountForDay(_ context.Context, restaurant primitive.ObjectID, day time.Time, excluded []models.ReservationStatus) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, r := range f.reservations {
		if r.Restaurant == restaurant && r.Date.Equal(day) && !statusIn(r.Status, excluded) {
			n++
		}
	}
	return n, nil
}

func (f *fakeReservations) update(id primitive.ObjectID, fn func(*models.Reservation)) (*models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reservations[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	fn(&r)
	f.reservations[id] = r
	return &r, nil
}

func (f *fakeReservations) Update(_ context.Context, id primitive.ObjectID, update models.ReservationUpdate) (*models.Reservation, error) {
	return f.update(id, func(r *models.Reservation) {
		if update.Date != nil {
			r.Date = *update.Date
		}
		if update.Time != nil {
			r.Time = *update.Time
		}
		if update.PartySize != nil {
			r.PartySize = *update.PartySize
		}
		if update.SpecialRequests != nil {
			r.SpecialRequests = *update.SpecialRequests
		}
		if update.Status != nil {
			r.Status = *update.Status
		}
	})
}

func (f *fakeReservations) SetStatus(_ context.Context, id primitive.ObjectID, status models.ReservationStatus, completedAt *time.Time) (*models.Reservation, error) {
	return f.update(id, func(r *models.Reservation) {
		r.Status = status
		if completedAt != nil {
			r.CompletedAt = completedAt
		}
	})
}

func (f *fakeReservations) Cancel(_ context.Context, id primitive.ObjectID, reason, specialRequests string, at time.Time) (*models.Reservation, error) {
	return f.update(id, func(r *models.Reservation) {
		r.Status = models.ReservationCancelled
		r.CancelReason = reason
		r.SpecialRequests = specialRequests
		r.CompletedAt = &at
	})
}

type fakeReviews struct {
	mu      sync.Mutex
	reviews map[primitive.ObjectID]models.Review
}

func newFakeReviews() *fakeReviews {
	return &fakeReviews{reviews: map[primitive.ObjectID]models.Review{}}
}

func (f *fakeReviews) Create(_ context.Context, r *models.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	f.reviews[r.ID] = *r
	return nil
}

func (f *fakeReviews) GetByID(_ context.Context, id primitive.ObjectID) (*models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reviews[id]
	if !ok || r.IsDeleted {
		return nil, mongo.ErrNoDocuments
	}
	return &r, nil
}

func (f *fakeReviews) ExistsActive(_ context.Context, customer, restaurant primitive.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reviews {
		if r.Customer == customer && r.Restaurant == restaurant && !r.IsDeleted {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReviews) List(_ context.Context, filter models.ReviewFilter) ([]models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Review{}
	for _, r := range f.reviews {
		if r.IsDeleted {
			continue
		}
		if filter.Customer != nil && r.Customer != *filter.Customer {
			continue
		}
		if filter.Restaurant != nil && r.Restaurant != *filter.Restaurant {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeReviews) update(id primitive.ObjectID, fn func(*models.Review)) (*models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reviews[id]
	if !ok || r.IsDeleted {
		return nil, mongo.ErrNoDocuments
	}
	fn(&r)
	f.reviews[id] = r
	return &r, nil
}

func (f *fakeReviews) Update(_ context.Context, id primitive.ObjectID, update models.ReviewUpdate) (*models.Review, error) {
	return f.update(id, func(r *models.Review) {
		if update.Rating != nil {
			r.Rating = *update.Rating
		}
		if update.Comment != nil {
			r.Comment = *update.Comment
		}
	})
}

func (f *fakeReviews) SoftDelete(_ context.Context, id primitive.ObjectID) (*models.Review, error) {
	return f.update(id, func(r *models.Review) { r.IsDeleted = true })
}

func (f *fakeReviews) SetResponse(_ context.Context, id primitive.ObjectID, response models.ReviewResponse) (*models.Review, error) {
	return f.update(id, func(r *models.Review) { r.Response = &response })
}

func (f *fakeReviews) Summary(_ context.Context, restaurant primitive.ObjectID) (models.RatingSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var sum, count int64
	for _, r := range f.reviews {
		if r.Restaurant == restaurant && !r.IsDeleted {
			sum += int64(r.Rating)
			count++
		}
	}
	if count == 0 {
		return models.RatingSummary{}, nil
	}
	return models.RatingSummary{Average: float64(sum) / float64(count), Count: count}, nil
}

func (f *fakeReviews) Histogram(_ context.Context, restaurant primitive.ObjectID) ([]models.RatingBucket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := map[int]int64{}
	for _, r := range f.reviews {
		if r.Restaurant == restaurant && !r.IsDeleted {
			counts[r.Rating]++
		}
	}
	out := []models.RatingBucket{}
	for rating, n := range counts {
		out = append(out, models.RatingBucket{Rating: rating, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	return out, nil
}

type fakeSequencer struct {
	mu   sync.Mutex
	next map[string]int64
}

func newFakeSequencer() *fakeSequencer {
	return &fakeSequencer{next: map[string]int64{}}
}

func (f *fakeSequencer) Next(_ context.Context, kind string, day time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := kind + ":" + day.Format("20060102")
	f.next[key]++
	return f.next[key], nil
}

// Mocks for the side-effect ports.

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) OrderConfirmation(ctx context.Context, order *models.Order, customer *models.User, restaurant *models.Restaurant) error {
	return m.Called(ctx, order, customer, restaurant).Error(0)
}

func (m *mockNotifier) OrderStatusUpdate(ctx context.Context, order *models.Order, customer *models.User, restaurant *models.Restaurant) error {
	return m.Called(ctx, order, customer, restaurant).Error(0)
}

func (m *mockNotifier) OrderCancellation(ctx context.Context, order *models.Order, customer *models.User, restaurant *models.Restaurant, reason string) error {
	return m.Called(ctx, order, customer, restaurant, reason).Error(0)
}

func (m *mockNotifier) PasswordReset(ctx context.Context, user *models.User, resetURL string) error {
	return m.Called(ctx, user, resetURL).Error(0)
}

func (m *mockNotifier) PasswordChanged(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, event events.Event) error {
	return m.Called(ctx, event).Error(0)
}

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) Charge(ctx context.Context, req ChargeRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// quietPublisher accepts every event.
func quietPublisher() *mockPublisher {
	p := &mockPublisher{}
	p.On("Publish", mock.Anything, mock.Anything).Return(nil)
	return p
}

var _ TokenIssuer = (*utils.TokenManager)(nil)
