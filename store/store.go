// Package store holds the MongoDB repositories behind the service layer.
package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	UsersCollection         = "users"
	RefreshTokensCollection = "refresh_tokens"
	RestaurantsCollection   = "restaurants"
	CategoriesCollection    = "categories"
	MenuItemsCollection     = "menu_items"
	OrdersCollection        = "orders"
	ReservationsCollection  = "reservations"
	ReviewsCollection       = "reviews"
	CountersCollection      = "counters"
)

// Store groups one repository per collection of the database.
type Store struct {
	Users         *UserStore
	RefreshTokens *RefreshTokenStore
	Restaurants   *RestaurantStore
	Categories    *CategoryStore
	MenuItems     *MenuItemStore
	Orders        *OrderStore
	Reservations  *ReservationStore
	Reviews       *ReviewStore
	Counters      *MongoSequencer
}

func New(db *mongo.Database) *Store {
	return &Store{
		Users:         NewUserStore(db.Collection(UsersCollection)),
		RefreshTokens: NewRefreshTokenStore(db.Collection(RefreshTokensCollection)),
		Restaurants:   NewRestaurantStore(db.Collection(RestaurantsCollection)),
		Categories:    NewCategoryStore(db.Collection(CategoriesCollection)),
		MenuItems:     NewMenuItemStore(db.Collection(MenuItemsCollection)),
		Orders:        NewOrderStore(db.Collection(OrdersCollection)),
		Reservations:  NewReservationStore(db.Collection(ReservationsCollection)),
		Reviews:       NewReviewStore(db.Collection(ReviewsCollection)),
		Counters:      NewMongoSequencer(db.Collection(CountersCollection)),
	}
}

var now = time.Now

// setIf copies *v under key when the caller supplied it.
func setIf[T any](set bson.M, key string, v *T) {
	if v != nil {
		set[key] = *v
	}
}

// updateOne applies update to the single document matching filter and decodes the result into out.
func updateOne(ctx context.Context, coll *mongo.Collection, filter, update interface{}, out interface{}) error {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	return coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(out)
}

// findAll runs a find and decodes every document; no match yields an empty slice.
func findAll[T any](ctx context.Context, coll *mongo.Collection, filter interface{}, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// requireMatch turns an update that matched nothing into mongo.ErrNoDocuments.
func requireMatch(res *mongo.UpdateResult, err error) error {
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// IsNotFound reports whether err means no document matched.
func IsNotFound(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
