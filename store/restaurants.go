package store

import (
	"context"
	"regexp"

	"go_trial/foodhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RestaurantStore struct {
	coll *mongo.Collection
}

func NewRestaurantStore(coll *mongo.Collection) *RestaurantStore {
	return &RestaurantStore{coll: coll}
}

func (s *RestaurantStore) Create(ctx context.Context, restaurant *models.Restaurant) error {
	res, err := s.coll.InsertOne(ctx, restaurant)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		restaurant.ID = id
	}
	return nil
}

func (s *RestaurantStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := s.coll.FindOne(ctx, bson.M{"_id": id, "isDeleted": false}).Decode(&restaurant); err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func restaurantQuery(filter models.RestaurantFilter) bson.M {
	query := bson.M{"isDeleted": false}
	if filter.ActiveOnly {
		query["status"] = models.RestaurantActive
	}
	if filter.Owner != nil {
		query["owner"] = *filter.Owner
	}
	if filter.CuisineType != "" {
		query["cuisineType"] = filter.CuisineType
	}
	if filter.PriceRange != "" {
		query["priceRange"] = filter.PriceRange
	}
	if filter.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"cuisineType": pattern},
			bson.M{"address": pattern},
		}
	}
	return query
}

func (s *RestaurantStore) List(ctx context.Context, filter models.RestaurantFilter) ([]models.Restaurant, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return findAll[models.Restaurant](ctx, s.coll, restaurantQuery(filter), opts)
}

func (s *RestaurantStore) Update(ctx context.Context, id primitive.ObjectID, update models.RestaurantUpdate) (*models.Restaurant, error) {
	set := bson.M{"updatedAt": now()}
	setIf(set, "name", update.Name)
	setIf(set, "address", update.Address)
	setIf(set, "phone", update.Phone)
	setIf(set, "email", update.Email)
	setIf(set, "openingHours", update.OpeningHours)
	setIf(set, "description", update.Description)
	setIf(set, "imageUrl", update.ImageURL)
	setIf(set, "cuisineType", update.CuisineType)
	setIf(set, "priceRange", update.PriceRange)
	setIf(set, "status", update.Status)

	var restaurant models.Restaurant
	if err := updateOne(ctx, s.coll, bson.M{"_id": id, "isDeleted": false}, bson.M{"$set": set}, &restaurant); err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (s *RestaurantStore) SoftDelete(ctx context.Context, id primitive.ObjectID) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	update := bson.M{"$set": bson.M{"isDeleted": true, "status": models.RestaurantInactive, "updatedAt": now()}}
	if err := updateOne(ctx, s.coll, bson.M{"_id": id, "isDeleted": false}, update, &restaurant); err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (s *RestaurantStore) SetRating(ctx context.Context, id primitive.ObjectID, summary models.RatingSummary) error {
	return requireMatch(s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"rating": summary.Average, "reviewCount": summary.Count},
	}))
}
