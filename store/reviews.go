package store

import (
	"context"

	"go_trial/foodhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ReviewStore struct {
	coll *mongo.Collection
}

func NewReviewStore(coll *mongo.Collection) *ReviewStore {
	return &ReviewStore{coll: coll}
}

func (s *ReviewStore) Create(ctx context.Context, review *models.Review) error {
	res, err := s.coll.InsertOne(ctx, review)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		review.ID = id
	}
	return nil
}

func live(id primitive.ObjectID) bson.M {
	return bson.M{"_id": id, "isDeleted": false}
}

func (s *ReviewStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	var review models.Review
	if err := s.coll.FindOne(ctx, live(id)).Decode(&review); err != nil {
		return nil, err
	}
	return &review, nil
}

func (s *ReviewStore) ExistsActive(ctx context.Context, customer, restaurant primitive.ObjectID) (bool, error) {
	n, err := s.coll.CountDocuments(ctx, bson.M{"customer": customer, "restaurant": restaurant, "isDeleted": false})
	return n > 0, err
}

func (s *ReviewStore) List(ctx context.Context, filter models.ReviewFilter) ([]models.Review, error) {
	query := bson.M{"isDeleted": false}
	if filter.Customer != nil {
		query["customer"] = *filter.Customer
	}
	if filter.Restaurant != nil {
		query["restaurant"] = *filter.Restaurant
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return findAll[models.Review](ctx, s.coll, query, opts)
}

func (s *ReviewStore) set(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Review, error) {
	set["updatedAt"] = now()
	var review models.Review
	if err := updateOne(ctx, s.coll, live(id), bson.M{"$set": set}, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

func (s *ReviewStore) Update(ctx context.Context, id primitive.ObjectID, update models.ReviewUpdate) (*models.Review, error) {
	set := bson.M{}
	setIf(set, "rating", update.Rating)
	setIf(set, "comment", update.Comment)
	return s.set(ctx, id, set)
}

func (s *ReviewStore) SoftDelete(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	return s.set(ctx, id, bson.M{"isDeleted": true})
}

func (s *ReviewStore) SetResponse(ctx context.Context, id primitive.ObjectID, response models.ReviewResponse) (*models.Review, error) {
	var review models.Review
	update := bson.M{"$set": bson.M{"response": response}}
	if err := updateOne(ctx, s.coll, live(id), update, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

// Summary averages the rating field of live reviews; sub-ratings are ignored.
func (s *ReviewStore) Summary(ctx context.Context, restaurant primitive.ObjectID) (models.RatingSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"restaurant": restaurant, "isDeleted": false}}},
		{{Key: "$group", Value: bson.M{
			"_id":          nil,
			"avgRating":    bson.M{"$avg": "$rating"},
			"totalReviews": bson.M{"$sum": 1},
		}}},
	}
	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return models.RatingSummary{}, err
	}
	var rows []models.RatingSummary
	if err := cursor.All(ctx, &rows); err != nil {
		return models.RatingSummary{}, err
	}
	if len(rows) == 0 {
		return models.RatingSummary{}, nil
	}
	return rows[0], nil
}

func (s *ReviewStore) Histogram(ctx context.Context, restaurant primitive.ObjectID) ([]models.RatingBucket, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"restaurant": restaurant, "isDeleted": false}}},
		{{Key: "$group", Value: bson.M{"_id": "$rating", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.M{"_id": -1}}},
	}
	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	buckets := []models.RatingBucket{}
	if err := cursor.All(ctx, &buckets); err != nil {
		return nil, err
	}
	return buckets, nil
}
