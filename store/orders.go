package store

import (
	"context"
	"time"

	"go_trial/foodhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OrderStore struct {
	coll *mongo.Collection
}

func NewOrderStore(coll *mongo.Collection) *OrderStore {
	return &OrderStore{coll: coll}
}

func (s *OrderStore) Create(ctx context.Context, order *models.Order) error {
	res, err := s.coll.InsertOne(ctx, order)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		order.ID = id
	}
	return nil
}

func (s *OrderStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&order); err != nil {
		return nil, err
	}
	return &order, nil
}

// List returns matching orders newest first.
func (s *OrderStore) List(ctx context.Context, filter models.OrderFilter) ([]models.Order, error) {
	query := bson.M{}
	if filter.Customer != nil {
		query["customer"] = *filter.Customer
	}
	if filter.Restaurant != nil {
		query["restaurant"] = *filter.Restaurant
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return findAll[models.Order](ctx, s.coll, query, opts)
}

func (s *OrderStore) set(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Order, error) {
	set["updatedAt"] = now()
	var order models.Order
	if err := updateOne(ctx, s.coll, bson.M{"_id": id}, bson.M{"$set": set}, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *OrderStore) SetStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus, completedAt *time.Time) (*models.Order, error) {
	set := bson.M{"status": status}
	setIf(set, "completedAt", completedAt)
	return s.set(ctx, id, set)
}

// SetPayment keeps the stored payment reference when ref is empty.
func (s *OrderStore) SetPayment(ctx context.Context, id primitive.ObjectID, status models.PaymentStatus, ref string) (*models.Order, error) {
	set := bson.M{"paymentStatus": status}
	if ref != "" {
		set["paymentRef"] = ref
	}
	return s.set(ctx, id, set)
}

func (s *OrderStore) Cancel(ctx context.Context, id primitive.ObjectID, specialRequests string, at time.Time) (*models.Order, error) {
	return s.set(ctx, id, bson.M{
		"status":          models.OrderCancelled,
		"specialRequests": specialRequests,
		"completedAt":     at,
	})
}

// DailyStats groups non-cancelled orders created in [from, to] by UTC calendar day.
func (s *OrderStore) DailyStats(ctx context.Context, restaurant primitive.ObjectID, from, to time.Time) ([]models.OrderDayStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"restaurant": restaurant,
			"status":     bson.M{"$ne": models.OrderCancelled},
			"createdAt":  bson.M{"$gte": from, "$lte": to},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":     bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$createdAt"}},
			"count":   bson.M{"$sum": 1},
			"revenue": bson.M{"$sum": "$totalAmount"},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}
	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	stats := []models.OrderDayStats{}
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}
