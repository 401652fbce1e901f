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

type ReservationStore struct {
	coll *mongo.Collection
}

func NewReservationStore(coll *mongo.Collection) *ReservationStore {
	return &ReservationStore{coll: coll}
}

func (s *ReservationStore) Create(ctx context.Context, reservation *models.Reservation) error {
	res, err := s.coll.InsertOne(ctx, reservation)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		reservation.ID = id
	}
	return nil
}

func (s *ReservationStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&reservation); err != nil {
		return nil, err
	}
	return &reservation, nil
}

func dayRange(day time.Time) bson.M {
	return bson.M{"$gte": day, "$lt": day.Add(24 * time.Hour)}
}

// List sorts a customer's bookings latest day first and a restaurant's by day then time.
func (s *ReservationStore) List(ctx context.Context, filter models.ReservationFilter) ([]models.Reservation, error) {
	query := bson.M{}
	sort := bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}}
	if filter.Customer != nil {
		query["customer"] = *filter.Customer
		sort = bson.D{{Key: "date", Value: -1}}
	}
	if filter.Restaurant != nil {
		query["restaurant"] = *filter.Restaurant
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Day != nil {
		query["date"] = dayRange(*filter.Day)
	}
	return findAll[models.Reservation](ctx, s.coll, query, options.Find().SetSort(sort))
}

func (s *ReservationStore) CountInSlot(ctx context.Context, restaurant primitive.ObjectID, date time.Time, clock string, released []models.ReservationStatus, exclude primitive.ObjectID) (int64, error) {
	return s.coll.CountDocuments(ctx, slotFilter(restaurant, date, clock, released, exclude))
}

func slotFilter(restaurant primitive.ObjectID, date time.Time, clock string, released []models.ReservationStatus, exclude primitive.ObjectID) bson.M {
	filter := bson.M{
		"restaurant": restaurant,
		"date":       date,
		"time":       clock,
		"status":     bson.M{"$nin": released},
	}
	if !exclude.IsZero() {
		filter["_id"] = bson.M{"$ne": exclude}
	}
	return filter
}

func (s *ReservationStore) CountForDay(ctx context.Context, restaurant primitive.ObjectID, day time.Time, excluded []models.ReservationStatus) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{
		"restaurant": restaurant,
		"date":       dayRange(day),
		"status":     bson.M{"$nin": excluded},
	})
}

func (s *ReservationStore) set(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Reservation, error) {
	set["updatedAt"] = now()
	var reservation models.Reservation
	if err := updateOne(ctx, s.coll, bson.M{"_id": id}, bson.M{"$set": set}, &reservation); err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (s *ReservationStore) Update(ctx context.Context, id primitive.ObjectID, update models.ReservationUpdate) (*models.Reservation, error) {
	set := bson.M{}
	setIf(set, "date", update.Date)
	setIf(set, "time", update.Time)
	setIf(set, "partySize", update.PartySize)
	setIf(set, "specialRequests", update.SpecialRequests)
	setIf(set, "status", update.Status)
	return s.set(ctx, id, set)
}

func (s *ReservationStore) SetStatus(ctx context.Context, id primitive.ObjectID, status models.ReservationStatus, completedAt *time.Time) (*models.Reservation, error) {
	set := bson.M{"status": status}
	setIf(set, "completedAt", completedAt)
	return s.set(ctx, id, set)
}

func (s *ReservationStore) Cancel(ctx context.Context, id primitive.ObjectID, reason, specialRequests string, at time.Time) (*models.Reservation, error) {
	return s.set(ctx, id, bson.M{
		"status":          models.ReservationCancelled,
		"cancelReason":    reason,
		"specialRequests": specialRequests,
		"completedAt":     at,
	})
}
