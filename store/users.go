package store

import (
	"context"
	"time"

	"go_trial/foodhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserStore struct {
	coll *mongo.Collection
}

func NewUserStore(coll *mongo.Collection) *UserStore {
	return &UserStore{coll: coll}
}

func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	res, err := s.coll.InsertOne(ctx, user)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}
	return nil
}

func (s *UserStore) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	if err := s.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"username": username})
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *UserStore) GetByResetToken(ctx context.Context, token string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"resetToken": token})
}

func (s *UserStore) SetResetToken(ctx context.Context, id primitive.ObjectID, token string, expiry time.Time) error {
	return requireMatch(s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"resetToken": token, "resetTokenExpiry": expiry, "updatedAt": now()},
	}))
}

// SetPassword stores the new hash and clears any pending reset token.
func (s *UserStore) SetPassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	return requireMatch(s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set":   bson.M{"password": hash, "updatedAt": now()},
		"$unset": bson.M{"resetToken": "", "resetTokenExpiry": ""},
	}))
}

type RefreshTokenStore struct {
	coll *mongo.Collection
}

func NewRefreshTokenStore(coll *mongo.Collection) *RefreshTokenStore {
	return &RefreshTokenStore{coll: coll}
}

func (s *RefreshTokenStore) Save(ctx context.Context, user primitive.ObjectID, token string, expires time.Time) error {
	_, err := s.coll.InsertOne(ctx, bson.M{
		"user":      user,
		"token":     token,
		"expiresAt": expires,
		"createdAt": now(),
	})
	return err
}

func (s *RefreshTokenStore) Exists(ctx context.Context, user primitive.ObjectID, token string) (bool, error) {
	n, err := s.coll.CountDocuments(ctx, bson.M{
		"user":      user,
		"token":     token,
		"expiresAt": bson.M{"$gt": now()},
	})
	return n > 0, err
}

func (s *RefreshTokenStore) DeleteForUser(ctx context.Context, user primitive.ObjectID) error {
	_, err := s.coll.DeleteMany(ctx, bson.M{"user": user})
	return err
}
