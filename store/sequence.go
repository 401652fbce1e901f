package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const dayKeyLayout = "20060102"

// MongoSequencer keeps one counter document per kind and UTC day.
type MongoSequencer struct {
	coll *mongo.Collection
}

func NewMongoSequencer(coll *mongo.Collection) *MongoSequencer {
	return &MongoSequencer{coll: coll}
}

func (s *MongoSequencer) Next(ctx context.Context, kind string, day time.Time) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": kind + ":" + day.UTC().Format(dayKeyLayout)},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}

// RedisSequencer counts with INCR; keys outlive their day by a day.
type RedisSequencer struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSequencer(client *redis.Client) *RedisSequencer {
	return &RedisSequencer{client: client, ttl: 48 * time.Hour}
}

func (s *RedisSequencer) key(kind string, day time.Time) string {
	return "foodhub:seq:" + kind + ":" + day.UTC().Format(dayKeyLayout)
}

func (s *RedisSequencer) Next(ctx context.Context, kind string, day time.Time) (int64, error) {
	key := s.key(kind, day)
	var incr *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, s.ttl)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return incr.Val(), nil
}
