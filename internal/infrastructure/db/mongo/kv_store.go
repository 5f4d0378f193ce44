package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"

	"github.com/stockflow/dashboard/internal/core/domain"
)

const kvCollection = "kv"

// KVStore implements ports.KeyValueStore on a MongoDB collection, one
// document per key. Writes use majority write concern so a returned Set is
// durable.
type KVStore struct {
	coll *mongo.Collection
}

func NewKVStore(db *mongo.Database) *KVStore {
	wc := options.Collection().SetWriteConcern(writeconcern.Majority())
	return &KVStore{coll: db.Collection(kvCollection, wc)}
}

type kvDoc struct {
	Key   string `bson:"_id"`
	Value []byte `bson:"value"`
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	var doc kvDoc
	if err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrKeyNotFound
		}
		return nil, fmt.Errorf("kv get %q: %w", key, err)
	}
	return doc.Value, nil
}

func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"_id": key},
		kvDoc{Key: key, Value: value},
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("kv set %q: %w", key, err)
	}
	return nil
}

func (s *KVStore) Remove(ctx context.Context, key string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("kv remove %q: %w", key, err)
	}
	return nil
}

func (s *KVStore) Ping(ctx context.Context) error {
	return s.coll.Database().Client().Ping(ctx, nil)
}
