package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/admindash/console/internal/core/domain"
)

const tokenCollection = "client_tokens"

// MongoTokenStore keeps the console credential as one document keyed by the
// store key.
type MongoTokenStore struct {
	coll *mongo.Collection
	key  string
}

func NewTokenStore(db *mongo.Database, key string) *MongoTokenStore {
	if key == "" {
		key = "token"
	}
	return &MongoTokenStore{coll: db.Collection(tokenCollection), key: key}
}

type tokenDoc struct {
	Key       string `bson:"_id"`
	Token     string `bson:"token"`
	UpdatedAt int64  `bson:"updated_at"`
}

func (s *MongoTokenStore) Get(ctx context.Context) (string, error) {
	var doc tokenDoc
	if err := s.coll.FindOne(ctx, bson.M{"_id": s.key}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", domain.ErrNoCredential
		}
		return "", fmt.Errorf("find token: %w", err)
	}
	if doc.Token == "" {
		return "", domain.ErrNoCredential
	}
	return doc.Token, nil
}

func (s *MongoTokenStore) Set(ctx context.Context, token string) error {
	if token == "" {
		return s.Clear(ctx)
	}

	doc := tokenDoc{Key: s.key, Token: token, UpdatedAt: time.Now().UTC().Unix()}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": s.key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert token: %w", err)
	}
	return nil
}

// Clear deletes the document; a missing document is not an error.
func (s *MongoTokenStore) Clear(ctx context.Context) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": s.key}); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

func (s *MongoTokenStore) Ping(ctx context.Context) error {
	return s.coll.Database().Client().Ping(ctx, nil)
}
