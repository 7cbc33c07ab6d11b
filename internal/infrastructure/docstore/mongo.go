package docstore

import (
	"context"
	"errors"
	"time"

	"nueracare-api/internal/domain/entity"
	"nueracare-api/internal/domain/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoDB server error codes that map onto the store taxonomy.
const (
	mongoCodeUnauthorized         = 13
	mongoCodeAuthenticationFailed = 18
	mongoCodeDocumentValidation   = 121
)

// MongoStore keeps every document in one collection keyed by _id. Patches
// use $set, which merges dotted paths natively.
type MongoStore struct {
	collection *mongo.Collection
}

func NewMongoStore(collection *mongo.Collection) *MongoStore {
	return &MongoStore{collection: collection}
}

func (s *MongoStore) CreateOrReplace(ctx context.Context, doc entity.Document) (entity.Document, error) {
	normalized, err := checkDocument("createOrReplace", doc)
	if err != nil {
		return nil, err
	}

	_, err = s.collection.ReplaceOne(ctx,
		bson.M{entity.DocumentIDKey: normalized.ID()},
		bson.M(normalized),
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return nil, mapMongoError("createOrReplace", normalized.ID(), err)
	}
	return normalized, nil
}

func (s *MongoStore) Patch(ctx context.Context, id string, set map[string]interface{}) (entity.Document, error) {
	fields, err := normalizeSet("patch", id, set)
	if err != nil {
		return nil, err
	}

	var raw bson.M
	err = s.collection.FindOneAndUpdate(ctx,
		bson.M{entity.DocumentIDKey: id},
		bson.M{"$set": bson.M(fields)},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&raw)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.NewStoreError(repository.ErrNotFound, "patch", id, nil)
		}
		return nil, mapMongoError("patch", id, err)
	}
	return fromBSON(raw), nil
}

func (s *MongoStore) Fetch(ctx context.Context, q repository.Query) (entity.Document, error) {
	filter := bson.M{entity.DocumentTypeKey: q.Type}
	for field, value := range q.Where {
		filter[field] = value
	}

	var raw bson.M
	err := s.collection.FindOne(ctx, filter, options.FindOne().SetSort(bson.D{{Key: entity.DocumentIDKey, Value: 1}})).Decode(&raw)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, mapMongoError("fetch", "", err)
	}
	return fromBSON(raw), nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if _, err := s.collection.DeleteOne(ctx, bson.M{entity.DocumentIDKey: id}); err != nil {
		return mapMongoError("delete", id, err)
	}
	return nil
}

// EnsureIndexes creates the index used by type + clerkId lookups.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: entity.DocumentTypeKey, Value: 1},
			{Key: entity.FieldClerkID, Value: 1},
		},
	})
	return err
}

func mapMongoError(op, id string, err error) error {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		switch cmdErr.Code {
		case mongoCodeUnauthorized, mongoCodeAuthenticationFailed:
			return repository.NewStoreError(repository.ErrAuth, op, id, err)
		case mongoCodeDocumentValidation:
			return repository.NewStoreError(repository.ErrValidation, op, id, err)
		}
	}

	var writeErr mongo.WriteException
	if errors.As(err, &writeErr) {
		for _, we := range writeErr.WriteErrors {
			if we.Code == mongoCodeDocumentValidation {
				return repository.NewStoreError(repository.ErrValidation, op, id, err)
			}
		}
		if writeErr.WriteConcernError != nil && writeErr.WriteConcernError.Code == mongoCodeUnauthorized {
			return repository.NewStoreError(repository.ErrAuth, op, id, err)
		}
	}

	return repository.NewStoreError(repository.ErrNetwork, op, id, err)
}

// fromBSON reduces decoded BSON values to the plain JSON shapes the rest of
// the service works with.
func fromBSON(raw bson.M) entity.Document {
	doc := entity.Document{}
	for k, v := range raw {
		doc[k] = plainValue(v)
	}
	return doc
}

func plainValue(v interface{}) interface{} {
	switch t := v.(type) {
	case bson.M:
		out := make(map[string]interface{}, len(t))
		for k, inner := range t {
			out[k] = plainValue(inner)
		}
		return out
	case bson.D:
		out := make(map[string]interface{}, len(t))
		for _, e := range t {
			out[e.Key] = plainValue(e.Value)
		}
		return out
	case bson.A:
		out := make([]interface{}, len(t))
		for i, inner := range t {
			out[i] = plainValue(inner)
		}
		return out
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case bson.DateTime:
		return t.Time().UTC().Format(time.RFC3339Nano)
	}
	return v
}
