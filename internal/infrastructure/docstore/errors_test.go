package docstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"nueracare-api/internal/domain/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

func TestMapPostgresError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"insufficient privilege", &pgconn.PgError{Code: "42501"}, repository.ErrAuth},
		{"bad password", &pgconn.PgError{Code: "28P01"}, repository.ErrAuth},
		{"invalid json", &pgconn.PgError{Code: "22P02"}, repository.ErrValidation},
		{"not null violation", &pgconn.PgError{Code: "23502"}, repository.ErrValidation},
		{"admin shutdown", &pgconn.PgError{Code: "57P01"}, repository.ErrNetwork},
		{"deadline", context.DeadlineExceeded, repository.ErrNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mapPostgresError("patch", "onboarding-u1", tt.err)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, tt.err)

			var storeErr *repository.StoreError
			if assert.True(t, errors.As(err, &storeErr)) {
				assert.Equal(t, "patch", storeErr.Op)
				assert.Equal(t, "onboarding-u1", storeErr.ID)
			}
		})
	}
}

func TestMapMongoError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"unauthorized", mongo.CommandError{Code: mongoCodeUnauthorized}, repository.ErrAuth},
		{"auth failed", mongo.CommandError{Code: mongoCodeAuthenticationFailed}, repository.ErrAuth},
		{"schema rejected", mongo.CommandError{Code: mongoCodeDocumentValidation}, repository.ErrValidation},
		{"write rejected", mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: mongoCodeDocumentValidation}}}, repository.ErrValidation},
		{"server selection", errors.New("server selection error"), repository.ErrNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, mapMongoError("fetch", "", tt.err), tt.want)
		})
	}
}

func TestFromBSON(t *testing.T) {
	at := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	doc := fromBSON(bson.M{
		"_id":         "onboarding-u1",
		"count":       int32(3),
		"big":         int64(7),
		"completedAt": bson.NewDateTimeFromTime(at),
		"permissions": bson.D{{Key: "cameraAccess", Value: true}},
		"focusAreas":  bson.A{"sleep", bson.M{"nested": int32(1)}},
	})

	assert.Equal(t, "onboarding-u1", doc.ID())
	assert.Equal(t, float64(3), doc["count"])
	assert.Equal(t, float64(7), doc["big"])
	assert.Equal(t, "2026-03-01T08:00:00Z", doc["completedAt"])
	assert.Equal(t, map[string]interface{}{"cameraAccess": true}, doc["permissions"])
	assert.Equal(t, []interface{}{"sleep", map[string]interface{}{"nested": float64(1)}}, doc["focusAreas"])
}
