package repository

import (
	"context"

	"nueracare-api/internal/domain/entity"
)

type UserProfileRepository interface {
	CreateOrReplace(ctx context.Context, doc entity.Document) error
	Patch(ctx context.Context, userID string, set map[string]interface{}) error
	FindByUserID(ctx context.Context, userID string) (*entity.UserProfile, error)
	Delete(ctx context.Context, userID string) error
}
