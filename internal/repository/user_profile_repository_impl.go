package repository

import (
	"context"

	"nueracare-api/internal/domain/entity"
	domainRepo "nueracare-api/internal/domain/repository"
)

type userProfileRepository struct {
	store domainRepo.DocumentStore
}

func NewUserProfileRepository(store domainRepo.DocumentStore) domainRepo.UserProfileRepository {
	return &userProfileRepository{store: store}
}

func (r *userProfileRepository) CreateOrReplace(ctx context.Context, doc entity.Document) error {
	userID, _ := doc[entity.FieldClerkID].(string)
	doc[entity.DocumentIDKey] = entity.UserProfileID(userID)
	doc[entity.DocumentTypeKey] = entity.DocumentTypeUserProfile

	_, err := r.store.CreateOrReplace(ctx, doc)
	return err
}

func (r *userProfileRepository) Patch(ctx context.Context, userID string, set map[string]interface{}) error {
	_, err := r.store.Patch(ctx, entity.UserProfileID(userID), set)
	return err
}

func (r *userProfileRepository) FindByUserID(ctx context.Context, userID string) (*entity.UserProfile, error) {
	doc, err := r.store.Fetch(ctx, domainRepo.Query{
		Type:  entity.DocumentTypeUserProfile,
		Where: map[string]interface{}{
			entity.DocumentIDKey: entity.UserProfileID(userID),
			entity.FieldClerkID:  userID,
		},
	})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}

	var profile entity.UserProfile
	if err := doc.Decode(&profile); err != nil {
		return nil, domainRepo.NewStoreError(domainRepo.ErrValidation, "fetch", doc.ID(), err)
	}
	return &profile, nil
}

func (r *userProfileRepository) Delete(ctx context.Context, userID string) error {
	return r.store.Delete(ctx, entity.UserProfileID(userID))
}
