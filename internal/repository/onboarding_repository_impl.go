package repository

import (
	"context"

	"nueracare-api/internal/domain/entity"
	domainRepo "nueracare-api/internal/domain/repository"
)

type onboardingRepository struct {
	store domainRepo.DocumentStore
}

func NewOnboardingRepository(store domainRepo.DocumentStore) domainRepo.OnboardingRepository {
	return &onboardingRepository{store: store}
}

// CreateOrReplace stamps the document key and type before writing.
func (r *onboardingRepository) CreateOrReplace(ctx context.Context, doc entity.Document) error {
	userID, _ := doc[entity.FieldClerkID].(string)
	doc[entity.DocumentIDKey] = entity.OnboardingID(userID)
	doc[entity.DocumentTypeKey] = entity.DocumentTypeOnboarding

	_, err := r.store.CreateOrReplace(ctx, doc)
	return err
}

func (r *onboardingRepository) Patch(ctx context.Context, userID string, set map[string]interface{}) error {
	_, err := r.store.Patch(ctx, entity.OnboardingID(userID), set)
	return err
}

func (r *onboardingRepository) FindByUserID(ctx context.Context, userID string) (*entity.OnboardingData, error) {
	doc, err := r.store.Fetch(ctx, domainRepo.Query{
		Type:  entity.DocumentTypeOnboarding,
		Where: map[string]interface{}{
			entity.DocumentIDKey: entity.OnboardingID(userID),
			entity.FieldClerkID:  userID,
		},
	})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}

	var data entity.OnboardingData
	if err := doc.Decode(&data); err != nil {
		return nil, domainRepo.NewStoreError(domainRepo.ErrValidation, "fetch", doc.ID(), err)
	}
	return &data, nil
}

func (r *onboardingRepository) Delete(ctx context.Context, userID string) error {
	return r.store.Delete(ctx, entity.OnboardingID(userID))
}
