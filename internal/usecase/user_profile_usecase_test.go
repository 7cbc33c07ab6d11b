package usecase

import (
	"context"
	"testing"

	"nueracare-api/internal/delivery/dto"
	"nueracare-api/internal/domain/entity"
	"nueracare-api/internal/domain/repository"
	repoImpl "nueracare-api/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfileFixture() (*userProfileUsecase, *mockStore) {
	store := newMockStore()
	u := NewUserProfileUsecase(quietLogger(), repoImpl.NewUserProfileRepository(store)).(*userProfileUsecase)
	u.now = newFakeClock().Now
	return u, store
}

func TestUserProfile_UpsertThenGet(t *testing.T) {
	u, store := newProfileFixture()
	ctx := context.Background()
	height := decimal.RequireFromString("180")
	weight := decimal.RequireFromString("81")

	created, err := u.UpsertUserProfile(ctx, "u1", &dto.UpsertProfileRequest{
		FirstName:  "Ana",
		BloodGroup: entity.BloodGroupOPositive,
		Height:     &height,
		Weight:     &weight,
	})
	require.NoError(t, err)
	assert.Equal(t, "user-u1", created.ID)
	require.NotNil(t, created.BMI)
	assert.Equal(t, "25", created.BMI.String())

	got, err := u.GetUserProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.FirstName)
	assert.Equal(t, "O+", got.BloodGroup)
	assert.True(t, height.Equal(*got.Height))
	assert.Equal(t, 1, store.Len())
}

func TestUserProfile_UpsertKeepsCreatedAt(t *testing.T) {
	u, _ := newProfileFixture()
	ctx := context.Background()

	first, err := u.UpsertUserProfile(ctx, "u1", &dto.UpsertProfileRequest{FirstName: "Ana"})
	require.NoError(t, err)
	second, err := u.UpsertUserProfile(ctx, "u1", &dto.UpsertProfileRequest{FirstName: "Ann"})
	require.NoError(t, err)

	assert.True(t, first.CreatedAt.Equal(*second.CreatedAt))
	assert.True(t, second.UpdatedAt.After(*first.UpdatedAt))
	assert.Equal(t, "Ann", second.FirstName)
}

func TestUserProfile_UpdatePatchesPresentFields(t *testing.T) {
	u, _ := newProfileFixture()
	ctx := context.Background()
	_, err := u.UpsertUserProfile(ctx, "u1", &dto.UpsertProfileRequest{FirstName: "Ana", CaregiverName: "Bo"})
	require.NoError(t, err)

	lang := entity.LanguageTamil
	highContrast := true
	got, err := u.UpdateUserProfile(ctx, "u1", &dto.UpdateProfileRequest{
		PrimaryLanguage: &lang,
		HighContrast:    &highContrast,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.FirstName)
	assert.Equal(t, "Bo", got.CaregiverName)
	assert.Equal(t, "tamil", got.PrimaryLanguage)
	assert.True(t, got.HighContrast)
}

func TestUserProfile_UpdateMissing(t *testing.T) {
	u, store := newProfileFixture()
	name := "Ana"

	_, err := u.UpdateUserProfile(context.Background(), "ghost", &dto.UpdateProfileRequest{FirstName: &name})
	assert.ErrorIs(t, err, ErrProfileNotFound)
	assert.Equal(t, 0, store.Len())

	_, err = u.UpdateUserProfile(context.Background(), "ghost", &dto.UpdateProfileRequest{})
	assert.ErrorIs(t, err, ErrNothingToUpdate)
}

func TestUserProfile_GetAndDelete(t *testing.T) {
	u, store := newProfileFixture()
	ctx := context.Background()

	_, err := u.GetUserProfile(ctx, "u1")
	assert.ErrorIs(t, err, ErrProfileNotFound)

	_, err = u.UpsertUserProfile(ctx, "u1", &dto.UpsertProfileRequest{})
	require.NoError(t, err)
	require.NoError(t, u.DeleteUserProfile(ctx, "u1"))
	require.NoError(t, u.DeleteUserProfile(ctx, "u1"))
	assert.Equal(t, 0, store.Len())
}

func TestUserProfile_StoreErrorsPropagate(t *testing.T) {
	u, store := newProfileFixture()
	store.FetchFunc = func(ctx context.Context, q repository.Query) (entity.Document, error) {
		return nil, repository.NewStoreError(repository.ErrAuth, "fetch", "", nil)
	}

	_, err := u.GetUserProfile(context.Background(), "u1")
	assert.ErrorIs(t, err, repository.ErrAuth)

	_, err = u.UpsertUserProfile(context.Background(), "u1", &dto.UpsertProfileRequest{})
	assert.ErrorIs(t, err, repository.ErrAuth)
}
