package service_test

import (
	"context"
	"testing"

	"github.com/dangerclosesec/accountd/internal/domain"
	"github.com/dangerclosesec/accountd/internal/mocks"
	"github.com/dangerclosesec/accountd/internal/model"
	"github.com/dangerclosesec/accountd/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func strptr(s string) *string { return &s }

func TestGetProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	t.Run("returns the user", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)
		userRepo.EXPECT().
			FindByID(gomock.Any(), userID).
			Return(&model.User{ID: userID, Email: "test@example.com", FirstName: "Ada"}, nil)

		svc := service.NewUserService(userRepo)

		user, err := svc.GetProfile(context.Background(), userID)

		require.NoError(t, err)
		assert.Equal(t, "test@example.com", user.Email)
		assert.Equal(t, "Ada", user.FirstName)
	})

	t.Run("unknown user", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)
		userRepo.EXPECT().
			FindByID(gomock.Any(), userID).
			Return(nil, domain.ErrUserNotFound)

		svc := service.NewUserService(userRepo)

		_, err := svc.GetProfile(context.Background(), userID)

		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestUpdateProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	t.Run("updates only the provided fields", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)
		userRepo.EXPECT().
			FindByID(gomock.Any(), userID).
			Return(&model.User{ID: userID, Email: "test@example.com", FirstName: "Ada", Phone: "555-0100"}, nil)
		userRepo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user *model.User) error {
				assert.Equal(t, "Ada", user.FirstName)
				assert.Equal(t, "Lovelace", user.LastName)
				assert.Equal(t, "555-0100", user.Phone)
				return nil
			})

		svc := service.NewUserService(userRepo)

		user, err := svc.UpdateProfile(context.Background(), userID, service.UpdateProfileInput{
			LastName: strptr("Lovelace"),
		})

		require.NoError(t, err)
		assert.Equal(t, "Lovelace", user.LastName)
	})

	t.Run("empty string clears a field", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)
		userRepo.EXPECT().
			FindByID(gomock.Any(), userID).
			Return(&model.User{ID: userID, Phone: "555-0100"}, nil)
		userRepo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user *model.User) error {
				assert.Empty(t, user.Phone)
				return nil
			})

		svc := service.NewUserService(userRepo)

		_, err := svc.UpdateProfile(context.Background(), userID, service.UpdateProfileInput{
			Phone: strptr(""),
		})

		require.NoError(t, err)
	})

	t.Run("rejects an empty update", func(t *testing.T) {
		svc := service.NewUserService(mocks.NewMockUserRepositoryIface(ctrl))

		_, err := svc.UpdateProfile(context.Background(), userID, service.UpdateProfileInput{})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("unknown user", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)
		userRepo.EXPECT().
			FindByID(gomock.Any(), userID).
			Return(nil, domain.ErrUserNotFound)

		svc := service.NewUserService(userRepo)

		_, err := svc.UpdateProfile(context.Background(), userID, service.UpdateProfileInput{
			FirstName: strptr("Ada"),
		})

		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("duplicate email surfaces the conflict", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)
		userRepo.EXPECT().
			FindByID(gomock.Any(), userID).
			Return(&model.User{ID: userID}, nil)
		userRepo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			Return(domain.ErrEmailAlreadyExists)

		svc := service.NewUserService(userRepo)

		_, err := svc.UpdateProfile(context.Background(), userID, service.UpdateProfileInput{
			FirstName: strptr("Ada"),
		})

		assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	})
}
