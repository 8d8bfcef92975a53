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

func TestCreateOrganization(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	t.Run("creates org, account and owner membership together", func(t *testing.T) {
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)

		orgRepo.EXPECT().
			CreateWithAccount(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, org *model.Organization, account *model.Account, owner *model.OrganizationMember) error {
				assert.Equal(t, "Acme Corp", org.Name)
				assert.Equal(t, model.AccountOrganization, account.Type)
				assert.Equal(t, userID, account.OwnerUserID)
				assert.Equal(t, model.RoleOwner, owner.Role)
				assert.Equal(t, userID, owner.UserID)
				org.ID = uuid.New()
				account.ID = uuid.New()
				return nil
			})

		svc := service.NewOrganizationService(orgRepo)

		out, err := svc.CreateOrganization(context.Background(), userID, service.CreateOrganizationInput{
			Name:    "Acme Corp",
			Country: "US",
		})

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, out.OrganizationID)
		assert.NotEqual(t, uuid.Nil, out.AccountID)
		assert.Equal(t, "Acme Corp", out.Name)
	})

	t.Run("requires a name", func(t *testing.T) {
		svc := service.NewOrganizationService(mocks.NewMockOrganizationRepositoryIface(ctrl))

		_, err := svc.CreateOrganization(context.Background(), userID, service.CreateOrganizationInput{})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestOrganizationMembership(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	userID := uuid.New()

	t.Run("add member defaults the role", func(t *testing.T) {
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)

		orgRepo.EXPECT().
			AddMember(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, m *model.OrganizationMember) error {
				assert.Equal(t, model.RoleMember, m.Role)
				return nil
			})

		svc := service.NewOrganizationService(orgRepo)

		member, err := svc.AddMember(context.Background(), orgID, userID, "")
		require.NoError(t, err)
		assert.Equal(t, model.RoleMember, member.Role)
	})

	t.Run("duplicate member", func(t *testing.T) {
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)

		orgRepo.EXPECT().AddMember(gomock.Any(), gomock.Any()).Return(domain.ErrMemberAlreadyExists)

		svc := service.NewOrganizationService(orgRepo)

		_, err := svc.AddMember(context.Background(), orgID, userID, model.RoleAdmin)
		assert.ErrorIs(t, err, domain.ErrMemberAlreadyExists)
	})

	t.Run("IsOwner distinguishes roles", func(t *testing.T) {
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)

		orgRepo.EXPECT().
			GetMember(gomock.Any(), orgID, userID).
			Return(&model.OrganizationMember{UserID: userID, Role: model.RoleAdmin}, nil)

		svc := service.NewOrganizationService(orgRepo)

		owner, err := svc.IsOwner(context.Background(), orgID, userID)
		require.NoError(t, err)
		assert.False(t, owner)
	})

	t.Run("IsMember treats a missing row as false without error", func(t *testing.T) {
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)

		orgRepo.EXPECT().
			GetMember(gomock.Any(), orgID, userID).
			Return(nil, domain.ErrMemberNotFound)

		svc := service.NewOrganizationService(orgRepo)

		member, err := svc.IsMember(context.Background(), orgID, userID)
		require.NoError(t, err)
		assert.False(t, member)
	})
}
