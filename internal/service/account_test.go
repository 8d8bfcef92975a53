package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dangerclosesec/accountd/internal/auth"
	"github.com/dangerclosesec/accountd/internal/domain"
	"github.com/dangerclosesec/accountd/internal/mocks"
	"github.com/dangerclosesec/accountd/internal/model"
	"github.com/dangerclosesec/accountd/internal/provision"
	"github.com/dangerclosesec/accountd/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTokenManager() *auth.TokenManager {
	return auth.NewTokenManager("test_secret", time.Hour, 15*time.Minute)
}

type accountServiceMocks struct {
	accountRepo    *mocks.MockAccountRepositoryIface
	enrollmentRepo *mocks.MockEnrollmentRepositoryIface
	productRepo    *mocks.MockProductRepositoryIface
	orgRepo        *mocks.MockOrganizationRepositoryIface
}

func newAccountService(ctrl *gomock.Controller, provisioner service.Provisioner) (*service.AccountService, accountServiceMocks) {
	m := accountServiceMocks{
		accountRepo:    mocks.NewMockAccountRepositoryIface(ctrl),
		enrollmentRepo: mocks.NewMockEnrollmentRepositoryIface(ctrl),
		productRepo:    mocks.NewMockProductRepositoryIface(ctrl),
		orgRepo:        mocks.NewMockOrganizationRepositoryIface(ctrl),
	}

	svc := service.NewAccountService(
		m.accountRepo,
		m.enrollmentRepo,
		m.productRepo,
		m.orgRepo,
		provisioner,
		newTokenManager(),
		nil,
		nil,
	)
	return svc, m
}

func newProvisioningServer(t *testing.T, handler http.HandlerFunc) (*provision.Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := provision.NewClient(&provision.Config{
		ServiceURLs: map[string]string{"notify": srv.URL},
		Timeout:     2 * time.Second,
	})
	return client, srv
}

func TestEnrollProduct(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accountID := uuid.New()
	productID := uuid.New()
	account := &model.Account{ID: accountID, Type: model.AccountIndividual, OwnerUserID: uuid.New()}
	product := &model.Product{ID: productID, Code: "notify", Name: "Notify"}

	t.Run("successful enrollment activates with resource id", func(t *testing.T) {
		client, _ := newProvisioningServer(t, func(w http.ResponseWriter, r *http.Request) {
			var req provision.Request
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, accountID.String(), req.AccountID)
			assert.Equal(t, "INDIVIDUAL", req.AccountType)
			assert.Equal(t, accountID.String(), req.Code)
			assert.Equal(t, "Individual Account", req.Name)

			json.NewEncoder(w).Encode(provision.Response{ResourceID: "tenant-1"})
		})

		svc, m := newAccountService(ctrl, client)

		m.accountRepo.EXPECT().FindByID(gomock.Any(), accountID).Return(account, nil)
		m.productRepo.EXPECT().FindByCode(gomock.Any(), "notify").Return(product, nil)
		m.enrollmentRepo.EXPECT().
			FindByAccountAndProduct(gomock.Any(), accountID, productID).
			Return(nil, domain.ErrNotEnrolled)
		m.enrollmentRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, e *model.AccountProduct) error {
				assert.Equal(t, model.EnrollmentProvisioning, e.Status)
				assert.Equal(t, model.PlanFree, e.Plan)
				e.ID = uuid.New()
				return nil
			})
		m.enrollmentRepo.EXPECT().
			SetStatus(gomock.Any(), gomock.Any(), model.EnrollmentActive, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, _ model.EnrollmentStatus, resourceID *string) error {
				require.NotNil(t, resourceID)
				assert.Equal(t, "tenant-1", *resourceID)
				return nil
			})

		out, err := svc.EnrollProduct(context.Background(), accountID, service.EnrollProductInput{ProductCode: "notify"})

		require.NoError(t, err)
		assert.Equal(t, model.EnrollmentActive, out.Status)
		assert.Equal(t, "notify", out.ProductCode)
		assert.Equal(t, model.PlanFree, out.Plan)
	})

	t.Run("provisioning failure suspends the enrollment", func(t *testing.T) {
		client, _ := newProvisioningServer(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		})

		svc, m := newAccountService(ctrl, client)

		m.accountRepo.EXPECT().FindByID(gomock.Any(), accountID).Return(account, nil)
		m.productRepo.EXPECT().FindByCode(gomock.Any(), "notify").Return(product, nil)
		m.enrollmentRepo.EXPECT().
			FindByAccountAndProduct(gomock.Any(), accountID, productID).
			Return(nil, domain.ErrNotEnrolled)
		m.enrollmentRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		m.enrollmentRepo.EXPECT().
			SetStatus(gomock.Any(), gomock.Any(), model.EnrollmentSuspended, gomock.Nil()).
			Return(nil)

		_, err := svc.EnrollProduct(context.Background(), accountID, service.EnrollProductInput{ProductCode: "notify"})

		assert.ErrorIs(t, err, domain.ErrProvisioningFailed)
	})

	t.Run("existing enrollment is refused regardless of status", func(t *testing.T) {
		svc, m := newAccountService(ctrl, nil)

		m.accountRepo.EXPECT().FindByID(gomock.Any(), accountID).Return(account, nil)
		m.productRepo.EXPECT().FindByCode(gomock.Any(), "notify").Return(product, nil)
		m.enrollmentRepo.EXPECT().
			FindByAccountAndProduct(gomock.Any(), accountID, productID).
			Return(&model.AccountProduct{Status: model.EnrollmentSuspended}, nil)

		_, err := svc.EnrollProduct(context.Background(), accountID, service.EnrollProductInput{ProductCode: "notify"})

		assert.ErrorIs(t, err, domain.ErrAlreadyEnrolled)
	})

	t.Run("concurrent insert loses on unique constraint", func(t *testing.T) {
		svc, m := newAccountService(ctrl, nil)

		m.accountRepo.EXPECT().FindByID(gomock.Any(), accountID).Return(account, nil)
		m.productRepo.EXPECT().FindByCode(gomock.Any(), "notify").Return(product, nil)
		m.enrollmentRepo.EXPECT().
			FindByAccountAndProduct(gomock.Any(), accountID, productID).
			Return(nil, domain.ErrNotEnrolled)
		m.enrollmentRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(domain.ErrAlreadyEnrolled)

		_, err := svc.EnrollProduct(context.Background(), accountID, service.EnrollProductInput{ProductCode: "notify"})

		assert.ErrorIs(t, err, domain.ErrAlreadyEnrolled)
	})

	t.Run("unknown product", func(t *testing.T) {
		svc, m := newAccountService(ctrl, nil)

		m.accountRepo.EXPECT().FindByID(gomock.Any(), accountID).Return(account, nil)
		m.productRepo.EXPECT().FindByCode(gomock.Any(), "nope").Return(nil, domain.ErrProductNotFound)

		_, err := svc.EnrollProduct(context.Background(), accountID, service.EnrollProductInput{ProductCode: "nope"})

		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})

	t.Run("missing product code fails validation", func(t *testing.T) {
		svc, _ := newAccountService(ctrl, nil)

		_, err := svc.EnrollProduct(context.Background(), accountID, service.EnrollProductInput{})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestEnrollProductOrganizationNaming(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	accountID := uuid.New()
	productID := uuid.New()
	account := &model.Account{
		ID:             accountID,
		Type:           model.AccountOrganization,
		OwnerUserID:    uuid.New(),
		OrganizationID: &orgID,
	}
	product := &model.Product{ID: productID, Code: "notify"}

	client, _ := newProvisioningServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req provision.Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, orgID.String()+"-"+accountID.String(), req.Code)
		assert.Equal(t, "Organization Account", req.Name)

		json.NewEncoder(w).Encode(provision.Response{ResourceID: "tenant-9"})
	})

	svc, m := newAccountService(ctrl, client)

	m.accountRepo.EXPECT().FindByID(gomock.Any(), accountID).Return(account, nil)
	m.productRepo.EXPECT().FindByCode(gomock.Any(), "notify").Return(product, nil)
	m.enrollmentRepo.EXPECT().
		FindByAccountAndProduct(gomock.Any(), accountID, productID).
		Return(nil, domain.ErrNotEnrolled)
	m.enrollmentRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	m.enrollmentRepo.EXPECT().
		SetStatus(gomock.Any(), gomock.Any(), model.EnrollmentActive, gomock.Any()).
		Return(nil)

	_, err := svc.EnrollProduct(context.Background(), accountID, service.EnrollProductInput{ProductCode: "notify"})
	require.NoError(t, err)
}

func TestSwitchProduct(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	accountID := uuid.New()
	resourceID := "tenant-42"
	account := &model.Account{ID: accountID, Type: model.AccountIndividual, OwnerUserID: userID}

	t.Run("active enrollment yields a product token", func(t *testing.T) {
		svc, m := newAccountService(ctrl, nil)

		m.enrollmentRepo.EXPECT().
			FindByAccountAndProductCode(gomock.Any(), accountID, "notify").
			Return(&model.AccountProduct{
				Status:             model.EnrollmentActive,
				ExternalResourceID: &resourceID,
			}, nil)
		m.accountRepo.EXPECT().FindByID(gomock.Any(), accountID).Return(account, nil)

		out, err := svc.SwitchProduct(context.Background(), userID, "test@example.com", accountID, "notify")

		require.NoError(t, err)
		assert.Equal(t, accountID, out.AccountID)
		assert.Equal(t, "notify", out.Product)
		assert.Equal(t, model.AccountIndividual, out.AccountType)

		claims, err := newTokenManager().Verify(out.Token)
		require.NoError(t, err)
		assert.Equal(t, auth.TokenProduct, claims.Type())
		assert.Equal(t, userID.String(), claims.UserID())
		assert.Equal(t, accountID.String(), claims.AccountID)
		assert.Equal(t, "notify", claims.Product)
		assert.Equal(t, resourceID, claims.ResourceID)
		assert.Equal(t, auth.DefaultRole, claims.Role)
	})

	t.Run("not enrolled", func(t *testing.T) {
		svc, m := newAccountService(ctrl, nil)

		m.enrollmentRepo.EXPECT().
			FindByAccountAndProductCode(gomock.Any(), accountID, "notify").
			Return(nil, domain.ErrNotEnrolled)

		_, err := svc.SwitchProduct(context.Background(), userID, "test@example.com", accountID, "notify")

		assert.ErrorIs(t, err, domain.ErrNotEnrolled)
	})

	t.Run("suspended enrollment", func(t *testing.T) {
		svc, m := newAccountService(ctrl, nil)

		m.enrollmentRepo.EXPECT().
			FindByAccountAndProductCode(gomock.Any(), accountID, "notify").
			Return(&model.AccountProduct{Status: model.EnrollmentSuspended}, nil)

		_, err := svc.SwitchProduct(context.Background(), userID, "test@example.com", accountID, "notify")

		assert.ErrorIs(t, err, domain.ErrEnrollmentNotActive)
	})

	t.Run("active enrollment without a resource id", func(t *testing.T) {
		svc, m := newAccountService(ctrl, nil)

		m.enrollmentRepo.EXPECT().
			FindByAccountAndProductCode(gomock.Any(), accountID, "notify").
			Return(&model.AccountProduct{Status: model.EnrollmentActive}, nil)

		_, err := svc.SwitchProduct(context.Background(), userID, "test@example.com", accountID, "notify")

		assert.ErrorIs(t, err, domain.ErrEnrollmentNotActive)
	})
}

func TestCanAccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ownerID := uuid.New()
	memberID := uuid.New()
	strangerID := uuid.New()
	orgID := uuid.New()
	accountID := uuid.New()

	orgAccount := &model.Account{
		ID:             accountID,
		Type:           model.AccountOrganization,
		OwnerUserID:    ownerID,
		OrganizationID: &orgID,
	}

	t.Run("owner is allowed", func(t *testing.T) {
		svc, m := newAccountService(ctrl, nil)

		m.accountRepo.EXPECT().FindByID(gomock.Any(), accountID).Return(orgAccount, nil)

		ok, err := svc.CanAccess(context.Background(), ownerID, accountID)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("organization member is allowed", func(t *testing.T) {
		svc, m := newAccountService(ctrl, nil)

		m.accountRepo.EXPECT().FindByID(gomock.Any(), accountID).Return(orgAccount, nil)
		m.orgRepo.EXPECT().
			GetMember(gomock.Any(), orgID, memberID).
			Return(&model.OrganizationMember{UserID: memberID, Role: model.RoleMember}, nil)

		ok, err := svc.CanAccess(context.Background(), memberID, accountID)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("non-member is denied", func(t *testing.T) {
		svc, m := newAccountService(ctrl, nil)

		m.accountRepo.EXPECT().FindByID(gomock.Any(), accountID).Return(orgAccount, nil)
		m.orgRepo.EXPECT().
			GetMember(gomock.Any(), orgID, strangerID).
			Return(nil, domain.ErrMemberNotFound)

		ok, err := svc.CanAccess(context.Background(), strangerID, accountID)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("individual account denies everyone but the owner", func(t *testing.T) {
		svc, m := newAccountService(ctrl, nil)

		m.accountRepo.EXPECT().
			FindByID(gomock.Any(), accountID).
			Return(&model.Account{ID: accountID, Type: model.AccountIndividual, OwnerUserID: ownerID}, nil)

		ok, err := svc.CanAccess(context.Background(), strangerID, accountID)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("missing account denies without error", func(t *testing.T) {
		svc, m := newAccountService(ctrl, nil)

		m.accountRepo.EXPECT().
			FindByID(gomock.Any(), accountID).
			Return(nil, domain.ErrAccountNotFound)

		ok, err := svc.CanAccess(context.Background(), strangerID, accountID)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("lookup errors propagate", func(t *testing.T) {
		svc, m := newAccountService(ctrl, nil)

		dbErr := errors.New("connection refused")
		m.accountRepo.EXPECT().FindByID(gomock.Any(), accountID).Return(nil, dbErr)

		_, err := svc.CanAccess(context.Background(), strangerID, accountID)
		assert.ErrorIs(t, err, dbErr)
	})
}
