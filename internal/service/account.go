// internal/service/account.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dangerclosesec/accountd/internal/auth"
	"github.com/dangerclosesec/accountd/internal/domain"
	"github.com/dangerclosesec/accountd/internal/metrics"
	"github.com/dangerclosesec/accountd/internal/model"
	"github.com/dangerclosesec/accountd/internal/provision"
	"github.com/dangerclosesec/accountd/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Provisioner is the outbound boundary to the per-product services.
// *provision.Client satisfies it.
type Provisioner interface {
	Provision(ctx context.Context, productCode string, req *provision.Request) (*provision.Response, error)
}

type AccountService struct {
	accountRepo    repository.AccountRepositoryIface
	enrollmentRepo repository.EnrollmentRepositoryIface
	productRepo    repository.ProductRepositoryIface
	orgRepo        repository.OrganizationRepositoryIface
	provisioner    Provisioner
	tokenManager   *auth.TokenManager
	security       *SecurityService
	metrics        metrics.Recorder
	validate       *validator.Validate
}

func NewAccountService(
	accountRepo repository.AccountRepositoryIface,
	enrollmentRepo repository.EnrollmentRepositoryIface,
	productRepo repository.ProductRepositoryIface,
	orgRepo repository.OrganizationRepositoryIface,
	provisioner Provisioner,
	tokenManager *auth.TokenManager,
	security *SecurityService,
	recorder metrics.Recorder,
) *AccountService {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &AccountService{
		accountRepo:    accountRepo,
		enrollmentRepo: enrollmentRepo,
		productRepo:    productRepo,
		orgRepo:        orgRepo,
		provisioner:    provisioner,
		tokenManager:   tokenManager,
		security:       security,
		metrics:        recorder,
		validate:       validator.New(),
	}
}

// CanAccess decides whether userID may act on accountID: true for the owning
// user, else for any member of the account's organization. Membership is
// looked up fresh on every call.
func (s *AccountService) CanAccess(ctx context.Context, userID, accountID uuid.UUID) (bool, error) {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return false, nil
		}
		return false, err
	}

	if account.OwnerUserID == userID {
		return true, nil
	}

	if account.OrganizationID != nil {
		_, err := s.orgRepo.GetMember(ctx, *account.OrganizationID, userID)
		if err != nil {
			if errors.Is(err, domain.ErrMemberNotFound) {
				return false, nil
			}
			return false, err
		}
		return true, nil
	}

	return false, nil
}

func (s *AccountService) GetAccount(ctx context.Context, accountID uuid.UUID) (*model.Account, error) {
	return s.accountRepo.FindByIDWithProducts(ctx, accountID)
}

func (s *AccountService) GetUserAccounts(ctx context.Context, userID uuid.UUID) ([]model.Account, error) {
	return s.accountRepo.FindByOwner(ctx, userID)
}

func (s *AccountService) GetAccountProducts(ctx context.Context, accountID uuid.UUID) ([]model.AccountProduct, error) {
	account, err := s.accountRepo.FindByIDWithProducts(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return account.Products, nil
}

type EnrollProductInput struct {
	ProductCode string     `json:"product_code" validate:"required"`
	Plan        model.Plan `json:"plan" validate:"omitempty,oneof=FREE PRO ENTERPRISE"`
}

type EnrollProductOutput struct {
	EnrollmentID uuid.UUID              `json:"enrollment_id"`
	ProductCode  string                 `json:"product_code"`
	AccountID    uuid.UUID              `json:"account_id"`
	Plan         model.Plan             `json:"plan"`
	Status       model.EnrollmentStatus `json:"status"`
}

// EnrollProduct drives the enrollment saga. The PROVISIONING row commits
// before the remote call; the compensating status write always runs, even
// when the caller's context is gone, so no enrollment is left PROVISIONING
// indefinitely. Re-enrollment is refused regardless of the existing row's
// status, SUSPENDED included.
func (s *AccountService) EnrollProduct(ctx context.Context, accountID uuid.UUID, input EnrollProductInput) (*EnrollProductOutput, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByCode(ctx, input.ProductCode)
	if err != nil {
		return nil, err
	}

	_, err = s.enrollmentRepo.FindByAccountAndProduct(ctx, accountID, product.ID)
	if err == nil {
		return nil, domain.ErrAlreadyEnrolled
	}
	if !errors.Is(err, domain.ErrNotEnrolled) {
		return nil, err
	}

	plan := input.Plan
	if plan == "" {
		plan = model.PlanFree
	}

	enrollment := &model.AccountProduct{
		AccountID: accountID,
		ProductID: product.ID,
		Status:    model.EnrollmentProvisioning,
		Plan:      plan,
	}
	// Two concurrent enrolls can both pass the lookup above; the unique
	// constraint on (account_id, product_id) settles the race here.
	if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
		return nil, err
	}

	resp, err := s.callProvisioning(ctx, account, input.ProductCode)

	// The status write must land even if the caller went away mid-call.
	writeCtx := context.WithoutCancel(ctx)

	if err != nil {
		slog.Warn("provisioning failed, suspending enrollment",
			"account_id", accountID, "product", input.ProductCode, "error", err)
		if suspendErr := s.enrollmentRepo.SetStatus(writeCtx, enrollment.ID, model.EnrollmentSuspended, nil); suspendErr != nil {
			slog.Error("failed to suspend enrollment after provisioning failure",
				"enrollment_id", enrollment.ID, "error", suspendErr)
		}
		s.metrics.RecordProvisionOutcome(input.ProductCode, "suspended")
		return nil, domain.ErrProvisioningFailed
	}

	if err := s.enrollmentRepo.SetStatus(writeCtx, enrollment.ID, model.EnrollmentActive, &resp.ResourceID); err != nil {
		return nil, fmt.Errorf("activating enrollment: %w", err)
	}
	s.metrics.RecordProvisionOutcome(input.ProductCode, "active")

	return &EnrollProductOutput{
		EnrollmentID: enrollment.ID,
		ProductCode:  input.ProductCode,
		AccountID:    accountID,
		Plan:         plan,
		Status:       model.EnrollmentActive,
	}, nil
}

func (s *AccountService) callProvisioning(ctx context.Context, account *model.Account, productCode string) (*provision.Response, error) {
	req := &provision.Request{
		AccountID:   account.ID.String(),
		AccountType: string(account.Type),
		Code:        account.ID.String(),
		Name:        "Individual Account",
	}
	if account.OrganizationID != nil {
		req.Code = fmt.Sprintf("%s-%s", account.OrganizationID, account.ID)
		req.Name = "Organization Account"
	}

	start := time.Now()
	resp, err := s.provisioner.Provision(ctx, productCode, req)
	s.metrics.RecordProvisionLatency(time.Since(start))

	return resp, err
}

type SwitchProductOutput struct {
	AccountID   uuid.UUID         `json:"account_id"`
	Product     string            `json:"product"`
	AccountType model.AccountType `json:"account_type"`
	Token       string            `json:"token"`
}

// SwitchProduct exchanges a valid base credential for a product-scoped one.
// It requires an ACTIVE enrollment with a resolved external resource id; a
// SUSPENDED enrollment and an ACTIVE one that never got a resource id are
// rejected alike.
func (s *AccountService) SwitchProduct(ctx context.Context, userID uuid.UUID, email string, accountID uuid.UUID, productCode string) (*SwitchProductOutput, error) {
	enrollment, err := s.enrollmentRepo.FindByAccountAndProductCode(ctx, accountID, productCode)
	if err != nil {
		return nil, err
	}

	if enrollment.Status != model.EnrollmentActive || enrollment.ExternalResourceID == nil {
		return nil, domain.ErrEnrollmentNotActive
	}

	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	token, err := s.tokenManager.IssueProduct(
		userID.String(),
		email,
		accountID.String(),
		string(account.Type),
		productCode,
		*enrollment.ExternalResourceID,
		"",
	)
	if err != nil {
		return nil, fmt.Errorf("generating product token: %w", err)
	}

	if s.security != nil {
		s.security.RecordIssuedToken(ctx, userID, string(auth.TokenProduct))
	}
	s.metrics.RecordTokenIssued(string(auth.TokenProduct))

	return &SwitchProductOutput{
		AccountID:   accountID,
		Product:     productCode,
		AccountType: account.Type,
		Token:       token,
	}, nil
}
