// internal/service/organization.go
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dangerclosesec/accountd/internal/domain"
	"github.com/dangerclosesec/accountd/internal/model"
	"github.com/dangerclosesec/accountd/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type OrganizationService struct {
	orgRepo  repository.OrganizationRepositoryIface
	validate *validator.Validate
}

func NewOrganizationService(orgRepo repository.OrganizationRepositoryIface) *OrganizationService {
	return &OrganizationService{
		orgRepo:  orgRepo,
		validate: validator.New(),
	}
}

type CreateOrganizationInput struct {
	Name      string `json:"name" validate:"required"`
	LegalName string `json:"legal_name"`
	Country   string `json:"country"`
	TaxID     string `json:"tax_id"`
}

type CreateOrganizationOutput struct {
	OrganizationID uuid.UUID `json:"organization_id"`
	AccountID      uuid.UUID `json:"account_id"`
	Name           string    `json:"name"`
}

// CreateOrganization creates the organization, its ORGANIZATION account owned
// by the creator, and the creator's OWNER membership, all in one transaction.
func (s *OrganizationService) CreateOrganization(ctx context.Context, userID uuid.UUID, input CreateOrganizationInput) (*CreateOrganizationOutput, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	org := &model.Organization{
		Name:      input.Name,
		LegalName: input.LegalName,
		Country:   input.Country,
		TaxID:     input.TaxID,
	}
	account := &model.Account{
		Type:        model.AccountOrganization,
		OwnerUserID: userID,
	}
	owner := &model.OrganizationMember{
		UserID: userID,
		Role:   model.RoleOwner,
	}

	if err := s.orgRepo.CreateWithAccount(ctx, org, account, owner); err != nil {
		return nil, err
	}

	return &CreateOrganizationOutput{
		OrganizationID: org.ID,
		AccountID:      account.ID,
		Name:           org.Name,
	}, nil
}

func (s *OrganizationService) GetOrganization(ctx context.Context, organizationID uuid.UUID) (*model.Organization, error) {
	return s.orgRepo.FindByIDWithMembers(ctx, organizationID)
}

type UpdateOrganizationInput struct {
	Name      string `json:"name"`
	LegalName string `json:"legal_name"`
	Country   string `json:"country"`
	TaxID     string `json:"tax_id"`
}

func (s *OrganizationService) UpdateOrganization(ctx context.Context, organizationID uuid.UUID, input UpdateOrganizationInput) (*model.Organization, error) {
	org, err := s.orgRepo.FindByID(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		org.Name = input.Name
	}
	if input.LegalName != "" {
		org.LegalName = input.LegalName
	}
	if input.Country != "" {
		org.Country = input.Country
	}
	if input.TaxID != "" {
		org.TaxID = input.TaxID
	}

	if err := s.orgRepo.Update(ctx, org); err != nil {
		return nil, err
	}
	return org, nil
}

func (s *OrganizationService) AddMember(ctx context.Context, organizationID, userID uuid.UUID, role model.MemberRole) (*model.OrganizationMember, error) {
	if role == "" {
		role = model.RoleMember
	}

	member := &model.OrganizationMember{
		OrganizationID: organizationID,
		UserID:         userID,
		Role:           role,
	}
	if err := s.orgRepo.AddMember(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

func (s *OrganizationService) RemoveMember(ctx context.Context, organizationID, userID uuid.UUID) error {
	return s.orgRepo.RemoveMember(ctx, organizationID, userID)
}

func (s *OrganizationService) ListMembers(ctx context.Context, organizationID uuid.UUID) ([]model.OrganizationMember, error) {
	org, err := s.orgRepo.FindByIDWithMembers(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	return org.Members, nil
}

// IsMember reports whether userID holds any role in the organization.
func (s *OrganizationService) IsMember(ctx context.Context, organizationID, userID uuid.UUID) (bool, error) {
	_, err := s.orgRepo.GetMember(ctx, organizationID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// IsOwner reports whether userID holds the OWNER role in the organization.
func (s *OrganizationService) IsOwner(ctx context.Context, organizationID, userID uuid.UUID) (bool, error) {
	member, err := s.orgRepo.GetMember(ctx, organizationID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return false, nil
		}
		return false, err
	}
	return member.Role == model.RoleOwner, nil
}
