// internal/repository/organization.go
package repository

import (
	"context"
	"fmt"

	"github.com/dangerclosesec/accountd/internal/domain"
	"github.com/dangerclosesec/accountd/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrganizationRepositoryIface interface {
	// CreateWithAccount inserts the organization, its ORGANIZATION account and
	// the creator's OWNER membership in one transaction.
	CreateWithAccount(ctx context.Context, org *model.Organization, account *model.Account, owner *model.OrganizationMember) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Organization, error)
	FindByIDWithMembers(ctx context.Context, id uuid.UUID) (*model.Organization, error)
	Update(ctx context.Context, org *model.Organization) error
	AddMember(ctx context.Context, member *model.OrganizationMember) error
	RemoveMember(ctx context.Context, organizationID, userID uuid.UUID) error
	GetMember(ctx context.Context, organizationID, userID uuid.UUID) (*model.OrganizationMember, error)
}

type OrganizationRepository struct {
	db *gorm.DB
}

func NewOrganizationRepository(db *gorm.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

func (r *OrganizationRepository) CreateWithAccount(ctx context.Context, org *model.Organization, account *model.Account, owner *model.OrganizationMember) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(org).Error; err != nil {
			return err
		}

		account.OrganizationID = &org.ID
		if err := tx.Create(account).Error; err != nil {
			return err
		}

		owner.OrganizationID = org.ID
		return tx.Create(owner).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create organization: %w", err)
	}
	return nil
}

func (r *OrganizationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Organization, error) {
	var org model.Organization
	result := r.db.WithContext(ctx).First(&org, "id = ?", id)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, domain.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", result.Error)
	}
	return &org, nil
}

func (r *OrganizationRepository) FindByIDWithMembers(ctx context.Context, id uuid.UUID) (*model.Organization, error) {
	var org model.Organization
	result := r.db.WithContext(ctx).Preload("Members").First(&org, "id = ?", id)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, domain.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", result.Error)
	}
	return &org, nil
}

func (r *OrganizationRepository) Update(ctx context.Context, org *model.Organization) error {
	result := r.db.WithContext(ctx).Save(org)
	if result.Error != nil {
		return fmt.Errorf("failed to update organization: %w", result.Error)
	}
	return nil
}

func (r *OrganizationRepository) AddMember(ctx context.Context, member *model.OrganizationMember) error {
	result := r.db.WithContext(ctx).Create(member)
	if result.Error != nil {
		if IsUniqueViolation(result.Error) {
			return domain.ErrMemberAlreadyExists
		}
		return fmt.Errorf("failed to add member: %w", result.Error)
	}
	return nil
}

func (r *OrganizationRepository) RemoveMember(ctx context.Context, organizationID, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("organization_id = ? AND user_id = ?", organizationID, userID).
		Delete(&model.OrganizationMember{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove member: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrMemberNotFound
	}
	return nil
}

func (r *OrganizationRepository) GetMember(ctx context.Context, organizationID, userID uuid.UUID) (*model.OrganizationMember, error) {
	var member model.OrganizationMember
	result := r.db.WithContext(ctx).
		Where("organization_id = ? AND user_id = ?", organizationID, userID).
		First(&member)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, domain.ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member: %w", result.Error)
	}
	return &member, nil
}
