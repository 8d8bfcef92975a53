// internal/repository/account.go
package repository

import (
	"context"
	"fmt"

	"github.com/dangerclosesec/accountd/internal/domain"
	"github.com/dangerclosesec/accountd/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AccountRepositoryIface interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Account, error)
	FindByIDWithProducts(ctx context.Context, id uuid.UUID) (*model.Account, error)
	FindByOwner(ctx context.Context, ownerUserID uuid.UUID) ([]model.Account, error)
	CountCreatedSince(ctx context.Context, since int) (int64, error)
}

type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	var account model.Account
	result := r.db.WithContext(ctx).First(&account, "id = ?", id)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to find account: %w", result.Error)
	}
	return &account, nil
}

func (r *AccountRepository) FindByIDWithProducts(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	var account model.Account
	result := r.db.WithContext(ctx).
		Preload("Products").
		Preload("Products.Product").
		First(&account, "id = ?", id)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to find account: %w", result.Error)
	}
	return &account, nil
}

func (r *AccountRepository) FindByOwner(ctx context.Context, ownerUserID uuid.UUID) ([]model.Account, error) {
	var accounts []model.Account
	result := r.db.WithContext(ctx).Where("owner_user_id = ?", ownerUserID).Find(&accounts)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find accounts: %w", result.Error)
	}
	return accounts, nil
}

// CountCreatedSince counts accounts created within the last `since` hours.
func (r *AccountRepository) CountCreatedSince(ctx context.Context, since int) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.Account{}).
		Where("created_at > now() - make_interval(hours => ?)", since).
		Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to count accounts: %w", result.Error)
	}
	return count, nil
}
