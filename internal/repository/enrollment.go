// internal/repository/enrollment.go
package repository

import (
	"context"
	"fmt"

	"github.com/dangerclosesec/accountd/internal/domain"
	"github.com/dangerclosesec/accountd/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EnrollmentRepositoryIface interface {
	// Create inserts the enrollment row. The insert commits on its own so the
	// PROVISIONING state is durable before the remote provisioning call runs.
	// A concurrent insert for the same (account, product) pair surfaces as
	// domain.ErrAlreadyEnrolled via the unique constraint.
	Create(ctx context.Context, enrollment *model.AccountProduct) error
	FindByAccountAndProduct(ctx context.Context, accountID, productID uuid.UUID) (*model.AccountProduct, error)
	FindByAccountAndProductCode(ctx context.Context, accountID uuid.UUID, productCode string) (*model.AccountProduct, error)
	// SetStatus applies the saga's compensating update: ACTIVE with the
	// external resource id, or SUSPENDED with a nil resource id.
	SetStatus(ctx context.Context, id uuid.UUID, status model.EnrollmentStatus, externalResourceID *string) error
}

type EnrollmentRepository struct {
	db *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *model.AccountProduct) error {
	result := r.db.WithContext(ctx).Create(enrollment)
	if result.Error != nil {
		if IsUniqueViolation(result.Error) {
			return domain.ErrAlreadyEnrolled
		}
		return fmt.Errorf("failed to create enrollment: %w", result.Error)
	}
	return nil
}

func (r *EnrollmentRepository) FindByAccountAndProduct(ctx context.Context, accountID, productID uuid.UUID) (*model.AccountProduct, error) {
	var enrollment model.AccountProduct
	result := r.db.WithContext(ctx).
		Where("account_id = ? AND product_id = ?", accountID, productID).
		First(&enrollment)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotEnrolled
		}
		return nil, fmt.Errorf("failed to find enrollment: %w", result.Error)
	}
	return &enrollment, nil
}

func (r *EnrollmentRepository) FindByAccountAndProductCode(ctx context.Context, accountID uuid.UUID, productCode string) (*model.AccountProduct, error) {
	var enrollment model.AccountProduct
	result := r.db.WithContext(ctx).
		Joins("JOIN products ON products.id = account_products.product_id").
		Where("account_products.account_id = ? AND products.code = ?", accountID, productCode).
		First(&enrollment)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotEnrolled
		}
		return nil, fmt.Errorf("failed to find enrollment: %w", result.Error)
	}
	return &enrollment, nil
}

func (r *EnrollmentRepository) SetStatus(ctx context.Context, id uuid.UUID, status model.EnrollmentStatus, externalResourceID *string) error {
	updates := map[string]interface{}{
		"status":               status,
		"external_resource_id": externalResourceID,
	}
	result := r.db.WithContext(ctx).Model(&model.AccountProduct{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update enrollment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotEnrolled
	}
	return nil
}
