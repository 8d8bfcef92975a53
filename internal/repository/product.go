// internal/repository/product.go
package repository

import (
	"context"
	"fmt"

	"github.com/dangerclosesec/accountd/internal/domain"
	"github.com/dangerclosesec/accountd/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EnrollmentStat is the per-product aggregate exposed to platform admins.
type EnrollmentStat struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductCode string    `json:"product_code"`
	Status      string    `json:"status"`
	Count       int64     `json:"count"`
}

type ProductRepositoryIface interface {
	Create(ctx context.Context, product *model.Product) error
	FindByCode(ctx context.Context, code string) (*model.Product, error)
	FindAll(ctx context.Context) ([]model.Product, error)
	EnrollmentStats(ctx context.Context) ([]EnrollmentStat, error)
	AccountsEnrolled(ctx context.Context, productID uuid.UUID, offset, limit int, status string) ([]model.AccountProduct, int64, error)
}

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, product *model.Product) error {
	result := r.db.WithContext(ctx).Create(product)
	if result.Error != nil {
		if IsUniqueViolation(result.Error) {
			return fmt.Errorf("%w: product code %q", domain.ErrInvalidInput, product.Code)
		}
		return fmt.Errorf("failed to create product: %w", result.Error)
	}
	return nil
}

func (r *ProductRepository) FindByCode(ctx context.Context, code string) (*model.Product, error) {
	var product model.Product
	result := r.db.WithContext(ctx).Where("code = ?", code).First(&product)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w", result.Error)
	}
	return &product, nil
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	result := r.db.WithContext(ctx).Order("code").Find(&products)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find products: %w", result.Error)
	}
	return products, nil
}

func (r *ProductRepository) EnrollmentStats(ctx context.Context) ([]EnrollmentStat, error) {
	var stats []EnrollmentStat
	result := r.db.WithContext(ctx).
		Model(&model.AccountProduct{}).
		Select("account_products.product_id as product_id, products.code as product_code, account_products.status as status, count(*) as count").
		Joins("JOIN products ON products.id = account_products.product_id").
		Group("account_products.product_id, products.code, account_products.status").
		Scan(&stats)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to aggregate enrollment stats: %w", result.Error)
	}
	return stats, nil
}

func (r *ProductRepository) AccountsEnrolled(ctx context.Context, productID uuid.UUID, offset, limit int, status string) ([]model.AccountProduct, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.AccountProduct{}).Where("product_id = ?", productID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count enrollments: %w", err)
	}

	var enrollments []model.AccountProduct
	result := query.Preload("Account").Offset(offset).Limit(limit).Find(&enrollments)
	if result.Error != nil {
		return nil, 0, fmt.Errorf("failed to find enrollments: %w", result.Error)
	}

	return enrollments, count, nil
}
