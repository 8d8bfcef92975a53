// internal/service/product.go
package service

import (
	"context"
	"fmt"

	"github.com/dangerclosesec/accountd/internal/domain"
	"github.com/dangerclosesec/accountd/internal/model"
	"github.com/dangerclosesec/accountd/internal/repository"
	"github.com/go-playground/validator/v10"
)

type ProductService struct {
	productRepo repository.ProductRepositoryIface
	validate    *validator.Validate
}

func NewProductService(productRepo repository.ProductRepositoryIface) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		validate:    validator.New(),
	}
}

type CreateProductInput struct {
	Name        string `json:"name" validate:"required"`
	Code        string `json:"code" validate:"required,lowercase,alphanum"`
	Description string `json:"description"`
}

func (s *ProductService) CreateProduct(ctx context.Context, input CreateProductInput) (*model.Product, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	product := &model.Product{
		Name:        input.Name,
		Code:        input.Code,
		Description: input.Description,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) ListProducts(ctx context.Context) ([]model.Product, error) {
	return s.productRepo.FindAll(ctx)
}

func (s *ProductService) GetProduct(ctx context.Context, code string) (*model.Product, error) {
	return s.productRepo.FindByCode(ctx, code)
}

func (s *ProductService) GetEnrollmentStats(ctx context.Context) ([]repository.EnrollmentStat, error) {
	return s.productRepo.EnrollmentStats(ctx)
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalItems int64 `json:"total_items"`
	TotalPages int64 `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

type EnrolledAccountsOutput struct {
	Product    *model.Product         `json:"product"`
	Accounts   []model.AccountProduct `json:"accounts"`
	Pagination Pagination             `json:"pagination"`
}

// GetEnrolledAccounts pages through the accounts enrolled in a product,
// optionally filtered by enrollment status.
func (s *ProductService) GetEnrolledAccounts(ctx context.Context, code string, page, limit int, status string) (*EnrolledAccountsOutput, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}

	product, err := s.productRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	offset := (page - 1) * limit
	enrollments, total, err := s.productRepo.AccountsEnrolled(ctx, product.ID, offset, limit, status)
	if err != nil {
		return nil, err
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)

	return &EnrolledAccountsOutput{
		Product:  product,
		Accounts: enrollments,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			TotalItems: total,
			TotalPages: totalPages,
			HasNext:    int64(page) < totalPages,
			HasPrev:    page > 1,
		},
	}, nil
}
