// internal/service/platform.go
package service

import (
	"context"
	"fmt"

	"github.com/dangerclosesec/accountd/internal/repository"
)

// PlatformService serves the platform-admin analytics: growth counts and
// catalog-wide enrollment totals.
type PlatformService struct {
	userRepo    repository.UserRepositoryIface
	accountRepo repository.AccountRepositoryIface
	productRepo repository.ProductRepositoryIface
}

func NewPlatformService(
	userRepo repository.UserRepositoryIface,
	accountRepo repository.AccountRepositoryIface,
	productRepo repository.ProductRepositoryIface,
) *PlatformService {
	return &PlatformService{
		userRepo:    userRepo,
		accountRepo: accountRepo,
		productRepo: productRepo,
	}
}

type AnalyticsOutput struct {
	Range           string                      `json:"range"`
	NewUsers        int64                       `json:"new_users"`
	NewAccounts     int64                       `json:"new_accounts"`
	EnrollmentStats []repository.EnrollmentStat `json:"enrollment_stats"`
}

// Analytics aggregates growth counts over a 24h/7d/30d window.
func (s *PlatformService) Analytics(ctx context.Context, window string) (*AnalyticsOutput, error) {
	if window == "" {
		window = "24h"
	}
	hours, ok := rangeHours[window]
	if !ok {
		return nil, fmt.Errorf("invalid range %q, must be one of: 24h, 7d, 30d", window)
	}

	users, err := s.userRepo.CountCreatedSince(ctx, hours)
	if err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.CountCreatedSince(ctx, hours)
	if err != nil {
		return nil, err
	}

	stats, err := s.productRepo.EnrollmentStats(ctx)
	if err != nil {
		return nil, err
	}

	return &AnalyticsOutput{
		Range:           window,
		NewUsers:        users,
		NewAccounts:     accounts,
		EnrollmentStats: stats,
	}, nil
}
