// internal/repository/security.go
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/dangerclosesec/accountd/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IPCount pairs a source IP with its failed-login count for the overview.
type IPCount struct {
	IPAddress string `json:"ip_address"`
	Count     int64  `json:"count"`
}

// AttackSignals carries the failure maxima used for suspicious-activity
// detection: the worst single IP, the worst single email, and the widest
// fan-out of distinct IPs hitting one email.
type AttackSignals struct {
	MaxPerIP       int64 `gorm:"column:max_per_ip"`
	MaxPerEmail    int64 `gorm:"column:max_per_email"`
	MaxIPsPerEmail int64 `gorm:"column:max_ips_per_email"`
}

type SecurityRepositoryIface interface {
	CreateLoginFailure(ctx context.Context, failure *model.LoginFailure) error
	CreateIssuedToken(ctx context.Context, token *model.IssuedToken) error
	RevokeToken(ctx context.Context, id uuid.UUID) error
	CountFailedLogins(ctx context.Context, since time.Time) (int64, error)
	CountIssuedTokens(ctx context.Context) (int64, error)
	TopIPs(ctx context.Context, since time.Time, limit int) ([]IPCount, error)
	RecentFailedLogins(ctx context.Context, since time.Time, limit int) ([]model.LoginFailure, error)
	FailureSignals(ctx context.Context, since time.Time) (AttackSignals, error)
}

type SecurityRepository struct {
	db *gorm.DB
}

func NewSecurityRepository(db *gorm.DB) *SecurityRepository {
	return &SecurityRepository{db: db}
}

func (r *SecurityRepository) CreateLoginFailure(ctx context.Context, failure *model.LoginFailure) error {
	result := r.db.WithContext(ctx).Create(failure)
	if result.Error != nil {
		return fmt.Errorf("failed to record login failure: %w", result.Error)
	}
	return nil
}

func (r *SecurityRepository) CreateIssuedToken(ctx context.Context, token *model.IssuedToken) error {
	result := r.db.WithContext(ctx).Create(token)
	if result.Error != nil {
		return fmt.Errorf("failed to record issued token: %w", result.Error)
	}
	return nil
}

func (r *SecurityRepository) RevokeToken(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&model.IssuedToken{}).
		Where("id = ?", id).
		Update("revoked_at", time.Now().UTC())
	if result.Error != nil {
		return fmt.Errorf("failed to revoke token: %w", result.Error)
	}
	return nil
}

func (r *SecurityRepository) CountFailedLogins(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.LoginFailure{}).
		Where("created_at > ?", since).
		Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to count login failures: %w", result.Error)
	}
	return count, nil
}

func (r *SecurityRepository) CountIssuedTokens(ctx context.Context) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.IssuedToken{}).Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to count issued tokens: %w", result.Error)
	}
	return count, nil
}

func (r *SecurityRepository) TopIPs(ctx context.Context, since time.Time, limit int) ([]IPCount, error) {
	var ips []IPCount
	result := r.db.WithContext(ctx).Model(&model.LoginFailure{}).
		Select("ip_address, count(*) as count").
		Where("created_at > ?", since).
		Group("ip_address").
		Order("count DESC").
		Limit(limit).
		Scan(&ips)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to aggregate top ips: %w", result.Error)
	}
	return ips, nil
}

func (r *SecurityRepository) FailureSignals(ctx context.Context, since time.Time) (AttackSignals, error) {
	var signals AttackSignals
	result := r.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE((SELECT max(c) FROM (SELECT count(*) AS c FROM login_failures WHERE created_at > ? GROUP BY ip_address) ip_counts), 0) AS max_per_ip,
			COALESCE((SELECT max(c) FROM (SELECT count(*) AS c FROM login_failures WHERE created_at > ? GROUP BY email) email_counts), 0) AS max_per_email,
			COALESCE((SELECT max(c) FROM (SELECT count(DISTINCT ip_address) AS c FROM login_failures WHERE created_at > ? GROUP BY email) email_ips), 0) AS max_ips_per_email
	`, since, since, since).Scan(&signals)
	if result.Error != nil {
		return AttackSignals{}, fmt.Errorf("failed to aggregate failure signals: %w", result.Error)
	}
	return signals, nil
}

func (r *SecurityRepository) RecentFailedLogins(ctx context.Context, since time.Time, limit int) ([]model.LoginFailure, error) {
	var failures []model.LoginFailure
	result := r.db.WithContext(ctx).
		Where("created_at > ?", since).
		Order("created_at DESC").
		Limit(limit).
		Find(&failures)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find login failures: %w", result.Error)
	}
	return failures, nil
}
