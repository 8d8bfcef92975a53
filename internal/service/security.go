// internal/service/security.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dangerclosesec/accountd/internal/metrics"
	"github.com/dangerclosesec/accountd/internal/model"
	"github.com/dangerclosesec/accountd/internal/repository"
	"github.com/google/uuid"
)

// Suspicious-activity thresholds, applied to the window's failure maxima.
// An email hit from more than suspiciousEmailIPs distinct IPs signals a
// coordinated attack.
const (
	suspiciousIPFailures    = 20
	suspiciousEmailFailures = 15
	suspiciousEmailIPs      = 2
)

var rangeHours = map[string]int{
	"24h": 24,
	"7d":  7 * 24,
	"30d": 30 * 24,
}

type SecurityService struct {
	repo    repository.SecurityRepositoryIface
	metrics metrics.Recorder
}

func NewSecurityService(repo repository.SecurityRepositoryIface, recorder metrics.Recorder) *SecurityService {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &SecurityService{repo: repo, metrics: recorder}
}

// RecordLoginFailure appends a failed-login audit row. Failures here are
// swallowed and logged; audit writes must never abort the authentication
// flow.
func (s *SecurityService) RecordLoginFailure(ctx context.Context, email, ipAddress, reason string, userID *uuid.UUID) {
	s.metrics.RecordLoginFailure()

	failure := &model.LoginFailure{
		Email:         email,
		IPAddress:     ipAddress,
		FailureReason: reason,
		UserID:        userID,
	}
	if err := s.repo.CreateLoginFailure(ctx, failure); err != nil {
		slog.Error("failed to record login failure", "email", email, "error", err)
	}
}

// RecordIssuedToken appends a token-issuance audit row, also swallowing
// failures.
func (s *SecurityService) RecordIssuedToken(ctx context.Context, userID uuid.UUID, tokenType string) {
	token := &model.IssuedToken{
		UserID:    userID,
		TokenType: tokenType,
	}
	if err := s.repo.CreateIssuedToken(ctx, token); err != nil {
		slog.Error("failed to record issued token", "user_id", userID, "error", err)
	}
}

type OverviewInput struct {
	Range            string
	TopIPLimit       int
	FailedLoginLimit int
}

type FailedLogin struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	IP        string    `json:"ip"`
	Timestamp time.Time `json:"timestamp"`
	Reason    string    `json:"reason"`
}

type OverviewOutput struct {
	FailedLogins       int64                `json:"failed_logins"`
	TokenIssuanceCount int64                `json:"token_issuance_count"`
	TopIPs             []repository.IPCount `json:"top_ips"`
	RecentFailures     []FailedLogin        `json:"recent_failures"`
	SuspiciousActivity bool                 `json:"suspicious_activity"`
}

// Overview aggregates the security telemetry for a time window of 24h, 7d or
// 30d.
func (s *SecurityService) Overview(ctx context.Context, input OverviewInput) (*OverviewOutput, error) {
	if input.Range == "" {
		input.Range = "24h"
	}
	hours, ok := rangeHours[input.Range]
	if !ok {
		return nil, fmt.Errorf("invalid range %q, must be one of: 24h, 7d, 30d", input.Range)
	}
	if input.TopIPLimit <= 0 {
		input.TopIPLimit = 5
	}
	if input.FailedLoginLimit <= 0 {
		input.FailedLoginLimit = 10
	}

	since := time.Now().Add(-time.Duration(hours) * time.Hour)

	failedCount, err := s.repo.CountFailedLogins(ctx, since)
	if err != nil {
		return nil, err
	}

	tokenCount, err := s.repo.CountIssuedTokens(ctx)
	if err != nil {
		return nil, err
	}

	topIPs, err := s.repo.TopIPs(ctx, since, input.TopIPLimit)
	if err != nil {
		return nil, err
	}

	recent, err := s.repo.RecentFailedLogins(ctx, since, input.FailedLoginLimit)
	if err != nil {
		return nil, err
	}

	signals, err := s.repo.FailureSignals(ctx, since)
	if err != nil {
		return nil, err
	}
	suspicious := signals.MaxPerIP > suspiciousIPFailures ||
		signals.MaxPerEmail > suspiciousEmailFailures ||
		signals.MaxIPsPerEmail > suspiciousEmailIPs

	failures := make([]FailedLogin, 0, len(recent))
	for _, f := range recent {
		failures = append(failures, FailedLogin{
			ID:        f.ID,
			Email:     f.Email,
			IP:        f.IPAddress,
			Timestamp: f.CreatedAt,
			Reason:    f.FailureReason,
		})
	}

	return &OverviewOutput{
		FailedLogins:       failedCount,
		TokenIssuanceCount: tokenCount,
		TopIPs:             topIPs,
		RecentFailures:     failures,
		SuspiciousActivity: suspicious,
	}, nil
}
