// internal/service/auth.go
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dangerclosesec/accountd/internal/auth"
	"github.com/dangerclosesec/accountd/internal/domain"
	"github.com/dangerclosesec/accountd/internal/metrics"
	"github.com/dangerclosesec/accountd/internal/model"
	"github.com/dangerclosesec/accountd/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type AuthService struct {
	userRepo       repository.UserRepositoryIface
	accountRepo    repository.AccountRepositoryIface
	passwordHasher *auth.PasswordHasher
	tokenManager   *auth.TokenManager
	security       *SecurityService
	metrics        metrics.Recorder
	webappURL      string
	validate       *validator.Validate
}

func NewAuthService(
	userRepo repository.UserRepositoryIface,
	accountRepo repository.AccountRepositoryIface,
	passwordHasher *auth.PasswordHasher,
	tokenManager *auth.TokenManager,
	security *SecurityService,
	recorder metrics.Recorder,
	webappURL string,
) *AuthService {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &AuthService{
		userRepo:       userRepo,
		accountRepo:    accountRepo,
		passwordHasher: passwordHasher,
		tokenManager:   tokenManager,
		security:       security,
		metrics:        recorder,
		webappURL:      webappURL,
		validate:       validator.New(),
	}
}

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type RegisterOutput struct {
	UserID    uuid.UUID `json:"user_id"`
	AccountID uuid.UUID `json:"account_id"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
}

// Register creates the user and their individual account atomically and
// hands back a base credential scoped to that one account.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	existing, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hashed, err := s.passwordHasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &model.User{
		Email:        input.Email,
		PasswordHash: hashed,
		Status:       model.StatusActive,
	}
	account := &model.Account{
		Type: model.AccountIndividual,
	}

	if err := s.userRepo.CreateWithAccount(ctx, user, account); err != nil {
		return nil, err
	}

	token, err := s.tokenManager.IssueBase(user.ID.String(), user.Email, []string{account.ID.String()})
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}
	s.recordIssuance(ctx, user.ID)

	return &RegisterOutput{
		UserID:    user.ID,
		AccountID: account.ID,
		Email:     user.Email,
		Token:     token,
	}, nil
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginOutput struct {
	UserID     uuid.UUID `json:"user_id"`
	Email      string    `json:"email"`
	AccountIDs []string  `json:"account_ids"`
	Token      string    `json:"token"`
}

// Login checks credentials and mints a base token listing every account the
// user owns. Failed attempts are recorded for the security overview; the
// recording itself can never fail the login.
func (s *AuthService) Login(ctx context.Context, input LoginInput, ipAddress string) (*LoginOutput, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			if s.security != nil {
				s.security.RecordLoginFailure(ctx, input.Email, ipAddress, "user_not_found", nil)
			}
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	verified, err := s.passwordHasher.Verify(input.Password, user.PasswordHash)
	if err != nil || !verified {
		if s.security != nil {
			s.security.RecordLoginFailure(ctx, input.Email, ipAddress, "invalid_password", &user.ID)
		}
		return nil, domain.ErrInvalidCredentials
	}

	accounts, err := s.accountRepo.FindByOwner(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	accountIDs := make([]string, 0, len(accounts))
	for _, a := range accounts {
		accountIDs = append(accountIDs, a.ID.String())
	}

	token, err := s.tokenManager.IssueBase(user.ID.String(), user.Email, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}
	s.recordIssuance(ctx, user.ID)

	return &LoginOutput{
		UserID:     user.ID,
		Email:      user.Email,
		AccountIDs: accountIDs,
		Token:      token,
	}, nil
}

type ForgotPasswordOutput struct {
	ResetLink string `json:"reset_link"`
}

// ForgotPassword issues the short-lived reset credential and returns the
// reset link. Delivering it is the webapp's concern.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (*ForgotPasswordOutput, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	token, err := s.tokenManager.IssueReset(user.ID.String(), user.Email)
	if err != nil {
		return nil, fmt.Errorf("generating reset token: %w", err)
	}
	if s.security != nil {
		s.security.RecordIssuedToken(ctx, user.ID, string(auth.TokenReset))
	}
	s.metrics.RecordTokenIssued(string(auth.TokenReset))

	return &ForgotPasswordOutput{
		ResetLink: fmt.Sprintf("%s/reset-password?token=%s", s.webappURL, token),
	}, nil
}

// ResetPassword consumes a reset credential and stores the new hash. Only
// tokens carrying the explicit reset type are accepted.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return fmt.Errorf("%w: token is required", domain.ErrInvalidInput)
	}
	if len(newPassword) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", domain.ErrInvalidInput)
	}

	claims, err := s.tokenManager.Verify(token)
	if err != nil {
		return err
	}
	if claims.Type() != auth.TokenReset {
		return domain.ErrTokenInvalid
	}

	userID, err := uuid.Parse(claims.UserID())
	if err != nil {
		return domain.ErrTokenInvalid
	}

	hashed, err := s.passwordHasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	return s.userRepo.UpdatePassword(ctx, userID, hashed)
}

type VerifyOutput struct {
	Valid     bool           `json:"valid"`
	UserID    uuid.UUID      `json:"user_id"`
	Email     string         `json:"email"`
	TokenType auth.TokenType `json:"token_type"`
}

// Verify introspects a credential: signature, expiry and subject existence.
func (s *AuthService) Verify(ctx context.Context, token string) (*VerifyOutput, error) {
	claims, err := s.tokenManager.Verify(token)
	if err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(claims.UserID())
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &VerifyOutput{
		Valid:     true,
		UserID:    user.ID,
		Email:     user.Email,
		TokenType: claims.Type(),
	}, nil
}

func (s *AuthService) recordIssuance(ctx context.Context, userID uuid.UUID) {
	if s.security != nil {
		s.security.RecordIssuedToken(ctx, userID, string(auth.TokenBase))
	}
	s.metrics.RecordTokenIssued(string(auth.TokenBase))
}
