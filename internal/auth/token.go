// internal/auth/token.go
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dangerclosesec/accountd/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// TokenType discriminates the credential shapes the platform issues. The
// claim is optional on the wire: tokens minted before typing was introduced
// carry no "type" claim and decode as base.
type TokenType string

const (
	TokenBase    TokenType = "base"
	TokenProduct TokenType = "product"
	TokenReset   TokenType = "reset"
)

// DefaultRole is embedded in product tokens when the caller does not name one.
const DefaultRole = "member"

type TokenManager struct {
	secret      []byte
	baseExpiry  time.Duration
	resetExpiry time.Duration
}

func NewTokenManager(secret string, baseExpiry, resetExpiry time.Duration) *TokenManager {
	return &TokenManager{
		secret:      []byte(secret),
		baseExpiry:  baseExpiry,
		resetExpiry: resetExpiry,
	}
}

type Claims struct {
	Email       string    `json:"email"`
	AccountIDs  []string  `json:"account_ids,omitempty"`
	AccountID   string    `json:"account_id,omitempty"`
	AccountType string    `json:"account_type,omitempty"`
	Product     string    `json:"product,omitempty"`
	ResourceID  string    `json:"resource_id,omitempty"`
	Role        string    `json:"role,omitempty"`
	TokenType   TokenType `json:"type,omitempty"`
	jwt.RegisteredClaims
}

// Type resolves the credential type, defaulting an absent claim to base.
func (c *Claims) Type() TokenType {
	if c.TokenType == "" {
		return TokenBase
	}
	return c.TokenType
}

// UserID returns the subject user id.
func (c *Claims) UserID() string {
	return c.Subject
}

// IssueBase mints the account-wide credential handed out at login. It lists
// every account id the user owns.
func (tm *TokenManager) IssueBase(userID, email string, accountIDs []string) (string, error) {
	return tm.sign(Claims{
		Email:      email,
		AccountIDs: accountIDs,
		TokenType:  TokenBase,
	}, userID, tm.baseExpiry)
}

// IssueProduct mints a credential narrowed to one account, product and
// provisioned external resource.
func (tm *TokenManager) IssueProduct(userID, email, accountID, accountType, productCode, resourceID, role string) (string, error) {
	if role == "" {
		role = DefaultRole
	}
	return tm.sign(Claims{
		Email:       email,
		AccountID:   accountID,
		AccountType: accountType,
		Product:     productCode,
		ResourceID:  resourceID,
		Role:        role,
		TokenType:   TokenProduct,
	}, userID, tm.baseExpiry)
}

// IssueReset mints the short-lived password-reset credential. It carries an
// explicit reset type so the authorization guard can reject it outright.
func (tm *TokenManager) IssueReset(userID, email string) (string, error) {
	return tm.sign(Claims{
		Email:     email,
		TokenType: TokenReset,
	}, userID, tm.resetExpiry)
}

func (tm *TokenManager) sign(claims Claims, subject string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

// Verify checks signature and expiry and returns the decoded claims. An
// elapsed exp yields domain.ErrTokenExpired; every other parse failure yields
// domain.ErrTokenInvalid, so callers can tell a refreshable token from a
// tampered one.
func (tm *TokenManager) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return tm.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %s", domain.ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	return claims, nil
}
