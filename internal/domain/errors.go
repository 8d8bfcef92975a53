// internal/domain/errors.go
package domain

import "errors"

var (
	// General errors
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")

	// Token errors
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
	ErrMissingToken = errors.New("authorization required")

	// User-related errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Account-related errors
	ErrAccountNotFound = errors.New("ACCOUNT_NOT_FOUND")
	ErrAccountAccess   = errors.New("you do not have access to this account")

	// Organization-related errors
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrMemberNotFound       = errors.New("member not found")
	ErrMemberAlreadyExists  = errors.New("member already exists")

	// Product and enrollment errors
	ErrProductNotFound     = errors.New("PRODUCT_NOT_FOUND")
	ErrAlreadyEnrolled     = errors.New("ALREADY_ENROLLED")
	ErrProvisioningFailed  = errors.New("PROVISIONING_FAILED")
	ErrNotEnrolled         = errors.New("PRODUCT_NOT_ENROLLED")
	ErrEnrollmentNotActive = errors.New("PRODUCT_NOT_ACTIVE")
)
