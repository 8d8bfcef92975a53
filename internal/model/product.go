// internal/model/product.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Product is static catalog data created by platform admins. The code is the
// stable handle everything else keys on ("notify", "media", "billing", ...).
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Code        string    `gorm:"type:text;uniqueIndex;not null" json:"code"`
	Name        string    `gorm:"type:text;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type EnrollmentStatus string

const (
	EnrollmentProvisioning EnrollmentStatus = "PROVISIONING"
	EnrollmentActive       EnrollmentStatus = "ACTIVE"
	EnrollmentSuspended    EnrollmentStatus = "SUSPENDED"
)

type Plan string

const (
	PlanFree       Plan = "FREE"
	PlanPro        Plan = "PRO"
	PlanEnterprise Plan = "ENTERPRISE"
)

// AccountProduct records an account's enrollment in a product. Rows are
// created in PROVISIONING and settle into ACTIVE (with the external resource
// id the product service returned) or SUSPENDED. The unique index on
// (account_id, product_id) is the enforcement point for concurrent enrolls.
type AccountProduct struct {
	ID                 uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	AccountID          uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_account_product" json:"account_id"`
	ProductID          uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_account_product" json:"product_id"`
	Status             EnrollmentStatus `gorm:"type:text;not null;default:'PROVISIONING'" json:"status"`
	Plan               Plan             `gorm:"type:text;not null;default:'FREE'" json:"plan"`
	ExternalResourceID *string          `gorm:"type:text" json:"external_resource_id,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`

	Account Account `gorm:"foreignKey:AccountID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}
