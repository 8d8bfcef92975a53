// internal/model/account.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type AccountType string

const (
	AccountIndividual   AccountType = "INDIVIDUAL"
	AccountOrganization AccountType = "ORGANIZATION"
)

// Account is the billable entity products are provisioned against. Every
// account has exactly one owning user, set at creation and never reassigned.
type Account struct {
	ID             uuid.UUID   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Type           AccountType `gorm:"type:text;not null" json:"type"`
	OwnerUserID    uuid.UUID   `gorm:"type:uuid;not null" json:"owner_user_id"`
	OrganizationID *uuid.UUID  `gorm:"type:uuid" json:"organization_id,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`

	Owner        User             `gorm:"foreignKey:OwnerUserID" json:"-"`
	Organization *Organization    `gorm:"foreignKey:OrganizationID" json:"-"`
	Products     []AccountProduct `gorm:"foreignKey:AccountID" json:"products,omitempty"`
}
