// internal/repository/repository.go
package repository

import (
	"errors"

	"github.com/lib/pq"
)

// uniqueViolation is the postgres error code for a violated unique
// constraint. The (account_id, product_id) index surfaces concurrent
// enrollments of the same pair through this code.
const uniqueViolation = "23505"

// IsUniqueViolation reports whether err is a postgres unique-constraint
// violation.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}
	return false
}
