// internal/repository/mock_gen.go
package repository

//go:generate mockgen -source=./user.go -destination=../mocks/mock_user_repository.go -package=mocks UserRepositoryIface
//go:generate mockgen -source=./account.go -destination=../mocks/mock_account_repository.go -package=mocks AccountRepositoryIface
//go:generate mockgen -source=./organization.go -destination=../mocks/mock_organization_repository.go -package=mocks OrganizationRepositoryIface
//go:generate mockgen -source=./product.go -destination=../mocks/mock_product_repository.go -package=mocks ProductRepositoryIface
//go:generate mockgen -source=./enrollment.go -destination=../mocks/mock_enrollment_repository.go -package=mocks EnrollmentRepositoryIface
//go:generate mockgen -source=./security.go -destination=../mocks/mock_security_repository.go -package=mocks SecurityRepositoryIface
