package repositories

import (
	"gorm.io/gorm"

	"productselector/internal/models"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	gormRepository[models.User, *models.User]
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		gormRepository: gormRepository[models.User, *models.User]{db: db},
	}
}
