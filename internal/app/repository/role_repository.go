package repository

import (
	"github.com/mdehtemam/bagquote-backend/internal/app/model"
	"github.com/mdehtemam/bagquote-backend/pkg/logger"
	"gorm.io/gorm"
)

type RoleRepository interface {
	Create(userRole *model.UserRole) error
	HasRole(userID uint, role model.Role) (bool, error)
}

type roleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) Create(userRole *model.UserRole) error {
	logger.Debug("Creating role assignment in database", map[string]interface{}{
		"user_id": userRole.UserID,
		"role":    userRole.Role,
	})

	if err := r.db.Create(userRole).Error; err != nil {
		logger.Error("Failed to create role assignment in database", err, map[string]interface{}{
			"user_id": userRole.UserID,
			"role":    userRole.Role,
		})
		return err
	}
	return nil
}

// HasRole reports whether the user has a row for the given role. The result
// is always recomputed from the table, never cached.
func (r *roleRepository) HasRole(userID uint, role model.Role) (bool, error) {
	var count int64
	err := r.db.Model(&model.UserRole{}).
		Where("user_id = ? AND role = ?", userID, role).
		Count(&count).Error
	if err != nil {
		logger.Error("Failed to check role membership in database", err, map[string]interface{}{
			"user_id": userID,
			"role":    role,
		})
		return false, err
	}
	return count > 0, nil
}
