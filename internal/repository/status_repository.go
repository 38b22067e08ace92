package repository

import (
	"gorm.io/gorm"

	"github.com/teamgrid/tracker-api/internal/models"
)

// GormStatusRepository is a GORM implementation of StatusRepository
type GormStatusRepository struct {
	db *gorm.DB
}

// NewStatusRepository creates a new StatusRepository
func NewStatusRepository(db *gorm.DB) StatusRepository {
	return &GormStatusRepository{db: db}
}

// ListOrdered returns all statuses by ascending step order.
func (r *GormStatusRepository) ListOrdered() ([]models.Status, error) {
	var statuses []models.Status
	if err := r.db.Order("step_order ASC, id ASC").Find(&statuses).Error; err != nil {
		return nil, err
	}
	return statuses, nil
}

// FindByID finds a status by ID
func (r *GormStatusRepository) FindByID(id uint64) (*models.Status, error) {
	var status models.Status
	if err := r.db.First(&status, id).Error; err != nil {
		return nil, err
	}
	return &status, nil
}
