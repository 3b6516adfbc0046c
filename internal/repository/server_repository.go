package repository

import (
	"errors"

	"github.com/VERT-sh/waitress/internal/models"
	"gorm.io/gorm"
)

type ServerRepository struct {
	db *gorm.DB
}

func NewServerRepository(db *gorm.DB) *ServerRepository {
	return &ServerRepository{db: db}
}

// Insert allocates a new ServerRecord. The port is checked for uniqueness up
// front, but the unique index on the column is the real guarantee: a
// concurrent insert racing this check is still rejected by the database.
func (r *ServerRepository) Insert(owner, name string, port int, image string) (*models.ServerRecord, error) {
	var existing models.ServerRecord
	err := r.db.Where("port = ?", port).First(&existing).Error
	if err == nil {
		return nil, models.ErrPortAlreadyInUse
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	record := &models.ServerRecord{
		Owner: owner,
		Name:  name,
		Port:  port,
		Image: image,
	}
	if err := r.db.Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// GetByID returns a single record, or models.ErrServerNotFound.
func (r *ServerRepository) GetByID(id string) (*models.ServerRecord, error) {
	var record models.ServerRecord
	err := r.db.Where("id = ?", id).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrServerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// GetAllByOwner returns every record owned by owner, newest first.
func (r *ServerRepository) GetAllByOwner(owner string) ([]models.ServerRecord, error) {
	var records []models.ServerRecord
	err := r.db.Where("owner = ?", owner).Order("created_at DESC").Find(&records).Error
	return records, err
}

// ListAll returns every record, used to restore servers at boot.
func (r *ServerRepository) ListAll() ([]models.ServerRecord, error) {
	var records []models.ServerRecord
	err := r.db.Find(&records).Error
	return records, err
}

// Delete removes a record by id. Deleting an id that does not exist is not
// an error.
func (r *ServerRepository) Delete(id string) error {
	return r.db.Unscoped().Where("id = ?", id).Delete(&models.ServerRecord{}).Error
}
