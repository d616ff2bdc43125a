package registry

import (
	"log"
	"strings"

	"raybot-trade-manager/database"
	models "raybot-trade-manager/database/models_pkg"
	"raybot-trade-manager/database/types"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Repository handles database operations for the model registry
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new model registry repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// RegisterModel registers a model version, keyed on (name, version).
// Registration is idempotent: a repeated call returns the existing id.
// A concurrent duplicate insert trips the unique index; that race is
// resolved by re-fetching rather than surfacing the constraint error.
func (r *Repository) RegisterModel(name, version string, config datatypes.JSONMap) (string, error) {
	if r.db == nil {
		return "", database.ErrStoreUnavailable()
	}

	var existing models.ModelRegistration
	err := r.db.Where("name = ? AND version = ?", name, version).First(&existing).Error
	if err == nil {
		log.Printf("ℹ️  Model %s v%s already registered", name, version)
		return existing.ID, nil
	}
	if err != gorm.ErrRecordNotFound {
		return "", database.WrapDBError("RegisterModel: lookup", err)
	}

	registration := &models.ModelRegistration{
		Name:       name,
		Version:    version,
		ConfigJSON: config,
		IsActive:   true,
	}
	if err := r.db.Create(registration).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			// Lost the insert race, the winner's row is the answer
			if ferr := r.db.Where("name = ? AND version = ?", name, version).First(&existing).Error; ferr == nil {
				return existing.ID, nil
			}
		}
		return "", database.WrapDBError("RegisterModel: insert", err)
	}

	log.Printf("✅ Registered model %s v%s", name, version)
	return registration.ID, nil
}

// GetDriftBaseline reports the drift baseline for a symbol. There is no
// backing table yet, so the baseline is always absent; the method exists
// so callers can code against the final contract.
func (r *Repository) GetDriftBaseline(symbol string) (*types.DriftBaseline, error) {
	return nil, nil
}
