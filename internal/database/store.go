package database

import (
	"errors"

	"property-catalog/internal/models"
)

// ErrNotFound is returned when no property matches the given id.
var ErrNotFound = errors.New("property not found")

// PropertyStore is the durable keyed collection of property records.
// Implemented over PostgreSQL (default), MySQL via GORM, and an in-memory
// map used by tests.
type PropertyStore interface {
	FindAll() ([]models.Property, error)
	FindByID(id int64) (*models.Property, error)
	// Save inserts when the record has no id and overwrites the matching
	// row otherwise. The record's id is populated on insert.
	Save(p *models.Property) error
	ExistsByID(id int64) (bool, error)
	DeleteByID(id int64) error

	FindByAddressContaining(text string) ([]models.Property, error)
	FindByPriceBetween(min, max float64) ([]models.Property, error)
	FindBySizeBetween(min, max float64) ([]models.Property, error)
	FindAllOrderedByPrice(ascending bool) ([]models.Property, error)
	FindAllOrderedBySize(ascending bool) ([]models.Property, error)
}
