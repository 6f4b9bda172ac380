package database

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"property-catalog/internal/models"
)

type GormDB struct {
	db *gorm.DB
}

func NewGormDB(host, port, user, password, dbname string) (*GormDB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, password, host, port, dbname)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().Local()
		},
	})
	if err != nil {
		return nil, err
	}

	// Test connection
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}

	return &GormDB{db: db}, nil
}

// NewGormDBFromDB creates a GormDB wrapper from an existing gorm.DB instance
func NewGormDBFromDB(db *gorm.DB) *GormDB {
	return &GormDB{db: db}
}

// DB returns the underlying gorm.DB instance
func (gdb *GormDB) DB() *gorm.DB {
	return gdb.db
}

func (gdb *GormDB) Close() error {
	sqlDB, err := gdb.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// InitSchema creates the properties table using GORM AutoMigrate
func (gdb *GormDB) InitSchema() error {
	return gdb.db.AutoMigrate(&models.Property{})
}

// Save inserts a new property (id unset) or overwrites the matching row.
// created_at is never touched after insert.
func (gdb *GormDB) Save(p *models.Property) error {
	if p.ID == 0 {
		return gdb.db.Create(p).Error
	}

	result := gdb.db.Model(&models.Property{}).
		Where("id = ?", p.ID).
		Select("address", "price", "size", "description",
			"owner_name", "owner_phone", "owner_email", "owner_document",
			"updated_at").
		Updates(p)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindAll retrieves all properties
func (gdb *GormDB) FindAll() ([]models.Property, error) {
	var properties []models.Property
	err := gdb.db.Order("id ASC").Find(&properties).Error
	return properties, err
}

// FindByID retrieves a property by id
func (gdb *GormDB) FindByID(id int64) (*models.Property, error) {
	var property models.Property
	err := gdb.db.Where("id = ?", id).First(&property).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func (gdb *GormDB) ExistsByID(id int64) (bool, error) {
	var count int64
	err := gdb.db.Model(&models.Property{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (gdb *GormDB) DeleteByID(id int64) error {
	result := gdb.db.Delete(&models.Property{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindByAddressContaining retrieves properties whose address contains the
// given text, case-insensitively.
func (gdb *GormDB) FindByAddressContaining(text string) ([]models.Property, error) {
	var properties []models.Property
	err := gdb.db.
		Where("LOWER(address) LIKE LOWER(?)", "%"+text+"%").
		Order("id ASC").
		Find(&properties).Error
	return properties, err
}

// FindByPriceBetween retrieves properties with min <= price <= max.
func (gdb *GormDB) FindByPriceBetween(min, max float64) ([]models.Property, error) {
	var properties []models.Property
	err := gdb.db.
		Where("price BETWEEN ? AND ?", min, max).
		Order("id ASC").
		Find(&properties).Error
	return properties, err
}

// FindBySizeBetween retrieves properties with min <= size <= max.
func (gdb *GormDB) FindBySizeBetween(min, max float64) ([]models.Property, error) {
	var properties []models.Property
	err := gdb.db.
		Where("size BETWEEN ? AND ?", min, max).
		Order("id ASC").
		Find(&properties).Error
	return properties, err
}

// FindAllOrderedByPrice retrieves all properties sorted by price.
// Ties break on id so the order is stable for a given dataset.
func (gdb *GormDB) FindAllOrderedByPrice(ascending bool) ([]models.Property, error) {
	var properties []models.Property
	err := gdb.db.Order(orderClause("price", ascending)).Find(&properties).Error
	return properties, err
}

// FindAllOrderedBySize retrieves all properties sorted by size.
func (gdb *GormDB) FindAllOrderedBySize(ascending bool) ([]models.Property, error) {
	var properties []models.Property
	err := gdb.db.Order(orderClause("size", ascending)).Find(&properties).Error
	return properties, err
}

func orderClause(column string, ascending bool) string {
	if ascending {
		return column + " ASC, id ASC"
	}
	return column + " DESC, id ASC"
}
