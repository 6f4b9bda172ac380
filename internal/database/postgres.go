package database

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	"property-catalog/internal/models"
)

type DB struct {
	conn *sql.DB
}

func NewDB(host, port, user, password, dbname, sslmode string) (*DB, error) {
	if sslmode == "" {
		sslmode = "disable"
	}
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)

	conn, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := conn.Ping(); err != nil {
		return nil, err
	}

	return &DB{conn: conn}, nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

// InitSchema creates the properties table if it doesn't exist
func (db *DB) InitSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS properties (
		id BIGSERIAL PRIMARY KEY,
		address VARCHAR(500) NOT NULL,
		price NUMERIC(15, 2) NOT NULL,
		size NUMERIC(10, 2) NOT NULL,
		description VARCHAR(1000),
		owner_name VARCHAR(200),
		owner_phone VARCHAR(20),
		owner_email VARCHAR(100),
		owner_document VARCHAR(50),

		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);

	-- Create indexes for range filters and ordering
	CREATE INDEX IF NOT EXISTS idx_properties_price ON properties(price);
	CREATE INDEX IF NOT EXISTS idx_properties_size ON properties(size);
	`
	_, err := db.conn.Exec(query)
	return err
}

const propertyColumns = `id, address, price, size, description,
	   owner_name, owner_phone, owner_email, owner_document,
	   created_at, updated_at`

func scanProperty(row interface{ Scan(...interface{}) error }, p *models.Property) error {
	var description, ownerName, ownerPhone, ownerEmail, ownerDocument sql.NullString
	err := row.Scan(
		&p.ID, &p.Address, &p.Price, &p.Size, &description,
		&ownerName, &ownerPhone, &ownerEmail, &ownerDocument,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	p.Description = description.String
	p.OwnerName = ownerName.String
	p.OwnerPhone = ownerPhone.String
	p.OwnerEmail = ownerEmail.String
	p.OwnerDocument = ownerDocument.String
	return nil
}

func (db *DB) queryProperties(query string, args ...interface{}) ([]models.Property, error) {
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var properties []models.Property
	for rows.Next() {
		var p models.Property
		if err := scanProperty(rows, &p); err != nil {
			return nil, err
		}
		properties = append(properties, p)
	}

	return properties, rows.Err()
}

// Save inserts a new property (id unset) or overwrites the matching row.
func (db *DB) Save(p *models.Property) error {
	if p.ID == 0 {
		query := `
		INSERT INTO properties (
			address, price, size, description,
			owner_name, owner_phone, owner_email, owner_document,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
		`
		return db.conn.QueryRow(query,
			p.Address, p.Price, p.Size, p.Description,
			p.OwnerName, p.OwnerPhone, p.OwnerEmail, p.OwnerDocument,
			p.CreatedAt, p.UpdatedAt).Scan(&p.ID)
	}

	// created_at is never touched after insert
	query := `
	UPDATE properties SET
		address = $2, price = $3, size = $4, description = $5,
		owner_name = $6, owner_phone = $7, owner_email = $8, owner_document = $9,
		updated_at = $10
	WHERE id = $1
	`
	result, err := db.conn.Exec(query,
		p.ID, p.Address, p.Price, p.Size, p.Description,
		p.OwnerName, p.OwnerPhone, p.OwnerEmail, p.OwnerDocument,
		p.UpdatedAt)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindAll retrieves all properties from the database
func (db *DB) FindAll() ([]models.Property, error) {
	query := fmt.Sprintf(`SELECT %s FROM properties ORDER BY id`, propertyColumns)
	return db.queryProperties(query)
}

// FindByID retrieves a property by id
func (db *DB) FindByID(id int64) (*models.Property, error) {
	query := fmt.Sprintf(`SELECT %s FROM properties WHERE id = $1`, propertyColumns)

	var p models.Property
	err := scanProperty(db.conn.QueryRow(query, id), &p)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (db *DB) ExistsByID(id int64) (bool, error) {
	var exists bool
	err := db.conn.QueryRow(`SELECT EXISTS(SELECT 1 FROM properties WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (db *DB) DeleteByID(id int64) error {
	result, err := db.conn.Exec(`DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindByAddressContaining retrieves properties whose address contains the
// given text, case-insensitively.
func (db *DB) FindByAddressContaining(text string) ([]models.Property, error) {
	query := fmt.Sprintf(`SELECT %s FROM properties WHERE address ILIKE '%%' || $1 || '%%' ORDER BY id`, propertyColumns)
	return db.queryProperties(query, text)
}

// FindByPriceBetween retrieves properties with min <= price <= max.
func (db *DB) FindByPriceBetween(min, max float64) ([]models.Property, error) {
	query := fmt.Sprintf(`SELECT %s FROM properties WHERE price BETWEEN $1 AND $2 ORDER BY id`, propertyColumns)
	return db.queryProperties(query, min, max)
}

// FindBySizeBetween retrieves properties with min <= size <= max.
func (db *DB) FindBySizeBetween(min, max float64) ([]models.Property, error) {
	query := fmt.Sprintf(`SELECT %s FROM properties WHERE size BETWEEN $1 AND $2 ORDER BY id`, propertyColumns)
	return db.queryProperties(query, min, max)
}

// FindAllOrderedByPrice retrieves all properties sorted by price.
// Ties break on id so the order is stable for a given dataset.
func (db *DB) FindAllOrderedByPrice(ascending bool) ([]models.Property, error) {
	direction := "DESC"
	if ascending {
		direction = "ASC"
	}
	query := fmt.Sprintf(`SELECT %s FROM properties ORDER BY price %s, id ASC`, propertyColumns, direction)
	return db.queryProperties(query)
}

// FindAllOrderedBySize retrieves all properties sorted by size.
func (db *DB) FindAllOrderedBySize(ascending bool) ([]models.Property, error) {
	direction := "DESC"
	if ascending {
		direction = "ASC"
	}
	query := fmt.Sprintf(`SELECT %s FROM properties ORDER BY size %s, id ASC`, propertyColumns, direction)
	return db.queryProperties(query)
}
