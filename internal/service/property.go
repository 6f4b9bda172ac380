package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"property-catalog/internal/database"
	"property-catalog/internal/models"
	"property-catalog/internal/search"
	"property-catalog/internal/validation"
)

// PropertyService implements the catalog use cases. It validates inputs,
// stamps timestamps, converts between the stored and external shapes, and
// delegates persistence to the store. The search index is advisory: it is
// kept in sync best-effort and the store remains the source of truth.
type PropertyService struct {
	store     database.PropertyStore
	searchCli *search.SearchClient
	validator *validation.Validator
}

// NewPropertyService creates a property service. searchCli may be nil when
// full-text search is disabled.
func NewPropertyService(store database.PropertyStore, searchCli *search.SearchClient) *PropertyService {
	return &PropertyService{
		store:     store,
		searchCli: searchCli,
		validator: validation.New(),
	}
}

// GetAll returns every property in the catalog.
func (s *PropertyService) GetAll() ([]models.PropertyDTO, error) {
	properties, err := s.store.FindAll()
	if err != nil {
		return nil, fmt.Errorf("get all properties: %w", err)
	}
	return models.ToDTOs(properties), nil
}

// GetByID returns the property with the given id, or nil (without error)
// when no record matches.
func (s *PropertyService) GetByID(id int64) (*models.PropertyDTO, error) {
	property, err := s.store.FindByID(id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get property %d: %w", id, err)
	}
	return models.ToDTO(property), nil
}

// Create validates the input, copies it into a new record (any client
// supplied id is ignored), stamps both timestamps, and persists.
func (s *PropertyService) Create(in *models.PropertyInput) (*models.PropertyDTO, error) {
	if err := s.validator.ValidateInput(in); err != nil {
		return nil, err
	}

	property := in.ToProperty()
	now := time.Now()
	property.CreatedAt = now
	property.UpdatedAt = now

	if err := s.store.Save(property); err != nil {
		return nil, fmt.Errorf("create property: %w", err)
	}

	s.indexProperty(property)
	return models.ToDTO(property), nil
}

// Update overwrites the whole mutable field set of an existing record with
// the input's values and refreshes updated_at. Returns nil (without error
// or side effects) when no record matches the id.
func (s *PropertyService) Update(id int64, in *models.PropertyInput) (*models.PropertyDTO, error) {
	if err := s.validator.ValidateInput(in); err != nil {
		return nil, err
	}

	existing, err := s.store.FindByID(id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update property %d: %w", id, err)
	}

	in.ApplyTo(existing)
	existing.UpdatedAt = time.Now()

	if err := s.store.Save(existing); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("update property %d: %w", id, err)
	}

	s.indexProperty(existing)
	return models.ToDTO(existing), nil
}

// Delete removes the property with the given id. Returns false when no
// record matches.
func (s *PropertyService) Delete(id int64) (bool, error) {
	exists, err := s.store.ExistsByID(id)
	if err != nil {
		return false, fmt.Errorf("delete property %d: %w", id, err)
	}
	if !exists {
		return false, nil
	}

	if err := s.store.DeleteByID(id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("delete property %d: %w", id, err)
	}

	if s.searchCli != nil {
		if err := s.searchCli.RemoveProperty(id); err != nil {
			log.Printf("Warning: Failed to remove property %d from search index: %v", id, err)
		}
	}
	return true, nil
}

// SearchByAddress returns properties whose address contains the given text,
// case-insensitively. When the search index is enabled and the text is
// non-empty it answers from Meilisearch, falling back to the store on error.
func (s *PropertyService) SearchByAddress(text string) ([]models.PropertyDTO, error) {
	if s.searchCli != nil && text != "" {
		properties, err := s.searchCli.SearchByAddress(text, 0)
		if err == nil {
			return models.ToDTOs(properties), nil
		}
		log.Printf("Warning: Search index query failed, falling back to store: %v", err)
	}

	properties, err := s.store.FindByAddressContaining(text)
	if err != nil {
		return nil, fmt.Errorf("search properties by address: %w", err)
	}
	return models.ToDTOs(properties), nil
}

// ByPriceRange returns properties with minPrice <= price <= maxPrice.
func (s *PropertyService) ByPriceRange(minPrice, maxPrice float64) ([]models.PropertyDTO, error) {
	properties, err := s.store.FindByPriceBetween(minPrice, maxPrice)
	if err != nil {
		return nil, fmt.Errorf("find properties by price range: %w", err)
	}
	return models.ToDTOs(properties), nil
}

// BySizeRange returns properties with minSize <= size <= maxSize.
func (s *PropertyService) BySizeRange(minSize, maxSize float64) ([]models.PropertyDTO, error) {
	properties, err := s.store.FindBySizeBetween(minSize, maxSize)
	if err != nil {
		return nil, fmt.Errorf("find properties by size range: %w", err)
	}
	return models.ToDTOs(properties), nil
}

// OrderedByPrice returns the full catalog sorted by price.
func (s *PropertyService) OrderedByPrice(ascending bool) ([]models.PropertyDTO, error) {
	properties, err := s.store.FindAllOrderedByPrice(ascending)
	if err != nil {
		return nil, fmt.Errorf("order properties by price: %w", err)
	}
	return models.ToDTOs(properties), nil
}

// OrderedBySize returns the full catalog sorted by size.
func (s *PropertyService) OrderedBySize(ascending bool) ([]models.PropertyDTO, error) {
	properties, err := s.store.FindAllOrderedBySize(ascending)
	if err != nil {
		return nil, fmt.Errorf("order properties by size: %w", err)
	}
	return models.ToDTOs(properties), nil
}

func (s *PropertyService) indexProperty(p *models.Property) {
	if s.searchCli == nil {
		return
	}
	if err := s.searchCli.IndexProperty(p); err != nil {
		log.Printf("Warning: Failed to index property %d: %v", p.ID, err)
	}
}
