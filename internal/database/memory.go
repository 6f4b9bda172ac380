package database

import (
	"sort"
	"strings"
	"sync"

	"property-catalog/internal/models"
)

// MemoryStore is a map-backed PropertyStore used by tests. Natural order
// is ascending id, which is stable for a fixed dataset.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]models.Property
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID: 1,
		items:  make(map[int64]models.Property),
	}
}

func (m *MemoryStore) Save(p *models.Property) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if p.ID == 0 {
		p.ID = m.nextID
		m.nextID++
		m.items[p.ID] = *p
		return nil
	}

	existing, ok := m.items[p.ID]
	if !ok {
		return ErrNotFound
	}
	// created_at is never touched after insert
	p.CreatedAt = existing.CreatedAt
	m.items[p.ID] = *p
	return nil
}

func (m *MemoryStore) FindAll() ([]models.Property, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.collect(func(models.Property) bool { return true }), nil
}

func (m *MemoryStore) FindByID(id int64) (*models.Property, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (m *MemoryStore) ExistsByID(id int64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.items[id]
	return ok, nil
}

func (m *MemoryStore) DeleteByID(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[id]; !ok {
		return ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *MemoryStore) FindByAddressContaining(text string) ([]models.Property, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	needle := strings.ToLower(text)
	return m.collect(func(p models.Property) bool {
		return strings.Contains(strings.ToLower(p.Address), needle)
	}), nil
}

func (m *MemoryStore) FindByPriceBetween(min, max float64) ([]models.Property, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.collect(func(p models.Property) bool {
		return p.Price >= min && p.Price <= max
	}), nil
}

func (m *MemoryStore) FindBySizeBetween(min, max float64) ([]models.Property, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.collect(func(p models.Property) bool {
		return p.Size >= min && p.Size <= max
	}), nil
}

func (m *MemoryStore) FindAllOrderedByPrice(ascending bool) ([]models.Property, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	properties := m.collect(func(models.Property) bool { return true })
	sort.SliceStable(properties, func(i, j int) bool {
		if ascending {
			return properties[i].Price < properties[j].Price
		}
		return properties[i].Price > properties[j].Price
	})
	return properties, nil
}

func (m *MemoryStore) FindAllOrderedBySize(ascending bool) ([]models.Property, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	properties := m.collect(func(models.Property) bool { return true })
	sort.SliceStable(properties, func(i, j int) bool {
		if ascending {
			return properties[i].Size < properties[j].Size
		}
		return properties[i].Size > properties[j].Size
	})
	return properties, nil
}

// collect returns matching records in ascending id order. Caller holds the lock.
func (m *MemoryStore) collect(match func(models.Property) bool) []models.Property {
	ids := make([]int64, 0, len(m.items))
	for id := range m.items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var properties []models.Property
	for _, id := range ids {
		if p := m.items[id]; match(p) {
			properties = append(properties, p)
		}
	}
	return properties
}
