package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"property-catalog/internal/database"
	"property-catalog/internal/models"
	"property-catalog/internal/validation"
)

func f(v float64) *float64 { return &v }

func newTestService() (*PropertyService, *database.MemoryStore) {
	store := database.NewMemoryStore()
	return NewPropertyService(store, nil), store
}

func validInput() *models.PropertyInput {
	return &models.PropertyInput{
		Address:     "Calle 10 #20-30, Bogotá",
		Price:       f(150000000),
		Size:        f(80),
		Description: "Apartamento con balcón",
		OwnerName:   "Carlos Pérez",
		OwnerPhone:  "+57 300 555 0199",
		OwnerEmail:  "carlos@example.com",
	}
}

func TestCreateThenGetByID(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(validInput())
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.Time().IsZero())
	assert.False(t, created.UpdatedAt.Time().IsZero())

	fetched, err := svc.GetByID(created.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, created.Address, fetched.Address)
	assert.Equal(t, created.Price, fetched.Price)
	assert.Equal(t, created.Size, fetched.Size)
	assert.Equal(t, created.Description, fetched.Description)
	assert.Equal(t, created.OwnerName, fetched.OwnerName)
	assert.InDelta(t, 1875000, fetched.PricePerSquareMeter(), 0.001)
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	svc, store := newTestService()

	in := validInput()
	in.Address = "abcd"

	_, err := svc.Create(in)
	var vErr *validation.Error
	require.ErrorAs(t, err, &vErr)

	// Rejected input never reaches the store
	all, err := store.FindAll()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestGetByIDMissing(t *testing.T) {
	svc, _ := newTestService()

	dto, err := svc.GetByID(12345)
	require.NoError(t, err)
	assert.Nil(t, dto)
}

func TestUpdateFullReplace(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(validInput())
	require.NoError(t, err)

	update := &models.PropertyInput{
		Address: "Carrera 7 #45-10, Bogotá",
		Price:   f(200000000),
		Size:    f(95),
		// description and owner fields deliberately absent
	}
	updated, err := svc.Update(created.ID, update)
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, "Carrera 7 #45-10, Bogotá", updated.Address)
	assert.Equal(t, 200000000.0, updated.Price)
	assert.Empty(t, updated.Description, "full-replace clears absent fields")
	assert.Empty(t, updated.OwnerName)
	assert.True(t, created.CreatedAt.Time().Equal(updated.CreatedAt.Time()),
		"created_at never changes on update")
	assert.False(t, updated.UpdatedAt.Time().Before(created.UpdatedAt.Time()))
}

func TestUpdateRefreshesUpdatedAt(t *testing.T) {
	svc, store := newTestService()

	created, err := svc.Create(validInput())
	require.NoError(t, err)

	// Backdate the stored record so the refresh is observable
	stored, err := store.FindByID(created.ID)
	require.NoError(t, err)
	stored.UpdatedAt = time.Now().Add(-time.Hour)
	require.NoError(t, store.Save(stored))

	updated, err := svc.Update(created.ID, validInput())
	require.NoError(t, err)
	assert.True(t, updated.UpdatedAt.Time().After(stored.UpdatedAt))
}

func TestUpdateMissingLeavesStoreUnchanged(t *testing.T) {
	svc, store := newTestService()

	created, err := svc.Create(validInput())
	require.NoError(t, err)

	dto, err := svc.Update(created.ID+100, &models.PropertyInput{
		Address: "Calle 99 #1-1, Medellín",
		Price:   f(1000),
		Size:    f(10),
	})
	require.NoError(t, err)
	assert.Nil(t, dto)

	all, err := store.FindAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Calle 10 #20-30, Bogotá", all[0].Address)
}

func TestUpdateRejectsInvalidInput(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(validInput())
	require.NoError(t, err)

	in := validInput()
	in.Size = f(0.5)
	_, err = svc.Update(created.ID, in)

	var vErr *validation.Error
	assert.ErrorAs(t, err, &vErr)
}

func TestDeleteIdempotentInEffect(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(validInput())
	require.NoError(t, err)

	deleted, err := svc.Delete(created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	all, err := svc.GetAll()
	require.NoError(t, err)
	assert.Empty(t, all)

	// Second call on the same id reports absence
	deleted, err = svc.Delete(created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestSearchByAddress(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(validInput())
	require.NoError(t, err)
	second := validInput()
	second.Address = "Av. El Poblado #5-20, Medellín"
	_, err = svc.Create(second)
	require.NoError(t, err)

	results, err := svc.SearchByAddress("BOGOTÁ")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Contains(t, results[0].Address, "Bogotá")
}

func TestRangeAndOrderPassThrough(t *testing.T) {
	svc, _ := newTestService()

	prices := []float64{300000, 100000, 200000}
	sizes := []float64{30, 10, 20}
	for i := range prices {
		in := validInput()
		in.Price = f(prices[i])
		in.Size = f(sizes[i])
		_, err := svc.Create(in)
		require.NoError(t, err)
	}

	t.Run("price range inclusive", func(t *testing.T) {
		results, err := svc.ByPriceRange(100000, 200000)
		require.NoError(t, err)
		assert.Len(t, results, 2)
	})

	t.Run("size range inclusive", func(t *testing.T) {
		results, err := svc.BySizeRange(20, 30)
		require.NoError(t, err)
		assert.Len(t, results, 2)
	})

	t.Run("ordered by price ascending", func(t *testing.T) {
		results, err := svc.OrderedByPrice(true)
		require.NoError(t, err)
		require.Len(t, results, 3)
		for i := 1; i < len(results); i++ {
			assert.LessOrEqual(t, results[i-1].Price, results[i].Price)
		}
	})

	t.Run("ordered by size descending", func(t *testing.T) {
		results, err := svc.OrderedBySize(false)
		require.NoError(t, err)
		require.Len(t, results, 3)
		for i := 1; i < len(results); i++ {
			assert.GreaterOrEqual(t, results[i-1].Size, results[i].Size)
		}
	})
}

func TestGetAllReturnsEmptySliceNotNil(t *testing.T) {
	svc, _ := newTestService()

	all, err := svc.GetAll()
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}
