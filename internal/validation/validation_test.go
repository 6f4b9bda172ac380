package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"property-catalog/internal/models"
)

func f(v float64) *float64 { return &v }

func validInput() *models.PropertyInput {
	return &models.PropertyInput{
		Address: "Calle 10 #20-30, Bogotá",
		Price:   f(150000000),
		Size:    f(80),
	}
}

func TestValidateInput_AcceptsMinimalListing(t *testing.T) {
	v := New()
	assert.NoError(t, v.ValidateInput(validInput()))
}

func TestValidateInput_AcceptsFullListing(t *testing.T) {
	v := New()
	in := validInput()
	in.Description = "Apartamento remodelado con vista al parque"
	in.OwnerName = "Carlos Pérez"
	in.OwnerPhone = "+57 (301) 555-0199"
	in.OwnerEmail = "carlos.perez@example.com"
	in.OwnerDocument = "CC 1020.304050"
	assert.NoError(t, v.ValidateInput(in))
}

func TestValidateInput_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.PropertyInput)
	}{
		{"address too short", func(in *models.PropertyInput) { in.Address = "abcd" }},
		{"address missing", func(in *models.PropertyInput) { in.Address = "" }},
		{"price zero", func(in *models.PropertyInput) { in.Price = f(0) }},
		{"price missing", func(in *models.PropertyInput) { in.Price = nil }},
		{"price negative", func(in *models.PropertyInput) { in.Price = f(-100) }},
		{"size below one", func(in *models.PropertyInput) { in.Size = f(0.5) }},
		{"size missing", func(in *models.PropertyInput) { in.Size = nil }},
		{"description too long", func(in *models.PropertyInput) {
			long := make([]byte, 1001)
			for i := range long {
				long[i] = 'a'
			}
			in.Description = string(long)
		}},
		{"owner name single char", func(in *models.PropertyInput) { in.OwnerName = "A" }},
		{"phone with letters", func(in *models.PropertyInput) { in.OwnerPhone = "30x555" }},
		{"email malformed", func(in *models.PropertyInput) { in.OwnerEmail = "not-an-email" }},
		{"document with symbols", func(in *models.PropertyInput) { in.OwnerDocument = "CC#123" }},
	}

	v := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(in)

			err := v.ValidateInput(in)
			require.Error(t, err)

			var vErr *Error
			require.ErrorAs(t, err, &vErr)
			assert.NotEmpty(t, vErr.Fields)
		})
	}
}

func TestValidateInput_PhoneShapes(t *testing.T) {
	v := New()

	for _, phone := range []string{"+57 300 123 4567", "(601) 555-0101", "3001234567"} {
		in := validInput()
		in.OwnerPhone = phone
		assert.NoError(t, v.ValidateInput(in), "phone %q should be accepted", phone)
	}
}
