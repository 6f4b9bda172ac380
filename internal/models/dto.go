package models

import (
	"fmt"
	"strings"
	"time"
)

// TimeLayout is the wire format for catalog timestamps.
const TimeLayout = "2006-01-02T15:04:05"

// Timestamp serializes as yyyy-MM-ddTHH:mm:ss without zone or fraction.
type Timestamp time.Time

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(t).Format(TimeLayout) + `"`), nil
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*t = Timestamp(time.Time{})
		return nil
	}
	parsed, err := time.Parse(TimeLayout, s)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	*t = Timestamp(parsed)
	return nil
}

// Time returns the wrapped time.Time.
func (t Timestamp) Time() time.Time {
	return time.Time(t)
}

// PropertyDTO is the external JSON representation of a property record.
type PropertyDTO struct {
	ID            int64     `json:"id"`
	Address       string    `json:"address"`
	Price         float64   `json:"price"`
	Size          float64   `json:"size"`
	Description   string    `json:"description"`
	OwnerName     string    `json:"ownerName"`
	OwnerPhone    string    `json:"ownerPhone"`
	OwnerEmail    string    `json:"ownerEmail"`
	OwnerDocument string    `json:"ownerDocument"`
	CreatedAt     Timestamp `json:"createdAt"`
	UpdatedAt     Timestamp `json:"updatedAt"`
}

// PricePerSquareMeter returns price divided by size, or 0 when size is
// not positive or price is missing.
func (d *PropertyDTO) PricePerSquareMeter() float64 {
	if d.Size > 0 && d.Price > 0 {
		return d.Price / d.Size
	}
	return 0
}

// PropertyInput carries the client-supplied fields of a create or update
// request. Any client-supplied id is ignored; validation rules live on the
// tags and are applied explicitly before persistence.
type PropertyInput struct {
	Address       string   `json:"address" validate:"required,min=5,max=500"`
	Price         *float64 `json:"price" validate:"required,gt=0"`
	Size          *float64 `json:"size" validate:"required,gte=1"`
	Description   string   `json:"description" validate:"max=1000"`
	OwnerName     string   `json:"ownerName" validate:"omitempty,min=2,max=200"`
	OwnerPhone    string   `json:"ownerPhone" validate:"omitempty,max=20,phone"`
	OwnerEmail    string   `json:"ownerEmail" validate:"omitempty,max=100,email"`
	OwnerDocument string   `json:"ownerDocument" validate:"omitempty,max=50,document"`
}

// ToProperty copies the input fields into a fresh, unsaved record.
func (in *PropertyInput) ToProperty() *Property {
	p := &Property{
		Address:       in.Address,
		Description:   in.Description,
		OwnerName:     in.OwnerName,
		OwnerPhone:    in.OwnerPhone,
		OwnerEmail:    in.OwnerEmail,
		OwnerDocument: in.OwnerDocument,
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Size != nil {
		p.Size = *in.Size
	}
	return p
}

// ApplyTo overwrites the whole mutable field set of an existing record with
// the input's values. Full-replace semantics: fields absent from the input
// are cleared, not preserved.
func (in *PropertyInput) ApplyTo(p *Property) {
	p.Address = in.Address
	p.Description = in.Description
	p.OwnerName = in.OwnerName
	p.OwnerPhone = in.OwnerPhone
	p.OwnerEmail = in.OwnerEmail
	p.OwnerDocument = in.OwnerDocument
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Size != nil {
		p.Size = *in.Size
	}
}

// ToDTO converts a stored record to its external representation.
func ToDTO(p *Property) *PropertyDTO {
	return &PropertyDTO{
		ID:            p.ID,
		Address:       p.Address,
		Price:         p.Price,
		Size:          p.Size,
		Description:   p.Description,
		OwnerName:     p.OwnerName,
		OwnerPhone:    p.OwnerPhone,
		OwnerEmail:    p.OwnerEmail,
		OwnerDocument: p.OwnerDocument,
		CreatedAt:     Timestamp(p.CreatedAt),
		UpdatedAt:     Timestamp(p.UpdatedAt),
	}
}

// ToDTOs converts a slice of records, always returning a non-nil slice so
// list endpoints serialize as [] rather than null.
func ToDTOs(properties []Property) []PropertyDTO {
	dtos := make([]PropertyDTO, 0, len(properties))
	for i := range properties {
		dtos = append(dtos, *ToDTO(&properties[i]))
	}
	return dtos
}
