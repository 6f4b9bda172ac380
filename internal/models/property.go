package models

import "time"

type Property struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	// 基本情報
	Address     string  `gorm:"type:varchar(500);not null" json:"address"`
	Price       float64 `gorm:"type:decimal(15,2);not null;index" json:"price"`
	Size        float64 `gorm:"type:decimal(10,2);not null;index" json:"size"`
	Description string  `gorm:"type:varchar(1000)" json:"description"`

	// 所有者情報
	OwnerName     string `gorm:"column:owner_name;type:varchar(200)" json:"owner_name,omitempty"`
	OwnerPhone    string `gorm:"column:owner_phone;type:varchar(20)" json:"owner_phone,omitempty"`
	OwnerEmail    string `gorm:"column:owner_email;type:varchar(100)" json:"owner_email,omitempty"`
	OwnerDocument string `gorm:"column:owner_document;type:varchar(50)" json:"owner_document,omitempty"`

	// タイムスタンプ（サービス層で明示的に設定する）
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime:false;<-:create" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime:false" json:"updated_at"`
}

// TableName はテーブル名を明示的に指定
func (Property) TableName() string {
	return "properties"
}

// PricePerSquareMeter returns price divided by size, or 0 when size is
// not positive or price is missing. Derived, never stored.
func (p *Property) PricePerSquareMeter() float64 {
	if p.Size > 0 && p.Price > 0 {
		return p.Price / p.Size
	}
	return 0
}

// Equal reports identity equality: two persisted records are the same
// record iff their ids match. Unsaved records are never equal.
func (p *Property) Equal(other *Property) bool {
	if other == nil {
		return false
	}
	return p.ID != 0 && p.ID == other.ID
}
