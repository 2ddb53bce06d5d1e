// Package model holds the GORM persistence models for the PostgreSQL-backed
// tables.
package model

import (
	"time"
)

// ProductModel mirrors the 'products' table. IDs come from the seed dataset,
// not the database.
type ProductModel struct {
	ID        string  `gorm:"type:varchar(64);primaryKey"`
	Name      string  `gorm:"type:varchar(255);not null"`
	Price     float64 `gorm:"not null"`
	SalePrice *float64
	Discount  int
	Category  string `gorm:"type:varchar(100);index"`
	Brand     string `gorm:"type:varchar(100);index"`
	Image     string `gorm:"type:text"`
	Alt       string `gorm:"type:text"`
	Rating    float64
	Reviews   int
	IsNew     bool
	InStock   bool
	Sizes     []string `gorm:"type:jsonb;serializer:json"`
	Colors    []string `gorm:"type:jsonb;serializer:json"`
	DateAdded string   `gorm:"type:varchar(10)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
