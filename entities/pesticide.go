package entities

import "time"

type Pesticide struct {
	ID           string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Brand        string    `json:"brand"`
	Size         string    `json:"size"` // e.g. "1 Liter"
	Price        float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	InStock      bool      `gorm:"not null" json:"inStock"`
	Category     string    `json:"category"` // Insecticide, Herbicide, Fungicide...
	SupplierID   string    `gorm:"type:varchar(36);index;not null" json:"supplierId"`
	SupplierName string    `json:"supplierName"`
	ImageURL     *string   `json:"imageUrl"`
	Description  *string   `json:"description"`
	CreatedAt    time.Time `gorm:"autoCreateTime:false" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime:false" json:"updatedAt"`
}

type PesticidePatch struct {
	Name        *string  `json:"name"`
	Brand       *string  `json:"brand"`
	Size        *string  `json:"size"`
	Price       *float64 `json:"price"`
	InStock     *bool    `json:"inStock"`
	Category    *string  `json:"category"`
	ImageURL    *string  `json:"imageUrl"`
	Description *string  `json:"description"`
}

func (p PesticidePatch) Apply(item *Pesticide) {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Brand != nil {
		item.Brand = *p.Brand
	}
	if p.Size != nil {
		item.Size = *p.Size
	}
	if p.Price != nil {
		item.Price = *p.Price
	}
	if p.InStock != nil {
		item.InStock = *p.InStock
	}
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.ImageURL != nil {
		item.ImageURL = p.ImageURL
	}
	if p.Description != nil {
		item.Description = p.Description
	}
}
