package entities

import "time"

type Produce struct {
	ID                string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name              string    `gorm:"not null" json:"name"`
	Category          string    `gorm:"not null" json:"category"`
	PricePerKg        float64   `gorm:"type:decimal(10,2);not null" json:"pricePerKg"`
	QuantityAvailable int       `gorm:"not null" json:"quantityAvailable"`
	Unit              string    `gorm:"not null" json:"unit"`
	FarmerID          string    `gorm:"type:varchar(36);index;not null" json:"farmerId"`
	FarmerName        string    `json:"farmerName"`
	Organic           bool      `gorm:"not null" json:"organic"`
	ImageURL          *string   `json:"imageUrl"`
	Description       *string   `json:"description"`
	CreatedAt         time.Time `gorm:"autoCreateTime:false" json:"createdAt"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime:false" json:"updatedAt"`
}

// TableName keeps the singular table name used by the Postgres schema.
func (Produce) TableName() string { return "produce" }

type ProducePatch struct {
	Name              *string  `json:"name"`
	Category          *string  `json:"category"`
	PricePerKg        *float64 `json:"pricePerKg"`
	QuantityAvailable *int     `json:"quantityAvailable"`
	Unit              *string  `json:"unit"`
	Organic           *bool    `json:"organic"`
	ImageURL          *string  `json:"imageUrl"`
	Description       *string  `json:"description"`
}

func (p ProducePatch) Apply(item *Produce) {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.PricePerKg != nil {
		item.PricePerKg = *p.PricePerKg
	}
	if p.QuantityAvailable != nil {
		item.QuantityAvailable = *p.QuantityAvailable
	}
	if p.Unit != nil {
		item.Unit = *p.Unit
	}
	if p.Organic != nil {
		item.Organic = *p.Organic
	}
	if p.ImageURL != nil {
		item.ImageURL = p.ImageURL
	}
	if p.Description != nil {
		item.Description = p.Description
	}
}
