package entities

import "time"

type VehicleType string

const (
	VehicleTypeTractor   VehicleType = "tractor"
	VehicleTypeHarvester VehicleType = "harvester"
	VehicleTypePlanter   VehicleType = "planter"
	VehicleTypeSprayer   VehicleType = "sprayer"
	VehicleTypeOther     VehicleType = "other"
)

func (t VehicleType) Valid() bool {
	switch t {
	case VehicleTypeTractor, VehicleTypeHarvester, VehicleTypePlanter, VehicleTypeSprayer, VehicleTypeOther:
		return true
	}
	return false
}

// Vehicle is a piece of equipment a farmer offers for rent.
// OwnerName is copied from the owner at creation and never refreshed.
type Vehicle struct {
	ID             string      `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name           string      `gorm:"not null" json:"name"`
	Type           string      `gorm:"not null" json:"type"` // free text, e.g. "Heavy Duty Tractor"
	VehicleType    VehicleType `gorm:"type:varchar(16);not null" json:"vehicleType"`
	Capacity       string      `json:"capacity"` // e.g. "55 HP"
	Location       string      `json:"location"`
	PricePerDay    float64     `gorm:"type:decimal(10,2);not null" json:"pricePerDay"`
	Available      bool        `gorm:"not null" json:"available"`
	OwnerID        string      `gorm:"type:varchar(36);index;not null" json:"ownerId"`
	OwnerName      string      `json:"ownerName"`
	DynamicPricing bool        `gorm:"not null" json:"dynamicPricing"`
	ImageURL       *string     `json:"imageUrl"`
	Description    *string     `json:"description"`
	CreatedAt      time.Time   `gorm:"autoCreateTime:false" json:"createdAt"`
	UpdatedAt      time.Time   `gorm:"autoUpdateTime:false" json:"updatedAt"`
}

type VehiclePatch struct {
	Name           *string      `json:"name"`
	Type           *string      `json:"type"`
	VehicleType    *VehicleType `json:"vehicleType"`
	Capacity       *string      `json:"capacity"`
	Location       *string      `json:"location"`
	PricePerDay    *float64     `json:"pricePerDay"`
	Available      *bool        `json:"available"`
	DynamicPricing *bool        `json:"dynamicPricing"`
	ImageURL       *string      `json:"imageUrl"`
	Description    *string      `json:"description"`
}

func (p VehiclePatch) Apply(v *Vehicle) {
	if p.Name != nil {
		v.Name = *p.Name
	}
	if p.Type != nil {
		v.Type = *p.Type
	}
	if p.VehicleType != nil {
		v.VehicleType = *p.VehicleType
	}
	if p.Capacity != nil {
		v.Capacity = *p.Capacity
	}
	if p.Location != nil {
		v.Location = *p.Location
	}
	if p.PricePerDay != nil {
		v.PricePerDay = *p.PricePerDay
	}
	if p.Available != nil {
		v.Available = *p.Available
	}
	if p.DynamicPricing != nil {
		v.DynamicPricing = *p.DynamicPricing
	}
	if p.ImageURL != nil {
		v.ImageURL = p.ImageURL
	}
	if p.Description != nil {
		v.Description = p.Description
	}
}
