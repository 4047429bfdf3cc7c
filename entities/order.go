package entities

import "time"

type OrderType string

const (
	OrderTypeVehicle   OrderType = "vehicle"
	OrderTypeProduce   OrderType = "produce"
	OrderTypePesticide OrderType = "pesticide"
)

func (t OrderType) Valid() bool {
	return t == OrderTypeVehicle || t == OrderTypeProduce || t == OrderTypePesticide
}

// Order records a customer's intent to rent or buy a listing.
// ItemID points at a vehicle, produce or pesticide depending on Type; it is not enforced.
type Order struct {
	ID          string      `gorm:"type:varchar(36);primaryKey" json:"id"`
	OrderNumber string      `gorm:"uniqueIndex;not null" json:"orderNumber"`
	UserID      string      `gorm:"type:varchar(36);index;not null" json:"userId"`
	UserName    string      `json:"userName"`
	Type        OrderType   `gorm:"type:varchar(16);not null" json:"type"`
	ItemID      string      `gorm:"type:varchar(36);index;not null" json:"itemId"`
	ItemName    string      `json:"itemName"`
	Status      OrderStatus `gorm:"type:varchar(16);index;not null" json:"status"`
	Total       float64     `gorm:"type:decimal(10,2);not null" json:"total"`
	Quantity    int         `gorm:"not null" json:"quantity"`
	StartDate   *time.Time  `json:"startDate"` // vehicle rentals
	EndDate     *time.Time  `json:"endDate"`
	CreatedAt   time.Time   `gorm:"autoCreateTime:false" json:"createdAt"`
	UpdatedAt   time.Time   `gorm:"autoUpdateTime:false" json:"updatedAt"`
}

type OrderPatch struct {
	Status    *OrderStatus
	Total     *float64
	Quantity  *int
	ItemName  *string
	StartDate *time.Time
	EndDate   *time.Time
}

func (p OrderPatch) Apply(o *Order) {
	if p.Status != nil {
		o.Status = *p.Status
	}
	if p.Total != nil {
		o.Total = *p.Total
	}
	if p.Quantity != nil {
		o.Quantity = *p.Quantity
	}
	if p.ItemName != nil {
		o.ItemName = *p.ItemName
	}
	if p.StartDate != nil {
		o.StartDate = p.StartDate
	}
	if p.EndDate != nil {
		o.EndDate = p.EndDate
	}
}
