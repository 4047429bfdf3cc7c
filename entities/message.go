package entities

import "time"

// Message is one entry in an order's chat thread.
type Message struct {
	ID         string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	OrderID    string    `gorm:"type:varchar(36);index;not null" json:"orderId"`
	SenderID   string    `gorm:"type:varchar(36);not null" json:"senderId"`
	SenderName string    `json:"senderName"`
	SenderType UserType  `gorm:"type:varchar(16);not null" json:"senderType"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	Timestamp  time.Time `json:"timestamp"`
}
