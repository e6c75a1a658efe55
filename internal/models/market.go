package models

import "time"

type Market struct {
	ID             uint    `gorm:"primaryKey"`
	Code           string  `gorm:"size:20;not null;unique"` // 스마트스토어, 11번가, 쿠팡 ...
	Name           string  `gorm:"size:100;not null"`
	CommissionRate float64 `gorm:"not null;default:0"` // percent
	MarginRate     float64 `gorm:"not null;default:0"` // percent
	DiscountRate   float64 `gorm:"not null;default:0"` // percent
	ShippingMethod string  `gorm:"size:20;not null;default:'standard'"` // standard | free
	Active         bool    `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
