package models

import "time"

type Product struct {
	ID            uint    `gorm:"primaryKey"`
	Code          string  `gorm:"size:50;not null;unique"` // 상품코드
	SupplierName  string  `gorm:"size:255;not null"`       // raw supplier product name
	FinalName     string  `gorm:"size:255"`                // cleaned stage-4 name used for uploads
	SupplierPrice float64 `gorm:"not null;default:0"`
	MarketPrice   float64 `gorm:"not null;default:0"`
	ShippingFee   float64 `gorm:"not null;default:0"` // supplier shipping fee before transformation
	OptionText    string  `gorm:"type:text"`          // newline-separated option lines with price tokens
	ImageURL      string  `gorm:"size:500"`
	Keywords      string  `gorm:"type:text"` // search tags
	Origin        string  `gorm:"size:100"`
	Brand         string  `gorm:"size:100"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
