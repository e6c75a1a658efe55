package models

import "time"

// UploadRecord tracks which product was listed under which business group so
// the same product is never uploaded twice for one business number.
type UploadRecord struct {
	ID             uint   `gorm:"primaryKey"`
	BusinessNumber string `gorm:"size:20;not null;index:idx_upload_records_biz_product,unique"`
	ProductCode    string `gorm:"size:50;not null;index:idx_upload_records_biz_product,unique"`
	MarketCode     string `gorm:"size:20;not null"`
	AccountID      string `gorm:"size:50"`
	NameIndex      int    `gorm:"not null;default:0"` // which candidate product name was used
	ImageIndex     int    `gorm:"not null;default:0"` // which listing image was used
	CreatedAt      time.Time
}
