package models

import "time"

// CorrectionLog records one option-price correction performed during a
// mapping job, with the before/after block for operator review.
type CorrectionLog struct {
	ID            uint    `gorm:"primaryKey"`
	UploadJobID   *uint   `gorm:"index"`
	ProductCode   string  `gorm:"size:50;not null;index"`
	MarketPrice   float64 `gorm:"not null"`
	MaxDelta      float64 `gorm:"not null"`
	OriginalText  string  `gorm:"type:text"`
	CorrectedText string  `gorm:"type:text"`
	LinesChanged  int     `gorm:"not null;default:0"`
	CreatedAt     time.Time
}
