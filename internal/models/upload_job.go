package models

import "time"

type UploadJobStatus string

const (
	UploadJobPending UploadJobStatus = "pending"
	UploadJobDone    UploadJobStatus = "done"
	UploadJobFailed  UploadJobStatus = "failed"
)

// UploadJob is one mapping run: a processed spreadsheet mapped into a
// marketplace solution layout.
type UploadJob struct {
	ID            uint            `gorm:"primaryKey"`
	Solution      string          `gorm:"size:30;not null"` // dafalza | esellers
	MarketCode    string          `gorm:"size:20"`
	SourceFile    string          `gorm:"size:255;not null"`
	ResultFile    string          `gorm:"size:255"`
	TotalRows     int             `gorm:"not null;default:0"`
	MappedRows    int             `gorm:"not null;default:0"`
	CorrectedRows int             `gorm:"not null;default:0"` // rows whose option block was rewritten
	Status        UploadJobStatus `gorm:"size:20;not null;default:'pending'"`
	ErrorMessage  string          `gorm:"type:text"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
