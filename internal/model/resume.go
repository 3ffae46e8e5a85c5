package model

import "time"

// Resume analysis lifecycle. The resume row is committed before the model is
// called, so a crash mid-analysis leaves an observable intermediate state.
const (
	ResumeStatusPending  = "pending_analysis"
	ResumeStatusAnalyzed = "analyzed"
	ResumeStatusFailed   = "failed"
)

type Resume struct {
	ID         int       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     *int      `json:"userId"` // nil for anonymous submissions
	Content    string    `gorm:"type:text" json:"content"`
	TargetRole string    `gorm:"type:varchar(255)" json:"targetRole"`
	FileName   string    `gorm:"type:varchar(255)" json:"fileName"`
	Status     string    `gorm:"type:varchar(50)" json:"status"`
	StorageKey string    `gorm:"type:varchar(255)" json:"storageKey,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}
