package model

import "time"

const (
	RoadmapStatusPending    = "pending"
	RoadmapStatusInProgress = "in_progress"
	RoadmapStatusCompleted  = "completed"
)

// ValidRoadmapStatus reports whether s is one of the three allowed states.
func ValidRoadmapStatus(s string) bool {
	switch s {
	case RoadmapStatusPending, RoadmapStatusInProgress, RoadmapStatusCompleted:
		return true
	}
	return false
}

type RoadmapItem struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id"`
	AnalysisID  int       `gorm:"index" json:"analysisId"`
	Title       string    `gorm:"type:varchar(255)" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Category    string    `gorm:"type:varchar(50)" json:"category"` // skill, project, practice, interview
	Status      string    `gorm:"type:varchar(50)" json:"status"`
	Order       int       `gorm:"column:item_order" json:"order"` // 1-based priority rank, display order only
	CreatedAt   time.Time `json:"createdAt"`
}
