package model

import "time"

const (
	MessageRoleUser = "user"
	MessageRoleAI   = "ai"
)

type Interview struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	ResumeID  int       `gorm:"index" json:"resumeId"`
	UserID    int       `json:"userId"`
	Score     *int      `json:"score"`
	Feedback  *string   `gorm:"type:text" json:"feedback"`
	CreatedAt time.Time `json:"createdAt"`
}

type InterviewMessage struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id"`
	InterviewID int       `gorm:"index" json:"interviewId"`
	Role        string    `gorm:"type:varchar(10)" json:"role"` // user or ai
	Content     string    `gorm:"type:text" json:"content"`
	CreatedAt   time.Time `json:"createdAt"`
}
