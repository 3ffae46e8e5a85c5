package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

type Job struct {
	ID        int             `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string          `json:"title"`
	Company   string          `gorm:"type:varchar(255)" json:"company"`
	Content   string          `gorm:"type:text" json:"content"`
	Embedding pgvector.Vector `gorm:"type:vector(3072)" json:"-"`
	CreatedAt time.Time       `json:"createdAt"`
}

func (j *Job) TableName() string {
	return "jobs"
}
