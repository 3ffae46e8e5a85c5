package model

import (
	"time"

	"gorm.io/datatypes"
)

type Portfolio struct {
	ID        int            `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int            `gorm:"index" json:"userId"`
	Domain    string         `gorm:"type:varchar(100);uniqueIndex" json:"domain"`
	Bio       string         `gorm:"type:text" json:"bio"`
	Projects  datatypes.JSON `json:"projects"` // array of {title, desc, link, techStack}
	Theme     string         `gorm:"type:varchar(50)" json:"theme"`
	IsPublic  bool           `json:"isPublic"`
	CreatedAt time.Time      `json:"createdAt"`
}
