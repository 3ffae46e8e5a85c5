package model

import "time"

type Application struct {
	ID      int       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID  int       `gorm:"index" json:"userId"`
	Role    string    `gorm:"type:varchar(255)" json:"role"`
	Company string    `gorm:"type:varchar(255)" json:"company"`
	Status  string    `gorm:"type:varchar(50)" json:"status"` // Applied, Interview, Offer, Rejected
	Date    time.Time `json:"date"`
	Notes   string    `gorm:"type:text" json:"notes"`
}
