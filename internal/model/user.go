package model

type User struct {
	ID       int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Username string `gorm:"type:varchar(100);uniqueIndex" json:"username"`
	Password string `gorm:"type:text" json:"-"`
}
