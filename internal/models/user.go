package models

import "time"

type User struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Username  string    `gorm:"type:varchar(200);uniqueIndex;not null" json:"username"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	TaskLists []TaskList `gorm:"foreignKey:CreatedByUserID" json:"-"`
	Teams     []Team     `gorm:"foreignKey:CreatedByUserID" json:"-"`
	Tasks     []Task     `gorm:"foreignKey:CreatedByUserID" json:"-"`
}
