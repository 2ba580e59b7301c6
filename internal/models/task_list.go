package models

import "time"

type TaskList struct {
	ID              uint64    `gorm:"primarykey" json:"id"`
	Name            string    `gorm:"type:varchar(200);not null" json:"name"`
	CreatedByUserID uint64    `gorm:"not null;index" json:"created_by_user_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Relations
	CreatedByUser User   `gorm:"foreignKey:CreatedByUserID" json:"-"`
	Tasks         []Task `gorm:"foreignKey:TaskListID;constraint:OnDelete:SET NULL" json:"-"`
}
