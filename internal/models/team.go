package models

import "time"

type Team struct {
	ID              uint64    `gorm:"primarykey" json:"id"`
	Name            string    `gorm:"type:varchar(200);not null" json:"name"`
	CreatedByUserID uint64    `gorm:"not null;index" json:"created_by_user_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Relations
	CreatedByUser User         `gorm:"foreignKey:CreatedByUserID" json:"-"`
	Members       []TeamMember `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"members,omitempty"`
}
