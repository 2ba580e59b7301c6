package models

type TeamMember struct {
	TeamID uint64 `gorm:"primarykey" json:"team_id"`
	UserID uint64 `gorm:"primarykey" json:"user_id"`

	// Relations
	Team Team `gorm:"foreignKey:TeamID" json:"-"`
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
