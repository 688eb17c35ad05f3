package domain

import "time"

type WardrobeItem struct {
	ID        ClothingID `gorm:"primaryKey;autoIncrement" db:"id" json:"id"`
	UserID    UserID     `gorm:"not null;index" db:"user_id" json:"user_id"`
	User      *User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Name      string     `gorm:"type:varchar(100);not null" db:"name" json:"name"`
	Color     string     `gorm:"type:varchar(50)" db:"color" json:"color"`
	CreatedAt time.Time  `gorm:"not null;autoCreateTime" db:"created_at" json:"created_at"`
}

func (WardrobeItem) TableName() string { return "wardrobes" }
