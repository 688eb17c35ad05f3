package domain

import "time"

type User struct {
	ID        UserID    `gorm:"primaryKey;autoIncrement" db:"id" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" db:"name" json:"name"`
	Email     string    `gorm:"type:varchar(100);not null;uniqueIndex:ux_users_email" db:"email" json:"email"`
	Location  string    `gorm:"type:varchar(255)" db:"location" json:"location"`
	Password  string    `gorm:"type:varchar(255);not null" db:"password" json:"-"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" db:"created_at" json:"created_at"`
}

func (User) TableName() string { return "users" }
