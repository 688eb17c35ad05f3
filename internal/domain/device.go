package domain

import "time"

type Device struct {
	ID         DeviceID  `gorm:"primaryKey;autoIncrement" db:"id" json:"id"`
	UserID     UserID    `gorm:"not null;index" db:"user_id" json:"user_id"`
	User       *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	DeviceID   string    `gorm:"column:device_id;type:varchar(100);not null" db:"device_id" json:"device_id"`
	MACAddress string    `gorm:"column:mac_address;type:varchar(100);not null;uniqueIndex:ux_devices_mac" db:"mac_address" json:"mac_address"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" db:"created_at" json:"created_at"`
}

func (Device) TableName() string { return "devices" }
