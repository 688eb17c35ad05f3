package domain

import "time"

const (
	DefaultTemperatureUnit = "°C"
	DefaultPressureUnit    = "hPa"
)

// SensorReading is one temperature/pressure sample. UserID is denormalised from
// the owning device; DeviceID is the devices.id of the reporting device.
type SensorReading struct {
	ID              ReadingID `gorm:"primaryKey;autoIncrement" db:"id"`
	UserID          UserID    `gorm:"not null;index:ix_sensordata_owner,priority:1" db:"user_id"`
	User            *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	DeviceID        DeviceID  `gorm:"not null;index:ix_sensordata_owner,priority:2" db:"device_id"`
	Temperature     float64   `db:"temperature"`
	Pressure        float64   `db:"pressure"`
	TemperatureUnit string    `gorm:"type:varchar(50);not null" db:"temperature_unit"`
	PressureUnit    string    `gorm:"type:varchar(50);not null" db:"pressure_unit"`
	Timestamp       time.Time `gorm:"column:timestamp;not null;index:ix_sensordata_owner,priority:3" db:"timestamp"`
}

func (SensorReading) TableName() string { return "sensordata" }
