package dto

import "homehub/internal/domain"

type RegisterDeviceRequest struct {
	DeviceID   string `json:"device_id"`
	MACAddress string `json:"mac_address"`
}

type Device struct {
	ID         domain.DeviceID `json:"id"`
	UserID     domain.UserID   `json:"user_id"`
	DeviceID   string          `json:"device_id"`
	MACAddress string          `json:"mac_address"`
	CreatedAt  string          `json:"created_at"`
}

func NewDevice(d *domain.Device) Device {
	return Device{
		ID:         d.ID,
		UserID:     d.UserID,
		DeviceID:   d.DeviceID,
		MACAddress: d.MACAddress,
		CreatedAt:  FormatTime(d.CreatedAt),
	}
}

func NewDevices(in []domain.Device) []Device {
	out := make([]Device, 0, len(in))
	for i := range in {
		out = append(out, NewDevice(&in[i]))
	}
	return out
}
