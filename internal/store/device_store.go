package store

import (
	"context"
	"errors"

	"homehub/internal/domain"

	"gorm.io/gorm"
)

type DeviceStore struct{ db *gorm.DB }

func (s *Store) Devices() *DeviceStore { return &DeviceStore{db: s.DB} }

// Add inserts device and reports false when its MAC address is already
// registered to any user. Uniqueness is enforced by ux_devices_mac, so two
// concurrent registrations of one MAC cannot both succeed.
func (d *DeviceStore) Add(ctx context.Context, device *domain.Device) (bool, error) {
	err := translate("add device", d.db.WithContext(ctx).Create(device).Error)
	if errors.Is(err, ErrDuplicateKey) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Remove deletes the device matching all three keys; no match is not an error.
func (d *DeviceStore) Remove(ctx context.Context, userID domain.UserID, deviceID, mac string) error {
	return translate("remove device", d.db.WithContext(ctx).
		Where("user_id = ? AND device_id = ? AND mac_address = ?", userID, deviceID, mac).
		Delete(&domain.Device{}).Error)
}

func (d *DeviceStore) List(ctx context.Context, userID domain.UserID) ([]domain.Device, error) {
	var devices []domain.Device
	if err := d.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&devices).Error; err != nil {
		return nil, translate("list devices", err)
	}
	return devices, nil
}

// Get looks a device up by its caller-supplied label.
func (d *DeviceStore) Get(ctx context.Context, userID domain.UserID, deviceID string) (*domain.Device, error) {
	var device domain.Device
	if err := d.db.WithContext(ctx).
		Where("user_id = ? AND device_id = ?", userID, deviceID).
		Order("id ASC").
		First(&device).Error; err != nil {
		return nil, translate("get device", err)
	}
	return &device, nil
}

func (d *DeviceStore) GetByID(ctx context.Context, userID domain.UserID, id domain.DeviceID) (*domain.Device, error) {
	var device domain.Device
	if err := d.db.WithContext(ctx).First(&device, "user_id = ? AND id = ?", userID, id).Error; err != nil {
		return nil, translate("get device by id", err)
	}
	return &device, nil
}

// GetByMAC is the unauthenticated lookup used by public ingestion.
func (d *DeviceStore) GetByMAC(ctx context.Context, mac string) (*domain.Device, error) {
	var device domain.Device
	if err := d.db.WithContext(ctx).First(&device, "mac_address = ?", mac).Error; err != nil {
		return nil, translate("get device by mac", err)
	}
	return &device, nil
}
