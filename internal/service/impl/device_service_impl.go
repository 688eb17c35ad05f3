package impl

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"homehub/internal/domain"
	"homehub/internal/netutil"
	"homehub/internal/observability/metrics"
	"homehub/internal/store"
)

type DeviceServiceImpl struct {
	store *store.Store
}

func NewDeviceServiceImpl(st *store.Store) *DeviceServiceImpl {
	return &DeviceServiceImpl{store: st}
}

// Register binds a hardware MAC to the user under label. MACs are stored in
// lowercase colon form so the bridge can post them in any notation.
func (s *DeviceServiceImpl) Register(ctx context.Context, userID domain.UserID, label, mac string) (*domain.Device, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		metrics.DeviceRegistrationsTotal.WithLabelValues(metrics.ResultRejected).Inc()
		return nil, fmt.Errorf("%w: device_id is required", domain.ErrInvalidInput)
	}
	normalized, ok := netutil.NormalizeMAC(mac)
	if !ok {
		metrics.DeviceRegistrationsTotal.WithLabelValues(metrics.ResultRejected).Inc()
		return nil, fmt.Errorf("%w: mac_address %q is not a valid hardware address", domain.ErrInvalidInput, mac)
	}

	d := &domain.Device{UserID: userID, DeviceID: label, MACAddress: normalized}
	added, err := s.store.Devices().Add(ctx, d)
	if err != nil {
		metrics.DeviceRegistrationsTotal.WithLabelValues(metrics.ResultFailure).Inc()
		return nil, err
	}
	if !added {
		metrics.DeviceRegistrationsTotal.WithLabelValues(metrics.ResultDuplicate).Inc()
		return nil, domain.ErrDuplicateDevice
	}
	metrics.DeviceRegistrationsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	return d, nil
}

// Remove is a no-op when nothing matches.
func (s *DeviceServiceImpl) Remove(ctx context.Context, userID domain.UserID, label, mac string) error {
	if normalized, ok := netutil.NormalizeMAC(mac); ok {
		mac = normalized
	}
	return s.store.Devices().Remove(ctx, userID, label, mac)
}

func (s *DeviceServiceImpl) List(ctx context.Context, userID domain.UserID) ([]domain.Device, error) {
	return s.store.Devices().List(ctx, userID)
}

func (s *DeviceServiceImpl) Get(ctx context.Context, userID domain.UserID, label string) (*domain.Device, error) {
	d, err := s.store.Devices().Get(ctx, userID, label)
	if errors.Is(err, store.ErrRecordNotFound) {
		return nil, domain.ErrUnknownDevice
	}
	return d, err
}
