package service

import (
	"context"
	"time"

	"homehub/internal/domain"
	"homehub/internal/dto"
)

type SensorService interface {
	// IngestForOwner stores a reading for a device the user owns.
	IngestForOwner(ctx context.Context, userID domain.UserID, deviceID domain.DeviceID, r dto.Reading) error
	// IngestByMAC is the unauthenticated bridge path. Unknown MACs yield
	// domain.ErrUnknownDevice and nothing is written.
	IngestByMAC(ctx context.Context, mac string, r dto.Reading) (*domain.Device, error)
	// Query returns readings in [start, end], ascending. Nil bounds fall back
	// to the default window ending now.
	Query(ctx context.Context, userID domain.UserID, deviceID domain.DeviceID, start, end *time.Time) ([]domain.SensorReading, error)
}
