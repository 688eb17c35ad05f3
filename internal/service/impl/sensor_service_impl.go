package impl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"homehub/internal/domain"
	"homehub/internal/dto"
	"homehub/internal/netutil"
	"homehub/internal/observability/metrics"
	"homehub/internal/store"
)

const DefaultSensorWindow = 7 * 24 * time.Hour

type SensorServiceImpl struct {
	store  *store.Store
	window time.Duration
	now    func() time.Time
}

func NewSensorServiceImpl(st *store.Store, window time.Duration) *SensorServiceImpl {
	if window <= 0 {
		window = DefaultSensorWindow
	}
	return &SensorServiceImpl{store: st, window: window, now: time.Now}
}

func (s *SensorServiceImpl) IngestForOwner(ctx context.Context, userID domain.UserID, deviceID domain.DeviceID, r dto.Reading) error {
	d, err := s.store.Devices().GetByID(ctx, userID, deviceID)
	if errors.Is(err, store.ErrRecordNotFound) {
		metrics.SensorReadingsIngestedTotal.WithLabelValues(metrics.SourceOwner, metrics.ResultRejected).Inc()
		return domain.ErrUnknownDevice
	}
	if err != nil {
		metrics.SensorReadingsIngestedTotal.WithLabelValues(metrics.SourceOwner, metrics.ResultFailure).Inc()
		return err
	}
	if err := s.write(ctx, d, r); err != nil {
		metrics.SensorReadingsIngestedTotal.WithLabelValues(metrics.SourceOwner, metrics.ResultFailure).Inc()
		return err
	}
	metrics.SensorReadingsIngestedTotal.WithLabelValues(metrics.SourceOwner, metrics.ResultSuccess).Inc()
	return nil
}

func (s *SensorServiceImpl) IngestByMAC(ctx context.Context, mac string, r dto.Reading) (*domain.Device, error) {
	normalized, ok := netutil.NormalizeMAC(mac)
	if !ok {
		metrics.SensorReadingsIngestedTotal.WithLabelValues(metrics.SourceMAC, metrics.ResultRejected).Inc()
		return nil, domain.ErrUnknownDevice
	}
	d, err := s.store.Devices().GetByMAC(ctx, normalized)
	if errors.Is(err, store.ErrRecordNotFound) {
		metrics.SensorReadingsIngestedTotal.WithLabelValues(metrics.SourceMAC, metrics.ResultRejected).Inc()
		return nil, domain.ErrUnknownDevice
	}
	if err != nil {
		metrics.SensorReadingsIngestedTotal.WithLabelValues(metrics.SourceMAC, metrics.ResultFailure).Inc()
		return nil, err
	}
	if err := s.write(ctx, d, r); err != nil {
		metrics.SensorReadingsIngestedTotal.WithLabelValues(metrics.SourceMAC, metrics.ResultFailure).Inc()
		return nil, err
	}
	metrics.SensorReadingsIngestedTotal.WithLabelValues(metrics.SourceMAC, metrics.ResultSuccess).Inc()
	return d, nil
}

func (s *SensorServiceImpl) write(ctx context.Context, d *domain.Device, r dto.Reading) error {
	ts := r.Timestamp
	if ts.IsZero() {
		ts = s.now()
	}
	reading := &domain.SensorReading{
		UserID:          d.UserID,
		DeviceID:        d.ID,
		Temperature:     r.Temperature,
		Pressure:        r.Pressure,
		TemperatureUnit: r.TemperatureUnit,
		PressureUnit:    r.PressureUnit,
		Timestamp:       ts.UTC().Truncate(time.Second),
	}
	if reading.TemperatureUnit == "" {
		reading.TemperatureUnit = domain.DefaultTemperatureUnit
	}
	if reading.PressureUnit == "" {
		reading.PressureUnit = domain.DefaultPressureUnit
	}
	return s.store.SensorData().Add(ctx, reading)
}

func (s *SensorServiceImpl) Query(ctx context.Context, userID domain.UserID, deviceID domain.DeviceID, start, end *time.Time) ([]domain.SensorReading, error) {
	if _, err := s.store.Devices().GetByID(ctx, userID, deviceID); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, domain.ErrUnknownDevice
		}
		return nil, err
	}

	now := s.now().UTC()
	to := now
	if end != nil {
		to = end.UTC()
	}
	from := to.Add(-s.window)
	if start != nil {
		from = start.UTC()
	}
	if from.After(to) {
		return nil, fmt.Errorf("%w: start_date is after end_date", domain.ErrInvalidInput)
	}
	return s.store.SensorData().Range(ctx, userID, deviceID, from, to)
}
