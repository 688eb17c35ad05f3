package store

import (
	"context"
	"time"

	"homehub/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SensorStore struct{ db *gorm.DB }

func (s *Store) SensorData() *SensorStore { return &SensorStore{db: s.DB} }

func (ss *SensorStore) Add(ctx context.Context, r *domain.SensorReading) error {
	r.Timestamp = r.Timestamp.UTC()
	return translate("add sensor reading", ss.db.WithContext(ctx).Create(r).Error)
}

// Range returns the device's readings with start <= timestamp <= end,
// ascending by timestamp.
func (ss *SensorStore) Range(ctx context.Context, userID domain.UserID, deviceID domain.DeviceID, start, end time.Time) ([]domain.SensorReading, error) {
	var out []domain.SensorReading
	err := ss.db.WithContext(ctx).
		Where("user_id = ? AND device_id = ?", userID, deviceID).
		Where(clause.Gte{Column: clause.Column{Name: "timestamp"}, Value: start.UTC()}).
		Where(clause.Lte{Column: clause.Column{Name: "timestamp"}, Value: end.UTC()}).
		Order(clause.OrderBy{Columns: []clause.OrderByColumn{
			{Column: clause.Column{Name: "timestamp"}},
			{Column: clause.Column{Name: "id"}},
		}}).
		Find(&out).Error
	if err != nil {
		return nil, translate("range sensor data", err)
	}
	return out, nil
}
