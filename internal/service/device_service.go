package service

import (
	"context"

	"homehub/internal/domain"
)

type DeviceService interface {
	Register(ctx context.Context, userID domain.UserID, label, mac string) (*domain.Device, error)
	Remove(ctx context.Context, userID domain.UserID, label, mac string) error
	List(ctx context.Context, userID domain.UserID) ([]domain.Device, error)
	Get(ctx context.Context, userID domain.UserID, label string) (*domain.Device, error)
}
