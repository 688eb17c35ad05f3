package service

import (
	"context"

	"homehub/internal/domain"
)

type WardrobeService interface {
	Add(ctx context.Context, userID domain.UserID, name, color string) (*domain.WardrobeItem, error)
	Remove(ctx context.Context, userID domain.UserID, id domain.ClothingID) error
	Update(ctx context.Context, userID domain.UserID, id domain.ClothingID, name, color string) error
	List(ctx context.Context, userID domain.UserID) ([]domain.WardrobeItem, error)
	Get(ctx context.Context, userID domain.UserID, id domain.ClothingID) (*domain.WardrobeItem, error)
}
