package impl

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"homehub/internal/domain"
	"homehub/internal/store"
)

type WardrobeServiceImpl struct {
	store *store.Store
}

func NewWardrobeServiceImpl(st *store.Store) *WardrobeServiceImpl {
	return &WardrobeServiceImpl{store: st}
}

func (s *WardrobeServiceImpl) Add(ctx context.Context, userID domain.UserID, name, color string) (*domain.WardrobeItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	item := &domain.WardrobeItem{UserID: userID, Name: name, Color: strings.TrimSpace(color)}
	if err := s.store.Wardrobe().Add(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *WardrobeServiceImpl) Remove(ctx context.Context, userID domain.UserID, id domain.ClothingID) error {
	return s.store.Wardrobe().Remove(ctx, userID, id)
}

// Update succeeds even when id does not belong to the user; nothing changes then.
func (s *WardrobeServiceImpl) Update(ctx context.Context, userID domain.UserID, id domain.ClothingID, name, color string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: new_name is required", domain.ErrInvalidInput)
	}
	return s.store.Wardrobe().Update(ctx, userID, id, name, strings.TrimSpace(color))
}

func (s *WardrobeServiceImpl) List(ctx context.Context, userID domain.UserID) ([]domain.WardrobeItem, error) {
	return s.store.Wardrobe().List(ctx, userID)
}

func (s *WardrobeServiceImpl) Get(ctx context.Context, userID domain.UserID, id domain.ClothingID) (*domain.WardrobeItem, error) {
	item, err := s.store.Wardrobe().Get(ctx, userID, id)
	if errors.Is(err, store.ErrRecordNotFound) {
		return nil, domain.ErrClothingNotFound
	}
	return item, err
}
