package store

import (
	"context"

	"homehub/internal/domain"

	"gorm.io/gorm"
)

type WardrobeStore struct{ db *gorm.DB }

func (s *Store) Wardrobe() *WardrobeStore { return &WardrobeStore{db: s.DB} }

func (w *WardrobeStore) Add(ctx context.Context, item *domain.WardrobeItem) error {
	return translate("add clothing", w.db.WithContext(ctx).Create(item).Error)
}

func (w *WardrobeStore) Remove(ctx context.Context, userID domain.UserID, id domain.ClothingID) error {
	return translate("remove clothing", w.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&domain.WardrobeItem{}).Error)
}

func (w *WardrobeStore) Update(ctx context.Context, userID domain.UserID, id domain.ClothingID, name, color string) error {
	return translate("update clothing", w.db.WithContext(ctx).
		Model(&domain.WardrobeItem{}).
		Where("user_id = ? AND id = ?", userID, id).
		Updates(map[string]any{"name": name, "color": color}).Error)
}

func (w *WardrobeStore) List(ctx context.Context, userID domain.UserID) ([]domain.WardrobeItem, error) {
	var items []domain.WardrobeItem
	if err := w.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, translate("list wardrobe", err)
	}
	return items, nil
}

func (w *WardrobeStore) Get(ctx context.Context, userID domain.UserID, id domain.ClothingID) (*domain.WardrobeItem, error) {
	var item domain.WardrobeItem
	if err := w.db.WithContext(ctx).First(&item, "user_id = ? AND id = ?", userID, id).Error; err != nil {
		return nil, translate("get clothing", err)
	}
	return &item, nil
}
