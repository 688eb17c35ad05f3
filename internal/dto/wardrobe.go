package dto

import "homehub/internal/domain"

type AddClothingRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type UpdateClothingRequest struct {
	NewName  string `json:"new_name"`
	NewColor string `json:"new_color"`
}

type ClothingItem struct {
	ID        domain.ClothingID `json:"id"`
	UserID    domain.UserID     `json:"user_id"`
	Name      string            `json:"name"`
	Color     string            `json:"color"`
	CreatedAt string            `json:"created_at"`
}

func NewClothingItem(it *domain.WardrobeItem) ClothingItem {
	return ClothingItem{
		ID:        it.ID,
		UserID:    it.UserID,
		Name:      it.Name,
		Color:     it.Color,
		CreatedAt: FormatTime(it.CreatedAt),
	}
}

func NewClothingItems(in []domain.WardrobeItem) []ClothingItem {
	out := make([]ClothingItem, 0, len(in))
	for i := range in {
		out = append(out, NewClothingItem(&in[i]))
	}
	return out
}
