package impl

import (
	"context"
	"errors"

	"homehub/internal/domain"
	"homehub/internal/dto"
	"homehub/internal/store"
)

type ProfileServiceImpl struct {
	store *store.Store
}

func NewProfileServiceImpl(st *store.Store) *ProfileServiceImpl {
	return &ProfileServiceImpl{store: st}
}

func (s *ProfileServiceImpl) Profile(ctx context.Context, userID domain.UserID) (dto.Profile, error) {
	u, err := s.store.Users().GetByID(ctx, userID)
	if errors.Is(err, store.ErrRecordNotFound) {
		return dto.Profile{}, domain.ErrUnauthenticated
	}
	if err != nil {
		return dto.Profile{}, err
	}
	return dto.NewProfile(u), nil
}
