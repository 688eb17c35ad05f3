package service

import (
	"context"

	"homehub/internal/domain"
	"homehub/internal/dto"
)

type ProfileService interface {
	Profile(ctx context.Context, userID domain.UserID) (dto.Profile, error)
}
