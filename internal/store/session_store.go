package store

import (
	"context"

	"homehub/internal/domain"

	"gorm.io/gorm"
)

type SessionStore struct{ db *gorm.DB }

func (s *Store) Sessions() *SessionStore { return &SessionStore{s.DB} }

func (ss *SessionStore) Create(ctx context.Context, s *domain.Session) error {
	return translate("create session", ss.db.WithContext(ctx).Create(s).Error)
}

// GetByToken returns the most recent session carrying token. Tokens are not
// unique at the schema level.
func (ss *SessionStore) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	var s domain.Session
	if err := ss.db.WithContext(ctx).Where("token = ?", token).Order("id DESC").First(&s).Error; err != nil {
		return nil, translate("get session", err)
	}
	return &s, nil
}

// DeleteByToken succeeds whether or not a matching row existed.
func (ss *SessionStore) DeleteByToken(ctx context.Context, token string) error {
	return translate("delete session", ss.db.WithContext(ctx).Where("token = ?", token).Delete(&domain.Session{}).Error)
}
