package domain

import "time"

// Session is a login session identified by an opaque token carried in the
// sessionId cookie. Rows are never swept; expiry is evaluated on read.
type Session struct {
	ID        SessionID `gorm:"primaryKey;autoIncrement" db:"id"`
	UserID    UserID    `gorm:"not null;index" db:"user_id"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Token     string    `gorm:"type:varchar(255);not null;index:ix_sessions_token" db:"token"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" db:"created_at"`
	ExpiresAt time.Time `gorm:"not null" db:"expires_at"`
}

func (Session) TableName() string { return "sessions" }

// ValidAt reports whether the session is still usable at t.
func (s *Session) ValidAt(t time.Time) bool {
	return s.ExpiresAt.After(t)
}
