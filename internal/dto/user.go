package dto

import "homehub/internal/domain"

type SignupRequest struct {
	Name     string
	Email    string
	Password string
	Location string
}

type LoginRequest struct {
	Email    string
	Password string
}

type Profile struct {
	ID        domain.UserID `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Location  string        `json:"location"`
	CreatedAt string        `json:"created_at"`
}

func NewProfile(u *domain.User) Profile {
	return Profile{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Location:  u.Location,
		CreatedAt: FormatTime(u.CreatedAt),
	}
}
