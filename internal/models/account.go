package models

import "time"

// Account is the single local login protecting the API. One row at most;
// created once via /auth/setup.
type Account struct {
	ID           uint64    `gorm:"primaryKey" json:"id"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type SetupInput struct {
	Password string `json:"password" binding:"required,min=6"`
}

type LoginInput struct {
	Password string `json:"password" binding:"required"`
}
