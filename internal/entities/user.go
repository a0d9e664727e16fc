package entities

import "time"

// User represents an account managed from the admin panel
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never exposed
	Nickname     string    `json:"nickname"`
	Sex          int       `json:"sex"` // 0 male, 1 female, 2 unspecified
	Company      *string   `json:"company"`
	Introduce    *string   `json:"introduce"`
	Role         int       `json:"role"` // 0 regular user, 100 administrator
	Avatar       *string   `json:"avatar"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
