package repository

import (
	"database/sql"

	"cms-admin/internal/entities"
)

// NewUserRepository creates the users repository
func NewUserRepository(db *sql.DB) Repository[entities.User] {
	return &Table[entities.User]{
		db:   db,
		name: "users",
		columns: []string{
			"users.id", "users.email", "users.username", "users.password", "users.nickname",
			"users.sex", "users.company", "users.introduce", "users.role", "users.avatar",
			"users.created_at", "users.updated_at",
		},
		from: "users",
		scan: scanUser,
		constraints: map[string]string{
			"users_email_key":    "email is already registered",
			"users_username_key": "username is already taken",
		},
	}
}

func scanUser(row rowScanner) (*entities.User, error) {
	var u entities.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Username,
		&u.PasswordHash,
		&u.Nickname,
		&u.Sex,
		&u.Company,
		&u.Introduce,
		&u.Role,
		&u.Avatar,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
