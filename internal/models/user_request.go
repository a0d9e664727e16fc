package models

// UserInput holds the writable fields of a user.
// Password is plain text here and replaced by its hash before it is stored.
type UserInput struct {
	Email     *string `json:"email" db:"email" validate:"required,email"`
	Username  *string `json:"username" db:"username" validate:"required,min=2,max=45"`
	Password  *string `json:"password" db:"password" validate:"required,min=6,max=45"`
	Nickname  *string `json:"nickname" db:"nickname" validate:"required,min=2,max=45"`
	Sex       *int    `json:"sex" db:"sex" validate:"required,oneof=0 1 2"`
	Company   *string `json:"company" db:"company"`
	Introduce *string `json:"introduce" db:"introduce"`
	Role      *int    `json:"role" db:"role" validate:"required,oneof=0 100"`
	Avatar    *string `json:"avatar" db:"avatar" validate:"omitempty,url"`
}
