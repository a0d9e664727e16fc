package models

// CategoryInput holds the writable fields of a category
type CategoryInput struct {
	Name *string `json:"name" db:"name" validate:"required,min=2,max=45"`
	Rank *int    `json:"rank" db:"rank" validate:"required,gt=0,max=2147483647"`
}
