package entities

import "time"

// Category represents a course category
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Rank      int       `json:"rank"` // Display order, ascending
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
