package entities

import "time"

// Course represents a course record with its category and author embedded
type Course struct {
	ID            int64     `json:"id"`
	CategoryID    int64     `json:"categoryId"`
	UserID        int64     `json:"userId"`
	Name          string    `json:"name"`
	Image         *string   `json:"image"`
	Recommended   bool      `json:"recommended"`
	Introductory  bool      `json:"introductory"`
	Content       *string   `json:"content"`
	LikesCount    int       `json:"likesCount"`
	ChaptersCount int       `json:"chaptersCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	Category *CategorySummary `json:"category"` // nil when the category row is gone
	User     *UserSummary     `json:"user"`
}

// CategorySummary is the category shape embedded in a course
type CategorySummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// UserSummary is the author shape embedded in a course
type UserSummary struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	Avatar   *string `json:"avatar"`
}
