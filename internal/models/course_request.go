package models

// CourseInput holds the writable fields of a course.
// likesCount and chaptersCount are maintained elsewhere and cannot be set here.
type CourseInput struct {
	CategoryID   *int64  `json:"categoryId" db:"category_id" validate:"required,gt=0"`
	UserID       *int64  `json:"userId" db:"user_id" validate:"required,gt=0"`
	Name         *string `json:"name" db:"name" validate:"required,min=2,max=45"`
	Image        *string `json:"image" db:"image" validate:"omitempty,url"`
	Recommended  *bool   `json:"recommended" db:"recommended"`
	Introductory *bool   `json:"introductory" db:"introductory"`
	Content      *string `json:"content" db:"content"`
}
