package models

// ArticleInput holds the writable fields of an article
type ArticleInput struct {
	Title   *string `json:"title" db:"title" validate:"required,min=2,max=45"`
	Content *string `json:"content" db:"content"`
}
