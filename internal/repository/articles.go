package repository

import (
	"database/sql"

	"cms-admin/internal/entities"
)

// NewArticleRepository creates the articles repository
func NewArticleRepository(db *sql.DB) Repository[entities.Article] {
	return &Table[entities.Article]{
		db:   db,
		name: "articles",
		columns: []string{
			"articles.id", "articles.title", "articles.content",
			"articles.created_at", "articles.updated_at",
		},
		from: "articles",
		scan: scanArticle,
	}
}

func scanArticle(row rowScanner) (*entities.Article, error) {
	var a entities.Article
	err := row.Scan(
		&a.ID,
		&a.Title,
		&a.Content,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
