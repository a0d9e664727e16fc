package repository

import (
	"database/sql"

	"cms-admin/internal/entities"
)

// NewCategoryRepository creates the categories repository
func NewCategoryRepository(db *sql.DB) Repository[entities.Category] {
	return &Table[entities.Category]{
		db:   db,
		name: "categories",
		columns: []string{
			"categories.id", "categories.name", "categories.rank",
			"categories.created_at", "categories.updated_at",
		},
		from: "categories",
		scan: scanCategory,
	}
}

func scanCategory(row rowScanner) (*entities.Category, error) {
	var c entities.Category
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Rank,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
