package repository

import (
	"database/sql"

	"cms-admin/internal/entities"
)

// NewCourseRepository creates the courses repository. Reads join the course's
// category and author so they can be embedded in the response.
func NewCourseRepository(db *sql.DB) Repository[entities.Course] {
	return &Table[entities.Course]{
		db:   db,
		name: "courses",
		columns: []string{
			"courses.id", "courses.category_id", "courses.user_id", "courses.name",
			"courses.image", "courses.recommended", "courses.introductory", "courses.content",
			"courses.likes_count", "courses.chapters_count", "courses.created_at", "courses.updated_at",
			"categories.id", "categories.name",
			"users.id", "users.username", "users.avatar",
		},
		from: "courses" +
			" LEFT JOIN categories ON categories.id = courses.category_id" +
			" LEFT JOIN users ON users.id = courses.user_id",
		scan: scanCourse,
		constraints: map[string]string{
			"courses_category_id_fkey": "categoryId must reference an existing category",
			"courses_user_id_fkey":     "userId must reference an existing user",
		},
	}
}

func scanCourse(row rowScanner) (*entities.Course, error) {
	var (
		c            entities.Course
		categoryID   sql.NullInt64
		categoryName sql.NullString
		userID       sql.NullInt64
		username     sql.NullString
		avatar       sql.NullString
	)

	err := row.Scan(
		&c.ID,
		&c.CategoryID,
		&c.UserID,
		&c.Name,
		&c.Image,
		&c.Recommended,
		&c.Introductory,
		&c.Content,
		&c.LikesCount,
		&c.ChaptersCount,
		&c.CreatedAt,
		&c.UpdatedAt,
		&categoryID,
		&categoryName,
		&userID,
		&username,
		&avatar,
	)
	if err != nil {
		return nil, err
	}

	if categoryID.Valid {
		c.Category = &entities.CategorySummary{ID: categoryID.Int64, Name: categoryName.String}
	}
	if userID.Valid {
		c.User = &entities.UserSummary{ID: userID.Int64, Username: username.String}
		if avatar.Valid {
			c.User.Avatar = &avatar.String
		}
	}

	return &c, nil
}
