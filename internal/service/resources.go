package service

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"cms-admin/internal/cache"
	"cms-admin/internal/entities"
	"cms-admin/internal/models"
	"cms-admin/internal/query"
	"cms-admin/internal/repository"
)

// ArticleSchema configures the articles resource
var ArticleSchema = Schema[models.ArticleInput]{
	Name:  "article",
	Table: "articles",
	Filters: []query.Filter{
		{Param: "title", Column: "title", Match: query.Contains},
	},
	Allowed: []string{"title", "content"},
}

// CategorySchema configures the categories resource
var CategorySchema = Schema[models.CategoryInput]{
	Name:  "category",
	Table: "categories",
	Filters: []query.Filter{
		{Param: "name", Column: "name", Match: query.Contains},
	},
	Allowed: []string{"name", "rank"},
}

// CourseSchema configures the courses resource
var CourseSchema = Schema[models.CourseInput]{
	Name:  "course",
	Table: "courses",
	Filters: []query.Filter{
		{Param: "categoryId", Column: "category_id", Match: query.Exact, Coerce: query.Numeric},
		{Param: "userId", Column: "user_id", Match: query.Exact, Coerce: query.Numeric},
		{Param: "name", Column: "name", Match: query.Contains},
		{Param: "recommended", Column: "recommended", Match: query.Exact, Coerce: query.Boolean},
		{Param: "introductory", Column: "introductory", Match: query.Exact, Coerce: query.Boolean},
	},
	Allowed: []string{"categoryId", "userId", "name", "image", "recommended", "introductory", "content"},
}

// UserSchema configures the users resource. Passwords are stored as bcrypt hashes.
var UserSchema = Schema[models.UserInput]{
	Name:  "user",
	Table: "users",
	Filters: []query.Filter{
		{Param: "email", Column: "email", Match: query.Exact},
		{Param: "username", Column: "username", Match: query.Exact},
		{Param: "nickname", Column: "nickname", Match: query.Contains},
		{Param: "role", Column: "role", Match: query.Exact, Coerce: query.Numeric},
	},
	Allowed: []string{"email", "username", "password", "nickname", "sex", "company", "introduce", "role", "avatar"},
	Prepare: hashPassword,
}

func hashPassword(input *models.UserInput) error {
	if input.Password == nil {
		return nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	hash := string(hashed)
	input.Password = &hash
	return nil
}

// NewArticleService creates the articles service
func NewArticleService(repo repository.Repository[entities.Article], v *Validator, cacheClient cache.Cache, ttl time.Duration) ResourceService[entities.Article] {
	return NewResourceService(repo, ArticleSchema, v, cacheClient, ttl)
}

// NewCategoryService creates the categories service
func NewCategoryService(repo repository.Repository[entities.Category], v *Validator, cacheClient cache.Cache, ttl time.Duration) ResourceService[entities.Category] {
	return NewResourceService(repo, CategorySchema, v, cacheClient, ttl)
}

// NewCourseService creates the courses service
func NewCourseService(repo repository.Repository[entities.Course], v *Validator, cacheClient cache.Cache, ttl time.Duration) ResourceService[entities.Course] {
	return NewResourceService(repo, CourseSchema, v, cacheClient, ttl)
}

// NewUserService creates the users service
func NewUserService(repo repository.Repository[entities.User], v *Validator, cacheClient cache.Cache, ttl time.Duration) ResourceService[entities.User] {
	return NewResourceService(repo, UserSchema, v, cacheClient, ttl)
}
