package service

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"cms-admin/internal/apperrors"
	"cms-admin/internal/cache"
	"cms-admin/internal/entities"
	"cms-admin/internal/query"
	"cms-admin/internal/repository"
)

// memRepo is an in-memory Repository that records what the service asks of it
type memRepo[T any] struct {
	records map[int64]*T
	nextID  int64
	build   func(id int64, values []repository.Assignment, current *T) *T

	lastCond   query.Condition
	lastValues []repository.Assignment
	finds      int
}

func newMemRepo[T any](build func(int64, []repository.Assignment, *T) *T) *memRepo[T] {
	return &memRepo[T]{records: map[int64]*T{}, build: build}
}

func (m *memRepo[T]) FindAndCount(_ context.Context, cond query.Condition) ([]*T, int64, error) {
	m.lastCond = cond
	items := make([]*T, 0, len(m.records))
	for _, r := range m.records {
		items = append(items, r)
	}
	return items, int64(len(items)), nil
}

func (m *memRepo[T]) FindByID(_ context.Context, id int64) (*T, error) {
	m.finds++
	r, ok := m.records[id]
	if !ok {
		return nil, repository.ErrNoRecord
	}
	return r, nil
}

func (m *memRepo[T]) Create(_ context.Context, values []repository.Assignment) (*T, error) {
	m.nextID++
	m.lastValues = values
	m.records[m.nextID] = m.build(m.nextID, values, nil)
	return m.records[m.nextID], nil
}

func (m *memRepo[T]) Update(_ context.Context, id int64, values []repository.Assignment) (*T, error) {
	m.lastValues = values
	current, ok := m.records[id]
	if !ok {
		return nil, repository.ErrNoRecord
	}
	m.records[id] = m.build(id, values, current)
	return m.records[id], nil
}

func (m *memRepo[T]) Delete(_ context.Context, id int64) error {
	if _, ok := m.records[id]; !ok {
		return repository.ErrNoRecord
	}
	delete(m.records, id)
	return nil
}

func buildArticle(id int64, values []repository.Assignment, current *entities.Article) *entities.Article {
	a := &entities.Article{ID: id}
	if current != nil {
		*a = *current
	}
	for _, v := range values {
		switch v.Column {
		case "title":
			a.Title = v.Value.(string)
		case "content":
			if v.Value == nil {
				a.Content = nil
			} else {
				s := v.Value.(string)
				a.Content = &s
			}
		}
	}
	return a
}

func newValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := NewValidator()
	require.NoError(t, err)
	return v
}

func newArticles(t *testing.T) (ResourceService[entities.Article], *memRepo[entities.Article]) {
	repo := newMemRepo(buildArticle)
	return NewArticleService(repo, newValidator(t), nil, 0), repo
}

func TestListBuildsCondition(t *testing.T) {
	svc, repo := newArticles(t)
	repo.records[1] = &entities.Article{ID: 1, Title: "foo bar"}

	page, err := svc.List(context.Background(), url.Values{
		"title":       {"foo"},
		"currentPage": {"2"},
		"pageSize":    {"5"},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.CurrentPage)
	assert.Equal(t, 5, page.Pagination.PageSize)
	assert.Equal(t, 5, repo.lastCond.Page.Offset)
	assert.Equal(t, []query.Order{{Column: "id", Desc: true}}, repo.lastCond.Order)
	assert.Equal(t, []query.Predicate{{Column: "title", Match: query.Contains, Value: "%foo%"}}, repo.lastCond.Where)
}

func TestListRejectsNonNumericFilter(t *testing.T) {
	repo := newMemRepo(func(int64, []repository.Assignment, *entities.Course) *entities.Course { return nil })
	svc := NewCourseService(repo, newValidator(t), nil, 0)

	_, err := svc.List(context.Background(), url.Values{"categoryId": {"abc"}})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	assert.Equal(t, []string{"categoryId must be a number"}, apperrors.Messages(err))
}

func TestGetNotFoundEmbedsRawID(t *testing.T) {
	svc, _ := newArticles(t)

	for _, raw := range []string{"42", "abc", "0", "-3"} {
		_, err := svc.Get(context.Background(), raw)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
		assert.Equal(t, []string{"article with ID " + raw + " not found"}, apperrors.Messages(err))
	}
}

func TestCreateDropsUnknownFields(t *testing.T) {
	svc, repo := newArticles(t)

	article, err := svc.Create(context.Background(), map[string]any{
		"title":      "Hello",
		"content":    "World",
		"id":         float64(99),
		"likesCount": float64(5),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), article.ID)
	assert.Equal(t, []repository.Assignment{
		{Column: "title", Value: "Hello"},
		{Column: "content", Value: "World"},
	}, repo.lastValues)
}

func TestCreateReportsEveryViolation(t *testing.T) {
	repo := newMemRepo(func(int64, []repository.Assignment, *entities.Category) *entities.Category { return nil })
	svc := NewCategoryService(repo, newValidator(t), nil, 0)

	_, err := svc.Create(context.Background(), map[string]any{"name": "x", "rank": float64(0)})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	messages := apperrors.Messages(err)
	require.Len(t, messages, 2)
	assert.Contains(t, messages[0], "name must be at least 2 characters")
	assert.Equal(t, "rank must be greater than 0", messages[1])
}

func TestCreateMissingRequiredField(t *testing.T) {
	svc, _ := newArticles(t)

	_, err := svc.Create(context.Background(), map[string]any{"content": "no title"})
	require.Error(t, err)
	assert.Equal(t, []string{"title is a required field"}, apperrors.Messages(err))
}

func TestCreateTypeMismatch(t *testing.T) {
	repo := newMemRepo(func(int64, []repository.Assignment, *entities.Category) *entities.Category { return nil })
	svc := NewCategoryService(repo, newValidator(t), nil, 0)

	_, err := svc.Create(context.Background(), map[string]any{"name": "Go", "rank": "abc"})
	require.Error(t, err)
	assert.Equal(t, []string{"rank must be an integer"}, apperrors.Messages(err))
}

func TestCreateUserHashesPassword(t *testing.T) {
	repo := newMemRepo(func(id int64, _ []repository.Assignment, _ *entities.User) *entities.User {
		return &entities.User{ID: id}
	})
	svc := NewUserService(repo, newValidator(t), nil, 0)

	_, err := svc.Create(context.Background(), map[string]any{
		"email":    "ada@example.com",
		"username": "ada",
		"password": "secret123",
		"nickname": "Ada",
		"sex":      float64(1),
		"role":     float64(0),
	})
	require.NoError(t, err)

	var hash string
	for _, v := range repo.lastValues {
		if v.Column == "password" {
			hash = v.Value.(string)
		}
	}
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "secret123", hash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("secret123")))
}

func TestCreateUserRejectsInvalidEnums(t *testing.T) {
	repo := newMemRepo(func(int64, []repository.Assignment, *entities.User) *entities.User { return nil })
	svc := NewUserService(repo, newValidator(t), nil, 0)

	_, err := svc.Create(context.Background(), map[string]any{
		"email":    "not-an-email",
		"username": "ada",
		"password": "secret123",
		"nickname": "Ada",
		"sex":      float64(7),
		"role":     float64(100),
	})
	require.Error(t, err)
	messages := apperrors.Messages(err)
	require.Len(t, messages, 2)
	assert.Contains(t, messages[0], "email")
	assert.Contains(t, messages[1], "sex")
}

func TestUpdateIsPartial(t *testing.T) {
	svc, repo := newArticles(t)
	repo.records[3] = &entities.Article{ID: 3, Title: "Kept"}

	article, err := svc.Update(context.Background(), "3", map[string]any{"content": "new body", "title2": "x"})
	require.NoError(t, err)

	assert.Equal(t, "Kept", article.Title)
	require.NotNil(t, article.Content)
	assert.Equal(t, "new body", *article.Content)
	assert.Equal(t, []repository.Assignment{{Column: "content", Value: "new body"}}, repo.lastValues)
}

func TestUpdateValidatesPresentFields(t *testing.T) {
	svc, repo := newArticles(t)
	repo.records[3] = &entities.Article{ID: 3, Title: "Kept"}

	_, err := svc.Update(context.Background(), "3", map[string]any{"title": nil})
	require.Error(t, err)
	assert.Equal(t, []string{"title is a required field"}, apperrors.Messages(err))
}

func TestUpdateMissingRecord(t *testing.T) {
	svc, _ := newArticles(t)

	_, err := svc.Update(context.Background(), "8", map[string]any{"title": "New"})
	require.Error(t, err)
	assert.Equal(t, []string{"article with ID 8 not found"}, apperrors.Messages(err))
}

func TestUpdateMissingRecordBeforeValidation(t *testing.T) {
	svc, repo := newArticles(t)

	_, err := svc.Update(context.Background(), "999", map[string]any{"title": "x"})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	assert.Equal(t, []string{"article with ID 999 not found"}, apperrors.Messages(err))
	assert.Nil(t, repo.lastValues)
}

func TestCreateCategoryRankOutOfRange(t *testing.T) {
	repo := newMemRepo(func(int64, []repository.Assignment, *entities.Category) *entities.Category { return nil })
	svc := NewCategoryService(repo, newValidator(t), nil, 0)

	_, err := svc.Create(context.Background(), map[string]any{"name": "Go", "rank": float64(3000000000)})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	assert.Equal(t, []string{"rank must be 2,147,483,647 or less"}, apperrors.Messages(err))
}

func TestDeleteThenGet(t *testing.T) {
	svc, repo := newArticles(t)
	repo.records[5] = &entities.Article{ID: 5, Title: "Bye"}

	require.NoError(t, svc.Delete(context.Background(), "5"))

	_, err := svc.Get(context.Background(), "5")
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	err = svc.Delete(context.Background(), "5")
	assert.Equal(t, []string{"article with ID 5 not found"}, apperrors.Messages(err))
}

func TestGetUsesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	c, err := cache.NewRedisCache(context.Background(), mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	repo := newMemRepo(buildArticle)
	repo.records[1] = &entities.Article{ID: 1, Title: "Cached"}
	svc := NewArticleService(repo, newValidator(t), c, time.Minute)
	ctx := context.Background()

	first, err := svc.Get(ctx, "1")
	require.NoError(t, err)
	second, err := svc.Get(ctx, "1")
	require.NoError(t, err)

	assert.Equal(t, first.Title, second.Title)
	assert.Equal(t, 1, repo.finds)
	assert.True(t, mr.Exists("admin:articles:1"))

	_, err = svc.Update(ctx, "1", map[string]any{"title": "Fresh"})
	require.NoError(t, err)
	assert.False(t, mr.Exists("admin:articles:1"))

	third, err := svc.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Fresh", third.Title)
	assert.Equal(t, 3, repo.finds) // update lookup + reload after invalidation
}
