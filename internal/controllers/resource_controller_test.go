package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cms-admin/internal/apperrors"
	"cms-admin/internal/entities"
	"cms-admin/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubService struct {
	records  map[string]*entities.Article
	lastBody map[string]any
	params   url.Values
}

func (s *stubService) List(_ context.Context, params url.Values) (*models.Page[entities.Article], error) {
	s.params = params
	items := make([]*entities.Article, 0, len(s.records))
	for _, r := range s.records {
		items = append(items, r)
	}
	return &models.Page[entities.Article]{
		Items:      items,
		Pagination: models.PaginationResponse{Total: int64(len(items)), CurrentPage: 1, PageSize: 10},
	}, nil
}

func (s *stubService) Get(_ context.Context, rawID string) (*entities.Article, error) {
	r, ok := s.records[rawID]
	if !ok {
		return nil, apperrors.NewNotFound("article", rawID)
	}
	return r, nil
}

func (s *stubService) Create(_ context.Context, body map[string]any) (*entities.Article, error) {
	s.lastBody = body
	title, _ := body["title"].(string)
	if title == "" {
		return nil, apperrors.NewValidation("title is a required field")
	}
	return &entities.Article{ID: 1, Title: title}, nil
}

func (s *stubService) Update(_ context.Context, rawID string, body map[string]any) (*entities.Article, error) {
	s.lastBody = body
	r, ok := s.records[rawID]
	if !ok {
		return nil, apperrors.NewNotFound("article", rawID)
	}
	return r, nil
}

func (s *stubService) Delete(_ context.Context, rawID string) error {
	if _, ok := s.records[rawID]; !ok {
		return apperrors.NewNotFound("article", rawID)
	}
	delete(s.records, rawID)
	return nil
}

func setupRouter(svc *stubService) *gin.Engine {
	r := gin.New()
	NewResourceController[entities.Article](svc, Articles).Register(r.Group("/admin"))
	return r
}

func perform(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestList(t *testing.T) {
	svc := &stubService{records: map[string]*entities.Article{"1": {ID: 1, Title: "Hello"}}}
	w := perform(setupRouter(svc), http.MethodGet, "/admin/articles?title=hel&currentPage=1", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hel", svc.params.Get("title"))
	assert.JSONEq(t, `{
		"status": true,
		"message": "Article list retrieved successfully.",
		"data": {
			"articles": [{"id":1,"title":"Hello","content":null,"createdAt":"0001-01-01T00:00:00Z","updatedAt":"0001-01-01T00:00:00Z"}],
			"pagination": {"total":1,"currentPage":1,"pageSize":10}
		}
	}`, w.Body.String())
}

func TestGet(t *testing.T) {
	svc := &stubService{records: map[string]*entities.Article{"1": {ID: 1, Title: "Hello"}}}
	r := setupRouter(svc)

	w := perform(r, http.MethodGet, "/admin/articles/1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"article":{"id":1`)

	w = perform(r, http.MethodGet, "/admin/articles/42", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{
		"status": false,
		"message": "Resource not found.",
		"errors": ["article with ID 42 not found"]
	}`, w.Body.String())
}

func TestCreate(t *testing.T) {
	svc := &stubService{records: map[string]*entities.Article{}}
	r := setupRouter(svc)

	w := perform(r, http.MethodPost, "/admin/articles", `{"title":"Hello","extra":true}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"message":"Article created successfully."`)
	assert.Equal(t, map[string]any{"title": "Hello", "extra": true}, svc.lastBody)
}

func TestCreateBodyErrors(t *testing.T) {
	svc := &stubService{records: map[string]*entities.Article{}}
	r := setupRouter(svc)

	tests := []struct {
		name   string
		body   string
		errors string
	}{
		{"empty body", "", `["title is a required field"]`},
		{"null body", "null", `["title is a required field"]`},
		{"malformed", `{"title":`, `["request body is not valid JSON"]`},
		{"not an object", `[1,2]`, `["request body must be a JSON object"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := perform(r, http.MethodPost, "/admin/articles", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, `{"status":false,"message":"Invalid request parameters.","errors":`+tt.errors+`}`, w.Body.String())
		})
	}
}

func TestUpdate(t *testing.T) {
	svc := &stubService{records: map[string]*entities.Article{"2": {ID: 2, Title: "Old"}}}
	r := setupRouter(svc)

	w := perform(r, http.MethodPut, "/admin/articles/2", `{"content":"x"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"message":"Article updated successfully."`)
	assert.Equal(t, map[string]any{"content": "x"}, svc.lastBody)

	w = perform(r, http.MethodPut, "/admin/articles/9", `{}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDelete(t *testing.T) {
	svc := &stubService{records: map[string]*entities.Article{"3": {ID: 3}}}
	r := setupRouter(svc)

	w := perform(r, http.MethodDelete, "/admin/articles/3", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":true,"message":"Article deleted successfully.","data":{}}`, w.Body.String())

	w = perform(r, http.MethodGet, "/admin/articles/3", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
