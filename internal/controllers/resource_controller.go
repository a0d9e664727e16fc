package controllers

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"cms-admin/internal/apperrors"
	"cms-admin/internal/response"
	"cms-admin/internal/service"
)

// Resource names a resource in routes, response keys and messages
type Resource struct {
	Singular string // key of a single record in response data
	Plural   string // route segment and key of the list in response data
	Title    string // capitalised name used in success messages
}

type ResourceController[T any] struct {
	service  service.ResourceService[T]
	resource Resource
}

func NewResourceController[T any](svc service.ResourceService[T], resource Resource) *ResourceController[T] {
	return &ResourceController[T]{
		service:  svc,
		resource: resource,
	}
}

// Register mounts the five admin routes under /<plural>
func (rc *ResourceController[T]) Register(group *gin.RouterGroup) {
	r := group.Group("/" + rc.resource.Plural)
	r.GET("", rc.List)
	r.GET("/:id", rc.Get)
	r.POST("", rc.Create)
	r.PUT("/:id", rc.Update)
	r.DELETE("/:id", rc.Delete)
}

// List handles GET /admin/<plural>
func (rc *ResourceController[T]) List(c *gin.Context) {
	page, err := rc.service.List(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		response.Failure(c, err)
		return
	}

	response.Success(c, rc.resource.Title+" list retrieved successfully.", gin.H{
		rc.resource.Plural: page.Items,
		"pagination":       page.Pagination,
	})
}

// Get handles GET /admin/<plural>/:id
func (rc *ResourceController[T]) Get(c *gin.Context) {
	record, err := rc.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Failure(c, err)
		return
	}

	response.Success(c, rc.resource.Title+" retrieved successfully.", gin.H{rc.resource.Singular: record})
}

// Create handles POST /admin/<plural>
func (rc *ResourceController[T]) Create(c *gin.Context) {
	body, err := bindBody(c)
	if err != nil {
		response.Failure(c, err)
		return
	}

	record, err := rc.service.Create(c.Request.Context(), body)
	if err != nil {
		response.Failure(c, err)
		return
	}

	response.Created(c, rc.resource.Title+" created successfully.", gin.H{rc.resource.Singular: record})
}

// Update handles PUT /admin/<plural>/:id
func (rc *ResourceController[T]) Update(c *gin.Context) {
	body, err := bindBody(c)
	if err != nil {
		response.Failure(c, err)
		return
	}

	record, err := rc.service.Update(c.Request.Context(), c.Param("id"), body)
	if err != nil {
		response.Failure(c, err)
		return
	}

	response.Success(c, rc.resource.Title+" updated successfully.", gin.H{rc.resource.Singular: record})
}

// Delete handles DELETE /admin/<plural>/:id
func (rc *ResourceController[T]) Delete(c *gin.Context) {
	if err := rc.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Failure(c, err)
		return
	}

	response.Success(c, rc.resource.Title+" deleted successfully.", nil)
}

// bindBody reads the request body as a JSON object. An empty body is an empty object.
func bindBody(c *gin.Context) (map[string]any, error) {
	body := map[string]any{}
	err := c.ShouldBindJSON(&body)
	if err == nil || errors.Is(err, io.EOF) {
		if body == nil {
			body = map[string]any{}
		}
		return body, nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return nil, apperrors.NewValidation("request body must be a JSON object")
	}
	return nil, apperrors.NewValidation("request body is not valid JSON")
}
