package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"cms-admin/internal/apperrors"
	"cms-admin/internal/cache"
	"cms-admin/internal/logger"
	"cms-admin/internal/models"
	"cms-admin/internal/query"
	"cms-admin/internal/repository"
)

// ResourceService defines the admin operations shared by every resource
type ResourceService[T any] interface {
	List(ctx context.Context, params url.Values) (*models.Page[T], error)
	Get(ctx context.Context, rawID string) (*T, error)
	Create(ctx context.Context, body map[string]any) (*T, error)
	Update(ctx context.Context, rawID string, body map[string]any) (*T, error)
	Delete(ctx context.Context, rawID string) error
}

// Schema configures a resource: its display name, filterable query
// parameters, writable fields and an optional hook run on validated input.
type Schema[I any] struct {
	Name    string // singular, used in not-found messages
	Table   string // plural, used in cache keys
	Filters []query.Filter
	Allowed []string
	Prepare func(input *I) error
}

type resourceService[T, I any] struct {
	repo      repository.Repository[T]
	schema    Schema[I]
	validator *Validator
	cache     cache.Cache
	cacheTTL  time.Duration
}

// NewResourceService creates a service for one resource. A nil cache disables
// detail caching.
func NewResourceService[T, I any](
	repo repository.Repository[T],
	schema Schema[I],
	v *Validator,
	cacheClient cache.Cache,
	cacheTTL time.Duration,
) ResourceService[T] {
	svc := &resourceService[T, I]{
		repo:      repo,
		schema:    schema,
		validator: v,
		cacheTTL:  cacheTTL,
	}
	if cacheClient != nil {
		svc.cache = cacheClient
	}
	return svc
}

// List returns one page of records matching the query parameters
func (s *resourceService[T, I]) List(ctx context.Context, params url.Values) (*models.Page[T], error) {
	cond, err := query.Build(params, s.schema.Filters)
	if err != nil {
		return nil, err
	}

	items, total, err := s.repo.FindAndCount(ctx, cond)
	if err != nil {
		return nil, err
	}

	return &models.Page[T]{
		Items: items,
		Pagination: models.PaginationResponse{
			Total:       total,
			CurrentPage: cond.Page.CurrentPage,
			PageSize:    cond.Page.PageSize,
		},
	}, nil
}

// Get looks a record up by its path identifier, going through the cache when one is configured
func (s *resourceService[T, I]) Get(ctx context.Context, rawID string) (*T, error) {
	id, err := s.parseID(rawID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		var cached T
		err := s.cache.GetJSON(ctx, cache.Key(s.schema.Table, id), &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			logger.FromContext(ctx).Warn("cache read failed", zap.String("resource", s.schema.Table), zap.Error(err))
		}
	}

	record, err := s.lookup(ctx, id, rawID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cache.Key(s.schema.Table, id), record, s.cacheTTL); err != nil {
			logger.FromContext(ctx).Warn("cache write failed", zap.String("resource", s.schema.Table), zap.Error(err))
		}
	}
	return record, nil
}

// Create validates the whitelisted body and inserts a new record
func (s *resourceService[T, I]) Create(ctx context.Context, body map[string]any) (*T, error) {
	input, err := decode[I](query.Whitelist(body, s.schema.Allowed))
	if err != nil {
		return nil, err
	}
	if err := s.validator.Check(input, nil); err != nil {
		return nil, err
	}
	if err := s.prepare(input); err != nil {
		return nil, err
	}

	record, err := s.repo.Create(ctx, repository.Assignments(input, nil))
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("record created", zap.String("resource", s.schema.Table))
	return record, nil
}

// Update validates and writes only the whitelisted fields present in the body.
// A missing record is reported before any validation problem.
func (s *resourceService[T, I]) Update(ctx context.Context, rawID string, body map[string]any) (*T, error) {
	id, err := s.parseID(rawID)
	if err != nil {
		return nil, err
	}
	if _, err := s.lookup(ctx, id, rawID); err != nil {
		return nil, err
	}

	fields := query.Whitelist(body, s.schema.Allowed)
	input, err := decode[I](fields)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Check(input, fields); err != nil {
		return nil, err
	}
	if err := s.prepare(input); err != nil {
		return nil, err
	}

	record, err := s.repo.Update(ctx, id, repository.Assignments(input, fields))
	if errors.Is(err, repository.ErrNoRecord) {
		return nil, apperrors.NewNotFound(s.schema.Name, rawID)
	}
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	logger.FromContext(ctx).Info("record updated", zap.String("resource", s.schema.Table), zap.Int64("id", id))
	return record, nil
}

// Delete removes the record identified by the path parameter
func (s *resourceService[T, I]) Delete(ctx context.Context, rawID string) error {
	id, err := s.parseID(rawID)
	if err != nil {
		return err
	}

	err = s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNoRecord) {
		return apperrors.NewNotFound(s.schema.Name, rawID)
	}
	if err != nil {
		return err
	}

	s.invalidate(ctx, id)
	logger.FromContext(ctx).Info("record deleted", zap.String("resource", s.schema.Table), zap.Int64("id", id))
	return nil
}

func (s *resourceService[T, I]) lookup(ctx context.Context, id int64, rawID string) (*T, error) {
	record, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNoRecord) {
		return nil, apperrors.NewNotFound(s.schema.Name, rawID)
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

// parseID accepts positive decimal identifiers only; anything else cannot
// match a row and is reported as not found.
func (s *resourceService[T, I]) parseID(rawID string) (int64, error) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewNotFound(s.schema.Name, rawID)
	}
	return id, nil
}

func (s *resourceService[T, I]) prepare(input *I) error {
	if s.schema.Prepare == nil {
		return nil
	}
	if err := s.schema.Prepare(input); err != nil {
		return fmt.Errorf("failed to prepare %s: %w", s.schema.Name, err)
	}
	return nil
}

func (s *resourceService[T, I]) invalidate(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.Key(s.schema.Table, id)); err != nil {
		logger.FromContext(ctx).Warn("cache invalidation failed", zap.String("resource", s.schema.Table), zap.Error(err))
	}
}
