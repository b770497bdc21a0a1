package services

import (
	"context"
	"fmt"
	"log/slog"

	"listing_editor/internal/domain/models"
	"listing_editor/internal/lib/logger/sl"
	"listing_editor/internal/metrics"
	"listing_editor/internal/repository"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const (
	CatalogPropertyTypes = "propertytype"
	CatalogSaleTypes     = "saletype"
	CatalogImprovements  = "improvement"
)

type CatalogAPI interface {
	PropertyTypes(ctx context.Context) ([]models.CatalogItem, error)
	SaleTypes(ctx context.Context) ([]models.CatalogItem, error)
	Improvements(ctx context.Context) ([]models.CatalogItem, error)
}

type CatalogService struct {
	log   *slog.Logger
	api   CatalogAPI
	cache repository.CatalogCache
	group singleflight.Group
}

func NewCatalogService(log *slog.Logger, api CatalogAPI, cache repository.CatalogCache) *CatalogService {
	return &CatalogService{
		log:   log,
		api:   api,
		cache: cache,
	}
}

// Catalogs загружает все три справочника параллельно.
func (s *CatalogService) Catalogs(ctx context.Context) (models.Catalogs, error) {
	const op = "service.CatalogService.Catalogs"

	var out models.Catalogs
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		items, err := s.load(gctx, CatalogPropertyTypes, s.api.PropertyTypes)
		out.PropertyTypes = items
		return err
	})
	g.Go(func() error {
		items, err := s.load(gctx, CatalogSaleTypes, s.api.SaleTypes)
		out.SaleTypes = items
		return err
	})
	g.Go(func() error {
		items, err := s.load(gctx, CatalogImprovements, s.api.Improvements)
		out.Improvements = items
		return err
	})

	if err := g.Wait(); err != nil {
		return models.Catalogs{}, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

func (s *CatalogService) load(
	ctx context.Context,
	name string,
	fetch func(context.Context) ([]models.CatalogItem, error),
) ([]models.CatalogItem, error) {
	const op = "service.CatalogService.load"

	log := s.log.With(
		slog.String("op", op),
		slog.String("catalog", name),
	)

	items, ok, err := s.cache.Get(ctx, name)
	if err != nil {
		// кэш недоступен, идём в API
		log.Warn("catalog cache read failed", sl.Err(err))
	}
	if ok {
		metrics.CatalogCacheLookups.WithLabelValues(name, "hit").Inc()
		return items, nil
	}
	metrics.CatalogCacheLookups.WithLabelValues(name, "miss").Inc()

	v, err, _ := s.group.Do(name, func() (interface{}, error) {
		fetched, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(context.WithoutCancel(ctx), name, fetched); err != nil {
			log.Warn("catalog cache write failed", sl.Err(err))
		}
		return fetched, nil
	})
	if err != nil {
		log.Error("failed to fetch catalog", sl.Err(err))
		return nil, fmt.Errorf("%s: %s: %w", op, name, err)
	}

	return v.([]models.CatalogItem), nil
}
