package queries

import (
	"context"
	"log/slog"
	"time"

	"arenahub-booking/internal/domain/stadium"
	"arenahub-booking/internal/pkg/config"
	"arenahub-booking/internal/pkg/errs"
)

const catalogCacheKey = "catalog:stadiums"

var ErrStadiumNotFound = stadium.ErrStadiumNotFound

type StadiumQueries interface {
	List(ctx context.Context) ([]StadiumView, error)
	Get(ctx context.Context, id int64) (*StadiumView, error)
	Catalog(ctx context.Context) (*stadium.Catalog, error)
}

type stadiumQueriesImpl struct {
	source StadiumSource
	cache  Cache
	ttl    time.Duration
	logger *slog.Logger
}

func NewStadiumQueries(source StadiumSource, cache Cache, cfg config.Config, logger *slog.Logger) StadiumQueries {
	return &stadiumQueriesImpl{
		source: source,
		cache:  cache,
		ttl:    cfg.Catalog.CacheTTL,
		logger: logger,
	}
}

func (q *stadiumQueriesImpl) List(ctx context.Context) ([]StadiumView, error) {
	catalog, err := q.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]StadiumView, 0, catalog.Len())
	for _, s := range catalog.All() {
		views = append(views, ToStadiumView(s))
	}
	return views, nil
}

func (q *stadiumQueriesImpl) Get(ctx context.Context, id int64) (*StadiumView, error) {
	catalog, err := q.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	s, err := catalog.Find(id)
	if err != nil {
		return nil, err
	}
	view := ToStadiumView(s)
	return &view, nil
}

// Catalog serves from cache and falls back to the backend on a miss.
// Cache failures are logged, never returned.
func (q *stadiumQueriesImpl) Catalog(ctx context.Context) (*stadium.Catalog, error) {
	var cached []StadiumView
	hit, err := q.cache.Get(ctx, catalogCacheKey, &cached)
	if err != nil {
		q.logger.Warn("catalog cache read failed", slog.String("error", err.Error()))
	}
	if hit {
		if catalog, convErr := catalogFromViews(cached); convErr == nil {
			return catalog, nil
		}
	}

	stadiums, err := q.source.ListStadiums(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list stadiums")
	}

	views := make([]StadiumView, 0, len(stadiums))
	for _, s := range stadiums {
		views = append(views, ToStadiumView(s))
	}
	if err := q.cache.Set(ctx, catalogCacheKey, views, q.ttl); err != nil {
		q.logger.Warn("catalog cache write failed", slog.String("error", err.Error()))
	}

	return stadium.NewCatalog(stadiums), nil
}

func ToStadiumView(s *stadium.Stadium) StadiumView {
	return StadiumView{
		ID:             s.ID(),
		Name:           s.Name(),
		City:           s.Location().City,
		Region:         s.Location().Region,
		PlayerCapacity: s.PlayerCapacity(),
		Price:          s.Price(),
		PriceLabel:     s.PriceLabel(),
	}
}

func catalogFromViews(views []StadiumView) (*stadium.Catalog, error) {
	stadiums := make([]*stadium.Stadium, 0, len(views))
	for _, v := range views {
		s, err := stadium.NewStadium(v.ID, v.Name, stadium.Location{City: v.City, Region: v.Region}, v.PlayerCapacity, v.Price)
		if err != nil {
			return nil, err
		}
		stadiums = append(stadiums, s)
	}
	return stadium.NewCatalog(stadiums), nil
}
