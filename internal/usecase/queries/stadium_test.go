//go:build unit

package queries_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"arenahub-booking/internal/domain/stadium"
	"arenahub-booking/internal/infra/cache"
	"arenahub-booking/internal/pkg/clock"
	"arenahub-booking/internal/pkg/config"
	"arenahub-booking/internal/pkg/errs"
	"arenahub-booking/internal/usecase/queries"
	"arenahub-booking/tests/common/builder"
	queriesmock "arenahub-booking/tests/mock/queries"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

var (
	now        = time.Date(2026, time.October, 17, 10, 0, 0, 0, time.FixedZone("EAT", 3*60*60))
	discardLog = slog.New(slog.NewTextHandler(io.Discard, nil))
)

type StadiumQueriesTestSuite struct {
	suite.Suite
	mockCtrl *gomock.Controller
	source   *queriesmock.MockStadiumSource
	clock    *clock.MockClock
	cache    *cache.MemoryCache
	q        queries.StadiumQueries
}

func (s *StadiumQueriesTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.source = queriesmock.NewMockStadiumSource(s.mockCtrl)
	s.clock = clock.NewMockClock(now)
	s.cache = cache.NewMemoryCache(s.clock)
	s.q = queries.NewStadiumQueries(s.source, s.cache, config.NewTestConfig(), discardLog)
}

func (s *StadiumQueriesTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestStadiumQueriesSuite(t *testing.T) {
	suite.Run(t, new(StadiumQueriesTestSuite))
}

func stadiums(n int) []*stadium.Stadium {
	return builder.BuildCatalog(n).All()
}

func (s *StadiumQueriesTestSuite) TestList() {
	s.source.EXPECT().ListStadiums(gomock.Any()).Return(stadiums(2), nil).Times(1)

	views, err := s.q.List(context.Background())
	s.Require().NoError(err)
	s.Require().Len(views, 2)
	s.Equal(int64(1), views[0].ID)
	s.Equal("TZS - 50000.00", views[0].PriceLabel)

	// second call is served from cache
	again, err := s.q.List(context.Background())
	s.Require().NoError(err)
	s.Equal(views, again)
}

func (s *StadiumQueriesTestSuite) TestCacheExpiry() {
	s.source.EXPECT().ListStadiums(gomock.Any()).Return(stadiums(1), nil).Times(1)
	_, err := s.q.List(context.Background())
	s.Require().NoError(err)

	s.clock.Add(config.NewTestConfig().Catalog.CacheTTL)

	s.source.EXPECT().ListStadiums(gomock.Any()).Return(stadiums(3), nil).Times(1)
	views, err := s.q.List(context.Background())
	s.Require().NoError(err)
	s.Len(views, 3)
}

func (s *StadiumQueriesTestSuite) TestGet() {
	s.source.EXPECT().ListStadiums(gomock.Any()).Return(stadiums(3), nil).Times(1)

	view, err := s.q.Get(context.Background(), 3)
	s.Require().NoError(err)
	s.Equal(int64(3), view.ID)

	_, err = s.q.Get(context.Background(), 4)
	s.ErrorIs(err, queries.ErrStadiumNotFound)
}

func (s *StadiumQueriesTestSuite) TestBackendFailure() {
	s.source.EXPECT().ListStadiums(gomock.Any()).Return(nil, errs.ErrBackendUnavailable)

	_, err := s.q.List(context.Background())
	s.True(errs.Is(err, errs.ErrBackendUnavailable))
}

func (s *StadiumQueriesTestSuite) TestCacheFailureIsNotFatal() {
	mockCache := queriesmock.NewMockCache(s.mockCtrl)
	q := queries.NewStadiumQueries(s.source, mockCache, config.NewTestConfig(), discardLog)

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, errors.New("redis down"))
	mockCache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis down"))
	s.source.EXPECT().ListStadiums(gomock.Any()).Return(stadiums(2), nil)

	views, err := q.List(context.Background())
	s.Require().NoError(err)
	s.Len(views, 2)
}
