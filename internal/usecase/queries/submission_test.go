//go:build unit

package queries_test

import (
	"context"
	"testing"

	"arenahub-booking/internal/usecase/queries"
	queriesmock "arenahub-booking/tests/mock/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestSubmissionQueries_Orphans(t *testing.T) {
	cases := []struct {
		name      string
		requested int
		expected  int
	}{
		{name: "default when unset", requested: 0, expected: queries.DefaultOrphanLimit},
		{name: "default when negative", requested: -3, expected: queries.DefaultOrphanLimit},
		{name: "passes through", requested: 10, expected: 10},
		{name: "capped", requested: 10_000, expected: queries.MaxOrphanLimit},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			reader := queriesmock.NewMockOrphanReader(ctrl)
			reader.EXPECT().ListOrphans(gomock.Any(), c.expected).Return(nil, nil)

			orphans, err := queries.NewSubmissionQueries(reader).Orphans(context.Background(), c.requested)
			require.NoError(t, err)
			assert.NotNil(t, orphans)
			assert.Empty(t, orphans)
		})
	}
}
