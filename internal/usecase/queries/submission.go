package queries

import (
	"context"
)

const (
	DefaultOrphanLimit = 50
	MaxOrphanLimit     = 500
)

type SubmissionQueries interface {
	Orphans(ctx context.Context, limit int) ([]OrphanView, error)
}

type submissionQueriesImpl struct {
	reader OrphanReader
}

func NewSubmissionQueries(reader OrphanReader) SubmissionQueries {
	return &submissionQueriesImpl{reader: reader}
}

func (q *submissionQueriesImpl) Orphans(ctx context.Context, limit int) ([]OrphanView, error) {
	switch {
	case limit <= 0:
		limit = DefaultOrphanLimit
	case limit > MaxOrphanLimit:
		limit = MaxOrphanLimit
	}

	orphans, err := q.reader.ListOrphans(ctx, limit)
	if err != nil {
		return nil, err
	}
	if orphans == nil {
		orphans = []OrphanView{}
	}
	return orphans, nil
}
