//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// Querier is the read side shared by *pgxpool.Pool and pgx.Tx.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CountSubmissions counts ledger rows with the given outcome; an empty
// outcome counts every row.
func CountSubmissions(t *testing.T, db Querier, outcome string) int {
	t.Helper()

	var n int
	ctx := context.Background()
	var err error
	if outcome == "" {
		err = db.QueryRow(ctx, "SELECT count(*) FROM booking_submissions").Scan(&n)
	} else {
		err = db.QueryRow(ctx, "SELECT count(*) FROM booking_submissions WHERE outcome = $1", outcome).Scan(&n)
	}
	require.NoError(t, err)
	return n
}

type SubmissionRow struct {
	StadiumID    int64
	BookingDate  time.Time
	Slot         string
	Phone        string
	CustomerID   *int64
	Outcome      string
	ErrorMessage *string
}

func LatestSubmission(t *testing.T, db Querier) SubmissionRow {
	t.Helper()

	var row SubmissionRow
	err := db.QueryRow(context.Background(), `
		SELECT stadium_id, booking_date, slot, phone, customer_id, outcome, error_message
		FROM booking_submissions
		ORDER BY created_at DESC
		LIMIT 1`).Scan(&row.StadiumID, &row.BookingDate, &row.Slot, &row.Phone,
		&row.CustomerID, &row.Outcome, &row.ErrorMessage)
	require.NoError(t, err)
	return row
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// ResetDB truncates every table in the public schema.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
