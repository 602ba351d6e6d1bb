package ledger

import (
	"context"
	_ "embed"
	"log/slog"
	"time"

	"arenahub-booking/internal/domain/booking"
	"arenahub-booking/internal/infra"
	"arenahub-booking/internal/usecase/commands"
	"arenahub-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

const insertSubmission = `
INSERT INTO booking_submissions (
    id, session_id, stadium_id, booking_date, slot,
    customer_name, phone, email, customer_id, outcome, error_message, created_at
) VALUES ($1, $2, $3, $4::date, $5, $6, $7, $8, $9, $10, $11, $12)`

const selectOrphans = `
SELECT id, customer_id, stadium_id, booking_date, slot,
       customer_name, phone, email, COALESCE(error_message, ''), created_at
FROM booking_submissions
WHERE outcome = 'orphaned'
ORDER BY created_at DESC
LIMIT $1`

type Ledger interface {
	commands.SubmissionLedger
	queries.OrphanReader
}

// PostgresLedger writes every submission outcome to booking_submissions.
type PostgresLedger struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewPostgresLedger(pool *pgxpool.Pool, logger *slog.Logger) *PostgresLedger {
	return &PostgresLedger{pool: pool, logger: logger}
}

func (l *PostgresLedger) EnsureSchema(ctx context.Context) error {
	if _, err := l.pool.Exec(ctx, schemaSQL); err != nil {
		return infra.WrapGatewayErr(l.logger, infra.KindDBFailure, "failed to apply ledger schema", err)
	}
	return nil
}

func (l *PostgresLedger) Record(ctx context.Context, rec commands.SubmissionRecord) error {
	_, err := l.pool.Exec(ctx, insertSubmission,
		rec.ID,
		rec.SessionID,
		rec.StadiumID,
		rec.BookingDate.In(time.UTC),
		rec.Slot,
		rec.Name,
		rec.Phone,
		rec.Email,
		rec.CustomerID,
		string(rec.Outcome),
		rec.ErrorMessage,
		rec.CreatedAt,
	)
	if err != nil {
		return infra.WrapGatewayErr(l.logger, infra.KindDBFailure, "failed to insert submission", err)
	}
	return nil
}

func (l *PostgresLedger) ListOrphans(ctx context.Context, limit int) ([]queries.OrphanView, error) {
	rows, err := l.pool.Query(ctx, selectOrphans, limit)
	if err != nil {
		return nil, infra.WrapGatewayErr(l.logger, infra.KindDBFailure, "failed to query orphans", err)
	}

	orphans, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (queries.OrphanView, error) {
		var (
			v           queries.OrphanView
			id          uuid.UUID
			customerID  *int64
			bookingDate time.Time
		)
		if err := row.Scan(&id, &customerID, &v.StadiumID, &bookingDate, &v.Slot,
			&v.Name, &v.Phone, &v.Email, &v.ErrorMessage, &v.CreatedAt); err != nil {
			return v, err
		}
		v.ID = id
		if customerID != nil {
			v.CustomerID = *customerID
		}
		v.BookingDate = booking.DateOf(bookingDate.UTC()).String()
		return v, nil
	})
	if err != nil {
		return nil, infra.WrapGatewayErr(l.logger, infra.KindDBFailure, "failed to scan orphans", err)
	}
	return orphans, nil
}

// NopLedger is used when no database is configured.
type NopLedger struct{}

func NewNopLedger() *NopLedger {
	return &NopLedger{}
}

func (NopLedger) Record(context.Context, commands.SubmissionRecord) error {
	return nil
}

func (NopLedger) ListOrphans(context.Context, int) ([]queries.OrphanView, error) {
	return []queries.OrphanView{}, nil
}
