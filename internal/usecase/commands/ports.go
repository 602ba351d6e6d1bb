//go:generate mockgen -destination=../../../tests/mock/commands/commands.go -package=commandsmock arenahub-booking/internal/usecase/commands BookingGateway,SubmissionLedger,SubmissionMetrics,SessionRepository,IdempotencyStore,BookingCommands,SessionCommands

package commands

import (
	"context"
	"time"

	"arenahub-booking/internal/domain/booking"
	"arenahub-booking/internal/domain/session"

	"github.com/google/uuid"
)

// CustomerDraft is the check-or-create payload. The backend resolves the same
// customer for the same (email, phone) pair.
type CustomerDraft struct {
	Name  string
	Phone string
	Email string
}

type BookingDraft struct {
	CustomerID  int64
	StadiumID   int64
	BookingDate booking.Date
	StartTime   string
	EndTime     string
	Status      booking.Status
}

type SubmissionOutcome string

const (
	OutcomeBooked         SubmissionOutcome = "booked"
	OutcomeOrphaned       SubmissionOutcome = "orphaned"
	OutcomeCustomerFailed SubmissionOutcome = "customer_failed"
)

// SubmissionRecord is one line of the submission ledger.
type SubmissionRecord struct {
	ID           uuid.UUID
	SessionID    *uuid.UUID
	StadiumID    int64
	BookingDate  booking.Date
	Slot         string
	Name         string
	Phone        string
	Email        string
	CustomerID   *int64
	Outcome      SubmissionOutcome
	ErrorMessage *string
	CreatedAt    time.Time
}

type BookingGateway interface {
	CheckOrCreateCustomer(ctx context.Context, draft CustomerDraft) (int64, error)
	CreateBooking(ctx context.Context, draft BookingDraft) error
}

type SubmissionLedger interface {
	Record(ctx context.Context, rec SubmissionRecord) error
}

type SubmissionMetrics interface {
	ObserveSubmission(outcome string)
}

type SessionRepository interface {
	Find(ctx context.Context, id uuid.UUID) (*session.Session, error)
	Save(ctx context.Context, s *session.Session) error
}

type IdempotencyStatus string

const (
	IdempotencyProcessing IdempotencyStatus = "processing"
	IdempotencyCompleted  IdempotencyStatus = "completed"
)

// IdempotencyRecord is what a submission key resolves to while it lives.
type IdempotencyRecord struct {
	Status      IdempotencyStatus `json:"status"`
	RequestHash string            `json:"requestHash"`
	Result      *BookingResult    `json:"result,omitempty"`
}

// IdempotencyStore keeps Idempotency-Key outcomes and per-session submit
// locks. Claim is an atomic set-if-absent; Get returns nil for a missing key.
type IdempotencyStore interface {
	Claim(ctx context.Context, key string, rec IdempotencyRecord, ttl time.Duration) (bool, error)
	Get(ctx context.Context, key string) (*IdempotencyRecord, error)
	Put(ctx context.Context, key string, rec IdempotencyRecord, ttl time.Duration) error
	Release(ctx context.Context, key string) error
}
