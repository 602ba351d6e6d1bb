package commands

import (
	"context"
	"log/slog"

	"arenahub-booking/internal/domain/booking"
	"arenahub-booking/internal/domain/stadium"
	reqdto "arenahub-booking/internal/handler/dto/request"
	"arenahub-booking/internal/pkg/clock"
	"arenahub-booking/internal/pkg/config"
	"arenahub-booking/internal/pkg/errs"
	"arenahub-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName     = "arenahub-booking/usecase/commands"
	SuccessMessage = "Booking successful!"
)

var ErrSubmissionFailed = errs.New("booking submission failed")

type BookingResult struct {
	Message     string       `json:"message"`
	CustomerID  int64        `json:"customerID"`
	StadiumID   int64        `json:"stadiumID"`
	BookingDate booking.Date `json:"bookingDate"`
	Slot        string       `json:"slot"`
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, req reqdto.CreateBookingRequest, idempotencyKey uuid.UUID) (*BookingResult, error)
	Submit(ctx context.Context, sub booking.Submission, sessionID uuid.UUID) (*BookingResult, error)
}

type bookingCommandsImpl struct {
	gateway       BookingGateway
	ledger        SubmissionLedger
	metrics       SubmissionMetrics
	stadiums      queries.StadiumQueries
	availability  queries.AvailabilityQueries
	clock         clock.Clock
	defaultPrefix string
	guard         submissionGuard
	logger        *slog.Logger
}

func NewBookingCommands(
	gateway BookingGateway,
	ledger SubmissionLedger,
	metrics SubmissionMetrics,
	idempotency IdempotencyStore,
	stadiums queries.StadiumQueries,
	availability queries.AvailabilityQueries,
	clock clock.Clock,
	cfg config.Config,
	logger *slog.Logger,
) BookingCommands {
	return &bookingCommandsImpl{
		gateway:       gateway,
		ledger:        ledger,
		metrics:       metrics,
		stadiums:      stadiums,
		availability:  availability,
		clock:         clock,
		defaultPrefix: cfg.Venue.DefaultCountryPrefix,
		guard: submissionGuard{
			store:     idempotency,
			lockTTL:   cfg.Submission.LockTTL,
			resultTTL: cfg.Submission.IdempotencyTTL,
			logger:    logger,
		},
		logger: logger,
	}
}

// CreateBooking replays the first result for a repeated idempotency key.
func (b *bookingCommandsImpl) CreateBooking(ctx context.Context, req reqdto.CreateBookingRequest, idempotencyKey uuid.UUID) (*BookingResult, error) {
	sub, err := req.ToDomain(b.defaultPrefix, b.availability.Today())
	if err != nil {
		return nil, err
	}
	return b.guard.run(ctx, bookingKey(idempotencyKey), submissionHash(sub), func() (*BookingResult, error) {
		return b.Submit(ctx, sub, uuid.Nil)
	})
}

// Submit runs the two backend phases in order. A failed second phase leaves
// the customer in place; the ledger records it as orphaned.
func (b *bookingCommandsImpl) Submit(ctx context.Context, sub booking.Submission, sessionID uuid.UUID) (*BookingResult, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "booking.submit",
		trace.WithAttributes(
			attribute.Int64("booking.stadium_id", sub.StadiumID),
			attribute.String("booking.date", sub.Date.String()),
			attribute.String("booking.slot", sub.Slot.String()),
		),
	)
	defer span.End()

	if err := b.precheck(ctx, sub); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	rec := SubmissionRecord{
		ID:          uuid.New(),
		StadiumID:   sub.StadiumID,
		BookingDate: sub.Date,
		Slot:        sub.Slot.String(),
		Name:        sub.Contact.Name,
		Phone:       sub.Contact.FullPhone(),
		Email:       sub.Contact.Email,
		CreatedAt:   b.clock.Now(),
	}
	if sessionID != uuid.Nil {
		rec.SessionID = &sessionID
	}

	customerID, err := b.resolveCustomer(ctx, sub)
	if err != nil {
		b.finish(ctx, rec, OutcomeCustomerFailed, err)
		span.SetStatus(codes.Error, err.Error())
		return nil, errs.Mark(err, ErrSubmissionFailed)
	}
	rec.CustomerID = &customerID

	if err := b.createBooking(ctx, sub, customerID); err != nil {
		b.finish(ctx, rec, OutcomeOrphaned, err)
		span.SetStatus(codes.Error, err.Error())
		return nil, errs.Mark(err, ErrSubmissionFailed)
	}

	b.finish(ctx, rec, OutcomeBooked, nil)
	return &BookingResult{
		Message:     SuccessMessage,
		CustomerID:  customerID,
		StadiumID:   sub.StadiumID,
		BookingDate: sub.Date,
		Slot:        sub.Slot.String(),
	}, nil
}

// precheck rejects unknown stadiums and slots already taken in the current
// bookings list. Nothing has been sent to the backend yet.
func (b *bookingCommandsImpl) precheck(ctx context.Context, sub booking.Submission) error {
	if sub.Date.Before(b.availability.Today()) {
		return booking.ErrPastDate
	}
	if _, err := b.stadiums.Get(ctx, sub.StadiumID); err != nil {
		if errs.Is(err, stadium.ErrStadiumNotFound) {
			return err
		}
		return errs.Mark(err, ErrSubmissionFailed)
	}
	taken, err := b.availability.TakenSlots(ctx, sub.StadiumID, sub.Date)
	if err != nil {
		return errs.Mark(err, ErrSubmissionFailed)
	}
	if taken.Contains(sub.Slot) {
		return booking.ErrSlotUnavailable
	}
	return nil
}

func (b *bookingCommandsImpl) resolveCustomer(ctx context.Context, sub booking.Submission) (int64, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "booking.check_or_create_customer")
	defer span.End()

	customerID, err := b.gateway.CheckOrCreateCustomer(ctx, CustomerDraft{
		Name:  sub.Contact.Name,
		Phone: sub.Contact.FullPhone(),
		Email: sub.Contact.Email,
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return 0, errs.Wrap(err, "check-or-create customer")
	}
	span.SetAttributes(attribute.Int64("booking.customer_id", customerID))
	return customerID, nil
}

func (b *bookingCommandsImpl) createBooking(ctx context.Context, sub booking.Submission, customerID int64) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "booking.create_booking")
	defer span.End()

	err := b.gateway.CreateBooking(ctx, BookingDraft{
		CustomerID:  customerID,
		StadiumID:   sub.StadiumID,
		BookingDate: sub.Date,
		StartTime:   sub.Slot.StartTime(),
		EndTime:     sub.Slot.EndTime(),
		Status:      booking.StatusPending,
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return errs.Wrapf(err, "create booking for customer %d", customerID)
	}
	return nil
}

func (b *bookingCommandsImpl) finish(ctx context.Context, rec SubmissionRecord, outcome SubmissionOutcome, cause error) {
	rec.Outcome = outcome
	if cause != nil {
		msg := cause.Error()
		rec.ErrorMessage = &msg
	}

	b.metrics.ObserveSubmission(string(outcome))

	logArgs := []any{
		slog.String("submission_id", rec.ID.String()),
		slog.String("outcome", string(outcome)),
		slog.Int64("stadium_id", rec.StadiumID),
		slog.String("date", rec.BookingDate.String()),
		slog.String("slot", rec.Slot),
	}
	if rec.CustomerID != nil {
		logArgs = append(logArgs, slog.Int64("customer_id", *rec.CustomerID))
	}
	if outcome == OutcomeBooked {
		b.logger.Info("booking submitted", logArgs...)
	} else {
		b.logger.Warn("booking submission failed", logArgs...)
	}

	if err := b.ledger.Record(ctx, rec); err != nil {
		b.logger.Error("failed to record submission outcome",
			slog.String("submission_id", rec.ID.String()),
			slog.String("error", err.Error()),
		)
	}
}
