//go:build unit

package commands_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"arenahub-booking/internal/domain/booking"
	"arenahub-booking/internal/infra/idempotency"
	"arenahub-booking/internal/pkg/clock"
	"arenahub-booking/internal/pkg/config"
	"arenahub-booking/internal/pkg/errs"
	"arenahub-booking/internal/usecase/commands"
	"arenahub-booking/internal/usecase/queries"
	"arenahub-booking/tests/common/builder"
	commandsmock "arenahub-booking/tests/mock/commands"
	queriesmock "arenahub-booking/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/mock/gomock"
)

var now = time.Date(2026, time.October, 17, 10, 0, 0, 0, time.FixedZone("EAT", 3*60*60))

type BookingCommandsTestSuite struct {
	suite.Suite
	mockCtrl     *gomock.Controller
	gateway      *commandsmock.MockBookingGateway
	ledger       *commandsmock.MockSubmissionLedger
	metrics      *commandsmock.MockSubmissionMetrics
	stadiums     *queriesmock.MockStadiumQueries
	availability *queriesmock.MockAvailabilityQueries
	idempotency  *idempotency.MemoryStore
	logger       *slog.Logger
	cmds         commands.BookingCommands
	today        booking.Date
	bb           *builder.BookingBuilder
}

func (s *BookingCommandsTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.gateway = commandsmock.NewMockBookingGateway(s.mockCtrl)
	s.ledger = commandsmock.NewMockSubmissionLedger(s.mockCtrl)
	s.metrics = commandsmock.NewMockSubmissionMetrics(s.mockCtrl)
	s.stadiums = queriesmock.NewMockStadiumQueries(s.mockCtrl)
	s.availability = queriesmock.NewMockAvailabilityQueries(s.mockCtrl)

	s.today = booking.DateOf(now)
	s.bb = builder.NewBookingBuilder().WithToday(s.today)

	s.idempotency = idempotency.NewMemoryStore(clock.NewMockClock(now))
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	s.cmds = s.newCommands(s.idempotency)

	s.availability.EXPECT().Today().Return(s.today).AnyTimes()
}

func (s *BookingCommandsTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingCommandsSuite(t *testing.T) {
	suite.Run(t, new(BookingCommandsTestSuite))
}

func (s *BookingCommandsTestSuite) newCommands(store commands.IdempotencyStore) commands.BookingCommands {
	return commands.NewBookingCommands(
		s.gateway, s.ledger, s.metrics, store, s.stadiums, s.availability,
		clock.NewMockClock(now), config.NewTestConfig(), s.logger,
	)
}

func (s *BookingCommandsTestSuite) expectBooked(customerID int64) {
	s.expectPrecheck(booking.NewSlotSet())
	s.gateway.EXPECT().CheckOrCreateCustomer(gomock.Any(), gomock.Any()).Return(customerID, nil)
	s.gateway.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).Return(nil)
	s.metrics.EXPECT().ObserveSubmission(string(commands.OutcomeBooked))
	s.ledger.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil)
}

func (s *BookingCommandsTestSuite) expectPrecheck(taken booking.SlotSet) {
	view := builder.NewStadiumBuilder().BuildView()
	s.stadiums.EXPECT().Get(gomock.Any(), s.bb.StadiumID).Return(&view, nil)
	s.availability.EXPECT().TakenSlots(gomock.Any(), s.bb.StadiumID, s.bb.Date).Return(taken, nil)
}

// ================================================================================
// Submit
// ================================================================================

func (s *BookingCommandsTestSuite) TestSubmit_Success() {
	sub := s.bb.MustSubmission()
	sessionID := uuid.New()
	s.expectPrecheck(booking.NewSlotSet("11:00 - 13:00"))

	gomock.InOrder(
		s.gateway.EXPECT().CheckOrCreateCustomer(gomock.Any(), commands.CustomerDraft{
			Name:  "Asha Mwangi",
			Phone: "+255712345678",
			Email: "asha@example.com",
		}).Return(int64(41), nil),
		s.gateway.EXPECT().CreateBooking(gomock.Any(), commands.BookingDraft{
			CustomerID:  41,
			StadiumID:   2,
			BookingDate: s.bb.Date,
			StartTime:   "09:00:00",
			EndTime:     "11:00:00",
			Status:      booking.StatusPending,
		}).Return(nil),
	)
	s.metrics.EXPECT().ObserveSubmission(string(commands.OutcomeBooked))
	s.ledger.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, rec commands.SubmissionRecord) error {
			s.Equal(commands.OutcomeBooked, rec.Outcome)
			s.Require().NotNil(rec.CustomerID)
			s.Equal(int64(41), *rec.CustomerID)
			s.Require().NotNil(rec.SessionID)
			s.Equal(sessionID, *rec.SessionID)
			s.Equal("09:00 - 11:00", rec.Slot)
			s.Equal("+255712345678", rec.Phone)
			s.Nil(rec.ErrorMessage)
			s.Equal(now, rec.CreatedAt)
			return nil
		})

	result, err := s.cmds.Submit(context.Background(), sub, sessionID)
	s.Require().NoError(err)
	s.Equal(commands.SuccessMessage, result.Message)
	s.Equal(int64(41), result.CustomerID)
	s.Equal("09:00 - 11:00", result.Slot)
}

func (s *BookingCommandsTestSuite) TestSubmit_CustomerFails() {
	sub := s.bb.MustSubmission()
	s.expectPrecheck(booking.NewSlotSet())

	s.gateway.EXPECT().CheckOrCreateCustomer(gomock.Any(), gomock.Any()).
		Return(int64(0), errs.Mark(errors.New("connection refused"), errs.ErrBackendUnavailable))
	s.metrics.EXPECT().ObserveSubmission(string(commands.OutcomeCustomerFailed))
	s.ledger.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, rec commands.SubmissionRecord) error {
			s.Equal(commands.OutcomeCustomerFailed, rec.Outcome)
			s.Nil(rec.CustomerID)
			s.Nil(rec.SessionID)
			s.Require().NotNil(rec.ErrorMessage)
			s.Contains(*rec.ErrorMessage, "connection refused")
			return nil
		})

	result, err := s.cmds.Submit(context.Background(), sub, uuid.Nil)
	s.Nil(result)
	s.True(errs.Is(err, commands.ErrSubmissionFailed))
	s.True(errs.Is(err, errs.ErrBackendUnavailable))
}

func (s *BookingCommandsTestSuite) TestSubmit_BookingFailsLeavesOrphan() {
	sub := s.bb.MustSubmission()
	s.expectPrecheck(booking.NewSlotSet())

	s.gateway.EXPECT().CheckOrCreateCustomer(gomock.Any(), gomock.Any()).Return(int64(41), nil)
	s.gateway.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).
		Return(errs.Mark(errors.New("422 slot clash"), errs.ErrBackendRejected))
	s.metrics.EXPECT().ObserveSubmission(string(commands.OutcomeOrphaned))
	s.ledger.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, rec commands.SubmissionRecord) error {
			s.Equal(commands.OutcomeOrphaned, rec.Outcome)
			s.Require().NotNil(rec.CustomerID)
			s.Equal(int64(41), *rec.CustomerID)
			return nil
		})

	_, err := s.cmds.Submit(context.Background(), sub, uuid.Nil)
	s.True(errs.Is(err, commands.ErrSubmissionFailed))
	s.True(errs.Is(err, errs.ErrBackendRejected))
}

func (s *BookingCommandsTestSuite) TestSubmit_LedgerFailureDoesNotFailBooking() {
	sub := s.bb.MustSubmission()
	s.expectPrecheck(booking.NewSlotSet())

	s.gateway.EXPECT().CheckOrCreateCustomer(gomock.Any(), gomock.Any()).Return(int64(41), nil)
	s.gateway.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).Return(nil)
	s.metrics.EXPECT().ObserveSubmission(gomock.Any())
	s.ledger.EXPECT().Record(gomock.Any(), gomock.Any()).Return(errs.ErrLedgerWriteFailed)

	result, err := s.cmds.Submit(context.Background(), sub, uuid.Nil)
	s.Require().NoError(err)
	s.Equal(commands.SuccessMessage, result.Message)
}

func (s *BookingCommandsTestSuite) TestSubmit_PrecheckFailures() {
	s.Run("past date never reaches the backend", func() {
		sub := s.bb.MustSubmission()
		sub.Date = s.today.AddDays(-1)

		_, err := s.cmds.Submit(context.Background(), sub, uuid.Nil)
		s.ErrorIs(err, booking.ErrPastDate)
	})

	s.Run("unknown stadium", func() {
		sub := s.bb.MustSubmission()
		s.stadiums.EXPECT().Get(gomock.Any(), sub.StadiumID).Return(nil, queries.ErrStadiumNotFound)

		_, err := s.cmds.Submit(context.Background(), sub, uuid.Nil)
		s.ErrorIs(err, queries.ErrStadiumNotFound)
	})

	s.Run("catalog unavailable is a generic submission failure", func() {
		sub := s.bb.MustSubmission()
		s.stadiums.EXPECT().Get(gomock.Any(), sub.StadiumID).
			Return(nil, errs.Mark(errs.New("dial tcp: refused"), errs.ErrBackendUnavailable))

		_, err := s.cmds.Submit(context.Background(), sub, uuid.Nil)
		s.True(errs.Is(err, commands.ErrSubmissionFailed))
		s.True(errs.Is(err, errs.ErrBackendUnavailable))
	})

	s.Run("slot already taken", func() {
		sub := s.bb.MustSubmission()
		s.expectPrecheck(booking.NewSlotSet("09:00 - 11:00"))

		_, err := s.cmds.Submit(context.Background(), sub, uuid.Nil)
		s.ErrorIs(err, booking.ErrSlotUnavailable)
	})

	s.Run("bookings list unavailable", func() {
		sub := s.bb.MustSubmission()
		view := builder.NewStadiumBuilder().BuildView()
		s.stadiums.EXPECT().Get(gomock.Any(), sub.StadiumID).Return(&view, nil)
		s.availability.EXPECT().TakenSlots(gomock.Any(), sub.StadiumID, sub.Date).
			Return(nil, errs.ErrBackendUnavailable)

		_, err := s.cmds.Submit(context.Background(), sub, uuid.Nil)
		s.True(errs.Is(err, commands.ErrSubmissionFailed))
	})
}

func (s *BookingCommandsTestSuite) TestSubmit_Spans() {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	defer otel.SetTracerProvider(prev)

	sub := s.bb.MustSubmission()
	s.expectPrecheck(booking.NewSlotSet())
	s.gateway.EXPECT().CheckOrCreateCustomer(gomock.Any(), gomock.Any()).Return(int64(41), nil)
	s.gateway.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).Return(nil)
	s.metrics.EXPECT().ObserveSubmission(gomock.Any())
	s.ledger.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil)

	_, err := s.cmds.Submit(context.Background(), sub, uuid.Nil)
	s.Require().NoError(err)

	spans := exporter.GetSpans()
	names := make([]string, 0, len(spans))
	for _, sp := range spans {
		names = append(names, sp.Name)
	}
	s.ElementsMatch([]string{"booking.check_or_create_customer", "booking.create_booking", "booking.submit"}, names)

	root := spans[len(spans)-1]
	s.Equal("booking.submit", root.Name)
	for _, child := range spans[:len(spans)-1] {
		s.Equal(root.SpanContext.SpanID(), child.Parent.SpanID())
	}
}

// ================================================================================
// CreateBooking
// ================================================================================

func (s *BookingCommandsTestSuite) TestCreateBooking() {
	s.Run("invalid contact is rejected before any call", func() {
		req := s.bb.BuildCreateRequestDTO()
		req.Phone = "12"
		req.Email = "nope"

		_, err := s.cmds.CreateBooking(context.Background(), req, uuid.Nil)
		var verr *booking.ValidationError
		s.Require().True(errors.As(err, &verr))
		s.Contains(verr.Fields, "phone")
		s.Contains(verr.Fields, "email")
	})

	s.Run("unknown slot label", func() {
		req := s.bb.BuildCreateRequestDTO()
		req.Slot = "08:00 - 09:00"

		_, err := s.cmds.CreateBooking(context.Background(), req, uuid.Nil)
		s.ErrorIs(err, booking.ErrValidation)
	})

	s.Run("missing prefix falls back to venue default", func() {
		req := s.bb.BuildCreateRequestDTO()
		req.CountryPrefix = ""

		s.expectPrecheck(booking.NewSlotSet())
		s.gateway.EXPECT().CheckOrCreateCustomer(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, draft commands.CustomerDraft) (int64, error) {
				s.Equal("+255712345678", draft.Phone)
				return 7, nil
			})
		s.gateway.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).Return(nil)
		s.metrics.EXPECT().ObserveSubmission(gomock.Any())
		s.ledger.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil)

		result, err := s.cmds.CreateBooking(context.Background(), req, uuid.Nil)
		s.Require().NoError(err)
		s.Equal(int64(7), result.CustomerID)
	})
}

func (s *BookingCommandsTestSuite) TestCreateBooking_IdempotencyKey() {
	s.Run("repeated key replays the first result without calling the backend", func() {
		key := uuid.New()
		req := s.bb.BuildCreateRequestDTO()
		s.expectBooked(41)

		first, err := s.cmds.CreateBooking(context.Background(), req, key)
		s.Require().NoError(err)

		second, err := s.cmds.CreateBooking(context.Background(), req, key)
		s.Require().NoError(err)
		s.Equal(first, second)
	})

	s.Run("same key with a different booking is refused", func() {
		key := uuid.New()
		req := s.bb.BuildCreateRequestDTO()
		s.expectBooked(41)

		_, err := s.cmds.CreateBooking(context.Background(), req, key)
		s.Require().NoError(err)

		req.Slot = "11:00 - 13:00"
		_, err = s.cmds.CreateBooking(context.Background(), req, key)
		s.ErrorIs(err, commands.ErrIdempotencyKeyReused)
	})

	s.Run("failed attempt frees the key for a retry", func() {
		key := uuid.New()
		req := s.bb.BuildCreateRequestDTO()

		s.expectPrecheck(booking.NewSlotSet())
		s.gateway.EXPECT().CheckOrCreateCustomer(gomock.Any(), gomock.Any()).Return(int64(0), errs.ErrBackendUnavailable)
		s.metrics.EXPECT().ObserveSubmission(string(commands.OutcomeCustomerFailed))
		s.ledger.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil)

		_, err := s.cmds.CreateBooking(context.Background(), req, key)
		s.True(errs.Is(err, commands.ErrSubmissionFailed))

		s.expectBooked(41)
		result, err := s.cmds.CreateBooking(context.Background(), req, key)
		s.Require().NoError(err)
		s.Equal(int64(41), result.CustomerID)
	})

	s.Run("in-flight key is refused", func() {
		key := uuid.New()
		req := s.bb.BuildCreateRequestDTO()

		s.expectPrecheck(booking.NewSlotSet())
		s.gateway.EXPECT().CheckOrCreateCustomer(gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, _ commands.CustomerDraft) (int64, error) {
				_, err := s.cmds.CreateBooking(ctx, req, key)
				s.ErrorIs(err, booking.ErrSubmissionInProgress)
				return 41, nil
			})
		s.gateway.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).Return(nil)
		s.metrics.EXPECT().ObserveSubmission(gomock.Any())
		s.ledger.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil)

		_, err := s.cmds.CreateBooking(context.Background(), req, key)
		s.Require().NoError(err)
	})

	s.Run("store outage fails closed before any backend call", func() {
		store := commandsmock.NewMockIdempotencyStore(s.mockCtrl)
		store.EXPECT().Claim(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(false, errs.New("redis: connection refused"))

		_, err := s.newCommands(store).CreateBooking(context.Background(), s.bb.BuildCreateRequestDTO(), uuid.New())
		s.True(errs.Is(err, commands.ErrIdempotencyCheckFailed))
	})
}
