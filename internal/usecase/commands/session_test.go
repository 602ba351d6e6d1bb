//go:build unit

package commands_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"arenahub-booking/internal/domain/booking"
	"arenahub-booking/internal/domain/session"
	"arenahub-booking/internal/domain/stadium"
	reqdto "arenahub-booking/internal/handler/dto/request"
	"arenahub-booking/internal/infra/idempotency"
	"arenahub-booking/internal/infra/sessionstore"
	"arenahub-booking/internal/pkg/clock"
	"arenahub-booking/internal/pkg/config"
	"arenahub-booking/internal/pkg/errs"
	"arenahub-booking/internal/pkg/jwt"
	"arenahub-booking/internal/usecase/commands"
	"arenahub-booking/tests/common/builder"
	commandsmock "arenahub-booking/tests/mock/commands"
	queriesmock "arenahub-booking/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SessionCommandsTestSuite struct {
	suite.Suite
	mockCtrl     *gomock.Controller
	store        *sessionstore.MemoryStore
	idempotency  *idempotency.MemoryStore
	bookings     *commandsmock.MockBookingCommands
	stadiums     *queriesmock.MockStadiumQueries
	availability *queriesmock.MockAvailabilityQueries
	jwtService   *jwt.Service
	clock        *clock.MockClock
	cmds         commands.SessionCommands
	today        booking.Date
	ctx          context.Context
}

func (s *SessionCommandsTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.clock = clock.NewMockClock(now)
	s.store = sessionstore.NewMemoryStore(time.Hour, s.clock)
	s.idempotency = idempotency.NewMemoryStore(s.clock)
	s.bookings = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.stadiums = queriesmock.NewMockStadiumQueries(s.mockCtrl)
	s.availability = queriesmock.NewMockAvailabilityQueries(s.mockCtrl)
	s.jwtService = jwt.NewService("test-secret", time.Hour)
	s.today = booking.DateOf(now)
	s.ctx = context.Background()

	s.cmds = s.newCommands(s.store)

	s.availability.EXPECT().Today().Return(s.today).AnyTimes()
	s.stadiums.EXPECT().Catalog(gomock.Any()).Return(builder.BuildCatalog(3), nil).AnyTimes()
}

func (s *SessionCommandsTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSessionCommandsSuite(t *testing.T) {
	suite.Run(t, new(SessionCommandsTestSuite))
}

// newCommands shares the suite's idempotency store so locks taken through
// differently wrapped session stores still collide.
func (s *SessionCommandsTestSuite) newCommands(store commands.SessionRepository) commands.SessionCommands {
	return commands.NewSessionCommands(
		store, s.idempotency, s.bookings, s.stadiums, s.availability,
		s.jwtService, s.clock, config.NewTestConfig(),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func (s *SessionCommandsTestSuite) start() uuid.UUID {
	started, err := s.cmds.Start(s.ctx)
	s.Require().NoError(err)
	return started.ID
}

func (s *SessionCommandsTestSuite) load(id uuid.UUID) *session.Session {
	sess, err := s.store.Find(s.ctx, id)
	s.Require().NoError(err)
	return sess
}

// startedBooking returns a session with stadium 2 selected and proceeded.
func (s *SessionCommandsTestSuite) startedBooking() uuid.UUID {
	id := s.start()
	s.Require().NoError(s.cmds.SelectStadium(s.ctx, id, reqdto.SelectStadiumRequest{StadiumID: 2}))
	s.Require().NoError(s.cmds.Proceed(s.ctx, id))
	return id
}

// filledForm returns a session whose form is ready to submit.
func (s *SessionCommandsTestSuite) filledForm() uuid.UUID {
	id := s.startedBooking()
	tomorrow := s.today.AddDays(1)
	s.availability.EXPECT().TakenSlots(gomock.Any(), int64(2), tomorrow).Return(booking.NewSlotSet(), nil)

	s.Require().NoError(s.cmds.SelectDate(s.ctx, id, reqdto.SelectDateRequest{Date: tomorrow.String()}))
	s.Require().NoError(s.cmds.ChooseSlot(s.ctx, id, reqdto.ChooseSlotRequest{Slot: "09:00 - 11:00"}))
	s.Require().NoError(s.cmds.UpdateContact(s.ctx, id, reqdto.UpdateContactRequest{
		ContactRequest: reqdto.ContactRequest{Name: "Asha Mwangi", Phone: "712 345 678", Email: "asha@example.com"},
	}))
	return id
}

func (s *SessionCommandsTestSuite) TestStart() {
	started, err := s.cmds.Start(s.ctx)
	s.Require().NoError(err)
	s.NotEqual(uuid.Nil, started.ID)
	s.Equal(time.Hour, started.ExpiresIn)

	claims, err := s.jwtService.ValidateToken(started.Token)
	s.Require().NoError(err)
	s.Equal(started.ID, claims.SessionID)

	sess := s.load(started.ID)
	s.Equal(booking.FormIdle, sess.Form().State())
}

func (s *SessionCommandsTestSuite) TestSelectStadium() {
	s.Run("unknown session", func() {
		err := s.cmds.SelectStadium(s.ctx, uuid.New(), reqdto.SelectStadiumRequest{StadiumID: 2})
		s.ErrorIs(err, errs.ErrSessionNotFound)
	})

	s.Run("unknown stadium", func() {
		id := s.start()
		err := s.cmds.SelectStadium(s.ctx, id, reqdto.SelectStadiumRequest{StadiumID: 99})
		s.ErrorIs(err, stadium.ErrStadiumNotFound)
	})

	s.Run("switching stadium resets the form", func() {
		id := s.filledForm()
		s.Require().NoError(s.cmds.SelectStadium(s.ctx, id, reqdto.SelectStadiumRequest{StadiumID: 3}))

		sess := s.load(id)
		s.Equal(int64(3), sess.Selection().SelectedID())
		s.False(sess.Selection().Proceeded())
		s.Equal(booking.FormIdle, sess.Form().State())
	})
}

func (s *SessionCommandsTestSuite) TestFormRequiresProceed() {
	id := s.start()
	s.Require().NoError(s.cmds.SelectStadium(s.ctx, id, reqdto.SelectStadiumRequest{StadiumID: 2}))

	err := s.cmds.SelectDate(s.ctx, id, reqdto.SelectDateRequest{Date: s.today.String()})
	s.ErrorIs(err, session.ErrBookingFlowNotStarted)

	err = s.cmds.Proceed(s.ctx, s.start())
	s.ErrorIs(err, stadium.ErrNoStadiumSelected)
}

func (s *SessionCommandsTestSuite) TestSelectDate() {
	id := s.startedBooking()

	s.Run("malformed", func() {
		err := s.cmds.SelectDate(s.ctx, id, reqdto.SelectDateRequest{Date: "18/10/2026"})
		var verr *booking.ValidationError
		s.Require().True(errors.As(err, &verr))
		s.Contains(verr.Fields, "date")
	})

	s.Run("past", func() {
		err := s.cmds.SelectDate(s.ctx, id, reqdto.SelectDateRequest{Date: s.today.AddDays(-1).String()})
		s.ErrorIs(err, booking.ErrPastDate)
		s.True(s.load(id).Form().Date().IsZero())
	})

	s.Run("stores date and touches session", func() {
		s.clock.Add(time.Minute)
		s.Require().NoError(s.cmds.SelectDate(s.ctx, id, reqdto.SelectDateRequest{Date: s.today.String()}))

		sess := s.load(id)
		s.Equal(s.today, sess.Form().Date())
		s.Equal(booking.FormDateSelected, sess.Form().State())
		s.True(sess.UpdatedAt().After(sess.CreatedAt()))
	})
}

func (s *SessionCommandsTestSuite) TestChooseSlot() {
	id := s.startedBooking()
	tomorrow := s.today.AddDays(1)

	s.Run("needs a date", func() {
		err := s.cmds.ChooseSlot(s.ctx, id, reqdto.ChooseSlotRequest{Slot: "09:00 - 11:00"})
		s.ErrorIs(err, booking.ErrNoDateSelected)
	})

	s.Require().NoError(s.cmds.SelectDate(s.ctx, id, reqdto.SelectDateRequest{Date: tomorrow.String()}))

	s.Run("taken slot", func() {
		s.availability.EXPECT().TakenSlots(gomock.Any(), int64(2), tomorrow).
			Return(booking.NewSlotSet("09:00 - 11:00"), nil)

		err := s.cmds.ChooseSlot(s.ctx, id, reqdto.ChooseSlotRequest{Slot: "09:00 - 11:00"})
		s.ErrorIs(err, booking.ErrSlotUnavailable)
	})

	s.Run("unknown label", func() {
		err := s.cmds.ChooseSlot(s.ctx, id, reqdto.ChooseSlotRequest{Slot: "09:00 - 11:00 (Booked)"})
		s.ErrorIs(err, booking.ErrValidation)
	})

	s.Run("free slot", func() {
		s.availability.EXPECT().TakenSlots(gomock.Any(), int64(2), tomorrow).
			Return(booking.NewSlotSet("09:00 - 11:00"), nil)

		s.Require().NoError(s.cmds.ChooseSlot(s.ctx, id, reqdto.ChooseSlotRequest{Slot: "11:00 - 13:00"}))
		s.Equal("11:00 - 13:00", s.load(id).Form().Slot().String())
	})
}

func (s *SessionCommandsTestSuite) TestSubmit() {
	s.Run("success clears the form", func() {
		id := s.filledForm()
		result := builder.NewBookingBuilder().WithToday(s.today).BuildResult(41)

		s.bookings.EXPECT().Submit(gomock.Any(), gomock.Any(), id).DoAndReturn(
			func(ctx context.Context, sub booking.Submission, _ uuid.UUID) (*commands.BookingResult, error) {
				s.Equal(int64(2), sub.StadiumID)
				s.Equal("+255712345678", sub.Contact.FullPhone())

				// a concurrent submit on the same session sees the in-flight state
				_, err := s.cmds.Submit(ctx, id, uuid.Nil)
				s.ErrorIs(err, booking.ErrSubmissionInProgress)
				return result, nil
			})

		got, err := s.cmds.Submit(s.ctx, id, uuid.Nil)
		s.Require().NoError(err)
		s.Equal(result, got)

		form := s.load(id).Form()
		s.Equal(booking.FormIdle, form.State())
		s.True(form.Contact().IsEmpty())
		s.True(form.Date().IsZero())
	})

	s.Run("failure keeps every field", func() {
		id := s.filledForm()
		before := s.load(id).Form().Snapshot()

		s.bookings.EXPECT().Submit(gomock.Any(), gomock.Any(), id).
			Return(nil, errs.Mark(errs.ErrBackendUnavailable, commands.ErrSubmissionFailed))

		_, err := s.cmds.Submit(s.ctx, id, uuid.Nil)
		s.True(errs.Is(err, commands.ErrSubmissionFailed))
		s.Equal(before, s.load(id).Form().Snapshot())
	})

	s.Run("invalid form never reaches the backend", func() {
		id := s.startedBooking()
		_, err := s.cmds.Submit(s.ctx, id, uuid.Nil)
		s.ErrorIs(err, booking.ErrValidation)
	})
}

// slowStore adds a round trip to every call, like a networked store.
type slowStore struct {
	*sessionstore.MemoryStore
	latency time.Duration
}

func (st *slowStore) Find(ctx context.Context, id uuid.UUID) (*session.Session, error) {
	time.Sleep(st.latency)
	return st.MemoryStore.Find(ctx, id)
}

func (st *slowStore) Save(ctx context.Context, sess *session.Session) error {
	time.Sleep(st.latency)
	return st.MemoryStore.Save(ctx, sess)
}

// failingSaveStore fails saves once armed and honours context cancellation.
type failingSaveStore struct {
	*sessionstore.MemoryStore
	mu    sync.Mutex
	armed bool
}

func (st *failingSaveStore) arm() {
	st.mu.Lock()
	st.armed = true
	st.mu.Unlock()
}

func (st *failingSaveStore) Save(ctx context.Context, sess *session.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	st.mu.Lock()
	armed := st.armed
	st.mu.Unlock()
	if armed {
		return errs.New("redis: connection reset")
	}
	return st.MemoryStore.Save(ctx, sess)
}

func (s *SessionCommandsTestSuite) TestSubmit_ConcurrentOnSlowStore() {
	id := s.filledForm()
	cmds := s.newCommands(&slowStore{MemoryStore: s.store, latency: 5 * time.Millisecond})
	result := builder.NewBookingBuilder().WithToday(s.today).BuildResult(41)

	s.bookings.EXPECT().Submit(gomock.Any(), gomock.Any(), id).Return(result, nil).Times(1)

	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
		errCh = make(chan error, 2)
	)
	for range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := cmds.Submit(s.ctx, id, uuid.Nil)
			errCh <- err
		}()
	}
	close(start)
	wg.Wait()
	close(errCh)

	var succeeded, refused int
	for err := range errCh {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, booking.ErrSubmissionInProgress):
			refused++
		default:
			s.Failf("unexpected error", "%v", err)
		}
	}
	s.Equal(1, succeeded)
	s.Equal(1, refused)
}

func (s *SessionCommandsTestSuite) TestSubmit_IdempotencyKey() {
	s.Run("repeated key replays after the form was reset", func() {
		id := s.filledForm()
		key := uuid.New()
		result := builder.NewBookingBuilder().WithToday(s.today).BuildResult(41)
		s.bookings.EXPECT().Submit(gomock.Any(), gomock.Any(), id).Return(result, nil).Times(1)

		first, err := s.cmds.Submit(s.ctx, id, key)
		s.Require().NoError(err)
		s.Equal(booking.FormIdle, s.load(id).Form().State())

		second, err := s.cmds.Submit(s.ctx, id, key)
		s.Require().NoError(err)
		s.Equal(first, second)
	})

	s.Run("key is scoped to its session", func() {
		key := uuid.New()
		first, second := s.filledForm(), s.filledForm()
		result := builder.NewBookingBuilder().WithToday(s.today).BuildResult(41)
		s.bookings.EXPECT().Submit(gomock.Any(), gomock.Any(), first).Return(result, nil)
		s.bookings.EXPECT().Submit(gomock.Any(), gomock.Any(), second).Return(result, nil)

		_, err := s.cmds.Submit(s.ctx, first, key)
		s.Require().NoError(err)
		_, err = s.cmds.Submit(s.ctx, second, key)
		s.Require().NoError(err)
	})
}

func (s *SessionCommandsTestSuite) TestSubmit_OutcomeSaves() {
	s.Run("failed save after a booking still returns the result", func() {
		id := s.filledForm()
		store := &failingSaveStore{MemoryStore: s.store}
		cmds := s.newCommands(store)
		result := builder.NewBookingBuilder().WithToday(s.today).BuildResult(41)

		s.bookings.EXPECT().Submit(gomock.Any(), gomock.Any(), id).DoAndReturn(
			func(context.Context, booking.Submission, uuid.UUID) (*commands.BookingResult, error) {
				store.arm()
				return result, nil
			})

		got, err := cmds.Submit(s.ctx, id, uuid.Nil)
		s.Require().NoError(err)
		s.Equal(result, got)
		s.Equal(booking.FormSubmitting, s.load(id).Form().State())

		// the stale state is recovered; the slot is now taken upstream
		s.bookings.EXPECT().Submit(gomock.Any(), gomock.Any(), id).Return(nil, booking.ErrSlotUnavailable)
		_, err = s.cmds.Submit(s.ctx, id, uuid.Nil)
		s.ErrorIs(err, booking.ErrSlotUnavailable)
		s.Equal(booking.FormSlotChosen, s.load(id).Form().State())
	})

	s.Run("cancelled request still saves the failure", func() {
		id := s.filledForm()
		cmds := s.newCommands(&failingSaveStore{MemoryStore: s.store})
		ctx, cancel := context.WithCancel(s.ctx)
		defer cancel()

		s.bookings.EXPECT().Submit(gomock.Any(), gomock.Any(), id).DoAndReturn(
			func(context.Context, booking.Submission, uuid.UUID) (*commands.BookingResult, error) {
				cancel()
				return nil, errs.Mark(context.Canceled, commands.ErrSubmissionFailed)
			})

		_, err := cmds.Submit(ctx, id, uuid.Nil)
		s.True(errs.Is(err, commands.ErrSubmissionFailed))
		s.Equal(booking.FormSlotChosen, s.load(id).Form().State())
	})
}
