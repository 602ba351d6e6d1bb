package commands

import (
	"context"
	"log/slog"
	"time"

	"arenahub-booking/internal/domain/booking"
	"arenahub-booking/internal/domain/session"
	reqdto "arenahub-booking/internal/handler/dto/request"
	"arenahub-booking/internal/pkg/clock"
	"arenahub-booking/internal/pkg/config"
	"arenahub-booking/internal/pkg/errs"
	"arenahub-booking/internal/pkg/jwt"
	"arenahub-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

var ErrTokenGeneration = errs.New("session token generation failed")

type StartedSession struct {
	ID        uuid.UUID
	Token     string
	ExpiresIn time.Duration
}

type SessionCommands interface {
	Start(ctx context.Context) (*StartedSession, error)
	SelectStadium(ctx context.Context, id uuid.UUID, req reqdto.SelectStadiumRequest) error
	Proceed(ctx context.Context, id uuid.UUID) error
	SelectDate(ctx context.Context, id uuid.UUID, req reqdto.SelectDateRequest) error
	ChooseSlot(ctx context.Context, id uuid.UUID, req reqdto.ChooseSlotRequest) error
	UpdateContact(ctx context.Context, id uuid.UUID, req reqdto.UpdateContactRequest) error
	Submit(ctx context.Context, id uuid.UUID, idempotencyKey uuid.UUID) (*BookingResult, error)
}

type sessionCommandsImpl struct {
	sessions      SessionRepository
	bookings      BookingCommands
	stadiums      queries.StadiumQueries
	availability  queries.AvailabilityQueries
	jwtService    *jwt.Service
	clock         clock.Clock
	defaultPrefix string
	guard         submissionGuard
	logger        *slog.Logger
}

func NewSessionCommands(
	sessions SessionRepository,
	idempotency IdempotencyStore,
	bookings BookingCommands,
	stadiums queries.StadiumQueries,
	availability queries.AvailabilityQueries,
	jwtService *jwt.Service,
	clock clock.Clock,
	cfg config.Config,
	logger *slog.Logger,
) SessionCommands {
	return &sessionCommandsImpl{
		sessions:      sessions,
		bookings:      bookings,
		stadiums:      stadiums,
		availability:  availability,
		jwtService:    jwtService,
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

func (c *sessionCommandsImpl) Start(ctx context.Context) (*StartedSession, error) {
	s := session.New(c.clock.Now())
	if err := c.sessions.Save(ctx, s); err != nil {
		return nil, err
	}

	token, err := c.jwtService.GenerateToken(s.ID())
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	return &StartedSession{
		ID:        s.ID(),
		Token:     token,
		ExpiresIn: c.jwtService.TokenDuration(),
	}, nil
}

func (c *sessionCommandsImpl) SelectStadium(ctx context.Context, id uuid.UUID, req reqdto.SelectStadiumRequest) error {
	return c.mutate(ctx, id, func(s *session.Session) error {
		catalog, err := c.stadiums.Catalog(ctx)
		if err != nil {
			return err
		}
		_, err = s.SelectStadium(catalog, req.StadiumID)
		return err
	})
}

func (c *sessionCommandsImpl) Proceed(ctx context.Context, id uuid.UUID) error {
	return c.mutate(ctx, id, func(s *session.Session) error {
		return s.Proceed()
	})
}

func (c *sessionCommandsImpl) SelectDate(ctx context.Context, id uuid.UUID, req reqdto.SelectDateRequest) error {
	date, err := req.ToDomain()
	if err != nil {
		return dateValidationError()
	}
	return c.mutate(ctx, id, func(s *session.Session) error {
		if _, err := s.BookingStadiumID(); err != nil {
			return err
		}
		return s.Form().SelectDate(date, c.availability.Today())
	})
}

func (c *sessionCommandsImpl) ChooseSlot(ctx context.Context, id uuid.UUID, req reqdto.ChooseSlotRequest) error {
	slot, err := req.ToDomain()
	if err != nil {
		return &booking.ValidationError{Fields: map[string]string{"slot": "is not a bookable time slot"}}
	}
	return c.mutate(ctx, id, func(s *session.Session) error {
		stadiumID, err := s.BookingStadiumID()
		if err != nil {
			return err
		}
		form := s.Form()
		if form.Date().IsZero() {
			return booking.ErrNoDateSelected
		}
		taken, err := c.availability.TakenSlots(ctx, stadiumID, form.Date())
		if err != nil {
			return err
		}
		return form.ChooseSlot(slot, taken)
	})
}

func (c *sessionCommandsImpl) UpdateContact(ctx context.Context, id uuid.UUID, req reqdto.UpdateContactRequest) error {
	contact := req.ToDomain(c.defaultPrefix)
	return c.mutate(ctx, id, func(s *session.Session) error {
		if _, err := s.BookingStadiumID(); err != nil {
			return err
		}
		return s.Form().UpdateContact(contact)
	})
}

// Submit holds the session's submit lock for the whole two-phase call, so a
// second submit on the same session is refused while the first is in flight.
func (c *sessionCommandsImpl) Submit(ctx context.Context, id uuid.UUID, idempotencyKey uuid.UUID) (*BookingResult, error) {
	unlock, err := c.guard.lock(ctx, submitLockKey(id))
	if err != nil {
		return nil, err
	}
	defer unlock()

	// the key is scoped to the session, whose form is reset after success
	return c.guard.run(ctx, sessionSubmitKey(id, idempotencyKey), id.String(), func() (*BookingResult, error) {
		return c.submit(ctx, id)
	})
}

func (c *sessionCommandsImpl) submit(ctx context.Context, id uuid.UUID) (*BookingResult, error) {
	s, err := c.sessions.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	stadiumID, err := s.BookingStadiumID()
	if err != nil {
		return nil, err
	}

	form := s.Form()
	if form.IsSubmitting() {
		// left behind by an attempt that never saved its outcome; the lock
		// guarantees nothing else is in flight
		c.logger.Warn("recovering stale submitting state", slog.String("session_id", id.String()))
		if err := form.FailSubmit(); err != nil {
			return nil, err
		}
	}

	sub, err := form.BeginSubmit(stadiumID, c.availability.Today())
	if err != nil {
		return nil, err
	}
	if err := c.save(ctx, s); err != nil {
		return nil, err
	}

	result, submitErr := c.bookings.Submit(ctx, sub, s.ID())

	// the backend outcome is final; persist it even if the client went away
	saveCtx := context.WithoutCancel(ctx)
	if submitErr != nil {
		if err := form.FailSubmit(); err != nil {
			return nil, err
		}
		c.saveOutcome(saveCtx, s)
		return nil, submitErr
	}

	if err := form.CompleteSubmit(); err != nil {
		return nil, err
	}
	c.saveOutcome(saveCtx, s)
	return result, nil
}

// saveOutcome logs instead of failing: the booking already happened or
// already failed, and the client must see that result.
func (c *sessionCommandsImpl) saveOutcome(ctx context.Context, s *session.Session) {
	if err := c.save(ctx, s); err != nil {
		c.logger.Error("failed to save session after submission",
			slog.String("session_id", s.ID().String()),
			slog.String("form_state", string(s.Form().State())),
			slog.String("error", err.Error()),
		)
	}
}

func (c *sessionCommandsImpl) mutate(ctx context.Context, id uuid.UUID, fn func(s *session.Session) error) error {
	s, err := c.sessions.Find(ctx, id)
	if err != nil {
		return err
	}
	if err := fn(s); err != nil {
		return err
	}
	return c.save(ctx, s)
}

func (c *sessionCommandsImpl) save(ctx context.Context, s *session.Session) error {
	s.Touch(c.clock.Now())
	return c.sessions.Save(ctx, s)
}

func dateValidationError() error {
	return &booking.ValidationError{Fields: map[string]string{"date": "must be a date in YYYY-MM-DD format"}}
}
