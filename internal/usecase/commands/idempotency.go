package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"arenahub-booking/internal/domain/booking"
	"arenahub-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrIdempotencyKeyReused   = errs.New("idempotency key reused with a different request")
	ErrIdempotencyCheckFailed = errs.New("idempotency check failed")
)

// submissionGuard runs a submission at most once per Idempotency-Key and
// serialises submits on one session.
type submissionGuard struct {
	store     IdempotencyStore
	lockTTL   time.Duration
	resultTTL time.Duration
	logger    *slog.Logger
}

func (g submissionGuard) lock(ctx context.Context, key string) (func(), error) {
	claimed, err := g.store.Claim(ctx, key, IdempotencyRecord{Status: IdempotencyProcessing}, g.lockTTL)
	if err != nil {
		return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}
	if !claimed {
		return nil, booking.ErrSubmissionInProgress
	}
	return func() { g.release(ctx, key) }, nil
}

// run replays the stored result when key already completed. An empty key
// runs fn unguarded. A failed fn releases the key so the client can retry.
func (g submissionGuard) run(ctx context.Context, key, requestHash string, fn func() (*BookingResult, error)) (*BookingResult, error) {
	if key == "" {
		return fn()
	}

	claimed, err := g.store.Claim(ctx, key, IdempotencyRecord{
		Status:      IdempotencyProcessing,
		RequestHash: requestHash,
	}, g.lockTTL)
	if err != nil {
		return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}
	if !claimed {
		return g.replay(ctx, key, requestHash)
	}

	result, err := fn()
	if err != nil {
		g.release(ctx, key)
		return nil, err
	}

	err = g.store.Put(context.WithoutCancel(ctx), key, IdempotencyRecord{
		Status:      IdempotencyCompleted,
		RequestHash: requestHash,
		Result:      result,
	}, g.resultTTL)
	if err != nil {
		g.logger.Error("failed to store idempotency result",
			slog.String("idempotency_key", key),
			slog.String("error", err.Error()),
		)
	}
	return result, nil
}

func (g submissionGuard) replay(ctx context.Context, key, requestHash string) (*BookingResult, error) {
	rec, err := g.store.Get(ctx, key)
	if err != nil {
		return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}
	if rec == nil {
		// expired between Claim and Get
		return nil, booking.ErrSubmissionInProgress
	}
	if rec.RequestHash != requestHash {
		return nil, ErrIdempotencyKeyReused
	}

	switch rec.Status {
	case IdempotencyCompleted:
		if rec.Result == nil {
			return nil, errs.Mark(errs.Newf("idempotency key %s completed without a result", key), ErrIdempotencyCheckFailed)
		}
		g.logger.Info("replaying booking result", slog.String("idempotency_key", key))
		return rec.Result, nil
	case IdempotencyProcessing:
		return nil, booking.ErrSubmissionInProgress
	default:
		return nil, errs.Mark(errs.Newf("idempotency key %s has unknown status %q", key, rec.Status), ErrIdempotencyCheckFailed)
	}
}

func (g submissionGuard) release(ctx context.Context, key string) {
	if err := g.store.Release(context.WithoutCancel(ctx), key); err != nil {
		g.logger.Warn("failed to release idempotency key",
			slog.String("idempotency_key", key),
			slog.String("error", err.Error()),
		)
	}
}

func bookingKey(key uuid.UUID) string {
	if key == uuid.Nil {
		return ""
	}
	return "booking:" + key.String()
}

func sessionSubmitKey(sessionID, key uuid.UUID) string {
	if key == uuid.Nil {
		return ""
	}
	return "session:" + sessionID.String() + ":" + key.String()
}

func submitLockKey(sessionID uuid.UUID) string {
	return "lock:session:" + sessionID.String()
}

func submissionHash(sub booking.Submission) string {
	data, _ := json.Marshal(struct {
		StadiumID int64  `json:"stadiumID"`
		Date      string `json:"date"`
		Slot      string `json:"slot"`
		Name      string `json:"name"`
		Phone     string `json:"phone"`
		Email     string `json:"email"`
	}{sub.StadiumID, sub.Date.String(), sub.Slot.String(), sub.Contact.Name, sub.Contact.FullPhone(), sub.Contact.Email})
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
