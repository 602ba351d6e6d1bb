package infra

import (
	"errors"
	"log/slog"

	"arenahub-booking/internal/pkg/errs"
)

type GatewayErrorKind string

// GatewayError describes a failure talking to an external collaborator:
// the booking backend, Redis or the ledger database.
type GatewayError struct {
	Kind GatewayErrorKind
	msg  string
	err  error // wrapped low-level error
}

func (e GatewayError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e GatewayError) Unwrap() error {
	return e.err
}

// WrapGatewayErr logs the failure and marks it with the shared sentinel for
// its kind so upper layers can match with errs.Is.
func WrapGatewayErr(slogger *slog.Logger, kind GatewayErrorKind, msg string, err error) error {
	logArgs := []any{
		slog.String("kind", string(kind)),
	}
	if err != nil {
		logArgs = append(logArgs, slog.String("cause", err.Error()))
	}

	slogger.Error("Gateway error: "+msg, logArgs...)

	if err != nil {
		err = errs.Wrap(err, msg)
	}

	gerr := GatewayError{Kind: kind, msg: msg, err: err}
	if sentinel := kind.sentinel(); sentinel != nil {
		return errs.Mark(gerr, sentinel)
	}
	return gerr
}

func IsKind(err error, kind GatewayErrorKind) bool {
	var e GatewayError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

func (k GatewayErrorKind) sentinel() error {
	switch k {
	case KindNotFound:
		return errs.ErrBackendNotFound
	case KindUnavailable, KindDecode:
		return errs.ErrBackendUnavailable
	case KindRejected:
		return errs.ErrBackendRejected
	case KindDBFailure:
		return errs.ErrLedgerWriteFailed
	default:
		return nil
	}
}

const (
	KindNotFound    GatewayErrorKind = "NOT_FOUND"
	KindUnavailable GatewayErrorKind = "UNAVAILABLE"
	KindRejected    GatewayErrorKind = "REJECTED"
	KindDecode      GatewayErrorKind = "DECODE"
	KindCache       GatewayErrorKind = "CACHE_FAILURE"
	KindDBFailure   GatewayErrorKind = "DB_FAILURE"
)
