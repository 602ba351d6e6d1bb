//go:generate mockgen -destination=../../tests/mock/usecase/usecase.go -package=usecasemock arenahub-booking/internal/usecase TokenValidator

package usecase

import (
	"arenahub-booking/internal/pkg/jwt"

	"github.com/google/uuid"
)

// TokenValidator provides session token validation for middleware
type TokenValidator interface {
	ValidateToken(tokenString string) (uuid.UUID, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (uuid.UUID, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return uuid.Nil, err
	}
	if claims.SessionID == uuid.Nil {
		return uuid.Nil, jwt.ErrInvalidToken
	}
	return claims.SessionID, nil
}
