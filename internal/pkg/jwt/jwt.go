package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// Purpose scopes a token to the flow that issued it, so an invite token can
// never be replayed as a session or password-reset token.
type Purpose string

const (
	PurposeAccess Purpose = "access"
	PurposeInvite Purpose = "invite"
	PurposeReset  Purpose = "reset"
)

type Service struct {
	secret []byte
	ttl    time.Duration
}

type Claims struct {
	UserID  int64   `json:"user_id"`
	Role    string  `json:"role"`
	Purpose Purpose `json:"purpose,omitempty"`
	jwtlib.RegisteredClaims
}

func New(secret string, ttl time.Duration) *Service {
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

func (s *Service) GenerateToken(userID int64, role string) (string, error) {
	return s.generate(userID, role, PurposeAccess, s.ttl)
}

// GenerateScopedToken issues a single-purpose token (invite, reset) with its
// own lifetime.
func (s *Service) GenerateScopedToken(userID int64, purpose Purpose, ttl time.Duration) (string, error) {
	return s.generate(userID, "", purpose, ttl)
}

func (s *Service) generate(userID int64, role string, purpose Purpose, ttl time.Duration) (string, error) {
	claims := Claims{
		UserID:  userID,
		Role:    role,
		Purpose: purpose,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwtlib.NewNumericDate(time.Now()),
		},
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Service) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	return claims, nil
}

// ValidateScopedToken validates and additionally checks the token purpose.
// Legacy access tokens have no purpose claim, so PurposeAccess accepts both.
func (s *Service) ValidateScopedToken(tokenStr string, purpose Purpose) (*Claims, error) {
	claims, err := s.ValidateToken(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.Purpose != purpose && !(purpose == PurposeAccess && claims.Purpose == "") {
		return nil, errors.New("token purpose mismatch")
	}
	return claims, nil
}
