package auth

import (
	"context"
	"time"

	"flexspaces/internal/domain"
	"flexspaces/internal/pkg/jwt"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
}

type TokenService interface {
	GenerateToken(userID int64, role string) (string, error)
	GenerateScopedToken(userID int64, purpose jwt.Purpose, ttl time.Duration) (string, error)
	ValidateScopedToken(tokenStr string, purpose jwt.Purpose) (*jwt.Claims, error)
}

type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}
