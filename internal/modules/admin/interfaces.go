package admin

import (
	"context"
	"time"

	"flexspaces/internal/domain"
	"flexspaces/internal/pkg/jwt"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ListByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id int64) error
}

type TokenService interface {
	GenerateScopedToken(userID int64, purpose jwt.Purpose, ttl time.Duration) (string, error)
}

type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}
