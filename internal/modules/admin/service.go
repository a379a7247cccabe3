package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"flexspaces/internal/domain"
	"flexspaces/internal/pkg/jwt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service struct {
	users     UserRepository
	jwt       TokenService
	mailer    Mailer
	baseURL   string
	inviteTTL time.Duration
}

func NewService(users UserRepository, tokens TokenService, mailer Mailer, baseURL string, inviteTTL time.Duration) *Service {
	return &Service{
		users:     users,
		jwt:       tokens,
		mailer:    mailer,
		baseURL:   strings.TrimRight(baseURL, "/"),
		inviteTTL: inviteTTL,
	}
}

// InviteUser creates a pending account and emails an invite link. The account
// stays unusable until registration is completed through the link.
func (s *Service) InviteUser(ctx context.Context, req InviteUserRequest) (*domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	user := &domain.User{
		Email:    email,
		Username: placeholderUsername(email),
		Role:     domain.RoleUser,
		Status:   domain.StatusPending,
		IsActive: false,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.jwt.GenerateScopedToken(user.ID, jwt.PurposeInvite, s.inviteTTL)
	if err != nil {
		return nil, err
	}

	link := fmt.Sprintf("%s/register/%s", s.baseURL, token)
	body := fmt.Sprintf(
		"<p>You have been invited to join the coworking booking platform.</p><p>Complete your registration within %s:</p><p><a href=%q>Complete registration</a></p>",
		s.inviteTTL, link,
	)
	if err := s.mailer.Send(ctx, email, "You're invited", body); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.ListByRole(ctx, domain.RoleUser)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

func (s *Service) EditUser(ctx context.Context, id int64, req EditUserRequest) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*req.Email))
		if email != user.Email {
			exists, err := s.users.ExistsByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, ErrEmailTaken
			}
			user.Email = email
		}
	}
	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Password != nil {
		if len(*req.Password) < 8 {
			return nil, ErrValidation
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// placeholderUsername keeps the unique username column satisfied until the
// invitee picks a real one during registration.
func placeholderUsername(email string) string {
	local := email
	if i := strings.IndexByte(email, '@'); i > 0 {
		local = email[:i]
	}
	return fmt.Sprintf("%s_%d", local, time.Now().UnixNano())
}
