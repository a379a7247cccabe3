package auth

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
	users    UserRepository
	jwt      TokenService
	mailer   Mailer
	baseURL  string
	resetTTL time.Duration
}

func NewService(users UserRepository, tokens TokenService, mailer Mailer, baseURL string, resetTTL time.Duration) *Service {
	return &Service{
		users:    users,
		jwt:      tokens,
		mailer:   mailer,
		baseURL:  strings.TrimRight(baseURL, "/"),
		resetTTL: resetTTL,
	}
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive || user.Status != domain.StatusActive {
		return nil, ErrAccountInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return &LoginResponse{User: user, Token: token}, nil
}

// CompleteRegistration activates a pending user created by an admin invite.
// The invite token is single-purpose and expires with the invite TTL.
func (s *Service) CompleteRegistration(ctx context.Context, token string, req CompleteRegistrationRequest) (*LoginResponse, error) {
	claims, err := s.jwt.ValidateScopedToken(token, jwt.PurposeInvite)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if req.Password != req.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if user.Status != domain.StatusPending {
		return nil, ErrAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user.Username = req.Username
	user.FullName = req.FullName
	user.PasswordHash = string(hash)
	user.Status = domain.StatusActive
	user.IsActive = true
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	accessToken, err := s.jwt.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return &LoginResponse{User: user, Token: accessToken}, nil
}

// ForgotPassword emails a reset link. A missing account is reported the same
// as a successful send so the endpoint cannot be used to probe emails.
func (s *Service) ForgotPassword(ctx context.Context, req ForgotPasswordRequest) error {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if !user.IsActive {
		return nil
	}

	token, err := s.jwt.GenerateScopedToken(user.ID, jwt.PurposeReset, s.resetTTL)
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s/reset-password/%s", s.baseURL, token)
	body := fmt.Sprintf(
		"<p>Hello %s,</p><p>Follow the link below to reset your password. The link expires in %s.</p><p><a href=%q>Reset password</a></p>",
		user.FullName, s.resetTTL, link,
	)
	return s.mailer.Send(ctx, user.Email, "Password reset", body)
}

func (s *Service) ResetPassword(ctx context.Context, token string, req ResetPasswordRequest) error {
	claims, err := s.jwt.ValidateScopedToken(token, jwt.PurposeReset)
	if err != nil {
		return ErrInvalidToken
	}

	if req.Password != req.ConfirmPassword {
		return ErrPasswordMismatch
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidToken
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.PasswordHash = string(hash)
	return s.users.Update(ctx, user)
}

func (s *Service) GetCurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}
