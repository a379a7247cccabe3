package auth

import (
	"context"
	"testing"
	"time"

	"flexspaces/internal/domain"
	"flexspaces/internal/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) GenerateToken(userID int64, role string) (string, error) {
	args := m.Called(userID, role)
	return args.String(0), args.Error(1)
}

func (m *mockTokenService) GenerateScopedToken(userID int64, purpose jwt.Purpose, ttl time.Duration) (string, error) {
	args := m.Called(userID, purpose, ttl)
	return args.String(0), args.Error(1)
}

func (m *mockTokenService) ValidateScopedToken(tokenStr string, purpose jwt.Purpose) (*jwt.Claims, error) {
	args := m.Called(tokenStr, purpose)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jwt.Claims), args.Error(1)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	args := m.Called(ctx, to, subject, htmlBody)
	return args.Error(0)
}

func activeUser(password string) *domain.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return &domain.User{
		ID:           10,
		Email:        "user@example.com",
		PasswordHash: string(hash),
		Username:     "user10",
		FullName:     "Test User",
		Role:         domain.RoleUser,
		Status:       domain.StatusActive,
		IsActive:     true,
	}
}

func TestService_Login_Success(t *testing.T) {
	users := new(mockUserRepo)
	tokens := new(mockTokenService)

	users.On("GetByEmail", mock.Anything, "user@example.com").Return(activeUser("password123"), nil)
	tokens.On("GenerateToken", int64(10), "user").Return("login-token", nil)

	service := NewService(users, tokens, new(mockMailer), "http://localhost:8080", 15*time.Minute)

	res, err := service.Login(context.Background(), LoginRequest{
		Email:    "user@example.com",
		Password: "password123",
	})

	assert.NoError(t, err)
	assert.Equal(t, "login-token", res.Token)
	assert.Empty(t, res.User.PasswordHash)
}

func TestService_Login_WrongPassword(t *testing.T) {
	users := new(mockUserRepo)

	users.On("GetByEmail", mock.Anything, "user@example.com").Return(activeUser("password123"), nil)

	service := NewService(users, new(mockTokenService), new(mockMailer), "http://localhost:8080", 15*time.Minute)

	_, err := service.Login(context.Background(), LoginRequest{
		Email:    "user@example.com",
		Password: "not-the-password",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_UnknownEmail(t *testing.T) {
	users := new(mockUserRepo)

	users.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)

	service := NewService(users, new(mockTokenService), new(mockMailer), "http://localhost:8080", 15*time.Minute)

	_, err := service.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_PendingAccountRejected(t *testing.T) {
	users := new(mockUserRepo)

	pending := activeUser("password123")
	pending.Status = domain.StatusPending
	pending.IsActive = false
	users.On("GetByEmail", mock.Anything, "user@example.com").Return(pending, nil)

	service := NewService(users, new(mockTokenService), new(mockMailer), "http://localhost:8080", 15*time.Minute)

	_, err := service.Login(context.Background(), LoginRequest{
		Email:    "user@example.com",
		Password: "password123",
	})

	assert.ErrorIs(t, err, ErrAccountInactive)
}

func TestService_CompleteRegistration_ActivatesPendingUser(t *testing.T) {
	users := new(mockUserRepo)
	tokens := new(mockTokenService)

	pending := &domain.User{
		ID:       10,
		Email:    "invited@example.com",
		Username: "invited_123",
		Role:     domain.RoleUser,
		Status:   domain.StatusPending,
	}
	tokens.On("ValidateScopedToken", "invite-token", jwt.PurposeInvite).
		Return(&jwt.Claims{UserID: 10, Purpose: jwt.PurposeInvite}, nil)
	users.On("GetByID", mock.Anything, int64(10)).Return(pending, nil)
	users.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Status == domain.StatusActive && u.IsActive &&
			u.Username == "newname" && u.PasswordHash != ""
	})).Return(nil)
	tokens.On("GenerateToken", int64(10), "user").Return("session-token", nil)

	service := NewService(users, tokens, new(mockMailer), "http://localhost:8080", 15*time.Minute)

	res, err := service.CompleteRegistration(context.Background(), "invite-token", CompleteRegistrationRequest{
		Username:        "newname",
		FullName:        "Invited User",
		Password:        "password123",
		ConfirmPassword: "password123",
	})

	assert.NoError(t, err)
	assert.Equal(t, "session-token", res.Token)
	users.AssertExpectations(t)
}

func TestService_CompleteRegistration_InvalidToken(t *testing.T) {
	tokens := new(mockTokenService)

	tokens.On("ValidateScopedToken", "bad-token", jwt.PurposeInvite).
		Return(nil, assert.AnError)

	service := NewService(new(mockUserRepo), tokens, new(mockMailer), "http://localhost:8080", 15*time.Minute)

	_, err := service.CompleteRegistration(context.Background(), "bad-token", CompleteRegistrationRequest{
		Username: "x", FullName: "X", Password: "password123", ConfirmPassword: "password123",
	})

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_CompleteRegistration_AlreadyActive(t *testing.T) {
	users := new(mockUserRepo)
	tokens := new(mockTokenService)

	tokens.On("ValidateScopedToken", "invite-token", jwt.PurposeInvite).
		Return(&jwt.Claims{UserID: 10, Purpose: jwt.PurposeInvite}, nil)
	users.On("GetByID", mock.Anything, int64(10)).Return(activeUser("pw"), nil)

	service := NewService(users, tokens, new(mockMailer), "http://localhost:8080", 15*time.Minute)

	_, err := service.CompleteRegistration(context.Background(), "invite-token", CompleteRegistrationRequest{
		Username: "x", FullName: "X", Password: "password123", ConfirmPassword: "password123",
	})

	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestService_CompleteRegistration_PasswordMismatch(t *testing.T) {
	tokens := new(mockTokenService)

	tokens.On("ValidateScopedToken", "invite-token", jwt.PurposeInvite).
		Return(&jwt.Claims{UserID: 10, Purpose: jwt.PurposeInvite}, nil)

	service := NewService(new(mockUserRepo), tokens, new(mockMailer), "http://localhost:8080", 15*time.Minute)

	_, err := service.CompleteRegistration(context.Background(), "invite-token", CompleteRegistrationRequest{
		Username: "x", FullName: "X", Password: "password123", ConfirmPassword: "different",
	})

	assert.ErrorIs(t, err, ErrPasswordMismatch)
}

func TestService_ForgotPassword_SendsResetLink(t *testing.T) {
	users := new(mockUserRepo)
	tokens := new(mockTokenService)
	mail := new(mockMailer)

	users.On("GetByEmail", mock.Anything, "user@example.com").Return(activeUser("pw"), nil)
	tokens.On("GenerateScopedToken", int64(10), jwt.PurposeReset, 15*time.Minute).
		Return("reset-token", nil)
	mail.On("Send", mock.Anything, "user@example.com", "Password reset", mock.MatchedBy(func(body string) bool {
		return len(body) > 0
	})).Return(nil)

	service := NewService(users, tokens, mail, "http://localhost:8080", 15*time.Minute)

	err := service.ForgotPassword(context.Background(), ForgotPasswordRequest{Email: "user@example.com"})

	assert.NoError(t, err)
	mail.AssertExpectations(t)
}

func TestService_ForgotPassword_UnknownEmailSilent(t *testing.T) {
	users := new(mockUserRepo)
	mail := new(mockMailer)

	users.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)

	service := NewService(users, new(mockTokenService), mail, "http://localhost:8080", 15*time.Minute)

	err := service.ForgotPassword(context.Background(), ForgotPasswordRequest{Email: "nobody@example.com"})

	assert.NoError(t, err)
	mail.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_ResetPassword_UpdatesHash(t *testing.T) {
	users := new(mockUserRepo)
	tokens := new(mockTokenService)

	user := activeUser("old-password")
	tokens.On("ValidateScopedToken", "reset-token", jwt.PurposeReset).
		Return(&jwt.Claims{UserID: 10, Purpose: jwt.PurposeReset}, nil)
	users.On("GetByID", mock.Anything, int64(10)).Return(user, nil)
	users.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("new-password1")) == nil
	})).Return(nil)

	service := NewService(users, tokens, new(mockMailer), "http://localhost:8080", 15*time.Minute)

	err := service.ResetPassword(context.Background(), "reset-token", ResetPasswordRequest{
		Password:        "new-password1",
		ConfirmPassword: "new-password1",
	})

	assert.NoError(t, err)
	users.AssertExpectations(t)
}

func TestService_ResetPassword_AccessTokenRejected(t *testing.T) {
	tokens := new(mockTokenService)

	// A session token must not pass the reset purpose check.
	tokens.On("ValidateScopedToken", "access-token", jwt.PurposeReset).
		Return(nil, assert.AnError)

	service := NewService(new(mockUserRepo), tokens, new(mockMailer), "http://localhost:8080", 15*time.Minute)

	err := service.ResetPassword(context.Background(), "access-token", ResetPasswordRequest{
		Password:        "new-password1",
		ConfirmPassword: "new-password1",
	})

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_GetCurrentUser(t *testing.T) {
	users := new(mockUserRepo)

	users.On("GetByID", mock.Anything, int64(10)).Return(activeUser("pw"), nil)

	service := NewService(users, new(mockTokenService), new(mockMailer), "http://localhost:8080", 15*time.Minute)

	user, err := service.GetCurrentUser(context.Background(), 10)

	assert.NoError(t, err)
	assert.Equal(t, "user@example.com", user.Email)
	assert.Empty(t, user.PasswordHash)
}
