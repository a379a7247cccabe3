package admin

import (
	"context"
	"strings"
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

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) ListByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) GenerateScopedToken(userID int64, purpose jwt.Purpose, ttl time.Duration) (string, error) {
	args := m.Called(userID, purpose, ttl)
	return args.String(0), args.Error(1)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	args := m.Called(ctx, to, subject, htmlBody)
	return args.Error(0)
}

func TestService_InviteUser(t *testing.T) {
	users := new(mockUserRepo)
	tokens := new(mockTokenService)
	mail := new(mockMailer)

	users.On("ExistsByEmail", mock.Anything, "new@example.com").Return(false, nil)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "new@example.com" &&
			u.Role == domain.RoleUser &&
			u.Status == domain.StatusPending &&
			!u.IsActive &&
			strings.HasPrefix(u.Username, "new_")
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.User).ID = 42
	}).Return(nil)
	tokens.On("GenerateScopedToken", int64(42), jwt.PurposeInvite, 24*time.Hour).
		Return("invite-token", nil)
	mail.On("Send", mock.Anything, "new@example.com", "You're invited", mock.MatchedBy(func(body string) bool {
		return strings.Contains(body, "register/invite-token")
	})).Return(nil)

	service := NewService(users, tokens, mail, "http://localhost:8080", 24*time.Hour)

	user, err := service.InviteUser(context.Background(), InviteUserRequest{Email: "New@Example.com"})

	assert.NoError(t, err)
	assert.Equal(t, int64(42), user.ID)
	assert.Equal(t, domain.StatusPending, user.Status)
	users.AssertExpectations(t)
	mail.AssertExpectations(t)
}

func TestService_InviteUser_EmailTaken(t *testing.T) {
	users := new(mockUserRepo)

	users.On("ExistsByEmail", mock.Anything, "taken@example.com").Return(true, nil)

	service := NewService(users, new(mockTokenService), new(mockMailer), "http://localhost:8080", 24*time.Hour)

	_, err := service.InviteUser(context.Background(), InviteUserRequest{Email: "taken@example.com"})

	assert.ErrorIs(t, err, ErrEmailTaken)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_ListUsers_StripsPasswordHashes(t *testing.T) {
	users := new(mockUserRepo)

	users.On("ListByRole", mock.Anything, domain.RoleUser).Return([]domain.User{
		{ID: 1, Email: "a@example.com", PasswordHash: "secret"},
		{ID: 2, Email: "b@example.com", PasswordHash: "secret"},
	}, nil)

	service := NewService(users, new(mockTokenService), new(mockMailer), "http://localhost:8080", 24*time.Hour)

	out, err := service.ListUsers(context.Background())

	assert.NoError(t, err)
	assert.Len(t, out, 2)
	for _, u := range out {
		assert.Empty(t, u.PasswordHash)
	}
}

func TestService_EditUser_RehashesPassword(t *testing.T) {
	users := new(mockUserRepo)

	existing := &domain.User{ID: 1, Email: "a@example.com", Username: "a", Role: domain.RoleUser}
	users.On("GetByID", mock.Anything, int64(1)).Return(existing, nil)
	users.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("fresh-password")) == nil
	})).Return(nil)

	service := NewService(users, new(mockTokenService), new(mockMailer), "http://localhost:8080", 24*time.Hour)

	pw := "fresh-password"
	user, err := service.EditUser(context.Background(), 1, EditUserRequest{Password: &pw})

	assert.NoError(t, err)
	assert.Empty(t, user.PasswordHash)
	users.AssertExpectations(t)
}

func TestService_EditUser_ShortPasswordRejected(t *testing.T) {
	users := new(mockUserRepo)

	users.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1}, nil)

	service := NewService(users, new(mockTokenService), new(mockMailer), "http://localhost:8080", 24*time.Hour)

	pw := "short"
	_, err := service.EditUser(context.Background(), 1, EditUserRequest{Password: &pw})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_EditUser_EmailConflict(t *testing.T) {
	users := new(mockUserRepo)

	users.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1, Email: "old@example.com"}, nil)
	users.On("ExistsByEmail", mock.Anything, "taken@example.com").Return(true, nil)

	service := NewService(users, new(mockTokenService), new(mockMailer), "http://localhost:8080", 24*time.Hour)

	email := "taken@example.com"
	_, err := service.EditUser(context.Background(), 1, EditUserRequest{Email: &email})

	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestService_EditUser_NotFound(t *testing.T) {
	users := new(mockUserRepo)

	users.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(users, new(mockTokenService), new(mockMailer), "http://localhost:8080", 24*time.Hour)

	_, err := service.EditUser(context.Background(), 404, EditUserRequest{})

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestService_DeleteUser(t *testing.T) {
	users := new(mockUserRepo)

	users.On("Delete", mock.Anything, int64(1)).Return(nil)

	service := NewService(users, new(mockTokenService), new(mockMailer), "http://localhost:8080", 24*time.Hour)

	assert.NoError(t, service.DeleteUser(context.Background(), 1))
}

func TestService_DeleteUser_NotFound(t *testing.T) {
	users := new(mockUserRepo)

	users.On("Delete", mock.Anything, int64(404)).Return(gorm.ErrRecordNotFound)

	service := NewService(users, new(mockTokenService), new(mockMailer), "http://localhost:8080", 24*time.Hour)

	assert.ErrorIs(t, service.DeleteUser(context.Background(), 404), ErrUserNotFound)
}
