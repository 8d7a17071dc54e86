package authservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/smmpanel/internal/domain"
	"github.com/GlebRadaev/smmpanel/pkg/auth"
)

func NewMock(t *testing.T) (*Service, *MockRepo, *auth.MockHashServiceInterface, *auth.MockJWTServiceInterface) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	hashService := auth.NewMockHashServiceInterface(ctrl)
	jwtService := auth.NewMockJWTServiceInterface(ctrl)

	service := New(repo, hashService, jwtService, time.Hour)
	return service, repo, hashService, jwtService
}

func TestLogin(t *testing.T) {
	service, userRepo, hasher, _ := NewMock(t)
	admin := &domain.User{ID: "a1", Username: "admin", PasswordHash: "hash", Role: domain.RoleAdmin, IsActive: true}
	disabled := &domain.User{ID: "u2", Username: "user2", PasswordHash: "hash", Role: domain.RoleUser}

	tests := []struct {
		name          string
		username      string
		role          string
		prepareMock   func()
		expectedUser  *domain.User
		expectedError error
	}{
		{
			name:     "Successful login",
			username: "admin",
			role:     domain.RoleAdmin,
			prepareMock: func() {
				userRepo.EXPECT().FindByUsername(gomock.Any(), "admin").Return(admin, nil)
				hasher.EXPECT().ComparePassword("hash", "secret").Return(true)
			},
			expectedUser: admin,
		},
		{
			name:     "Wrong role",
			username: "admin",
			role:     domain.RoleUser,
			prepareMock: func() {
				userRepo.EXPECT().FindByUsername(gomock.Any(), "admin").Return(admin, nil)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:     "Unknown user",
			username: "ghost",
			role:     domain.RoleUser,
			prepareMock: func() {
				userRepo.EXPECT().FindByUsername(gomock.Any(), "ghost").Return(nil, nil)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:     "Wrong password",
			username: "admin",
			role:     domain.RoleAdmin,
			prepareMock: func() {
				userRepo.EXPECT().FindByUsername(gomock.Any(), "admin").Return(admin, nil)
				hasher.EXPECT().ComparePassword("hash", "secret").Return(false)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:     "Disabled account",
			username: "user2",
			role:     domain.RoleUser,
			prepareMock: func() {
				userRepo.EXPECT().FindByUsername(gomock.Any(), "user2").Return(disabled, nil)
				hasher.EXPECT().ComparePassword("hash", "secret").Return(true)
			},
			expectedError: ErrUserInactive,
		},
		{
			name:     "Storage error",
			username: "admin",
			role:     domain.RoleAdmin,
			prepareMock: func() {
				userRepo.EXPECT().FindByUsername(gomock.Any(), "admin").Return(nil, errors.New("db error"))
			},
			expectedError: domain.ErrStorage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			user, err := service.Login(context.Background(), tt.username, "secret", tt.role)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedUser, user)
			}
		})
	}
}

func TestGenerateToken(t *testing.T) {
	service, _, _, jwtService := NewMock(t)

	jwtService.EXPECT().GenerateJWT("a1", domain.RoleAdmin, gomock.Any()).Return("token", nil)
	token, expires, err := service.GenerateToken("a1", domain.RoleAdmin)
	assert.NoError(t, err)
	assert.Equal(t, "token", token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, time.Minute)

	jwtService.EXPECT().GenerateJWT("a1", domain.RoleAdmin, gomock.Any()).Return("", errors.New("sign error"))
	_, _, err = service.GenerateToken("a1", domain.RoleAdmin)
	assert.Error(t, err)
}

func TestCreateUser(t *testing.T) {
	service, userRepo, hasher, _ := NewMock(t)
	ctx := context.Background()

	userRepo.EXPECT().FindByUsername(gomock.Any(), "user1").Return(nil, nil)
	hasher.EXPECT().HashPassword("secret1").Return("hashed", nil)
	userRepo.EXPECT().Create(gomock.Any(), gomock.Any(), 0.0).DoAndReturn(func(_ context.Context, user *domain.User, _ float64) (*domain.User, error) {
		return user, nil
	})

	user, err := service.CreateUser(ctx, "user1@smmpanel.com", "user1", "secret1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.True(t, user.IsActive)
	assert.Equal(t, "hashed", user.PasswordHash)
	_, err = uuid.Parse(user.ID)
	assert.NoError(t, err)

	userRepo.EXPECT().FindByUsername(gomock.Any(), "user1").Return(user, nil)
	_, err = service.CreateUser(ctx, "user1@smmpanel.com", "user1", "secret1")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestCreateAdmin_Existing(t *testing.T) {
	service, userRepo, _, _ := NewMock(t)
	existing := &domain.User{ID: "a1", Username: "admin", Role: domain.RoleAdmin}

	userRepo.EXPECT().FindByUsername(gomock.Any(), "admin").Return(existing, nil).Times(2)

	user, err := service.CreateAdmin(context.Background(), "admin@smmpanel.com", "admin", "admin123", 1000)
	assert.NoError(t, err)
	assert.Equal(t, existing, user)
}

func TestMe(t *testing.T) {
	service, userRepo, _, _ := NewMock(t)
	ctx := context.Background()

	userRepo.EXPECT().FindByID(gomock.Any(), "u1").Return(&domain.User{ID: "u1", IsActive: true}, nil)
	user, err := service.Me(ctx, "u1")
	assert.NoError(t, err)
	assert.Equal(t, "u1", user.ID)

	userRepo.EXPECT().FindByID(gomock.Any(), "u2").Return(nil, nil)
	_, err = service.Me(ctx, "u2")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	userRepo.EXPECT().FindByID(gomock.Any(), "u3").Return(&domain.User{ID: "u3"}, nil)
	_, err = service.Me(ctx, "u3")
	assert.ErrorIs(t, err, ErrUserInactive)
}

func TestUserManagement(t *testing.T) {
	service, userRepo, _, _ := NewMock(t)
	ctx := context.Background()

	assert.ErrorIs(t, service.DeleteUser(ctx, "a1", "a1"), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.SetActive(ctx, "a1", "a1", false), domain.ErrInvalidInput)

	userRepo.EXPECT().Delete(gomock.Any(), "u1").Return(nil)
	assert.NoError(t, service.DeleteUser(ctx, "a1", "u1"))

	userRepo.EXPECT().Delete(gomock.Any(), "u9").Return(domain.ErrNotFound)
	assert.ErrorIs(t, service.DeleteUser(ctx, "a1", "u9"), domain.ErrNotFound)

	userRepo.EXPECT().SetActive(gomock.Any(), "u1", false).Return(errors.New("db error"))
	assert.ErrorIs(t, service.SetActive(ctx, "a1", "u1", false), domain.ErrStorage)

	userRepo.EXPECT().ListWithBalances(gomock.Any()).Return([]domain.UserWithBalance{{User: domain.User{ID: "u1"}, Balance: 300}}, nil)
	users, err := service.ListUsers(ctx)
	assert.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestCheckSession(t *testing.T) {
	service, userRepo, _, _ := NewMock(t)
	claims := &auth.Claims{UserID: "u1", Role: domain.RoleUser}

	tests := []struct {
		name          string
		prepareMock   func()
		expectedError error
	}{
		{
			name: "Active user",
			prepareMock: func() {
				userRepo.EXPECT().FindByID(gomock.Any(), "u1").
					Return(&domain.User{ID: "u1", Role: domain.RoleUser, IsActive: true}, nil)
			},
		},
		{
			name: "Deleted user",
			prepareMock: func() {
				userRepo.EXPECT().FindByID(gomock.Any(), "u1").Return(nil, nil)
			},
			expectedError: auth.ErrSessionRevoked,
		},
		{
			name: "Disabled user",
			prepareMock: func() {
				userRepo.EXPECT().FindByID(gomock.Any(), "u1").
					Return(&domain.User{ID: "u1", Role: domain.RoleUser}, nil)
			},
			expectedError: auth.ErrSessionRevoked,
		},
		{
			name: "Role changed",
			prepareMock: func() {
				userRepo.EXPECT().FindByID(gomock.Any(), "u1").
					Return(&domain.User{ID: "u1", Role: domain.RoleAdmin, IsActive: true}, nil)
			},
			expectedError: auth.ErrSessionRevoked,
		},
		{
			name: "Storage error",
			prepareMock: func() {
				userRepo.EXPECT().FindByID(gomock.Any(), "u1").Return(nil, errors.New("db down"))
			},
			expectedError: domain.ErrStorage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			err := service.CheckSession(context.Background(), claims)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			assert.NoError(t, err)
		})
	}
}
