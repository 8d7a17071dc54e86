package authservice

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GlebRadaev/smmpanel/internal/domain"
	"github.com/GlebRadaev/smmpanel/pkg/auth"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("account is disabled")
	ErrUserExists         = errors.New("username already taken")
)

//go:generate mockgen -source=authservice.go -destination=mock_authservice.go -package=authservice
type Repo interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User, coins float64) (*domain.User, error)
	ListWithBalances(ctx context.Context) ([]domain.UserWithBalance, error)
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

type Service struct {
	userRepo    Repo
	hashService auth.HashServiceInterface
	jwtService  auth.JWTServiceInterface
	tokenTTL    time.Duration
}

func New(repo Repo, hashService auth.HashServiceInterface, jwtService auth.JWTServiceInterface, tokenTTL time.Duration) *Service {
	return &Service{
		userRepo:    repo,
		hashService: hashService,
		jwtService:  jwtService,
		tokenTTL:    tokenTTL,
	}
}

// Login checks the password and that the account has the requested role.
func (s *Service) Login(ctx context.Context, username, password, role string) (*domain.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		zap.L().Error("can't find user", zap.Error(err))
		return nil, domain.Storage(err)
	}
	if user == nil || user.Role != role {
		zap.L().Info("login rejected", zap.String("username", username), zap.String("role", role))
		return nil, ErrInvalidCredentials
	}
	if !s.hashService.ComparePassword(user.PasswordHash, password) {
		zap.L().Info("login rejected", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}
	zap.L().Info("user successfully authenticated", zap.String("username", username), zap.String("role", role))
	return user, nil
}

// Me returns the account behind a session; inactive accounts are rejected.
func (s *Service) Me(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		zap.L().Error("can't find user", zap.Error(err))
		return nil, domain.Storage(err)
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}
	return user, nil
}

// CheckSession rejects tokens whose account was deleted, disabled or had its role changed.
func (s *Service) CheckSession(ctx context.Context, claims *auth.Claims) error {
	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		zap.L().Error("can't find user", zap.Error(err))
		return domain.Storage(err)
	}
	if user == nil || !user.IsActive || user.Role != claims.Role {
		zap.L().Info("session revoked", zap.String("user_id", claims.UserID))
		return auth.ErrSessionRevoked
	}
	return nil
}

func (s *Service) GenerateToken(userID, role string) (string, time.Time, error) {
	expirationTime := time.Now().Add(s.tokenTTL)

	token, err := s.jwtService.GenerateJWT(userID, role, expirationTime)
	if err != nil {
		zap.L().Error("can't generate token", zap.Error(err))
		return "", time.Time{}, err
	}
	return token, expirationTime, nil
}

// CreateUser adds a regular user with an empty coin balance.
func (s *Service) CreateUser(ctx context.Context, email, username, password string) (*domain.User, error) {
	return s.create(ctx, email, username, password, domain.RoleUser, 0)
}

// CreateAdmin is used by the seed tool. An existing username is left untouched.
func (s *Service) CreateAdmin(ctx context.Context, email, username, password string, coins float64) (*domain.User, error) {
	user, err := s.create(ctx, email, username, password, domain.RoleAdmin, coins)
	if errors.Is(err, ErrUserExists) {
		return s.userRepo.FindByUsername(ctx, username)
	}
	return user, err
}

func (s *Service) create(ctx context.Context, email, username, password, role string, coins float64) (*domain.User, error) {
	existing, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		zap.L().Error("can't find user", zap.Error(err))
		return nil, domain.Storage(err)
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	hashedPassword, err := s.hashService.HashPassword(password)
	if err != nil {
		zap.L().Error("can't hash password", zap.Error(err))
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         role,
		IsActive:     true,
	}
	created, err := s.userRepo.Create(ctx, user, coins)
	if err != nil {
		zap.L().Error("can't create user", zap.Error(err))
		return nil, domain.Storage(err)
	}

	zap.L().Info("user created", zap.String("username", username), zap.String("role", role))
	return created, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]domain.UserWithBalance, error) {
	users, err := s.userRepo.ListWithBalances(ctx)
	if err != nil {
		zap.L().Error("can't list users", zap.Error(err))
		return nil, domain.Storage(err)
	}
	return users, nil
}

func (s *Service) SetActive(ctx context.Context, adminID, userID string, active bool) error {
	if adminID == userID && !active {
		return domain.InvalidInput("cannot disable your own account")
	}
	return s.mutate(s.userRepo.SetActive(ctx, userID, active))
}

func (s *Service) DeleteUser(ctx context.Context, adminID, userID string) error {
	if adminID == userID {
		return domain.InvalidInput("cannot delete your own account")
	}
	return s.mutate(s.userRepo.Delete(ctx, userID))
}

func (s *Service) mutate(err error) error {
	if err == nil || errors.Is(err, domain.ErrNotFound) {
		return err
	}
	zap.L().Error("can't update user", zap.Error(err))
	return domain.Storage(err)
}
