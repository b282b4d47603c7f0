package user

import (
	"context"
	"strings"

	"otherproteins-be/internal/logger"

	"go.uber.org/zap"
)

type RegisterParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     *string
}

type Service interface {
	Register(ctx context.Context, params RegisterParams) (*User, error)
	Login(ctx context.Context, email, password string) (string, *User, error)
	GetByID(ctx context.Context, id uint) (*User, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, params RegisterParams) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Register"),
	)

	params.Email = strings.TrimSpace(strings.ToLower(params.Email))
	if params.Email == "" || params.Password == "" {
		return nil, ErrInvalidInput
	}

	hashed, err := HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	u := &User{
		Email:     params.Email,
		Password:  hashed,
		FirstName: strings.TrimSpace(params.FirstName),
		LastName:  strings.TrimSpace(params.LastName),
		Phone:     params.Phone,
		Role:      RoleCustomer,
	}

	id, err := s.repo.Create(ctx, u)
	if err != nil {
		log.Warn("failed to register user", zap.Error(err))
		return nil, err
	}

	u.ID = id
	u.Password = ""

	log.Info("user registered", zap.Uint("user_id", id))
	return u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, *User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if err == ErrUserNotFound {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !CheckPasswordHash(password, u.Password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := GenerateJWT(u.ID, u.Email, u.Role)
	if err != nil {
		return "", nil, err
	}

	u.Password = ""
	return token, u, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*User, error) {
	return s.repo.GetByID(ctx, id)
}
