package user

import (
	"context"
	"errors"
	"strings"

	"mindnest-svc/src/internal/models"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	Register(ctx context.Context, req *RegisterRequest) (*User, error)
	Authenticate(ctx context.Context, email, password string) (*User, error)
	Profile(ctx context.Context, userID string) (*Profile, error)
}

type userService struct {
	userRepository Repository
}

func NewUserService(userRepository Repository) Service {
	return &userService{
		userRepository: userRepository,
	}
}

// NormalizeEmail lower-cases and trims an email before lookup or storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *userService) Register(ctx context.Context, req *RegisterRequest) (*User, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, models.ErrMissingFields
	}

	if req.Password != req.Confirm {
		return nil, models.ErrPasswordMismatch
	}

	email := NormalizeEmail(req.Email)

	existing, err := s.userRepository.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, models.ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, models.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Error("Failed to hash password")
		return nil, err
	}

	user := &User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
		TotalMinutes: 0,
	}

	created, err := s.userRepository.Create(ctx, user)
	if err != nil {
		logrus.WithError(err).WithField("email", email).Error("Failed to create user")
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id": created.ID.Hex(),
		"email":   created.Email,
	}).Info("User registered")

	return created, nil
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*User, error) {
	user, err := s.userRepository.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}

	return user, nil
}

func (s *userService) Profile(ctx context.Context, userID string) (*Profile, error) {
	user, err := s.userRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.ToProfile(), nil
}
