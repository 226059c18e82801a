package services

import (
	"errors"

	"github.com/souqdz/souq/app/models"
	"github.com/souqdz/souq/app/repositories"
	"github.com/souqdz/souq/pkg/auth"
)

// ErrBadCredentials hides whether the email or the password was wrong.
var ErrBadCredentials = errors.New("invalid credentials")

type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService(users *repositories.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Login verifies the password and returns the account plus a bearer token
// for API clients. The session cookie is set by the controller.
func (s *AuthService) Login(email, password string) (models.User, string, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		return models.User{}, "", ErrBadCredentials
	}
	if !auth.CheckPassword(user.Password, password) {
		return models.User{}, "", ErrBadCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}
