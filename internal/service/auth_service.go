package service

import (
	"errors"
	"strings"
	"sync"

	"autotrack-pos/internal/model"
	"autotrack-pos/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

// AuthService authenticates against the session's user list, which is loaded
// once at boot from the sink (or from the seeded mocks in offline mode).
type AuthService interface {
	Login(email, password string) (*LoginResponse, error)
	ValidateToken(tokenString string) (*TokenValidationResponse, error)
	UserByID(id string) (*model.User, error)
}

type LoginResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

type TokenValidationResponse struct {
	User model.User `json:"user"`
}

type authService struct {
	mu    sync.RWMutex
	users []model.User
}

func NewAuthService(users []model.User) AuthService {
	return &authService{users: users}
}

func (s *authService) findByEmail(email string) *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.users {
		if strings.EqualFold(s.users[i].Email, email) {
			user := s.users[i]
			return &user
		}
	}
	return nil
}

func (s *authService) UserByID(id string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.users {
		if s.users[i].ID == id {
			user := s.users[i]
			return &user, nil
		}
	}
	return nil, ErrUserNotFound
}

func (s *authService) Login(email, password string) (*LoginResponse, error) {
	user := s.findByEmail(email)
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	token, err := jwt.GenerateToken(user.ID, user.Name, user.Role)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &LoginResponse{Token: token, User: *user}, nil
}

func (s *authService) ValidateToken(tokenString string) (*TokenValidationResponse, error) {
	claims, err := jwt.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.UserByID(claims.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	return &TokenValidationResponse{User: *user}, nil
}
