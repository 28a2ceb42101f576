package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/washly/app/models"
	"github.com/shashiranjanraj/washly/app/repositories"
	"github.com/shashiranjanraj/washly/pkg/auth"
	"github.com/shashiranjanraj/washly/pkg/event"
	"github.com/shashiranjanraj/washly/pkg/guard"
)

// EventUserRegistered fires after a successful registration with the new
// *models.User as payload.
const EventUserRegistered = "user.registered"

// AuthService implements registration and login.
type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService() *AuthService {
	return &AuthService{users: repositories.NewUserRepository()}
}

// RegisterInput is the payload for new customer signup.
type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Phone    string `json:"phone" validate:"nullable,min=7,max=50"`
}

// Register creates a customer account and returns it with a session
// token. Staff accounts are created by admins, never through signup.
func (s *AuthService) Register(in RegisterInput) (*models.User, string, error) {
	if _, err := s.users.FindByEmail(in.Email); err == nil {
		return nil, "", guard.Conflict("email is already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	hashed, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hashed,
		Phone:    in.Phone,
		Role:     models.RoleCustomer,
	}
	if err := s.users.Create(user); err != nil {
		return nil, "", err
	}

	event.FireAsync(EventUserRegistered, user)

	token, err := auth.GenerateToken(user.ID, user.Email, user.Name, user.Role)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// LoginInput is the credentials payload.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login checks credentials and returns the user with a fresh token.
// Wrong email and wrong password produce the same error so the endpoint
// does not leak which accounts exist.
func (s *AuthService) Login(in LoginInput) (*models.User, string, error) {
	user, err := s.users.FindByEmail(in.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", guard.Unauthenticated("invalid credentials")
		}
		return nil, "", err
	}

	if !auth.CheckPassword(user.Password, in.Password) {
		return nil, "", guard.Unauthenticated("invalid credentials")
	}

	if user.Suspended {
		return nil, "", guard.Forbidden("account suspended: " + user.SuspensionReason)
	}

	token, err := auth.GenerateToken(user.ID, user.Email, user.Name, user.Role)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// Me returns the full user record behind a principal.
func (s *AuthService) Me(principalID uint) (*models.User, error) {
	user, err := s.users.FindByID(principalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, guard.NotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}
