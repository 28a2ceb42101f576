package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/washly/app/models"
	"github.com/shashiranjanraj/washly/app/repositories"
	"github.com/shashiranjanraj/washly/pkg/auth"
	"github.com/shashiranjanraj/washly/pkg/guard"
	"github.com/shashiranjanraj/washly/pkg/orm"
)

// UserService implements platform user administration: listing accounts,
// creating staff, suspending and unsuspending.
type UserService struct {
	users *repositories.UserRepository
}

func NewUserService() *UserService {
	return &UserService{users: repositories.NewUserRepository()}
}

// List returns accounts page by page, optionally filtered by role.
// Super admin only, enforced at the route.
func (s *UserService) List(role string, page, limit int) ([]models.User, orm.Pagination, error) {
	return s.users.All(role, page, limit)
}

// StaffInput is the payload for creating a staff account on a laundry.
type StaffInput struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"required,in=ADMIN,DELIVERY_GUY"`
}

// CreateStaff adds an admin or delivery account to the principal's
// laundry. Admins can only hire into their own laundry.
func (s *UserService) CreateStaff(p *guard.Principal, laundryID uint, in StaffInput) (*models.User, error) {
	if gerr := guard.AuthorizeTenant(p, laundryID); gerr != nil {
		return nil, gerr
	}

	if _, err := s.users.FindByEmail(in.Email); err == nil {
		return nil, guard.Conflict("email is already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:      in.Name,
		Email:     in.Email,
		Password:  hashed,
		Role:      in.Role,
		LaundryID: &laundryID,
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// SuspendInput carries the reason shown to the suspended user.
type SuspendInput struct {
	Reason string `json:"reason" validate:"required,min=3,max=500"`
}

// Suspend blocks an account. The flag is checked on every authenticated
// request, so outstanding tokens stop working immediately. Super admins
// cannot be suspended.
func (s *UserService) Suspend(id uint, reason string) (*models.User, error) {
	user, err := s.find(id)
	if err != nil {
		return nil, err
	}
	if user.Role == models.RoleSuperAdmin {
		return nil, guard.Forbidden("super admin accounts cannot be suspended")
	}

	if err := s.users.SetSuspended(user.ID, true, reason); err != nil {
		return nil, err
	}
	user.Suspended = true
	user.SuspensionReason = reason
	return user, nil
}

// Unsuspend lifts a suspension.
func (s *UserService) Unsuspend(id uint) (*models.User, error) {
	user, err := s.find(id)
	if err != nil {
		return nil, err
	}

	if err := s.users.SetSuspended(user.ID, false, ""); err != nil {
		return nil, err
	}
	user.Suspended = false
	user.SuspensionReason = ""
	return user, nil
}

func (s *UserService) find(id uint) (*models.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, guard.NotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}
