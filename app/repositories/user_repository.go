package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/washly/app/models"
	"github.com/shashiranjanraj/washly/pkg/guard"
	"github.com/shashiranjanraj/washly/pkg/orm"
)

// UserRepository handles database operations for User.
type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// FindPrincipal loads the current authorization state for a user. It
// returns (nil, nil) when the user no longer exists, so callers can tell
// "gone" apart from a database failure. This backs every authenticated
// request: role and suspension always come from here, never from the
// token.
func (r *UserRepository) FindPrincipal(ctx context.Context, id uint) (*guard.Principal, error) {
	var user models.User
	err := orm.DB().Model(&models.User{}).Where("id = ?", id).First(&user)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &guard.Principal{
		ID:               user.ID,
		Email:            user.Email,
		Name:             user.Name,
		Role:             guard.Role(user.Role),
		LaundryID:        user.LaundryID,
		Suspended:        user.Suspended,
		SuspensionReason: user.SuspensionReason,
	}, nil
}

// FindByEmail looks up a user by their email address.
func (r *UserRepository) FindByEmail(email string) (models.User, error) {
	var user models.User
	err := orm.DB().Model(&models.User{}).Where("email = ?", email).First(&user)
	return user, err
}

// FindByID looks up a user by primary key.
func (r *UserRepository) FindByID(id uint) (models.User, error) {
	var user models.User
	err := orm.DB().Model(&models.User{}).Where("id = ?", id).First(&user)
	return user, err
}

// Create persists a new user record.
func (r *UserRepository) Create(user *models.User) error {
	return orm.DB().Create(user)
}

// Update persists changes to an existing user.
func (r *UserRepository) Update(user *models.User) error {
	return orm.DB().Save(user)
}

// SetSuspended flips a user's suspension flag. Takes effect on the
// user's next request because principals are loaded fresh each time.
func (r *UserRepository) SetSuspended(id uint, suspended bool, reason string) error {
	_, err := orm.DB().Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"suspended":         suspended,
		"suspension_reason": reason,
	})
	return err
}

// SetSuspendedByLaundry flips suspension for every admin bound to a
// laundry. Used when the laundry itself is suspended or reactivated.
func (r *UserRepository) SetSuspendedByLaundry(laundryID uint, suspended bool, reason string) error {
	_, err := orm.DB().Model(&models.User{}).
		Where("laundry_id = ? AND role = ?", laundryID, models.RoleAdmin).
		Updates(map[string]interface{}{
			"suspended":         suspended,
			"suspension_reason": reason,
		})
	return err
}

// All returns users page by page, optionally filtered by role.
func (r *UserRepository) All(role string, page, limit int) ([]models.User, orm.Pagination, error) {
	q := orm.DB().Model(&models.User{})
	if role != "" {
		q = q.Where("role = ?", role)
	}
	var users []models.User
	pagination, err := q.Order("id desc").Paginate(&users, page, limit)
	return users, pagination, err
}
