package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/washly/app/models"
	"github.com/shashiranjanraj/washly/app/repositories"
	"github.com/shashiranjanraj/washly/pkg/cache"
	"github.com/shashiranjanraj/washly/pkg/guard"
	"github.com/shashiranjanraj/washly/pkg/orm"
)

// LaundryService implements laundry management. Creating and suspending
// laundries is a platform-level concern; editing details is tenant-level.
type LaundryService struct {
	laundries *repositories.LaundryRepository
	users     *repositories.UserRepository
}

func NewLaundryService() *LaundryService {
	return &LaundryService{
		laundries: repositories.NewLaundryRepository(),
		users:     repositories.NewUserRepository(),
	}
}

// LaundryInput is the payload for creating or updating a laundry.
type LaundryInput struct {
	Name        string `json:"name" validate:"required,min=2,max=255"`
	Description string `json:"description" validate:"nullable,max=2000"`
	Address     string `json:"address" validate:"nullable,max=500"`
	City        string `json:"city" validate:"required,min=2,max=100"`
	Phone       string `json:"phone" validate:"nullable,max=50"`
	WebhookURL  string `json:"webhook_url" validate:"nullable,max=500"`
}

// List returns active laundries for the public directory.
func (s *LaundryService) List(city string, page, limit int) ([]models.Laundry, orm.Pagination, error) {
	return s.laundries.Active(city, page, limit)
}

// Get returns one laundry by ID.
func (s *LaundryService) Get(id uint) (*models.Laundry, error) {
	laundry, err := s.laundries.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, guard.NotFound("laundry not found")
		}
		return nil, err
	}
	return &laundry, nil
}

// Create registers a new laundry and promotes the given user to be its
// admin. Super admin only, enforced at the route.
func (s *LaundryService) Create(in LaundryInput, adminID uint) (*models.Laundry, error) {
	admin, err := s.users.FindByID(adminID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, guard.NotFound("admin user not found")
		}
		return nil, err
	}
	if admin.LaundryID != nil {
		return nil, guard.Conflict("user already manages a laundry")
	}

	laundry := &models.Laundry{
		Name:        in.Name,
		Slug:        slugify(in.Name),
		Description: in.Description,
		Address:     in.Address,
		City:        in.City,
		Phone:       in.Phone,
		Status:      models.LaundryActive,
		WebhookURL:  in.WebhookURL,
	}
	if err := s.laundries.Create(laundry); err != nil {
		return nil, err
	}

	admin.Role = models.RoleAdmin
	admin.LaundryID = &laundry.ID
	if err := s.users.Update(&admin); err != nil {
		return nil, err
	}

	cache.Del("laundries:active")
	return laundry, nil
}

// Update edits a laundry's details after a tenant check.
func (s *LaundryService) Update(p *guard.Principal, id uint, in LaundryInput) (*models.Laundry, error) {
	if gerr := guard.AuthorizeTenant(p, id); gerr != nil {
		return nil, gerr
	}

	laundry, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	laundry.Name = in.Name
	laundry.Description = in.Description
	laundry.Address = in.Address
	laundry.City = in.City
	laundry.Phone = in.Phone
	laundry.WebhookURL = in.WebhookURL
	if err := s.laundries.Update(laundry); err != nil {
		return nil, err
	}

	cache.Del("laundries:active")
	return laundry, nil
}

// SetStatus suspends, reopens or closes a laundry. Super admin only,
// enforced at the route. Suspending a laundry also suspends its admin
// accounts, so they lock out on their very next request; reactivating
// lifts that again.
func (s *LaundryService) SetStatus(id uint, status string) (*models.Laundry, error) {
	switch status {
	case models.LaundryActive, models.LaundrySuspended, models.LaundryClosed:
	default:
		return nil, guard.Conflict("unknown laundry status " + status)
	}

	laundry, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if err := s.laundries.SetStatus(laundry.ID, status); err != nil {
		return nil, err
	}
	laundry.Status = status

	switch status {
	case models.LaundrySuspended:
		err = s.users.SetSuspendedByLaundry(laundry.ID, true, "laundry suspended")
	case models.LaundryActive:
		err = s.users.SetSuspendedByLaundry(laundry.ID, false, "")
	}
	if err != nil {
		return nil, err
	}

	cache.Del("laundries:active")
	return laundry, nil
}

func slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	lastDash := true
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
