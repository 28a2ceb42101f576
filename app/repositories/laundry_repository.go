package repositories

import (
	"time"

	"github.com/shashiranjanraj/washly/app/models"
	"github.com/shashiranjanraj/washly/pkg/orm"
)

// LaundryRepository handles database operations for Laundry.
type LaundryRepository struct{}

func NewLaundryRepository() *LaundryRepository {
	return &LaundryRepository{}
}

// FindByID looks up a laundry by primary key.
func (r *LaundryRepository) FindByID(id uint) (models.Laundry, error) {
	var laundry models.Laundry
	err := orm.DB().Model(&models.Laundry{}).Where("id = ?", id).First(&laundry)
	return laundry, err
}

// FindBySlug looks up a laundry by its URL slug.
func (r *LaundryRepository) FindBySlug(slug string) (models.Laundry, error) {
	var laundry models.Laundry
	err := orm.DB().Model(&models.Laundry{}).Where("slug = ?", slug).First(&laundry)
	return laundry, err
}

// Create persists a new laundry.
func (r *LaundryRepository) Create(laundry *models.Laundry) error {
	return orm.DB().Create(laundry)
}

// Update persists changes to an existing laundry.
func (r *LaundryRepository) Update(laundry *models.Laundry) error {
	return orm.DB().Save(laundry)
}

// SetStatus updates only the laundry's status column.
func (r *LaundryRepository) SetStatus(id uint, status string) error {
	_, err := orm.DB().Model(&models.Laundry{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": status})
	return err
}

// Active returns active laundries page by page, optionally filtered by
// city. The public listing is cached briefly since it is the hottest
// read on the platform.
func (r *LaundryRepository) Active(city string, page, limit int) ([]models.Laundry, orm.Pagination, error) {
	q := orm.DB().Model(&models.Laundry{}).Where("status = ?", models.LaundryActive)
	if city != "" {
		q = q.Where("city = ?", city)
	}
	var laundries []models.Laundry
	pagination, err := q.Order("rating desc").Paginate(&laundries, page, limit)
	return laundries, pagination, err
}

// AllCached returns every active laundry through the Redis cache.
func (r *LaundryRepository) AllCached() ([]models.Laundry, error) {
	var laundries []models.Laundry
	err := orm.DB().Model(&models.Laundry{}).
		Where("status = ?", models.LaundryActive).
		Order("rating desc").
		Cached("laundries:active", 5*time.Minute, &laundries)
	return laundries, err
}
