package repositories

import (
	"github.com/shashiranjanraj/washly/app/models"
	"github.com/shashiranjanraj/washly/pkg/orm"
)

// ProductRepository handles database operations for Product.
type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// FindByID looks up a product by primary key.
func (r *ProductRepository) FindByID(id uint) (models.Product, error) {
	var product models.Product
	err := orm.DB().Model(&models.Product{}).Where("id = ?", id).First(&product)
	return product, err
}

// ByLaundry returns a laundry's products, available ones first.
func (r *ProductRepository) ByLaundry(laundryID uint, category string) ([]models.Product, error) {
	q := orm.DB().Model(&models.Product{}).Where("laundry_id = ?", laundryID)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var products []models.Product
	err := q.Order("available desc, name asc").Find(&products)
	return products, err
}

// FindForOrder loads the given product IDs for one laundry. Products
// from other laundries are silently excluded, the service layer treats
// a shorter result as a bad request.
func (r *ProductRepository) FindForOrder(laundryID uint, ids []uint) ([]models.Product, error) {
	var products []models.Product
	err := orm.DB().Model(&models.Product{}).
		Where("laundry_id = ? AND id IN ? AND available = ?", laundryID, ids, true).
		Find(&products)
	return products, err
}

// Create persists a new product.
func (r *ProductRepository) Create(product *models.Product) error {
	return orm.DB().Create(product)
}

// Update persists changes to an existing product.
func (r *ProductRepository) Update(product *models.Product) error {
	return orm.DB().Save(product)
}

// Delete soft-deletes a product.
func (r *ProductRepository) Delete(product *models.Product) error {
	return orm.DB().Delete(product)
}
