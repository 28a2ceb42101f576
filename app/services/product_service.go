package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/washly/app/models"
	"github.com/shashiranjanraj/washly/app/repositories"
	"github.com/shashiranjanraj/washly/pkg/guard"
)

// ProductService implements a laundry's service catalogue.
type ProductService struct {
	products  *repositories.ProductRepository
	laundries *repositories.LaundryRepository
}

func NewProductService() *ProductService {
	return &ProductService{
		products:  repositories.NewProductRepository(),
		laundries: repositories.NewLaundryRepository(),
	}
}

// ProductInput is the payload for creating or updating a product.
type ProductInput struct {
	Name        string `json:"name" validate:"required,min=2,max=255"`
	Description string `json:"description" validate:"nullable,max=2000"`
	Category    string `json:"category" validate:"required,in=wash,dry_clean,iron,other"`
	Price       int64  `json:"price" validate:"required,gte=0"`
	Unit        string `json:"unit" validate:"nullable,in=piece,kg"`
	Available   bool   `json:"available"`
}

// ListForLaundry returns a laundry's catalogue. Public, no auth.
func (s *ProductService) ListForLaundry(laundryID uint, category string) ([]models.Product, error) {
	if _, err := s.laundries.FindByID(laundryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, guard.NotFound("laundry not found")
		}
		return nil, err
	}
	return s.products.ByLaundry(laundryID, category)
}

// Create adds a product to the principal's laundry.
func (s *ProductService) Create(p *guard.Principal, laundryID uint, in ProductInput) (*models.Product, error) {
	if gerr := guard.AuthorizeTenant(p, laundryID); gerr != nil {
		return nil, gerr
	}

	unit := in.Unit
	if unit == "" {
		unit = "piece"
	}
	product := &models.Product{
		LaundryID:   laundryID,
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Price:       in.Price,
		Unit:        unit,
		Available:   in.Available,
	}
	if err := s.products.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update edits a product after checking it belongs to the principal's
// laundry.
func (s *ProductService) Update(p *guard.Principal, id uint, in ProductInput) (*models.Product, error) {
	product, err := s.find(id)
	if err != nil {
		return nil, err
	}
	if gerr := guard.AuthorizeTenant(p, product.LaundryID); gerr != nil {
		return nil, gerr
	}

	product.Name = in.Name
	product.Description = in.Description
	product.Category = in.Category
	product.Price = in.Price
	if in.Unit != "" {
		product.Unit = in.Unit
	}
	product.Available = in.Available
	if err := s.products.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes a product from the catalogue.
func (s *ProductService) Delete(p *guard.Principal, id uint) error {
	product, err := s.find(id)
	if err != nil {
		return err
	}
	if gerr := guard.AuthorizeTenant(p, product.LaundryID); gerr != nil {
		return gerr
	}
	return s.products.Delete(product)
}

func (s *ProductService) find(id uint) (*models.Product, error) {
	product, err := s.products.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, guard.NotFound("product not found")
		}
		return nil, err
	}
	return &product, nil
}
