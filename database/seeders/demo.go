package seeders

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/washly/app/models"
	"github.com/shashiranjanraj/washly/pkg/auth"
)

func init() {
	Register("demo", SeedDemo)
}

// SeedDemo loads a small demo dataset: one super admin, two laundries
// with staff and catalogues, a couple of customers and orders spread
// across the lifecycle. Idempotent: it bails out if users already exist.
func SeedDemo(db *gorm.DB) error {
	var n int64
	if err := db.Model(&models.User{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	password, err := auth.HashPassword("password")
	if err != nil {
		return err
	}

	super := models.User{Name: "Platform Root", Email: "root@washly.app", Password: password, Role: models.RoleSuperAdmin}
	if err := db.Create(&super).Error; err != nil {
		return err
	}

	laundries := []models.Laundry{
		{Name: "Fresh & Fold", Slug: "fresh-and-fold", City: "Pune", Status: models.LaundryActive, Rating: 4.6},
		{Name: "Bubble Works", Slug: "bubble-works", City: "Mumbai", Status: models.LaundryActive, Rating: 4.2},
	}
	if err := db.Create(&laundries).Error; err != nil {
		return err
	}

	staff := []models.User{
		{Name: "Asha Admin", Email: "asha@freshfold.test", Password: password, Role: models.RoleAdmin, LaundryID: &laundries[0].ID},
		{Name: "Dev Driver", Email: "dev@freshfold.test", Password: password, Role: models.RoleDeliveryGuy, LaundryID: &laundries[0].ID},
		{Name: "Bina Admin", Email: "bina@bubbleworks.test", Password: password, Role: models.RoleAdmin, LaundryID: &laundries[1].ID},
	}
	if err := db.Create(&staff).Error; err != nil {
		return err
	}

	customers := []models.User{
		{Name: "Chetan Customer", Email: "chetan@example.test", Password: password, Role: models.RoleCustomer},
		{Name: "Divya Customer", Email: "divya@example.test", Password: password, Role: models.RoleCustomer},
	}
	if err := db.Create(&customers).Error; err != nil {
		return err
	}

	products := []models.Product{
		{LaundryID: laundries[0].ID, Name: "Shirt wash & iron", Category: "wash", Price: 4000, Unit: "piece", Available: true},
		{LaundryID: laundries[0].ID, Name: "Bedsheet dry clean", Category: "dry_clean", Price: 12000, Unit: "piece", Available: true},
		{LaundryID: laundries[1].ID, Name: "Mixed load per kg", Category: "wash", Price: 8000, Unit: "kg", Available: true},
	}
	if err := db.Create(&products).Error; err != nil {
		return err
	}

	orders := []models.Order{
		{
			Number: "WSH-DEMO-000001", CustomerID: customers[0].ID, LaundryID: laundries[0].ID,
			Status: models.StatusPending, Total: 8000,
			Items: []models.OrderItem{{ProductID: products[0].ID, Name: products[0].Name, Quantity: 2, Price: products[0].Price}},
		},
		{
			Number: "WSH-DEMO-000002", CustomerID: customers[0].ID, LaundryID: laundries[0].ID,
			Status: models.StatusInProgress, Total: 12000,
			Items: []models.OrderItem{{ProductID: products[1].ID, Name: products[1].Name, Quantity: 1, Price: products[1].Price}},
		},
		{
			Number: "WSH-DEMO-000003", CustomerID: customers[1].ID, LaundryID: laundries[1].ID,
			Status: models.StatusCompleted, Total: 24000,
			Items: []models.OrderItem{{ProductID: products[2].ID, Name: products[2].Name, Quantity: 3, Price: products[2].Price}},
		},
	}
	if err := db.Create(&orders).Error; err != nil {
		return err
	}

	logs := []models.OrderStatusLog{
		{OrderID: orders[1].ID, FromStatus: models.StatusPending, ToStatus: models.StatusConfirmed, ChangedBy: staff[0].ID},
		{OrderID: orders[1].ID, FromStatus: models.StatusConfirmed, ToStatus: models.StatusInProgress, ChangedBy: staff[0].ID},
		{OrderID: orders[2].ID, FromStatus: models.StatusPending, ToStatus: models.StatusConfirmed, ChangedBy: staff[2].ID},
		{OrderID: orders[2].ID, FromStatus: models.StatusConfirmed, ToStatus: models.StatusInProgress, ChangedBy: staff[2].ID},
		{OrderID: orders[2].ID, FromStatus: models.StatusInProgress, ToStatus: models.StatusReadyForPickup, ChangedBy: staff[2].ID},
		{OrderID: orders[2].ID, FromStatus: models.StatusReadyForPickup, ToStatus: models.StatusOutForDelivery, ChangedBy: staff[2].ID},
		{OrderID: orders[2].ID, FromStatus: models.StatusOutForDelivery, ToStatus: models.StatusDelivered, ChangedBy: staff[2].ID},
		{OrderID: orders[2].ID, FromStatus: models.StatusDelivered, ToStatus: models.StatusCompleted, ChangedBy: staff[2].ID},
	}
	return db.Create(&logs).Error
}
