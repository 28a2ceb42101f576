package migrations

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/washly/app/models"
	"github.com/shashiranjanraj/washly/pkg/migration"
)

func init() {
	migration.Register("20260801000000_create_users_table", &CreateUsersTable{})
	migration.Register("20260801000001_create_laundries_table", &CreateLaundriesTable{})
	migration.Register("20260801000002_create_products_table", &CreateProductsTable{})
	migration.Register("20260801000003_create_orders_table", &CreateOrdersTable{})
	migration.Register("20260801000004_create_order_status_logs_table", &CreateOrderStatusLogsTable{})
}

// -------- 0000: users + addresses --------

type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Address{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("addresses", "users")
}

// -------- 0001: laundries --------

type CreateLaundriesTable struct{}

func (m *CreateLaundriesTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Laundry{})
}

func (m *CreateLaundriesTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("laundries")
}

// -------- 0002: products --------

type CreateProductsTable struct{}

func (m *CreateProductsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Product{})
}

func (m *CreateProductsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("products")
}

// -------- 0003: orders + items --------

type CreateOrdersTable struct{}

func (m *CreateOrdersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Order{}, &models.OrderItem{})
}

func (m *CreateOrdersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("order_items", "orders")
}

// -------- 0004: order status audit trail --------

type CreateOrderStatusLogsTable struct{}

func (m *CreateOrderStatusLogsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.OrderStatusLog{})
}

func (m *CreateOrderStatusLogsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("order_status_logs")
}
