package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/washly/app/models"
	"github.com/shashiranjanraj/washly/pkg/database"
	"github.com/shashiranjanraj/washly/pkg/orm"
)

// ErrStale is returned by UpdateStatusIf when the order's status changed
// between the caller's read and the write. The service maps it to a
// conflict response so the client can re-read and retry.
var ErrStale = errors.New("order status changed concurrently")

// OrderRepository handles database operations for Order.
type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// FindByID loads an order with its items and laundry.
func (r *OrderRepository) FindByID(id uint) (models.Order, error) {
	var order models.Order
	err := orm.DB().Model(&models.Order{}).
		Preload("Items").
		Preload("Laundry").
		Preload("Customer").
		Where("id = ?", id).
		First(&order)
	return order, err
}

// Create persists the order and its items in one transaction.
func (r *OrderRepository) Create(order *models.Order) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		return orm.With(tx).Create(order)
	})
}

// UpdateStatusIf moves an order from expected to next and writes the
// audit row, atomically. The UPDATE is conditional on the status still
// being expected; if another writer got there first no row matches, the
// transaction rolls back and ErrStale comes back.
func (r *OrderRepository) UpdateStatusIf(orderID uint, expected, next models.OrderStatus, changedBy uint, note string) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := orm.With(tx).
			Model(&models.Order{}).
			Where("id = ? AND status = ?", orderID, expected).
			Updates(map[string]interface{}{"status": next})
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrStale
		}

		return orm.With(tx).Create(&models.OrderStatusLog{
			OrderID:    orderID,
			FromStatus: expected,
			ToStatus:   next,
			ChangedBy:  changedBy,
			Note:       note,
		})
	})
}

// StatusLogs returns an order's audit trail, oldest first.
func (r *OrderRepository) StatusLogs(orderID uint) ([]models.OrderStatusLog, error) {
	var logs []models.OrderStatusLog
	err := orm.DB().Model(&models.OrderStatusLog{}).
		Where("order_id = ?", orderID).
		Order("id asc").
		Find(&logs)
	return logs, err
}

// ForCustomer returns a customer's orders, newest first.
func (r *OrderRepository) ForCustomer(customerID uint, page, limit int) ([]models.Order, orm.Pagination, error) {
	var orders []models.Order
	pagination, err := orm.DB().Model(&models.Order{}).
		Preload("Items").
		Where("customer_id = ?", customerID).
		Order("id desc").
		Paginate(&orders, page, limit)
	return orders, pagination, err
}

// ForLaundry returns one laundry's orders, optionally filtered by status.
func (r *OrderRepository) ForLaundry(laundryID uint, status models.OrderStatus, page, limit int) ([]models.Order, orm.Pagination, error) {
	q := orm.DB().Model(&models.Order{}).
		Preload("Items").
		Where("laundry_id = ?", laundryID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var orders []models.Order
	pagination, err := q.Order("id desc").Paginate(&orders, page, limit)
	return orders, pagination, err
}

// All returns orders across every laundry. Super-admin only.
func (r *OrderRepository) All(status models.OrderStatus, page, limit int) ([]models.Order, orm.Pagination, error) {
	q := orm.DB().Model(&models.Order{}).Preload("Items")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var orders []models.Order
	pagination, err := q.Order("id desc").Paginate(&orders, page, limit)
	return orders, pagination, err
}

// ExportRows loads every order for a laundry in a date-bounded window
// for the CSV export. No pagination: the export job streams them out.
func (r *OrderRepository) ExportRows(laundryID uint, from, to string) ([]models.Order, error) {
	q := orm.DB().Model(&models.Order{}).Preload("Items").Where("laundry_id = ?", laundryID)
	if from != "" {
		q = q.Where("created_at >= ?", from)
	}
	if to != "" {
		q = q.Where("created_at < ?", to)
	}
	var orders []models.Order
	err := q.Order("id asc").Find(&orders)
	return orders, err
}

// CountByStatus returns order counts grouped by status for one laundry
// (laundryID 0 means platform-wide). Feeds the dashboards.
func (r *OrderRepository) CountByStatus(laundryID uint) (map[models.OrderStatus]int64, error) {
	type row struct {
		Status models.OrderStatus
		N      int64
	}
	q := database.DB.Model(&models.Order{}).Select("status, COUNT(*) as n").Group("status")
	if laundryID != 0 {
		q = q.Where("laundry_id = ?", laundryID)
	}
	var rows []row
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[models.OrderStatus]int64, len(rows))
	for _, r := range rows {
		out[r.Status] = r.N
	}
	return out, nil
}
