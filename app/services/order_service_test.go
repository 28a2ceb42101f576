package services_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shashiranjanraj/washly/app/models"
	"github.com/shashiranjanraj/washly/app/repositories"
	"github.com/shashiranjanraj/washly/app/services"
	"github.com/shashiranjanraj/washly/pkg/database"
	"github.com/shashiranjanraj/washly/pkg/guard"
)

var dbSeq int

// setupDB points the global connection at a fresh in-memory database
// and seeds one laundry with a product and a couple of users.
func setupDB(t *testing.T) {
	t.Helper()
	dbSeq++

	dsn := fmt.Sprintf("file:orders%d?mode=memory&cache=shared", dbSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Address{}, &models.Laundry{},
		&models.Product{}, &models.Order{}, &models.OrderItem{},
		&models.OrderStatusLog{},
	))
	database.DB = db

	require.NoError(t, db.Create(&models.Laundry{
		Name: "Fresh Spin", Slug: "fresh-spin", City: "Pune", Status: models.LaundryActive,
	}).Error)
	require.NoError(t, db.Create(&models.Product{
		LaundryID: 1, Name: "Shirt wash", Category: "wash", Price: 500, Unit: "piece", Available: true,
	}).Error)
}

var orderSeq int

func seedOrder(t *testing.T, status models.OrderStatus) *models.Order {
	t.Helper()
	orderSeq++
	order := &models.Order{
		Number: fmt.Sprintf("WSH-TEST-%d", orderSeq), CustomerID: 1, LaundryID: 1,
		Status: status, Total: 500,
	}
	require.NoError(t, database.DB.Create(order).Error)
	return order
}

func customer(id uint) *guard.Principal {
	return &guard.Principal{ID: id, Role: guard.RoleCustomer}
}

func staff(laundryID uint) *guard.Principal {
	return &guard.Principal{ID: 50, Role: guard.RoleAdmin, LaundryID: &laundryID}
}

func auditRows(t *testing.T, orderID uint) []models.OrderStatusLog {
	t.Helper()
	logs, err := repositories.NewOrderRepository().StatusLogs(orderID)
	require.NoError(t, err)
	return logs
}

func TestCreateOrder(t *testing.T) {
	setupDB(t)
	svc := services.NewOrderService()

	order, err := svc.Create(customer(1), services.CreateOrderInput{
		LaundryID: 1,
		Items:     []services.CreateOrderItemInput{{ProductID: 1, Quantity: 3}},
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, int64(1500), order.Total)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Shirt wash", order.Items[0].Name, "price and name are frozen on the item")
	assert.NotEmpty(t, order.Number)
}

func TestCreateOrderRejections(t *testing.T) {
	setupDB(t)
	svc := services.NewOrderService()

	t.Run("no items", func(t *testing.T) {
		_, err := svc.Create(customer(1), services.CreateOrderInput{LaundryID: 1})
		ge := guard.As(err)
		require.NotNil(t, ge)
		assert.Equal(t, guard.KindConflict, ge.Kind)
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := svc.Create(customer(1), services.CreateOrderInput{
			LaundryID: 1,
			Items:     []services.CreateOrderItemInput{{ProductID: 99, Quantity: 1}},
		})
		ge := guard.As(err)
		require.NotNil(t, ge)
		assert.Equal(t, guard.KindNotFound, ge.Kind)
	})

	t.Run("suspended laundry", func(t *testing.T) {
		require.NoError(t, database.DB.Model(&models.Laundry{}).
			Where("id = ?", 1).Update("status", models.LaundrySuspended).Error)
		defer database.DB.Model(&models.Laundry{}).
			Where("id = ?", 1).Update("status", models.LaundryActive)

		_, err := svc.Create(customer(1), services.CreateOrderInput{
			LaundryID: 1,
			Items:     []services.CreateOrderItemInput{{ProductID: 1, Quantity: 1}},
		})
		ge := guard.As(err)
		require.NotNil(t, ge)
		assert.Equal(t, guard.KindConflict, ge.Kind)
	})
}

func TestUpdateStatus(t *testing.T) {
	setupDB(t)
	svc := services.NewOrderService()

	t.Run("legal transition writes an audit row", func(t *testing.T) {
		order := seedOrder(t, models.StatusPending)

		updated, err := svc.UpdateStatus(staff(1), order.ID, models.StatusConfirmed, "called customer")
		require.NoError(t, err)
		assert.Equal(t, models.StatusConfirmed, updated.Status)

		logs := auditRows(t, order.ID)
		require.Len(t, logs, 1)
		assert.Equal(t, models.StatusPending, logs[0].FromStatus)
		assert.Equal(t, models.StatusConfirmed, logs[0].ToStatus)
		assert.Equal(t, uint(50), logs[0].ChangedBy)
		assert.Equal(t, "called customer", logs[0].Note)
	})

	t.Run("illegal transition is rejected before any write", func(t *testing.T) {
		order := seedOrder(t, models.StatusPending)

		_, err := svc.UpdateStatus(staff(1), order.ID, models.StatusDelivered, "")
		ge := guard.As(err)
		require.NotNil(t, ge)
		assert.Equal(t, guard.KindInvalidTransition, ge.Kind)
		assert.Equal(t, "invalid status transition from PENDING to DELIVERED", ge.Message)
		assert.Empty(t, auditRows(t, order.ID))
	})

	t.Run("same status is a no-op without an audit row", func(t *testing.T) {
		order := seedOrder(t, models.StatusConfirmed)

		updated, err := svc.UpdateStatus(staff(1), order.ID, models.StatusConfirmed, "")
		require.NoError(t, err)
		assert.Equal(t, models.StatusConfirmed, updated.Status)
		assert.Empty(t, auditRows(t, order.ID))
	})

	t.Run("lost race surfaces as a conflict", func(t *testing.T) {
		order := seedOrder(t, models.StatusPending)

		// Another writer confirms the order after our copy was read.
		require.NoError(t, repositories.NewOrderRepository().
			UpdateStatusIf(order.ID, models.StatusPending, models.StatusConfirmed, 99, ""))

		// UpdateStatus re-reads, so simulate the stale write directly.
		err := repositories.NewOrderRepository().
			UpdateStatusIf(order.ID, models.StatusPending, models.StatusCanceled, 50, "")
		assert.ErrorIs(t, err, repositories.ErrStale)

		// Only the winner's audit row exists.
		logs := auditRows(t, order.ID)
		require.Len(t, logs, 1)
		assert.Equal(t, models.StatusConfirmed, logs[0].ToStatus)
	})

	t.Run("unknown order", func(t *testing.T) {
		_, err := svc.UpdateStatus(staff(1), 9999, models.StatusConfirmed, "")
		ge := guard.As(err)
		require.NotNil(t, ge)
		assert.Equal(t, guard.KindNotFound, ge.Kind)
	})
}

func TestTransitionAuthorization(t *testing.T) {
	setupDB(t)
	svc := services.NewOrderService()

	t.Run("customer may cancel own pending order", func(t *testing.T) {
		order := seedOrder(t, models.StatusPending)

		updated, err := svc.Cancel(customer(1), order.ID, "changed my mind")
		require.NoError(t, err)
		assert.Equal(t, models.StatusCanceled, updated.Status)
	})

	t.Run("customer may not cancel once work started", func(t *testing.T) {
		order := seedOrder(t, models.StatusInProgress)

		_, err := svc.Cancel(customer(1), order.ID, "")
		ge := guard.As(err)
		require.NotNil(t, ge)
		assert.Equal(t, guard.KindForbidden, ge.Kind)
	})

	t.Run("customer may not confirm", func(t *testing.T) {
		order := seedOrder(t, models.StatusPending)

		_, err := svc.UpdateStatus(customer(1), order.ID, models.StatusConfirmed, "")
		ge := guard.As(err)
		require.NotNil(t, ge)
		assert.Equal(t, guard.KindForbidden, ge.Kind)
	})

	t.Run("someone else's order is off limits", func(t *testing.T) {
		order := seedOrder(t, models.StatusPending)

		_, err := svc.Cancel(customer(2), order.ID, "")
		ge := guard.As(err)
		require.NotNil(t, ge)
		assert.Equal(t, guard.KindForbidden, ge.Kind)
	})

	t.Run("staff of another laundry is rejected", func(t *testing.T) {
		order := seedOrder(t, models.StatusPending)

		_, err := svc.UpdateStatus(staff(2), order.ID, models.StatusConfirmed, "")
		ge := guard.As(err)
		require.NotNil(t, ge)
		assert.Equal(t, guard.KindForbidden, ge.Kind)
	})

	t.Run("delivery role has no transition rule", func(t *testing.T) {
		laundryID := uint(1)
		driver := &guard.Principal{ID: 60, Role: guard.RoleDeliveryGuy, LaundryID: &laundryID}

		order := seedOrder(t, models.StatusReadyForPickup)
		_, err := svc.UpdateStatus(driver, order.ID, models.StatusOutForDelivery, "")
		ge := guard.As(err)
		require.NotNil(t, ge)
		assert.Equal(t, guard.KindForbidden, ge.Kind)
	})

	t.Run("super admin may drive any legal transition", func(t *testing.T) {
		root := &guard.Principal{ID: 1, Role: guard.RoleSuperAdmin}
		order := seedOrder(t, models.StatusDelivered)

		updated, err := svc.UpdateStatus(root, order.ID, models.StatusCompleted, "")
		require.NoError(t, err)
		assert.Equal(t, models.StatusCompleted, updated.Status)
	})
}

func TestGetAndAuditTrail(t *testing.T) {
	setupDB(t)
	svc := services.NewOrderService()
	order := seedOrder(t, models.StatusPending)

	_, err := svc.UpdateStatus(staff(1), order.ID, models.StatusConfirmed, "")
	require.NoError(t, err)
	_, err = svc.UpdateStatus(staff(1), order.ID, models.StatusInProgress, "")
	require.NoError(t, err)

	t.Run("owner sees the order", func(t *testing.T) {
		got, err := svc.Get(customer(1), order.ID)
		require.NoError(t, err)
		assert.Equal(t, order.ID, got.ID)
	})

	t.Run("stranger does not", func(t *testing.T) {
		_, err := svc.Get(customer(2), order.ID)
		ge := guard.As(err)
		require.NotNil(t, ge)
		assert.Equal(t, guard.KindForbidden, ge.Kind)
	})

	t.Run("audit trail is ordered oldest first", func(t *testing.T) {
		logs, err := svc.AuditTrail(customer(1), order.ID)
		require.NoError(t, err)
		require.Len(t, logs, 2)
		assert.Equal(t, models.StatusConfirmed, logs[0].ToStatus)
		assert.Equal(t, models.StatusInProgress, logs[1].ToStatus)
	})
}
