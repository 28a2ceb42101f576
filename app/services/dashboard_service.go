package services

import (
	"fmt"
	"time"

	"github.com/shashiranjanraj/washly/app/models"
	"github.com/shashiranjanraj/washly/app/repositories"
	"github.com/shashiranjanraj/washly/pkg/cache"
	"github.com/shashiranjanraj/washly/pkg/database"
	"github.com/shashiranjanraj/washly/pkg/guard"
)

// DashboardService aggregates order numbers for the admin screens. The
// aggregates are cached in Redis for a minute; dashboards tolerate
// slightly stale numbers in exchange for not hammering GROUP BY queries.
type DashboardService struct {
	orders *repositories.OrderRepository
}

func NewDashboardService() *DashboardService {
	return &DashboardService{orders: repositories.NewOrderRepository()}
}

// Dashboard is the aggregate snapshot returned to admin screens.
// Revenue figures are in the currency's smallest unit, growth is a
// percentage against the previous calendar month.
type Dashboard struct {
	OrdersByStatus    map[models.OrderStatus]int64 `json:"orders_by_status"`
	OpenOrders        int64                        `json:"open_orders"`
	Revenue           int64                        `json:"revenue"`
	AverageOrderValue int64                        `json:"average_order_value"`
	MonthlyGrowth     float64                      `json:"monthly_growth_pct"`
	Laundries         []LaundryRollup              `json:"laundries,omitempty"`
	GeneratedAt       time.Time                    `json:"generated_at"`
}

// LaundryRollup is one laundry's line on the platform dashboard.
type LaundryRollup struct {
	LaundryID uint   `json:"laundry_id"`
	Name      string `json:"name"`
	Orders    int64  `json:"orders"`
	Revenue   int64  `json:"revenue"`
}

const dashboardTTL = time.Minute

// ForLaundry builds the dashboard for one laundry after a tenant check.
func (s *DashboardService) ForLaundry(p *guard.Principal, laundryID uint) (*Dashboard, error) {
	if gerr := guard.AuthorizeTenant(p, laundryID); gerr != nil {
		return nil, gerr
	}
	return s.build(fmt.Sprintf("dashboard:laundry:%d", laundryID), laundryID)
}

// Platform builds the platform-wide dashboard with a per-laundry
// rollup. Super admin only, enforced at the route.
func (s *DashboardService) Platform() (*Dashboard, error) {
	d, err := s.build("dashboard:platform", 0)
	if err != nil {
		return nil, err
	}
	if d.Laundries == nil {
		d.Laundries, err = s.rollup()
		if err != nil {
			return nil, err
		}
		_ = cache.Set("dashboard:platform", d, dashboardTTL)
	}
	return d, nil
}

func (s *DashboardService) build(cacheKey string, laundryID uint) (*Dashboard, error) {
	var d Dashboard
	if cache.Get(cacheKey, &d) {
		return &d, nil
	}

	byStatus, err := s.orders.CountByStatus(laundryID)
	if err != nil {
		return nil, err
	}

	var open int64
	for status, n := range byStatus {
		if !status.Terminal() {
			open += n
		}
	}

	revenue, err := s.revenueBetween(laundryID, time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}

	var aov int64
	if completed := byStatus[models.StatusCompleted]; completed > 0 {
		aov = revenue / completed
	}

	growth, err := s.monthlyGrowth(laundryID)
	if err != nil {
		return nil, err
	}

	d = Dashboard{
		OrdersByStatus:    byStatus,
		OpenOrders:        open,
		Revenue:           revenue,
		AverageOrderValue: aov,
		MonthlyGrowth:     growth,
		GeneratedAt:       time.Now(),
	}
	_ = cache.Set(cacheKey, &d, dashboardTTL)
	return &d, nil
}

// revenueBetween sums totals of completed orders, optionally bounded by
// creation time. Zero bounds mean all time.
func (s *DashboardService) revenueBetween(laundryID uint, from, to time.Time) (int64, error) {
	var out struct{ Sum int64 }
	q := database.DB.Model(&models.Order{}).
		Select("COALESCE(SUM(total), 0) as sum").
		Where("status = ?", models.StatusCompleted)
	if laundryID != 0 {
		q = q.Where("laundry_id = ?", laundryID)
	}
	if !from.IsZero() {
		q = q.Where("created_at >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("created_at < ?", to)
	}
	err := q.Scan(&out).Error
	return out.Sum, err
}

// monthlyGrowth compares this calendar month's completed revenue to the
// previous month's, as a percentage. A month with no prior revenue
// reports 0 rather than infinity.
func (s *DashboardService) monthlyGrowth(laundryID uint) (float64, error) {
	now := time.Now()
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastMonth := thisMonth.AddDate(0, -1, 0)

	current, err := s.revenueBetween(laundryID, thisMonth, time.Time{})
	if err != nil {
		return 0, err
	}
	previous, err := s.revenueBetween(laundryID, lastMonth, thisMonth)
	if err != nil {
		return 0, err
	}
	if previous == 0 {
		return 0, nil
	}
	return float64(current-previous) / float64(previous) * 100, nil
}

// rollup lists every laundry with its order count and completed revenue.
func (s *DashboardService) rollup() ([]LaundryRollup, error) {
	var rows []LaundryRollup
	err := database.DB.Model(&models.Laundry{}).
		Select(`laundries.id as laundry_id, laundries.name,
			COUNT(orders.id) as orders,
			COALESCE(SUM(CASE WHEN orders.status = ? THEN orders.total ELSE 0 END), 0) as revenue`,
			models.StatusCompleted).
		Joins("LEFT JOIN orders ON orders.laundry_id = laundries.id").
		Group("laundries.id, laundries.name").
		Order("revenue DESC").
		Scan(&rows).Error
	return rows, err
}
