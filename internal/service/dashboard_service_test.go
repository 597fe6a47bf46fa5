package service

import (
	"context"
	"testing"
	"time"

	"github.com/pawhaven/internal/constants"
	"github.com/pawhaven/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDashboardRepo struct {
	overview repository.DashboardOverviewRow
	stock    repository.DashboardStockStatsRow
	trends   []repository.DashboardOrderTrendRow
	top      []repository.DashboardItemRankingRow
	startAt  time.Time
	endAt    time.Time
}

func (r *stubDashboardRepo) GetOverview(startAt, endAt time.Time) (repository.DashboardOverviewRow, error) {
	r.startAt, r.endAt = startAt, endAt
	return r.overview, nil
}

func (r *stubDashboardRepo) GetOrderTrends(startAt, endAt time.Time) ([]repository.DashboardOrderTrendRow, error) {
	r.startAt, r.endAt = startAt, endAt
	return r.trends, nil
}

func (r *stubDashboardRepo) GetStockStats(int64) (repository.DashboardStockStatsRow, error) {
	return r.stock, nil
}

func (r *stubDashboardRepo) GetTopItems(startAt, endAt time.Time, _ int) ([]repository.DashboardItemRankingRow, error) {
	r.startAt, r.endAt = startAt, endAt
	return r.top, nil
}

func fixedDashboardService(repo repository.DashboardRepository) *DashboardService {
	svc := NewDashboardService(repo, nil)
	svc.now = func() time.Time { return time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC) }
	return svc
}

func TestDashboardOverviewBuildsAlerts(t *testing.T) {
	repo := &stubDashboardRepo{
		overview: repository.DashboardOverviewRow{OrdersTotal: 14, PendingOrders: 12, PaidOrders: 2, RevenuePaid: 120.5},
		stock:    repository.DashboardStockStatsRow{ActiveProducts: 8, OutOfStockProducts: 1, AvailablePuppies: 3},
	}
	svc := fixedDashboardService(repo)

	resp, err := svc.GetOverview(context.Background(), DashboardQueryInput{Range: "today", Timezone: "UTC"})
	require.NoError(t, err)
	assert.Equal(t, "120.50", resp.KPI.RevenuePaid)
	assert.EqualValues(t, 3, resp.KPI.AvailablePuppies)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), repo.startAt)
	assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), repo.endAt)

	types := make([]string, 0, len(resp.Alerts))
	for _, alert := range resp.Alerts {
		types = append(types, alert.Type)
	}
	assert.ElementsMatch(t, []string{"out_of_stock_products", "pending_orders"}, types)
}

func TestDashboardTrendsFillsMissingDays(t *testing.T) {
	repo := &stubDashboardRepo{trends: []repository.DashboardOrderTrendRow{
		{Day: "2026-03-08", Orders: 2, Amount: 30},
	}}
	svc := fixedDashboardService(repo)

	resp, err := svc.GetTrends(context.Background(), DashboardQueryInput{Range: "7d"})
	require.NoError(t, err)
	require.Len(t, resp.Points, 7)
	assert.Equal(t, "2026-03-04", resp.Points[0].Date)
	assert.Equal(t, "2026-03-10", resp.Points[6].Date)
	assert.EqualValues(t, 2, resp.Points[4].Orders)
	assert.Equal(t, "30.00", resp.Points[4].Amount)
	assert.Equal(t, "0.00", resp.Points[0].Amount)
}

func TestDashboardRangeValidation(t *testing.T) {
	svc := fixedDashboardService(&stubDashboardRepo{})
	ctx := context.Background()

	_, err := svc.GetOverview(ctx, DashboardQueryInput{Range: "forever"})
	assert.ErrorIs(t, err, ErrDashboardRangeInvalid)

	_, err = svc.GetOverview(ctx, DashboardQueryInput{Range: "custom"})
	assert.ErrorIs(t, err, ErrDashboardRangeInvalid)

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 120)
	_, err = svc.GetOverview(ctx, DashboardQueryInput{Range: "custom", From: &from, To: &to})
	assert.ErrorIs(t, err, ErrDashboardRangeInvalid)
}

func TestDashboardRankingsNameFallback(t *testing.T) {
	repo := &stubDashboardRepo{top: []repository.DashboardItemRankingRow{
		{ItemType: constants.ItemTypePuppy, ItemID: 4, ItemName: " ", Quantity: 1, Amount: 450},
	}}
	resp, err := fixedDashboardService(repo).GetRankings(context.Background(), DashboardQueryInput{Range: "30d"})
	require.NoError(t, err)
	require.Len(t, resp.TopItems, 1)
	assert.Equal(t, "-", resp.TopItems[0].Name)
	assert.Equal(t, "450.00", resp.TopItems[0].Amount)
}

func TestUserDashboardCountsAndPagination(t *testing.T) {
	f := newShopFixture(t)
	user := f.createUser(t, "dash@example.test")
	food := f.createProduct(t, "Puppy Food", "10.00")
	toy := f.createProduct(t, "Chew Toy", "4.00")

	for i := 0; i < 4; i++ {
		f.addLine(t, user.ID, CartLineInput{ProductID: food.ID})
		order, err := f.orders.PlaceOrder(placeInput(user.ID))
		require.NoError(t, err)
		if i == 0 {
			_, err = f.orders.UpdateOrderStatus(order.ID, constants.OrderStatusShipped)
			require.NoError(t, err)
		}
	}
	f.addLine(t, user.ID, CartLineInput{ProductID: toy.ID, Quantity: 2})
	wishlist := newWishlistServiceForTest(f)
	_, err := wishlist.Add(user.ID, constants.ItemTypeProduct, toy.ID)
	require.NoError(t, err)

	svc := NewUserDashboardService(
		repository.NewUserRepository(f.db),
		repository.NewOrderRepository(f.db),
		repository.NewWishlistRepository(f.db),
		repository.NewCartRepository(f.db),
	)
	dash, err := svc.Get(user.ID, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, user.Email, dash.User.Email)
	assert.EqualValues(t, 4, dash.QuickStats.OrdersCount)
	assert.EqualValues(t, 1, dash.QuickStats.WishlistCount)
	assert.EqualValues(t, 2, dash.QuickStats.CartCount)
	assert.Len(t, dash.RecentOrders, 3)
	assert.Equal(t, Pagination{Total: 4, Page: 1, Limit: 3, TotalPages: 2}, dash.Pagination)

	second, err := svc.Get(user.ID, 2, 3)
	require.NoError(t, err)
	require.Len(t, second.RecentOrders, 1)

	_, err = svc.Get(9999, 1, 3)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDisplayOrderStatus(t *testing.T) {
	assert.Equal(t, "processing", displayOrderStatus(constants.OrderStatusPending))
	assert.Equal(t, "processing", displayOrderStatus(constants.OrderStatusProcessing))
	assert.Equal(t, "shipped", displayOrderStatus(constants.OrderStatusShipped))
	assert.Equal(t, "cancelled", displayOrderStatus(constants.OrderStatusCancelled))
}
