package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	catalogdomain "github.com/warungkit/warungpos/internal/catalog/domain"
	catalogrepo "github.com/warungkit/warungpos/internal/catalog/repository"
	"github.com/warungkit/warungpos/internal/clock"
	"github.com/warungkit/warungpos/internal/idgen"
	orderdomain "github.com/warungkit/warungpos/internal/order/domain"
	orderrepo "github.com/warungkit/warungpos/internal/order/repository"
	ordersvc "github.com/warungkit/warungpos/internal/order/service"
	paymentdomain "github.com/warungkit/warungpos/internal/payment/domain"
	paymentrepo "github.com/warungkit/warungpos/internal/payment/repository"
	paymentsvc "github.com/warungkit/warungpos/internal/payment/service"
	"github.com/warungkit/warungpos/internal/report/domain"
	"github.com/warungkit/warungpos/internal/report/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	clock    *clock.FakeClock
	reports  domain.Service
	orders   orderdomain.Service
	payments paymentdomain.Service
	espresso catalogdomain.MenuItem
	latte    catalogdomain.MenuItem
	cashier  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&catalogdomain.MenuCategory{},
		&catalogdomain.MenuItem{},
		&catalogdomain.TaxSettings{},
		&orderdomain.Order{},
		&orderdomain.OrderItem{},
		&paymentdomain.Transaction{},
		&domain.DailySummary{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	fake := clock.NewFakeClock(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))
	numbers := idgen.New(fake)

	category := catalogdomain.MenuCategory{ID: node.Generate(), Name: "Coffee", IsActive: true}
	require.NoError(t, db.Create(&category).Error)
	espresso := catalogdomain.MenuItem{
		ID: node.Generate(), CategoryID: category.ID,
		Name: "Espresso", Price: 20000, IsTaxable: true, IsActive: true,
	}
	latte := catalogdomain.MenuItem{
		ID: node.Generate(), CategoryID: category.ID,
		Name: "Latte", Price: 30000, IsTaxable: true, IsActive: true,
	}
	require.NoError(t, db.Create(&espresso).Error)
	require.NoError(t, db.Create(&latte).Error)
	require.NoError(t, db.Create(&catalogdomain.TaxSettings{
		ID: node.Generate(), DefaultTaxRateBp: 1000, TaxName: "PPN", IsEnabled: true,
	}).Error)

	orders := ordersvc.New(ordersvc.Params{
		DB:          db,
		Log:         zap.NewNop(),
		GenID:       node,
		Clock:       fake,
		Numbers:     numbers,
		Repo:        orderrepo.Provide(),
		CatalogRepo: catalogrepo.Provide(),
	})
	payments := paymentsvc.New(paymentsvc.Params{
		DB:        db,
		Log:       zap.NewNop(),
		GenID:     node,
		Clock:     fake,
		Numbers:   numbers,
		Repo:      paymentrepo.Provide(),
		OrderRepo: orderrepo.Provide(),
	})
	reports := New(Params{
		DB:          db,
		Log:         zap.NewNop(),
		GenID:       node,
		Clock:       fake,
		Repo:        repository.Provide(),
		PaymentRepo: paymentrepo.Provide(),
		OrderRepo:   orderrepo.Provide(),
	})

	return &fixture{
		db:       db,
		clock:    fake,
		reports:  reports,
		orders:   orders,
		payments: payments,
		espresso: espresso,
		latte:    latte,
		cashier:  node.Generate().String(),
	}
}

func (f *fixture) sell(t *testing.T, item catalogdomain.MenuItem, quantity int, method string) {
	t.Helper()
	order, err := f.orders.Create(context.Background(), orderdomain.CreateOrderRequest{
		CashierID: f.cashier,
		Items: []orderdomain.OrderLineRequest{
			{MenuItemID: item.ID.String(), Quantity: quantity},
		},
	})
	require.NoError(t, err)

	resp, err := f.payments.Process(context.Background(), paymentdomain.ProcessPaymentRequest{
		OrderID:       order.ID,
		PaymentMethod: method,
		AmountPaid:    order.TotalAmount,
	})
	require.NoError(t, err)
	if method == "QRIS" {
		_, err = f.payments.ConfirmQRIS(context.Background(), paymentdomain.ConfirmQRISRequest{
			ReferenceNumber: resp.ReferenceNumber,
			Succeeded:       true,
		})
		require.NoError(t, err)
	}
}

func TestRecomputeAggregatesCompletedSales(t *testing.T) {
	f := newFixture(t)
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	// 2 espresso cash (44000 incl 4000 tax), 1 latte via QRIS (33000 incl 3000 tax).
	f.sell(t, f.espresso, 2, "CASH")
	f.sell(t, f.latte, 1, "QRIS")

	require.NoError(t, f.reports.Recompute(context.Background(), day))

	summary, err := f.reports.GetSummary(context.Background(), day)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.TotalTransactions)
	assert.Equal(t, int64(77000), summary.TotalSales)
	assert.Equal(t, int64(7000), summary.TotalTax)
	assert.Equal(t, int64(44000), summary.CashTotal)
	assert.Equal(t, int64(33000), summary.QRISTotal)
	assert.Equal(t, int64(3), summary.ItemsSold)
}

func TestRecomputeIsIdempotent(t *testing.T) {
	f := newFixture(t)
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	f.sell(t, f.espresso, 1, "CASH")

	require.NoError(t, f.reports.Recompute(context.Background(), day))
	require.NoError(t, f.reports.Recompute(context.Background(), day))

	summary, err := f.reports.GetSummary(context.Background(), day)
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.TotalTransactions)
	assert.Equal(t, int64(22000), summary.TotalSales)

	var count int64
	require.NoError(t, f.db.Model(&domain.DailySummary{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRecomputeIgnoresPendingSettlements(t *testing.T) {
	f := newFixture(t)
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	order, err := f.orders.Create(context.Background(), orderdomain.CreateOrderRequest{
		CashierID: f.cashier,
		Items: []orderdomain.OrderLineRequest{
			{MenuItemID: f.espresso.ID.String(), Quantity: 1},
		},
	})
	require.NoError(t, err)
	_, err = f.payments.Process(context.Background(), paymentdomain.ProcessPaymentRequest{
		OrderID:       order.ID,
		PaymentMethod: "QRIS",
	})
	require.NoError(t, err)

	require.NoError(t, f.reports.Recompute(context.Background(), day))

	summary, err := f.reports.GetSummary(context.Background(), day)
	require.NoError(t, err)
	assert.Equal(t, int64(0), summary.TotalTransactions)
	assert.Equal(t, int64(0), summary.TotalSales)
}

func TestGetSummaryMissingDay(t *testing.T) {
	f := newFixture(t)

	_, err := f.reports.GetSummary(context.Background(), time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTopSellingItems(t *testing.T) {
	f := newFixture(t)
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	f.sell(t, f.espresso, 3, "CASH")
	f.sell(t, f.latte, 1, "CASH")

	items, err := f.reports.TopSellingItems(context.Background(), day, day.Add(24*time.Hour), 10)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Espresso", items[0].ItemName)
	assert.Equal(t, int64(3), items[0].QuantitySold)
	assert.Equal(t, int64(66000), items[0].TotalRevenue)
	assert.Equal(t, "Latte", items[1].ItemName)

	_, err = f.reports.TopSellingItems(context.Background(), day, day, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}
