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
	"github.com/warungkit/warungpos/internal/order/domain"
	"github.com/warungkit/warungpos/internal/order/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db        *gorm.DB
	clock     *clock.FakeClock
	orders    domain.Service
	taxableID string
	exemptID  string
	customID  string
	cashierID string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&catalogdomain.MenuCategory{},
		&catalogdomain.MenuItem{},
		&catalogdomain.TaxSettings{},
		&domain.Order{},
		&domain.OrderItem{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	fake := clock.NewFakeClock(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))

	category := catalogdomain.MenuCategory{ID: node.Generate(), Name: "Coffee", IsActive: true}
	require.NoError(t, db.Create(&category).Error)

	taxable := catalogdomain.MenuItem{
		ID: node.Generate(), CategoryID: category.ID,
		Name: "Cappuccino", Price: 30000, IsTaxable: true, IsActive: true,
	}
	exempt := catalogdomain.MenuItem{
		ID: node.Generate(), CategoryID: category.ID,
		Name: "Mineral Water", Price: 5000, IsTaxable: false, IsActive: true,
	}
	customRate := int64(500)
	custom := catalogdomain.MenuItem{
		ID: node.Generate(), CategoryID: category.ID,
		Name: "Bottled Juice", Price: 20000, IsTaxable: true,
		CustomTaxRateBp: &customRate, IsActive: true,
	}
	require.NoError(t, db.Create(&taxable).Error)
	require.NoError(t, db.Create(&exempt).Error)
	require.NoError(t, db.Create(&custom).Error)
	require.NoError(t, db.Create(&catalogdomain.TaxSettings{
		ID: node.Generate(), DefaultTaxRateBp: 1000, TaxName: "PPN", IsEnabled: true,
	}).Error)

	orders := New(Params{
		DB:          db,
		Log:         zap.NewNop(),
		GenID:       node,
		Clock:       fake,
		Numbers:     idgen.New(fake),
		Repo:        repository.Provide(),
		CatalogRepo: catalogrepo.Provide(),
	})

	return &fixture{
		db:        db,
		clock:     fake,
		orders:    orders,
		taxableID: taxable.ID.String(),
		exemptID:  exempt.ID.String(),
		customID:  custom.ID.String(),
		cashierID: node.Generate().String(),
	}
}

func TestCreateOrderPricesLines(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	order, err := fx.orders.Create(ctx, domain.CreateOrderRequest{
		CashierID: fx.cashierID,
		Items: []domain.OrderLineRequest{
			{MenuItemID: fx.taxableID, Quantity: 2},
			{MenuItemID: fx.exemptID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, order.OrderNumber)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, int64(65000), order.SubtotalAmount)
	assert.Equal(t, int64(6000), order.TaxAmount)
	assert.Equal(t, int64(71000), order.TotalAmount)
	require.Len(t, order.Items, 2)

	water := order.Items[1]
	assert.Equal(t, int64(0), water.TaxAmount)
	assert.False(t, water.IsTaxable)
	assert.Nil(t, water.TaxRateBp)
}

func TestCreateOrderCustomRateOverridesDefault(t *testing.T) {
	fx := newFixture(t)

	order, err := fx.orders.Create(context.Background(), domain.CreateOrderRequest{
		CashierID: fx.cashierID,
		Items:     []domain.OrderLineRequest{{MenuItemID: fx.customID, Quantity: 1}},
	})
	require.NoError(t, err)

	// 20000 at 500 bp, not the 1000 bp store default.
	assert.Equal(t, int64(1000), order.TaxAmount)
	require.NotNil(t, order.Items[0].TaxRateBp)
	assert.Equal(t, int64(500), *order.Items[0].TaxRateBp)
}

func TestCreateOrderAppliesDiscountAfterTax(t *testing.T) {
	fx := newFixture(t)

	order, err := fx.orders.Create(context.Background(), domain.CreateOrderRequest{
		CashierID:      fx.cashierID,
		Items:          []domain.OrderLineRequest{{MenuItemID: fx.taxableID, Quantity: 2}},
		DiscountAmount: 5000,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(60000), order.SubtotalAmount)
	assert.Equal(t, int64(6000), order.TaxAmount)
	assert.Equal(t, int64(61000), order.TotalAmount)
}

func TestCreateOrderValidation(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	_, err := fx.orders.Create(ctx, domain.CreateOrderRequest{
		CashierID: fx.cashierID,
		Items:     []domain.OrderLineRequest{{MenuItemID: fx.taxableID, Quantity: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = fx.orders.Create(ctx, domain.CreateOrderRequest{
		CashierID:      fx.cashierID,
		Items:          []domain.OrderLineRequest{{MenuItemID: fx.taxableID, Quantity: 1}},
		DiscountAmount: -1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidDiscount)

	_, err = fx.orders.Create(ctx, domain.CreateOrderRequest{
		CashierID: fx.cashierID,
		Items:     []domain.OrderLineRequest{{MenuItemID: "999999999", Quantity: 1}},
	})
	assert.ErrorIs(t, err, catalogdomain.ErrItemNotFound)
}

func TestReplaceReprices(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	order, err := fx.orders.Create(ctx, domain.CreateOrderRequest{
		CashierID: fx.cashierID,
		Items:     []domain.OrderLineRequest{{MenuItemID: fx.taxableID, Quantity: 2}},
	})
	require.NoError(t, err)

	replaced, err := fx.orders.Replace(ctx, order.ID, domain.CreateOrderRequest{
		CashierID: fx.cashierID,
		Items:     []domain.OrderLineRequest{{MenuItemID: fx.exemptID, Quantity: 3}},
	})
	require.NoError(t, err)

	assert.Equal(t, order.OrderNumber, replaced.OrderNumber)
	assert.Equal(t, int64(15000), replaced.SubtotalAmount)
	assert.Equal(t, int64(0), replaced.TaxAmount)
	assert.Equal(t, int64(15000), replaced.TotalAmount)
	require.Len(t, replaced.Items, 1)

	var count int64
	require.NoError(t, fx.db.Model(&domain.OrderItem{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestReplaceRejectsNonPendingOrder(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	order, err := fx.orders.Create(ctx, domain.CreateOrderRequest{
		CashierID: fx.cashierID,
		Items:     []domain.OrderLineRequest{{MenuItemID: fx.taxableID, Quantity: 1}},
	})
	require.NoError(t, err)
	require.NoError(t, fx.orders.Cancel(ctx, order.ID))

	_, err = fx.orders.Replace(ctx, order.ID, domain.CreateOrderRequest{
		CashierID: fx.cashierID,
		Items:     []domain.OrderLineRequest{{MenuItemID: fx.exemptID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrOrderNotPending)
}

func TestCancelIsIdempotent(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	order, err := fx.orders.Create(ctx, domain.CreateOrderRequest{
		CashierID: fx.cashierID,
		Items:     []domain.OrderLineRequest{{MenuItemID: fx.taxableID, Quantity: 1}},
	})
	require.NoError(t, err)

	require.NoError(t, fx.orders.Cancel(ctx, order.ID))
	require.NoError(t, fx.orders.Cancel(ctx, order.ID))

	got, err := fx.orders.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, got.Status)
}

func TestGetMissingOrder(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.orders.Get(context.Background(), "123456789")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = fx.orders.Get(context.Background(), "not-a-number")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}
