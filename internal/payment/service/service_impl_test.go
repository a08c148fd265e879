package service

import (
	"context"
	"strings"
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
	"github.com/warungkit/warungpos/internal/payment/domain"
	"github.com/warungkit/warungpos/internal/payment/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type recordingNotifier struct {
	orders []string
	totals []int64
}

func (n *recordingNotifier) SaleCompleted(orderNumber string, totalAmount int64) {
	n.orders = append(n.orders, orderNumber)
	n.totals = append(n.totals, totalAmount)
}

type recordingRecomputer struct {
	dates []time.Time
	err   error
}

func (r *recordingRecomputer) Recompute(ctx context.Context, date time.Time) error {
	r.dates = append(r.dates, date)
	return r.err
}

type fixture struct {
	db         *gorm.DB
	clock      *clock.FakeClock
	payments   domain.Service
	orders     orderdomain.Service
	notifier   *recordingNotifier
	recomputer *recordingRecomputer
	itemID     string
	cashierID  string
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
		&domain.Transaction{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	fake := clock.NewFakeClock(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))
	numbers := idgen.New(fake)

	category := catalogdomain.MenuCategory{ID: node.Generate(), Name: "Coffee", IsActive: true}
	require.NoError(t, db.Create(&category).Error)
	item := catalogdomain.MenuItem{
		ID:         node.Generate(),
		CategoryID: category.ID,
		Name:       "Cappuccino",
		Price:      30000,
		IsTaxable:  true,
		IsActive:   true,
	}
	require.NoError(t, db.Create(&item).Error)
	require.NoError(t, db.Create(&catalogdomain.TaxSettings{
		ID:               node.Generate(),
		DefaultTaxRateBp: 1000,
		TaxName:          "PPN",
		IsEnabled:        true,
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

	notifier := &recordingNotifier{}
	recomputer := &recordingRecomputer{}
	payments := New(Params{
		DB:         db,
		Log:        zap.NewNop(),
		GenID:      node,
		Clock:      fake,
		Numbers:    numbers,
		Repo:       repository.Provide(),
		OrderRepo:  orderrepo.Provide(),
		Notifier:   notifier,
		Recomputer: recomputer,
	})

	return &fixture{
		db:         db,
		clock:      fake,
		payments:   payments,
		orders:     orders,
		notifier:   notifier,
		recomputer: recomputer,
		itemID:     item.ID.String(),
		cashierID:  node.Generate().String(),
	}
}

func (f *fixture) createOrder(t *testing.T, quantity int) orderdomain.OrderResponse {
	t.Helper()
	order, err := f.orders.Create(context.Background(), orderdomain.CreateOrderRequest{
		CashierID: f.cashierID,
		Items: []orderdomain.OrderLineRequest{
			{MenuItemID: f.itemID, Quantity: quantity},
		},
	})
	require.NoError(t, err)
	return order
}

func TestProcessCashPayment(t *testing.T) {
	f := newFixture(t)
	order := f.createOrder(t, 2)
	require.Equal(t, int64(66000), order.TotalAmount)

	resp, err := f.payments.Process(context.Background(), domain.ProcessPaymentRequest{
		OrderID:       order.ID,
		PaymentMethod: "CASH",
		AmountPaid:    70000,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.TransactionStatusCompleted, resp.Status)
	assert.Equal(t, int64(4000), resp.ChangeAmount)
	assert.Equal(t, int64(66000), resp.OrderTotal)
	assert.Equal(t, int64(6000), resp.TaxAmount)
	assert.True(t, strings.HasPrefix(resp.ReferenceNumber, "TXN-"))
	require.NotNil(t, resp.CompletedAt)

	updated, err := f.orders.Get(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, orderdomain.OrderStatusCompleted, updated.Status)

	require.Len(t, f.notifier.orders, 1)
	assert.Equal(t, order.OrderNumber, f.notifier.orders[0])
	assert.Equal(t, int64(66000), f.notifier.totals[0])
	assert.Len(t, f.recomputer.dates, 1)
}

func TestProcessCashUnderpaymentRecordsNegativeChange(t *testing.T) {
	f := newFixture(t)
	order := f.createOrder(t, 2)

	payment, err := f.payments.Process(context.Background(), domain.ProcessPaymentRequest{
		OrderID:       order.ID,
		PaymentMethod: "CASH",
		AmountPaid:    60000,
	})
	require.NoError(t, err)

	// Underpayment still settles; the register owes the difference.
	assert.Equal(t, int64(-6000), payment.ChangeAmount)
	assert.Equal(t, domain.TransactionStatusCompleted, payment.Status)

	updated, err := f.orders.Get(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, orderdomain.OrderStatusCompleted, updated.Status)
}

func TestProcessRejectsSecondPayment(t *testing.T) {
	f := newFixture(t)
	order := f.createOrder(t, 1)

	_, err := f.payments.Process(context.Background(), domain.ProcessPaymentRequest{
		OrderID:       order.ID,
		PaymentMethod: "CASH",
		AmountPaid:    50000,
	})
	require.NoError(t, err)

	_, err = f.payments.Process(context.Background(), domain.ProcessPaymentRequest{
		OrderID:       order.ID,
		PaymentMethod: "CASH",
		AmountPaid:    50000,
	})
	// A completed order fails the pending check before the 1:1 guard.
	assert.ErrorIs(t, err, domain.ErrOrderNotPending)
}

func TestProcessRejectsCancelledOrder(t *testing.T) {
	f := newFixture(t)
	order := f.createOrder(t, 1)
	require.NoError(t, f.orders.Cancel(context.Background(), order.ID))

	_, err := f.payments.Process(context.Background(), domain.ProcessPaymentRequest{
		OrderID:       order.ID,
		PaymentMethod: "CASH",
		AmountPaid:    50000,
	})
	assert.ErrorIs(t, err, domain.ErrOrderNotPending)
}

func TestProcessRejectsUnknownMethod(t *testing.T) {
	f := newFixture(t)
	order := f.createOrder(t, 1)

	_, err := f.payments.Process(context.Background(), domain.ProcessPaymentRequest{
		OrderID:       order.ID,
		PaymentMethod: "CHEQUE",
		AmountPaid:    50000,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidMethod)
}

func TestQRISLifecycle(t *testing.T) {
	f := newFixture(t)
	order := f.createOrder(t, 2)

	resp, err := f.payments.Process(context.Background(), domain.ProcessPaymentRequest{
		OrderID:       order.ID,
		PaymentMethod: "QRIS",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionStatusPending, resp.Status)
	assert.Equal(t, int64(66000), resp.AmountPaid)
	assert.Contains(t, resp.QRCodeData, resp.ReferenceNumber)
	assert.Empty(t, f.notifier.orders)

	pending, err := f.orders.Get(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, orderdomain.OrderStatusPending, pending.Status)

	confirmed, err := f.payments.ConfirmQRIS(context.Background(), domain.ConfirmQRISRequest{
		ReferenceNumber: resp.ReferenceNumber,
		Succeeded:       true,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionStatusCompleted, confirmed.Status)
	require.NotNil(t, confirmed.CompletedAt)

	settled, err := f.orders.Get(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, orderdomain.OrderStatusCompleted, settled.Status)
	require.Len(t, f.notifier.orders, 1)

	_, err = f.payments.ConfirmQRIS(context.Background(), domain.ConfirmQRISRequest{
		ReferenceNumber: resp.ReferenceNumber,
		Succeeded:       true,
	})
	assert.ErrorIs(t, err, domain.ErrTransactionNotPending)
}

func TestQRISFailureKeepsOrderPending(t *testing.T) {
	f := newFixture(t)
	order := f.createOrder(t, 1)

	resp, err := f.payments.Process(context.Background(), domain.ProcessPaymentRequest{
		OrderID:       order.ID,
		PaymentMethod: "QRIS",
	})
	require.NoError(t, err)

	failed, err := f.payments.ConfirmQRIS(context.Background(), domain.ConfirmQRISRequest{
		ReferenceNumber: resp.ReferenceNumber,
		Succeeded:       false,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionStatusFailed, failed.Status)
	assert.Empty(t, f.notifier.orders)

	updated, err := f.orders.Get(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, orderdomain.OrderStatusPending, updated.Status)
}

func TestConfirmQRISUnknownReference(t *testing.T) {
	f := newFixture(t)

	_, err := f.payments.ConfirmQRIS(context.Background(), domain.ConfirmQRISRequest{
		ReferenceNumber: "TXN-DOES-NOT-EXIST",
		Succeeded:       true,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDailyTransactionsAndCount(t *testing.T) {
	f := newFixture(t)

	for i := 0; i < 2; i++ {
		order := f.createOrder(t, 1)
		_, err := f.payments.Process(context.Background(), domain.ProcessPaymentRequest{
			OrderID:       order.ID,
			PaymentMethod: "CASH",
			AmountPaid:    40000,
		})
		require.NoError(t, err)
		f.clock.Advance(time.Hour)
	}

	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	details, err := f.payments.GetDailyTransactions(context.Background(), day)
	require.NoError(t, err)
	require.Len(t, details, 2)
	assert.Equal(t, "Cappuccino", details[0].Items[0].ItemName)

	count, err := f.payments.Count(context.Background(), day, day.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	empty, err := f.payments.GetDailyTransactions(context.Background(), day.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestDeleteTransaction(t *testing.T) {
	f := newFixture(t)
	order := f.createOrder(t, 1)

	resp, err := f.payments.Process(context.Background(), domain.ProcessPaymentRequest{
		OrderID:       order.ID,
		PaymentMethod: "CASH",
		AmountPaid:    40000,
	})
	require.NoError(t, err)
	recomputes := len(f.recomputer.dates)

	require.NoError(t, f.payments.Delete(context.Background(), resp.TransactionID))
	assert.Len(t, f.recomputer.dates, recomputes+1)

	_, err = f.payments.Get(context.Background(), resp.TransactionID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
