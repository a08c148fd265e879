package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	catalogdomain "github.com/warungkit/warungpos/internal/catalog/domain"
	catalogrepo "github.com/warungkit/warungpos/internal/catalog/repository"
	catalogsvc "github.com/warungkit/warungpos/internal/catalog/service"
	"github.com/warungkit/warungpos/internal/clock"
	"github.com/warungkit/warungpos/internal/config"
	"github.com/warungkit/warungpos/internal/idgen"
	"github.com/warungkit/warungpos/internal/live"
	orderdomain "github.com/warungkit/warungpos/internal/order/domain"
	orderrepo "github.com/warungkit/warungpos/internal/order/repository"
	ordersvc "github.com/warungkit/warungpos/internal/order/service"
	paymentdomain "github.com/warungkit/warungpos/internal/payment/domain"
	paymentrepo "github.com/warungkit/warungpos/internal/payment/repository"
	paymentsvc "github.com/warungkit/warungpos/internal/payment/service"
	reportdomain "github.com/warungkit/warungpos/internal/report/domain"
	reportrepo "github.com/warungkit/warungpos/internal/report/repository"
	reportsvc "github.com/warungkit/warungpos/internal/report/service"
	userdomain "github.com/warungkit/warungpos/internal/user/domain"
	userrepo "github.com/warungkit/warungpos/internal/user/repository"
	usersvc "github.com/warungkit/warungpos/internal/user/service"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type testServer struct {
	srv       *Server
	db        *gorm.DB
	itemID    string
	cashierID string
	adminID   string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	engine := newTestEngine(t)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&catalogdomain.MenuCategory{},
		&catalogdomain.MenuItem{},
		&catalogdomain.TaxSettings{},
		&orderdomain.Order{},
		&orderdomain.OrderItem{},
		&paymentdomain.Transaction{},
		&reportdomain.DailySummary{},
		&userdomain.User{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	fake := clock.NewFakeClock(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))
	numbers := idgen.New(fake)
	nop := zap.NewNop()

	category := catalogdomain.MenuCategory{ID: node.Generate(), Name: "Coffee", IsActive: true}
	require.NoError(t, db.Create(&category).Error)
	item := catalogdomain.MenuItem{
		ID: node.Generate(), CategoryID: category.ID,
		Name: "Cappuccino", Price: 30000, IsTaxable: true, IsActive: true,
	}
	require.NoError(t, db.Create(&item).Error)
	require.NoError(t, db.Create(&catalogdomain.TaxSettings{
		ID: node.Generate(), DefaultTaxRateBp: 1000, TaxName: "PPN", IsEnabled: true,
	}).Error)

	catalogRepo := catalogrepo.Provide()
	orderRepo := orderrepo.Provide()
	paymentRepo := paymentrepo.Provide()

	catalogSvc := catalogsvc.New(catalogsvc.Params{
		DB: db, Log: nop, GenID: node, Clock: fake, Repo: catalogRepo,
	})
	orderSvc := ordersvc.New(ordersvc.Params{
		DB: db, Log: nop, GenID: node, Clock: fake, Numbers: numbers,
		Repo: orderRepo, CatalogRepo: catalogRepo,
	})
	hub := live.NewHub(fake)
	reportSvc := reportsvc.New(reportsvc.Params{
		DB: db, Log: nop, GenID: node, Clock: fake,
		Repo: reportrepo.Provide(), PaymentRepo: paymentRepo, OrderRepo: orderRepo,
	})
	paymentSvc := paymentsvc.New(paymentsvc.Params{
		DB: db, Log: nop, GenID: node, Clock: fake, Numbers: numbers,
		Repo: paymentRepo, OrderRepo: orderRepo,
		Notifier: hub, Recomputer: reportSvc.(paymentdomain.Recomputer),
	})
	userSvc := usersvc.New(usersvc.Params{
		DB: db, Log: nop, GenID: node, Clock: fake, Repo: userrepo.Provide(),
	})

	storeCfg, err := config.NewStoreConfigHolder()
	require.NoError(t, err)

	srv := NewServer(ServerParams{
		Gin:        engine,
		Cfg:        config.Config{Environment: "test"},
		Log:        nop,
		Clock:      fake,
		StoreCfg:   storeCfg,
		CatalogSvc: catalogSvc,
		OrderSvc:   orderSvc,
		PaymentSvc: paymentSvc,
		ReportSvc:  reportSvc,
		UserSvc:    userSvc,
		LiveSales:  hub,
	})

	return &testServer{
		srv:       srv,
		db:        db,
		itemID:    item.ID.String(),
		cashierID: node.Generate().String(),
		adminID:   node.Generate().String(),
	}
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	metrics := NewHTTPMetricsWithRegisterer(prometheus.NewRegistry())
	return NewEngine(config.Config{Environment: "test"}, zap.NewNop(), metrics)
}

func (ts *testServer) do(t *testing.T, method, path string, body any, userID string, role userdomain.Role) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
		req.Header.Set("X-User-Role", string(role))
	}

	rec := httptest.NewRecorder()
	ts.srv.Engine().ServeHTTP(rec, req)
	return rec
}

func TestOrderEndpointsRequireIdentity(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/orders", gin.H{"items": []any{}}, "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateOrderAndPayCash(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/orders", gin.H{
		"items": []gin.H{{"menu_item_id": ts.itemID, "quantity": 2}},
	}, ts.cashierID, userdomain.RoleCashier)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var order orderdomain.OrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	assert.Equal(t, int64(60000), order.SubtotalAmount)
	assert.Equal(t, int64(6000), order.TaxAmount)
	assert.Equal(t, int64(66000), order.TotalAmount)

	rec = ts.do(t, http.MethodPost, "/api/payments/process", gin.H{
		"order_id":       order.ID,
		"payment_method": "CASH",
		"amount_paid":    70000,
	}, ts.cashierID, userdomain.RoleCashier)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var payment paymentdomain.PaymentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payment))
	assert.Equal(t, int64(4000), payment.ChangeAmount)
	assert.Equal(t, paymentdomain.TransactionStatusCompleted, payment.Status)

	// Paying the same order again is an invalid-state conflict.
	rec = ts.do(t, http.MethodPost, "/api/payments/process", gin.H{
		"order_id":       order.ID,
		"payment_method": "CASH",
		"amount_paid":    70000,
	}, ts.cashierID, userdomain.RoleCashier)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestTransactionsRequireFinanceRole(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/transactions?start=2026-03-14&end=2026-03-14", nil, ts.cashierID, userdomain.RoleCashier)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/transactions?start=2026-03-14&end=2026-03-14", nil, ts.adminID, userdomain.RoleFinanceOfficer)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDailySummaryZeroFallback(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/reports/daily-summary/2026-03-14", nil, ts.adminID, userdomain.RoleFinanceOfficer)
	require.Equal(t, http.StatusOK, rec.Code)

	var summary reportdomain.SummaryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, int64(0), summary.TotalSales)
	assert.Equal(t, int64(0), summary.TotalTransactions)

	rec = ts.do(t, http.MethodGet, "/api/reports/daily-summary/not-a-date", nil, ts.adminID, userdomain.RoleFinanceOfficer)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminMenuGuard(t *testing.T) {
	ts := newTestServer(t)

	body := gin.H{"name": "Snacks"}
	rec := ts.do(t, http.MethodPost, "/api/admin/menu/categories", body, ts.cashierID, userdomain.RoleCashier)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/admin/menu/categories", body, ts.adminID, userdomain.RoleAdmin)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestGetMissingOrderIs404(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, fmt.Sprintf("/api/orders/%d", 123456789), nil, ts.cashierID, userdomain.RoleCashier)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
