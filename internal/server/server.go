package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/warungkit/warungpos/internal/catalog"
	catalogdomain "github.com/warungkit/warungpos/internal/catalog/domain"
	"github.com/warungkit/warungpos/internal/clock"
	"github.com/warungkit/warungpos/internal/config"
	"github.com/warungkit/warungpos/internal/live"
	"github.com/warungkit/warungpos/internal/order"
	orderdomain "github.com/warungkit/warungpos/internal/order/domain"
	"github.com/warungkit/warungpos/internal/payment"
	paymentdomain "github.com/warungkit/warungpos/internal/payment/domain"
	"github.com/warungkit/warungpos/internal/ratelimit"
	"github.com/warungkit/warungpos/internal/report"
	reportdomain "github.com/warungkit/warungpos/internal/report/domain"
	"github.com/warungkit/warungpos/internal/user"
	userdomain "github.com/warungkit/warungpos/internal/user/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	catalog.Module,
	order.Module,
	payment.Module,
	report.Module,
	user.Module,
	live.Module,
	ratelimit.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, log *zap.Logger, metrics *HTTPMetrics) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())
	r.Use(RequestLogMiddleware(log))
	r.Use(metrics.Middleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(cfg config.Config, log *zap.Logger) *gin.Engine {
	return NewEngine(cfg, log, NewHTTPMetrics())
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine         *gin.Engine
	cfg            config.Config
	log            *zap.Logger
	clock          clock.Clock
	storeCfg       *config.StoreConfigHolder
	catalogSvc     catalogdomain.Service
	orderSvc       orderdomain.Service
	paymentSvc     paymentdomain.Service
	reportSvc      reportdomain.Service
	userSvc        userdomain.Service
	liveSales      *live.Hub
	paymentLimiter *ratelimit.PaymentLimiter
}

type ServerParams struct {
	fx.In

	Gin            *gin.Engine
	Cfg            config.Config
	Log            *zap.Logger
	Clock          clock.Clock
	StoreCfg       *config.StoreConfigHolder
	CatalogSvc     catalogdomain.Service
	OrderSvc       orderdomain.Service
	PaymentSvc     paymentdomain.Service
	ReportSvc      reportdomain.Service
	UserSvc        userdomain.Service
	LiveSales      *live.Hub                 `optional:"true"`
	PaymentLimiter *ratelimit.PaymentLimiter `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:         p.Gin,
		cfg:            p.Cfg,
		log:            p.Log.Named("http.server"),
		clock:          p.Clock,
		storeCfg:       p.StoreCfg,
		catalogSvc:     p.CatalogSvc,
		orderSvc:       p.OrderSvc,
		paymentSvc:     p.PaymentSvc,
		reportSvc:      p.ReportSvc,
		userSvc:        p.UserSvc,
		liveSales:      p.LiveSales,
		paymentLimiter: p.PaymentLimiter,
	}

	s.registerAPIRoutes()
	s.registerAdminRoutes()

	return s
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	api.GET("/store", s.GetStoreInfo)

	// -------- Menu (read side) --------
	api.GET("/menu/categories", s.ListMenuCategories)
	api.GET("/menu/categories/:id/items", s.ListMenuItems)
	api.GET("/menu/items/:id", s.GetMenuItem)
	api.GET("/menu/tax-settings", s.GetTaxSettings)

	// -------- Orders --------
	api.POST("/orders", s.IdentityRequired(), s.CreateOrder)
	api.GET("/orders/:id", s.IdentityRequired(), s.GetOrder)
	api.PUT("/orders/:id", s.IdentityRequired(), s.ReplaceOrder)
	api.POST("/orders/:id/cancel", s.IdentityRequired(), s.CancelOrder)

	// -------- Payments --------
	api.POST("/payments/process", s.IdentityRequired(), s.PaymentRateLimit(), s.ProcessPayment)
	api.GET("/payments/:id", s.IdentityRequired(), s.GetPayment)
	api.GET("/payments/daily/:date", s.IdentityRequired(), s.RequireRole(userdomain.RoleFinanceOfficer, userdomain.RoleAdmin), s.GetDailyTransactions)
	// Provider settlement callback; authenticated upstream by the
	// payment gateway's signature check at the edge.
	api.POST("/payments/qris/confirm", s.ConfirmQRISPayment)

	// -------- Transactions --------
	api.GET("/transactions", s.IdentityRequired(), s.RequireRole(userdomain.RoleFinanceOfficer, userdomain.RoleAdmin), s.ListTransactions)
	api.GET("/transactions/count", s.IdentityRequired(), s.RequireRole(userdomain.RoleFinanceOfficer, userdomain.RoleAdmin), s.CountTransactions)
	api.GET("/transactions/:id", s.IdentityRequired(), s.RequireRole(userdomain.RoleFinanceOfficer, userdomain.RoleAdmin), s.GetTransaction)
	api.DELETE("/transactions/:id", s.IdentityRequired(), s.RequireRole(userdomain.RoleAdmin), s.DeleteTransaction)

	// -------- Reports --------
	api.GET("/reports/daily-summary/:date", s.IdentityRequired(), s.RequireRole(userdomain.RoleFinanceOfficer, userdomain.RoleAdmin), s.GetDailySummary)
	api.POST("/reports/daily-summary/:date/recompute", s.IdentityRequired(), s.RequireRole(userdomain.RoleFinanceOfficer, userdomain.RoleAdmin), s.RecomputeDailySummary)
	api.GET("/reports/top-selling", s.IdentityRequired(), s.RequireRole(userdomain.RoleFinanceOfficer, userdomain.RoleAdmin), s.GetTopSellingItems)

	api.GET("/live/sales", s.IdentityRequired(), s.StreamSales)
}

func (s *Server) registerAdminRoutes() {
	admin := s.engine.Group("/api/admin")
	admin.Use(s.IdentityRequired())
	admin.Use(s.RequireRole(userdomain.RoleAdmin))

	admin.POST("/menu/categories", s.CreateMenuCategory)
	admin.PUT("/menu/categories/:id", s.UpdateMenuCategory)
	admin.DELETE("/menu/categories/:id", s.DeleteMenuCategory)

	admin.POST("/menu/items", s.CreateMenuItem)
	admin.PUT("/menu/items/:id", s.UpdateMenuItem)
	admin.DELETE("/menu/items/:id", s.DeleteMenuItem)

	admin.PUT("/tax-settings", s.UpdateTaxSettings)

	admin.GET("/users", s.ListUsers)
	admin.POST("/users", s.CreateUser)
	admin.GET("/users/:id", s.GetUser)
	admin.PUT("/users/:id", s.UpdateUser)
	admin.DELETE("/users/:id", s.DeleteUser)
	admin.POST("/users/:id/reset-password", s.ResetUserPassword)
}
