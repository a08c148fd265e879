package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/warungkit/warungpos/internal/clock"
	orderdomain "github.com/warungkit/warungpos/internal/order/domain"
	paymentdomain "github.com/warungkit/warungpos/internal/payment/domain"
	"github.com/warungkit/warungpos/internal/report/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultTopSellingLimit = 10

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Clock       clock.Clock
	Repo        domain.Repository
	PaymentRepo paymentdomain.Repository
	OrderRepo   orderdomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	clock       clock.Clock
	repo        domain.Repository
	paymentRepo paymentdomain.Repository
	orderRepo   orderdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("report.service"),
		genID:       p.GenID,
		clock:       p.Clock,
		repo:        p.Repo,
		paymentRepo: p.PaymentRepo,
		orderRepo:   p.OrderRepo,
	}
}

// Recompute rebuilds one day's summary from the completed transactions
// of that day. The rebuild is idempotent: running it twice for the same
// day yields the same row.
func (s *Service) Recompute(ctx context.Context, date time.Time) error {
	day := dayStart(date)

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		transactions, err := s.paymentRepo.ListCompletedByDateRange(ctx, tx, day, day.Add(24*time.Hour))
		if err != nil {
			return err
		}

		now := s.clock.Now()
		summary := domain.DailySummary{
			ID:          s.genID.Generate(),
			SummaryDate: day,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		for _, transaction := range transactions {
			order, err := s.orderRepo.FindByID(ctx, tx, transaction.OrderID)
			if err != nil {
				return err
			}
			if order == nil {
				continue
			}

			summary.TotalTransactions++
			summary.TotalSales += order.TotalAmount
			summary.TotalTax += order.TaxAmount
			summary.TotalDiscount += order.DiscountAmount
			for _, line := range order.Items {
				summary.ItemsSold += int64(line.Quantity)
			}
			switch transaction.PaymentMethod {
			case paymentdomain.PaymentMethodCash:
				summary.CashTotal += transaction.AmountPaid
			case paymentdomain.PaymentMethodQRIS:
				summary.QRISTotal += transaction.AmountPaid
			}
		}

		if err := s.repo.Upsert(ctx, tx, &summary); err != nil {
			return err
		}

		s.log.Debug("daily summary recomputed",
			zap.Time("summary_date", day),
			zap.Int64("total_transactions", summary.TotalTransactions),
			zap.Int64("total_sales", summary.TotalSales),
		)
		return nil
	})
}

func (s *Service) GetSummary(ctx context.Context, date time.Time) (domain.SummaryResponse, error) {
	summary, err := s.repo.FindByDate(ctx, s.db, dayStart(date))
	if err != nil {
		return domain.SummaryResponse{}, err
	}
	if summary == nil {
		return domain.SummaryResponse{}, domain.ErrNotFound
	}
	return domain.SummaryResponse{
		SummaryDate:       summary.SummaryDate,
		TotalTransactions: summary.TotalTransactions,
		TotalSales:        summary.TotalSales,
		TotalTax:          summary.TotalTax,
		TotalDiscount:     summary.TotalDiscount,
		CashTotal:         summary.CashTotal,
		QRISTotal:         summary.QRISTotal,
		ItemsSold:         summary.ItemsSold,
	}, nil
}

func (s *Service) TopSellingItems(ctx context.Context, from, to time.Time, limit int) ([]domain.TopSellingItem, error) {
	if !to.After(from) {
		return nil, domain.ErrInvalidRange
	}
	if limit <= 0 {
		limit = defaultTopSellingLimit
	}
	return s.repo.TopSelling(ctx, s.db, from.UTC(), to.UTC(), limit)
}

func dayStart(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}
