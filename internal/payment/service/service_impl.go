package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/warungkit/warungpos/internal/clock"
	"github.com/warungkit/warungpos/internal/db"
	"github.com/warungkit/warungpos/internal/idgen"
	orderdomain "github.com/warungkit/warungpos/internal/order/domain"
	"github.com/warungkit/warungpos/internal/payment/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Clock      clock.Clock
	Numbers    *idgen.Generator
	Repo       domain.Repository
	OrderRepo  orderdomain.Repository
	Notifier   domain.Notifier   `optional:"true"`
	Recomputer domain.Recomputer `optional:"true"`
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	clock      clock.Clock
	numbers    *idgen.Generator
	repo       domain.Repository
	orderRepo  orderdomain.Repository
	notifier   domain.Notifier
	recomputer domain.Recomputer
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("payment.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		numbers:    p.Numbers,
		repo:       p.Repo,
		orderRepo:  p.OrderRepo,
		notifier:   p.Notifier,
		recomputer: p.Recomputer,
	}
}

func (s *Service) Process(ctx context.Context, req domain.ProcessPaymentRequest) (domain.PaymentResponse, error) {
	orderID, err := parseID(req.OrderID)
	if err != nil {
		return domain.PaymentResponse{}, err
	}
	method, err := domain.ParseMethod(req.PaymentMethod)
	if err != nil {
		return domain.PaymentResponse{}, err
	}

	var (
		transaction domain.Transaction
		order       *orderdomain.Order
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err = s.orderRepo.FindByIDForUpdate(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return orderdomain.ErrNotFound
		}
		if order.Status != orderdomain.OrderStatusPending {
			return domain.ErrOrderNotPending
		}

		existing, err := s.repo.FindByOrderID(ctx, tx, order.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrOrderAlreadyPaid
		}

		now := s.clock.Now()
		reference := s.numbers.ReferenceNumber()
		transaction = domain.Transaction{
			ID:              s.genID.Generate(),
			OrderID:         order.ID,
			PaymentMethod:   method,
			ReferenceNumber: reference,
			AmountPaid:      req.AmountPaid,
			TransactionDate: now,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		switch method {
		case domain.PaymentMethodCash:
			// Change may go negative on underpayment; the register is
			// trusted to collect the difference.
			completed := now
			transaction.Status = domain.TransactionStatusCompleted
			transaction.ChangeAmount = req.AmountPaid - order.TotalAmount
			transaction.CompletedAt = &completed
			if err := s.orderRepo.UpdateStatus(ctx, tx, order.ID, orderdomain.OrderStatusCompleted, now); err != nil {
				return err
			}
		case domain.PaymentMethodQRIS:
			// QRIS settles the exact order total; the provider callback
			// flips the transaction once the customer scans and pays.
			transaction.Status = domain.TransactionStatusPending
			transaction.AmountPaid = order.TotalAmount
			transaction.QRCodeData = qrisPayload(order.TotalAmount, reference)
		}

		if err := s.repo.Insert(ctx, tx, &transaction); err != nil {
			if db.IsDuplicateKeyErr(err) {
				return domain.ErrOrderAlreadyPaid
			}
			return err
		}
		return nil
	})
	if err != nil {
		return domain.PaymentResponse{}, err
	}

	s.log.Info("payment processed",
		zap.String("order_number", order.OrderNumber),
		zap.String("method", string(method)),
		zap.String("status", string(transaction.Status)),
	)
	if transaction.Status == domain.TransactionStatusCompleted {
		s.afterSettlement(ctx, order.OrderNumber, order.TotalAmount, transaction.TransactionDate)
	}
	return s.toResponse(transaction, *order), nil
}

func (s *Service) Get(ctx context.Context, transactionID string) (domain.PaymentResponse, error) {
	id, err := parseID(transactionID)
	if err != nil {
		return domain.PaymentResponse{}, err
	}

	transaction, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.PaymentResponse{}, err
	}
	if transaction == nil {
		return domain.PaymentResponse{}, domain.ErrNotFound
	}
	order, err := s.orderRepo.FindByID(ctx, s.db, transaction.OrderID)
	if err != nil {
		return domain.PaymentResponse{}, err
	}
	if order == nil {
		return domain.PaymentResponse{}, orderdomain.ErrNotFound
	}
	return s.toResponse(*transaction, *order), nil
}

func (s *Service) ConfirmQRIS(ctx context.Context, req domain.ConfirmQRISRequest) (domain.PaymentResponse, error) {
	var (
		transaction *domain.Transaction
		order       *orderdomain.Order
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		transaction, err = s.repo.FindByReference(ctx, tx, strings.TrimSpace(req.ReferenceNumber))
		if err != nil {
			return err
		}
		if transaction == nil {
			return domain.ErrNotFound
		}
		if transaction.Status != domain.TransactionStatusPending &&
			transaction.Status != domain.TransactionStatusProcessing {
			return domain.ErrTransactionNotPending
		}

		order, err = s.orderRepo.FindByIDForUpdate(ctx, tx, transaction.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return orderdomain.ErrNotFound
		}

		now := s.clock.Now()
		if req.Succeeded {
			transaction.Status = domain.TransactionStatusCompleted
			transaction.CompletedAt = &now
			if err := s.orderRepo.UpdateStatus(ctx, tx, order.ID, orderdomain.OrderStatusCompleted, now); err != nil {
				return err
			}
		} else {
			// The order stays pending so the cashier can retry with
			// another method.
			transaction.Status = domain.TransactionStatusFailed
		}
		transaction.UpdatedAt = now

		return s.repo.Save(ctx, tx, transaction)
	})
	if err != nil {
		return domain.PaymentResponse{}, err
	}

	s.log.Info("qris settlement confirmed",
		zap.String("reference_number", transaction.ReferenceNumber),
		zap.Bool("succeeded", req.Succeeded),
	)
	if transaction.Status == domain.TransactionStatusCompleted {
		s.afterSettlement(ctx, order.OrderNumber, order.TotalAmount, transaction.TransactionDate)
	}
	return s.toResponse(*transaction, *order), nil
}

func (s *Service) ListByDateRange(ctx context.Context, from, to time.Time) ([]domain.TransactionDetail, error) {
	transactions, err := s.repo.ListByDateRange(ctx, s.db, from.UTC(), to.UTC())
	if err != nil {
		return nil, err
	}
	return s.toDetails(ctx, transactions)
}

func (s *Service) GetDailyTransactions(ctx context.Context, date time.Time) ([]domain.TransactionDetail, error) {
	from := date.UTC().Truncate(24 * time.Hour)
	return s.ListByDateRange(ctx, from, from.Add(24*time.Hour))
}

func (s *Service) Count(ctx context.Context, from, to time.Time) (int64, error) {
	return s.repo.CountByDateRange(ctx, s.db, from.UTC(), to.UTC())
}

func (s *Service) Delete(ctx context.Context, transactionID string) error {
	id, err := parseID(transactionID)
	if err != nil {
		return err
	}

	var date time.Time
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		transaction, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if transaction == nil {
			return domain.ErrNotFound
		}
		date = transaction.TransactionDate
		return s.repo.Delete(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	s.log.Info("transaction deleted", zap.String("transaction_id", id.String()))
	s.recompute(ctx, date)
	return nil
}

// afterSettlement runs the best-effort post-commit hooks. A failure here
// never unwinds the settlement; it is logged and the summary catches up
// on the next recompute.
func (s *Service) afterSettlement(ctx context.Context, orderNumber string, totalAmount int64, at time.Time) {
	if s.notifier != nil {
		s.notifier.SaleCompleted(orderNumber, totalAmount)
	}
	s.recompute(ctx, at)
}

func (s *Service) recompute(ctx context.Context, date time.Time) {
	if s.recomputer == nil {
		return
	}
	if err := s.recomputer.Recompute(ctx, date); err != nil {
		s.log.Warn("daily summary recompute failed",
			zap.Time("date", date),
			zap.Error(err),
		)
	}
}

func (s *Service) toDetails(ctx context.Context, transactions []domain.Transaction) ([]domain.TransactionDetail, error) {
	details := make([]domain.TransactionDetail, 0, len(transactions))
	for _, transaction := range transactions {
		order, err := s.orderRepo.FindByID(ctx, s.db, transaction.OrderID)
		if err != nil {
			return nil, err
		}
		if order == nil {
			continue
		}

		lines := make([]domain.TransactionLineDetail, 0, len(order.Items))
		for _, item := range order.Items {
			lines = append(lines, domain.TransactionLineDetail{
				ItemName:       item.ItemName,
				Quantity:       item.Quantity,
				UnitPrice:      item.UnitPrice,
				SubtotalAmount: item.SubtotalAmount,
				TaxAmount:      item.TaxAmount,
				TotalAmount:    item.TotalAmount,
			})
		}
		details = append(details, domain.TransactionDetail{
			ID:              transaction.ID.String(),
			OrderNumber:     order.OrderNumber,
			PaymentMethod:   transaction.PaymentMethod,
			Status:          transaction.Status,
			AmountPaid:      transaction.AmountPaid,
			OrderTotal:      order.TotalAmount,
			TaxAmount:       order.TaxAmount,
			TransactionDate: transaction.TransactionDate,
			Items:           lines,
		})
	}
	return details, nil
}

func (s *Service) toResponse(transaction domain.Transaction, order orderdomain.Order) domain.PaymentResponse {
	return domain.PaymentResponse{
		TransactionID:   transaction.ID.String(),
		OrderID:         order.ID.String(),
		OrderNumber:     order.OrderNumber,
		PaymentMethod:   transaction.PaymentMethod,
		Status:          transaction.Status,
		AmountPaid:      transaction.AmountPaid,
		ChangeAmount:    transaction.ChangeAmount,
		OrderTotal:      order.TotalAmount,
		TaxAmount:       order.TaxAmount,
		ReferenceNumber: transaction.ReferenceNumber,
		QRCodeData:      transaction.QRCodeData,
		TransactionDate: transaction.TransactionDate,
		CompletedAt:     transaction.CompletedAt,
	}
}

func qrisPayload(amount int64, reference string) string {
	return fmt.Sprintf("00020126360014ID.CO.BRI.BRIVA0215%d520441555802ID5913CAFE2215020000%s63041D31", amount, reference)
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
