package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/warungkit/warungpos/internal/catalog/domain"
	"github.com/warungkit/warungpos/internal/clock"
	"github.com/warungkit/warungpos/internal/idgen"
	"github.com/warungkit/warungpos/internal/order/domain"
	"github.com/warungkit/warungpos/internal/tax"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Clock       clock.Clock
	Numbers     *idgen.Generator
	Repo        domain.Repository
	CatalogRepo catalogdomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	clock       clock.Clock
	numbers     *idgen.Generator
	repo        domain.Repository
	catalogRepo catalogdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("order.service"),
		genID:       p.GenID,
		clock:       p.Clock,
		numbers:     p.Numbers,
		repo:        p.Repo,
		catalogRepo: p.CatalogRepo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateOrderRequest) (domain.OrderResponse, error) {
	cashierID, err := parseID(req.CashierID)
	if err != nil {
		return domain.OrderResponse{}, err
	}
	if req.DiscountAmount < 0 {
		return domain.OrderResponse{}, domain.ErrInvalidDiscount
	}

	now := s.clock.Now()
	order := domain.Order{
		ID:             s.genID.Generate(),
		OrderNumber:    s.numbers.OrderNumber(),
		CashierID:      cashierID,
		OrderDate:      now,
		DiscountAmount: req.DiscountAmount,
		Status:         domain.OrderStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items, subtotal, taxTotal, err := s.priceLines(ctx, tx, order.ID, req.Items)
		if err != nil {
			return err
		}

		order.Items = items
		order.SubtotalAmount = subtotal
		order.TaxAmount = taxTotal
		order.TotalAmount = subtotal + taxTotal - req.DiscountAmount

		return s.repo.Insert(ctx, tx, &order)
	})
	if err != nil {
		return domain.OrderResponse{}, err
	}

	s.log.Info("order created",
		zap.String("order_number", order.OrderNumber),
		zap.Int64("total_amount", order.TotalAmount),
	)
	return toOrderResponse(order), nil
}

func (s *Service) Get(ctx context.Context, id string) (domain.OrderResponse, error) {
	orderID, err := parseID(id)
	if err != nil {
		return domain.OrderResponse{}, err
	}

	order, err := s.repo.FindByID(ctx, s.db, orderID)
	if err != nil {
		return domain.OrderResponse{}, err
	}
	if order == nil {
		return domain.OrderResponse{}, domain.ErrNotFound
	}
	return toOrderResponse(*order), nil
}

func (s *Service) Replace(ctx context.Context, id string, req domain.CreateOrderRequest) (domain.OrderResponse, error) {
	orderID, err := parseID(id)
	if err != nil {
		return domain.OrderResponse{}, err
	}
	if req.DiscountAmount < 0 {
		return domain.OrderResponse{}, domain.ErrInvalidDiscount
	}

	var order *domain.Order
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err = s.repo.FindByIDForUpdate(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status != domain.OrderStatusPending {
			return domain.ErrOrderNotPending
		}

		if err := s.repo.DeleteItems(ctx, tx, order.ID); err != nil {
			return err
		}

		items, subtotal, taxTotal, err := s.priceLines(ctx, tx, order.ID, req.Items)
		if err != nil {
			return err
		}
		if err := s.repo.InsertItems(ctx, tx, items); err != nil {
			return err
		}

		order.Items = items
		order.SubtotalAmount = subtotal
		order.TaxAmount = taxTotal
		order.DiscountAmount = req.DiscountAmount
		order.TotalAmount = subtotal + taxTotal - req.DiscountAmount
		order.UpdatedAt = s.clock.Now()

		return s.repo.Save(ctx, tx, order)
	})
	if err != nil {
		return domain.OrderResponse{}, err
	}

	return toOrderResponse(*order), nil
}

// Cancel moves a pending or completed order to cancelled. Cancelling an
// already cancelled order is a no-op.
func (s *Service) Cancel(ctx context.Context, id string) error {
	orderID, err := parseID(id)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.repo.FindByIDForUpdate(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status == domain.OrderStatusCancelled {
			return nil
		}
		return s.repo.UpdateStatus(ctx, tx, order.ID, domain.OrderStatusCancelled, s.clock.Now())
	})
}

// priceLines resolves and prices every requested line. The order-level
// discount is not distributed across lines; it is applied once to the
// order total after tax.
func (s *Service) priceLines(ctx context.Context, tx *gorm.DB, orderID snowflake.ID, lines []domain.OrderLineRequest) ([]domain.OrderItem, int64, int64, error) {
	settings, err := s.catalogRepo.GetTaxSettings(ctx, tx)
	if err != nil {
		return nil, 0, 0, err
	}
	if settings == nil {
		return nil, 0, 0, catalogdomain.ErrTaxSettingsNotFound
	}

	items := make([]domain.OrderItem, 0, len(lines))
	var subtotal, taxTotal int64

	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, 0, 0, domain.ErrInvalidQuantity
		}

		itemID, err := parseID(line.MenuItemID)
		if err != nil {
			return nil, 0, 0, err
		}
		menuItem, err := s.catalogRepo.FindItemByID(ctx, tx, itemID)
		if err != nil {
			return nil, 0, 0, err
		}
		if menuItem == nil {
			return nil, 0, 0, catalogdomain.ErrItemNotFound
		}

		lineSubtotal := menuItem.Price * int64(line.Quantity)
		rateBp, taxable := tax.Resolve(*settings, *menuItem)

		var lineTax int64
		var appliedRate *int64
		if taxable {
			lineTax = tax.LineTax(lineSubtotal, rateBp)
			rate := rateBp
			appliedRate = &rate
		}

		items = append(items, domain.OrderItem{
			ID:             s.genID.Generate(),
			OrderID:        orderID,
			MenuItemID:     menuItem.ID,
			ItemName:       menuItem.Name,
			Quantity:       line.Quantity,
			UnitPrice:      menuItem.Price,
			SubtotalAmount: lineSubtotal,
			TaxAmount:      lineTax,
			TotalAmount:    lineSubtotal + lineTax,
			IsTaxable:      menuItem.IsTaxable,
			TaxRateBp:      appliedRate,
			CreatedAt:      s.clock.Now(),
		})
		subtotal += lineSubtotal
		taxTotal += lineTax
	}

	return items, subtotal, taxTotal, nil
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

func toOrderResponse(order domain.Order) domain.OrderResponse {
	items := make([]domain.OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, domain.OrderItemResponse{
			ID:             item.ID.String(),
			MenuItemID:     item.MenuItemID.String(),
			ItemName:       item.ItemName,
			Quantity:       item.Quantity,
			UnitPrice:      item.UnitPrice,
			SubtotalAmount: item.SubtotalAmount,
			TaxAmount:      item.TaxAmount,
			TotalAmount:    item.TotalAmount,
			IsTaxable:      item.IsTaxable,
			TaxRateBp:      item.TaxRateBp,
		})
	}

	return domain.OrderResponse{
		ID:             order.ID.String(),
		OrderNumber:    order.OrderNumber,
		CashierID:      order.CashierID.String(),
		OrderDate:      order.OrderDate,
		SubtotalAmount: order.SubtotalAmount,
		TaxAmount:      order.TaxAmount,
		DiscountAmount: order.DiscountAmount,
		TotalAmount:    order.TotalAmount,
		Status:         order.Status,
		Items:          items,
		CreatedAt:      order.CreatedAt,
	}
}
