package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/warungkit/warungpos/internal/catalog/domain"
	"github.com/warungkit/warungpos/internal/clock"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("catalog.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.MenuCategoryResponse, error) {
	categories, err := s.repo.ListActiveCategories(ctx, s.db)
	if err != nil {
		return nil, err
	}

	out := make([]domain.MenuCategoryResponse, 0, len(categories))
	for _, category := range categories {
		out = append(out, toCategoryResponse(category, true))
	}
	return out, nil
}

func (s *Service) ListItemsByCategory(ctx context.Context, categoryID string) ([]domain.MenuItemResponse, error) {
	id, err := parseID(categoryID)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.ListActiveItemsByCategory(ctx, s.db, id)
	if err != nil {
		return nil, err
	}

	out := make([]domain.MenuItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toItemResponse(item))
	}
	return out, nil
}

func (s *Service) GetItem(ctx context.Context, id string) (domain.MenuItemResponse, error) {
	itemID, err := parseID(id)
	if err != nil {
		return domain.MenuItemResponse{}, err
	}

	item, err := s.repo.FindItemByID(ctx, s.db, itemID)
	if err != nil {
		return domain.MenuItemResponse{}, err
	}
	if item == nil {
		return domain.MenuItemResponse{}, domain.ErrItemNotFound
	}
	return toItemResponse(*item), nil
}

func (s *Service) GetTaxSettings(ctx context.Context) (domain.TaxSettingsResponse, error) {
	settings, err := s.repo.GetTaxSettings(ctx, s.db)
	if err != nil {
		return domain.TaxSettingsResponse{}, err
	}
	if settings == nil {
		return domain.TaxSettingsResponse{}, domain.ErrTaxSettingsNotFound
	}
	return toTaxSettingsResponse(*settings), nil
}

func (s *Service) CreateCategory(ctx context.Context, req domain.CreateCategoryRequest) (domain.MenuCategoryResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.MenuCategoryResponse{}, domain.ErrInvalidName
	}

	now := s.clock.Now()
	category := domain.MenuCategory{
		ID:           s.genID.Generate(),
		Name:         name,
		Description:  strings.TrimSpace(req.Description),
		DisplayOrder: req.DisplayOrder,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.InsertCategory(ctx, s.db, &category); err != nil {
		return domain.MenuCategoryResponse{}, err
	}
	return toCategoryResponse(category, false), nil
}

func (s *Service) UpdateCategory(ctx context.Context, id string, req domain.UpdateCategoryRequest) (domain.MenuCategoryResponse, error) {
	categoryID, err := parseID(id)
	if err != nil {
		return domain.MenuCategoryResponse{}, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.MenuCategoryResponse{}, domain.ErrInvalidName
	}

	category, err := s.repo.FindCategoryByID(ctx, s.db, categoryID)
	if err != nil {
		return domain.MenuCategoryResponse{}, err
	}
	if category == nil {
		return domain.MenuCategoryResponse{}, domain.ErrCategoryNotFound
	}

	category.Name = name
	category.Description = strings.TrimSpace(req.Description)
	category.DisplayOrder = req.DisplayOrder
	category.IsActive = req.IsActive
	category.UpdatedAt = s.clock.Now()

	if err := s.repo.SaveCategory(ctx, s.db, category); err != nil {
		return domain.MenuCategoryResponse{}, err
	}
	return toCategoryResponse(*category, false), nil
}

// DeleteCategory marks the category inactive. Historical orders keep
// their line snapshots, so nothing is removed.
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	categoryID, err := parseID(id)
	if err != nil {
		return err
	}

	category, err := s.repo.FindCategoryByID(ctx, s.db, categoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrCategoryNotFound
	}

	category.IsActive = false
	category.UpdatedAt = s.clock.Now()
	return s.repo.SaveCategory(ctx, s.db, category)
}

func (s *Service) CreateItem(ctx context.Context, req domain.CreateMenuItemRequest) (domain.MenuItemResponse, error) {
	categoryID, err := parseID(req.CategoryID)
	if err != nil {
		return domain.MenuItemResponse{}, err
	}
	if err := validateItemFields(req.Name, req.Price, req.CustomTaxRateBp); err != nil {
		return domain.MenuItemResponse{}, err
	}

	category, err := s.repo.FindCategoryByID(ctx, s.db, categoryID)
	if err != nil {
		return domain.MenuItemResponse{}, err
	}
	if category == nil {
		return domain.MenuItemResponse{}, domain.ErrCategoryNotFound
	}

	now := s.clock.Now()
	item := domain.MenuItem{
		ID:              s.genID.Generate(),
		CategoryID:      categoryID,
		Name:            strings.TrimSpace(req.Name),
		Description:     strings.TrimSpace(req.Description),
		Price:           req.Price,
		IsTaxable:       req.IsTaxable,
		CustomTaxRateBp: req.CustomTaxRateBp,
		IsActive:        true,
		DisplayOrder:    req.DisplayOrder,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.InsertItem(ctx, s.db, &item); err != nil {
		return domain.MenuItemResponse{}, err
	}
	return toItemResponse(item), nil
}

func (s *Service) UpdateItem(ctx context.Context, id string, req domain.UpdateMenuItemRequest) (domain.MenuItemResponse, error) {
	itemID, err := parseID(id)
	if err != nil {
		return domain.MenuItemResponse{}, err
	}
	if err := validateItemFields(req.Name, req.Price, req.CustomTaxRateBp); err != nil {
		return domain.MenuItemResponse{}, err
	}

	item, err := s.repo.FindItemByID(ctx, s.db, itemID)
	if err != nil {
		return domain.MenuItemResponse{}, err
	}
	if item == nil {
		return domain.MenuItemResponse{}, domain.ErrItemNotFound
	}

	item.Name = strings.TrimSpace(req.Name)
	item.Description = strings.TrimSpace(req.Description)
	item.Price = req.Price
	item.IsTaxable = req.IsTaxable
	item.CustomTaxRateBp = req.CustomTaxRateBp
	item.DisplayOrder = req.DisplayOrder
	item.IsActive = req.IsActive
	item.UpdatedAt = s.clock.Now()

	if err := s.repo.SaveItem(ctx, s.db, item); err != nil {
		return domain.MenuItemResponse{}, err
	}
	return toItemResponse(*item), nil
}

func (s *Service) DeleteItem(ctx context.Context, id string) error {
	itemID, err := parseID(id)
	if err != nil {
		return err
	}

	item, err := s.repo.FindItemByID(ctx, s.db, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrItemNotFound
	}

	item.IsActive = false
	item.UpdatedAt = s.clock.Now()
	return s.repo.SaveItem(ctx, s.db, item)
}

// UpdateTaxSettings upserts the single settings row.
func (s *Service) UpdateTaxSettings(ctx context.Context, req domain.UpdateTaxSettingsRequest) (domain.TaxSettingsResponse, error) {
	if req.DefaultTaxRateBp < 0 {
		return domain.TaxSettingsResponse{}, domain.ErrInvalidTaxRate
	}

	settings, err := s.repo.GetTaxSettings(ctx, s.db)
	if err != nil {
		return domain.TaxSettingsResponse{}, err
	}
	if settings == nil {
		settings = &domain.TaxSettings{ID: s.genID.Generate()}
	}

	settings.DefaultTaxRateBp = req.DefaultTaxRateBp
	settings.TaxName = strings.TrimSpace(req.TaxName)
	settings.IsEnabled = req.IsEnabled
	settings.UpdatedAt = s.clock.Now()

	if err := s.repo.SaveTaxSettings(ctx, s.db, settings); err != nil {
		return domain.TaxSettingsResponse{}, err
	}
	return toTaxSettingsResponse(*settings), nil
}

func validateItemFields(name string, price int64, customRateBp *int64) error {
	if strings.TrimSpace(name) == "" {
		return domain.ErrInvalidName
	}
	if price < 0 {
		return domain.ErrInvalidPrice
	}
	if customRateBp != nil && *customRateBp < 0 {
		return domain.ErrInvalidTaxRate
	}
	return nil
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

func toCategoryResponse(category domain.MenuCategory, withItems bool) domain.MenuCategoryResponse {
	resp := domain.MenuCategoryResponse{
		ID:           category.ID.String(),
		Name:         category.Name,
		Description:  category.Description,
		DisplayOrder: category.DisplayOrder,
	}
	if withItems {
		resp.Items = make([]domain.MenuItemResponse, 0, len(category.Items))
		for _, item := range category.Items {
			resp.Items = append(resp.Items, toItemResponse(item))
		}
	}
	return resp
}

func toItemResponse(item domain.MenuItem) domain.MenuItemResponse {
	return domain.MenuItemResponse{
		ID:              item.ID.String(),
		CategoryID:      item.CategoryID.String(),
		Name:            item.Name,
		Description:     item.Description,
		Price:           item.Price,
		IsTaxable:       item.IsTaxable,
		CustomTaxRateBp: item.CustomTaxRateBp,
		DisplayOrder:    item.DisplayOrder,
		IsActive:        item.IsActive,
		CreatedAt:       item.CreatedAt,
	}
}

func toTaxSettingsResponse(settings domain.TaxSettings) domain.TaxSettingsResponse {
	return domain.TaxSettingsResponse{
		ID:               settings.ID.String(),
		DefaultTaxRateBp: settings.DefaultTaxRateBp,
		TaxName:          settings.TaxName,
		IsEnabled:        settings.IsEnabled,
		UpdatedAt:        settings.UpdatedAt,
	}
}
