package catalog

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/domain/audit"
	"github.com/renztrending/backend/internal/domain/catalog"
	"github.com/renztrending/backend/internal/domain/shared"
	"github.com/renztrending/backend/internal/infrastructure/csvimport"
	"go.uber.org/zap"
)

const (
	// lowStockListLimit caps the low-stock rows on the summary
	lowStockListLimit = 50
	// stockImportMaxRows bounds one CSV upload
	stockImportMaxRows = 5000
	// stockImportMaxValue is the largest stock one CSV row may set
	stockImportMaxValue = 1_000_000
	// stockImportMaxErrors is how many row errors are reported back
	stockImportMaxErrors = 50
)

// InventoryService is the admin view over product stock
type InventoryService struct {
	productRepo catalog.ProductRepository
	cache       ProductCache
	auditLog    audit.Log
	logger      *zap.Logger
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(productRepo catalog.ProductRepository, cache ProductCache, auditLog audit.Log, logger *zap.Logger) *InventoryService {
	if cache == nil {
		cache = NopProductCache{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryService{productRepo: productRepo, cache: cache, auditLog: auditLog, logger: logger}
}

// Summary counts products by stock band and lists the ones running low
func (s *InventoryService) Summary(ctx context.Context) (*InventorySummaryResponse, error) {
	levels, err := s.productRepo.CountStockLevels(ctx, catalog.LowStockThreshold)
	if err != nil {
		return nil, err
	}
	low, err := s.productRepo.FindLowStock(ctx, catalog.LowStockThreshold, lowStockListLimit)
	if err != nil {
		return nil, err
	}
	out, err := s.productRepo.FindOutOfStock(ctx, lowStockListLimit)
	if err != nil {
		return nil, err
	}

	outIDs := make([]uuid.UUID, len(out))
	for i := range out {
		outIDs[i] = out[i].ID
	}
	return &InventorySummaryResponse{
		TotalProducts: levels.TotalProducts,
		LowStock:      levels.LowStock,
		OutOfStock:    levels.OutOfStock,
		LowStockItems: ToProductResponses(low),
		OutOfStockIDs: outIDs,
	}, nil
}

// UpdateStock overwrites one product's stock
func (s *InventoryService) UpdateStock(ctx context.Context, productID uuid.UUID, req StockUpdateRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	previous := product.Stock
	if err := product.SetStock(req.Stock); err != nil {
		return nil, err
	}
	if err := s.productRepo.UpdateStock(ctx, productID, req.Stock); err != nil {
		return nil, err
	}
	s.invalidate(ctx, product.Slug)

	recordAudit(ctx, s.auditLog, s.logger, audit.NewEntry(audit.ActorFrom(ctx), audit.ActionStockUpdated,
		"product", productID.String(), map[string]any{"from": previous, "to": req.Stock}))

	resp := ToProductResponse(product)
	return &resp, nil
}

// BulkUpdate sets the stock of many products and reports how many changed
func (s *InventoryService) BulkUpdate(ctx context.Context, req BulkStockUpdateRequest) (*BulkStockUpdateResponse, error) {
	updates := make([]catalog.StockUpdate, len(req.Items))
	for i, item := range req.Items {
		updates[i] = catalog.StockUpdate{ProductID: item.ProductID, Stock: item.Stock}
	}

	updated, err := s.applyStock(ctx, updates, "api")
	if err != nil {
		return nil, err
	}
	return &BulkStockUpdateResponse{Updated: updated}, nil
}

// ImportStock reads a product_id,stock CSV and applies it as one bulk update.
// Nothing is written unless every row is valid.
func (s *InventoryService) ImportStock(ctx context.Context, r io.Reader) (*StockImportResponse, error) {
	parser, err := csvimport.NewParser(r, csvimport.WithMaxRows(stockImportMaxRows))
	if err != nil {
		return nil, shared.NewValidationError(err.Error())
	}

	errs := csvimport.NewErrorCollection(stockImportMaxErrors)
	validator := csvimport.NewFieldValidator(errs,
		csvimport.Field("product_id").Required().UUID().Unique().Build(),
		csvimport.Field("stock").Required().Int().Min(0).Max(stockImportMaxValue).Build(),
	)
	if err := parser.RequireColumns(validator.RequiredColumns()...); err != nil {
		return nil, shared.NewValidationError(err.Error())
	}

	rows, err := parser.ReadAll(errs)
	if err != nil {
		return nil, shared.NewValidationError(err.Error())
	}

	updates := make([]catalog.StockUpdate, 0, len(rows))
	for _, row := range rows {
		if !validator.ValidateRow(row) {
			continue
		}
		stock, _ := strconv.Atoi(row.Get("stock"))
		updates = append(updates, catalog.StockUpdate{
			ProductID: uuid.MustParse(row.Get("product_id")),
			Stock:     stock,
		})
	}
	if errs.HasErrors() {
		return nil, &StockImportError{
			Errors:    errs.Errors(),
			Total:     errs.TotalCount(),
			Truncated: errs.IsTruncated(),
		}
	}

	updated, err := s.applyStock(ctx, updates, "csv")
	if err != nil {
		return nil, err
	}
	s.logger.Info("Stock imported from CSV", zap.Int("rows", len(updates)), zap.Int64("updated", updated))
	return &StockImportResponse{
		Rows:    len(updates),
		Updated: updated,
		Skipped: int64(len(updates)) - updated,
	}, nil
}

// applyStock writes updates, drops the cached product pages and records one
// audit entry for the batch
func (s *InventoryService) applyStock(ctx context.Context, updates []catalog.StockUpdate, source string) (int64, error) {
	updated, err := s.productRepo.BulkUpdateStock(ctx, updates)
	if err != nil {
		return 0, err
	}

	ids := make([]uuid.UUID, len(updates))
	for i := range updates {
		ids[i] = updates[i].ProductID
	}
	if products, err := s.productRepo.FindByIDs(ctx, ids); err == nil {
		slugs := make([]string, len(products))
		for i := range products {
			slugs[i] = products[i].Slug
		}
		s.invalidate(ctx, slugs...)
	}

	recordAudit(ctx, s.auditLog, s.logger, audit.NewEntry(audit.ActorFrom(ctx), audit.ActionStockBulkUpdated,
		"product", "bulk", map[string]any{"requested": len(updates), "updated": updated, "source": source}))
	return updated, nil
}

func (s *InventoryService) invalidate(ctx context.Context, slugs ...string) {
	if len(slugs) == 0 {
		return
	}
	if err := s.cache.Invalidate(ctx, slugs...); err != nil {
		s.logger.Warn("Product cache invalidation failed", zap.Error(err))
	}
}

// StockImportError carries the row problems of a rejected stock CSV
type StockImportError struct {
	Errors    []csvimport.RowError
	Total     int
	Truncated bool
}

func (e *StockImportError) Error() string {
	return fmt.Sprintf("stock import rejected: %d invalid row(s)", e.Total)
}
