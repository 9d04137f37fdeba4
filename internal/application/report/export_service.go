package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/domain/catalog"
	"github.com/renztrending/backend/internal/domain/identity"
	"github.com/renztrending/backend/internal/domain/order"
	"github.com/renztrending/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CSVDateLayout formats dates in exports
const CSVDateLayout = "2006-01-02 15:04:05"

var (
	orderCSVHeader    = []string{"Order ID", "Customer", "Status", "Payment", "Total Amount", "Items Count", "Tracking Number", "Created Date"}
	categoryCSVHeader = []string{"Name", "Parent", "Total Products", "Image URL"}
)

// ExportService renders admin CSV exports
type ExportService struct {
	orderRepo    order.OrderRepository
	customerRepo identity.CustomerRepository
	categoryRepo catalog.CategoryRepository
	logger       *zap.Logger
}

// NewExportService creates a new ExportService
func NewExportService(orderRepo order.OrderRepository, customerRepo identity.CustomerRepository, categoryRepo catalog.CategoryRepository, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{orderRepo: orderRepo, customerRepo: customerRepo, categoryRepo: categoryRepo, logger: logger}
}

// WriteOrdersCSV writes every order, newest first, optionally limited to one status
func (s *ExportService) WriteOrdersCSV(ctx context.Context, w io.Writer, status string) error {
	filter := shared.DefaultFilter()
	if strings.TrimSpace(status) != "" {
		st, err := order.ParseOrderStatus(status)
		if err != nil {
			return err
		}
		filter.Filters["status"] = st
	}

	orders, err := s.orderRepo.FindForExport(ctx, filter)
	if err != nil {
		return err
	}
	names, err := s.customerNames(ctx, orders)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(orderCSVHeader); err != nil {
		return fmt.Errorf("write order csv header: %w", err)
	}
	for i := range orders {
		o := &orders[i]
		record := []string{
			o.OrderNumber,
			names[o.CustomerID],
			o.Status.Label(),
			o.PaymentMethod.Label(),
			o.TotalAmount.StringFixed(2),
			strconv.Itoa(o.ItemCount()),
			o.TrackingNumber,
			o.CreatedAt.Format(CSVDateLayout),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write order csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush order csv: %w", err)
	}

	s.logger.Info("Orders exported", zap.Int("rows", len(orders)), zap.String("status", status))
	return nil
}

// WriteCategoriesCSV writes every category with its parent and product count
func (s *ExportService) WriteCategoriesCSV(ctx context.Context, w io.Writer) error {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return err
	}
	counts, err := s.categoryRepo.CountProducts(ctx)
	if err != nil {
		return err
	}
	byID := make(map[uuid.UUID]string, len(categories))
	for _, c := range categories {
		byID[c.ID] = c.Name
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(categoryCSVHeader); err != nil {
		return fmt.Errorf("write category csv header: %w", err)
	}
	for _, c := range categories {
		parent := ""
		if c.ParentID != nil {
			parent = byID[*c.ParentID]
		}
		record := []string{c.Name, parent, strconv.FormatInt(counts[c.ID], 10), c.ImageURL}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write category csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush category csv: %w", err)
	}
	return nil
}

func (s *ExportService) customerNames(ctx context.Context, orders []order.Order) (map[uuid.UUID]string, error) {
	seen := make(map[uuid.UUID]struct{}, len(orders))
	ids := make([]uuid.UUID, 0, len(orders))
	for _, o := range orders {
		if _, ok := seen[o.CustomerID]; ok {
			continue
		}
		seen[o.CustomerID] = struct{}{}
		ids = append(ids, o.CustomerID)
	}
	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	customers, err := s.customerRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range customers {
		names[customers[i].ID] = customers[i].FullName()
	}
	return names, nil
}
