package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/domain/order"
	"github.com/renztrending/backend/internal/domain/shared"
	"github.com/renztrending/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var errOrderNotFound = shared.NewNotFoundError("Order not found")

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func withItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC, id ASC") })
}

// FindByID finds an order with its items
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var model models.OrderModel
	if err := withItems(r.db.WithContext(ctx)).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errOrderNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindForCustomer finds an order owned by the customer
func (r *GormOrderRepository) FindForCustomer(ctx context.Context, customerID, id uuid.UUID) (*order.Order, error) {
	var model models.OrderModel
	if err := withItems(r.db.WithContext(ctx)).
		Where("id = ? AND customer_id = ?", id, customerID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errOrderNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCustomer finds a page of the customer's orders
func (r *GormOrderRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.OrderModel{}).Where("customer_id = ?", customerID), filter)
	return r.find(applyPage(applySort(query, filter, OrderSortFields, "created_at"), filter))
}

// CountByCustomer counts the customer's orders matching the filter
func (r *GormOrderRepository) CountByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) (int64, error) {
	return r.count(r.applyFilter(r.db.WithContext(ctx).Model(&models.OrderModel{}).Where("customer_id = ?", customerID), filter))
}

// FindAll finds a page of orders across customers
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.OrderModel{}), filter)
	return r.find(applyPage(applySort(query, filter, OrderSortFields, "created_at"), filter))
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return r.count(r.applyFilter(r.db.WithContext(ctx).Model(&models.OrderModel{}), filter))
}

// FindByIDs finds multiple orders by their IDs
func (r *GormOrderRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]order.Order, error) {
	if len(ids) == 0 {
		return []order.Order{}, nil
	}
	return r.find(r.db.WithContext(ctx).Where("id IN ?", ids))
}

// FindForExport returns every order matching the filter, newest first, without paging
func (r *GormOrderRepository) FindForExport(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.OrderModel{}), filter)
	return r.find(query.Order("created_at DESC").Order("id ASC"))
}

// Create inserts the order with its items
func (r *GormOrderRepository) Create(ctx context.Context, o *order.Order) error {
	model := models.OrderModelFromDomain(o)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// DO NOTHING keeps a postgres transaction usable after a number clash
		result := tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "order_number"}}, DoNothing: true}).
			Create(model)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
				return shared.NewDomainError(shared.CodeAlreadyExists, "Order already exists")
			}
			return result.Error
		}
		if result.RowsAffected == 0 {
			return order.ErrOrderNumberTaken
		}
		if len(model.Items) == 0 {
			return nil
		}
		return tx.Create(&model.Items).Error
	})
}

// Save updates the order header guarded by its version. Items are immutable
// after checkout and are not rewritten.
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	model := &models.OrderModel{}
	model.FromDomain(o)

	result := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ? AND version = ?", o.ID, o.Version).
		Updates(map[string]interface{}{
			"status":                 model.Status,
			"shipping_address_id":    model.ShippingAddressID,
			"billing_address_id":     model.BillingAddressID,
			"tracking_number":        model.TrackingNumber,
			"carrier":                model.Carrier,
			"expected_delivery_date": model.ExpectedDeliveryDate,
			"shipment_order_id":      model.ShipmentOrderID,
			"shipment_id":            model.ShipmentID,
			"awb_code":               model.AWBCode,
			"courier_company_id":     model.CourierCompanyID,
			"courier_name":           model.CourierName,
			"updated_at":             model.UpdatedAt,
			"version":                o.Version + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.OrderModel{}).Where("id = ?", o.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errOrderNotFound
		}
		return shared.ErrConcurrencyConflict
	}
	o.IncrementVersion()
	return nil
}

func (r *GormOrderRepository) find(query *gorm.DB) ([]order.Order, error) {
	var rows []models.OrderModel
	if err := withItems(query).Find(&rows).Error; err != nil {
		return nil, err
	}
	orders := make([]order.Order, len(rows))
	for i := range rows {
		orders[i] = *rows[i].ToDomain()
	}
	return orders, nil
}

func (r *GormOrderRepository) count(query *gorm.DB) (int64, error) {
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies search and the recognised filter keys
func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where(
			`(LOWER(order_number) LIKE ? ESCAPE '\' OR LOWER(tracking_number) LIKE ? ESCAPE '\')`,
			pattern, pattern,
		)
	}
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "payment_method":
			query = query.Where("payment_method = ?", value)
		case "customer_id":
			query = query.Where("customer_id = ?", value)
		}
	}
	return query
}

// Ensure GormOrderRepository implements OrderRepository
var _ order.OrderRepository = (*GormOrderRepository)(nil)
