package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/domain/order"
	"github.com/renztrending/backend/internal/domain/payment"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the Order aggregate.
type OrderModel struct {
	AggregateModel
	OrderNumber          string              `gorm:"type:varchar(30);not null;uniqueIndex"`
	CustomerID           uuid.UUID           `gorm:"type:uuid;not null;index"`
	ShippingAddressID    *uuid.UUID          `gorm:"type:uuid"`
	BillingAddressID     *uuid.UUID          `gorm:"type:uuid"`
	Status               order.OrderStatus   `gorm:"type:varchar(20);not null;default:'pending';index"`
	PaymentMethod        order.PaymentMethod `gorm:"type:varchar(10);not null"`
	TotalAmount          decimal.Decimal     `gorm:"type:decimal(12,2);not null;default:0"`
	TrackingNumber       string              `gorm:"type:varchar(50);index"`
	Carrier              string              `gorm:"type:varchar(100)"`
	ExpectedDeliveryDate *time.Time
	ShipmentOrderID      string `gorm:"type:varchar(50)"`
	ShipmentID           string `gorm:"type:varchar(50)"`
	AWBCode              string `gorm:"column:awb_code;type:varchar(50)"`
	CourierCompanyID     string `gorm:"type:varchar(50)"`
	CourierName          string `gorm:"type:varchar(100)"`
	GatewayOrderID       string `gorm:"type:varchar(100);index"`
	GatewayPaymentID     string `gorm:"type:varchar(100)"`

	Items []OrderItemModel `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order aggregate.
func (m *OrderModel) ToDomain() *order.Order {
	o := &order.Order{
		BaseAggregateRoot:    m.Aggregate(),
		OrderNumber:          m.OrderNumber,
		CustomerID:           m.CustomerID,
		ShippingAddressID:    m.ShippingAddressID,
		BillingAddressID:     m.BillingAddressID,
		Status:               m.Status,
		PaymentMethod:        m.PaymentMethod,
		TotalAmount:          m.TotalAmount,
		TrackingNumber:       m.TrackingNumber,
		Carrier:              m.Carrier,
		ExpectedDeliveryDate: m.ExpectedDeliveryDate,
		Shipment: order.Shipment{
			ShipmentOrderID:  m.ShipmentOrderID,
			ShipmentID:       m.ShipmentID,
			AWBCode:          m.AWBCode,
			CourierCompanyID: m.CourierCompanyID,
			CourierName:      m.CourierName,
		},
		GatewayOrderID:   m.GatewayOrderID,
		GatewayPaymentID: m.GatewayPaymentID,
	}
	o.Items = make([]order.OrderItem, len(m.Items))
	for i := range m.Items {
		o.Items[i] = m.Items[i].ToDomain()
	}
	return o
}

// FromDomain populates the header columns from a domain Order.
// Items are set separately because they are only written on create.
func (m *OrderModel) FromDomain(o *order.Order) {
	m.fromAggregate(o.BaseAggregateRoot)
	m.OrderNumber = o.OrderNumber
	m.CustomerID = o.CustomerID
	m.ShippingAddressID = o.ShippingAddressID
	m.BillingAddressID = o.BillingAddressID
	m.Status = o.Status
	m.PaymentMethod = o.PaymentMethod
	m.TotalAmount = o.TotalAmount
	m.TrackingNumber = o.TrackingNumber
	m.Carrier = o.Carrier
	m.ExpectedDeliveryDate = o.ExpectedDeliveryDate
	m.ShipmentOrderID = o.Shipment.ShipmentOrderID
	m.ShipmentID = o.Shipment.ShipmentID
	m.AWBCode = o.Shipment.AWBCode
	m.CourierCompanyID = o.Shipment.CourierCompanyID
	m.CourierName = o.Shipment.CourierName
	m.GatewayOrderID = o.GatewayOrderID
	m.GatewayPaymentID = o.GatewayPaymentID
}

// OrderModelFromDomain creates the order row together with its item rows
func OrderModelFromDomain(o *order.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	m.Items = make([]OrderItemModel, len(o.Items))
	for i := range o.Items {
		m.Items[i] = OrderItemModelFromDomain(&o.Items[i])
	}
	return m
}

// OrderItemModel is the persistence model for an order line snapshot
type OrderItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	CartItemID  *uuid.UUID      `gorm:"type:uuid"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	VariantID   *uuid.UUID      `gorm:"type:uuid"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Size        string          `gorm:"type:varchar(5)"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Quantity    int             `gorm:"not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain OrderItem
func (m *OrderItemModel) ToDomain() order.OrderItem {
	return order.OrderItem{
		ID:          m.ID,
		OrderID:     m.OrderID,
		CartItemID:  m.CartItemID,
		ProductID:   m.ProductID,
		VariantID:   m.VariantID,
		ProductName: m.ProductName,
		Size:        m.Size,
		UnitPrice:   m.UnitPrice,
		Quantity:    m.Quantity,
		Amount:      m.Amount,
		CreatedAt:   m.CreatedAt,
	}
}

// OrderItemModelFromDomain creates a new persistence model from a domain OrderItem
func OrderItemModelFromDomain(it *order.OrderItem) OrderItemModel {
	return OrderItemModel{
		ID:          it.ID,
		OrderID:     it.OrderID,
		CartItemID:  it.CartItemID,
		ProductID:   it.ProductID,
		VariantID:   it.VariantID,
		ProductName: it.ProductName,
		Size:        it.Size,
		UnitPrice:   it.UnitPrice,
		Quantity:    it.Quantity,
		Amount:      it.Amount,
		CreatedAt:   it.CreatedAt,
	}
}

// PaymentModel is the persistence model for an order payment.
// A gateway transaction ID can settle at most one payment.
type PaymentModel struct {
	BaseModel
	OrderID        uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex"`
	Method         order.PaymentMethod `gorm:"type:varchar(10);not null"`
	Amount         decimal.Decimal     `gorm:"type:decimal(12,2);not null"`
	Status         payment.Status      `gorm:"type:varchar(10);not null;default:'pending'"`
	TransactionID  *string             `gorm:"type:varchar(100);uniqueIndex"`
	GatewayOrderID string              `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment
func (m *PaymentModel) ToDomain() *payment.Payment {
	p := &payment.Payment{
		BaseEntity:     m.BaseModel.Entity(),
		OrderID:        m.OrderID,
		Method:         m.Method,
		Amount:         m.Amount,
		Status:         m.Status,
		GatewayOrderID: m.GatewayOrderID,
	}
	if m.TransactionID != nil {
		p.TransactionID = *m.TransactionID
	}
	return p
}

// PaymentModelFromDomain creates a new persistence model from a domain Payment.
// An empty transaction ID is stored as NULL so the unique index ignores it.
func PaymentModelFromDomain(p *payment.Payment) *PaymentModel {
	m := &PaymentModel{
		OrderID:        p.OrderID,
		Method:         p.Method,
		Amount:         p.Amount,
		Status:         p.Status,
		GatewayOrderID: p.GatewayOrderID,
	}
	if p.TransactionID != "" {
		tx := p.TransactionID
		m.TransactionID = &tx
	}
	m.fromEntity(p.BaseEntity)
	return m
}

// PaymentIntentModel is a gateway order opened for a customer's cart
type PaymentIntentModel struct {
	BaseModel
	CustomerID     uuid.UUID `gorm:"type:uuid;not null;index"`
	GatewayOrderID string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	AmountMinor    int64     `gorm:"not null"`
	Currency       string    `gorm:"type:varchar(3);not null"`
	Receipt        string    `gorm:"type:varchar(40)"`
}

func (PaymentIntentModel) TableName() string {
	return "payment_intents"
}

func (m *PaymentIntentModel) ToDomain() *payment.Intent {
	return &payment.Intent{
		BaseEntity:     m.BaseModel.Entity(),
		CustomerID:     m.CustomerID,
		GatewayOrderID: m.GatewayOrderID,
		AmountMinor:    m.AmountMinor,
		Currency:       m.Currency,
		Receipt:        m.Receipt,
	}
}

func PaymentIntentModelFromDomain(i *payment.Intent) *PaymentIntentModel {
	m := &PaymentIntentModel{
		CustomerID:     i.CustomerID,
		GatewayOrderID: i.GatewayOrderID,
		AmountMinor:    i.AmountMinor,
		Currency:       i.Currency,
		Receipt:        i.Receipt,
	}
	m.fromEntity(i.BaseEntity)
	return m
}
