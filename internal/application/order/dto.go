package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/domain/order"
	"github.com/shopspring/decimal"
)

// MaxBulkOrders bounds a single bulk status update
const MaxBulkOrders = 500

// CheckoutRequest places the cart as a cash-on-delivery order
type CheckoutRequest struct {
	ShippingAddressID *uuid.UUID `json:"shipping_address_id"`
	BillingAddressID  *uuid.UUID `json:"billing_address_id"`
}

// BuyNowRequest orders a single product without touching the cart
type BuyNowRequest struct {
	ProductID         uuid.UUID  `json:"product_id" binding:"required"`
	VariantID         *uuid.UUID `json:"variant_id"`
	Size              string     `json:"size" binding:"max=10"`
	Quantity          int        `json:"quantity"`
	ShippingAddressID *uuid.UUID `json:"shipping_address_id"`
	BillingAddressID  *uuid.UUID `json:"billing_address_id"`
}

// GatewayOrderResponse is what the storefront needs to open the checkout widget
type GatewayOrderResponse struct {
	OrderID  string `json:"order_id"`
	Key      string `json:"key"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// VerifyPaymentRequest is the checkout widget callback
type VerifyPaymentRequest struct {
	GatewayOrderID    string     `json:"razorpay_order_id" binding:"required"`
	PaymentID         string     `json:"razorpay_payment_id" binding:"required"`
	Signature         string     `json:"razorpay_signature" binding:"required"`
	ShippingAddressID *uuid.UUID `json:"shipping_address_id"`
	BillingAddressID  *uuid.UUID `json:"billing_address_id"`
}

// OrderListFilter is the order list query for customers and staff
type OrderListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// UpdateAddressRequest points an order at another shipping address
type UpdateAddressRequest struct {
	AddressID uuid.UUID `json:"address_id" binding:"required"`
}

// UpdateStatusRequest changes an order's status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// BulkStatusRequest changes the status of many orders
type BulkStatusRequest struct {
	OrderIDs []uuid.UUID `json:"order_ids" binding:"required,min=1,max=500"`
	Status   string      `json:"status" binding:"required"`
}

// BulkStatusResponse reports which orders changed
type BulkStatusResponse struct {
	Updated int         `json:"updated"`
	Skipped []uuid.UUID `json:"skipped"`
}

// TrackingRequest records carrier tracking details
type TrackingRequest struct {
	TrackingNumber       string     `json:"tracking_number" binding:"required,max=100"`
	Carrier              string     `json:"carrier" binding:"max=100"`
	ExpectedDeliveryDate *time.Time `json:"expected_delivery_date"`
}

// ShipmentRequest records a courier booking
type ShipmentRequest struct {
	ShipmentOrderID  string `json:"shipment_order_id" binding:"max=100"`
	ShipmentID       string `json:"shipment_id" binding:"max=100"`
	AWBCode          string `json:"awb_code" binding:"max=100"`
	CourierCompanyID string `json:"courier_company_id" binding:"max=100"`
	CourierName      string `json:"courier_name" binding:"max=100"`
}

// OrderItemResponse is one ordered line
type OrderItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	VariantID   *uuid.UUID      `json:"variant_id,omitempty"`
	ProductName string          `json:"product_name"`
	Size        string          `json:"size"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	Amount      decimal.Decimal `json:"amount"`
}

// ShipmentResponse is the courier booking of an order
type ShipmentResponse struct {
	ShipmentOrderID  string `json:"shipment_order_id,omitempty"`
	ShipmentID       string `json:"shipment_id,omitempty"`
	AWBCode          string `json:"awb_code,omitempty"`
	CourierCompanyID string `json:"courier_company_id,omitempty"`
	CourierName      string `json:"courier_name,omitempty"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID                   uuid.UUID           `json:"id"`
	OrderNumber          string              `json:"order_number"`
	CustomerID           uuid.UUID           `json:"customer_id"`
	Status               string              `json:"status"`
	StatusLabel          string              `json:"status_label"`
	PaymentMethod        string              `json:"payment_method"`
	TotalAmount          decimal.Decimal     `json:"total_amount"`
	ItemCount            int                 `json:"item_count"`
	TrackingNumber       string              `json:"tracking_number"`
	Carrier              string              `json:"carrier,omitempty"`
	ExpectedDeliveryDate *time.Time          `json:"expected_delivery_date,omitempty"`
	Shipment             ShipmentResponse    `json:"shipment"`
	ShippingAddressID    *uuid.UUID          `json:"shipping_address_id,omitempty"`
	BillingAddressID     *uuid.UUID          `json:"billing_address_id,omitempty"`
	Items                []OrderItemResponse `json:"items"`
	CreatedAt            time.Time           `json:"created_at"`
	UpdatedAt            time.Time           `json:"updated_at"`
	Version              int                 `json:"version"`
}

// ToOrderResponse converts an order to its response
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, it := range o.Items {
		items[i] = OrderItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			VariantID:   it.VariantID,
			ProductName: it.ProductName,
			Size:        it.Size,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
			Amount:      it.Amount,
		}
	}
	return OrderResponse{
		ID:                   o.ID,
		OrderNumber:          o.OrderNumber,
		CustomerID:           o.CustomerID,
		Status:               o.Status.String(),
		StatusLabel:          o.Status.Label(),
		PaymentMethod:        string(o.PaymentMethod),
		TotalAmount:          o.TotalAmount,
		ItemCount:            o.ItemCount(),
		TrackingNumber:       o.TrackingNumber,
		Carrier:              o.Carrier,
		ExpectedDeliveryDate: o.ExpectedDeliveryDate,
		Shipment: ShipmentResponse{
			ShipmentOrderID:  o.Shipment.ShipmentOrderID,
			ShipmentID:       o.Shipment.ShipmentID,
			AWBCode:          o.Shipment.AWBCode,
			CourierCompanyID: o.Shipment.CourierCompanyID,
			CourierName:      o.Shipment.CourierName,
		},
		ShippingAddressID: o.ShippingAddressID,
		BillingAddressID:  o.BillingAddressID,
		Items:             items,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
		Version:           o.Version,
	}
}

// ToOrderResponses converts a slice of orders
func ToOrderResponses(orders []order.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i := range orders {
		out[i] = ToOrderResponse(&orders[i])
	}
	return out
}
