package servers

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Defines values for OrderStatus.
const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusInPacking OrderStatus = "in_packing"
	OrderStatusPacked    OrderStatus = "packed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Defines values for PackingSessionStatus.
const (
	PackingSessionStatusInProgress PackingSessionStatus = "in_progress"
	PackingSessionStatusCompleted  PackingSessionStatus = "completed"
	PackingSessionStatusCancelled  PackingSessionStatus = "cancelled"
)

// Defines values for ErrorCode.
const (
	ErrorCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrorCodeInvalidState ErrorCode = "INVALID_STATE"
	ErrorCodeValidation   ErrorCode = "VALIDATION"
	ErrorCodeStoreError   ErrorCode = "STORE_ERROR"
)

// Address defines model for Address.
type Address struct {
	City       string  `json:"city"`
	Country    string  `json:"country"`
	Line1      string  `json:"line1"`
	Line2      *string `json:"line2,omitempty"`
	PostalCode string  `json:"postalCode"`
	State      *string `json:"state,omitempty"`
}

// CancelRequest defines model for CancelRequest.
type CancelRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// Customer defines model for Customer.
type Customer struct {
	Email *string `json:"email,omitempty"`
	Name  string  `json:"name"`
	Phone *string `json:"phone,omitempty"`
}

// Error defines model for Error.
type Error struct {
	Code      ErrorCode       `json:"code"`
	Message   string          `json:"message"`
	Partial   *PartialFailure `json:"partial,omitempty"`
	Retryable bool            `json:"retryable"`
}

// ErrorCode defines model for Error.Code.
type ErrorCode string

// LineItem defines model for LineItem.
type LineItem struct {
	ImageRef  *string `json:"imageRef,omitempty"`
	Name      string  `json:"name"`
	ProductId string  `json:"productId"`
	Quantity  int     `json:"quantity"`

	// UnitPrice Minor currency units
	UnitPrice int64 `json:"unitPrice"`
}

// NewOrder defines model for NewOrder.
type NewOrder struct {
	Address          Address             `json:"address"`
	Customer         Customer            `json:"customer"`
	Id               *openapi_types.UUID `json:"id,omitempty"`
	Items            []LineItem          `json:"items"`
	PaymentConfirmed *bool               `json:"paymentConfirmed,omitempty"`
}

// OpenPackingSessionRequest defines model for OpenPackingSessionRequest.
type OpenPackingSessionRequest struct {
	AdminEmail string `json:"adminEmail"`
}

// Order defines model for Order.
type Order struct {
	Address            Address            `json:"address"`
	CancellationReason *string            `json:"cancellationReason,omitempty"`
	Carrier            *string            `json:"carrier,omitempty"`
	CreatedAt          time.Time          `json:"createdAt"`
	Customer           Customer           `json:"customer"`
	DeliveredAt        *time.Time         `json:"deliveredAt,omitempty"`
	Id                 openapi_types.UUID `json:"id"`
	Items              []LineItem         `json:"items"`
	PackedAt           *time.Time         `json:"packedAt,omitempty"`
	ShippedAt          *time.Time         `json:"shippedAt,omitempty"`
	Status             OrderStatus        `json:"status"`
	TotalAmount        int64              `json:"totalAmount"`
	TrackingId         *string            `json:"trackingId,omitempty"`
}

// OrderStatus defines model for OrderStatus.
type OrderStatus string

// PackingSession defines model for PackingSession.
type PackingSession struct {
	AdminEmail             string               `json:"adminEmail"`
	CancelReason           *string              `json:"cancelReason,omitempty"`
	CancelledAt            *time.Time           `json:"cancelledAt,omitempty"`
	CompletedAt            *time.Time           `json:"completedAt,omitempty"`
	Id                     openapi_types.UUID   `json:"id"`
	OrderId                openapi_types.UUID   `json:"orderId"`
	PackingDurationMinutes *int                 `json:"packingDurationMinutes,omitempty"`
	ScanProgress           map[string]int       `json:"scanProgress"`
	StartedAt              time.Time            `json:"startedAt"`
	Status                 PackingSessionStatus `json:"status"`
}

// PackingSessionStatus defines model for PackingSession.Status.
type PackingSessionStatus string

// PartialFailure defines model for PartialFailure.
type PartialFailure struct {
	Applied string `json:"applied"`
	Failed  string `json:"failed"`
}

// ScanProgressRequest defines model for ScanProgressRequest.
type ScanProgressRequest struct {
	ScanProgress map[string]int `json:"scanProgress"`
}

// ShipOrderRequest defines model for ShipOrderRequest.
type ShipOrderRequest struct {
	Carrier    string `json:"carrier"`
	TrackingId string `json:"trackingId"`
}

// Statistics defines model for Statistics.
type Statistics struct {
	ByStatus        map[string]int `json:"byStatus"`
	TodayNetRevenue int64          `json:"todayNetRevenue"`
	TodayOrders     int            `json:"todayOrders"`
	TodayRevenue    int64          `json:"todayRevenue"`
	TotalOrders     int            `json:"totalOrders"`
}

// UpdateStatusRequest defines model for UpdateStatusRequest.
type UpdateStatusRequest struct {
	Status OrderStatus `json:"status"`
}
