package queries

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/packing"
	"fulfillment/internal/core/domain/services"
)

// LineItemView is a line of an order as shown to admins and customers.
type LineItemView struct {
	ProductID      string
	Name           string
	UnitPriceMinor int64
	Quantity       int
	ImageRef       string
}

// OrderView is the read model of an order. Command results are mapped to it as
// well, so every caller sees orders in one shape.
type OrderView struct {
	ID                 kernel.UUID
	Status             order.Status
	Customer           order.Customer
	Address            order.ShippingAddress
	Items              []LineItemView
	TotalMinor         int64
	CreatedAt          time.Time
	PackedAt           *time.Time
	ShippedAt          *time.Time
	DeliveredAt        *time.Time
	Carrier            string
	TrackingID         string
	CancellationReason string
}

// NewOrderView maps an order aggregate to its read model.
func NewOrderView(o *order.Order) OrderView {
	items := o.Items()
	views := make([]LineItemView, 0, len(items))
	for _, item := range items {
		views = append(views, LineItemView{
			ProductID:      item.ProductID,
			Name:           item.Name,
			UnitPriceMinor: item.UnitPrice.MinorUnits(),
			Quantity:       item.Quantity,
			ImageRef:       item.ImageRef,
		})
	}

	view := OrderView{
		ID:                 o.ID(),
		Status:             o.Status(),
		Customer:           o.Customer(),
		Address:            o.Address(),
		Items:              views,
		TotalMinor:         o.TotalAmount().MinorUnits(),
		CreatedAt:          o.CreatedAt(),
		PackedAt:           o.PackedAt(),
		ShippedAt:          o.ShippedAt(),
		DeliveredAt:        o.DeliveredAt(),
		CancellationReason: o.CancellationReason(),
	}
	if shipping := o.Shipping(); shipping != nil {
		view.Carrier = shipping.Carrier
		view.TrackingID = shipping.TrackingID
	}
	return view
}

// PackingSessionView is the read model of a packing session.
type PackingSessionView struct {
	ID                     kernel.UUID
	OrderID                kernel.UUID
	AdminEmail             string
	Status                 packing.Status
	ScanProgress           map[string]int
	StartedAt              time.Time
	CompletedAt            *time.Time
	PackingDurationMinutes *int
	CancelledAt            *time.Time
	CancelReason           string
}

func NewPackingSessionView(s *packing.Session) PackingSessionView {
	return PackingSessionView{
		ID:                     s.ID(),
		OrderID:                s.OrderID(),
		AdminEmail:             s.AdminEmail(),
		Status:                 s.Status(),
		ScanProgress:           s.Progress(),
		StartedAt:              s.StartedAt(),
		CompletedAt:            s.CompletedAt(),
		PackingDurationMinutes: s.DurationMinutes(),
		CancelledAt:            s.CancelledAt(),
		CancelReason:           s.CancelReason(),
	}
}

// StatisticsView is the dashboard snapshot with revenue in minor units.
type StatisticsView struct {
	Total                int
	TodayCount           int
	TodayRevenueMinor    int64
	TodayNetRevenueMinor int64
	Pending              int
	Paid                 int
	InPacking            int
	Packed               int
	Shipped              int
	Delivered            int
	Cancelled            int
}

func NewStatisticsView(s services.Snapshot) StatisticsView {
	return StatisticsView{
		Total:                s.Total,
		TodayCount:           s.TodayCount,
		TodayRevenueMinor:    s.TodayRevenue.MinorUnits(),
		TodayNetRevenueMinor: s.TodayNetRevenue.MinorUnits(),
		Pending:              s.Pending,
		Paid:                 s.Paid,
		InPacking:            s.InPacking,
		Packed:               s.Packed,
		Shipped:              s.Shipped,
		Delivered:            s.Delivered,
		Cancelled:            s.Cancelled,
	}
}
