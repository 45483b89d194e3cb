package badgerstore

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/packing"
)

type lineItemRecord struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	ImageRef  string `json:"image_ref,omitempty"`
}

type orderRecord struct {
	ID                 string           `json:"id"`
	Status             string           `json:"status"`
	CustomerName       string           `json:"customer_name"`
	CustomerPhone      string           `json:"customer_phone,omitempty"`
	CustomerEmail      string           `json:"customer_email,omitempty"`
	AddressLine1       string           `json:"address_line1"`
	AddressLine2       string           `json:"address_line2,omitempty"`
	City               string           `json:"city"`
	State              string           `json:"state,omitempty"`
	PostalCode         string           `json:"postal_code"`
	Country            string           `json:"country"`
	Items              []lineItemRecord `json:"items"`
	TotalAmount        *int64           `json:"total_amount"`
	CreatedAt          time.Time        `json:"created_at"`
	PackedAt           *time.Time       `json:"packed_at,omitempty"`
	ShippedAt          *time.Time       `json:"shipped_at,omitempty"`
	DeliveredAt        *time.Time       `json:"delivered_at,omitempty"`
	Carrier            string           `json:"carrier,omitempty"`
	TrackingID         string           `json:"tracking_id,omitempty"`
	CancellationReason string           `json:"cancellation_reason,omitempty"`
}

func newOrderRecord(o *order.Order) orderRecord {
	customer := o.Customer()
	address := o.Address()
	total := o.TotalAmount().MinorUnits()

	rec := orderRecord{
		ID:                 o.ID().String(),
		Status:             o.Status().String(),
		CustomerName:       customer.Name,
		CustomerPhone:      customer.Phone,
		CustomerEmail:      customer.Email,
		AddressLine1:       address.Line1,
		AddressLine2:       address.Line2,
		City:               address.City,
		State:              address.State,
		PostalCode:         address.PostalCode,
		Country:            address.Country,
		TotalAmount:        &total,
		CreatedAt:          o.CreatedAt(),
		PackedAt:           o.PackedAt(),
		ShippedAt:          o.ShippedAt(),
		DeliveredAt:        o.DeliveredAt(),
		CancellationReason: o.CancellationReason(),
	}
	for _, item := range o.Items() {
		rec.Items = append(rec.Items, lineItemRecord{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice.MinorUnits(),
			Quantity:  item.Quantity,
			ImageRef:  item.ImageRef,
		})
	}
	if shipping := o.Shipping(); shipping != nil {
		rec.Carrier = shipping.Carrier
		rec.TrackingID = shipping.TrackingID
	}
	return rec
}

func (r orderRecord) toDomain() (*order.Order, error) {
	id, err := kernel.UUIDFromString(r.ID)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(r.Status)
	if err != nil {
		return nil, err
	}
	total, err := kernel.MoneyFromNullable(r.TotalAmount)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(r.Items))
	for _, item := range r.Items {
		price, priceErr := kernel.NewMoney(item.UnitPrice)
		if priceErr != nil {
			return nil, priceErr
		}
		items = append(items, order.LineItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: price,
			Quantity:  item.Quantity,
			ImageRef:  item.ImageRef,
		})
	}

	var shipping *order.Shipping
	if r.Carrier != "" || r.TrackingID != "" {
		shipping = &order.Shipping{Carrier: r.Carrier, TrackingID: r.TrackingID}
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:       id,
		Customer: order.Customer{Name: r.CustomerName, Phone: r.CustomerPhone, Email: r.CustomerEmail},
		Address: order.ShippingAddress{
			Line1:      r.AddressLine1,
			Line2:      r.AddressLine2,
			City:       r.City,
			State:      r.State,
			PostalCode: r.PostalCode,
			Country:    r.Country,
		},
		Items:              items,
		Total:              total,
		Status:             status,
		CreatedAt:          r.CreatedAt,
		PackedAt:           r.PackedAt,
		ShippedAt:          r.ShippedAt,
		DeliveredAt:        r.DeliveredAt,
		Shipping:           shipping,
		CancellationReason: r.CancellationReason,
	})
}

type sessionRecord struct {
	ID                     string         `json:"id"`
	OrderID                string         `json:"order_id"`
	AdminEmail             string         `json:"admin_email"`
	ScanProgress           map[string]int `json:"scan_progress"`
	Status                 string         `json:"status"`
	StartedAt              time.Time      `json:"started_at"`
	CompletedAt            *time.Time     `json:"completed_at,omitempty"`
	PackingDurationMinutes *int           `json:"packing_duration_minutes,omitempty"`
	CancelledAt            *time.Time     `json:"cancelled_at,omitempty"`
	CancelReason           string         `json:"cancel_reason,omitempty"`
	Version                int64          `json:"version"`
}

func newSessionRecord(s *packing.Session) sessionRecord {
	return sessionRecord{
		ID:                     s.ID().String(),
		OrderID:                s.OrderID().String(),
		AdminEmail:             s.AdminEmail(),
		ScanProgress:           s.Progress(),
		Status:                 s.Status().String(),
		StartedAt:              s.StartedAt(),
		CompletedAt:            s.CompletedAt(),
		PackingDurationMinutes: s.DurationMinutes(),
		CancelledAt:            s.CancelledAt(),
		CancelReason:           s.CancelReason(),
		Version:                s.Version(),
	}
}

func (r sessionRecord) toDomain() (*packing.Session, error) {
	id, err := kernel.UUIDFromString(r.ID)
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromString(r.OrderID)
	if err != nil {
		return nil, err
	}
	status, err := packing.ParseStatus(r.Status)
	if err != nil {
		return nil, err
	}

	return packing.RestoreSession(packing.RestoreSessionParams{
		ID:              id,
		OrderID:         orderID,
		AdminEmail:      r.AdminEmail,
		Progress:        r.ScanProgress,
		Status:          status,
		StartedAt:       r.StartedAt,
		CompletedAt:     r.CompletedAt,
		DurationMinutes: r.PackingDurationMinutes,
		CancelledAt:     r.CancelledAt,
		CancelReason:    r.CancelReason,
		Version:         r.Version,
	})
}
