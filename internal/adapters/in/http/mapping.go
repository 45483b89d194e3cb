package http

import (
	"fulfillment/internal/core/application/workflow"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/generated/servers"
)

func createOrderInput(body servers.NewOrder) workflow.CreateOrderInput {
	in := workflow.CreateOrderInput{
		Customer: order.Customer{
			Name:  body.Customer.Name,
			Phone: deref(body.Customer.Phone),
			Email: deref(body.Customer.Email),
		},
		Address: order.ShippingAddress{
			Line1:      body.Address.Line1,
			Line2:      deref(body.Address.Line2),
			City:       body.Address.City,
			State:      deref(body.Address.State),
			PostalCode: body.Address.PostalCode,
			Country:    body.Address.Country,
		},
		Items:            make([]workflow.LineItemInput, 0, len(body.Items)),
		PaymentConfirmed: body.PaymentConfirmed != nil && *body.PaymentConfirmed,
	}
	if body.Id != nil {
		in.OrderID = body.Id.String()
	}

	for _, item := range body.Items {
		in.Items = append(in.Items, workflow.LineItemInput{
			ProductID:      item.ProductId,
			Name:           item.Name,
			UnitPriceMinor: item.UnitPrice,
			Quantity:       item.Quantity,
			ImageRef:       deref(item.ImageRef),
		})
	}
	return in
}

func toOrder(o workflow.Order) servers.Order {
	items := make([]servers.LineItem, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, servers.LineItem{
			ProductId: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPriceMinor,
			Quantity:  item.Quantity,
			ImageRef:  optional(item.ImageRef),
		})
	}

	return servers.Order{
		Id:     o.ID.Bytes(),
		Status: servers.OrderStatus(o.Status.String()),
		Customer: servers.Customer{
			Name:  o.Customer.Name,
			Phone: optional(o.Customer.Phone),
			Email: optional(o.Customer.Email),
		},
		Address: servers.Address{
			Line1:      o.Address.Line1,
			Line2:      optional(o.Address.Line2),
			City:       o.Address.City,
			State:      optional(o.Address.State),
			PostalCode: o.Address.PostalCode,
			Country:    o.Address.Country,
		},
		Items:              items,
		TotalAmount:        o.TotalMinor,
		CreatedAt:          o.CreatedAt.UTC(),
		PackedAt:           utcPtr(o.PackedAt),
		ShippedAt:          utcPtr(o.ShippedAt),
		DeliveredAt:        utcPtr(o.DeliveredAt),
		Carrier:            optional(o.Carrier),
		TrackingId:         optional(o.TrackingID),
		CancellationReason: optional(o.CancellationReason),
	}
}

func toPackingSession(s workflow.PackingSession) servers.PackingSession {
	progress := s.ScanProgress
	if progress == nil {
		progress = map[string]int{}
	}

	return servers.PackingSession{
		Id:                     s.ID.Bytes(),
		OrderId:                s.OrderID.Bytes(),
		AdminEmail:             s.AdminEmail,
		Status:                 servers.PackingSessionStatus(s.Status.String()),
		ScanProgress:           progress,
		StartedAt:              s.StartedAt.UTC(),
		CompletedAt:            utcPtr(s.CompletedAt),
		PackingDurationMinutes: s.PackingDurationMinutes,
		CancelledAt:            utcPtr(s.CancelledAt),
		CancelReason:           optional(s.CancelReason),
	}
}

func toStatistics(s workflow.Statistics) servers.Statistics {
	return servers.Statistics{
		TotalOrders:     s.Total,
		TodayOrders:     s.TodayCount,
		TodayRevenue:    s.TodayRevenueMinor,
		TodayNetRevenue: s.TodayNetRevenueMinor,
		ByStatus: map[string]int{
			order.Pending.String():   s.Pending,
			order.Paid.String():      s.Paid,
			order.InPacking.String(): s.InPacking,
			order.Packed.String():    s.Packed,
			order.Shipped.String():   s.Shipped,
			order.Delivered.String(): s.Delivered,
			order.Cancelled.String(): s.Cancelled,
		},
	}
}
