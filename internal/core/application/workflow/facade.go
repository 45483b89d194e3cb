package workflow

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/packing"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// LineItemInput is one line of an order placed at checkout.
type LineItemInput struct {
	ProductID      string
	Name           string
	UnitPriceMinor int64
	Quantity       int
	ImageRef       string
}

// CreateOrderInput is what checkout hands over. OrderID is optional; an empty
// value gets a fresh identifier.
type CreateOrderInput struct {
	OrderID          string
	Customer         order.Customer
	Address          order.ShippingAddress
	Items            []LineItemInput
	PaymentConfirmed bool
}

// Read models returned by the Facade.
type (
	Order          = queries.OrderView
	LineItem       = queries.LineItemView
	PackingSession = queries.PackingSessionView
	Statistics     = queries.StatisticsView
)

// Facade runs the fulfillment workflow on top of a record store.
type Facade struct {
	createOrder       commands.CreateOrderCommandHandler
	shipOrder         commands.ShipOrderCommandHandler
	deliverOrder      commands.DeliverOrderCommandHandler
	cancelOrder       commands.CancelOrderCommandHandler
	updateOrderStatus commands.UpdateOrderStatusCommandHandler
	openSession       commands.OpenPackingSessionCommandHandler
	updateProgress    commands.UpdateScanProgressCommandHandler
	completeSession   commands.CompletePackingSessionCommandHandler
	cancelSession     commands.CancelPackingSessionCommandHandler
	expireSessions    commands.ExpireStalePackingSessionsCommandHandler

	getOrder         queries.GetOrderQueryHandler
	getActiveSession queries.GetActivePackingSessionQueryHandler
	getStatistics    queries.GetOrderStatisticsQueryHandler

	logger *slog.Logger
}

func NewFacade(
	uowFactory ports.UnitOfWorkFactory,
	clock kernel.Clock,
	aggregator services.StatisticsAggregator,
	logger *slog.Logger,
) *Facade {
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	orderUoWs := orderUoWFactory{uowFactory}
	uows := uowFactoryAdapter{uowFactory}

	return &Facade{
		createOrder:       commands.NewCreateOrderCommandHandler(orderUoWs, clock),
		shipOrder:         commands.NewShipOrderCommandHandler(orderUoWs, clock),
		deliverOrder:      commands.NewDeliverOrderCommandHandler(orderUoWs, clock),
		cancelOrder:       commands.NewCancelOrderCommandHandler(orderUoWs, clock),
		updateOrderStatus: commands.NewUpdateOrderStatusCommandHandler(orderUoWs, clock),
		openSession:       commands.NewOpenPackingSessionCommandHandler(uows, clock),
		updateProgress:    commands.NewUpdateScanProgressCommandHandler(uows),
		completeSession:   commands.NewCompletePackingSessionCommandHandler(uows, clock),
		cancelSession:     commands.NewCancelPackingSessionCommandHandler(uows, clock),
		expireSessions:    commands.NewExpireStalePackingSessionsCommandHandler(uows, clock),

		getOrder:         queries.NewGetOrderQueryHandler(uowFactory),
		getActiveSession: queries.NewGetActivePackingSessionQueryHandler(uowFactory),
		getStatistics:    queries.NewGetOrderStatisticsQueryHandler(uowFactory, aggregator, clock),

		logger: logger.With("component", "workflow"),
	}
}

// CreateOrder places an order in pending, or directly in paid when checkout
// already confirmed the payment.
func (f *Facade) CreateOrder(ctx context.Context, in CreateOrderInput) (Order, error) {
	orderID := kernel.NewUUID()
	if strings.TrimSpace(in.OrderID) != "" {
		id, err := kernel.UUIDFromString(in.OrderID)
		if err != nil {
			return Order{}, f.fail(ctx, "create order", err)
		}
		orderID = id
	}

	items, err := lineItems(in.Items)
	if err != nil {
		return Order{}, f.fail(ctx, "create order", err)
	}

	cmd, err := commands.NewCreateOrderCommand(orderID, in.Customer, in.Address, items)
	if err != nil {
		return Order{}, f.fail(ctx, "create order", err)
	}
	if in.PaymentConfirmed {
		cmd = cmd.WithPaymentConfirmed()
	}

	if err = f.createOrder.Handle(ctx, cmd); err != nil {
		return Order{}, f.fail(ctx, "create order", err)
	}

	f.logger.InfoContext(ctx, "order created", "order_id", orderID.String())
	return f.readOrder(ctx, "create order", orderID)
}

// GetOrder is the tracking read for admins and customers.
func (f *Facade) GetOrder(ctx context.Context, orderID string) (Order, error) {
	id, err := kernel.UUIDFromString(orderID)
	if err != nil {
		return Order{}, f.fail(ctx, "get order", err)
	}
	return f.readOrder(ctx, "get order", id)
}

// ShipOrder hands a packed order to a carrier.
func (f *Facade) ShipOrder(ctx context.Context, orderID, carrier, trackingID string) (Order, error) {
	id, err := kernel.UUIDFromString(orderID)
	if err != nil {
		return Order{}, f.fail(ctx, "ship order", err)
	}

	cmd, err := commands.NewShipOrderCommand(id, carrier, trackingID)
	if err != nil {
		return Order{}, f.fail(ctx, "ship order", err)
	}

	return f.orderResult(ctx, "ship order")(f.shipOrder.Handle(ctx, cmd))
}

func (f *Facade) DeliverOrder(ctx context.Context, orderID string) (Order, error) {
	id, err := kernel.UUIDFromString(orderID)
	if err != nil {
		return Order{}, f.fail(ctx, "deliver order", err)
	}

	cmd, err := commands.NewDeliverOrderCommand(id)
	if err != nil {
		return Order{}, f.fail(ctx, "deliver order", err)
	}

	return f.orderResult(ctx, "deliver order")(f.deliverOrder.Handle(ctx, cmd))
}

// CancelOrder cancels a pending or paid order and records the reason.
func (f *Facade) CancelOrder(ctx context.Context, orderID, reason string) (Order, error) {
	id, err := kernel.UUIDFromString(orderID)
	if err != nil {
		return Order{}, f.fail(ctx, "cancel order", err)
	}

	cmd, err := commands.NewCancelOrderCommand(id, reason)
	if err != nil {
		return Order{}, f.fail(ctx, "cancel order", err)
	}

	return f.orderResult(ctx, "cancel order")(f.cancelOrder.Handle(ctx, cmd))
}

// UpdateOrderStatus is the generic status setter. Edges reserved for packing
// and shipping are refused with INVALID_STATE.
func (f *Facade) UpdateOrderStatus(ctx context.Context, orderID, status string) (Order, error) {
	id, err := kernel.UUIDFromString(orderID)
	if err != nil {
		return Order{}, f.fail(ctx, "update order status", err)
	}

	target, err := order.ParseStatus(status)
	if err != nil {
		return Order{}, f.fail(ctx, "update order status", err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(id, target)
	if err != nil {
		return Order{}, f.fail(ctx, "update order status", err)
	}

	return f.orderResult(ctx, "update order status")(f.updateOrderStatus.Handle(ctx, cmd))
}

// OpenPackingSession returns the session in progress for the order, opening
// one first if there is none.
func (f *Facade) OpenPackingSession(
	ctx context.Context,
	orderID, adminEmail string,
) (PackingSession, error) {
	id, err := kernel.UUIDFromString(orderID)
	if err != nil {
		return PackingSession{}, f.fail(ctx, "open packing session", err)
	}

	cmd, err := commands.NewOpenPackingSessionCommand(id, adminEmail)
	if err != nil {
		return PackingSession{}, f.fail(ctx, "open packing session", err)
	}

	return f.sessionResult(ctx, "open packing session")(f.openSession.Handle(ctx, cmd))
}

// UpdateScanProgress sets the absolute scanned count of each listed product.
// Products left out keep their counts.
func (f *Facade) UpdateScanProgress(
	ctx context.Context,
	sessionID string,
	progress map[string]int,
) (PackingSession, error) {
	id, err := kernel.UUIDFromString(sessionID)
	if err != nil {
		return PackingSession{}, f.fail(ctx, "update scan progress", err)
	}

	cmd, err := commands.NewUpdateScanProgressCommand(id, packing.ScanProgress(progress))
	if err != nil {
		return PackingSession{}, f.fail(ctx, "update scan progress", err)
	}

	return f.sessionResult(ctx, "update scan progress")(f.updateProgress.Handle(ctx, cmd))
}

// CompletePackingSession completes the session and marks its order packed.
func (f *Facade) CompletePackingSession(ctx context.Context, sessionID string) (PackingSession, error) {
	id, err := kernel.UUIDFromString(sessionID)
	if err != nil {
		return PackingSession{}, f.fail(ctx, "complete packing session", err)
	}

	cmd, err := commands.NewCompletePackingSessionCommand(id)
	if err != nil {
		return PackingSession{}, f.fail(ctx, "complete packing session", err)
	}

	return f.sessionResult(ctx, "complete packing session")(f.completeSession.Handle(ctx, cmd))
}

// CancelPackingSession cancels the session and returns its order to paid.
func (f *Facade) CancelPackingSession(
	ctx context.Context,
	sessionID, reason string,
) (PackingSession, error) {
	id, err := kernel.UUIDFromString(sessionID)
	if err != nil {
		return PackingSession{}, f.fail(ctx, "cancel packing session", err)
	}

	cmd, err := commands.NewCancelPackingSessionCommand(id, reason)
	if err != nil {
		return PackingSession{}, f.fail(ctx, "cancel packing session", err)
	}

	return f.sessionResult(ctx, "cancel packing session")(f.cancelSession.Handle(ctx, cmd))
}

// GetActivePackingSession returns nil when the order has no session in progress.
func (f *Facade) GetActivePackingSession(ctx context.Context, orderID string) (*PackingSession, error) {
	id, err := kernel.UUIDFromString(orderID)
	if err != nil {
		return nil, f.fail(ctx, "get active packing session", err)
	}

	query, err := queries.NewGetActivePackingSessionQuery(id)
	if err != nil {
		return nil, f.fail(ctx, "get active packing session", err)
	}

	view, err := f.getActiveSession.Handle(ctx, query)
	if err != nil {
		return nil, f.fail(ctx, "get active packing session", err)
	}
	return view, nil
}

func (f *Facade) GetOrderStatistics(ctx context.Context) (Statistics, error) {
	view, err := f.getStatistics.Handle(ctx, queries.NewGetOrderStatisticsQuery())
	if err != nil {
		return Statistics{}, f.fail(ctx, "get order statistics", err)
	}
	return view, nil
}

// ExpireStalePackingSessions cancels every session in progress for longer than
// olderThan and reports how many it expired. The count is valid even when an
// error is returned.
func (f *Facade) ExpireStalePackingSessions(ctx context.Context, olderThan time.Duration) (int, error) {
	cmd, err := commands.NewExpireStalePackingSessionsCommand(olderThan)
	if err != nil {
		return 0, f.fail(ctx, "expire packing sessions", err)
	}

	expired, err := f.expireSessions.Handle(ctx, cmd)
	if expired > 0 {
		f.logger.InfoContext(ctx, "packing sessions expired", "count", expired, "older_than", olderThan.String())
	}
	if err != nil {
		return expired, f.fail(ctx, "expire packing sessions", err)
	}
	return expired, nil
}

func (f *Facade) readOrder(ctx context.Context, op string, id kernel.UUID) (Order, error) {
	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return Order{}, f.fail(ctx, op, err)
	}

	view, err := f.getOrder.Handle(ctx, query)
	if err != nil {
		return Order{}, f.fail(ctx, op, err)
	}
	return view, nil
}

func (f *Facade) orderResult(ctx context.Context, op string) func(*order.Order, error) (Order, error) {
	return func(o *order.Order, err error) (Order, error) {
		if err != nil {
			return Order{}, f.fail(ctx, op, err)
		}
		return queries.NewOrderView(o), nil
	}
}

func (f *Facade) sessionResult(
	ctx context.Context,
	op string,
) func(*packing.Session, error) (PackingSession, error) {
	return func(s *packing.Session, err error) (PackingSession, error) {
		if err != nil {
			return PackingSession{}, f.fail(ctx, op, err)
		}
		return queries.NewPackingSessionView(s), nil
	}
}

// fail classifies err and logs store failures. Rejections caused by the request
// are the caller's business and only reach the debug level.
func (f *Facade) fail(ctx context.Context, op string, err error) error {
	wfErr := Classify(err)
	if wfErr.Code == CodeStoreError {
		f.logger.ErrorContext(ctx, "operation failed", "operation", op, "error", wfErr)
	} else {
		f.logger.DebugContext(ctx, "operation rejected", "operation", op, "error", wfErr)
	}
	return wfErr
}

func lineItems(inputs []LineItemInput) ([]order.LineItem, error) {
	items := make([]order.LineItem, 0, len(inputs))
	var err error
	for _, in := range inputs {
		price, priceErr := kernel.NewMoney(in.UnitPriceMinor)
		if priceErr != nil {
			err = errors.Join(err, priceErr)
			continue
		}
		items = append(items, order.LineItem{
			ProductID: strings.TrimSpace(in.ProductID),
			Name:      strings.TrimSpace(in.Name),
			UnitPrice: price,
			Quantity:  in.Quantity,
			ImageRef:  in.ImageRef,
		})
	}
	return items, err
}

type orderUoWFactory struct {
	factory ports.UnitOfWorkFactory
}

func (f orderUoWFactory) Create() commands.OrderUoW {
	return f.factory.Create()
}

type uowFactoryAdapter struct {
	factory ports.UnitOfWorkFactory
}

func (f uowFactoryAdapter) Create() commands.UoW {
	return f.factory.Create()
}
