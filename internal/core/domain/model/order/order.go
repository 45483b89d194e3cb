package order

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrOrderHasNoItems is returned when an order is placed without line items.
	ErrOrderHasNoItems = errs.NewValueIsRequiredError("line items")
)

// Order is the aggregate root of a customer purchase moving through fulfillment.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and at least one line item
//   - Product ids are unique among line items
//   - Status changes only through the transition methods, which consult the status machine
//   - packed_at, shipped_at and delivered_at are set once, by their own transition
//   - created_at <= packed_at <= shipped_at <= delivered_at whenever present
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	id       kernel.UUID
	customer Customer
	address  ShippingAddress
	items    []LineItem
	total    kernel.Money
	status   Status

	createdAt   time.Time
	packedAt    *time.Time
	shippedAt   *time.Time
	deliveredAt *time.Time

	shipping           *Shipping
	cancellationReason string

	events []StatusChanged

	isConstructed bool
}

// NewOrder places a new order in Pending status. The total is the sum of the
// line item subtotals.
//
// Example:
//
//	price, _ := kernel.NewMoney(249900)
//	o, err := order.NewOrder(
//	    kernel.NewUUID(),
//	    order.Customer{Name: "Asha", Email: "asha@example.com"},
//	    order.ShippingAddress{Line1: "12 Loom St", City: "Jaipur", PostalCode: "302001", Country: "IN"},
//	    []order.LineItem{{ProductID: "shawl-01", Name: "Pashmina shawl", UnitPrice: price, Quantity: 1}},
//	    time.Now(),
//	)
func NewOrder(
	id kernel.UUID,
	customer Customer,
	address ShippingAddress,
	items []LineItem,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomer(customer),
		o.setAddress(address),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	total, err := sumItems(o.items)
	if err != nil {
		return nil, err
	}
	o.total = total

	return o, nil
}

// RestoreOrderParams carries the persisted state of an order.
type RestoreOrderParams struct {
	ID                 kernel.UUID
	Customer           Customer
	Address            ShippingAddress
	Items              []LineItem
	Total              kernel.Money
	Status             Status
	CreatedAt          time.Time
	PackedAt           *time.Time
	ShippedAt          *time.Time
	DeliveredAt        *time.Time
	Shipping           *Shipping
	CancellationReason string
}

// RestoreOrder rebuilds an order read back from storage. The stored total is kept
// as is (it may predate price changes) and no domain events are raised.
func RestoreOrder(p RestoreOrderParams) (*Order, error) {
	if err := errors.Join(p.ID.Validate(), p.Status.Validate()); err != nil {
		return nil, err
	}

	return &Order{
		id:                 p.ID,
		customer:           p.Customer,
		address:            p.Address,
		items:              slices.Clone(p.Items),
		total:              p.Total,
		status:             p.Status,
		createdAt:          p.CreatedAt,
		packedAt:           p.PackedAt,
		shippedAt:          p.ShippedAt,
		deliveredAt:        p.DeliveredAt,
		shipping:           p.Shipping,
		cancellationReason: p.CancellationReason,
		isConstructed:      true,
	}, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Customer() Customer {
	return o.customer
}

func (o *Order) Address() ShippingAddress {
	return o.address
}

func (o *Order) Items() []LineItem {
	return slices.Clone(o.items)
}

func (o *Order) TotalAmount() kernel.Money {
	return o.total
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) PackedAt() *time.Time {
	return o.packedAt
}

func (o *Order) ShippedAt() *time.Time {
	return o.shippedAt
}

func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

func (o *Order) Shipping() *Shipping {
	return o.shipping
}

func (o *Order) CancellationReason() string {
	return o.cancellationReason
}

func (o *Order) DomainEvents() []StatusChanged {
	return slices.Clone(o.events)
}

func (o *Order) ClearDomainEvents() {
	o.events = nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// OrderedQuantities maps each product id to its ordered quantity. Packing
// sessions use it to bound scan progress.
func (o *Order) OrderedQuantities() map[string]int {
	quantities := make(map[string]int, len(o.items))
	for _, item := range o.items {
		quantities[item.ProductID] = item.Quantity
	}
	return quantities
}

// MarkPaid records payment confirmation: Pending -> Paid.
func (o *Order) MarkPaid(at time.Time) error {
	return o.transition(Paid, TriggerManual, at, "")
}

// StartPacking moves Paid -> InPacking. Only a packing session creation calls it.
func (o *Order) StartPacking(at time.Time) error {
	return o.transition(InPacking, TriggerPackingOpened, at, "")
}

// ReturnToPaid rolls InPacking -> Paid after the packing session was cancelled.
func (o *Order) ReturnToPaid(at time.Time, reason string) error {
	return o.transition(Paid, TriggerPackingCancelled, at, reason)
}

// MarkPacked moves InPacking -> Packed and stamps packed_at with the completion
// time of the packing session.
func (o *Order) MarkPacked(completedAt time.Time) error {
	if err := ValidateTransitionVia(o.status, Packed, TriggerPackingCompleted); err != nil {
		return err
	}
	packedAt := kernel.LaterOf(completedAt, o.createdAt)
	o.packedAt = &packedAt
	o.apply(Packed, packedAt, "")
	return nil
}

// Ship hands the order to a carrier: Packed -> Shipped. Carrier and tracking id
// are required.
func (o *Order) Ship(shipping Shipping, at time.Time) error {
	if err := shipping.Validate(); err != nil {
		return err
	}
	if err := ValidateTransitionVia(o.status, Shipped, TriggerShipment); err != nil {
		return err
	}
	shippedAt := kernel.LaterOf(at, o.latestTimestamp())
	o.shippedAt = &shippedAt
	o.shipping = &shipping
	o.apply(Shipped, shippedAt, "")
	return nil
}

// Deliver moves Shipped -> Delivered. An order without shipped_at is rejected
// even if its status claims otherwise.
func (o *Order) Deliver(at time.Time) error {
	if err := ValidateTransitionVia(o.status, Delivered, TriggerManual); err != nil {
		return err
	}
	if o.shippedAt == nil {
		return errs.NewStateTransitionIsInvalidErrorWithCause(
			"order", o.status.String(), Delivered.String(),
			fmt.Errorf("order %s has no shipped_at", o.id),
		)
	}
	deliveredAt := kernel.LaterOf(at, *o.shippedAt)
	o.deliveredAt = &deliveredAt
	o.apply(Delivered, deliveredAt, "")
	return nil
}

// Cancel moves Pending or Paid -> Cancelled and records the reason for audit.
// Orders in packing are cancelled through their packing session instead.
func (o *Order) Cancel(reason string, at time.Time) error {
	if err := o.transition(Cancelled, TriggerManual, at, reason); err != nil {
		return err
	}
	o.cancellationReason = reason
	return nil
}

// ChangeStatus is the generic status setter. It still goes through the status
// machine with the manual trigger, so it can confirm payment, confirm delivery
// ("I received my order") or cancel, but never skip packing or shipping details.
func (o *Order) ChangeStatus(target Status, at time.Time) error {
	if err := target.Validate(); err != nil {
		return err
	}

	switch target {
	case Delivered:
		return o.Deliver(at)
	case Cancelled:
		return o.Cancel("", at)
	default:
		return o.transition(target, TriggerManual, at, "")
	}
}

func (o *Order) transition(target Status, trigger Trigger, at time.Time, reason string) error {
	if err := ValidateTransitionVia(o.status, target, trigger); err != nil {
		return err
	}
	o.apply(target, kernel.LaterOf(at, o.latestTimestamp()), reason)
	return nil
}

func (o *Order) apply(target Status, at time.Time, reason string) {
	event := StatusChanged{
		OrderID:    o.id,
		From:       o.status,
		To:         target,
		OccurredAt: at,
		Reason:     reason,
	}
	if target == Shipped && o.shipping != nil {
		shipping := *o.shipping
		event.Shipping = &shipping
	}
	o.status = target
	o.events = append(o.events, event)
}

func (o *Order) latestTimestamp() time.Time {
	latest := o.createdAt
	for _, ts := range []*time.Time{o.packedAt, o.shippedAt, o.deliveredAt} {
		if ts != nil && ts.After(latest) {
			latest = *ts
		}
	}
	return latest
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomer(customer Customer) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	o.customer = customer
	return nil
}

func (o *Order) setAddress(address ShippingAddress) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.address = address
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return ErrOrderHasNoItems
	}

	seen := make(map[string]struct{}, len(items))
	var err error
	for _, item := range items {
		if itemErr := item.Validate(); itemErr != nil {
			err = errors.Join(err, itemErr)
			continue
		}
		if _, dup := seen[item.ProductID]; dup {
			err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(
				"line items are invalid",
				fmt.Errorf("product %s appears more than once", item.ProductID),
			))
		}
		seen[item.ProductID] = struct{}{}
	}
	if err != nil {
		return err
	}

	o.items = slices.Clone(items)
	return nil
}

func sumItems(items []LineItem) (kernel.Money, error) {
	var total kernel.Money
	for _, item := range items {
		subtotal, err := item.Subtotal()
		if err != nil {
			return kernel.Money{}, err
		}
		if total, err = total.Add(subtotal); err != nil {
			return kernel.Money{}, err
		}
	}
	return total, nil
}
