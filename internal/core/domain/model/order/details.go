package order

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Customer holds the contact details captured at checkout.
type Customer struct {
	Name  string
	Phone string
	Email string
}

// Validate requires a name and at least one contact channel.
func (c Customer) Validate() error {
	var err error
	if strings.TrimSpace(c.Name) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("customer name"))
	}
	if strings.TrimSpace(c.Phone) == "" && strings.TrimSpace(c.Email) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("customer phone or email"))
	}
	return err
}

// ShippingAddress is where the parcel goes.
type ShippingAddress struct {
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	Country    string
}

func (a ShippingAddress) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"address line1", a.Line1},
		{"city", a.City},
		{"postal code", a.PostalCode},
		{"country", a.Country},
	}

	var err error
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			err = errors.Join(err, errs.NewValueIsRequiredError(field.name))
		}
	}
	return err
}

// LineItem is one product line of an order. ProductID doubles as the key of
// the packing session's scan progress, so it is unique within an order.
type LineItem struct {
	ProductID string
	Name      string
	UnitPrice kernel.Money
	Quantity  int
	ImageRef  string
}

func (i LineItem) Validate() error {
	var err error
	if strings.TrimSpace(i.ProductID) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("product id"))
	}
	if strings.TrimSpace(i.Name) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("product name"))
	}
	if i.Quantity <= 0 {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not greater than 0", i.Quantity),
		))
	}
	return err
}

// Subtotal returns UnitPrice * Quantity.
func (i LineItem) Subtotal() (kernel.Money, error) {
	return i.UnitPrice.Multiply(i.Quantity)
}

// Shipping is the carrier hand-off recorded when an order ships.
type Shipping struct {
	Carrier    string
	TrackingID string
}

// Validate requires both carrier and tracking id.
func (s Shipping) Validate() error {
	var err error
	if strings.TrimSpace(s.Carrier) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("carrier"))
	}
	if strings.TrimSpace(s.TrackingID) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("tracking id"))
	}
	return err
}
