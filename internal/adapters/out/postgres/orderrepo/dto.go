// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Status is stored by name so that the conditional updates and the statistics
// scan read plainly in SQL.
type OrderDTO struct {
	ID                 uuid.UUID    `gorm:"type:uuid;primaryKey"`
	Status             string       `gorm:"type:varchar(16);not null;index"`
	Customer           CustomerDTO  `gorm:"embedded;embeddedPrefix:customer_"`
	Address            AddressDTO   `gorm:"embedded;embeddedPrefix:address_"`
	Items              LineItemsDTO `gorm:"type:jsonb;not null"`
	TotalAmount        *int64
	CreatedAt          time.Time `gorm:"not null;index"`
	PackedAt           *time.Time
	ShippedAt          *time.Time
	DeliveredAt        *time.Time
	Carrier            *string
	TrackingID         *string
	CancellationReason string
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

type CustomerDTO struct {
	Name  string
	Phone string
	Email string
}

type AddressDTO struct {
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	Country    string
}

// LineItemDTO is one element of the items JSON column.
type LineItemDTO struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	ImageRef  string `json:"image_ref,omitempty"`
}

// LineItemsDTO is stored as a JSON array.
type LineItemsDTO []LineItemDTO

func (l LineItemsDTO) Value() (driver.Value, error) {
	raw, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

func (l *LineItemsDTO) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	case nil:
		*l = nil
		return nil
	default:
		return fmt.Errorf("cannot scan %T into line items", src)
	}
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	items := o.Items()
	itemDTOs := make(LineItemsDTO, 0, len(items))
	for _, item := range items {
		itemDTOs = append(itemDTOs, LineItemDTO{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice.MinorUnits(),
			Quantity:  item.Quantity,
			ImageRef:  item.ImageRef,
		})
	}

	total := o.TotalAmount().MinorUnits()
	customer := o.Customer()
	address := o.Address()

	dto := OrderDTO{
		ID:     o.ID().Bytes(),
		Status: o.Status().String(),
		Customer: CustomerDTO{
			Name:  customer.Name,
			Phone: customer.Phone,
			Email: customer.Email,
		},
		Address: AddressDTO{
			Line1:      address.Line1,
			Line2:      address.Line2,
			City:       address.City,
			State:      address.State,
			PostalCode: address.PostalCode,
			Country:    address.Country,
		},
		Items:              itemDTOs,
		TotalAmount:        &total,
		CreatedAt:          o.CreatedAt(),
		PackedAt:           o.PackedAt(),
		ShippedAt:          o.ShippedAt(),
		DeliveredAt:        o.DeliveredAt(),
		CancellationReason: o.CancellationReason(),
	}

	if shipping := o.Shipping(); shipping != nil {
		dto.Carrier = &shipping.Carrier
		dto.TrackingID = &shipping.TrackingID
	}

	return dto
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	total, err := kernel.MoneyFromNullable(dto.TotalAmount)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, item := range dto.Items {
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
	if dto.Carrier != nil && dto.TrackingID != nil {
		shipping = &order.Shipping{Carrier: *dto.Carrier, TrackingID: *dto.TrackingID}
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID: id,
		Customer: order.Customer{
			Name:  dto.Customer.Name,
			Phone: dto.Customer.Phone,
			Email: dto.Customer.Email,
		},
		Address: order.ShippingAddress{
			Line1:      dto.Address.Line1,
			Line2:      dto.Address.Line2,
			City:       dto.Address.City,
			State:      dto.Address.State,
			PostalCode: dto.Address.PostalCode,
			Country:    dto.Address.Country,
		},
		Items:              items,
		Total:              total,
		Status:             status,
		CreatedAt:          dto.CreatedAt,
		PackedAt:           dto.PackedAt,
		ShippedAt:          dto.ShippedAt,
		DeliveredAt:        dto.DeliveredAt,
		Shipping:           shipping,
		CancellationReason: dto.CancellationReason,
	})
}
