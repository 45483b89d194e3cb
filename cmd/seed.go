package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"fulfillment/internal/core/application/workflow"
	"fulfillment/internal/core/domain/model/order"

	"gopkg.in/yaml.v3"
)

// SeedFile is the YAML layout of demo orders loaded by the seed command.
//
//	orders:
//	  - customer: {name: Asha Verma, email: asha@example.com}
//	    address: {line1: 12 Loom St, city: Jaipur, postal_code: "302001", country: IN}
//	    paid: true
//	    items:
//	      - {product_id: shawl-01, name: Pashmina shawl, unit_price: 249900, quantity: 1}
type SeedFile struct {
	Orders []SeedOrder `yaml:"orders"`
}

type SeedOrder struct {
	ID       string         `yaml:"id"`
	Customer SeedCustomer   `yaml:"customer"`
	Address  SeedAddress    `yaml:"address"`
	Paid     bool           `yaml:"paid"`
	Items    []SeedLineItem `yaml:"items"`
}

type SeedCustomer struct {
	Name  string `yaml:"name"`
	Phone string `yaml:"phone"`
	Email string `yaml:"email"`
}

type SeedAddress struct {
	Line1      string `yaml:"line1"`
	Line2      string `yaml:"line2"`
	City       string `yaml:"city"`
	State      string `yaml:"state"`
	PostalCode string `yaml:"postal_code"`
	Country    string `yaml:"country"`
}

type SeedLineItem struct {
	ProductID string `yaml:"product_id"`
	Name      string `yaml:"name"`
	UnitPrice int64  `yaml:"unit_price"`
	Quantity  int    `yaml:"quantity"`
	ImageRef  string `yaml:"image_ref"`
}

func ReadSeedFile(path string) (SeedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return SeedFile{}, err
	}
	defer f.Close()
	return DecodeSeed(f)
}

func DecodeSeed(r io.Reader) (SeedFile, error) {
	var seed SeedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil && err != io.EOF {
		return SeedFile{}, fmt.Errorf("invalid seed file: %w", err)
	}
	return seed, nil
}

func (o SeedOrder) input() workflow.CreateOrderInput {
	items := make([]workflow.LineItemInput, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, workflow.LineItemInput{
			ProductID:      item.ProductID,
			Name:           item.Name,
			UnitPriceMinor: item.UnitPrice,
			Quantity:       item.Quantity,
			ImageRef:       item.ImageRef,
		})
	}

	return workflow.CreateOrderInput{
		OrderID: o.ID,
		Customer: order.Customer{
			Name:  o.Customer.Name,
			Phone: o.Customer.Phone,
			Email: o.Customer.Email,
		},
		Address: order.ShippingAddress{
			Line1:      o.Address.Line1,
			Line2:      o.Address.Line2,
			City:       o.Address.City,
			State:      o.Address.State,
			PostalCode: o.Address.PostalCode,
			Country:    o.Address.Country,
		},
		Items:            items,
		PaymentConfirmed: o.Paid,
	}
}

// OrderCreator is the part of the workflow the seed command needs.
type OrderCreator interface {
	CreateOrder(ctx context.Context, in workflow.CreateOrderInput) (workflow.Order, error)
}

// Seed creates every order of the file. It stops at the first rejected order
// and returns the ones created so far.
func Seed(ctx context.Context, creator OrderCreator, seed SeedFile) ([]workflow.Order, error) {
	created := make([]workflow.Order, 0, len(seed.Orders))
	for i, o := range seed.Orders {
		result, err := creator.CreateOrder(ctx, o.input())
		if err != nil {
			return created, fmt.Errorf("order #%d: %w", i+1, err)
		}
		created = append(created, result)
	}
	return created, nil
}
