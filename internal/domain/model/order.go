package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order belongs to exactly one customer and district. CarrierID stays empty
// and Fulfilled false until the order is picked up by a delivery sweep.
// AllLocal is true iff every item is supplied by the order's own warehouse.
type Order struct {
	Base
	DistrictID string    `json:"district_id"`
	CustomerID string    `json:"customer_id"`
	Number     int       `json:"number"`
	EntryDate  time.Time `json:"entry_date"`
	CarrierID  string    `json:"carrier_id"`
	Fulfilled  bool      `json:"fulfilled"`
	ItemCount  int       `json:"item_count"`
	AllLocal   bool      `json:"all_local"`
}

// Clone returns a copy of the order
func (o *Order) Clone() *Order {
	c := *o
	return &c
}

// OrderItem is one line of an order. Number is the 1-based position within
// the order. DeliveryDate is nil until the item has been delivered.
type OrderItem struct {
	Base
	OrderID              string          `json:"order_id"`
	ProductID            string          `json:"product_id"`
	SupplyingWarehouseID string          `json:"supplying_warehouse_id"`
	Number               int             `json:"number"`
	Quantity             int             `json:"quantity"`
	Amount               decimal.Decimal `json:"amount"`
	DeliveryDate         *time.Time      `json:"delivery_date,omitempty"`
}

// Clone returns a copy of the order item
func (i *OrderItem) Clone() *OrderItem {
	c := *i
	if i.DeliveryDate != nil {
		d := *i.DeliveryDate
		c.DeliveryDate = &d
	}
	return &c
}
