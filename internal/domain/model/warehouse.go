package model

import "github.com/shopspring/decimal"

// Warehouse is the top-level unit of the wholesale supplier model. It owns
// districts and keeps one stock record per product it supplies.
type Warehouse struct {
	Base
	Name              string          `json:"name"`
	Address           Address         `json:"address"`
	SalesTax          decimal.Decimal `json:"sales_tax"`
	YearToDateBalance decimal.Decimal `json:"year_to_date_balance"`
}

// Clone returns a copy of the warehouse
func (w *Warehouse) Clone() *Warehouse {
	c := *w
	return &c
}
