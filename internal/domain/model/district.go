package model

import "github.com/shopspring/decimal"

// District belongs to exactly one warehouse and owns customers and orders.
// NextOrderNumber is the monotonically increasing counter handed to each new
// order entered in the district.
type District struct {
	Base
	WarehouseID       string          `json:"warehouse_id"`
	Name              string          `json:"name"`
	Address           Address         `json:"address"`
	SalesTax          decimal.Decimal `json:"sales_tax"`
	YearToDateBalance decimal.Decimal `json:"year_to_date_balance"`
	NextOrderNumber   int             `json:"next_order_number"`
}

// Clone returns a copy of the district
func (d *District) Clone() *District {
	c := *d
	return &c
}
