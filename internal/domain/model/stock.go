package model

import "github.com/shopspring/decimal"

// Stock tracks the on-hand quantity of one product in one warehouse; the
// (ProductID, WarehouseID) pair is unique across the stock store. RemoteCount
// is incremented whenever the stock fulfills an item for an order placed at a
// different warehouse.
type Stock struct {
	Base
	ProductID         string          `json:"product_id"`
	WarehouseID       string          `json:"warehouse_id"`
	Quantity          int             `json:"quantity"`
	YearToDateBalance decimal.Decimal `json:"year_to_date_balance"`
	OrderCount        int             `json:"order_count"`
	RemoteCount       int             `json:"remote_count"`
	Data              string          `json:"data"`
	Dist01            string          `json:"dist01"`
	Dist02            string          `json:"dist02"`
	Dist03            string          `json:"dist03"`
	Dist04            string          `json:"dist04"`
	Dist05            string          `json:"dist05"`
	Dist06            string          `json:"dist06"`
	Dist07            string          `json:"dist07"`
	Dist08            string          `json:"dist08"`
	Dist09            string          `json:"dist09"`
	Dist10            string          `json:"dist10"`
}

// Clone returns a copy of the stock record
func (s *Stock) Clone() *Stock {
	c := *s
	return &c
}
