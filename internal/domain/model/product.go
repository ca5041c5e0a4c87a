package model

import "github.com/shopspring/decimal"

// Product is immutable after generation. Data may embed the literal marker
// "ORIGINAL" used by the stock-level sampling of the synthetic model.
type Product struct {
	Base
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Data  string          `json:"data"`
}

// Clone returns a copy of the product
func (p *Product) Clone() *Product {
	c := *p
	return &c
}
