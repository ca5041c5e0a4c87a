package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment records one processed payment transaction
type Payment struct {
	Base
	CustomerID string          `json:"customer_id"`
	DistrictID string          `json:"district_id"`
	Date       time.Time       `json:"date"`
	Amount     decimal.Decimal `json:"amount"`
	Data       string          `json:"data"`
}

// Clone returns a copy of the payment
func (p *Payment) Clone() *Payment {
	c := *p
	return &c
}
