package model

import (
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Credit is a customer's credit rating
type Credit string

const (
	CreditGood Credit = "GOOD"
	CreditBad  Credit = "BAD"
)

// IsValid checks if the value is a valid Credit rating
func (c Credit) IsValid() bool {
	return c == CreditGood || c == CreditBad
}

// String returns the string representation of Credit
func (c Credit) String() string {
	return string(c)
}

// Customer belongs to exactly one district. Data is a free-form blob that is
// only mutated for customers with bad credit (see the payment transaction).
type Customer struct {
	Base
	DistrictID        string          `json:"district_id"`
	FirstName         string          `json:"first_name"`
	MiddleName        string          `json:"middle_name"`
	LastName          string          `json:"last_name"`
	Address           Address         `json:"address"`
	PhoneNumber       string          `json:"phone_number"`
	Email             string          `json:"email"`
	Since             time.Time       `json:"since"`
	Credit            Credit          `json:"credit"`
	CreditLimit       decimal.Decimal `json:"credit_limit"`
	Discount          decimal.Decimal `json:"discount"`
	Balance           decimal.Decimal `json:"balance"`
	YearToDatePayment decimal.Decimal `json:"year_to_date_payment"`
	PaymentCount      int             `json:"payment_count"`
	DeliveryCount     int             `json:"delivery_count"`
	Data              string          `json:"data"`
}

// HasBadCredit reports whether the customer's rating is BAD
func (c *Customer) HasBadCredit() bool {
	return c.Credit == CreditBad
}

// PrependData puts note in front of the data blob and truncates the result to
// at most maxLength bytes, dropping the oldest content first. The cut never
// splits a multi-byte rune.
func (c *Customer) PrependData(note string, maxLength int) {
	data := note + c.Data
	if len(data) > maxLength {
		cut := maxLength
		for cut > 0 && !utf8.RuneStart(data[cut]) {
			cut--
		}
		data = data[:cut]
	}
	c.Data = data
}

// Clone returns a copy of the customer
func (c *Customer) Clone() *Customer {
	cc := *c
	return &cc
}
