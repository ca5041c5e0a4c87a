package model

// Carrier delivers orders to customers during the delivery transaction
type Carrier struct {
	Base
	Name        string  `json:"name"`
	PhoneNumber string  `json:"phone_number"`
	Address     Address `json:"address"`
}

// Clone returns a copy of the carrier
func (c *Carrier) Clone() *Carrier {
	cc := *c
	return &cc
}
