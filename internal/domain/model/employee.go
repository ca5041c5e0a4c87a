package model

// Employee is a terminal user of the system, generated with a bcrypt-hashed
// password. It carries no invariants beyond identity uniqueness.
type Employee struct {
	Base
	DistrictID string  `json:"district_id"`
	Title      string  `json:"title"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	Address    Address `json:"address"`
	Email      string  `json:"email"`
	Username   string  `json:"username"`
	Password   string  `json:"password"`
}

// Clone returns a copy of the employee
func (e *Employee) Clone() *Employee {
	c := *e
	return &c
}
