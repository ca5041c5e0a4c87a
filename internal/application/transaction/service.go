package transaction

import (
	"fmt"

	"github.com/wss/backend/internal/domain/model"
	"github.com/wss/backend/internal/domain/shared"
	"github.com/wss/backend/internal/infrastructure/persistence"
)

// Transaction names used for runner metrics and logging
const (
	NameNewOrder    = "new_order"
	NamePayment     = "payment"
	NameOrderStatus = "order_status"
	NameDelivery    = "delivery"
	NameStockLevel  = "stock_level"
)

// resolveCustomer finds a customer either by id or by email. Exactly one of
// the two must be given. An email matching no customer is NOT_FOUND, an email
// matching more than one is AMBIGUOUS_LOOKUP.
func resolveCustomer(customers *persistence.TxStore[*model.Customer], id, email string) (*model.Customer, error) {
	switch {
	case id != "" && email != "":
		return nil, shared.NewDomainError(shared.CodeInvalidArgument,
			"Customer id and email must not both be given")
	case id != "":
		return customers.GetByID(id)
	case email != "":
		matches := customers.Filter(func(c *model.Customer) bool { return c.Email == email })
		if len(matches) == 0 {
			return nil, shared.NewDomainError(shared.CodeNotFound,
				fmt.Sprintf("Unable to find customer with email %s", email))
		}
		if len(matches) > 1 {
			return nil, shared.NewDomainError(shared.CodeAmbiguousLookup,
				fmt.Sprintf("Email %s matches %d customers", email, len(matches)))
		}
		return matches[0], nil
	default:
		return nil, shared.NewDomainError(shared.CodeInvalidArgument,
			"Either customer id or email must be given")
	}
}

// mostRecentOrder picks the order with the latest entry date; identical entry
// dates are broken deterministically in favor of the greater id.
func mostRecentOrder(orders []*model.Order) *model.Order {
	var latest *model.Order
	for _, o := range orders {
		if latest == nil || o.EntryDate.After(latest.EntryDate) ||
			(o.EntryDate.Equal(latest.EntryDate) && o.ID > latest.ID) {
			latest = o
		}
	}
	return latest
}

// oldestOrder picks the order with the earliest entry date; identical entry
// dates are broken deterministically in favor of the smaller id.
func oldestOrder(orders []*model.Order) *model.Order {
	var oldest *model.Order
	for _, o := range orders {
		if oldest == nil || o.EntryDate.Before(oldest.EntryDate) ||
			(o.EntryDate.Equal(oldest.EntryDate) && o.ID < oldest.ID) {
			oldest = o
		}
	}
	return oldest
}
