package transaction

import (
	"context"
	"fmt"
	"sort"

	"github.com/wss/backend/internal/domain/model"
	"github.com/wss/backend/internal/domain/shared"
	"github.com/wss/backend/internal/infrastructure/persistence"
)

// OrderStatusService processes the order-status transaction: a read-only
// report of a customer's most recently entered order within a district.
type OrderStatusService struct {
	stores *persistence.Stores
	runner *persistence.TransactionRunner
}

// NewOrderStatusService creates a new OrderStatusService
func NewOrderStatusService(stores *persistence.Stores, runner *persistence.TransactionRunner) *OrderStatusService {
	return &OrderStatusService{
		stores: stores,
		runner: runner,
	}
}

// Process executes the order-status transaction. The unit of work only
// reads, so it participates in the retry contract purely for consistency
// against concurrent writers.
func (s *OrderStatusService) Process(ctx context.Context, req *OrderStatusRequest) (*OrderStatusResponse, error) {
	var res *OrderStatusResponse
	err := s.runner.Commit(ctx, NameOrderStatus, func() error {
		res = nil
		tx := s.stores.Begin()

		customer, err := resolveCustomer(tx.Customers, req.CustomerID, req.CustomerEmail)
		if err != nil {
			return err
		}

		orders := tx.Orders.Filter(func(o *model.Order) bool {
			return o.CustomerID == customer.ID && o.DistrictID == req.DistrictID
		})
		order := mostRecentOrder(orders)
		if order == nil {
			return shared.NewDomainError(shared.CodeNotFound,
				fmt.Sprintf("Customer %s has no orders in district %s", customer.ID, req.DistrictID))
		}

		items := tx.OrderItems.Filter(func(i *model.OrderItem) bool {
			return i.OrderID == order.ID
		})
		sort.Slice(items, func(a, b int) bool { return items[a].Number < items[b].Number })

		status := make([]OrderItemStatus, 0, len(items))
		for _, item := range items {
			status = append(status, OrderItemStatus{
				ProductID:            item.ProductID,
				SupplyingWarehouseID: item.SupplyingWarehouseID,
				Quantity:             item.Quantity,
				Amount:               item.Amount,
				DeliveryDate:         item.DeliveryDate,
			})
		}

		res = &OrderStatusResponse{
			WarehouseID:        req.WarehouseID,
			DistrictID:         req.DistrictID,
			CustomerID:         customer.ID,
			CustomerFirstName:  customer.FirstName,
			CustomerMiddleName: customer.MiddleName,
			CustomerLastName:   customer.LastName,
			CustomerBalance:    customer.Balance,
			OrderID:            order.ID,
			OrderNumber:        order.Number,
			OrderEntryDate:     order.EntryDate,
			OrderCarrierID:     order.CarrierID,
			OrderFulfilled:     order.Fulfilled,
			ItemStatus:         status,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
