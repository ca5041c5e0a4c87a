package transaction

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wss/backend/internal/domain/model"
	"github.com/wss/backend/internal/infrastructure/persistence"
)

// DeliveryService processes the delivery transaction: for every district of
// a warehouse it delivers the oldest unfulfilled order, if any. The whole
// sweep is a single unit of work, so a conflict in any district re-runs the
// sweep from scratch rather than leaving half the districts delivered by a
// stale view.
type DeliveryService struct {
	stores *persistence.Stores
	runner *persistence.TransactionRunner
}

// NewDeliveryService creates a new DeliveryService
func NewDeliveryService(stores *persistence.Stores, runner *persistence.TransactionRunner) *DeliveryService {
	return &DeliveryService{
		stores: stores,
		runner: runner,
	}
}

// Process executes the delivery sweep as one retryable unit of work
func (s *DeliveryService) Process(ctx context.Context, req *DeliveryRequest) (*DeliveryResponse, error) {
	var res *DeliveryResponse
	err := s.runner.Commit(ctx, NameDelivery, func() error {
		res = nil
		tx := s.stores.Begin()

		warehouse, err := tx.Warehouses.GetByID(req.WarehouseID)
		if err != nil {
			return err
		}
		carrier, err := tx.Carriers.GetByID(req.CarrierID)
		if err != nil {
			return err
		}

		districts := tx.Districts.Filter(func(d *model.District) bool {
			return d.WarehouseID == warehouse.ID
		})

		var delivered []string
		for _, district := range districts {
			unfulfilled := tx.Orders.Filter(func(o *model.Order) bool {
				return o.DistrictID == district.ID && !o.Fulfilled
			})
			order := oldestOrder(unfulfilled)
			if order == nil {
				// No unfulfilled orders for this district, do nothing
				continue
			}

			order.CarrierID = carrier.ID
			order.Fulfilled = true

			items := tx.OrderItems.Filter(func(i *model.OrderItem) bool {
				return i.OrderID == order.ID
			})
			now := time.Now()
			amountSum := decimal.Zero
			for _, item := range items {
				item.DeliveryDate = &now
				amountSum = amountSum.Add(item.Amount)
			}

			if _, err := tx.Orders.Save(order); err != nil {
				return err
			}
			if _, err := tx.OrderItems.SaveAll(items); err != nil {
				return err
			}

			customer, err := tx.Customers.GetByID(order.CustomerID)
			if err != nil {
				return err
			}
			customer.Balance = customer.Balance.Add(amountSum)
			customer.DeliveryCount++
			if _, err := tx.Customers.Save(customer); err != nil {
				return err
			}
			delivered = append(delivered, order.ID)
		}
		if err := tx.Commit(); err != nil {
			return err
		}

		res = &DeliveryResponse{
			WarehouseID:     warehouse.ID,
			CarrierID:       carrier.ID,
			DeliveredOrders: delivered,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
