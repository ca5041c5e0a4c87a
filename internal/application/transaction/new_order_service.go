package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wss/backend/internal/domain/model"
	"github.com/wss/backend/internal/domain/shared"
	"github.com/wss/backend/internal/infrastructure/config"
	"github.com/wss/backend/internal/infrastructure/persistence"
)

// NewOrderService processes the new-order transaction: it enters an order
// with its line items, deducting (or replenishing) the supplying stocks. It
// touches the most stores of all five transactions and is the primary source
// of store contention.
type NewOrderService struct {
	stores *persistence.Stores
	runner *persistence.TransactionRunner
	stock  config.StockConfig
}

// NewNewOrderService creates a new NewOrderService
func NewNewOrderService(stores *persistence.Stores, runner *persistence.TransactionRunner, stock config.StockConfig) *NewOrderService {
	return &NewOrderService{
		stores: stores,
		runner: runner,
		stock:  stock,
	}
}

// Process executes the new-order transaction as one retryable unit of work
func (s *NewOrderService) Process(ctx context.Context, req *NewOrderRequest) (*NewOrderResponse, error) {
	var res *NewOrderResponse
	err := s.runner.Commit(ctx, NameNewOrder, func() error {
		res = nil
		tx := s.stores.Begin()

		warehouse, err := tx.Warehouses.GetByID(req.WarehouseID)
		if err != nil {
			return err
		}
		district, err := tx.Districts.GetByID(req.DistrictID)
		if err != nil {
			return err
		}
		if district.WarehouseID != warehouse.ID {
			return shared.NewDomainError(shared.CodeInvalidArgument,
				fmt.Sprintf("District %s does not belong to warehouse %s", district.ID, warehouse.ID))
		}
		customer, err := tx.Customers.GetByID(req.CustomerID)
		if err != nil {
			return err
		}
		if customer.DistrictID != district.ID {
			return shared.NewDomainError(shared.CodeInvalidArgument,
				fmt.Sprintf("Customer %s does not belong to district %s", customer.ID, district.ID))
		}

		orderNumber := district.NextOrderNumber
		district.NextOrderNumber++
		if _, err := tx.Districts.Save(district); err != nil {
			return err
		}

		entryDate := time.Now()
		allLocal := true
		preTaxTotal := decimal.Zero
		items := make([]*model.OrderItem, 0, len(req.Items))
		resItems := make([]NewOrderResponseItem, 0, len(req.Items))

		for i, line := range req.Items {
			product, err := tx.Products.GetByID(line.ProductID)
			if err != nil {
				return err
			}
			// A repeated line for the same product sees the stock as already
			// deducted by the earlier line
			stock, err := findStock(tx, line.ProductID, line.SupplyingWarehouseID)
			if err != nil {
				return err
			}

			// Deduct the requested quantity, replenishing when the deduction
			// would leave less than the reorder threshold on hand
			if stock.Quantity-line.Quantity >= s.stock.ReorderThreshold {
				stock.Quantity -= line.Quantity
			} else {
				stock.Quantity = stock.Quantity - line.Quantity + s.stock.ReplenishQuantity
			}
			stock.OrderCount++
			if line.SupplyingWarehouseID != warehouse.ID {
				stock.RemoteCount++
				allLocal = false
			}
			if _, err := tx.Stocks.Save(stock); err != nil {
				return err
			}

			amount := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
			preTaxTotal = preTaxTotal.Add(amount)

			items = append(items, &model.OrderItem{
				ProductID:            product.ID,
				SupplyingWarehouseID: line.SupplyingWarehouseID,
				Number:               i + 1,
				Quantity:             line.Quantity,
				Amount:               amount,
			})
			resItems = append(resItems, NewOrderResponseItem{
				ProductID:            product.ID,
				ProductName:          product.Name,
				SupplyingWarehouseID: line.SupplyingWarehouseID,
				Quantity:             line.Quantity,
				StockQuantity:        stock.Quantity,
				Price:                product.Price,
				Amount:               amount,
			})
		}

		order := &model.Order{
			DistrictID: district.ID,
			CustomerID: customer.ID,
			Number:     orderNumber,
			EntryDate:  entryDate,
			ItemCount:  len(items),
			AllLocal:   allLocal,
		}
		if _, err := tx.Orders.Save(order); err != nil {
			return err
		}
		for _, item := range items {
			item.OrderID = order.ID
		}
		if _, err := tx.OrderItems.SaveAll(items); err != nil {
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}

		one := decimal.NewFromInt(1)
		total := preTaxTotal.
			Mul(one.Sub(customer.Discount)).
			Mul(one.Add(warehouse.SalesTax).Add(district.SalesTax)).
			RoundDown(2)

		res = &NewOrderResponse{
			WarehouseID:       warehouse.ID,
			DistrictID:        district.ID,
			CustomerID:        customer.ID,
			OrderID:           order.ID,
			OrderTimestamp:    order.EntryDate,
			CustomerLastName:  customer.LastName,
			CustomerCredit:    customer.Credit,
			CustomerDiscount:  customer.Discount,
			WarehouseSalesTax: warehouse.SalesTax,
			DistrictSalesTax:  district.SalesTax,
			TotalAmount:       total,
			OrderItems:        resItems,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// findStock looks up the stock record unique to the given product and
// supplying warehouse
func findStock(tx *persistence.Tx, productID, warehouseID string) (*model.Stock, error) {
	matches := tx.Stocks.Filter(func(st *model.Stock) bool {
		return st.ProductID == productID && st.WarehouseID == warehouseID
	})
	if len(matches) == 0 {
		return nil, shared.NewDomainError(shared.CodeNotFound,
			fmt.Sprintf("Unable to find stock of product %s in warehouse %s", productID, warehouseID))
	}
	return matches[0], nil
}
