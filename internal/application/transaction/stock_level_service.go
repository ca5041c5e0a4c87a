package transaction

import (
	"context"
	"fmt"
	"sort"

	"github.com/wss/backend/internal/domain/model"
	"github.com/wss/backend/internal/domain/shared"
	"github.com/wss/backend/internal/infrastructure/persistence"
)

// recentOrderWindow is the number of most recently entered orders the
// stock-level transaction inspects
const recentOrderWindow = 20

// StockLevelService processes the stock-level transaction: it counts how
// many distinct products of a district's recent orders are low on stock in
// the district's warehouse. Purely a read-only aggregation.
type StockLevelService struct {
	stores *persistence.Stores
	runner *persistence.TransactionRunner
}

// NewStockLevelService creates a new StockLevelService
func NewStockLevelService(stores *persistence.Stores, runner *persistence.TransactionRunner) *StockLevelService {
	return &StockLevelService{
		stores: stores,
		runner: runner,
	}
}

// Process executes the stock-level transaction
func (s *StockLevelService) Process(ctx context.Context, req *StockLevelRequest) (*StockLevelResponse, error) {
	var res *StockLevelResponse
	err := s.runner.Commit(ctx, NameStockLevel, func() error {
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

		orders := tx.Orders.Filter(func(o *model.Order) bool {
			return o.DistrictID == district.ID
		})
		// Most recent first; identical entry dates break towards the greater id
		sort.Slice(orders, func(a, b int) bool {
			if !orders[a].EntryDate.Equal(orders[b].EntryDate) {
				return orders[a].EntryDate.After(orders[b].EntryDate)
			}
			return orders[a].ID > orders[b].ID
		})
		if len(orders) > recentOrderWindow {
			orders = orders[:recentOrderWindow]
		}

		recentOrders := make(map[string]bool, len(orders))
		for _, o := range orders {
			recentOrders[o.ID] = true
		}
		productIDs := make(map[string]bool)
		for _, item := range tx.OrderItems.Filter(func(i *model.OrderItem) bool {
			return recentOrders[i.OrderID]
		}) {
			productIDs[item.ProductID] = true
		}

		lowStocks := tx.Stocks.Filter(func(st *model.Stock) bool {
			return st.WarehouseID == warehouse.ID &&
				productIDs[st.ProductID] &&
				st.Quantity < req.StockThreshold
		})

		res = &StockLevelResponse{
			WarehouseID:    warehouse.ID,
			DistrictID:     district.ID,
			StockThreshold: req.StockThreshold,
			LowStockCount:  len(lowStocks),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
