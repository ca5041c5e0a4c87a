package transaction

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/wss/backend/internal/domain/model"
	"github.com/wss/backend/internal/infrastructure/config"
	"github.com/wss/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

// fixture wires empty in-memory stores with a runner and seeds the minimal
// world most transaction tests start from: one warehouse with one district
// and one customer.
type fixture struct {
	stores    *persistence.Stores
	runner    *persistence.TransactionRunner
	warehouse *model.Warehouse
	district  *model.District
	customer  *model.Customer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		stores: persistence.NewMemoryStores(),
		runner: persistence.NewTransactionRunner(5, time.Millisecond, zap.NewNop(), nil),
	}

	var err error
	f.warehouse, err = f.stores.Warehouses.Save(&model.Warehouse{
		Name:     "North Warehouse",
		SalesTax: decimal.RequireFromString("0.10"),
	})
	require.NoError(t, err)
	f.district = f.seedDistrict(t, f.warehouse.ID, "0.05")
	f.customer = f.seedCustomer(t, f.district.ID, "alice@example.com", "0.10", model.CreditGood)
	return f
}

func (f *fixture) seedDistrict(t *testing.T, warehouseID, salesTax string) *model.District {
	t.Helper()
	district, err := f.stores.Districts.Save(&model.District{
		WarehouseID:     warehouseID,
		Name:            "District One",
		SalesTax:        decimal.RequireFromString(salesTax),
		NextOrderNumber: 1,
	})
	require.NoError(t, err)
	return district
}

func (f *fixture) seedCustomer(t *testing.T, districtID, email, discount string, credit model.Credit) *model.Customer {
	t.Helper()
	customer, err := f.stores.Customers.Save(&model.Customer{
		DistrictID:  districtID,
		FirstName:   "Alice",
		MiddleName:  "Q",
		LastName:    "Example",
		Email:       email,
		Since:       time.Now(),
		Credit:      credit,
		CreditLimit: decimal.RequireFromString("5000"),
		Discount:    decimal.RequireFromString(discount),
	})
	require.NoError(t, err)
	return customer
}

func (f *fixture) seedProduct(t *testing.T, name, price string) *model.Product {
	t.Helper()
	product, err := f.stores.Products.Save(&model.Product{
		Name:  name,
		Price: decimal.RequireFromString(price),
	})
	require.NoError(t, err)
	return product
}

func (f *fixture) seedStock(t *testing.T, productID, warehouseID string, quantity int) *model.Stock {
	t.Helper()
	stock, err := f.stores.Stocks.Save(&model.Stock{
		ProductID:   productID,
		WarehouseID: warehouseID,
		Quantity:    quantity,
	})
	require.NoError(t, err)
	return stock
}

func (f *fixture) seedCarrier(t *testing.T, name string) *model.Carrier {
	t.Helper()
	carrier, err := f.stores.Carriers.Save(&model.Carrier{Name: name})
	require.NoError(t, err)
	return carrier
}

func (f *fixture) seedOrder(t *testing.T, districtID, customerID string, number int, entryDate time.Time, fulfilled bool) *model.Order {
	t.Helper()
	order, err := f.stores.Orders.Save(&model.Order{
		DistrictID: districtID,
		CustomerID: customerID,
		Number:     number,
		EntryDate:  entryDate,
		Fulfilled:  fulfilled,
	})
	require.NoError(t, err)
	return order
}

func (f *fixture) seedOrderItem(t *testing.T, orderID, productID, warehouseID string, number, quantity int, amount string) *model.OrderItem {
	t.Helper()
	item, err := f.stores.OrderItems.Save(&model.OrderItem{
		OrderID:              orderID,
		ProductID:            productID,
		SupplyingWarehouseID: warehouseID,
		Number:               number,
		Quantity:             quantity,
		Amount:               decimal.RequireFromString(amount),
	})
	require.NoError(t, err)
	return item
}

func (f *fixture) newOrderService() *NewOrderService {
	return NewNewOrderService(f.stores, f.runner, config.StockConfig{
		ReorderThreshold:  10,
		ReplenishQuantity: 91,
	})
}

func (f *fixture) paymentService() *PaymentService {
	return NewPaymentService(f.stores, f.runner, config.CustomerConfig{DataMaxLength: 500})
}
