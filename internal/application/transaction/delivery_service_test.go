package transaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wss/backend/internal/domain/model"
	"github.com/wss/backend/internal/domain/shared"
)

func TestDeliveryFulfillsOldestOrderPerDistrict(t *testing.T) {
	f := newFixture(t)
	carrier := f.seedCarrier(t, "Speedy")
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	oldest := f.seedOrder(t, f.district.ID, f.customer.ID, 1, base, false)
	newer := f.seedOrder(t, f.district.ID, f.customer.ID, 2, base.Add(time.Hour), false)
	f.seedOrderItem(t, oldest.ID, "p1", f.warehouse.ID, 1, 2, "50.00")
	f.seedOrderItem(t, oldest.ID, "p2", f.warehouse.ID, 2, 1, "10.00")

	service := NewDeliveryService(f.stores, f.runner)
	res, err := service.Process(context.Background(), &DeliveryRequest{
		WarehouseID: f.warehouse.ID,
		CarrierID:   carrier.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, []string{oldest.ID}, res.DeliveredOrders)

	delivered, err := f.stores.Orders.GetByID(oldest.ID)
	require.NoError(t, err)
	assert.True(t, delivered.Fulfilled)
	assert.Equal(t, carrier.ID, delivered.CarrierID)

	untouched, err := f.stores.Orders.GetByID(newer.ID)
	require.NoError(t, err)
	assert.False(t, untouched.Fulfilled)
	assert.Empty(t, untouched.CarrierID)

	for _, item := range f.stores.OrderItems.FindAll() {
		require.NotNil(t, item.DeliveryDate, "all delivered items must carry a delivery date")
	}

	customer, err := f.stores.Customers.GetByID(f.customer.ID)
	require.NoError(t, err)
	assert.True(t, customer.Balance.Equal(decimal.RequireFromString("60.00")),
		"the delivered order's amount sum must be credited, got %s", customer.Balance)
	assert.Equal(t, 1, customer.DeliveryCount)
}

func TestDeliverySweepsAllDistricts(t *testing.T) {
	f := newFixture(t)
	carrier := f.seedCarrier(t, "Speedy")
	secondDistrict := f.seedDistrict(t, f.warehouse.ID, "0.02")
	secondCustomer := f.seedCustomer(t, secondDistrict.ID, "bob@example.com", "0", "GOOD")

	first := f.seedOrder(t, f.district.ID, f.customer.ID, 1, time.Now(), false)
	second := f.seedOrder(t, secondDistrict.ID, secondCustomer.ID, 1, time.Now(), false)

	service := NewDeliveryService(f.stores, f.runner)
	res, err := service.Process(context.Background(), &DeliveryRequest{
		WarehouseID: f.warehouse.ID,
		CarrierID:   carrier.ID,
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{first.ID, second.ID}, res.DeliveredOrders)
}

func TestDeliverySkipsDistrictsWithoutUnfulfilledOrders(t *testing.T) {
	f := newFixture(t)
	carrier := f.seedCarrier(t, "Speedy")
	f.seedOrder(t, f.district.ID, f.customer.ID, 1, time.Now(), true)

	service := NewDeliveryService(f.stores, f.runner)
	res, err := service.Process(context.Background(), &DeliveryRequest{
		WarehouseID: f.warehouse.ID,
		CarrierID:   carrier.ID,
	})
	require.NoError(t, err)
	assert.Empty(t, res.DeliveredOrders, "a fulfilled order must not be delivered twice")
}

func TestDeliveryUnknownCarrier(t *testing.T) {
	f := newFixture(t)

	service := NewDeliveryService(f.stores, f.runner)
	_, err := service.Process(context.Background(), &DeliveryRequest{
		WarehouseID: f.warehouse.ID,
		CarrierID:   "no-such-carrier",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestDeliveryUnknownWarehouse(t *testing.T) {
	f := newFixture(t)
	carrier := f.seedCarrier(t, "Speedy")

	service := NewDeliveryService(f.stores, f.runner)
	_, err := service.Process(context.Background(), &DeliveryRequest{
		WarehouseID: "no-such-warehouse",
		CarrierID:   carrier.ID,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestDeliveryIgnoresOtherWarehouses(t *testing.T) {
	f := newFixture(t)
	carrier := f.seedCarrier(t, "Speedy")
	otherWarehouse, err := f.stores.Warehouses.Save(&model.Warehouse{Name: "South Warehouse"})
	require.NoError(t, err)
	otherDistrict := f.seedDistrict(t, otherWarehouse.ID, "0.02")
	otherCustomer := f.seedCustomer(t, otherDistrict.ID, "bob@example.com", "0", "GOOD")
	foreign := f.seedOrder(t, otherDistrict.ID, otherCustomer.ID, 1, time.Now(), false)

	service := NewDeliveryService(f.stores, f.runner)
	res, err := service.Process(context.Background(), &DeliveryRequest{
		WarehouseID: f.warehouse.ID,
		CarrierID:   carrier.ID,
	})
	require.NoError(t, err)
	assert.Empty(t, res.DeliveredOrders)

	untouched, err := f.stores.Orders.GetByID(foreign.ID)
	require.NoError(t, err)
	assert.False(t, untouched.Fulfilled)
}

func TestDeliveryRepeatedSweepsDrainTheBacklog(t *testing.T) {
	f := newFixture(t)
	carrier := f.seedCarrier(t, "Speedy")
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		f.seedOrder(t, f.district.ID, f.customer.ID, i+1, base.Add(time.Duration(i)*time.Hour), false)
	}

	service := NewDeliveryService(f.stores, f.runner)
	for i := 0; i < 3; i++ {
		res, err := service.Process(context.Background(), &DeliveryRequest{
			WarehouseID: f.warehouse.ID,
			CarrierID:   carrier.ID,
		})
		require.NoError(t, err)
		assert.Len(t, res.DeliveredOrders, 1)
	}

	res, err := service.Process(context.Background(), &DeliveryRequest{
		WarehouseID: f.warehouse.ID,
		CarrierID:   carrier.ID,
	})
	require.NoError(t, err)
	assert.Empty(t, res.DeliveredOrders)
}
