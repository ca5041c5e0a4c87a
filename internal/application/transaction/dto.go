package transaction

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wss/backend/internal/domain/model"
)

// NewOrderRequestItem is one requested order line
type NewOrderRequestItem struct {
	ProductID            string `json:"product_id" binding:"required"`
	SupplyingWarehouseID string `json:"supplying_warehouse_id" binding:"required"`
	Quantity             int    `json:"quantity" binding:"required,gt=0"`
}

// NewOrderRequest is the input of the new-order transaction
type NewOrderRequest struct {
	WarehouseID string                `json:"warehouse_id" binding:"required"`
	DistrictID  string                `json:"district_id" binding:"required"`
	CustomerID  string                `json:"customer_id" binding:"required"`
	Items       []NewOrderRequestItem `json:"items" binding:"required,min=1,dive"`
}

// NewOrderResponseItem is the per-line result of a processed new order
type NewOrderResponseItem struct {
	ProductID            string          `json:"product_id"`
	ProductName          string          `json:"product_name"`
	SupplyingWarehouseID string          `json:"supplying_warehouse_id"`
	Quantity             int             `json:"quantity"`
	StockQuantity        int             `json:"stock_quantity"`
	Price                decimal.Decimal `json:"price"`
	Amount               decimal.Decimal `json:"amount"`
}

// NewOrderResponse is the output of the new-order transaction
type NewOrderResponse struct {
	WarehouseID       string                 `json:"warehouse_id"`
	DistrictID        string                 `json:"district_id"`
	CustomerID        string                 `json:"customer_id"`
	OrderID           string                 `json:"order_id"`
	OrderTimestamp    time.Time              `json:"order_timestamp"`
	CustomerLastName  string                 `json:"customer_last_name"`
	CustomerCredit    model.Credit           `json:"customer_credit"`
	CustomerDiscount  decimal.Decimal        `json:"customer_discount"`
	WarehouseSalesTax decimal.Decimal        `json:"warehouse_sales_tax"`
	DistrictSalesTax  decimal.Decimal        `json:"district_sales_tax"`
	TotalAmount       decimal.Decimal        `json:"total_amount"`
	OrderItems        []NewOrderResponseItem `json:"order_items"`
}

// PaymentRequest is the input of the payment transaction. Exactly one of
// CustomerID and CustomerEmail must be set.
type PaymentRequest struct {
	WarehouseID   string  `json:"warehouse_id" binding:"required"`
	DistrictID    string  `json:"district_id" binding:"required"`
	CustomerID    string  `json:"customer_id"`
	CustomerEmail string  `json:"customer_email" binding:"omitempty,email"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
}

// PaymentResponse is the output of the payment transaction
type PaymentResponse struct {
	WarehouseID         string          `json:"warehouse_id"`
	DistrictID          string          `json:"district_id"`
	CustomerID          string          `json:"customer_id"`
	PaymentID           string          `json:"payment_id"`
	Amount              decimal.Decimal `json:"amount"`
	CustomerCredit      model.Credit    `json:"customer_credit"`
	CustomerCreditLimit decimal.Decimal `json:"customer_credit_limit"`
	CustomerDiscount    decimal.Decimal `json:"customer_discount"`
	CustomerBalance     decimal.Decimal `json:"customer_balance"`
}

// OrderStatusRequest is the input of the order-status transaction. Exactly
// one of CustomerID and CustomerEmail must be set.
type OrderStatusRequest struct {
	WarehouseID   string `json:"warehouse_id" form:"warehouse_id" binding:"required"`
	DistrictID    string `json:"district_id" form:"district_id" binding:"required"`
	CustomerID    string `json:"customer_id" form:"customer_id"`
	CustomerEmail string `json:"customer_email" form:"customer_email" binding:"omitempty,email"`
}

// OrderItemStatus is the per-line result of the order-status transaction
type OrderItemStatus struct {
	ProductID            string          `json:"product_id"`
	SupplyingWarehouseID string          `json:"supplying_warehouse_id"`
	Quantity             int             `json:"quantity"`
	Amount               decimal.Decimal `json:"amount"`
	DeliveryDate         *time.Time      `json:"delivery_date,omitempty"`
}

// OrderStatusResponse is the output of the order-status transaction
type OrderStatusResponse struct {
	WarehouseID        string            `json:"warehouse_id"`
	DistrictID         string            `json:"district_id"`
	CustomerID         string            `json:"customer_id"`
	CustomerFirstName  string            `json:"customer_first_name"`
	CustomerMiddleName string            `json:"customer_middle_name"`
	CustomerLastName   string            `json:"customer_last_name"`
	CustomerBalance    decimal.Decimal   `json:"customer_balance"`
	OrderID            string            `json:"order_id"`
	OrderNumber        int               `json:"order_number"`
	OrderEntryDate     time.Time         `json:"order_entry_date"`
	OrderCarrierID     string            `json:"order_carrier_id,omitempty"`
	OrderFulfilled     bool              `json:"order_fulfilled"`
	ItemStatus         []OrderItemStatus `json:"item_status"`
}

// DeliveryRequest is the input of the delivery transaction
type DeliveryRequest struct {
	WarehouseID string `json:"warehouse_id" binding:"required"`
	CarrierID   string `json:"carrier_id" binding:"required"`
}

// DeliveryResponse is the output of the delivery transaction
type DeliveryResponse struct {
	WarehouseID     string   `json:"warehouse_id"`
	CarrierID       string   `json:"carrier_id"`
	DeliveredOrders []string `json:"delivered_orders"`
}

// StockLevelRequest is the input of the stock-level transaction
type StockLevelRequest struct {
	WarehouseID    string `json:"warehouse_id" form:"warehouse_id" binding:"required"`
	DistrictID     string `json:"district_id" form:"district_id" binding:"required"`
	StockThreshold int    `json:"stock_threshold" form:"stock_threshold" binding:"required,gt=0"`
}

// StockLevelResponse is the output of the stock-level transaction
type StockLevelResponse struct {
	WarehouseID    string `json:"warehouse_id"`
	DistrictID     string `json:"district_id"`
	StockThreshold int    `json:"stock_threshold"`
	LowStockCount  int    `json:"low_stock_count"`
}
