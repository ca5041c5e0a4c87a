package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/wss/backend/internal/application/transaction"
)

// TransactionHandler exposes the five business transactions over HTTP
type TransactionHandler struct {
	BaseHandler
	newOrder    *transaction.NewOrderService
	payment     *transaction.PaymentService
	orderStatus *transaction.OrderStatusService
	delivery    *transaction.DeliveryService
	stockLevel  *transaction.StockLevelService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(
	newOrder *transaction.NewOrderService,
	payment *transaction.PaymentService,
	orderStatus *transaction.OrderStatusService,
	delivery *transaction.DeliveryService,
	stockLevel *transaction.StockLevelService,
) *TransactionHandler {
	return &TransactionHandler{
		newOrder:    newOrder,
		payment:     payment,
		orderStatus: orderStatus,
		delivery:    delivery,
		stockLevel:  stockLevel,
	}
}

// NewOrder handles POST /transactions/new-orders
func (h *TransactionHandler) NewOrder(c *gin.Context) {
	var req transaction.NewOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}
	res, err := h.newOrder.Process(c.Request.Context(), &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, res)
}

// Payment handles POST /transactions/payments
func (h *TransactionHandler) Payment(c *gin.Context) {
	var req transaction.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}
	res, err := h.payment.Process(c.Request.Context(), &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, res)
}

// OrderStatus handles GET /transactions/order-status
func (h *TransactionHandler) OrderStatus(c *gin.Context) {
	var req transaction.OrderStatusRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}
	res, err := h.orderStatus.Process(c.Request.Context(), &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, res)
}

// Delivery handles POST /transactions/deliveries
func (h *TransactionHandler) Delivery(c *gin.Context) {
	var req transaction.DeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}
	res, err := h.delivery.Process(c.Request.Context(), &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, res)
}

// StockLevel handles GET /transactions/stock-levels
func (h *TransactionHandler) StockLevel(c *gin.Context) {
	var req transaction.StockLevelRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}
	res, err := h.stockLevel.Process(c.Request.Context(), &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, res)
}
