package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wss/backend/internal/domain/model"
	"github.com/wss/backend/internal/infrastructure/config"
	"github.com/wss/backend/internal/infrastructure/persistence"
)

// PaymentService processes the payment transaction: it books an amount
// against warehouse, district and customer balances and records a payment.
type PaymentService struct {
	stores   *persistence.Stores
	runner   *persistence.TransactionRunner
	customer config.CustomerConfig
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(stores *persistence.Stores, runner *persistence.TransactionRunner, customer config.CustomerConfig) *PaymentService {
	return &PaymentService{
		stores:   stores,
		runner:   runner,
		customer: customer,
	}
}

// Process executes the payment transaction as one retryable unit of work
func (s *PaymentService) Process(ctx context.Context, req *PaymentRequest) (*PaymentResponse, error) {
	amount := decimal.NewFromFloat(req.Amount)

	var res *PaymentResponse
	err := s.runner.Commit(ctx, NamePayment, func() error {
		res = nil
		tx := s.stores.Begin()

		customer, err := resolveCustomer(tx.Customers, req.CustomerID, req.CustomerEmail)
		if err != nil {
			return err
		}
		warehouse, err := tx.Warehouses.GetByID(req.WarehouseID)
		if err != nil {
			return err
		}
		district, err := tx.Districts.GetByID(req.DistrictID)
		if err != nil {
			return err
		}

		warehouse.YearToDateBalance = warehouse.YearToDateBalance.Add(amount)
		if _, err := tx.Warehouses.Save(warehouse); err != nil {
			return err
		}
		district.YearToDateBalance = district.YearToDateBalance.Add(amount)
		if _, err := tx.Districts.Save(district); err != nil {
			return err
		}

		customer.Balance = customer.Balance.Sub(amount)
		customer.YearToDatePayment = customer.YearToDatePayment.Add(amount)
		customer.PaymentCount++
		if customer.HasBadCredit() {
			note := fmt.Sprintf("%s %s %s %s | ",
				customer.ID, district.ID, warehouse.ID, amount.StringFixed(2))
			customer.PrependData(note, s.customer.DataMaxLength)
		}
		if _, err := tx.Customers.Save(customer); err != nil {
			return err
		}

		payment := &model.Payment{
			CustomerID: customer.ID,
			DistrictID: district.ID,
			Date:       time.Now(),
			Amount:     amount,
			Data:       warehouse.Name + "    " + district.Name,
		}
		if _, err := tx.Payments.Save(payment); err != nil {
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}

		res = &PaymentResponse{
			WarehouseID:         warehouse.ID,
			DistrictID:          district.ID,
			CustomerID:          customer.ID,
			PaymentID:           payment.ID,
			Amount:              amount,
			CustomerCredit:      customer.Credit,
			CustomerCreditLimit: customer.CreditLimit,
			CustomerDiscount:    customer.Discount,
			CustomerBalance:     customer.Balance,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
