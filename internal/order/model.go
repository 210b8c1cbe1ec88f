package order

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCash    PaymentMethod = "cash"
	PaymentEWallet PaymentMethod = "e-wallet"
)

// Label returns the display name printed on the receipt.
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentCash:
		return "Cash"
	case PaymentEWallet:
		return "E-Wallet"
	}
	return string(m)
}

type Transaction struct {
	Cashier       string        `json:"cashier"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	PaidAmount    int64         `json:"paid_amount"`
	// Change is only meaningful for cash payments.
	Change int64  `json:"change"`
	PaidAt string `json:"paid_at"`
}

type Item struct {
	Name string `json:"name"`
	// Amounts are whole Rupiah (no fractional unit).
	Price    int64 `json:"price"`
	Quantity int   `json:"quantity"`
}

// LineTotal is unit price times quantity.
func (it Item) LineTotal() int64 {
	return decimal.NewFromInt(it.Price).
		Mul(decimal.NewFromInt(int64(it.Quantity))).
		IntPart()
}

// Order is the receipt payload.
// swagger:model Order
type Order struct {
	OrderID     int64       `json:"order_id"`
	Subtotal    int64       `json:"subtotal"`
	Total       int64       `json:"total"`
	Transaction Transaction `json:"transaction"`
	Items       []Item      `json:"items"`
}

// HandlingFee is the difference between total and subtotal. May be zero.
func (o Order) HandlingFee() int64 {
	return decimal.NewFromInt(o.Total).
		Sub(decimal.NewFromInt(o.Subtotal)).
		IntPart()
}

// Number is the minimal ticket payload carrying no financial data.
// swagger:model OrderNumber
type Number struct {
	OrderID int64 `json:"order_id"`
}

var ErrInvalidPayment = errors.New("invalid payment method")

// Validate checks the local invariants of the payload. Whether subtotal
// matches the sum of line totals is deliberately not checked; the caller
// owns that consistency.
func (o Order) Validate() error {
	switch o.Transaction.PaymentMethod {
	case PaymentCash, PaymentEWallet:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidPayment, o.Transaction.PaymentMethod)
	}
	if o.Transaction.Cashier == "" {
		return errors.New("cashier is required")
	}
	if o.Total < o.Subtotal {
		return errors.New("total must be >= subtotal")
	}
	for i, it := range o.Items {
		if it.Name == "" {
			return fmt.Errorf("items[%d]: name is required", i)
		}
		if it.Quantity < 1 {
			return fmt.Errorf("items[%d]: quantity must be positive", i)
		}
		if it.Price < 0 {
			return fmt.Errorf("items[%d]: price must be non-negative", i)
		}
	}
	return nil
}
