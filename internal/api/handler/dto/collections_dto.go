package dto

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shanavasvb/payment-app-frontend/internal/domain/customer"
	"github.com/shanavasvb/payment-app-frontend/internal/domain/payment"
	"github.com/shanavasvb/payment-app-frontend/internal/pkg/money"
	"github.com/shopspring/decimal"
)

type RecordPaymentRequest struct {
	AccountNumber string      `json:"account_number"`
	PaymentAmount json.Number `json:"payment_amount"`
}

// Amount parses the payment amount without passing through float64.
func (r *RecordPaymentRequest) Amount() (decimal.Decimal, error) {
	if strings.TrimSpace(r.PaymentAmount.String()) == "" {
		return decimal.Zero, fmt.Errorf("payment_amount is required")
	}
	amount, err := decimal.NewFromString(r.PaymentAmount.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("payment_amount %q is not a number", r.PaymentAmount)
	}
	return amount, nil
}

type CustomerResponse struct {
	AccountNumber   string      `json:"account_number"`
	CustomerName    string      `json:"customer_name"`
	IssueDate       string      `json:"issue_date"`
	InterestRate    json.Number `json:"interest_rate"`
	Tenure          int         `json:"tenure"`
	TotalLoanAmount json.Number `json:"total_loan_amount"`
	EMIDue          json.Number `json:"emi_due"`
}

func NewCustomerResponses(customers []customer.Customer) []CustomerResponse {
	resp := make([]CustomerResponse, 0, len(customers))
	for _, c := range customers {
		resp = append(resp, CustomerResponse{
			AccountNumber:   c.AccountNumber,
			CustomerName:    c.CustomerName,
			IssueDate:       c.IssueDate,
			InterestRate:    money.Number(c.InterestRate),
			Tenure:          c.Tenure,
			TotalLoanAmount: money.Number(c.TotalLoanAmount),
			EMIDue:          money.Number(c.EMIDue),
		})
	}
	return resp
}

type PaymentResponse struct {
	ID            int64       `json:"id"`
	PaymentDate   string      `json:"payment_date"`
	PaymentAmount json.Number `json:"payment_amount"`
	Status        string      `json:"status"`
	CustomerName  string      `json:"customer_name"`
	AccountNumber string      `json:"account_number"`
}

func NewPaymentResponses(payments []payment.Payment) []PaymentResponse {
	resp := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		resp = append(resp, PaymentResponse{
			ID:            p.ID,
			PaymentDate:   p.PaymentDate,
			PaymentAmount: money.Number(p.PaymentAmount),
			Status:        p.Status,
			CustomerName:  p.CustomerName,
			AccountNumber: p.AccountNumber,
		})
	}
	return resp
}

type ReceiptResponse struct {
	PaymentID     int64       `json:"payment_id"`
	AccountNumber string      `json:"account_number"`
	PaymentAmount json.Number `json:"payment_amount"`
	RemainingDue  json.Number `json:"remaining_due"`
}

func NewReceiptResponse(r *payment.Receipt) ReceiptResponse {
	return ReceiptResponse{
		PaymentID:     r.PaymentID,
		AccountNumber: r.AccountNumber,
		PaymentAmount: money.Number(r.PaymentAmount),
		RemainingDue:  money.Number(r.RemainingDue),
	}
}
