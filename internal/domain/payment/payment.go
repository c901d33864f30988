package payment

import "github.com/shopspring/decimal"

const StatusCompleted = "completed"

// Payment is a read-only entry of the payment history snapshot.
type Payment struct {
	ID            int64           `json:"id"`
	PaymentDate   string          `json:"payment_date"`
	PaymentAmount decimal.Decimal `json:"payment_amount"`
	Status        string          `json:"status"`
	CustomerName  string          `json:"customer_name"`
	AccountNumber string          `json:"account_number"`
}

// Receipt is the backend's answer to a successful payment submission.
type Receipt struct {
	PaymentID     int64           `json:"payment_id"`
	AccountNumber string          `json:"account_number"`
	PaymentAmount decimal.Decimal `json:"payment_amount"`
	RemainingDue  decimal.Decimal `json:"remaining_due"`
}

type Stats struct {
	Count int
	Total decimal.Decimal
}

// TotalFixed renders the total with two decimal places.
func (s Stats) TotalFixed() string {
	return s.Total.StringFixed(2)
}

func ComputeStats(payments []Payment) Stats {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.PaymentAmount)
	}
	return Stats{Count: len(payments), Total: total}
}
