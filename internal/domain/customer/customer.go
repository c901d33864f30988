package customer

import "github.com/shopspring/decimal"

// Customer is a loan account as served by the collections backend. EMIDue is
// the only field ever changed client-side.
type Customer struct {
	AccountNumber   string          `json:"account_number"`
	CustomerName    string          `json:"customer_name"`
	IssueDate       string          `json:"issue_date"`
	InterestRate    decimal.Decimal `json:"interest_rate"`
	Tenure          int             `json:"tenure"`
	TotalLoanAmount decimal.Decimal `json:"total_loan_amount"`
	EMIDue          decimal.Decimal `json:"emi_due"`
}

// FindByAccountNumber returns the first customer whose account number equals
// accountNumber exactly. No trimming or case folding is applied.
func FindByAccountNumber(customers []Customer, accountNumber string) (Customer, bool) {
	for _, c := range customers {
		if c.AccountNumber == accountNumber {
			return c, true
		}
	}
	return Customer{}, false
}

// WithEMIDue returns a copy of customers where every record of accountNumber
// carries emiDue. The input slice is left untouched.
func WithEMIDue(customers []Customer, accountNumber string, emiDue decimal.Decimal) []Customer {
	patched := make([]Customer, len(customers))
	for i, c := range customers {
		if c.AccountNumber == accountNumber {
			c.EMIDue = emiDue
		}
		patched[i] = c
	}
	return patched
}
