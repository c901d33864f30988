package web

import (
	"strconv"
	"strings"
	"time"

	"github.com/shanavasvb/payment-app-frontend/internal/domain/customer"
	"github.com/shanavasvb/payment-app-frontend/internal/domain/payment"
	"github.com/shanavasvb/payment-app-frontend/internal/notify"
	"github.com/shanavasvb/payment-app-frontend/internal/pkg/money"
)

const (
	issueDateLayout   = "02/01/2006"
	paymentDateLayout = "02 Jan 2006, 03:04 PM"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999-07",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

type page struct {
	Title  string
	Active string
	Alerts []notify.Alert
}

type customerView struct {
	Name          string
	AccountNumber string
	IssueDate     string
	InterestRate  string
	Tenure        string
	LoanAmount    string
	EMIDue        string
}

type formView struct {
	AccountNumber string
	PaymentAmount string
	Processing    bool
	Selected      *customerView
}

type collectionPage struct {
	page
	Form       formView
	Banner     string
	ShowLoader bool
	Refreshing bool
	Currency   string
	Customers  []customerView
}

type paymentView struct {
	ID            int64
	CustomerName  string
	AccountNumber string
	Status        string
	Completed     bool
	Amount        string
	Date          string
}

type historyPage struct {
	page
	ShowLoader bool
	Empty      bool
	Refreshing bool
	Count      int
	Total      string
	Payments   []paymentView
}

type formatter struct {
	currency string
	location *time.Location
}

func (f formatter) customer(c customer.Customer) customerView {
	return customerView{
		Name:          c.CustomerName,
		AccountNumber: c.AccountNumber,
		IssueDate:     f.date(c.IssueDate, issueDateLayout),
		InterestRate:  c.InterestRate.String() + "%",
		Tenure:        strconv.Itoa(c.Tenure) + " months",
		LoanAmount:    money.Format(f.currency, c.TotalLoanAmount),
		EMIDue:        money.Format(f.currency, c.EMIDue),
	}
}

func (f formatter) payment(p payment.Payment) paymentView {
	return paymentView{
		ID:            p.ID,
		CustomerName:  p.CustomerName,
		AccountNumber: p.AccountNumber,
		Status:        strings.ToUpper(p.Status),
		Completed:     p.Status == payment.StatusCompleted,
		Amount:        money.Format(f.currency, p.PaymentAmount),
		Date:          f.date(p.PaymentDate, paymentDateLayout),
	}
}

// date renders a backend timestamp in layout, or returns it untouched when it
// is in none of the known formats.
func (f formatter) date(raw, layout string) string {
	for _, l := range timestampLayouts {
		if t, err := time.Parse(l, raw); err == nil {
			if l == "2006-01-02" {
				return t.Format(layout)
			}
			return t.In(f.location).Format(layout)
		}
	}
	return raw
}

func (f formatter) collectionPage(state customer.State, alerts []notify.Alert) collectionPage {
	p := collectionPage{
		page:       page{Title: "Payment Collection", Active: "collection", Alerts: alerts},
		Banner:     state.Banner,
		ShowLoader: state.Loading && len(state.Customers) == 0,
		Refreshing: state.Refreshing,
		Currency:   f.currency,
		Form: formView{
			AccountNumber: state.AccountNumberInput,
			PaymentAmount: state.PaymentAmountInput,
			Processing:    state.Processing,
		},
		Customers: make([]customerView, 0, len(state.Customers)),
	}
	if state.Selected != nil {
		selected := f.customer(*state.Selected)
		p.Form.Selected = &selected
	}
	for _, c := range state.Customers {
		p.Customers = append(p.Customers, f.customer(c))
	}
	return p
}

func (f formatter) historyPage(state payment.HistoryState, alerts []notify.Alert) historyPage {
	stats := state.Stats()
	p := historyPage{
		page:       page{Title: "Payment History", Active: "history", Alerts: alerts},
		ShowLoader: state.Loading && len(state.Payments) == 0,
		Refreshing: state.Refreshing,
		Count:      stats.Count,
		Total:      money.Format(f.currency, stats.Total),
		Payments:   make([]paymentView, 0, len(state.Payments)),
	}
	p.Empty = !p.ShowLoader && len(state.Payments) == 0
	for _, pay := range state.Payments {
		p.Payments = append(p.Payments, f.payment(pay))
	}
	return p
}
