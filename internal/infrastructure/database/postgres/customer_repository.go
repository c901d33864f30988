package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shanavasvb/payment-app-frontend/internal/domain/customer"
	"github.com/shanavasvb/payment-app-frontend/internal/domain/ledger"
	"github.com/shanavasvb/payment-app-frontend/internal/pkg/apperrors"
	"github.com/shopspring/decimal"
)

// Numeric columns are read as text so decimal values never pass through float64.
const listCustomersSQL = `
	SELECT account_number, customer_name, issue_date::text, interest_rate::text,
		tenure, total_loan_amount::text, emi_due::text
	FROM customers
	ORDER BY account_number`

const findAccountForUpdateSQL = `
	SELECT account_number, customer_name, emi_due::text
	FROM customers
	WHERE account_number = $1
	FOR UPDATE`

const updateEMIDueSQL = `
	UPDATE customers
	SET emi_due = $2::numeric,
		updated_at = NOW()
	WHERE account_number = $1`

func (r *LedgerRepository) ListCustomers(ctx context.Context) (customers []customer.Customer, err error) {
	logCtx := r.logger.With(slog.String("operation", "ListCustomers"))
	start := time.Now()
	defer func() { observeQuery("list_customers", start, err) }()

	rows, err := r.db.Query(ctx, listCustomersSQL)
	if err != nil {
		return nil, translateDBError(err, logCtx)
	}
	defer rows.Close()

	customers = make([]customer.Customer, 0)
	for rows.Next() {
		var c customer.Customer
		var interestRate, totalLoanAmount, emiDue string
		if err = rows.Scan(&c.AccountNumber, &c.CustomerName, &c.IssueDate, &interestRate,
			&c.Tenure, &totalLoanAmount, &emiDue); err != nil {
			return nil, translateDBError(err, logCtx)
		}
		if c.InterestRate, err = parseNumeric("interest_rate", interestRate); err != nil {
			return nil, err
		}
		if c.TotalLoanAmount, err = parseNumeric("total_loan_amount", totalLoanAmount); err != nil {
			return nil, err
		}
		if c.EMIDue, err = parseNumeric("emi_due", emiDue); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	if err = rows.Err(); err != nil {
		return nil, translateDBError(err, logCtx)
	}

	logCtx.DebugContext(ctx, "Listed customers", slog.Int("count", len(customers)))
	return customers, nil
}

// FindAccountForUpdate locks the customer row for the rest of tx.
func (r *LedgerRepository) FindAccountForUpdate(ctx context.Context, tx pgx.Tx, accountNumber string) (account *ledger.Account, err error) {
	logCtx := r.logger.With(slog.String("operation", "FindAccountForUpdate"), slog.String("account_number", accountNumber))
	start := time.Now()
	defer func() { observeQuery("find_account_for_update", start, err) }()

	var (
		found  ledger.Account
		emiDue string
	)
	err = tx.QueryRow(ctx, findAccountForUpdateSQL, accountNumber).Scan(&found.AccountNumber, &found.CustomerName, &emiDue)
	if err != nil {
		return nil, translateDBError(err, logCtx)
	}
	if found.EMIDue, err = parseNumeric("emi_due", emiDue); err != nil {
		return nil, err
	}
	return &found, nil
}

func (r *LedgerRepository) UpdateEMIDueInTx(ctx context.Context, tx pgx.Tx, accountNumber string, emiDue decimal.Decimal) (err error) {
	logCtx := r.logger.With(slog.String("operation", "UpdateEMIDueInTx"), slog.String("account_number", accountNumber))
	start := time.Now()
	defer func() { observeQuery("update_emi_due", start, err) }()

	tag, err := tx.Exec(ctx, updateEMIDueSQL, accountNumber, emiDue.String())
	if err != nil {
		return translateDBError(err, logCtx)
	}
	if tag.RowsAffected() == 0 {
		logCtx.WarnContext(ctx, "No customer row updated")
		return fmt.Errorf("%w: customer with account number %s", apperrors.ErrNotFound, accountNumber)
	}
	return nil
}

func parseNumeric(column, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: column %s holds %q: %w", apperrors.ErrDatabase, column, value, err)
	}
	return d, nil
}
