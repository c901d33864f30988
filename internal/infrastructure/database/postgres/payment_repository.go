package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shanavasvb/payment-app-frontend/internal/domain/payment"
	"github.com/shopspring/decimal"
)

const insertPaymentSQL = `
	INSERT INTO payments (account_number, payment_amount, status, payment_date)
	VALUES ($1, $2::numeric, $3, NOW())
	RETURNING id`

const listPaymentsSQL = `
	SELECT p.id, to_char(p.payment_date AT TIME ZONE 'UTC', 'YYYY-MM-DD"T"HH24:MI:SS"Z"'),
		p.payment_amount::text, p.status, c.customer_name, p.account_number
	FROM payments p
	JOIN customers c ON c.account_number = p.account_number
	ORDER BY p.payment_date DESC, p.id DESC`

func (r *LedgerRepository) InsertPaymentInTx(ctx context.Context, tx pgx.Tx, accountNumber string, amount decimal.Decimal, status string) (id int64, err error) {
	logCtx := r.logger.With(slog.String("operation", "InsertPaymentInTx"), slog.String("account_number", accountNumber))
	start := time.Now()
	defer func() { observeQuery("insert_payment", start, err) }()

	if err = tx.QueryRow(ctx, insertPaymentSQL, accountNumber, amount.String(), status).Scan(&id); err != nil {
		return 0, translateDBError(err, logCtx)
	}
	logCtx.InfoContext(ctx, "Payment inserted", slog.Int64("payment_id", id))
	return id, nil
}

// ListPayments returns all payments newest first with the customer name joined in.
func (r *LedgerRepository) ListPayments(ctx context.Context) (payments []payment.Payment, err error) {
	logCtx := r.logger.With(slog.String("operation", "ListPayments"))
	start := time.Now()
	defer func() { observeQuery("list_payments", start, err) }()

	rows, err := r.db.Query(ctx, listPaymentsSQL)
	if err != nil {
		return nil, translateDBError(err, logCtx)
	}
	defer rows.Close()

	payments = make([]payment.Payment, 0)
	for rows.Next() {
		var (
			p      payment.Payment
			amount string
		)
		if err = rows.Scan(&p.ID, &p.PaymentDate, &amount, &p.Status, &p.CustomerName, &p.AccountNumber); err != nil {
			return nil, translateDBError(err, logCtx)
		}
		if p.PaymentAmount, err = parseNumeric("payment_amount", amount); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	if err = rows.Err(); err != nil {
		return nil, translateDBError(err, logCtx)
	}
	return payments, nil
}
