package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shanavasvb/payment-app-frontend/internal/domain/customer"
	"github.com/shanavasvb/payment-app-frontend/internal/domain/payment"
	"github.com/shanavasvb/payment-app-frontend/internal/event"
	"github.com/shanavasvb/payment-app-frontend/internal/infrastructure/monitoring"
	"github.com/shanavasvb/payment-app-frontend/internal/pkg/apperrors"
	"github.com/shopspring/decimal"
)

type ledgerService struct {
	repo      Repository
	publisher EventPublisher
	now       func() time.Time
	logger    *slog.Logger
}

var _ Service = (*ledgerService)(nil)

func NewService(repo Repository, publisher EventPublisher, logger *slog.Logger) Service {
	if repo == nil {
		panic("ledger repository cannot be nil")
	}
	if publisher == nil {
		panic("event publisher cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &ledgerService{
		repo:      repo,
		publisher: publisher,
		now:       time.Now,
		logger:    logger.With("component", "LedgerService"),
	}
}

func (s *ledgerService) ListCustomers(ctx context.Context) ([]customer.Customer, error) {
	customers, err := s.repo.ListCustomers(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list customers", slog.Any("error", err))
		return nil, fmt.Errorf("%w: could not list customers: %w", apperrors.ErrInternalServer, err)
	}
	return customers, nil
}

// ListPayments returns every recorded payment, newest first.
func (s *ledgerService) ListPayments(ctx context.Context) ([]payment.Payment, error) {
	payments, err := s.repo.ListPayments(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list payments", slog.Any("error", err))
		return nil, fmt.Errorf("%w: could not list payments: %w", apperrors.ErrInternalServer, err)
	}
	return payments, nil
}

// RecordPayment applies a payment to the account's EMI due inside one
// transaction holding the customer row lock. The payment.received event is
// published after commit; a publish failure does not fail the payment.
func (s *ledgerService) RecordPayment(ctx context.Context, accountNumber string, amount decimal.Decimal) (receipt *payment.Receipt, err error) {
	logCtx := s.logger.With(slog.String("account_number", accountNumber), slog.String("amount", amount.String()))

	defer func() {
		monitoring.RecordPayment(paymentStatus(err), amount.InexactFloat64())
	}()

	if strings.TrimSpace(accountNumber) == "" {
		return nil, apperrors.NewValidationError("account_number", "Account number is required")
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be greater than zero", apperrors.ErrInvalidPaymentAmount)
	}

	logCtx.InfoContext(ctx, "Recording payment")
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to begin transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%w: could not begin transaction: %w", apperrors.ErrInternalServer, err)
	}

	committed := false
	defer func() {
		if p := recover(); p != nil {
			logCtx.ErrorContext(ctx, "Panic occurred during payment processing", slog.Any("panic", p))
			_ = s.repo.RollbackTx(ctx, tx)
			panic(p)
		}
		if !committed {
			_ = s.repo.RollbackTx(ctx, tx)
		}
	}()

	account, err := s.repo.FindAccountForUpdate(ctx, tx, accountNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logCtx.WarnContext(ctx, "Customer not found")
			return nil, fmt.Errorf("%w: customer with account number %s", apperrors.ErrNotFound, accountNumber)
		}
		logCtx.ErrorContext(ctx, "Failed to lock customer account", slog.Any("error", err))
		return nil, fmt.Errorf("%w: could not load customer account: %w", apperrors.ErrInternalServer, err)
	}

	if !account.EMIDue.IsPositive() {
		logCtx.WarnContext(ctx, "EMI already cleared")
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrEMICleared, accountNumber)
	}
	if amount.GreaterThan(account.EMIDue) {
		logCtx.WarnContext(ctx, "Payment exceeds EMI due", slog.String("emi_due", account.EMIDue.StringFixed(2)))
		return nil, fmt.Errorf("%w: amount %s, due %s", apperrors.ErrPaymentExceedsDue, amount.StringFixed(2), account.EMIDue.StringFixed(2))
	}

	paymentID, err := s.repo.InsertPaymentInTx(ctx, tx, accountNumber, amount, payment.StatusCompleted)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to insert payment", slog.Any("error", err))
		return nil, fmt.Errorf("%w: could not insert payment: %w", apperrors.ErrInternalServer, err)
	}

	remaining := account.EMIDue.Sub(amount)
	if err = s.repo.UpdateEMIDueInTx(ctx, tx, accountNumber, remaining); err != nil {
		logCtx.ErrorContext(ctx, "Failed to update EMI due", slog.Any("error", err))
		return nil, fmt.Errorf("%w: could not update emi due: %w", apperrors.ErrInternalServer, err)
	}

	if err = s.repo.CommitTx(ctx, tx); err != nil {
		logCtx.ErrorContext(ctx, "Failed to commit payment", slog.Any("error", err))
		return nil, fmt.Errorf("%w: could not commit payment: %w", apperrors.ErrInternalServer, err)
	}
	committed = true

	receipt = &payment.Receipt{
		PaymentID:     paymentID,
		AccountNumber: accountNumber,
		PaymentAmount: amount,
		RemainingDue:  remaining,
	}
	logCtx.InfoContext(ctx, "Payment recorded", slog.Int64("payment_id", paymentID), slog.String("remaining_due", remaining.StringFixed(2)))

	s.publishPaymentReceived(ctx, account, *receipt)
	return receipt, nil
}

func (s *ledgerService) publishPaymentReceived(ctx context.Context, account *Account, receipt payment.Receipt) {
	evt := event.PaymentReceivedEvent{
		PaymentID:     receipt.PaymentID,
		AccountNumber: receipt.AccountNumber,
		CustomerName:  account.CustomerName,
		PaymentAmount: receipt.PaymentAmount,
		RemainingDue:  receipt.RemainingDue,
		Timestamp:     s.now().UTC(),
	}
	if err := s.publisher.PublishPaymentReceived(ctx, evt); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish payment received event",
			slog.Int64("payment_id", receipt.PaymentID), slog.Any("error", err))
	}
}

func paymentStatus(err error) string {
	switch {
	case err == nil:
		return monitoring.StatusSuccess
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrInvalidPaymentAmount):
		return "rejected_invalid"
	case errors.Is(err, apperrors.ErrNotFound):
		return "rejected_not_found"
	case errors.Is(err, apperrors.ErrEMICleared):
		return "rejected_emi_cleared"
	case errors.Is(err, apperrors.ErrPaymentExceedsDue):
		return "rejected_exceeds_due"
	default:
		return monitoring.StatusFailure
	}
}
