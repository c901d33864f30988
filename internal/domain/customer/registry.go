package customer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/shanavasvb/payment-app-frontend/internal/domain/payment"
	"github.com/shanavasvb/payment-app-frontend/internal/notify"
	"github.com/shanavasvb/payment-app-frontend/internal/pkg/apperrors"
	"github.com/shanavasvb/payment-app-frontend/internal/pkg/envelope"
	"github.com/shanavasvb/payment-app-frontend/internal/pkg/money"
	"github.com/shanavasvb/payment-app-frontend/internal/pkg/schedule"
	"github.com/shanavasvb/payment-app-frontend/internal/pkg/sequence"
	"github.com/shopspring/decimal"
)

const (
	DefaultBannerTimeout  = 5 * time.Second
	DefaultCurrencySymbol = "₹"

	alertTitle             = "Error"
	msgFetchFailed         = "Failed to fetch customers"
	msgConnectFailed       = "Failed to connect to server"
	msgAccountRequired     = "Please enter account number"
	msgInvalidAmount       = "Please enter a valid payment amount"
	msgPaymentFailed       = "Payment failed"
	msgPaymentTransportErr = "Failed to process payment"
)

type Gateway interface {
	FetchCustomers(ctx context.Context) (envelope.Envelope[[]Customer], error)
	SubmitPayment(ctx context.Context, accountNumber string, amount decimal.Decimal) (envelope.Envelope[payment.Receipt], error)
}

// State is an immutable snapshot of the payment-collection screen.
type State struct {
	Customers          []Customer
	AccountNumberInput string
	PaymentAmountInput string
	Selected           *Customer
	Loading            bool
	Refreshing         bool
	Processing         bool
	Banner             string
	Version            uint64
}

type Options struct {
	BannerTimeout  time.Duration
	CurrencySymbol string
	Scheduler      schedule.Scheduler
}

// Registry is the view model behind the payment-collection screen. Every write
// to the customer list, whether a full replacement or the post-payment EMI
// patch, happens as one replacement under mu and bumps State.Version.
type Registry struct {
	gateway       Gateway
	notifier      notify.Notifier
	scheduler     schedule.Scheduler
	bannerTimeout time.Duration
	currency      string
	logger        *slog.Logger

	mu         sync.Mutex
	state      State
	tracker    sequence.Tracker
	bannerSeq  uint64
	bannerTask schedule.Task
}

func NewRegistry(gateway Gateway, notifier notify.Notifier, opts Options, logger *slog.Logger) *Registry {
	if gateway == nil {
		panic("customer gateway cannot be nil")
	}
	if notifier == nil {
		panic("notifier cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewRegistry, using default stderr handler")
	}
	if opts.BannerTimeout <= 0 {
		opts.BannerTimeout = DefaultBannerTimeout
	}
	if opts.CurrencySymbol == "" {
		opts.CurrencySymbol = DefaultCurrencySymbol
	}
	if opts.Scheduler == nil {
		opts.Scheduler = schedule.Clock{}
	}
	return &Registry{
		gateway:       gateway,
		notifier:      notifier,
		scheduler:     opts.Scheduler,
		bannerTimeout: opts.BannerTimeout,
		currency:      opts.CurrencySymbol,
		logger:        logger.With(slog.String("component", "customerRegistry")),
	}
}

func (r *Registry) Snapshot() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.state
	s.Customers = append([]Customer(nil), r.state.Customers...)
	if r.state.Selected != nil {
		selected := *r.state.Selected
		s.Selected = &selected
	}
	return s
}

// Load fetches the customer list within the caller's lifetime. Cancelling ctx
// silently abandons the result.
func (r *Registry) Load(ctx context.Context) error {
	return r.load(ctx, false)
}

// Refresh fetches the customer list detached from any caller cancellation.
func (r *Registry) Refresh(ctx context.Context) error {
	return r.load(context.WithoutCancel(ctx), true)
}

func (r *Registry) load(ctx context.Context, refresh bool) error {
	seq := r.beginLoad(refresh)
	defer r.endLoad(refresh)

	r.logger.DebugContext(ctx, "Fetching customers", slog.Uint64("seq", seq), slog.Bool("refresh", refresh))
	resp, err := r.gateway.FetchCustomers(ctx)
	if ctx.Err() != nil {
		r.logger.DebugContext(ctx, "Customer fetch cancelled", slog.Uint64("seq", seq))
		return nil
	}
	if err != nil {
		r.logger.ErrorContext(ctx, "Customer fetch failed", slog.Any("error", err))
		r.notifier.Alert(ctx, alertTitle, msgConnectFailed)
		return err
	}

	customers, err := resp.Result(msgFetchFailed)
	if err != nil {
		r.logger.WarnContext(ctx, "Backend rejected customer fetch", slog.Any("error", err))
		r.notifier.Alert(ctx, alertTitle, apperrors.UserMessage(err, msgFetchFailed))
		return err
	}

	r.applyCustomers(ctx, seq, customers)
	return nil
}

func (r *Registry) beginLoad(refresh bool) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	seq := r.tracker.Begin(refresh)
	r.state.Loading = r.tracker.Loading()
	r.state.Refreshing = r.tracker.Refreshing()
	return seq
}

func (r *Registry) endLoad(refresh bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tracker.End(refresh)
	r.state.Loading = r.tracker.Loading()
	r.state.Refreshing = r.tracker.Refreshing()
}

func (r *Registry) applyCustomers(ctx context.Context, seq uint64, customers []Customer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.tracker.Accept(seq) {
		r.logger.WarnContext(ctx, "Discarding stale customer response", slog.Uint64("seq", seq))
		return
	}
	r.state.Customers = append([]Customer(nil), customers...)
	r.reselectLocked()
	r.state.Version++
	r.logger.InfoContext(ctx, "Customers loaded", slog.Int("count", len(customers)), slog.Uint64("version", r.state.Version))
}

// ChangeAccountNumber stores the input verbatim and re-derives the selected
// customer from it.
func (r *Registry) ChangeAccountNumber(input string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.AccountNumberInput = input
	r.reselectLocked()
}

func (r *Registry) ChangePaymentAmount(input string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.PaymentAmountInput = input
}

func (r *Registry) reselectLocked() {
	if c, ok := FindByAccountNumber(r.state.Customers, r.state.AccountNumberInput); ok {
		r.state.Selected = &c
		return
	}
	r.state.Selected = nil
}

// SubmitPayment validates the form, submits it, and on success patches the
// EMI due of the paid account in place of a re-fetch. Once issued the request
// is never cancelled: ctx only contributes its values.
func (r *Registry) SubmitPayment(ctx context.Context) error {
	accountNumber, amount, err := r.startSubmission()
	if err != nil {
		if !errors.Is(err, apperrors.ErrSubmissionInProgress) {
			r.notifier.Alert(ctx, alertTitle, apperrors.UserMessage(err, msgInvalidAmount))
		}
		r.logger.WarnContext(ctx, "Payment submission rejected locally", slog.Any("error", err))
		return err
	}
	defer r.finishSubmission()

	logCtx := r.logger.With(slog.String("account_number", accountNumber), slog.String("amount", amount.String()))
	logCtx.InfoContext(ctx, "Submitting payment")

	resp, err := r.gateway.SubmitPayment(context.WithoutCancel(ctx), accountNumber, amount)
	if err != nil {
		logCtx.ErrorContext(ctx, "Payment submission failed", slog.Any("error", err))
		r.notifier.Alert(ctx, alertTitle, msgPaymentTransportErr)
		return err
	}

	receipt, err := resp.Result(msgPaymentFailed)
	if err != nil {
		logCtx.WarnContext(ctx, "Backend rejected payment", slog.Any("error", err))
		r.notifier.Alert(ctx, alertTitle, apperrors.UserMessage(err, msgPaymentFailed))
		return err
	}

	message := fmt.Sprintf("Payment of %s processed successfully! Remaining Due: %s",
		money.Format(r.currency, amount), money.Format(r.currency, receipt.RemainingDue))
	r.applyPayment(accountNumber, receipt.RemainingDue, message)

	logCtx.InfoContext(ctx, "Payment processed", slog.Int64("payment_id", receipt.PaymentID),
		slog.String("remaining_due", receipt.RemainingDue.StringFixed(2)))
	return nil
}

func (r *Registry) startSubmission() (string, decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state.Processing {
		return "", decimal.Zero, apperrors.ErrSubmissionInProgress
	}
	accountNumber := r.state.AccountNumberInput
	if strings.TrimSpace(accountNumber) == "" {
		return "", decimal.Zero, apperrors.NewValidationError("account_number", msgAccountRequired)
	}
	amount, err := money.ParseAmount(r.state.PaymentAmountInput)
	if err != nil {
		return "", decimal.Zero, fmt.Errorf("%w: %w", apperrors.NewValidationError("payment_amount", msgInvalidAmount), err)
	}
	r.state.Processing = true
	return accountNumber, amount, nil
}

func (r *Registry) finishSubmission() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.Processing = false
}

// applyPayment patches the paid account. Fetches issued before the patch are
// stale once it lands, since their snapshot predates the payment.
func (r *Registry) applyPayment(accountNumber string, remainingDue decimal.Decimal, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.Customers = WithEMIDue(r.state.Customers, accountNumber, remainingDue)
	r.tracker.Supersede()
	r.state.Version++

	r.state.AccountNumberInput = ""
	r.state.PaymentAmountInput = ""
	r.state.Selected = nil

	r.showBannerLocked(message)
}

// showBannerLocked replaces any current banner and schedules its expiry. An
// expiry scheduled for an earlier banner never clears a later one.
func (r *Registry) showBannerLocked(message string) {
	if r.bannerTask != nil {
		r.bannerTask.Cancel()
	}
	r.bannerSeq++
	seq := r.bannerSeq
	r.state.Banner = message
	r.bannerTask = r.scheduler.After(r.bannerTimeout, func() { r.expireBanner(seq) })
}

func (r *Registry) expireBanner(seq uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if seq != r.bannerSeq {
		return
	}
	r.state.Banner = ""
	r.bannerTask = nil
}

// DismissBanner clears the banner now and cancels its pending expiry.
func (r *Registry) DismissBanner() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.bannerTask != nil {
		r.bannerTask.Cancel()
		r.bannerTask = nil
	}
	r.state.Banner = ""
}

// Close cancels the pending banner expiry, if any.
func (r *Registry) Close() {
	r.DismissBanner()
}
