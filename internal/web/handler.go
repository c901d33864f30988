// Package web renders the payment-collection and payment-history screens.
package web

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/shanavasvb/payment-app-frontend/internal/app"
	"github.com/shanavasvb/payment-app-frontend/internal/domain/customer"
	"github.com/shanavasvb/payment-app-frontend/internal/domain/payment"
	"github.com/shanavasvb/payment-app-frontend/internal/notify"
	"github.com/shanavasvb/payment-app-frontend/internal/pkg/apperrors"
)

//go:embed templates/*.html
var templateFS embed.FS

type CollectionScreen interface {
	Snapshot() customer.State
	ChangeAccountNumber(input string)
	ChangePaymentAmount(input string)
	SubmitPayment(ctx context.Context) error
	DismissBanner()
	Refresh(ctx context.Context) error
}

type HistoryScreen interface {
	Snapshot() payment.HistoryState
	Refresh(ctx context.Context) error
}

type Navigator interface {
	Visit(ctx context.Context, screen string) (bool, error)
}

type AlertSource interface {
	Drain() []notify.Alert
}

type Options struct {
	CurrencySymbol string
	Location       *time.Location
}

type Handler struct {
	collection CollectionScreen
	history    HistoryScreen
	navigator  Navigator
	alerts     AlertSource
	pages      map[string]*template.Template
	format     formatter
	logger     *slog.Logger
}

func NewHandler(collection CollectionScreen, history HistoryScreen, navigator Navigator, alerts AlertSource, opts Options, logger *slog.Logger) (*Handler, error) {
	if collection == nil || history == nil {
		panic("screens cannot be nil")
	}
	if navigator == nil || alerts == nil {
		panic("navigator and alert source cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if opts.CurrencySymbol == "" {
		opts.CurrencySymbol = customer.DefaultCurrencySymbol
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}

	pages := make(map[string]*template.Template, 2)
	for _, name := range []string{app.ScreenCollection, app.ScreenHistory} {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s templates: %w", name, err)
		}
		pages[name] = tmpl
	}

	return &Handler{
		collection: collection,
		history:    history,
		navigator:  navigator,
		alerts:     alerts,
		pages:      pages,
		format:     formatter{currency: opts.CurrencySymbol, location: opts.Location},
		logger:     logger.With("component", "WebHandler"),
	}, nil
}

// Collection handles GET /. An account_number query parameter is applied as
// an account-number change before rendering.
func (h *Handler) Collection(w http.ResponseWriter, r *http.Request) {
	if !h.visit(w, r, app.ScreenCollection) {
		return
	}

	query := r.URL.Query()
	if query.Has("account_number") {
		h.collection.ChangeAccountNumber(query.Get("account_number"))
	}
	if query.Has("payment_amount") {
		h.collection.ChangePaymentAmount(query.Get("payment_amount"))
	}

	h.render(w, r, app.ScreenCollection, h.format.collectionPage(h.collection.Snapshot(), h.alerts.Drain()))
}

// SubmitPayment handles POST /payments. Outcomes reach the user through the
// banner or the alert inbox on the redirected page.
func (h *Handler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to parse payment form", slog.Any("error", err))
		http.Error(w, "Malformed form", http.StatusBadRequest)
		return
	}
	if h.collection.Snapshot().Processing {
		h.logger.WarnContext(r.Context(), "Payment form ignored while a submission is in flight")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.collection.ChangeAccountNumber(r.PostForm.Get("account_number"))
	h.collection.ChangePaymentAmount(r.PostForm.Get("payment_amount"))

	if err := h.collection.SubmitPayment(r.Context()); err != nil {
		level := slog.LevelWarn
		if errors.Is(err, apperrors.ErrTransport) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Payment submission did not succeed", slog.Any("error", err))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) DismissBanner(w http.ResponseWriter, r *http.Request) {
	h.collection.DismissBanner()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) RefreshCustomers(w http.ResponseWriter, r *http.Request) {
	if err := h.collection.Refresh(r.Context()); err != nil {
		h.logger.WarnContext(r.Context(), "Customer refresh failed", slog.Any("error", err))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	if !h.visit(w, r, app.ScreenHistory) {
		return
	}
	h.render(w, r, app.ScreenHistory, h.format.historyPage(h.history.Snapshot(), h.alerts.Drain()))
}

func (h *Handler) RefreshHistory(w http.ResponseWriter, r *http.Request) {
	if err := h.history.Refresh(r.Context()); err != nil {
		h.logger.WarnContext(r.Context(), "Payment history refresh failed", slog.Any("error", err))
	}
	http.Redirect(w, r, "/history", http.StatusSeeOther)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func (h *Handler) visit(w http.ResponseWriter, r *http.Request, screen string) bool {
	mounted, err := h.navigator.Visit(r.Context(), screen)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to open screen", slog.String("screen", screen), slog.Any("error", err))
		http.Error(w, "Screen unavailable", http.StatusServiceUnavailable)
		return false
	}
	if mounted {
		h.logger.DebugContext(r.Context(), "Screen mounted on first visit", slog.String("screen", screen))
	}
	return true
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, screen string, data any) {
	var buf bytes.Buffer
	if err := h.pages[screen].ExecuteTemplate(&buf, "layout", data); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to render page", slog.String("screen", screen), slog.Any("error", err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}
