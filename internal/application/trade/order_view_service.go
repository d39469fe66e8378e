package trade

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopdash/backend/internal/domain/partner"
	"github.com/shopdash/backend/internal/domain/trade"
	"github.com/shopdash/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Labels shown by the order views
const (
	RecentOrdersTitle     = "Recent Orders"
	ViewAllOrdersLabel    = "View all orders"
	NoOrdersMessage       = "No orders found"
	PrepStatusHeader      = "Prep Order Status"
	PrepStatusFailedText  = "Failed to load order status"
	PrepStatusLoadingText = "Loading..."
)

// ViewSettings tunes the order views
type ViewSettings struct {
	RecentOrdersLimit int
	// Concurrency bounds the prep status fetches of one card
	Concurrency int
	// Deadline is how long the order views wait for prep statuses. The prep
	// status view reports "loading" past it; the orders card leaves the status empty.
	Deadline time.Duration
}

// DefaultViewSettings returns the settings used when none are configured
func DefaultViewSettings() ViewSettings {
	return ViewSettings{
		RecentOrdersLimit: 5,
		Concurrency:       8,
		Deadline:          2 * time.Second,
	}
}

// OrderViewService builds the order cards of the dashboard
type OrderViewService struct {
	orderRepo    trade.OrderRepository
	customerRepo partner.CustomerRepository
	prepStatus   trade.PrepStatusReader
	settings     ViewSettings
}

// NewOrderViewService creates a new OrderViewService
func NewOrderViewService(
	orderRepo trade.OrderRepository,
	customerRepo partner.CustomerRepository,
	prepStatus trade.PrepStatusReader,
	settings ViewSettings,
) *OrderViewService {
	defaults := DefaultViewSettings()
	if settings.RecentOrdersLimit <= 0 {
		settings.RecentOrdersLimit = defaults.RecentOrdersLimit
	}
	if settings.Concurrency <= 0 {
		settings.Concurrency = defaults.Concurrency
	}
	if settings.Deadline <= 0 {
		settings.Deadline = defaults.Deadline
	}
	return &OrderViewService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		prepStatus:   prepStatus,
		settings:     settings,
	}
}

// CustomerOrders returns the "Recent Orders" card of a customer.
// Prep statuses are fetched concurrently under the view deadline; a failed or
// late fetch leaves its row's status empty.
func (s *OrderViewService) CustomerOrders(ctx context.Context, tenantID, customerID uuid.UUID) (*CustomerOrdersCard, error) {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.FindByCustomer(ctx, tenantID, customerID, s.settings.RecentOrdersLimit)
	if err != nil {
		return nil, err
	}

	back := "/customers/" + customerID.String()
	rows := make([]CustomerOrderRow, len(orders))
	for i := range orders {
		o := &orders[i]
		rows[i] = CustomerOrderRow{
			ID:            o.ID,
			Number:        o.DisplayNumber(),
			Created:       o.CreatedAt,
			PaymentStatus: trade.TransformPaymentStatus(o.ChargeStatus),
			TotalGross:    o.TotalGross,
			Href:          OrderHref(o.ID, back),
		}
	}

	s.fillPrepStatuses(ctx, rows)

	card := &CustomerOrdersCard{
		Title:        RecentOrdersTitle,
		ViewAllLabel: ViewAllOrdersLabel,
		ViewAllHref:  "/orders?" + url.Values{"customer": {customer.Email}}.Encode(),
		Columns:      CustomerOrdersColumns,
		Rows:         rows,
	}
	if len(rows) == 0 {
		card.EmptyMessage = NoOrdersMessage
	}
	return card, nil
}

// fillPrepStatuses waits at most settings.Deadline for the prep statuses.
// Rows whose fetch has not finished by then keep an empty status; the
// shared fetch keeps running in the status cache for the next view.
func (s *OrderViewService) fillPrepStatuses(ctx context.Context, rows []CustomerOrderRow) {
	if len(rows) == 0 {
		return
	}
	dctx, cancel := context.WithTimeout(ctx, s.settings.Deadline)
	defer cancel()

	var mu sync.Mutex
	statuses := make([]string, len(rows))

	done := make(chan struct{})
	go func() {
		defer close(done)
		g, gctx := errgroup.WithContext(dctx)
		g.SetLimit(s.settings.Concurrency)
		for i := range rows {
			id := rows[i].ID.String()
			g.Go(func() error {
				status, err := s.prepStatus.GetPrepStatus(gctx, id)
				if err != nil {
					logger.L(ctx).Debug("prep status unavailable",
						zap.String("order_id", id),
						zap.Error(err),
					)
					return nil
				}
				mu.Lock()
				statuses[i] = status.OrderStatus
				mu.Unlock()
				return nil
			})
		}
		_ = g.Wait()
	}()

	select {
	case <-done:
	case <-dctx.Done():
		logger.L(ctx).Debug("prep statuses past deadline",
			zap.Duration("deadline", s.settings.Deadline),
		)
	}

	mu.Lock()
	defer mu.Unlock()
	for i := range rows {
		rows[i].PrepStatus = statuses[i]
	}
}

type prepStatusResult struct {
	status trade.PrepStatus
	err    error
}

// PrepStatus returns the prep status header of an order. An unknown order
// fails before any status is fetched.
func (s *OrderViewService) PrepStatus(ctx context.Context, tenantID, orderID uuid.UUID) (*PrepStatusView, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	done := make(chan prepStatusResult, 1)
	go func() {
		status, err := s.prepStatus.GetPrepStatus(ctx, order.ID.String())
		done <- prepStatusResult{status: status, err: err}
	}()

	timer := time.NewTimer(s.settings.Deadline)
	defer timer.Stop()

	view := &PrepStatusView{Header: PrepStatusHeader}
	select {
	case res := <-done:
		if res.err != nil {
			logger.L(ctx).Warn("failed to load order prep status",
				zap.String("order_id", order.ID.String()),
				zap.Error(res.err),
			)
			view.State = PrepStatusError
			view.Message = PrepStatusFailedText
			return view, nil
		}
		view.State = PrepStatusSuccess
		view.OrderStatus = res.status.OrderStatus
		if res.status.OrderStatus != "" {
			view.Pill = &Pill{Color: trade.PillColorInfo, Label: res.status.OrderStatus}
		}
	case <-timer.C:
		view.State = PrepStatusLoading
		view.Message = PrepStatusLoadingText
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return view, nil
}

// OrderHref links to an order's details page. back is a dashboard path and
// is kept unescaped.
func OrderHref(orderID uuid.UUID, back string) string {
	href := "/orders/" + orderID.String()
	if back == "" {
		return href
	}
	return href + "?back=" + back
}
