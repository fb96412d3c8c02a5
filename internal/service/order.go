package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/pharmacy/internal/models"
	"github.com/Skotchmaster/pharmacy/internal/repo"
	"github.com/Skotchmaster/pharmacy/internal/transport"
	"github.com/Skotchmaster/pharmacy/pkg/logging"
	"github.com/Skotchmaster/pharmacy/pkg/metrics"
	"github.com/Skotchmaster/pharmacy/pkg/mykafka"
	"github.com/Skotchmaster/pharmacy/pkg/tokens"
)

type OrderService struct {
	Repo        *repo.GormRepo
	Events      Publisher
	Transitions Transitions
}

func (s *OrderService) transitions() Transitions {
	if s.Transitions == nil {
		return Permissive
	}
	return s.Transitions
}

func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.Repo.ListOrders(ctx)
}

func (s *OrderService) ListCustomerOrders(ctx context.Context, p tokens.Principal) ([]models.Order, error) {
	return s.Repo.ListOrdersByCustomer(ctx, p.Email)
}

// SetStatus overwrites the status. notes == nil keeps the stored notes.
func (s *OrderService) SetStatus(ctx context.Context, p tokens.Principal, id uuid.UUID, status string, notes *string) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.set_status", "order_id", id.String())

	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("%w: status must be one of %s", ErrValidation, strings.Join(models.OrderStatuses, ", "))
	}

	order, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		return nil, notFound(err, "order not found")
	}

	from := order.Status
	if !s.transitions().Allowed(from, status) {
		return nil, fmt.Errorf("%w: cannot move order from %s to %s", ErrConflict, from, status)
	}

	order, err = s.Repo.UpdateOrderStatus(ctx, order, status, notes)
	if err != nil {
		return nil, notFound(err, "order not found")
	}

	l.Info("order_status_changed", "from", from, "to", status, "by", p.AccountID.String())
	metrics.RecordOrderTransition(from, status)
	publish(ctx, s.Events, mykafka.TopicOrder, "order_status_changed", order.ID.String(), map[string]string{
		"from": from,
		"to":   status,
	})
	return order, nil
}

// PlaceOrder stores the order as submitted. The total is trusted and stock
// is left untouched.
func (s *OrderService) PlaceOrder(ctx context.Context, p tokens.Principal, req transport.CreateOrderRequest) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.place_order")

	customer := strings.TrimSpace(req.Customer)
	if customer == "" || !p.IsAdmin() {
		customer = p.Email
	}
	if customer == "" {
		return nil, fmt.Errorf("%w: customer required", ErrValidation)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: items required", ErrValidation)
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	sum := decimal.Zero
	for i, it := range req.Items {
		name := strings.TrimSpace(it.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: item %d: name required", ErrValidation, i)
		}
		qty, ok := wholeQuantity(float64(it.Quantity))
		if !ok || qty <= 0 {
			return nil, fmt.Errorf("%w: item %d: quantity must be a positive whole number", ErrValidation, i)
		}
		if !finite(float64(it.Price)) {
			return nil, fmt.Errorf("%w: item %d: price must be a finite number", ErrValidation, i)
		}
		items = append(items, models.OrderItem{
			MedicineID: it.MedicineID,
			Name:       name,
			Price:      float64(it.Price),
			Quantity:   qty,
		})
		sum = sum.Add(decimal.NewFromFloat(float64(it.Price)).Mul(decimal.NewFromInt(int64(qty))))
	}

	if !finite(float64(req.Total)) {
		return nil, fmt.Errorf("%w: total must be a finite number", ErrValidation)
	}
	total := decimal.NewFromFloat(float64(req.Total))
	if !total.Round(2).Equal(sum.Round(2)) {
		l.Warn("order_total_mismatch", "submitted", total.StringFixed(2), "computed", sum.StringFixed(2))
	}

	order, err := s.Repo.CreateOrder(ctx, &models.Order{
		Customer: customer,
		Items:    items,
		Total:    float64(req.Total),
		Status:   models.StatusPending,
		Notes:    req.Notes,
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.Events, mykafka.TopicOrder, "order_created", order.ID.String(), map[string]any{
		"customer": order.Customer,
		"total":    order.Total,
		"items":    len(order.Items),
	})
	return order, nil
}
