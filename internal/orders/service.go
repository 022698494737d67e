package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/commerceflow/backend/internal/apperrors"
	"github.com/commerceflow/backend/internal/auth"
	"github.com/commerceflow/backend/internal/catalog"
	"github.com/commerceflow/backend/internal/idempotency"
	"github.com/commerceflow/backend/internal/notify"
)

// LineRequest is one requested order line before the catalog lookup.
type LineRequest struct {
	ItemID   string
	Quantity int
}

// Service implements the order lifecycle: checkout with inventory
// decrements, role-scoped listing, and the admin approval gate.
type Service struct {
	store      *Store
	catalog    *catalog.Store
	idempStore *idempotency.Store
	idempTable string
	notifier   notify.Publisher
	log        *logrus.Logger
	nowFunc    func() time.Time
	idFunc     func() string
}

// NewService wires the order lifecycle service. idempStore may be nil when
// duplicate-submission protection is disabled.
func NewService(store *Store, cat *catalog.Store, idempStore *idempotency.Store, idempTable string, notifier notify.Publisher, log *logrus.Logger) *Service {
	return &Service{
		store:      store,
		catalog:    cat,
		idempStore: idempStore,
		idempTable: idempTable,
		notifier:   notifier,
		log:        log,
		nowFunc:    time.Now,
		idFunc:     uuid.NewString,
	}
}

// Create runs the checkout sequence. For each line it looks the item up,
// snapshots its current price, decrements its count, and saves it back. The
// per-item writes are independent: a missing item mid-sequence aborts the
// call but earlier decrements stand, matching the source system.
//
// The returned bool is false when an idempotency key replayed a previous
// checkout and the existing order was returned instead.
func (s *Service) Create(ctx context.Context, ident auth.Identity, lines []LineRequest, cardLastFour, idempotencyKey string) (*Order, bool, error) {
	if len(lines) == 0 {
		return nil, false, fmt.Errorf("%w: order needs at least one item", apperrors.ErrValidation)
	}

	if idempotencyKey != "" && s.idempStore != nil {
		rec, err := s.idempStore.Get(ctx, idempotencyKey)
		if err != nil {
			return nil, false, fmt.Errorf("idempotency lookup: %w", err)
		}
		if rec != nil {
			existing, err := s.store.Get(ctx, rec.OrderID)
			if err != nil {
				return nil, false, fmt.Errorf("fetch replayed order: %w", err)
			}
			if existing == nil {
				return nil, false, fmt.Errorf("replayed order %s: %w", rec.OrderID, apperrors.ErrNotFound)
			}
			return existing, false, nil
		}
	}

	now := s.nowFunc()
	orderLines := make([]Line, 0, len(lines))
	var total float64

	for _, ln := range lines {
		it, err := s.catalog.Get(ctx, ln.ItemID)
		if err != nil {
			return nil, false, fmt.Errorf("lookup item %s: %w", ln.ItemID, err)
		}
		if it == nil {
			// Earlier decrements are not rolled back.
			return nil, false, fmt.Errorf("item %s: %w", ln.ItemID, apperrors.ErrNotFound)
		}

		it.Count -= ln.Quantity
		if err := s.catalog.Save(ctx, it); err != nil {
			return nil, false, fmt.Errorf("decrement stock for %s: %w", ln.ItemID, err)
		}

		orderLines = append(orderLines, Line{
			ItemID:   ln.ItemID,
			Quantity: ln.Quantity,
			Price:    it.Price,
		})
		total += it.Price * float64(ln.Quantity)
	}

	o := &Order{
		OrderID:        s.idFunc(),
		UserID:         ident.ID,
		UserEmail:      ident.Email,
		Items:          orderLines,
		TotalAmount:    total,
		PaymentStatus:  PaymentCompleted,
		ApprovalStatus: ApprovalPending,
		CardLastFour:   cardLastFour,
		PaymentDate:    now,
	}

	if idempotencyKey != "" && s.idempStore != nil {
		idempItem := map[string]interface{}{
			"idempotency_key": idempotencyKey,
			"status":          idempotency.StatusInProgress,
			"order_id":        o.OrderID,
			"created_at":      now.Format(time.RFC3339),
			"updated_at":      now.Format(time.RFC3339),
		}
		err := s.store.CreateWithIdempotencyTransaction(ctx, s.idempTable, idempItem, o, s.idempStore.TTLWindow())
		if err == nil {
			if body, merr := json.Marshal(o); merr == nil {
				if derr := s.idempStore.MarkDone(ctx, idempotencyKey, string(body), http.StatusCreated); derr != nil {
					s.log.Warnf("mark idempotency done for order %s: %v", o.OrderID, derr)
				}
			}
		} else {
			// Lost a race with a concurrent identical submission: surface the
			// winner's order.
			rec, gerr := s.idempStore.Get(ctx, idempotencyKey)
			if gerr != nil || rec == nil {
				return nil, false, fmt.Errorf("create order: %w", err)
			}
			existing, gerr := s.store.Get(ctx, rec.OrderID)
			if gerr != nil || existing == nil {
				return nil, false, fmt.Errorf("create order: %w", err)
			}
			return existing, false, nil
		}
	} else {
		if err := s.store.Create(ctx, o); err != nil {
			return nil, false, fmt.Errorf("create order: %w", err)
		}
	}

	s.publish(ctx, notify.Event{
		Type: notify.EventOrderConfirmation,
		To:   ident.Email,
		Data: map[string]string{
			"order_id":       o.OrderID,
			"total":          fmt.Sprintf("%.2f", o.TotalAmount),
			"card_last_four": o.CardLastFour,
		},
	})

	return o, true, nil
}

// List returns orders newest-first, capped at ListLimit. Non-admin callers
// only ever see their own orders regardless of the requested filter.
func (s *Service) List(ctx context.Context, ident auth.Identity, filterUserID string) ([]Order, error) {
	if !ident.IsAdmin() {
		filterUserID = ident.ID
	}
	list, err := s.store.List(ctx, Filter{UserID: filterUserID}, ListLimit)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return list, nil
}

// ListPending returns every order awaiting an approval decision,
// newest-first and unbounded. Admin-only; enforced at the route.
func (s *Service) ListPending(ctx context.Context) ([]Order, error) {
	list, err := s.store.List(ctx, Filter{ApprovalStatus: ApprovalPending}, 0)
	if err != nil {
		return nil, fmt.Errorf("list pending orders: %w", err)
	}
	return list, nil
}

// Approve marks the order approved.
func (s *Service) Approve(ctx context.Context, orderID string) (*Order, error) {
	return s.decide(ctx, orderID, ApprovalApproved)
}

// Reject marks the order rejected.
func (s *Service) Reject(ctx context.Context, orderID string) (*Order, error) {
	return s.decide(ctx, orderID, ApprovalRejected)
}

func (s *Service) decide(ctx context.Context, orderID, decision string) (*Order, error) {
	o, err := s.store.Get(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("fetch order: %w", err)
	}
	if o == nil {
		return nil, fmt.Errorf("order %s: %w", orderID, apperrors.ErrNotFound)
	}

	// Overwrites an already-terminal status without error; repeat decisions
	// are silent, matching the source system.
	if err := s.store.SetApproval(ctx, orderID, decision); err != nil {
		return nil, fmt.Errorf("set approval: %w", err)
	}
	o.ApprovalStatus = decision

	if o.UserEmail != "" {
		s.publish(ctx, notify.Event{
			Type: notify.EventOrderDecision,
			To:   o.UserEmail,
			Data: map[string]string{
				"order_id": o.OrderID,
				"decision": decision,
			},
		})
	}
	return o, nil
}

// GetByID returns the order to an admin or its owner.
func (s *Service) GetByID(ctx context.Context, orderID string, ident auth.Identity) (*Order, error) {
	o, err := s.store.Get(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("fetch order: %w", err)
	}
	if o == nil {
		return nil, fmt.Errorf("order %s: %w", orderID, apperrors.ErrNotFound)
	}
	if !ident.IsAdmin() && o.UserID != ident.ID {
		return nil, fmt.Errorf("order %s: %w", orderID, apperrors.ErrForbidden)
	}
	return o, nil
}

// publish is best-effort: failures are logged and never surfaced.
func (s *Service) publish(ctx context.Context, ev notify.Event) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Publish(ctx, ev); err != nil {
		s.log.Warnf("notification %s to %s failed: %v", ev.Type, ev.To, err)
	}
}
