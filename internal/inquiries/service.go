package inquiries

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/commerceflow/backend/internal/apperrors"
	"github.com/commerceflow/backend/internal/auth"
	"github.com/commerceflow/backend/internal/notify"
)

// CreateParams carries a customer inquiry submission.
type CreateParams struct {
	Title       string
	Description string
	Category    string
	Name        string
	Email       string
	UserID      string
}

// Service implements the support-ticket lifecycle: submission, free-form
// status updates, an append-only response thread, and owner-or-admin delete.
type Service struct {
	store    *Store
	notifier notify.Publisher
	log      *logrus.Logger
	nowFunc  func() time.Time
	idFunc   func() string
}

// NewService wires the inquiry lifecycle service.
func NewService(store *Store, notifier notify.Publisher, log *logrus.Logger) *Service {
	return &Service{
		store:    store,
		notifier: notifier,
		log:      log,
		nowFunc:  time.Now,
		idFunc:   uuid.NewString,
	}
}

// Create persists a new inquiry with status forced to New and sends a
// best-effort confirmation to the submitter.
func (s *Service) Create(ctx context.Context, p CreateParams) (*Inquiry, error) {
	if !ValidCategory(p.Category) {
		return nil, fmt.Errorf("category %q: %w", p.Category, apperrors.ErrValidation)
	}

	in := &Inquiry{
		InquiryID:   s.idFunc(),
		Title:       p.Title,
		Description: p.Description,
		Category:    p.Category,
		Name:        p.Name,
		Email:       p.Email,
		UserID:      p.UserID,
		Status:      StatusNew,
	}
	if err := s.store.Save(ctx, in); err != nil {
		return nil, fmt.Errorf("create inquiry: %w", err)
	}

	s.publish(ctx, notify.Event{
		Type: notify.EventInquiryConfirmation,
		To:   in.Email,
		Data: map[string]string{
			"inquiry_id": in.InquiryID,
			"title":      in.Title,
			"name":       in.Name,
		},
	})
	return in, nil
}

// UpdateStatus sets the status to any of the five values; no transition
// graph is enforced, so terminal states can be left again. The customer is
// told the old and new status.
func (s *Service) UpdateStatus(ctx context.Context, inquiryID, newStatus string) (*Inquiry, error) {
	if !ValidStatus(newStatus) {
		return nil, fmt.Errorf("status %q: %w", newStatus, apperrors.ErrValidation)
	}

	in, err := s.store.Get(ctx, inquiryID)
	if err != nil {
		return nil, fmt.Errorf("fetch inquiry: %w", err)
	}
	if in == nil {
		return nil, fmt.Errorf("inquiry %s: %w", inquiryID, apperrors.ErrNotFound)
	}

	oldStatus := in.Status
	in.Status = newStatus
	if err := s.store.Save(ctx, in); err != nil {
		return nil, fmt.Errorf("update inquiry status: %w", err)
	}

	s.publish(ctx, notify.Event{
		Type: notify.EventInquiryStatusChanged,
		To:   in.Email,
		Data: map[string]string{
			"inquiry_id": in.InquiryID,
			"title":      in.Title,
			"name":       in.Name,
			"old_status": oldStatus,
			"new_status": newStatus,
		},
	})
	return in, nil
}

// AddResponse appends to the response thread. A customer-visible response
// flips a non-terminal inquiry to Pending Client Response and notifies the
// customer; internal notes change nothing and stay silent.
func (s *Service) AddResponse(ctx context.Context, inquiryID, message, responder string, isInternal bool) (*Inquiry, error) {
	if message == "" {
		return nil, fmt.Errorf("empty response message: %w", apperrors.ErrValidation)
	}

	in, err := s.store.Get(ctx, inquiryID)
	if err != nil {
		return nil, fmt.Errorf("fetch inquiry: %w", err)
	}
	if in == nil {
		return nil, fmt.Errorf("inquiry %s: %w", inquiryID, apperrors.ErrNotFound)
	}

	in.Responses = append(in.Responses, Response{
		Message:    message,
		Responder:  responder,
		IsInternal: isInternal,
		CreatedAt:  s.nowFunc(),
	})

	if !isInternal && in.Status != StatusResolved && in.Status != StatusClosed {
		in.Status = StatusPendingClient
	}

	if err := s.store.Save(ctx, in); err != nil {
		return nil, fmt.Errorf("append response: %w", err)
	}

	if !isInternal {
		s.publish(ctx, notify.Event{
			Type: notify.EventInquiryResponse,
			To:   in.Email,
			Data: map[string]string{
				"inquiry_id": in.InquiryID,
				"title":      in.Title,
				"name":       in.Name,
				"responder":  responder,
				"message":    message,
			},
		})
	}
	return in, nil
}

// Delete removes an inquiry for an admin or its owner (matched by email).
func (s *Service) Delete(ctx context.Context, inquiryID string, ident auth.Identity) error {
	in, err := s.store.Get(ctx, inquiryID)
	if err != nil {
		return fmt.Errorf("fetch inquiry: %w", err)
	}
	if in == nil {
		return fmt.Errorf("inquiry %s: %w", inquiryID, apperrors.ErrNotFound)
	}
	if !ident.IsAdmin() && in.Email != ident.Email {
		return fmt.Errorf("inquiry %s: %w", inquiryID, apperrors.ErrForbidden)
	}

	found, err := s.store.Delete(ctx, inquiryID)
	if err != nil {
		return fmt.Errorf("delete inquiry: %w", err)
	}
	if !found {
		return fmt.Errorf("inquiry %s: %w", inquiryID, apperrors.ErrNotFound)
	}
	return nil
}

// ListForUser returns the requester's inquiries, newest first.
func (s *Service) ListForUser(ctx context.Context, email string) ([]Inquiry, error) {
	list, err := s.store.List(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("list inquiries: %w", err)
	}
	return list, nil
}

// ListAll returns every inquiry, newest first. Admin-only; enforced at the route.
func (s *Service) ListAll(ctx context.Context) ([]Inquiry, error) {
	list, err := s.store.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list inquiries: %w", err)
	}
	return list, nil
}

func (s *Service) publish(ctx context.Context, ev notify.Event) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Publish(ctx, ev); err != nil {
		s.log.Warnf("notification %s to %s failed: %v", ev.Type, ev.To, err)
	}
}
