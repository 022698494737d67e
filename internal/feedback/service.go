package feedback

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/commerceflow/backend/internal/apperrors"
	"github.com/commerceflow/backend/internal/auth"
)

// Service implements customer feedback: authenticated create, admin listing,
// owner-or-admin delete.
type Service struct {
	store  *Store
	idFunc func() string
}

// NewService wires the feedback service.
func NewService(store *Store) *Service {
	return &Service{store: store, idFunc: uuid.NewString}
}

// Create records feedback from the authenticated caller.
func (s *Service) Create(ctx context.Context, ident auth.Identity, name string, rating int, comment string) (*Feedback, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("rating %d out of range: %w", rating, apperrors.ErrValidation)
	}
	f := &Feedback{
		FeedbackID: s.idFunc(),
		UserID:     ident.ID,
		Name:       name,
		Email:      ident.Email,
		Rating:     rating,
		Comment:    comment,
	}
	if err := s.store.Create(ctx, f); err != nil {
		return nil, fmt.Errorf("create feedback: %w", err)
	}
	return f, nil
}

// List returns all feedback, newest first. Admin-only; enforced at the route.
func (s *Service) List(ctx context.Context) ([]Feedback, error) {
	return s.store.List(ctx)
}

// Delete removes feedback for an admin or its author.
func (s *Service) Delete(ctx context.Context, feedbackID string, ident auth.Identity) error {
	f, err := s.store.Get(ctx, feedbackID)
	if err != nil {
		return fmt.Errorf("fetch feedback: %w", err)
	}
	if f == nil {
		return fmt.Errorf("feedback %s: %w", feedbackID, apperrors.ErrNotFound)
	}
	if !ident.IsAdmin() && f.UserID != ident.ID {
		return fmt.Errorf("feedback %s: %w", feedbackID, apperrors.ErrForbidden)
	}

	found, err := s.store.Delete(ctx, feedbackID)
	if err != nil {
		return fmt.Errorf("delete feedback: %w", err)
	}
	if !found {
		return fmt.Errorf("feedback %s: %w", feedbackID, apperrors.ErrNotFound)
	}
	return nil
}
