package suppliers

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/commerceflow/backend/internal/apperrors"
)

// Service implements supplier tracking. All operations are admin-only,
// enforced at the route.
type Service struct {
	store  *Store
	idFunc func() string
}

// NewService wires the supplier service.
func NewService(store *Store) *Service {
	return &Service{store: store, idFunc: uuid.NewString}
}

// CreateParams carries a new supplier registration.
type CreateParams struct {
	Name    string
	Email   string
	Phone   string
	Address string
	Items   []string
}

// Create registers a supplier; a duplicate email fails with Conflict.
func (s *Service) Create(ctx context.Context, p CreateParams) (*Supplier, error) {
	existing, err := s.store.FindByEmail(ctx, p.Email)
	if err != nil {
		return nil, fmt.Errorf("check supplier email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("supplier email %s: %w", p.Email, apperrors.ErrConflict)
	}

	sp := &Supplier{
		SupplierID: s.idFunc(),
		Name:       p.Name,
		Email:      p.Email,
		Phone:      p.Phone,
		Address:    p.Address,
		Items:      p.Items,
	}
	if err := s.store.Save(ctx, sp); err != nil {
		return nil, fmt.Errorf("create supplier: %w", err)
	}
	return sp, nil
}

// Update overwrites a supplier's mutable fields. Moving to an email already
// held by another supplier fails with Conflict.
func (s *Service) Update(ctx context.Context, supplierID string, p CreateParams) (*Supplier, error) {
	sp, err := s.store.Get(ctx, supplierID)
	if err != nil {
		return nil, fmt.Errorf("fetch supplier: %w", err)
	}
	if sp == nil {
		return nil, fmt.Errorf("supplier %s: %w", supplierID, apperrors.ErrNotFound)
	}

	if p.Email != sp.Email {
		other, err := s.store.FindByEmail(ctx, p.Email)
		if err != nil {
			return nil, fmt.Errorf("check supplier email: %w", err)
		}
		if other != nil && other.SupplierID != supplierID {
			return nil, fmt.Errorf("supplier email %s: %w", p.Email, apperrors.ErrConflict)
		}
	}

	sp.Name = p.Name
	sp.Email = p.Email
	sp.Phone = p.Phone
	sp.Address = p.Address
	sp.Items = p.Items
	if err := s.store.Save(ctx, sp); err != nil {
		return nil, fmt.Errorf("update supplier: %w", err)
	}
	return sp, nil
}

// Get returns a supplier by id.
func (s *Service) Get(ctx context.Context, supplierID string) (*Supplier, error) {
	sp, err := s.store.Get(ctx, supplierID)
	if err != nil {
		return nil, fmt.Errorf("fetch supplier: %w", err)
	}
	if sp == nil {
		return nil, fmt.Errorf("supplier %s: %w", supplierID, apperrors.ErrNotFound)
	}
	return sp, nil
}

// List returns all suppliers, newest first.
func (s *Service) List(ctx context.Context) ([]Supplier, error) {
	return s.store.List(ctx)
}

// Delete removes a supplier.
func (s *Service) Delete(ctx context.Context, supplierID string) error {
	found, err := s.store.Delete(ctx, supplierID)
	if err != nil {
		return fmt.Errorf("delete supplier: %w", err)
	}
	if !found {
		return fmt.Errorf("supplier %s: %w", supplierID, apperrors.ErrNotFound)
	}
	return nil
}
