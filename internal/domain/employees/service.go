package employees

import (
	"context"
	"strings"
)

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]Employee, error) {
	return s.store.List(ctx, limit, offset)
}

func (s *Service) Get(ctx context.Context, employeeID string) (Employee, error) {
	return s.store.Get(ctx, employeeID)
}

func (s *Service) Create(ctx context.Context, in Input) (Employee, error) {
	emp, err := Normalize(in)
	if err != nil {
		return Employee{}, err
	}
	return s.store.Create(ctx, emp)
}

// Update replaces the writable fields and returns the record before and after
// the change so callers can audit it.
func (s *Service) Update(ctx context.Context, employeeID string, in Input) (Employee, Employee, error) {
	before, err := s.store.Get(ctx, employeeID)
	if err != nil {
		return Employee{}, Employee{}, err
	}
	emp, err := Normalize(in)
	if err != nil {
		return Employee{}, Employee{}, err
	}
	after, err := s.store.Update(ctx, employeeID, emp)
	if err != nil {
		return Employee{}, Employee{}, err
	}
	return before, after, nil
}

// UpdateContact is the self-service change: only the phone number is writable.
func (s *Service) UpdateContact(ctx context.Context, employeeID string, in ContactInput) (Employee, error) {
	if err := s.store.UpdatePhone(ctx, employeeID, strings.TrimSpace(in.Phone)); err != nil {
		return Employee{}, err
	}
	return s.store.Get(ctx, employeeID)
}

func (s *Service) Delete(ctx context.Context, employeeID string) (Employee, error) {
	emp, err := s.store.Get(ctx, employeeID)
	if err != nil {
		return Employee{}, err
	}
	if err := s.store.Delete(ctx, employeeID); err != nil {
		return Employee{}, err
	}
	return emp, nil
}
