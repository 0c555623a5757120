package absence

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"workforce/internal/domain/notifications"
)

type Notifier interface {
	Create(ctx context.Context, recipient, ntype, message, relatedID string) (notifications.Notification, error)
}

type Service struct {
	store    StoreAPI
	notifier Notifier
}

func NewService(store StoreAPI, notifier Notifier) *Service {
	return &Service{store: store, notifier: notifier}
}

// Create files a pending request and tells the employer about it.
func (s *Service) Create(ctx context.Context, employeeID, reason string, date time.Time) (Request, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return Request{}, ErrInvalidReason
	}
	req, err := s.store.Create(ctx, employeeID, reason, time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC))
	if err != nil {
		return Request{}, err
	}
	if s.notifier != nil {
		if _, err := s.notifier.Create(ctx, notifications.RecipientEmployer, notifications.TypeAbsencePending, pendingMessage(req.EmployeeName), req.ID); err != nil {
			slog.Warn("absence notification failed", "request_id", req.ID, "err", err)
		}
	}
	return req, nil
}

func (s *Service) Get(ctx context.Context, requestID string) (Request, error) {
	return s.store.Get(ctx, requestID)
}

func (s *Service) Count(ctx context.Context, status, employeeID string) (int, error) {
	return s.store.Count(ctx, status, employeeID)
}

func (s *Service) List(ctx context.Context, status, employeeID string, limit, offset int) ([]Request, error) {
	return s.store.List(ctx, status, employeeID, limit, offset)
}

// Decide approves or rejects a pending request and notifies the employee.
func (s *Service) Decide(ctx context.Context, requestID, status string) (Request, error) {
	current, err := s.store.Get(ctx, requestID)
	if err != nil {
		return Request{}, err
	}
	if err := CheckTransition(current.Status, status); err != nil {
		return Request{}, err
	}
	ok, err := s.store.UpdateStatus(ctx, requestID, StatusPending, status)
	if err != nil {
		return Request{}, err
	}
	if !ok {
		return Request{}, ErrInvalidTransition
	}

	updated, err := s.store.Get(ctx, requestID)
	if err != nil {
		return Request{}, err
	}
	if s.notifier != nil {
		if _, err := s.notifier.Create(ctx, updated.EmployeeID, notifications.TypeAbsenceDecided, decidedMessage(updated), updated.ID); err != nil {
			slog.Warn("absence notification failed", "request_id", updated.ID, "err", err)
		}
	}
	return updated, nil
}
