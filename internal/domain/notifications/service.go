package notifications

import (
	"context"
	"log/slog"
)

type Mailer interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

type Service struct {
	store       StoreAPI
	Mailer      Mailer
	DefaultFrom string
}

func New(store StoreAPI, mailer Mailer) *Service {
	return &Service{store: store, Mailer: mailer, DefaultFrom: "no-reply@example.com"}
}

// Create stores the notification and, when email delivery is switched on,
// mails it. Mail failures are logged and never fail the call.
func (s *Service) Create(ctx context.Context, recipient, ntype, message, relatedID string) (Notification, error) {
	n, err := s.store.CreateNotification(ctx, Notification{
		Recipient: recipient,
		Type:      ntype,
		Message:   message,
		RelatedID: relatedID,
	})
	if err != nil {
		return Notification{}, err
	}
	s.mail(ctx, n)
	return n, nil
}

func (s *Service) mail(ctx context.Context, n Notification) {
	if s.Mailer == nil {
		return
	}
	settings, err := s.store.EmailSettings(ctx)
	if err != nil || !settings.Enabled {
		return
	}
	from := settings.From
	if from == "" {
		from = s.DefaultFrom
	}

	email, err := s.store.RecipientEmail(ctx, n.Recipient)
	if err != nil {
		slog.Warn("notification email lookup failed", "recipient", n.Recipient, "err", err)
		return
	}
	if email == "" {
		return
	}
	subject := subjects[n.Type]
	if subject == "" {
		subject = "Notification"
	}
	if err := s.Mailer.Send(ctx, from, email, subject, n.Message); err != nil {
		slog.Warn("notification email send failed", "recipient", n.Recipient, "err", err)
	}
}

func (s *Service) List(ctx context.Context, recipient string, unreadOnly bool, limit, offset int) ([]Notification, error) {
	return s.store.ListNotifications(ctx, recipient, unreadOnly, limit, offset)
}

func (s *Service) Count(ctx context.Context, recipient string, unreadOnly bool) (int, error) {
	return s.store.CountNotifications(ctx, recipient, unreadOnly)
}

func (s *Service) MarkRead(ctx context.Context, recipient, notificationID string) error {
	return s.store.MarkRead(ctx, recipient, notificationID)
}

func (s *Service) GetSettings(ctx context.Context) (EmailSettings, error) {
	return s.store.EmailSettings(ctx)
}

func (s *Service) UpdateSettings(ctx context.Context, settings EmailSettings) error {
	return s.store.UpdateSettings(ctx, settings)
}
