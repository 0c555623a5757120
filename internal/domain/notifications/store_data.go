package notifications

import "context"

func (s *Store) CreateNotification(ctx context.Context, n Notification) (Notification, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO notifications (recipient, type, message, related_id)
    VALUES ($1,$2,$3,$4)
    RETURNING id, created_at
  `, n.Recipient, n.Type, n.Message, n.RelatedID).Scan(&n.ID, &n.CreatedAt)
	return n, err
}

// RecipientEmail resolves the employer address from the settings row and an
// employee address from the roster.
func (s *Store) RecipientEmail(ctx context.Context, recipient string) (string, error) {
	var email string
	if recipient == RecipientEmployer {
		err := s.DB.QueryRow(ctx, "SELECT COALESCE(employer_email, '') FROM company_settings WHERE id = 1").Scan(&email)
		return email, err
	}
	err := s.DB.QueryRow(ctx, "SELECT email FROM employees WHERE id::text = $1", recipient).Scan(&email)
	return email, err
}

func (s *Store) ListNotifications(ctx context.Context, recipient string, unreadOnly bool, limit, offset int) ([]Notification, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, recipient, type, message, related_id, read_at IS NOT NULL, created_at
    FROM notifications
    WHERE recipient = $1 AND (NOT $2 OR read_at IS NULL)
    ORDER BY created_at DESC
    LIMIT $3 OFFSET $4
  `, recipient, unreadOnly, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.Recipient, &n.Type, &n.Message, &n.RelatedID, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *Store) CountNotifications(ctx context.Context, recipient string, unreadOnly bool) (int, error) {
	var total int
	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM notifications
    WHERE recipient = $1 AND (NOT $2 OR read_at IS NULL)
  `, recipient, unreadOnly).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) MarkRead(ctx context.Context, recipient, notificationID string) error {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE notifications SET read_at = COALESCE(read_at, now())
    WHERE recipient = $1 AND id::text = $2
  `, recipient, notificationID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) EmailSettings(ctx context.Context) (EmailSettings, error) {
	var out EmailSettings
	err := s.DB.QueryRow(ctx, `
    SELECT email_notifications_enabled, COALESCE(email_from, ''), COALESCE(employer_email, '')
    FROM company_settings
    WHERE id = 1
  `).Scan(&out.Enabled, &out.From, &out.EmployerEmail)
	return out, err
}

func (s *Store) UpdateSettings(ctx context.Context, settings EmailSettings) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE company_settings
    SET email_notifications_enabled = $1, email_from = $2, employer_email = $3, updated_at = now()
    WHERE id = 1
  `, settings.Enabled, nullIfEmpty(settings.From), nullIfEmpty(settings.EmployerEmail))
	return err
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
