package notifications

import "time"

// Notification is addressed either to the employer or to one employee by id.
type Notification struct {
	ID        string    `json:"id"`
	Recipient string    `json:"recipient"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	RelatedID string    `json:"relatedId"`
	Read      bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

type EmailSettings struct {
	Enabled       bool   `json:"enabled"`
	From          string `json:"from" validate:"omitempty,email"`
	EmployerEmail string `json:"employerEmail" validate:"omitempty,email"`
}
