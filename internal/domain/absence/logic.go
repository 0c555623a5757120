package absence

import "fmt"

// CheckTransition allows a decision only on a pending request.
func CheckTransition(current, next string) error {
	if next != StatusApproved && next != StatusRejected {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, next)
	}
	if current != StatusPending {
		return fmt.Errorf("%w: request is %s", ErrInvalidTransition, current)
	}
	return nil
}

func ValidStatus(status string) bool {
	_, ok := statusLabels[status]
	return ok
}

func StatusLabel(status string) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return status
}

func pendingMessage(name string) string {
	return fmt.Sprintf("%s złożył wniosek o urlop.", name)
}

func decidedMessage(req Request) string {
	return fmt.Sprintf("Wniosek o nieobecność z dnia %s: %s.", req.Date.Format("2006-01-02"), StatusLabel(req.Status))
}
