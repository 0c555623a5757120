package notifications

const (
	RecipientEmployer = "employer"

	TypeAbsencePending = "absence_pending"
	TypeAbsenceDecided = "absence_decided"
)

var subjects = map[string]string{
	TypeAbsencePending: "New absence request",
	TypeAbsenceDecided: "Your absence request was decided",
}
