package absence

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

var statusLabels = map[string]string{
	StatusPending:  "Oczekujące",
	StatusApproved: "Zaakceptowane",
	StatusRejected: "Odrzucone",
}
