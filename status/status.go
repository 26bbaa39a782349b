package status

// Status is a custom type to represent the possible status
type Status int

const (
	// Idle means the service is available to new runs
	Idle Status = 0

	// Parsing means that report files are being parsed
	Parsing Status = 1

	// Reconciling means that parsed reports are being reconciled
	Reconciling Status = 2
)

var (
	statusText = map[Status]string{
		Idle:        "System is idle",
		Parsing:     "System is parsing report files",
		Reconciling: "System is reconciling parsed reports",
	}
)

// Text returns a text for a status. It returns the empty
// string if the status is unknown.
func Text(status Status) string {
	return statusText[status]
}
