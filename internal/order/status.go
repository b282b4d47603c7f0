package order

import "time"

// Status values are stored as-is; they are data, not display strings.
type Status string

const (
	StatusProcessing Status = "prozesatzen"
	StatusPaid       Status = "pagado"
	StatusShipped    Status = "bidalita"
	StatusCompleted  Status = "bukatuta"
	StatusCancelled  Status = "bertan_behera"
)

// CancelWindow bounds how long after creation an order may be cancelled.
const CancelWindow = 24 * time.Hour

var validStatuses = map[Status]bool{
	StatusProcessing: true,
	StatusPaid:       true,
	StatusShipped:    true,
	StatusCompleted:  true,
	StatusCancelled:  true,
}

func (s Status) Valid() bool {
	return validStatuses[s]
}

// IsTerminal reports whether no further transition is allowed.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// A paid order is already in fulfilment: it can only move on to shipped.
// Completion and cancellation are reachable from processing and shipped
// alone.
var transitions = map[Status][]Status{
	StatusProcessing: {StatusPaid, StatusShipped, StatusCompleted, StatusCancelled},
	StatusPaid:       {StatusShipped},
	StatusShipped:    {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// CanTransition reports whether from → to is a legal lifecycle move.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
