package notify

import "fmt"

// EventKind names a committed order transition worth telling the
// counterparty about.
type EventKind string

const (
	EventOrderPlaced    EventKind = "order_placed"
	EventOrderAccepted  EventKind = "order_accepted"
	EventOrderRejected  EventKind = "order_rejected"
	EventOrderDelivered EventKind = "order_delivered"
	EventOrderPaid      EventKind = "order_paid"
)

type Event struct {
	Kind      EventKind
	ActorName string
	CropName  string
	Unit      string
	Quantity  float64
	Amount    float64
}

// Text renders the SMS body for an event kind.
func Text(ev Event) string {
	switch ev.Kind {
	case EventOrderPlaced:
		return fmt.Sprintf("New order from %s for %g %s of %s. Total: KSh %.2f",
			ev.ActorName, ev.Quantity, ev.Unit, ev.CropName, ev.Amount)
	case EventOrderAccepted:
		return fmt.Sprintf("Your order for %s has been accepted by %s.", ev.CropName, ev.ActorName)
	case EventOrderRejected:
		return fmt.Sprintf("Your order for %s has been rejected by %s.", ev.CropName, ev.ActorName)
	case EventOrderDelivered:
		return fmt.Sprintf("Your order for %s has been delivered. Please confirm receipt.", ev.CropName)
	case EventOrderPaid:
		return fmt.Sprintf("Payment of KSh %.2f received for %s.", ev.Amount, ev.CropName)
	}
	return ""
}
