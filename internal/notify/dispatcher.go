package notify

import (
	"context"
	"log"
	"time"
)

// Dispatcher sends SMS updates after order transitions commit. Delivery is
// best-effort: failures are logged and never surfaced to the caller.
type Dispatcher struct {
	notifier Notifier
}

func NewDispatcher(n Notifier) *Dispatcher {
	return &Dispatcher{notifier: n}
}

func (d *Dispatcher) Dispatch(ctx context.Context, phoneNumber string, ev Event) {
	if d == nil || d.notifier == nil || phoneNumber == "" {
		return
	}
	text := Text(ev)
	if text == "" {
		return
	}
	// Short deadline so a slow gateway cannot block the main flow.
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := d.notifier.Send(ctx, phoneNumber, text); err != nil {
		log.Printf("notify: sms to %s (%s) failed: %v", phoneNumber, ev.Kind, err)
	}
}
